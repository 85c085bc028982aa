// Package host bridges the interpreter's generic value model to an
// arbitrary Go value acting as the "host context": a browser-like global
// exposing things such as CSSStyleDeclaration, DOMTokenList, Attr, and
// optionally a jQuery-shaped collection. The interpreter must read and
// write these objects without shadowing or copying them, so member access
// goes through reflection.
package host

import (
	"fmt"
	"reflect"
)

// Method is a bound host method: a reflect.Value ready to be Call()ed with
// converted arguments. Accessing a host object's method returns one of
// these instead of invoking it immediately, keeping "member read" and
// "member call" distinct.
type Method struct {
	Name string
	fn   reflect.Value
}

// Call invokes the bound method, converting each argument to the
// parameter's static type on a best-effort basis.
func (m *Method) Call(args []interface{}) (result interface{}, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("host: call to %s panicked: %v", m.Name, r)
		}
	}()
	t := m.fn.Type()
	in := make([]reflect.Value, 0, len(args))
	variadic := t.IsVariadic()
	for i, a := range args {
		var paramType reflect.Type
		switch {
		case variadic && i >= t.NumIn()-1:
			paramType = t.In(t.NumIn() - 1).Elem()
		case i < t.NumIn():
			paramType = t.In(i)
		default:
			continue // extra args beyond arity are ignored
		}
		in = append(in, convertArg(a, paramType))
	}
	// Pad missing arguments with the zero value of their parameter type.
	want := t.NumIn()
	if variadic {
		want--
	}
	for len(in) < want {
		in = append(in, reflect.Zero(t.In(len(in))))
	}
	out := m.fn.Call(in)
	return unpackResults(out), nil
}

func convertArg(a interface{}, paramType reflect.Type) reflect.Value {
	if paramType == nil {
		return reflect.ValueOf(a)
	}
	if a == nil {
		return reflect.Zero(paramType)
	}
	v := reflect.ValueOf(a)
	if v.Type().AssignableTo(paramType) {
		return v
	}
	if v.Type().ConvertibleTo(paramType) {
		return v.Convert(paramType)
	}
	return reflect.Zero(paramType)
}

func unpackResults(out []reflect.Value) interface{} {
	if len(out) == 0 {
		return nil
	}
	if len(out) == 1 {
		return out[0].Interface()
	}
	vals := make([]interface{}, len(out))
	for i, v := range out {
		vals[i] = v.Interface()
	}
	return vals
}

// Access reads member from a host value: a method becomes a *Method (so
// the caller can choose to invoke it with evaluated arguments), a struct
// field or map entry becomes its converted value. Returns (nil, false) if
// member does not exist, which the evaluator treats as `undefined` rather
// than an error — a plain member read never errors on a miss.
func Access(recv interface{}, member string) (interface{}, bool) {
	if recv == nil {
		return nil, false
	}
	v := reflect.ValueOf(recv)

	if method := v.MethodByName(member); method.IsValid() {
		return &Method{Name: member, fn: method}, true
	}

	indirect := v
	for indirect.Kind() == reflect.Ptr || indirect.Kind() == reflect.Interface {
		if indirect.IsNil() {
			return nil, false
		}
		indirect = indirect.Elem()
	}

	switch indirect.Kind() {
	case reflect.Struct:
		field := indirect.FieldByName(member)
		if field.IsValid() && field.CanInterface() {
			return field.Interface(), true
		}
	case reflect.Map:
		if indirect.Type().Key().Kind() == reflect.String {
			val := indirect.MapIndex(reflect.ValueOf(member))
			if val.IsValid() {
				return val.Interface(), true
			}
		}
	}
	return nil, false
}

// Set writes member on a host value's addressable struct field. Returns
// false if the field doesn't exist or isn't settable (e.g. recv was passed
// by value rather than by pointer).
func Set(recv interface{}, member string, value interface{}) bool {
	if recv == nil {
		return false
	}
	v := reflect.ValueOf(recv)
	for v.Kind() == reflect.Ptr || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return false
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return false
	}
	field := v.FieldByName(member)
	if !field.IsValid() || !field.CanSet() {
		return false
	}
	rv := reflect.ValueOf(value)
	if !rv.IsValid() {
		field.Set(reflect.Zero(field.Type()))
		return true
	}
	if rv.Type().AssignableTo(field.Type()) {
		field.Set(rv)
		return true
	}
	if rv.Type().ConvertibleTo(field.Type()) {
		field.Set(rv.Convert(field.Type()))
		return true
	}
	return false
}

// Keys enumerates the string-keyed fields of a host value, for `for-in`.
// Struct field order is Go's declaration order, not any particular host
// iteration order — no canonical order is defined for host objects.
func Keys(recv interface{}) []string {
	if recv == nil {
		return nil
	}
	v := reflect.ValueOf(recv)
	for v.Kind() == reflect.Ptr || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}
	switch v.Kind() {
	case reflect.Struct:
		t := v.Type()
		keys := make([]string, 0, t.NumField())
		for i := 0; i < t.NumField(); i++ {
			if t.Field(i).PkgPath == "" { // exported
				keys = append(keys, t.Field(i).Name)
			}
		}
		return keys
	case reflect.Map:
		keys := make([]string, 0, v.Len())
		for _, k := range v.MapKeys() {
			keys = append(keys, k.String())
		}
		return keys
	}
	return nil
}

// Delete removes a map entry on a host value, mirroring the `delete`
// operator's host-mutation path. Deleting a struct field has no Go
// equivalent, so it reports false (the caller surfaces this as the
// host's boolean result, same as a no-op delete in real JS on
// non-configurable properties).
func Delete(recv interface{}, member string) bool {
	v := reflect.ValueOf(recv)
	for v.Kind() == reflect.Ptr || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return false
		}
		v = v.Elem()
	}
	if v.Kind() == reflect.Map && v.Type().Key().Kind() == reflect.String {
		v.SetMapIndex(reflect.ValueOf(member), reflect.Value{})
		return true
	}
	return false
}
