package evaluator

import (
	"strconv"

	"github.com/jstrack/interp/internal/host"
)

// readMember implements the plain-member-read half of parseMemberExp:
// `caller[callee]`, followed by the parent-attachment rule for host
// style/classList objects.
func (e *Evaluator) readMember(caller interface{}, callee interface{}) interface{} {
	if caller == nil || caller == Undefined || caller == Null {
		throwValue(newTypeError("cannot read property '" + displayString(callee) + "' of " + displayString(caller)))
	}

	var result interface{}
	found := true

	switch c := caller.(type) {
	case *JSObject:
		key, ok := callee.(string)
		if !ok {
			key = displayString(callee)
		}
		result, found = c.Get(key)
	case *JSArray:
		result, found = readArrayMember(c, callee)
	case string:
		result, found = readStringMember(c, callee)
	default:
		key, ok := callee.(string)
		if !ok {
			key = displayString(callee)
		}
		result, found = host.Access(caller, key)
	}

	if !found {
		result = Undefined
	}

	attachParentIfStyleOrTokenList(result, caller)
	return result
}

func readArrayMember(arr *JSArray, callee interface{}) (interface{}, bool) {
	if callee == "length" {
		return float64(len(arr.Elements)), true
	}
	idx, ok := arrayIndex(callee)
	if !ok || idx < 0 || idx >= len(arr.Elements) {
		return nil, false
	}
	return arr.Elements[idx], true
}

func readStringMember(s string, callee interface{}) (interface{}, bool) {
	if callee == "length" {
		return float64(len(s)), true
	}
	idx, ok := arrayIndex(callee)
	if !ok || idx < 0 || idx >= len(s) {
		return nil, false
	}
	return string(s[idx]), true
}

// arrayIndex converts a member key (a float64 from a computed access, or a
// numeric-looking string) into an array index.
func arrayIndex(callee interface{}) (int, bool) {
	switch v := callee.(type) {
	case float64:
		if v != float64(int(v)) || v < 0 {
			return 0, false
		}
		return int(v), true
	case int:
		return v, true
	case string:
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 || itoa(n) != v {
			return 0, false
		}
		return n, true
	}
	return 0, false
}

// attachParentIfStyleOrTokenList handles a freshly read
// CSSStyleDeclaration/DOMTokenList with no parent yet: it records the
// object it was read off of, so a later write through it can be attributed
// back to its owning element by the checker hook.
func attachParentIfStyleOrTokenList(result interface{}, caller interface{}) {
	switch v := result.(type) {
	case host.StyleDeclaration:
		if !v.HasParent() {
			v.SetParent(caller)
		}
	case host.TokenList:
		if !v.HasParent() {
			v.SetParent(caller)
		}
	}
}

// writeMember implements `caller[callee] = value`, the member branch of the
// `=` operator.
func (e *Evaluator) writeMember(caller interface{}, callee interface{}, value interface{}) {
	if caller == nil || caller == Undefined || caller == Null {
		throwValue(newTypeError("cannot set property '" + displayString(callee) + "' of " + displayString(caller)))
	}

	switch c := caller.(type) {
	case *JSObject:
		key, ok := callee.(string)
		if !ok {
			key = displayString(callee)
		}
		c.Set(key, value)
	case *JSArray:
		writeArrayMember(c, callee, value)
	default:
		key, ok := callee.(string)
		if !ok {
			key = displayString(callee)
		}
		host.Set(caller, key, value)
	}
}

func writeArrayMember(arr *JSArray, callee interface{}, value interface{}) {
	if callee == "length" {
		n, ok := value.(float64)
		if !ok || n < 0 {
			return
		}
		newLen := int(n)
		if newLen < len(arr.Elements) {
			arr.Elements = arr.Elements[:newLen]
			return
		}
		for len(arr.Elements) < newLen {
			arr.Elements = append(arr.Elements, Undefined)
		}
		return
	}
	idx, ok := arrayIndex(callee)
	if !ok || idx < 0 {
		return
	}
	for len(arr.Elements) <= idx {
		arr.Elements = append(arr.Elements, Undefined)
	}
	arr.Elements[idx] = value
}

// deleteMember implements the `delete` operator's member branch: deletes
// `caller[callee]`, returning the host's reported boolean.
func (e *Evaluator) deleteMember(caller interface{}, callee interface{}) bool {
	switch c := caller.(type) {
	case nil, undefinedType, nullType:
		return true
	case *JSObject:
		key, ok := callee.(string)
		if !ok {
			key = displayString(callee)
		}
		return c.Delete(key)
	case *JSArray:
		idx, ok := arrayIndex(callee)
		if !ok || idx < 0 || idx >= len(c.Elements) {
			return true
		}
		c.Elements[idx] = Undefined
		return true
	default:
		key, ok := callee.(string)
		if !ok {
			key = displayString(callee)
		}
		return host.Delete(caller, key)
	}
}

// enumerableKeys returns the keys `ForInStatement` iterates. Host iteration
// order is whatever the host's own reflection/map order gives us — no
// canonical order is defined for host objects; plain objects preserve
// insertion order and arrays enumerate numeric indices.
func enumerableKeys(v interface{}) []string {
	switch c := v.(type) {
	case *JSObject:
		return append([]string(nil), c.Keys...)
	case *JSArray:
		keys := make([]string, len(c.Elements))
		for i := range c.Elements {
			keys[i] = itoa(i)
		}
		return keys
	case nil, undefinedType, nullType:
		return nil
	default:
		return host.Keys(c)
	}
}

func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	neg := i < 0
	if neg {
		i = -i
	}
	var buf [20]byte
	pos := len(buf)
	for i > 0 {
		pos--
		buf[pos] = byte('0' + i%10)
		i /= 10
	}
	if neg {
		pos--
		buf[pos] = '-'
	}
	return string(buf[pos:])
}
