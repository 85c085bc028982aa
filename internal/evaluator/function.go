package evaluator

import (
	"github.com/jstrack/interp/internal/ast"
	"github.com/jstrack/interp/internal/config"
	"github.com/jstrack/interp/internal/host"
)

// Function is a JavaScript function value: the closure snapshot is taken
// once, at creation time, so later mutation of the defining scope's live
// ClosureStack (further declarations, pops on return) never reaches back
// into a value that already escaped.
type Function struct {
	Name    string
	Params  []*ast.Identifier
	Body    *ast.BlockStatement
	Closure *ClosureStack
}

// makeFunction builds a Function value from a function expression or
// declaration: the closure is a snapshot of env taken right now, so later
// pops of the live stack never reach back into it. A named function gets
// an extra, caller-invisible frame on its own snapshot binding its name to
// itself, so it can recurse by name even when called through a different
// reference.
func (e *Evaluator) makeFunction(name string, params []*ast.Identifier, body *ast.BlockStatement, env *ClosureStack) *Function {
	closure := env.Clone()
	fn := &Function{Name: name, Params: params, Body: body, Closure: closure}
	if name != "" {
		closure.PushOverlay(name, fn)
	}
	return fn
}

// buildArguments constructs the array-like `arguments` binding. It is a
// genuine JSArray, not a distinct arguments-object type — this
// interpreter's subset never observes the difference (no
// `arguments.callee`, no live parameter aliasing).
func buildArguments(args []interface{}) *JSArray {
	return NewJSArray(append([]interface{}(nil), args...))
}

// callFunction implements the invocation protocol: clone the captured
// closure, push a frame, hoist the body into it, bind
// this/arguments/parameters, run the body, and restore the caller's flow register regardless of how the
// call exits (normal return, thrown exception, or a StructuralError panic)
// — the defer below is this interpreter's finally-equivalent discipline.
func (e *Evaluator) callFunction(fn *Function, this interface{}, args []interface{}) interface{} {
	callEnv := fn.Closure.Clone()
	callEnv.Push()

	savedFlow := e.Flow
	savedReturn := e.pendingReturn
	e.Flow = &FlowState{}
	e.pendingReturn = Undefined
	defer func() {
		e.Flow = savedFlow
		e.pendingReturn = savedReturn
	}()

	// Hoist first so that parameter bindings (set immediately after) win
	// over a same-named `var` in the body, the way real JS scoping does —
	// running the hoist pass before the parameter/this/arguments binds
	// keeps the observable result identical while avoiding clobbering an
	// argument with undefined just because the body also declares it.
	e.hoist(fn.Body, callEnv)

	if this == nil || this == Undefined || this == Null {
		this = e.Context
	}
	callEnv.Set(config.ThisBindingName, this)
	callEnv.Set(config.ArgumentsBindingName, buildArguments(args))
	for i, p := range fn.Params {
		var v interface{} = Undefined
		if i < len(args) {
			v = args[i]
		}
		callEnv.Set(p.Name, v)
	}

	e.evalStatements(fn.Body.Body, callEnv)

	if e.Flow.IsReturning() {
		return e.pendingReturn
	}
	return Undefined
}

// CallCallable invokes any value this interpreter treats as callable: a
// user-defined Function, a bound host method, or anything else fails with
// a TypeError.
func (e *Evaluator) CallCallable(callee interface{}, this interface{}, args []interface{}) interface{} {
	switch fn := callee.(type) {
	case *Function:
		return e.callFunction(fn, this, args)
	case *host.Method:
		result, err := fn.Call(args)
		if err != nil {
			structuralErrorf("evaluator: %v", err)
		}
		return result
	case nil, undefinedType, nullType:
		throwValue(newTypeError("undefined is not a function"))
	}
	throwValue(newTypeError(displayString(callee) + " is not a function"))
	return Undefined
}
