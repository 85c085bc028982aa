package evaluator

import (
	"strings"

	"github.com/jstrack/interp/internal/ast"
	"github.com/jstrack/interp/internal/config"
)

func (e *Evaluator) evalLiteral(n *ast.Literal) interface{} {
	if n.Regex != nil {
		return &RegExp{Pattern: n.Regex.Pattern, Flags: n.Regex.Flags}
	}
	if n.Value == nil {
		return Null
	}
	return n.Value
}

// evalIdentifier: "null"/"undefined" are special names some AST producers
// encode as identifiers rather than keywords; anything else is a
// closure-stack lookup.
func (e *Evaluator) evalIdentifier(n *ast.Identifier, env *ClosureStack) interface{} {
	switch n.Name {
	case config.NullIdentifierName:
		return Null
	case config.UndefinedIdentifierName:
		return Undefined
	}
	v, ok := env.Get(n.Name)
	if !ok {
		throwValue(newReferenceError(n.Name + " is not defined"))
	}
	return v
}

func (e *Evaluator) evalArrayExpression(n *ast.ArrayExpression, env *ClosureStack) interface{} {
	elements := make([]interface{}, len(n.Elements))
	for i, el := range n.Elements {
		if el == nil {
			elements[i] = Undefined
			continue
		}
		elements[i] = e.Eval(el, env)
	}
	return NewJSArray(elements)
}

func (e *Evaluator) evalObjectExpression(n *ast.ObjectExpression, env *ClosureStack) interface{} {
	obj := NewJSObject()
	for _, prop := range n.Properties {
		key := e.propertyKey(prop.Key, prop.Computed, env)
		k, ok := key.(string)
		if !ok {
			k = displayString(key)
		}
		obj.Set(k, e.Eval(prop.Value, env))
	}
	return obj
}

func (e *Evaluator) evalFunctionExpression(n *ast.FunctionExpression, env *ClosureStack) interface{} {
	name := ""
	if n.ID != nil {
		name = n.ID.Name
	}
	return e.makeFunction(name, n.Params, n.Body, env)
}

// evalUnaryExpression: `delete` builds a reference and dispatches through
// the interpreter-installed delete operator; everything else evaluates the
// argument and dispatches through the external unary-operator table.
func (e *Evaluator) evalUnaryExpression(n *ast.UnaryExpression, env *ClosureStack) interface{} {
	if n.Operator == config.DeleteOperator {
		ref := e.getRefExp(n.Argument, env)
		return e.deleteReference(ref)
	}
	fn, ok := e.Operators.Unary[n.Operator]
	if !ok {
		structuralErrorf("evaluator: unknown unary operator %q", n.Operator)
	}
	return fn(e.Eval(n.Argument, env))
}

func (e *Evaluator) evalUpdateExpression(n *ast.UpdateExpression, env *ClosureStack) interface{} {
	ref := e.getRefExp(n.Argument, env)
	current := e.readReference(ref, env)
	fn, ok := e.Operators.Update[n.Operator]
	if !ok {
		structuralErrorf("evaluator: unknown update operator %q", n.Operator)
	}
	updated := fn(current)
	e.assign(ref, updated, env)
	if n.Prefix {
		return updated
	}
	return current
}

func (e *Evaluator) evalBinaryExpression(n *ast.BinaryExpression, env *ClosureStack) interface{} {
	left := e.Eval(n.Left, env)
	right := e.Eval(n.Right, env)
	fn, ok := e.Operators.Binary[n.Operator]
	if !ok {
		structuralErrorf("evaluator: unknown binary operator %q", n.Operator)
	}
	return fn(left, right)
}

// evalAssignmentExpression: a plain "=" evaluates the right side directly;
// any `<op>=` is rewritten to the corresponding binary operator applied to
// the reference's current value and the right side.
func (e *Evaluator) evalAssignmentExpression(n *ast.AssignmentExpression, env *ClosureStack) interface{} {
	ref := e.getRefExp(n.Left, env)
	ref.Info = e.callInfo(n)

	var value interface{}
	if n.Operator == config.PlainAssignOperator {
		value = e.Eval(n.Right, env)
	} else {
		op := strings.TrimSuffix(n.Operator, "=")
		fn, ok := e.Operators.Binary[op]
		if !ok {
			structuralErrorf("evaluator: unknown compound-assignment operator %q", n.Operator)
		}
		current := e.readReference(ref, env)
		value = fn(current, e.Eval(n.Right, env))
	}
	return e.assign(ref, value, env)
}

// evalLogicalExpression: the right AST subexpression is only evaluated
// when the left's truthiness requires it.
func (e *Evaluator) evalLogicalExpression(n *ast.LogicalExpression, env *ClosureStack) interface{} {
	left := e.Eval(n.Left, env)
	switch n.Operator {
	case "&&":
		if !isTruthy(left) {
			return left
		}
		return e.Eval(n.Right, env)
	case "||":
		if isTruthy(left) {
			return left
		}
		return e.Eval(n.Right, env)
	default:
		structuralErrorf("evaluator: unknown logical operator %q", n.Operator)
		return Undefined
	}
}

// evalMemberExpression: a MemberExpression reached as a value (not as a
// call callee) is never a Callee wrapper, so this is just the reference
// read plus parent attachment, already implemented by readMember.
func (e *Evaluator) evalMemberExpression(n *ast.MemberExpression, env *ClosureStack) interface{} {
	caller := e.Eval(n.Object, env)
	callee := e.propertyKey(n.Property, n.Computed, env)
	return e.readMember(caller, callee)
}

func (e *Evaluator) evalConditionalExpression(n *ast.ConditionalExpression, env *ClosureStack) interface{} {
	if isTruthy(e.Eval(n.Test, env)) {
		return e.Eval(n.Consequent, env)
	}
	return e.Eval(n.Alternate, env)
}

// evalCallExpression builds a reference whose callee wraps the evaluated
// method and argument list, runs the checker hook, then invokes.
func (e *Evaluator) evalCallExpression(n *ast.CallExpression, env *ClosureStack) interface{} {
	args := e.evalArguments(n.Arguments, env)

	var caller interface{}
	var hasCaller bool
	var method interface{}

	if member, ok := n.Callee.(*ast.MemberExpression); ok {
		caller = e.Eval(member.Object, env)
		hasCaller = true
		key := e.propertyKey(member.Property, member.Computed, env)
		method = e.readMember(caller, key)
	} else {
		method = e.Eval(n.Callee, env)
	}

	ref := Reference{
		HasCaller: hasCaller,
		Caller:    caller,
		Callee:    &Callee{Method: method, Arguments: args},
		Info:      e.callInfo(n),
	}

	if hasCaller {
		if setFlag := e.checkCallSite(ref); setFlag {
			defer func() { e.checkFlag = false }()
		}
	}

	this := caller
	if !hasCaller {
		this = Undefined
	}
	return e.CallCallable(method, this, args)
}

func (e *Evaluator) evalArguments(nodes []ast.Node, env *ClosureStack) []interface{} {
	args := make([]interface{}, len(nodes))
	for i, a := range nodes {
		args[i] = e.Eval(a, env)
	}
	return args
}

// evalNewExpression: this interpreter's subset never observes prototype
// chains, so "construction" is just invoking the constructor with a fresh
// plain object as `this` and returning that object (the constructor's own
// explicit return value is evaluated for side effects but discarded).
func (e *Evaluator) evalNewExpression(n *ast.NewExpression, env *ClosureStack) interface{} {
	constructor := e.Eval(n.Callee, env)
	args := e.evalArguments(n.Arguments, env)
	instance := NewJSObject()
	e.CallCallable(constructor, instance, args)
	return instance
}

func (e *Evaluator) evalSequenceExpression(n *ast.SequenceExpression, env *ClosureStack) interface{} {
	var last interface{} = Undefined
	for _, expr := range n.Expressions {
		last = e.Eval(expr, env)
	}
	return last
}

// callInfo attaches call-site metadata used by the checker hook. Only the
// position is filled in: this package has no source-text regenerator, so
// Code is always left empty.
func (e *Evaluator) callInfo(n ast.Node) *CallInfo {
	pos := ast.Pos(n)
	return &CallInfo{Line: pos.Line, Col: pos.Column}
}
