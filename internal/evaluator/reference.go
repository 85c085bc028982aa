package evaluator

import "github.com/jstrack/interp/internal/ast"

// Callee wraps a value to mark "this reference will be called, not read".
// Distinguishing a method call from a plain member read has to happen at
// the reference layer because by the time we have a caller/callee pair
// we've already lost the syntactic shape of the MemberExpression that
// produced it.
type Callee struct {
	Method    interface{}
	Arguments []interface{}
}

// CallInfo is the optional call-site metadata attached to a Reference for
// assignments and calls, so the checker hook can report location and
// source text.
type CallInfo struct {
	Line int
	Col  int
	Code string
}

// Reference is the addressable location produced by getRefExp: either an
// identifier reference (Caller is nil, Callee is a string or *Callee) or a
// member reference (Caller is the evaluated object).
type Reference struct {
	HasCaller bool // true for a member reference, even when Caller evaluates to nil/undefined
	Caller    interface{}
	Callee    interface{} // string name, or *Callee for a call-site reference
	Info      *CallInfo
}

// propertyKey resolves a MemberExpression's property to a lookup key: the
// evaluated value if Computed, else the literal name/value.
func (e *Evaluator) propertyKey(node ast.Node, computed bool, env *ClosureStack) interface{} {
	if computed {
		return e.Eval(node, env)
	}
	switch n := node.(type) {
	case *ast.Identifier:
		return n.Name
	case *ast.Literal:
		return n.Value
	default:
		structuralErrorf("evaluator: member property must be Identifier or Literal when not computed, got %T", node)
		return nil
	}
}

// nameFromPattern extracts the bound name from a non-member left-hand side
// (an Identifier in the ES5 subset this interpreter handles; anything else
// is a destructuring pattern this interpreter explicitly refuses).
func nameFromPattern(node ast.Node) string {
	id, ok := node.(*ast.Identifier)
	if !ok {
		structuralErrorf("evaluator: destructuring/pattern left-hand sides are not supported, got %T", node)
	}
	return id.Name
}

// getRefExp builds a Reference from an expression node.
func (e *Evaluator) getRefExp(node ast.Node, env *ClosureStack) Reference {
	if member, ok := node.(*ast.MemberExpression); ok {
		caller := e.Eval(member.Object, env)
		callee := e.propertyKey(member.Property, member.Computed, env)
		return Reference{HasCaller: true, Caller: caller, Callee: callee}
	}
	return Reference{HasCaller: false, Callee: nameFromPattern(node)}
}

// readReference dereferences a Reference to its current value, used by
// UpdateExpression and by the `<op>=` rewrite in AssignmentExpression.
func (e *Evaluator) readReference(ref Reference, env *ClosureStack) interface{} {
	if !ref.HasCaller {
		name := ref.Callee.(string)
		v, ok := env.Get(name)
		if !ok {
			throwValue(newReferenceError(name + " is not defined"))
		}
		return v
	}
	return e.readMember(ref.Caller, ref.Callee)
}

// assign implements the "=" assignment operator: an identifier reference
// updates the closure stack; a member reference assigns
// caller[callee] = value.
func (e *Evaluator) assign(ref Reference, value interface{}, env *ClosureStack) interface{} {
	if !ref.HasCaller {
		env.Update(ref.Callee.(string), value)
		return value
	}
	e.writeMember(ref.Caller, ref.Callee, value)
	return value
}

// deleteReference implements the `delete` operator: an identifier reference
// deletes context[callee] (loose-mode semantics); a member reference
// deletes caller[callee].
func (e *Evaluator) deleteReference(ref Reference) bool {
	if !ref.HasCaller {
		return e.deleteMember(e.Context, ref.Callee)
	}
	return e.deleteMember(ref.Caller, ref.Callee)
}
