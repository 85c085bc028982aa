package evaluator

import "github.com/jstrack/interp/internal/ast"

func (e *Evaluator) evalWhileStatement(n *ast.WhileStatement, env *ClosureStack, label string) interface{} {
	var last interface{} = Undefined
	for isTruthy(e.Eval(n.Test, env)) {
		last = e.Eval(n.Body, env)
		if e.Flow.LoopShouldBreak(label) {
			break
		}
	}
	return last
}

// evalDoWhileStatement runs one unconditional iteration, then falls into
// the same loopShouldBreak-then-test cycle as while.
func (e *Evaluator) evalDoWhileStatement(n *ast.DoWhileStatement, env *ClosureStack, label string) interface{} {
	last := e.Eval(n.Body, env)
	if e.Flow.LoopShouldBreak(label) {
		return last
	}
	for isTruthy(e.Eval(n.Test, env)) {
		last = e.Eval(n.Body, env)
		if e.Flow.LoopShouldBreak(label) {
			break
		}
	}
	return last
}

// evalForStatement: init once, an absent test is always truthy.
func (e *Evaluator) evalForStatement(n *ast.ForStatement, env *ClosureStack, label string) interface{} {
	if n.Init != nil {
		e.Eval(n.Init, env)
	}
	var last interface{} = Undefined
	for n.Test == nil || isTruthy(e.Eval(n.Test, env)) {
		last = e.Eval(n.Body, env)
		if e.Flow.LoopShouldBreak(label) {
			break
		}
		if n.Update != nil {
			e.Eval(n.Update, env)
		}
	}
	return last
}

// evalForInStatement: the iterated variable name comes from a `var`
// declaration or a bare identifier on the left; for
// each enumerable key of the right-hand value, bind it and run the body.
func (e *Evaluator) evalForInStatement(n *ast.ForInStatement, env *ClosureStack, label string) interface{} {
	name := forInVarName(n.Left)
	right := e.Eval(n.Right, env)

	var last interface{} = Undefined
	for _, key := range enumerableKeys(right) {
		env.Update(name, key)
		last = e.Eval(n.Body, env)
		if e.Flow.LoopShouldBreak(label) {
			break
		}
	}
	return last
}

func forInVarName(left ast.Node) string {
	switch n := left.(type) {
	case *ast.VariableDeclaration:
		return n.Declarations[0].ID.Name
	case *ast.Identifier:
		return n.Name
	default:
		structuralErrorf("evaluator: for-in left-hand side must be a var declaration or identifier, got %T", left)
		return ""
	}
}
