package evaluator

import "github.com/jstrack/interp/internal/ast"

// evalReturnStatement evaluates the argument before RETURN is set, because
// evaluating it may itself call a function whose own invocation protocol
// sets and clears RETURN.
func (e *Evaluator) evalReturnStatement(n *ast.ReturnStatement, env *ClosureStack) interface{} {
	var v interface{} = Undefined
	if n.Argument != nil {
		v = e.Eval(n.Argument, env)
	}
	e.pendingReturn = v
	e.Flow.SetReturn()
	return v
}

// evalLabeledStatement evaluates the body, then consumes a matching break.
// Loops and switches consult the label themselves while they run (via
// LoopShouldBreak/ClearBreakAfterSwitch); this only needs to catch the case
// of a labelled break around a *non-loop* statement, where nothing else
// would ever clear it.
func (e *Evaluator) evalLabeledStatement(n *ast.LabeledStatement, env *ClosureStack) interface{} {
	label := n.Label.Name
	var result interface{}
	switch body := n.Body.(type) {
	case *ast.WhileStatement:
		result = e.evalWhileStatement(body, env, label)
	case *ast.DoWhileStatement:
		result = e.evalDoWhileStatement(body, env, label)
	case *ast.ForStatement:
		result = e.evalForStatement(body, env, label)
	case *ast.ForInStatement:
		result = e.evalForInStatement(body, env, label)
	default:
		result = e.Eval(n.Body, env)
	}
	e.Flow.ConsumeBreakForLabel(label)
	return result
}

func (e *Evaluator) evalBreakStatement(n *ast.BreakStatement) interface{} {
	label := ""
	if n.Label != nil {
		label = n.Label.Name
	}
	e.Flow.SetBreak(label)
	return Undefined
}

func (e *Evaluator) evalContinueStatement(n *ast.ContinueStatement) interface{} {
	label := ""
	if n.Label != nil {
		label = n.Label.Name
	}
	e.Flow.SetContinue(label)
	return Undefined
}

func (e *Evaluator) evalIfStatement(n *ast.IfStatement, env *ClosureStack) interface{} {
	if isTruthy(e.Eval(n.Test, env)) {
		return e.Eval(n.Consequent, env)
	}
	if n.Alternate != nil {
		return e.Eval(n.Alternate, env)
	}
	return Undefined
}

// evalSwitchStatement finds the matched index (the first case whose test is
// nil, i.e. default, or strictly equal to the discriminant), then runs
// every case from there on as one statement sequence so fallthrough works,
// stopping on break/return as usual.
func (e *Evaluator) evalSwitchStatement(n *ast.SwitchStatement, env *ClosureStack) interface{} {
	discriminant := e.Eval(n.Discriminant, env)

	matched := -1
	for i, c := range n.Cases {
		if c.Test == nil || strictEquals(discriminant, e.Eval(c.Test, env)) {
			matched = i
			break
		}
	}

	var result interface{} = Undefined
	if matched != -1 {
		for _, c := range n.Cases[matched:] {
			result = e.evalStatements(c.Consequent, env)
			if e.Flow.IsPending() {
				break
			}
		}
	}
	e.Flow.ClearBreakAfterSwitch()
	return result
}

func (e *Evaluator) evalThrowStatement(n *ast.ThrowStatement, env *ClosureStack) interface{} {
	throwValue(e.Eval(n.Argument, env))
	return Undefined
}

// evalTryStatement runs block, then handler (if an Exception was caught and
// a handler exists), then finalizer, in that order, with the rule that a
// later phase's return can overwrite an earlier phase's remembered one.
func (e *Evaluator) evalTryStatement(n *ast.TryStatement, env *ClosureStack) interface{} {
	var (
		haveValue bool
		value     interface{}
		haveError bool
		errValue  interface{}
	)

	runGuarded := func(body *ast.BlockStatement, bindEnv *ClosureStack) {
		defer func() {
			if r := recover(); r != nil {
				if exc, ok := r.(*Exception); ok {
					haveError = true
					errValue = exc.Value
					return
				}
				panic(r)
			}
		}()
		e.evalStatements(body.Body, bindEnv)
		if e.Flow.IsReturning() {
			e.Flow.ClearReturn()
			haveValue = true
			value = e.pendingReturn
		}
	}

	runGuarded(n.Block, env)

	if haveError && n.Handler != nil {
		caught := errValue
		haveError = false
		errValue = nil
		if n.Handler.Param != nil {
			env.Set(n.Handler.Param.Name, caught)
		}
		runGuarded(n.Handler.Body, env)
	}

	if n.Finalizer != nil {
		runGuarded(n.Finalizer, env)
	}

	if haveValue {
		e.pendingReturn = value
		e.Flow.SetReturn()
		return value
	}
	if haveError {
		throwValue(errValue)
	}
	return Undefined
}

// evalVariableDeclaration handles an already-hoisted `var` (skipped if
// uninitialized); everything else evaluates its initializer and binds in
// the current frame, in source order.
func (e *Evaluator) evalVariableDeclaration(n *ast.VariableDeclaration, env *ClosureStack) interface{} {
	for _, decl := range n.Declarations {
		if decl.Init == nil && n.Kind == "var" {
			continue
		}
		v := e.Eval(decl.Init, env)
		env.Set(decl.ID.Name, v)
	}
	return Undefined
}

func (e *Evaluator) evalFunctionDeclaration(n *ast.FunctionDeclaration, env *ClosureStack) interface{} {
	// Already bound by the hoist pass; nothing left to do when visited
	// during the ordinary statement walk, but a FunctionDeclaration reached
	// some other way (e.g. directly from a BlockStatement this interpreter
	// treats as reachable outside the hoist pass) still needs a value.
	env.Set(n.ID.Name, e.makeFunction(n.ID.Name, n.Params, n.Body, env))
	return Undefined
}
