// Package evaluator is the interpreter proper: the dispatcher, the
// control-flow and closure machinery, the reference/member-access layer,
// and the checker hook. It never parses source text and never produces a
// printable string back out of a node; both are external collaborators.
package evaluator

import (
	"github.com/jstrack/interp/internal/ast"
	"github.com/jstrack/interp/internal/operators"
)

// CheckStatus is the `status` an external checker returns from Dispatch:
// `Type` is recorded verbatim into the Collection; `Target`, if set,
// overrides the normal CSSStyleDeclaration/DOMTokenList/Attr attribution.
type CheckStatus struct {
	Type   interface{}
	Target interface{}
}

// Checker is the external call-site checker dispatcher: given the host
// context and an evaluated {caller, callee} pair, it returns a status or
// reports no match. A nil Checker means no program in this Evaluator is
// ever checked — useful for embeddings that only need the language
// semantics without DOM-mutation tracking.
type Checker interface {
	Dispatch(context, caller, callee interface{}) (status *CheckStatus, matched bool, err error)
}

// Evaluator holds everything the interpreter owns process-wide: the host
// context, the live FlowState, the Collection, the checker and its
// reentrancy flag, and the pluggable operator tables. The ClosureStack is
// not held here; it is passed explicitly through every Eval call.
type Evaluator struct {
	Context   interface{}
	ScriptURL string

	Flow          *FlowState
	pendingReturn interface{}

	Collection *Collection
	Checker    Checker
	checkFlag  bool

	Operators *operators.Table
}

// New builds an Evaluator ready to run a program against context. checker
// may be nil.
func New(context interface{}, checker Checker) *Evaluator {
	e := &Evaluator{
		Context:    context,
		Flow:       &FlowState{},
		Collection: NewCollection(),
		Checker:    checker,
		Operators:  operators.Default(),
	}
	e.installSentinelAwareOperators()
	return e
}

// installSentinelAwareOperators overrides the two table entries, `typeof`
// and `void`, that need to know about this package's Undefined/Null
// sentinels and Function values — knowledge the operators package can't
// have without importing this one back. `delete` never goes through the
// table: evalUnaryExpression handles it directly.
func (e *Evaluator) installSentinelAwareOperators() {
	e.Operators.Unary["void"] = func(interface{}) interface{} { return Undefined }
	e.Operators.Unary["typeof"] = func(v interface{}) interface{} {
		switch v.(type) {
		case undefinedType, nil:
			return "undefined"
		case nullType:
			return "object"
		case *Function:
			return "function"
		case bool:
			return "boolean"
		case float64, int:
			return "number"
		case string:
			return "string"
		default:
			return "object"
		}
	}
}

// ParseAst is the entry point: sets the current script URL and evaluates
// the root program. Structural errors (unknown node kind, malformed
// reference, and anything else this package treats as a fatal
// implementation error) are recovered here and returned as a conventional
// Go error; user exceptions that escape an unguarded ThrowStatement are
// returned the same way, wrapped in *Exception.
func (e *Evaluator) ParseAst(root *ast.Program, scriptURL string) (result interface{}, err error) {
	e.ScriptURL = scriptURL
	env := NewClosureStack()

	defer func() {
		if r := recover(); r != nil {
			switch v := r.(type) {
			case *Exception, *StructuralError:
				err = v.(error)
			default:
				panic(r)
			}
		}
	}()

	result = e.Eval(root, env)
	return result, nil
}

// Eval is the dispatcher: routes an AST node to its evaluator by concrete
// Go type. A node absent from a required child slot is represented as a
// nil ast.Node and evaluates to Undefined.
func (e *Evaluator) Eval(node ast.Node, env *ClosureStack) interface{} {
	if node == nil {
		return Undefined
	}

	switch n := node.(type) {
	// Programs and blocks
	case *ast.Program:
		return e.evalProgram(n, env)
	case *ast.BlockStatement:
		return e.evalBlockStatement(n, env)
	case *ast.ExpressionStatement:
		return e.Eval(n.Expression, env)
	case *ast.EmptyStatement:
		return Undefined

	// Control flow statements
	case *ast.ReturnStatement:
		return e.evalReturnStatement(n, env)
	case *ast.LabeledStatement:
		return e.evalLabeledStatement(n, env)
	case *ast.BreakStatement:
		return e.evalBreakStatement(n)
	case *ast.ContinueStatement:
		return e.evalContinueStatement(n)
	case *ast.IfStatement:
		return e.evalIfStatement(n, env)
	case *ast.SwitchStatement:
		return e.evalSwitchStatement(n, env)
	case *ast.ThrowStatement:
		return e.evalThrowStatement(n, env)
	case *ast.TryStatement:
		return e.evalTryStatement(n, env)

	// Loops
	case *ast.WhileStatement:
		return e.evalWhileStatement(n, env, "")
	case *ast.DoWhileStatement:
		return e.evalDoWhileStatement(n, env, "")
	case *ast.ForStatement:
		return e.evalForStatement(n, env, "")
	case *ast.ForInStatement:
		return e.evalForInStatement(n, env, "")

	// Declarations
	case *ast.FunctionDeclaration:
		return e.evalFunctionDeclaration(n, env)
	case *ast.VariableDeclaration:
		return e.evalVariableDeclaration(n, env)

	// Expressions
	case *ast.ThisExpression:
		v, _ := env.Get("this")
		return v
	case *ast.Identifier:
		return e.evalIdentifier(n, env)
	case *ast.Literal:
		return e.evalLiteral(n)
	case *ast.ArrayExpression:
		return e.evalArrayExpression(n, env)
	case *ast.ObjectExpression:
		return e.evalObjectExpression(n, env)
	case *ast.FunctionExpression:
		return e.evalFunctionExpression(n, env)
	case *ast.UnaryExpression:
		return e.evalUnaryExpression(n, env)
	case *ast.UpdateExpression:
		return e.evalUpdateExpression(n, env)
	case *ast.BinaryExpression:
		return e.evalBinaryExpression(n, env)
	case *ast.AssignmentExpression:
		return e.evalAssignmentExpression(n, env)
	case *ast.LogicalExpression:
		return e.evalLogicalExpression(n, env)
	case *ast.MemberExpression:
		return e.evalMemberExpression(n, env)
	case *ast.ConditionalExpression:
		return e.evalConditionalExpression(n, env)
	case *ast.CallExpression:
		return e.evalCallExpression(n, env)
	case *ast.NewExpression:
		return e.evalNewExpression(n, env)
	case *ast.SequenceExpression:
		return e.evalSequenceExpression(n, env)
	}

	structuralErrorf("evaluator: unrecognized node type %T", node)
	return Undefined
}

// evalStatements is the statement loop: function declarations run up
// front (via the hoist pass, before this is called), so this only walks
// the remaining statements in order, stopping as soon as FlowState has
// anything pending.
func (e *Evaluator) evalStatements(stmts []ast.Node, env *ClosureStack) interface{} {
	var last interface{} = Undefined
	for _, stmt := range stmts {
		if _, ok := stmt.(*ast.FunctionDeclaration); ok {
			continue // already bound by the hoist pass
		}
		last = e.Eval(stmt, env)
		if e.Flow.IsPending() {
			break
		}
	}
	return last
}

func (e *Evaluator) evalProgram(n *ast.Program, env *ClosureStack) interface{} {
	e.hoist(&ast.BlockStatement{Body: n.Body}, env)
	return e.evalStatements(n.Body, env)
}

func (e *Evaluator) evalBlockStatement(n *ast.BlockStatement, env *ClosureStack) interface{} {
	return e.evalStatements(n.Body, env)
}
