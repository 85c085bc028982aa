package evaluator

import (
	"testing"

	"github.com/jstrack/interp/internal/ast"
)

// Node construction helpers. This package never parses source text (the
// AST is always supplied externally), so tests build trees directly the
// way a host producing ESTree JSON would.

func ident(name string) *ast.Identifier { return &ast.Identifier{Name: name} }

func num(v float64) *ast.Literal { return &ast.Literal{Value: v} }

func str(v string) *ast.Literal { return &ast.Literal{Value: v} }

func exprStmt(n ast.Node) *ast.ExpressionStatement { return &ast.ExpressionStatement{Expression: n} }

func block(stmts ...ast.Node) *ast.BlockStatement { return &ast.BlockStatement{Body: stmts} }

func program(stmts ...ast.Node) *ast.Program { return &ast.Program{Body: stmts} }

func varDecl(name string, init ast.Node) *ast.VariableDeclaration {
	return &ast.VariableDeclaration{
		Kind:         "var",
		Declarations: []*ast.VariableDeclarator{{ID: ident(name), Init: init}},
	}
}

func binOp(op string, l, r ast.Node) *ast.BinaryExpression {
	return &ast.BinaryExpression{Operator: op, Left: l, Right: r}
}

func assign(op string, left, right ast.Node) *ast.AssignmentExpression {
	return &ast.AssignmentExpression{Operator: op, Left: left, Right: right}
}

func call(callee ast.Node, args ...ast.Node) *ast.CallExpression {
	return &ast.CallExpression{Callee: callee, Arguments: args}
}

func ret(arg ast.Node) *ast.ReturnStatement { return &ast.ReturnStatement{Argument: arg} }

func fnDecl(name string, params []*ast.Identifier, body *ast.BlockStatement) *ast.FunctionDeclaration {
	return &ast.FunctionDeclaration{ID: ident(name), Params: params, Body: body}
}

func run(t *testing.T, stmts ...ast.Node) interface{} {
	t.Helper()
	e := New(Undefined, nil)
	v, err := e.ParseAst(program(stmts...), "test.js")
	if err != nil {
		t.Fatalf("ParseAst error: %v", err)
	}
	return v
}

// var a = 1; a += 2; a
func TestCompoundAssignment(t *testing.T) {
	got := run(t,
		varDecl("a", num(1)),
		exprStmt(assign("+=", ident("a"), num(2))),
		exprStmt(ident("a")),
	)
	if got != float64(3) {
		t.Fatalf("got %v, want 3", got)
	}
}

// function f(x) { return x * x; } f(5)
func TestFunctionCallSquare(t *testing.T) {
	got := run(t,
		fnDecl("f", []*ast.Identifier{ident("x")}, block(
			ret(binOp("*", ident("x"), ident("x"))),
		)),
		exprStmt(call(ident("f"), num(5))),
	)
	if got != float64(25) {
		t.Fatalf("got %v, want 25", got)
	}
}

// A function declaration must win over a same-named var, regardless of
// source order: var f; function f(){return 1;} f()
func TestFunctionDeclarationWinsOverVar(t *testing.T) {
	got := run(t,
		varDecl("f", nil),
		fnDecl("f", nil, block(ret(num(1)))),
		exprStmt(call(ident("f"))),
	)
	if got != float64(1) {
		t.Fatalf("got %v, want 1 (function decl should win over hoisted var)", got)
	}
}

// Parameters must not be clobbered by a same-named `var` hoisted inside the
// body: function f(x){ var x; return x; } f(9)
func TestParamNotClobberedByHoistedVar(t *testing.T) {
	got := run(t,
		fnDecl("f", []*ast.Identifier{ident("x")}, block(
			varDecl("x", nil),
			ret(ident("x")),
		)),
		exprStmt(call(ident("f"), num(9))),
	)
	if got != float64(9) {
		t.Fatalf("got %v, want 9 (hoisted var must not clobber bound parameter)", got)
	}
}

// outer: for (var i = 0; i < 5; i = i + 1) { for (var j = 0; j < 5; j = j
// + 1) { if (j == 2) break outer; } } i — labelled break must unwind both
// loops.
func TestLabeledBreakUnwindsOuterLoop(t *testing.T) {
	outerFor := &ast.ForStatement{
		Init: varDecl("i", num(0)),
		Test: binOp("<", ident("i"), num(5)),
		Update: &ast.AssignmentExpression{
			Operator: "=", Left: ident("i"), Right: binOp("+", ident("i"), num(1)),
		},
		Body: block(
			&ast.ForStatement{
				Init: varDecl("j", num(0)),
				Test: binOp("<", ident("j"), num(5)),
				Update: &ast.AssignmentExpression{
					Operator: "=", Left: ident("j"), Right: binOp("+", ident("j"), num(1)),
				},
				Body: block(
					&ast.IfStatement{
						Test:       binOp("==", ident("j"), num(2)),
						Consequent: &ast.BreakStatement{Label: ident("outer")},
					},
				),
			},
		),
	}
	got := run(t,
		&ast.LabeledStatement{Label: ident("outer"), Body: outerFor},
		exprStmt(ident("i")),
	)
	if got != float64(0) {
		t.Fatalf("got %v, want 0 (outer loop must stop on its first iteration)", got)
	}
}

// A try/finally whose finalizer itself returns overwrites the try block's
// own return value — a later phase can overwrite the earlier remembered
// value:
// function f(){ try { return 1; } finally { return 2; } } f()
func TestFinallyReturnOverwritesTryReturn(t *testing.T) {
	got := run(t,
		fnDecl("f", nil, block(
			&ast.TryStatement{
				Block:     block(ret(num(1))),
				Finalizer: block(ret(num(2))),
			},
		)),
		exprStmt(call(ident("f"))),
	)
	if got != float64(2) {
		t.Fatalf("got %v, want 2 (finalizer return must win)", got)
	}
}

// A thrown value must be catchable and bound to the catch parameter:
// try { throw "boom"; } catch(e) { caught = e; } caught — the catch body's
// assignment is visible after the try statement.
func TestTryCatchSwallowsException(t *testing.T) {
	got := run(t,
		&ast.TryStatement{
			Block: block(&ast.ThrowStatement{Argument: str("boom")}),
			Handler: &ast.CatchClause{
				Param: ident("e"),
				Body:  block(exprStmt(assign("=", ident("caught"), ident("e")))),
			},
		},
		exprStmt(ident("caught")),
	)
	if got != "boom" {
		t.Fatalf("got %v, want \"boom\"", got)
	}
}

// An uncaught throw should surface from ParseAst as an error, not panic
// through to the caller.
func TestUncaughtThrowReturnsError(t *testing.T) {
	e := New(Undefined, nil)
	_, err := e.ParseAst(program(&ast.ThrowStatement{Argument: str("fatal")}), "test.js")
	if err == nil {
		t.Fatal("expected an error for an uncaught throw")
	}
	if _, ok := err.(*Exception); !ok {
		t.Fatalf("expected *Exception, got %T", err)
	}
}

// Logical && must not evaluate its right side when the left is falsy. The
// right side references an identifier that was never declared, so if it
// were evaluated the ReferenceError would escape ParseAst as an error —
// run fails the test via t.Fatalf in that case.
func TestLogicalAndShortCircuits(t *testing.T) {
	got := run(t,
		exprStmt(&ast.LogicalExpression{
			Operator: "&&",
			Left:     &ast.Literal{Value: false},
			Right:    call(ident("neverDeclared")),
		}),
	)
	if got != false {
		t.Fatalf("got %v, want false", got)
	}
}

// After a function call returns, the caller's own FlowState/ClosureStack
// depth must be exactly as it was before the call, even across nested
// calls.
func TestEnvironmentRestoredAfterNestedCalls(t *testing.T) {
	e := New(Undefined, nil)
	env := NewClosureStack()
	startDepth := env.Depth()

	inner := e.makeFunction("inner", nil, block(ret(num(1))), env)
	env.Set("inner", inner) // bound before outer snapshots env, so outer can see it
	outer := e.makeFunction("outer", nil, block(
		exprStmt(call(ident("inner"))),
		ret(num(2)),
	), env)

	result := e.callFunction(outer, Undefined, nil)
	if result != float64(2) {
		t.Fatalf("got %v, want 2", result)
	}
	if env.Depth() != startDepth {
		t.Fatalf("ClosureStack depth changed across calls: got %d, want %d", env.Depth(), startDepth)
	}
	if e.Flow.IsPending() {
		t.Fatalf("FlowState left pending after call returned: %+v", e.Flow)
	}
}

// A host receiver with no checker installed never gets a Collection entry,
// and checkCallSite correctly reports it set nothing.
func TestCheckCallSiteNoCheckerInstalled(t *testing.T) {
	e := New(Undefined, nil)
	ref := Reference{HasCaller: true, Caller: NewJSObject(), Callee: &Callee{Method: Undefined}}
	if e.checkCallSite(ref) {
		t.Fatal("checkCallSite should report false with no Checker installed")
	}
	if e.Collection.Len() != 0 {
		t.Fatalf("expected no Collection entries, got %d", e.Collection.Len())
	}
}

// stubChecker is a minimal Checker used to exercise checkFlag reentrancy:
// it matches every call and always proposes the same status.
type stubChecker struct {
	calls int
}

func (s *stubChecker) Dispatch(_, _, _ interface{}) (*CheckStatus, bool, error) {
	s.calls++
	return &CheckStatus{Type: "mutation"}, true, nil
}

// checkFlag must prevent re-entrant dispatch: a call whose callee itself
// makes another call-with-caller while checkFlag is set must not dispatch
// a second time, and the flag must be cleared again once the outer call
// finishes.
func TestCheckFlagPreventsReentrantDispatch(t *testing.T) {
	checker := &stubChecker{}
	e := New(Undefined, checker)
	caller := NewJSObject()

	outerRef := Reference{HasCaller: true, Caller: caller, Callee: &Callee{Method: Undefined}}
	setFlag := e.checkCallSite(outerRef)
	if !setFlag {
		t.Fatal("expected the first dispatch to set checkFlag")
	}
	if !e.checkFlag {
		t.Fatal("checkFlag should be set after a matched dispatch")
	}

	innerRef := Reference{HasCaller: true, Caller: caller, Callee: &Callee{Method: Undefined}}
	if e.checkCallSite(innerRef) {
		t.Fatal("a re-entrant dispatch must not report setting the flag again")
	}
	if checker.calls != 1 {
		t.Fatalf("checker dispatched %d times, want 1 (reentrancy guard failed)", checker.calls)
	}

	e.checkFlag = false // simulates the defer at the original call site
	if e.Collection.Len() != 1 {
		t.Fatalf("expected exactly 1 Collection entry, got %d", e.Collection.Len())
	}
}
