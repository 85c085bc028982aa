package evaluator

import "github.com/jstrack/interp/internal/ast"

// hoist recursively collects every `var`-declared name and
// FunctionDeclaration name reachable without
// crossing a function boundary. `var` names are installed as Undefined
// first, then function declaration names are bound to their actual
// function value — so a function declaration always wins over a `var` of
// the same name, regardless of which the walk visits first.
func (e *Evaluator) hoist(block *ast.BlockStatement, env *ClosureStack) {
	var funcDecls []*ast.FunctionDeclaration
	e.hoistStatements(block.Body, env, &funcDecls)
	for _, fd := range funcDecls {
		env.Set(fd.ID.Name, e.makeFunction(fd.ID.Name, fd.Params, fd.Body, env))
	}
}

func (e *Evaluator) hoistStatements(stmts []ast.Node, env *ClosureStack, funcDecls *[]*ast.FunctionDeclaration) {
	for _, stmt := range stmts {
		e.hoistStatement(stmt, env, funcDecls)
	}
}

func (e *Evaluator) hoistStatement(stmt ast.Node, env *ClosureStack, funcDecls *[]*ast.FunctionDeclaration) {
	switch n := stmt.(type) {
	case *ast.FunctionDeclaration:
		*funcDecls = append(*funcDecls, n)
	case *ast.VariableDeclaration:
		if n.Kind != "var" {
			return
		}
		for _, decl := range n.Declarations {
			env.Set(decl.ID.Name, Undefined)
		}
	case *ast.BlockStatement:
		e.hoistStatements(n.Body, env, funcDecls)
	case *ast.IfStatement:
		e.hoistStatement(n.Consequent, env, funcDecls)
		if n.Alternate != nil {
			e.hoistStatement(n.Alternate, env, funcDecls)
		}
	case *ast.SwitchStatement:
		for _, c := range n.Cases {
			e.hoistStatements(c.Consequent, env, funcDecls)
		}
	case *ast.TryStatement:
		e.hoistStatements(n.Block.Body, env, funcDecls)
		if n.Handler != nil {
			e.hoistStatements(n.Handler.Body.Body, env, funcDecls)
		}
		if n.Finalizer != nil {
			e.hoistStatements(n.Finalizer.Body, env, funcDecls)
		}
	case *ast.ForStatement:
		if n.Init != nil {
			e.hoistStatement(n.Init, env, funcDecls)
		}
		e.hoistStatement(n.Body, env, funcDecls)
	case *ast.ForInStatement:
		e.hoistStatement(n.Left, env, funcDecls)
		e.hoistStatement(n.Body, env, funcDecls)
	case *ast.WhileStatement:
		e.hoistStatement(n.Body, env, funcDecls)
	case *ast.DoWhileStatement:
		e.hoistStatement(n.Body, env, funcDecls)
	case *ast.LabeledStatement:
		e.hoistStatement(n.Body, env, funcDecls)
	}
}
