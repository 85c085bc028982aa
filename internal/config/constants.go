// Package config carries constant tables shared across the interpreter
// instead of scattering magic strings through the evaluator.
package config

// Version is the current js-interp version. Set at build time: overwritten
// via -ldflags, or by a release script.
var Version = "0.1.0"

// Flow-state bit names, used only for diagnostics/logging.
const (
	FlowBreak    = "BREAK"
	FlowContinue = "CONTINUE"
	FlowReturn   = "RETURN"
)

// VarDeclarationKind is the only VariableDeclaration.Kind this interpreter
// recognizes; `let`/`const` are out of scope.
const VarDeclarationKind = "var"

// Special identifier names that resolve to the language's null/undefined
// values rather than through the closure stack — some AST producers encode
// these as identifiers, not keywords.
const (
	NullIdentifierName      = "null"
	UndefinedIdentifierName = "undefined"
	ThisBindingName         = "this"
	ArgumentsBindingName    = "arguments"
)

// PlainAssignOperator is the default assignment operator; every `<op>=`
// AssignmentExpression is rewritten down to this one before being applied.
const PlainAssignOperator = "="

// DeleteOperator is the one unary operator the interpreter installs itself
// rather than sourcing from the external operator tables, because it needs
// access to closure/context state.
const DeleteOperator = "delete"
