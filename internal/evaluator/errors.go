package evaluator

import "fmt"

// Exception wraps a thrown ECMAScript value. It is propagated with
// panic/recover — Go's native exception mechanism — and is only ever
// caught by a TryStatement's handler.
type Exception struct {
	Value interface{}
}

func (e *Exception) Error() string {
	return fmt.Sprintf("uncaught exception: %v", e.Value)
}

// throwValue raises a JavaScript-level exception.
func throwValue(v interface{}) {
	panic(&Exception{Value: v})
}

// StructuralError reports a fatal implementation error — an unknown node
// kind or a malformed reference. It is only ever recovered at the ParseAst
// boundary, where it becomes a conventional Go error.
type StructuralError struct {
	Message string
}

func (e *StructuralError) Error() string { return e.Message }

func structuralErrorf(format string, a ...interface{}) {
	panic(&StructuralError{Message: fmt.Sprintf(format, a...)})
}
