package apperr

import "fmt"

// PanicError carries a recovered panic value and the stack it was raised on.
type PanicError struct {
	Op    string
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("%s panicked: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// Trace returns the panic value followed by the goroutine stack.
func (e *PanicError) Trace() string {
	return fmt.Sprintf("%v\n%s", e.Value, e.Stack)
}
