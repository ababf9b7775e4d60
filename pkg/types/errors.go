package types

import "fmt"

// EngineError represents a failure inside a refactoring operation.
type EngineError struct {
	Kind    ErrorKind
	Message string
	File    string
	Line    int
	Column  int
	Cause   error
}

func (e *EngineError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("%s:%d:%d: %s", e.File, e.Line, e.Column, e.Message)
	}
	return e.Message
}

func (e *EngineError) Unwrap() error {
	return e.Cause
}

type ErrorKind int

const (
	ParseError ErrorKind = iota
	SymbolNotFound
	InvalidOperation
	Unsupported
	FileSystemError
)

// NewEngineError builds an EngineError without position information.
func NewEngineError(kind ErrorKind, format string, args ...any) *EngineError {
	return &EngineError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}
