package flow

import (
	"fmt"

	"github.com/ludo-technologies/jsflow/internal/ast"
)

// ErrorKind classifies a build failure.
type ErrorKind int

const (
	// ErrInvalidInput means the input is not a Program AST.
	ErrInvalidInput ErrorKind = iota

	// ErrUnsupportedConstruct means a statement or expression tag is
	// unknown to the dispatcher.
	ErrUnsupportedConstruct

	// ErrIllegalJumpTarget means a break or continue has no resolvable
	// target, or a continue refers to a non-iteration label.
	ErrIllegalJumpTarget

	// ErrInputTooDeep means the recursion depth limit was exceeded.
	ErrInputTooDeep
)

// String returns the error kind name.
func (k ErrorKind) String() string {
	switch k {
	case ErrInvalidInput:
		return "InvalidInput"
	case ErrUnsupportedConstruct:
		return "UnsupportedConstruct"
	case ErrIllegalJumpTarget:
		return "IllegalJumpTarget"
	case ErrInputTooDeep:
		return "InputTooDeep"
	default:
		return "Unknown"
	}
}

// BuildError is the typed error returned by ParseProgram. Node, when set,
// points at the offending AST node.
type BuildError struct {
	Kind    ErrorKind
	Message string
	Node    *ast.Node
}

// Error implements the error interface.
func (e *BuildError) Error() string {
	if e.Node != nil && e.Node.Location.File != "" {
		return fmt.Sprintf("%s: %s at %s", e.Kind, e.Message, e.Node.Location)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Is lets errors.Is match two build errors by kind.
func (e *BuildError) Is(target error) bool {
	t, ok := target.(*BuildError)
	return ok && t.Kind == e.Kind
}

func buildErrorf(kind ErrorKind, node *ast.Node, format string, args ...interface{}) *BuildError {
	return &BuildError{Kind: kind, Message: fmt.Sprintf(format, args...), Node: node}
}

// IsKind reports whether err is a BuildError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	e, ok := err.(*BuildError)
	return ok && e.Kind == kind
}
