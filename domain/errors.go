package domain

import (
	"errors"
	"fmt"
)

// ErrorCode classifies user-visible failures.
type ErrorCode string

const (
	// ErrCodeInvalidInput marks input that is not a well-formed program AST
	ErrCodeInvalidInput ErrorCode = "invalid_input"

	// ErrCodeUnsupported marks constructs the engine does not model
	ErrCodeUnsupported ErrorCode = "unsupported_construct"

	// ErrCodeIllegalJump marks break/continue without a valid target
	ErrCodeIllegalJump ErrorCode = "illegal_jump_target"

	// ErrCodeTooDeep marks inputs that exceed the nesting limit
	ErrCodeTooDeep ErrorCode = "input_too_deep"

	// ErrCodeParse marks files the front-end could not parse
	ErrCodeParse ErrorCode = "parse_error"

	// ErrCodeConfig marks configuration loading failures
	ErrCodeConfig ErrorCode = "config_error"

	// ErrCodeFile marks file collection failures
	ErrCodeFile ErrorCode = "file_error"
)

// FlowError is a classified error with an optional cause.
type FlowError struct {
	Code    ErrorCode
	Message string
	Err     error
}

// Error implements the error interface
func (e *FlowError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error
func (e *FlowError) Unwrap() error {
	return e.Err
}

// NewInvalidInputError creates an invalid-input error
func NewInvalidInputError(message string, err error) *FlowError {
	return &FlowError{Code: ErrCodeInvalidInput, Message: message, Err: err}
}

// NewUnsupportedError creates an unsupported-construct error
func NewUnsupportedError(message string, err error) *FlowError {
	return &FlowError{Code: ErrCodeUnsupported, Message: message, Err: err}
}

// NewParseError creates a parse error
func NewParseError(message string, err error) *FlowError {
	return &FlowError{Code: ErrCodeParse, Message: message, Err: err}
}

// NewConfigError creates a configuration error
func NewConfigError(message string, err error) *FlowError {
	return &FlowError{Code: ErrCodeConfig, Message: message, Err: err}
}

// NewFileError creates a file collection error
func NewFileError(message string, err error) *FlowError {
	return &FlowError{Code: ErrCodeFile, Message: message, Err: err}
}

// CodeOf extracts the error code, or empty when err is not a FlowError.
func CodeOf(err error) ErrorCode {
	var fe *FlowError
	if errors.As(err, &fe) {
		return fe.Code
	}
	return ""
}
