package errors

import (
	"fmt"
	"time"

	"github.com/standardbeagle/doctree/internal/types"
)

// Error types for the doctree conversion system
type ErrorType string

const (
	// Conversion errors
	ErrorTypeConvert ErrorType = "convert"
	ErrorTypeParse   ErrorType = "parse"
	ErrorTypeBind    ErrorType = "bind"

	// File errors
	ErrorTypeFileNotFound ErrorType = "file_not_found"
	ErrorTypePermission   ErrorType = "permission"

	// Configuration errors
	ErrorTypeConfig ErrorType = "config"

	// Internal errors
	ErrorTypeInternal ErrorType = "internal"
)

// ConvertError represents an error during reflection-tree conversion
type ConvertError struct {
	Type        ErrorType
	FilePath    string
	Operation   string
	Underlying  error
	Timestamp   time.Time
	Recoverable bool
}

// NewConvertError creates a new conversion error with context
func NewConvertError(op string, err error) *ConvertError {
	return &ConvertError{
		Type:       ErrorTypeConvert,
		Operation:  op,
		Underlying: err,
		Timestamp:  time.Now(),
	}
}

// NewBindError creates a conversion error for a declaration whose binding
// could not be resolved
func NewBindError(op string, err error) *ConvertError {
	return &ConvertError{
		Type:       ErrorTypeBind,
		Operation:  op,
		Underlying: err,
		Timestamp:  time.Now(),
	}
}

// WithFile adds file information to the error
func (e *ConvertError) WithFile(path string) *ConvertError {
	e.FilePath = path
	return e
}

// WithRecoverable marks the error as recoverable
func (e *ConvertError) WithRecoverable(recoverable bool) *ConvertError {
	e.Recoverable = recoverable
	return e
}

// Error implements the error interface
func (e *ConvertError) Error() string {
	if e.FilePath != "" {
		return fmt.Sprintf("%s %s failed for %s: %v", e.Type, e.Operation, e.FilePath, e.Underlying)
	}
	return fmt.Sprintf("%s %s failed: %v", e.Type, e.Operation, e.Underlying)
}

// Unwrap returns the underlying error for errors.Is/As
func (e *ConvertError) Unwrap() error {
	return e.Underlying
}

// IsRecoverable checks if the error can be retried
func (e *ConvertError) IsRecoverable() bool {
	return e.Recoverable
}

// MissingBindingError reports a node that was required to have a semantic
// binding but did not. This is a programming-logic bug in the caller, not an
// expected resolution miss, so it carries enough position detail to find the
// offending visitor.
type MissingBindingError struct {
	NodeKind string
	Position types.Position
}

// NewMissingBindingError creates a missing-binding error for the given
// syntax-node kind at the given source position.
func NewMissingBindingError(nodeKind string, pos types.Position) *MissingBindingError {
	return &MissingBindingError{NodeKind: nodeKind, Position: pos}
}

// Error implements the error interface
func (e *MissingBindingError) Error() string {
	return fmt.Sprintf("expected %s node at %s:%d to have a binding, but none was found",
		e.NodeKind, e.Position.File, e.Position.Line)
}

// InactiveProgramError reports access to the active compilation unit while
// none is set. It signals a structural ordering bug in the orchestrator: a
// context was used outside an active traversal pass.
type InactiveProgramError struct {
	Operation string
}

// NewInactiveProgramError creates an inactive-program error naming the
// operation that required an active unit.
func NewInactiveProgramError(op string) *InactiveProgramError {
	return &InactiveProgramError{Operation: op}
}

// Error implements the error interface
func (e *InactiveProgramError) Error() string {
	return fmt.Sprintf("%s requires an active program, but none is set", e.Operation)
}

// ParseError represents a parsing error with source position
type ParseError struct {
	Type       ErrorType
	FileID     types.FileID
	FilePath   string
	Line       int
	Column     int
	Underlying error
	Timestamp  time.Time
}

// NewParseError creates a new parse error
func NewParseError(fileID types.FileID, path string, line, column int, err error) *ParseError {
	return &ParseError{
		Type:       ErrorTypeParse,
		FileID:     fileID,
		FilePath:   path,
		Line:       line,
		Column:     column,
		Underlying: err,
		Timestamp:  time.Now(),
	}
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse failed at %s:%d:%d: %v", e.FilePath, e.Line, e.Column, e.Underlying)
	}
	return fmt.Sprintf("parse failed for %s: %v", e.FilePath, e.Underlying)
}

// Unwrap returns the underlying error for errors.Is/As
func (e *ParseError) Unwrap() error {
	return e.Underlying
}

// FileError represents a file-related error
type FileError struct {
	Type       ErrorType
	Path       string
	Operation  string
	Underlying error
	Timestamp  time.Time
}

// NewFileError creates a new file error
func NewFileError(op, path string, err error) *FileError {
	return &FileError{
		Type:       ErrorTypeFileNotFound,
		Path:       path,
		Operation:  op,
		Underlying: err,
		Timestamp:  time.Now(),
	}
}

// Error implements the error interface
func (e *FileError) Error() string {
	return fmt.Sprintf("file %s failed for %s: %v", e.Operation, e.Path, e.Underlying)
}

// Unwrap returns the underlying error for errors.Is/As
func (e *FileError) Unwrap() error {
	return e.Underlying
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Type       ErrorType
	Field      string
	Value      string
	Suggestion string
	Underlying error
}

// NewConfigError creates a new configuration error
func NewConfigError(field, value string, err error) *ConfigError {
	return &ConfigError{
		Type:       ErrorTypeConfig,
		Field:      field,
		Value:      value,
		Underlying: err,
	}
}

// WithSuggestion attaches a closest-match suggestion for the bad value
func (e *ConfigError) WithSuggestion(s string) *ConfigError {
	e.Suggestion = s
	return e
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	msg := fmt.Sprintf("config field %q", e.Field)
	if e.Value != "" {
		msg += fmt.Sprintf(" value %q", e.Value)
	}
	msg += fmt.Sprintf(": %v", e.Underlying)
	if e.Suggestion != "" {
		msg += fmt.Sprintf(" (did you mean %q?)", e.Suggestion)
	}
	return msg
}

// Unwrap returns the underlying error for errors.Is/As
func (e *ConfigError) Unwrap() error {
	return e.Underlying
}

// MultiError aggregates independent per-file errors from the parse phase
type MultiError struct {
	Errors []error
}

// NewMultiError creates a new multi-error, dropping nil entries
func NewMultiError(errs []error) *MultiError {
	filtered := make([]error, 0, len(errs))
	for _, err := range errs {
		if err != nil {
			filtered = append(filtered, err)
		}
	}
	return &MultiError{Errors: filtered}
}

// Error implements the error interface
func (e *MultiError) Error() string {
	if len(e.Errors) == 0 {
		return "no errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	return fmt.Sprintf("%d errors: %v", len(e.Errors), e.Errors)
}

// Unwrap returns all errors
func (e *MultiError) Unwrap() []error {
	return e.Errors
}
