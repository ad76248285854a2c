// Package errors provides standardized error types and helpers for issuetex.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common cases
var (
	// ErrInvalidInput indicates invalid input or validation failure
	ErrInvalidInput = errors.New("invalid input")
	// ErrSyntax indicates markup that does not conform to the textile grammar
	ErrSyntax = errors.New("syntax error")
	// ErrUnresolvedFootnote indicates an anchor without a matching footnote definition
	ErrUnresolvedFootnote = errors.New("unresolved footnote")
)

// SyntaxError reports markup outside the grammar. It is fatal for the
// whole document.
type SyntaxError struct {
	Source  string // File path or other source identifier, if known
	Line    int    // 1-based line of the offending token, 0 if unknown
	Column  int    // 1-based column of the offending token, 0 if unknown
	Message string // Parser diagnostic
	Err     error  // Underlying parser error, if any
}

func (e *SyntaxError) Error() string {
	loc := ""
	if e.Line > 0 {
		loc = fmt.Sprintf(":%d:%d", e.Line, e.Column)
	}
	if e.Source != "" {
		return fmt.Sprintf("syntax error in %s%s: %s", e.Source, loc, e.Message)
	}
	if loc != "" {
		return fmt.Sprintf("syntax error at %s: %s", loc[1:], e.Message)
	}
	return fmt.Sprintf("syntax error: %s", e.Message)
}

func (e *SyntaxError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrSyntax, e.Err}
	}
	return []error{ErrSyntax}
}

// UnresolvedFootnoteError reports an anchor whose index has no footnote
// definition in the enclosing content block.
type UnresolvedFootnoteError struct {
	Index string // Footnote index named by the anchor
	Line  int    // Line of the anchor, 0 if unknown
}

func (e *UnresolvedFootnoteError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("no footnote found for anchor <%s> on line %d", e.Index, e.Line)
	}
	return fmt.Sprintf("no footnote found for anchor <%s>", e.Index)
}

func (e *UnresolvedFootnoteError) Unwrap() error {
	return ErrUnresolvedFootnote
}

// MismatchError reports two inputs whose counts must agree but do not,
// e.g. evidence files and location labels.
type MismatchError struct {
	Field string // What was counted (e.g., "evidence locations")
	Want  int    // Expected count
	Got   int    // Actual count
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("%s mismatch: expected %d, got %d", e.Field, e.Want, e.Got)
}

func (e *MismatchError) Unwrap() error {
	return ErrInvalidInput
}

// ValidationError represents an input validation error with context
type ValidationError struct {
	Field   string // Field name that failed validation
	Value   string // Value that failed validation (may be redacted)
	Message string // Human-readable error message
	Err     error  // Underlying error, if any
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

func (e *ValidationError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrInvalidInput
}

// IOError represents an I/O operation error with context
type IOError struct {
	Operation string // Operation being performed (e.g., "read", "write", "open")
	Path      string // File/resource path involved
	Err       error  // Underlying error
}

func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("failed to %s %s: %v", e.Operation, e.Path, e.Err)
	}
	return fmt.Sprintf("failed to %s: %v", e.Operation, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// Helper functions for creating common errors

// NewSyntax creates a SyntaxError
func NewSyntax(source, message string, err error) *SyntaxError {
	return &SyntaxError{
		Source:  source,
		Message: message,
		Err:     err,
	}
}

// NewUnresolvedFootnote creates an UnresolvedFootnoteError
func NewUnresolvedFootnote(index string, line int) *UnresolvedFootnoteError {
	return &UnresolvedFootnoteError{
		Index: index,
		Line:  line,
	}
}

// NewMismatch creates a MismatchError
func NewMismatch(field string, want, got int) *MismatchError {
	return &MismatchError{
		Field: field,
		Want:  want,
		Got:   got,
	}
}

// NewValidation creates a ValidationError
func NewValidation(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// NewIO creates an IOError
func NewIO(operation, path string, err error) *IOError {
	return &IOError{
		Operation: operation,
		Path:      path,
		Err:       err,
	}
}

// Wrap adds context to an error. If err is nil, returns nil.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf adds formatted context to an error. If err is nil, returns nil.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// Is wraps errors.Is for convenience
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As wraps errors.As for convenience
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
