package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common error conditions
var (
	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrComputation is returned when a similarity computation cannot produce a score
	ErrComputation = errors.New("similarity computation failed")

	// ErrEmptyVocabulary is returned when no terms survive tokenization and stop-word removal
	ErrEmptyVocabulary = errors.New("empty vocabulary; documents contain only stop words")

	// ErrUnsupportedFileType is returned when an uploaded document cannot be converted to text
	ErrUnsupportedFileType = errors.New("unsupported file type")

	// ErrUnreadableDocument is returned when a supported document cannot be parsed
	ErrUnreadableDocument = errors.New("unreadable document")

	// ErrInvalidVocabulary is returned when a skill vocabulary cannot be built
	ErrInvalidVocabulary = errors.New("invalid skill vocabulary")
)

// Field error codes
const (
	CodeRequired    = "REQUIRED"
	CodeTooLong     = "TOO_LONG"
	CodeInvalidFile = "INVALID_FILE"
)

// FieldError is a single failed check on a named input field.
type FieldError struct {
	Field   string
	Code    string
	Message string
}

// ValidationError represents an input validation error with field context.
// It may carry several field failures at once.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	switch len(e.Fields) {
	case 0:
		return "validation error"
	case 1:
		if e.Fields[0].Field != "" {
			return fmt.Sprintf("validation error for field '%s': %s", e.Fields[0].Field, e.Fields[0].Message)
		}
		return fmt.Sprintf("validation error: %s", e.Fields[0].Message)
	}

	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = fmt.Sprintf("'%s': %s", f.Field, f.Message)
	}
	return "validation errors: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// Add appends a field failure.
func (e *ValidationError) Add(field, code, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Code: code, Message: message})
}

// HasCode reports whether any field failed with the given code.
func (e *ValidationError) HasCode(code string) bool {
	for _, f := range e.Fields {
		if f.Code == code {
			return true
		}
	}
	return false
}

// HasErrors returns true if at least one field failed
func (e *ValidationError) HasErrors() bool {
	return len(e.Fields) > 0
}

// NewValidationError creates a new ValidationError with a single field failure
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Field: field, Message: message}}}
}

// ComputationError wraps a failure inside the similarity scorer.
type ComputationError struct {
	Stage string
	Err   error
}

func (e *ComputationError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("similarity computation failed during %s", e.Stage)
	}
	return fmt.Sprintf("similarity computation failed during %s: %v", e.Stage, e.Err)
}

func (e *ComputationError) Is(target error) bool {
	return target == ErrComputation
}

func (e *ComputationError) Unwrap() error {
	return e.Err
}

// NewComputationError creates a new ComputationError
func NewComputationError(stage string, err error) *ComputationError {
	return &ComputationError{Stage: stage, Err: err}
}

// UnsupportedFileTypeError represents an upload whose content type has no text extractor
type UnsupportedFileTypeError struct {
	Filename string
	MIMEType string
}

func (e *UnsupportedFileTypeError) Error() string {
	if e.Filename != "" {
		return fmt.Sprintf("unsupported file type '%s' for file '%s'", e.MIMEType, e.Filename)
	}
	return fmt.Sprintf("unsupported file type '%s'", e.MIMEType)
}

func (e *UnsupportedFileTypeError) Is(target error) bool {
	return target == ErrUnsupportedFileType
}

// NewUnsupportedFileTypeError creates a new UnsupportedFileTypeError
func NewUnsupportedFileTypeError(filename, mimeType string) *UnsupportedFileTypeError {
	return &UnsupportedFileTypeError{Filename: filename, MIMEType: mimeType}
}

// UnreadableDocumentError wraps a parser failure on a PDF or DOCX upload.
type UnreadableDocumentError struct {
	Filename string
	Format   string
	Err      error
}

func (e *UnreadableDocumentError) Error() string {
	if e.Filename != "" {
		return fmt.Sprintf("cannot read %s file '%s': %v", e.Format, e.Filename, e.Err)
	}
	return fmt.Sprintf("cannot read %s file: %v", e.Format, e.Err)
}

func (e *UnreadableDocumentError) Is(target error) bool {
	return target == ErrUnreadableDocument
}

func (e *UnreadableDocumentError) Unwrap() error {
	return e.Err
}

// NewUnreadableDocumentError creates a new UnreadableDocumentError
func NewUnreadableDocumentError(filename, format string, err error) *UnreadableDocumentError {
	return &UnreadableDocumentError{Filename: filename, Format: format, Err: err}
}

// VocabularyError reports a rejected skill term.
type VocabularyError struct {
	Position int
	Term     string
	Reason   string
}

func (e *VocabularyError) Error() string {
	return fmt.Sprintf("skill term %d (%q) rejected: %s", e.Position, e.Term, e.Reason)
}

func (e *VocabularyError) Is(target error) bool {
	return target == ErrInvalidVocabulary
}

// NewVocabularyError creates a new VocabularyError
func NewVocabularyError(position int, term, reason string) *VocabularyError {
	return &VocabularyError{Position: position, Term: term, Reason: reason}
}
