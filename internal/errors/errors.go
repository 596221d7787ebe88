// Package errors provides a lightweight structured error type for
// category-based classification and retry semantics in the export pipeline
// and the publisher.
package errors

import "fmt"

// ErrorCategory classifies a builder error.
type ErrorCategory string

const (
	// User-facing configuration and input errors
	CategoryConfig   ErrorCategory = "config"
	CategoryDocument ErrorCategory = "document"
	CategoryAuth     ErrorCategory = "auth"

	// External system integration errors
	CategoryNetwork ErrorCategory = "network"
	CategoryPublish ErrorCategory = "publish"

	// Export and processing errors
	CategoryRender     ErrorCategory = "render"
	CategoryArchive    ErrorCategory = "archive"
	CategoryFileSystem ErrorCategory = "filesystem"

	// Runtime and infrastructure errors
	CategoryInternal ErrorCategory = "internal"
)

// BuilderError is a structured error with category, retryability and context.
type BuilderError struct {
	Category  ErrorCategory  `json:"category"`
	Message   string         `json:"message"`
	Cause     error          `json:"cause,omitempty"`
	Retryable bool           `json:"retryable"`
	Context   map[string]any `json:"context,omitempty"`
}

// Error implements the error interface.
func (e *BuilderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Category, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Category, e.Message)
}

// Unwrap exposes the underlying cause for errors.Is/As chains.
func (e *BuilderError) Unwrap() error { return e.Cause }

// WithContext attaches a structured context field to the error.
func (e *BuilderError) WithContext(key string, value any) *BuilderError {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}

// New creates a BuilderError with the given category.
func New(category ErrorCategory, message string) *BuilderError {
	return &BuilderError{Category: category, Message: message}
}

// Wrap creates a BuilderError that wraps an existing error.
func Wrap(err error, category ErrorCategory, message string) *BuilderError {
	return &BuilderError{Category: category, Message: message, Cause: err}
}

// WrapRetryable wraps an error and marks it safe to retry.
func WrapRetryable(err error, category ErrorCategory, message string) *BuilderError {
	return &BuilderError{Category: category, Message: message, Cause: err, Retryable: true}
}

// IsRetryable reports whether err carries the retryable flag.
func IsRetryable(err error) bool {
	if be, ok := err.(*BuilderError); ok {
		return be.Retryable
	}
	return false
}

// GetCategory extracts the category from an error, defaulting to
// CategoryInternal for foreign error types.
func GetCategory(err error) ErrorCategory {
	if be, ok := err.(*BuilderError); ok {
		return be.Category
	}
	return CategoryInternal
}
