// Package errors provides centralized error definitions and error handling
// utilities for the prioritizer codebase. It defines sentinel errors, typed
// semantic errors, error constructors with context wrapping, and error
// classification helpers.
//
// # Error Types
//
// Semantic errors represent the failure categories of the core contracts:
//   - ValidationError: bad caller input (empty task list, bad request body)
//   - NotFoundError: a persisted resource does not exist
//   - SchemaError: model output or stored data failed structural validation
//   - UpstreamError: the external completion service failed
//   - IndexError: a task index is outside the session's range
//
// # Usage
//
// Creating errors:
//
//	err := errors.NewValidationError("task list cannot be empty").WithField("tasks")
//	err := errors.NewUpstreamError("completion request failed", cause)
//
// Checking errors:
//
//	if errors.Is(err, errors.ErrNoSavedSession) { ... }
//
//	var schemaErr *errors.SchemaError
//	if errors.As(err, &schemaErr) { ... }
//
//	if errors.IsRetryable(err) { ... }
//	if errors.IsUserFacing(err) { ... }
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Re-export standard library functions for convenience.
// This allows callers to import only this package for all error handling.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	New    = errors.New
	Join   = errors.Join
)

// Severity represents the severity level of an error.
type Severity int

const (
	// SeverityDebug is for errors that are useful for debugging but not critical.
	SeverityDebug Severity = iota
	// SeverityInfo is for informational errors that don't indicate a problem.
	SeverityInfo
	// SeverityWarning is for errors that might indicate a problem but aren't critical.
	SeverityWarning
	// SeverityError is for errors that indicate a real problem.
	SeverityError
	// SeverityCritical is for errors that require immediate attention.
	SeverityCritical
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityDebug:
		return "debug"
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// -----------------------------------------------------------------------------
// Sentinel Errors
// -----------------------------------------------------------------------------

// Session persistence sentinel errors
var (
	// ErrNoSavedSession indicates that no latest session has been saved yet.
	// This is the expected first-run condition, distinct from corruption.
	ErrNoSavedSession = New("no saved session")
	// ErrSessionCorrupted indicates that persisted session data is unreadable.
	ErrSessionCorrupted = New("session data corrupted")
)

// Prioritization sentinel errors
var (
	// ErrEmptyTaskList indicates that prioritization was requested with no tasks.
	ErrEmptyTaskList = New("task list is empty")
	// ErrUpstream indicates that the external completion service failed.
	ErrUpstream = New("completion service failed")
	// ErrMalformedResult indicates that the completion output failed schema validation.
	ErrMalformedResult = New("malformed prioritization result")
)

// General sentinel errors
var (
	// ErrIndexOutOfRange indicates a task index outside [0, len(tasks)).
	ErrIndexOutOfRange = New("task index out of range")
	// ErrInvalidInput indicates that input validation failed.
	ErrInvalidInput = New("invalid input")
)

// -----------------------------------------------------------------------------
// Base Error Interface
// -----------------------------------------------------------------------------

// PrioritizerError is the base interface for all prioritizer errors.
// It extends the standard error interface with additional methods for
// error handling and classification.
type PrioritizerError interface {
	error

	// Unwrap returns the underlying error, if any.
	Unwrap() error

	// Is reports whether this error matches the target error.
	Is(target error) bool

	// Severity returns the severity level of this error.
	Severity() Severity

	// IsRetryable returns true if the error is transient and the operation
	// may succeed on retry.
	IsRetryable() bool

	// IsUserFacing returns true if the error message is safe to display
	// to end users.
	IsUserFacing() bool
}

// -----------------------------------------------------------------------------
// Base Error Implementation
// -----------------------------------------------------------------------------

// baseError provides common functionality for all error types.
type baseError struct {
	message    string
	cause      error
	severity   Severity
	retryable  bool
	userFacing bool
}

// Error returns the error message.
func (e *baseError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

// Unwrap returns the underlying error.
func (e *baseError) Unwrap() error {
	return e.cause
}

// Is checks if this error matches the target.
func (e *baseError) Is(target error) bool {
	if e.cause != nil {
		return errors.Is(e.cause, target)
	}
	return false
}

// Severity returns the error severity.
func (e *baseError) Severity() Severity {
	return e.severity
}

// IsRetryable returns whether the error is retryable.
func (e *baseError) IsRetryable() bool {
	return e.retryable
}

// IsUserFacing returns whether the error is safe to show users.
func (e *baseError) IsUserFacing() bool {
	return e.userFacing
}

// -----------------------------------------------------------------------------
// Semantic Errors
// -----------------------------------------------------------------------------

// ValidationError represents invalid caller input. It is never retried and
// surfaces immediately with the violated precondition named.
//
// Example:
//
//	err := errors.NewValidationError("task list cannot be empty")
//	err = err.WithField("tasks")
type ValidationError struct {
	baseError
	Field string
	Value any
}

// NewValidationError creates a new ValidationError.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{
		baseError: baseError{
			message:    message,
			severity:   SeverityWarning,
			retryable:  false,
			userFacing: true,
		},
	}
}

// WithField adds a field name to the error context.
func (e *ValidationError) WithField(field string) *ValidationError {
	e.Field = field
	return e
}

// WithValue adds the invalid value to the error context.
func (e *ValidationError) WithValue(value any) *ValidationError {
	e.Value = value
	return e
}

// WithCause adds a cause to the error.
func (e *ValidationError) WithCause(cause error) *ValidationError {
	e.cause = cause
	return e
}

// Error returns the formatted error message.
func (e *ValidationError) Error() string {
	var parts []string
	if e.Field != "" {
		parts = append(parts, fmt.Sprintf("field=%s", e.Field))
	}
	if e.Value != nil {
		parts = append(parts, fmt.Sprintf("value=%v", e.Value))
	}

	prefix := "validation error"
	if len(parts) > 0 {
		prefix = fmt.Sprintf("validation error [%s]", strings.Join(parts, ", "))
	}

	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// Is checks if this error matches the target.
func (e *ValidationError) Is(target error) bool {
	if _, ok := target.(*ValidationError); ok {
		return true
	}
	if errors.Is(target, ErrInvalidInput) {
		return true
	}
	return e.baseError.Is(target)
}

// NotFoundError represents a persisted resource that could not be found.
// For the latest-session pointer this is the expected first-run condition.
//
// Example:
//
//	err := errors.NewNotFoundError("session", "latest")
//	fmt.Println(err) // "session 'latest' not found"
type NotFoundError struct {
	baseError
	ResourceType string
	ResourceID   string
}

// NewNotFoundError creates a new NotFoundError.
func NewNotFoundError(resourceType, resourceID string) *NotFoundError {
	return &NotFoundError{
		baseError: baseError{
			message:    fmt.Sprintf("%s '%s' not found", resourceType, resourceID),
			cause:      ErrNoSavedSession,
			severity:   SeverityInfo,
			retryable:  false,
			userFacing: true,
		},
		ResourceType: resourceType,
		ResourceID:   resourceID,
	}
}

// WithCause adds a cause to the error.
func (e *NotFoundError) WithCause(cause error) *NotFoundError {
	e.cause = cause
	return e
}

// Error returns the formatted error message.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s '%s' not found", e.ResourceType, e.ResourceID)
}

// Is checks if this error matches the target.
func (e *NotFoundError) Is(target error) bool {
	if _, ok := target.(*NotFoundError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// SchemaError represents structured data that failed validation, either raw
// model output rejected by normalization or a corrupted persisted session.
//
// Example:
//
//	err := errors.NewSchemaError("missing prioritized_tasks key", cause)
//	err = err.WithRaw(rawText)
type SchemaError struct {
	baseError
	// Raw holds a snippet of the offending input, for diagnostics.
	Raw string
}

// NewSchemaError creates a new SchemaError.
func NewSchemaError(message string, cause error) *SchemaError {
	if cause == nil {
		cause = ErrMalformedResult
	}
	return &SchemaError{
		baseError: baseError{
			message:    message,
			cause:      cause,
			severity:   SeverityError,
			retryable:  false,
			userFacing: true,
		},
	}
}

// WithRaw attaches a snippet of the raw input to the error context.
// Input longer than 200 bytes is truncated.
func (e *SchemaError) WithRaw(raw string) *SchemaError {
	if len(raw) > 200 {
		raw = raw[:200] + "..."
	}
	e.Raw = raw
	return e
}

// Error returns the formatted error message.
func (e *SchemaError) Error() string {
	msg := fmt.Sprintf("schema error: %s", e.message)
	if e.cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.cause)
	}
	if e.Raw != "" {
		msg = fmt.Sprintf("%s (raw: %s)", msg, e.Raw)
	}
	return msg
}

// Is checks if this error matches the target.
func (e *SchemaError) Is(target error) bool {
	if _, ok := target.(*SchemaError); ok {
		return true
	}
	if errors.Is(target, ErrMalformedResult) {
		return true
	}
	return e.baseError.Is(target)
}

// UpstreamError represents a failure of the external completion service,
// either the HTTP call itself or output that the schema layer rejected.
// The caller may re-issue the whole request; this core performs no
// internal retry or backoff.
//
// Example:
//
//	err := errors.NewUpstreamError("completion request failed", cause)
//	err = err.WithModel("llama-3.1-8b-instant")
type UpstreamError struct {
	baseError
	Model      string
	StatusCode int
}

// NewUpstreamError creates a new UpstreamError.
func NewUpstreamError(message string, cause error) *UpstreamError {
	if cause == nil {
		cause = ErrUpstream
	}
	return &UpstreamError{
		baseError: baseError{
			message:    message,
			cause:      cause,
			severity:   SeverityError,
			retryable:  true,
			userFacing: true,
		},
	}
}

// WithModel adds the model identifier to the error context.
func (e *UpstreamError) WithModel(model string) *UpstreamError {
	e.Model = model
	return e
}

// WithStatusCode adds the HTTP status code to the error context.
func (e *UpstreamError) WithStatusCode(code int) *UpstreamError {
	e.StatusCode = code
	return e
}

// WithRetryable sets whether the error is retryable.
func (e *UpstreamError) WithRetryable(r bool) *UpstreamError {
	e.retryable = r
	return e
}

// Error returns the formatted error message.
func (e *UpstreamError) Error() string {
	var parts []string
	if e.Model != "" {
		parts = append(parts, fmt.Sprintf("model=%s", e.Model))
	}
	if e.StatusCode != 0 {
		parts = append(parts, fmt.Sprintf("status=%d", e.StatusCode))
	}

	prefix := "upstream error"
	if len(parts) > 0 {
		prefix = fmt.Sprintf("upstream error [%s]", strings.Join(parts, ", "))
	}

	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// Is checks if this error matches the target.
func (e *UpstreamError) Is(target error) bool {
	if _, ok := target.(*UpstreamError); ok {
		return true
	}
	if errors.Is(target, ErrUpstream) {
		return true
	}
	return e.baseError.Is(target)
}

// IndexError represents a task index outside the session's valid range.
//
// Example:
//
//	err := errors.NewIndexError(5, 3)
//	fmt.Println(err) // "index error: task index 5 out of range [0, 3)"
type IndexError struct {
	baseError
	Index int
	Count int
}

// NewIndexError creates a new IndexError for index against count tasks.
func NewIndexError(index, count int) *IndexError {
	return &IndexError{
		baseError: baseError{
			message:    fmt.Sprintf("task index %d out of range [0, %d)", index, count),
			cause:      ErrIndexOutOfRange,
			severity:   SeverityWarning,
			retryable:  false,
			userFacing: true,
		},
		Index: index,
		Count: count,
	}
}

// Error returns the formatted error message.
func (e *IndexError) Error() string {
	return fmt.Sprintf("index error: %s", e.message)
}

// Is checks if this error matches the target.
func (e *IndexError) Is(target error) bool {
	if _, ok := target.(*IndexError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// -----------------------------------------------------------------------------
// Error Classification Helpers
// -----------------------------------------------------------------------------

// IsRetryable returns true if the error represents a transient condition
// that may succeed on retry. Upstream failures are retryable by the caller
// re-issuing the whole request; validation and index errors are not.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	var perr PrioritizerError
	if As(err, &perr) {
		return perr.IsRetryable()
	}

	return false
}

// IsUserFacing returns true if the error message is safe to display to
// end users.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}

	var perr PrioritizerError
	if As(err, &perr) {
		return perr.IsUserFacing()
	}

	var notFound *NotFoundError
	var validation *ValidationError
	var schema *SchemaError
	var upstream *UpstreamError
	var index *IndexError

	if As(err, &notFound) || As(err, &validation) ||
		As(err, &schema) || As(err, &upstream) || As(err, &index) {
		return true
	}

	return false
}

// GetSeverity returns the severity level of the error.
// Returns SeverityError for errors that don't implement PrioritizerError.
func GetSeverity(err error) Severity {
	if err == nil {
		return SeverityDebug
	}

	var perr PrioritizerError
	if As(err, &perr) {
		return perr.Severity()
	}

	return SeverityError
}

// -----------------------------------------------------------------------------
// Convenience Constructors
// -----------------------------------------------------------------------------

// Wrap wraps an error with additional context message.
//
// Example:
//
//	err := errors.Wrap(baseErr, "failed to save session")
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with a formatted context message.
//
// Example:
//
//	err := errors.Wrapf(baseErr, "failed to toggle task %d", index)
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
