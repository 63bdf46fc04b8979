package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

// -----------------------------------------------------------------------------
// Severity Tests
// -----------------------------------------------------------------------------

func TestSeverity_String(t *testing.T) {
	tests := []struct {
		severity Severity
		want     string
	}{
		{SeverityDebug, "debug"},
		{SeverityInfo, "info"},
		{SeverityWarning, "warning"},
		{SeverityError, "error"},
		{SeverityCritical, "critical"},
		{Severity(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.severity.String(); got != tt.want {
				t.Errorf("Severity.String() = %q, want %q", got, tt.want)
			}
		})
	}
}

// -----------------------------------------------------------------------------
// ValidationError Tests
// -----------------------------------------------------------------------------

func TestNewValidationError(t *testing.T) {
	err := NewValidationError("task list cannot be empty")

	if err.Severity() != SeverityWarning {
		t.Errorf("Severity() = %v, want %v", err.Severity(), SeverityWarning)
	}
	if err.IsRetryable() {
		t.Error("IsRetryable() = true, want false")
	}
	if !err.IsUserFacing() {
		t.Error("IsUserFacing() = false, want true")
	}
}

func TestValidationError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *ValidationError
		want string
	}{
		{
			name: "basic error",
			err:  NewValidationError("task list cannot be empty"),
			want: "validation error: task list cannot be empty",
		},
		{
			name: "with field",
			err:  NewValidationError("task list cannot be empty").WithField("tasks"),
			want: "validation error [field=tasks]: task list cannot be empty",
		},
		{
			name: "with field and value",
			err:  NewValidationError("bad index").WithField("index").WithValue(5),
			want: "validation error [field=index, value=5]: bad index",
		},
		{
			name: "with cause",
			err:  NewValidationError("bad input").WithCause(ErrEmptyTaskList),
			want: "validation error: bad input: task list is empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidationError_Is(t *testing.T) {
	err := NewValidationError("test").WithCause(ErrEmptyTaskList)

	if !Is(err, &ValidationError{}) {
		t.Error("Is(ValidationError{}) = false, want true")
	}
	if !Is(err, ErrInvalidInput) {
		t.Error("Is(ErrInvalidInput) = false, want true")
	}
	if !Is(err, ErrEmptyTaskList) {
		t.Error("Is(ErrEmptyTaskList) = false, want true")
	}
	if Is(err, ErrNoSavedSession) {
		t.Error("Is(ErrNoSavedSession) = true, want false")
	}
}

// -----------------------------------------------------------------------------
// NotFoundError Tests
// -----------------------------------------------------------------------------

func TestNewNotFoundError(t *testing.T) {
	err := NewNotFoundError("session", "latest")

	want := "session 'latest' not found"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
	if !Is(err, ErrNoSavedSession) {
		t.Error("Is(ErrNoSavedSession) = false, want true")
	}
	if err.IsRetryable() {
		t.Error("IsRetryable() = true, want false")
	}
}

func TestNotFoundError_As(t *testing.T) {
	var err error = fmt.Errorf("wrapped: %w", NewNotFoundError("session", "latest"))

	var notFound *NotFoundError
	if !As(err, &notFound) {
		t.Fatal("As(*NotFoundError) = false, want true")
	}
	if notFound.ResourceType != "session" {
		t.Errorf("ResourceType = %q, want %q", notFound.ResourceType, "session")
	}
}

// -----------------------------------------------------------------------------
// SchemaError Tests
// -----------------------------------------------------------------------------

func TestNewSchemaError(t *testing.T) {
	err := NewSchemaError("missing prioritized_tasks key", nil)

	if !Is(err, ErrMalformedResult) {
		t.Error("Is(ErrMalformedResult) = false, want true")
	}
	if err.Severity() != SeverityError {
		t.Errorf("Severity() = %v, want %v", err.Severity(), SeverityError)
	}
	if err.IsRetryable() {
		t.Error("IsRetryable() = true, want false")
	}
}

func TestSchemaError_WithRaw_Truncates(t *testing.T) {
	raw := strings.Repeat("x", 500)
	err := NewSchemaError("bad json", nil).WithRaw(raw)

	if len(err.Raw) > 210 {
		t.Errorf("Raw length = %d, want truncated to ~200", len(err.Raw))
	}
	if !strings.HasSuffix(err.Raw, "...") {
		t.Error("truncated Raw should end with ellipsis")
	}
	if !strings.Contains(err.Error(), "raw:") {
		t.Errorf("Error() = %q, want raw snippet included", err.Error())
	}
}

// -----------------------------------------------------------------------------
// UpstreamError Tests
// -----------------------------------------------------------------------------

func TestNewUpstreamError(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewUpstreamError("completion request failed", cause).
		WithModel("llama-3.1-8b-instant").
		WithStatusCode(503)

	if !err.IsRetryable() {
		t.Error("IsRetryable() = false, want true")
	}
	if !Is(err, ErrUpstream) {
		t.Error("Is(ErrUpstream) = false, want true")
	}
	if !Is(err, cause) {
		t.Error("Is(cause) = false, want true")
	}

	got := err.Error()
	want := "upstream error [model=llama-3.1-8b-instant, status=503]: completion request failed: connection refused"
	if got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestUpstreamError_SchemaRejectionIsUpstream(t *testing.T) {
	// A schema rejection of model output surfaces as an upstream failure,
	// but remains matchable as a malformed-result error.
	schemaErr := NewSchemaError("not an object", nil)
	err := NewUpstreamError("unparseable completion", schemaErr)

	if !Is(err, ErrUpstream) {
		t.Error("Is(ErrUpstream) = false, want true")
	}
	if !Is(err, ErrMalformedResult) {
		t.Error("Is(ErrMalformedResult) = false, want true")
	}
}

// -----------------------------------------------------------------------------
// IndexError Tests
// -----------------------------------------------------------------------------

func TestNewIndexError(t *testing.T) {
	err := NewIndexError(5, 3)

	want := "index error: task index 5 out of range [0, 3)"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
	if !Is(err, ErrIndexOutOfRange) {
		t.Error("Is(ErrIndexOutOfRange) = false, want true")
	}
	if err.Index != 5 || err.Count != 3 {
		t.Errorf("Index/Count = %d/%d, want 5/3", err.Index, err.Count)
	}
	if err.IsRetryable() {
		t.Error("IsRetryable() = true, want false")
	}
}

// -----------------------------------------------------------------------------
// Classification Helper Tests
// -----------------------------------------------------------------------------

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"upstream error", NewUpstreamError("failed", nil), true},
		{"upstream marked terminal", NewUpstreamError("failed", nil).WithRetryable(false), false},
		{"validation error", NewValidationError("bad"), false},
		{"index error", NewIndexError(1, 0), false},
		{"plain error", errors.New("boom"), false},
		{"wrapped upstream", fmt.Errorf("ctx: %w", NewUpstreamError("failed", nil)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRetryable(tt.err); got != tt.want {
				t.Errorf("IsRetryable() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsUserFacing(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"validation error", NewValidationError("bad"), true},
		{"not found error", NewNotFoundError("session", "latest"), true},
		{"schema error", NewSchemaError("bad", nil), true},
		{"plain error", errors.New("internal"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsUserFacing(tt.err); got != tt.want {
				t.Errorf("IsUserFacing() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetSeverity(t *testing.T) {
	if got := GetSeverity(nil); got != SeverityDebug {
		t.Errorf("GetSeverity(nil) = %v, want %v", got, SeverityDebug)
	}
	if got := GetSeverity(NewSchemaError("bad", nil)); got != SeverityError {
		t.Errorf("GetSeverity(schema) = %v, want %v", got, SeverityError)
	}
	if got := GetSeverity(errors.New("plain")); got != SeverityError {
		t.Errorf("GetSeverity(plain) = %v, want %v", got, SeverityError)
	}
}

// -----------------------------------------------------------------------------
// Wrap Tests
// -----------------------------------------------------------------------------

func TestWrap(t *testing.T) {
	if Wrap(nil, "context") != nil {
		t.Error("Wrap(nil) should return nil")
	}

	base := ErrSessionCorrupted
	err := Wrap(base, "failed to load session")
	if !Is(err, base) {
		t.Error("wrapped error should match base via Is")
	}
	want := "failed to load session: session data corrupted"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestWrapf(t *testing.T) {
	if Wrapf(nil, "task %d", 3) != nil {
		t.Error("Wrapf(nil) should return nil")
	}

	err := Wrapf(ErrIndexOutOfRange, "failed to toggle task %d", 3)
	if !Is(err, ErrIndexOutOfRange) {
		t.Error("wrapped error should match base via Is")
	}
	if err.Error() != "failed to toggle task 3: task index out of range" {
		t.Errorf("unexpected Error(): %q", err.Error())
	}
}
