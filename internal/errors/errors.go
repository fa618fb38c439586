// Package errors provides typed errors for lyra.
package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode identifies the type of error.
type ErrorCode string

const (
	ErrConfigNotFound      ErrorCode = "CONFIG_NOT_FOUND"
	ErrConfigInvalid       ErrorCode = "CONFIG_INVALID"
	ErrLLMAuthFailed       ErrorCode = "LLM_AUTH_FAILED"
	ErrLLMRequestFailed    ErrorCode = "LLM_REQUEST_FAILED"
	ErrInvalidTaskType     ErrorCode = "INVALID_TASK_TYPE"
	ErrInvalidPriority     ErrorCode = "INVALID_PRIORITY"
	ErrEmptyPrompt         ErrorCode = "EMPTY_PROMPT"
	ErrNoDraft             ErrorCode = "NO_DRAFT"
	ErrDraftStale          ErrorCode = "DRAFT_STALE"
	ErrCandidateOutOfRange ErrorCode = "CANDIDATE_OUT_OF_RANGE"
	ErrSessionNotFound     ErrorCode = "SESSION_NOT_FOUND"
	ErrHistoryCorrupt      ErrorCode = "HISTORY_CORRUPT"
	ErrHistoryWrite        ErrorCode = "HISTORY_WRITE_FAILED"
	ErrExportFailed        ErrorCode = "EXPORT_FAILED"
)

// LyraError represents a typed error with user-friendly hints.
type LyraError struct {
	Code    ErrorCode
	Message string
	Hint    string
	Cause   error
}

func (e *LyraError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *LyraError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is a LyraError with the same code.
func (e *LyraError) Is(target error) bool {
	t, ok := target.(*LyraError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// From returns the LyraError in err's chain, if any.
func From(err error) (*LyraError, bool) {
	var le *LyraError
	if stderrors.As(err, &le) {
		return le, true
	}
	return nil, false
}

// HasCode reports whether err is, or wraps, a LyraError with the given code.
func HasCode(err error, code ErrorCode) bool {
	le, ok := From(err)
	return ok && le.Code == code
}

// New creates a new LyraError.
func New(code ErrorCode, message, hint string) *LyraError {
	return &LyraError{
		Code:    code,
		Message: message,
		Hint:    hint,
	}
}

// Wrap creates a new LyraError wrapping an existing error.
func Wrap(code ErrorCode, message, hint string, cause error) *LyraError {
	return &LyraError{
		Code:    code,
		Message: message,
		Hint:    hint,
		Cause:   cause,
	}
}

// ConfigNotFound returns an error for missing config file.
func ConfigNotFound(path string) *LyraError {
	return &LyraError{
		Code:    ErrConfigNotFound,
		Message: fmt.Sprintf("config file not found: %s", path),
		Hint:    "Run `lyra init` to create a configuration",
	}
}

// ConfigInvalid returns an error for invalid config.
func ConfigInvalid(reason string) *LyraError {
	return &LyraError{
		Code:    ErrConfigInvalid,
		Message: fmt.Sprintf("invalid config: %s", reason),
		Hint:    "Check your config file at ~/.config/lyra/config.yaml",
	}
}

// LLMAuthFailed returns an error when no API key is available for a provider.
func LLMAuthFailed(provider, envVar string) *LyraError {
	return &LyraError{
		Code:    ErrLLMAuthFailed,
		Message: fmt.Sprintf("%s API authentication failed", provider),
		Hint:    fmt.Sprintf("Set %s in your environment or in a .env file", envVar),
	}
}

// LLMRequestFailed returns an error for a failed completion request.
func LLMRequestFailed(reason string, cause error) *LyraError {
	return &LyraError{
		Code:    ErrLLMRequestFailed,
		Message: fmt.Sprintf("LLM request failed: %s", reason),
		Hint:    "Check your network connection and API quota, then try again",
		Cause:   cause,
	}
}

// InvalidTaskType returns an error for an unrecognized task type.
func InvalidTaskType(value string) *LyraError {
	return &LyraError{
		Code:    ErrInvalidTaskType,
		Message: fmt.Sprintf("unknown task type: %s", value),
		Hint:    "Use one of: Creative, Technical, Educational, Complex",
	}
}

// InvalidPriority returns an error for an unrecognized priority.
func InvalidPriority(value string) *LyraError {
	return &LyraError{
		Code:    ErrInvalidPriority,
		Message: fmt.Sprintf("unknown priority: %s", value),
		Hint:    "Use one of: Latency, Cost",
	}
}

// EmptyPrompt returns an error when no prompt text was supplied.
func EmptyPrompt() *LyraError {
	return &LyraError{
		Code:    ErrEmptyPrompt,
		Message: "no prompt provided",
		Hint:    "Pass the prompt as an argument, with --file, or on stdin",
	}
}

// NoDraft returns an error when there is no working draft to operate on.
func NoDraft() *LyraError {
	return &LyraError{
		Code:    ErrNoDraft,
		Message: "no generated candidates found",
		Hint:    "Run `lyra generate` first, or `lyra history restore <id>`",
	}
}

// DraftStale returns an error when the draft does not belong to the given prompt.
func DraftStale() *LyraError {
	return &LyraError{
		Code:    ErrDraftStale,
		Message: "draft was generated for a different prompt",
		Hint:    "Run `lyra generate` again for the current prompt",
	}
}

// CandidateOutOfRange returns an error for a candidate label or index with no candidate.
func CandidateOutOfRange(label string, count int) *LyraError {
	return &LyraError{
		Code:    ErrCandidateOutOfRange,
		Message: fmt.Sprintf("no candidate %s (have %d)", label, count),
		Hint:    "Pick one of the labels shown by `lyra generate`",
	}
}

// SessionNotFound returns an error for an unknown history session.
func SessionNotFound(id string) *LyraError {
	return &LyraError{
		Code:    ErrSessionNotFound,
		Message: fmt.Sprintf("session not found: %s", id),
		Hint:    "Run `lyra history list` to see saved sessions",
	}
}

// HistoryCorrupt returns an error for an unreadable history log line.
func HistoryCorrupt(path string, line int, cause error) *LyraError {
	return &LyraError{
		Code:    ErrHistoryCorrupt,
		Message: fmt.Sprintf("corrupt history entry at %s:%d", path, line),
		Hint:    "Remove or fix the offending line in the history file",
		Cause:   cause,
	}
}

// HistoryWriteFailed returns an error for a session that could not be recorded.
func HistoryWriteFailed(path string, cause error) *LyraError {
	return &LyraError{
		Code:    ErrHistoryWrite,
		Message: fmt.Sprintf("failed to record session in %s", path),
		Hint:    "Check that the history file is writable",
		Cause:   cause,
	}
}

// ExportFailed returns an error for a failed export write.
func ExportFailed(path string, cause error) *LyraError {
	return &LyraError{
		Code:    ErrExportFailed,
		Message: fmt.Sprintf("failed to export to %s", path),
		Hint:    "Check that the exports directory is writable",
		Cause:   cause,
	}
}
