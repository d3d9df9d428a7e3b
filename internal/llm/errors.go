package llm

import "errors"

var (
	// ErrUnavailable indicates the generation backend is unreachable.
	ErrUnavailable = errors.New("generation backend unavailable")

	// ErrTimeout indicates the request exceeded the configured timeout.
	ErrTimeout = errors.New("generation request timed out")

	// ErrInvalidOutput indicates the backend response could not be decoded.
	ErrInvalidOutput = errors.New("invalid generation output")

	// ErrNotConfigured indicates the backend is missing required settings
	// (API key, pulled model).
	ErrNotConfigured = errors.New("generation backend not configured")

	// ErrDisabled indicates generation is switched off by configuration.
	ErrDisabled = errors.New("generation disabled")

	// ErrRequestFailed indicates the backend rejected the request after all attempts.
	ErrRequestFailed = errors.New("generation request failed")
)

// ErrorCode maps an error to the short code recorded in call events.
func ErrorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTimeout):
		return "TIMEOUT"
	case errors.Is(err, ErrUnavailable), errors.Is(err, ErrDisabled), errors.Is(err, ErrNotConfigured):
		return "UNAVAILABLE"
	case errors.Is(err, ErrInvalidOutput):
		return "INVALID_OUTPUT"
	default:
		return "UNKNOWN"
	}
}
