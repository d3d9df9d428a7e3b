package testutil

import (
	"time"

	"github.com/alexanderramin/agribot/internal/llm"
	"github.com/google/uuid"
)

// CallEvent options
type CallEventOption func(*llm.CallEvent)

func WithSession(id string) CallEventOption {
	return func(e *llm.CallEvent) {
		e.SessionID = id
	}
}

func WithFailure(code string) CallEventOption {
	return func(e *llm.CallEvent) {
		e.Success = false
		e.ErrorCode = code
	}
}

func WithLatency(ms int64) CallEventOption {
	return func(e *llm.CallEvent) {
		e.LatencyMs = ms
	}
}

func WithCreatedAt(t time.Time) CallEventOption {
	return func(e *llm.CallEvent) {
		e.CreatedAt = t
	}
}

// NewTestCallEvent returns a successful ollama call event for task.
func NewTestCallEvent(task llm.TaskType, opts ...CallEventOption) llm.CallEvent {
	e := llm.CallEvent{
		ID:        uuid.NewString(),
		SessionID: "test-session",
		Task:      task,
		Provider:  llm.ProviderOllama,
		Model:     "phi3:mini",
		LatencyMs: 100,
		Success:   true,
		CreatedAt: time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(&e)
	}
	return e
}
