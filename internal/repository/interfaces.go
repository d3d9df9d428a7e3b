package repository

import (
	"context"

	"github.com/alexanderramin/agribot/internal/llm"
)

// TaskSummary aggregates recorded generation calls for one task.
type TaskSummary struct {
	Task         llm.TaskType
	Calls        int
	Successes    int
	AvgLatencyMs int64
}

// CallEventRepo stores generation call telemetry.
type CallEventRepo interface {
	Insert(ctx context.Context, e llm.CallEvent) error
	ListRecent(ctx context.Context, limit int) ([]llm.CallEvent, error)
	ListBySession(ctx context.Context, sessionID string) ([]llm.CallEvent, error)
	Summary(ctx context.Context) ([]TaskSummary, error)
}

var _ llm.CallEventStore = (CallEventRepo)(nil)
