package llm

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// CallEvent records metadata about a single generation attempt.
type CallEvent struct {
	ID        string
	SessionID string
	Task      TaskType
	Provider  Provider
	Model     string
	LatencyMs int64
	Success   bool
	ErrorCode string
	CreatedAt time.Time
}

// Observer receives events about generation calls for logging and metrics.
type Observer interface {
	OnCallComplete(event CallEvent)
}

// ZapObserver logs call events. Successes go to debug, failures to warn.
type ZapObserver struct {
	log *zap.Logger
}

// NewZapObserver creates an Observer that logs events to l.
func NewZapObserver(l *zap.Logger) *ZapObserver {
	return &ZapObserver{log: l}
}

func (o *ZapObserver) OnCallComplete(event CallEvent) {
	fields := []zap.Field{
		zap.String("session", event.SessionID),
		zap.String("task", string(event.Task)),
		zap.String("provider", string(event.Provider)),
		zap.String("model", event.Model),
		zap.Int64("latency_ms", event.LatencyMs),
	}
	if event.Success {
		o.log.Debug("llm_call", fields...)
		return
	}
	o.log.Warn("llm_call", append(fields, zap.String("error_code", event.ErrorCode))...)
}

// CallEventStore persists call events.
type CallEventStore interface {
	Insert(ctx context.Context, event CallEvent) error
}

// StoreObserver records call events in a CallEventStore. Store failures are
// logged and otherwise ignored.
type StoreObserver struct {
	store CallEventStore
	log   *zap.Logger
}

// NewStoreObserver creates an Observer backed by store.
func NewStoreObserver(store CallEventStore, l *zap.Logger) *StoreObserver {
	if l == nil {
		l = zap.NewNop()
	}
	return &StoreObserver{store: store, log: l}
}

func (o *StoreObserver) OnCallComplete(event CallEvent) {
	if err := o.store.Insert(context.Background(), event); err != nil {
		o.log.Warn("recording llm call failed", zap.Error(err))
	}
}

// MultiObserver fans events out to several observers in order.
type MultiObserver []Observer

func (m MultiObserver) OnCallComplete(event CallEvent) {
	for _, o := range m {
		o.OnCallComplete(event)
	}
}

// NoopObserver discards all events. Useful for tests.
type NoopObserver struct{}

func (NoopObserver) OnCallComplete(CallEvent) {}
