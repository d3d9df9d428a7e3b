package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type captureObserver struct {
	events []CallEvent
}

func (c *captureObserver) OnCallComplete(e CallEvent) { c.events = append(c.events, e) }

type fakeStore struct {
	inserted []CallEvent
	err      error
}

func (f *fakeStore) Insert(_ context.Context, e CallEvent) error {
	if f.err != nil {
		return f.err
	}
	f.inserted = append(f.inserted, e)
	return nil
}

func TestZapObserver_Levels(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	obs := NewZapObserver(zap.New(core))

	obs.OnCallComplete(CallEvent{SessionID: "s1", Task: TaskUsage, Model: "phi3:mini", LatencyMs: 12, Success: true})
	obs.OnCallComplete(CallEvent{SessionID: "s1", Task: TaskGeneral, ErrorCode: "TIMEOUT"})

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.Equal(t, "usage", entries[0].ContextMap()["task"])
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, "TIMEOUT", entries[1].ContextMap()["error_code"])
}

func TestStoreObserver_InsertsEvents(t *testing.T) {
	store := &fakeStore{}
	obs := NewStoreObserver(store, nil)

	obs.OnCallComplete(CallEvent{Task: TaskUsage, Success: true})

	require.Len(t, store.inserted, 1)
	assert.Equal(t, TaskUsage, store.inserted[0].Task)
}

func TestStoreObserver_LogsInsertFailure(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	obs := NewStoreObserver(&fakeStore{err: errors.New("disk full")}, zap.New(core))

	obs.OnCallComplete(CallEvent{Task: TaskGeneral})

	assert.Equal(t, 1, logs.FilterMessage("recording llm call failed").Len())
}

func TestMultiObserver_FansOut(t *testing.T) {
	a, b := &captureObserver{}, &captureObserver{}
	MultiObserver{a, NoopObserver{}, b}.OnCallComplete(CallEvent{ID: "x"})

	assert.Len(t, a.events, 1)
	assert.Len(t, b.events, 1)
}
