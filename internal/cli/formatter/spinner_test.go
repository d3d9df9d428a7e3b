package formatter

import (
	"bytes"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (s *syncBuffer) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.Write(p)
}

func (s *syncBuffer) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.String()
}

func TestSpinner_StopEndsGoroutine(t *testing.T) {
	var out syncBuffer
	s := NewSpinnerTo(&out, "Thinking")
	s.Start()
	time.Sleep(200 * time.Millisecond)
	s.Stop()

	got := stripANSI(out.String())
	assert.Contains(t, got, "Thinking")
	assert.Contains(t, got, spinnerFrames[0])
}

func TestSpinner_StopTwice(t *testing.T) {
	s := NewSpinnerTo(&syncBuffer{}, "x")
	s.Start()
	s.Stop()
	assert.NotPanics(t, s.Stop)
}
