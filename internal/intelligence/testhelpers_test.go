package intelligence

import (
	"context"
	"sync"
	"testing"

	"github.com/alexanderramin/agribot/internal/knowledge"
	"github.com/alexanderramin/agribot/internal/llm"
	"go.uber.org/zap/zaptest"
)

// stubBackend is a TextGenerator that echoes the prompt followed by reply,
// the way a text-generation pipeline does.
type stubBackend struct {
	mu      sync.Mutex
	reply   string
	err     error
	panics  bool
	prompts []string
	params  []llm.GenerationParams
}

func (s *stubBackend) Generate(_ context.Context, prompt string, params llm.GenerationParams) ([]llm.GeneratedText, error) {
	s.mu.Lock()
	s.prompts = append(s.prompts, prompt)
	s.params = append(s.params, params)
	s.mu.Unlock()

	if s.panics {
		panic("model exploded")
	}
	if s.err != nil {
		return nil, s.err
	}
	return []llm.GeneratedText{{GeneratedText: prompt + s.reply}}, nil
}

func (s *stubBackend) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.prompts)
}

// countingLoader returns backend (or err) and counts invocations.
type countingLoader struct {
	mu      sync.Mutex
	n       int
	backend llm.TextGenerator
	err     error
}

func (c *countingLoader) load(context.Context) (llm.TextGenerator, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.n++
	if c.err != nil {
		return nil, c.err
	}
	return c.backend, nil
}

func (c *countingLoader) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.n
}

type captureObserver struct {
	mu     sync.Mutex
	events []llm.CallEvent
}

func (c *captureObserver) OnCallComplete(e llm.CallEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, e)
}

func newTestAssistant(t *testing.T, opts ...Option) *Assistant {
	t.Helper()
	base := []Option{WithSeed(42), WithLogger(zaptest.NewLogger(t))}
	return NewAssistant(knowledge.Default(), append(base, opts...)...)
}

// withBackend wires a stub backend through a counting loader.
func withBackend(backend llm.TextGenerator) (Option, *countingLoader) {
	l := &countingLoader{backend: backend}
	return WithGeneration(l.load, llm.DefaultConfig()), l
}
