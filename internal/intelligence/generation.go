package intelligence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/alexanderramin/agribot/internal/llm"
	"go.uber.org/zap"
)

// MinReplyLength is the longest reply, in characters, that is still rejected.
const MinReplyLength = 30

var (
	// ErrGenerationUnavailable means the backend failed to load for this
	// generator and will not be retried.
	ErrGenerationUnavailable = errors.New("text generation unavailable")

	// ErrLowQuality means the backend answered with too little text.
	ErrLowQuality = errors.New("generated reply too short")

	// ErrGenerationPanic means the backend panicked during a call.
	ErrGenerationPanic = errors.New("text generation panicked")
)

// GeneratorState is the lifecycle of a Generator's backend.
type GeneratorState int

const (
	StateUninitialized GeneratorState = iota
	StateReady
	StateUnavailable
)

func (s GeneratorState) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateReady:
		return "ready"
	case StateUnavailable:
		return "unavailable"
	default:
		return fmt.Sprintf("GeneratorState(%d)", int(s))
	}
}

// Generator owns one lazily loaded text-generation backend. The backend is
// loaded on the first Complete call; a failed load is final.
type Generator struct {
	mu       sync.Mutex
	state    GeneratorState
	loader   llm.Loader
	backend  llm.TextGenerator
	initErr  error
	warnings []string

	cfg       llm.LLMConfig
	sessionID string
	observer  llm.Observer
	log       *zap.Logger
}

// NewGenerator creates a Generator in StateUninitialized. A nil loader makes
// the first Complete fail as if generation were disabled.
func NewGenerator(loader llm.Loader, cfg llm.LLMConfig, sessionID string, observer llm.Observer, log *zap.Logger) *Generator {
	if loader == nil {
		loader = func(context.Context) (llm.TextGenerator, error) { return nil, llm.ErrDisabled }
	}
	if observer == nil {
		observer = llm.NoopObserver{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Generator{
		loader:    loader,
		cfg:       cfg,
		sessionID: sessionID,
		observer:  observer,
		log:       log,
	}
}

// State returns the current lifecycle state.
func (g *Generator) State() GeneratorState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// InitErr returns the load error once the generator is unavailable.
func (g *Generator) InitErr() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.initErr
}

// WarningsSince returns the user-facing warnings raised after the first seen
// ones, and the new total. Each reader tracks its own offset, so sessions
// sharing a Generator all see every warning.
func (g *Generator) WarningsSince(seen int) ([]string, int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if seen >= len(g.warnings) {
		return nil, len(g.warnings)
	}
	return append([]string(nil), g.warnings[seen:]...), len(g.warnings)
}

// Complete sends prompt to the backend and returns the trimmed text after the
// last assistant tag. Replies of MinReplyLength characters or fewer fail with
// ErrLowQuality. Complete never panics.
func (g *Generator) Complete(ctx context.Context, task llm.TaskType, prompt string) (string, error) {
	backend, err := g.ensureLoaded(ctx)
	if err != nil {
		return "", err
	}

	start := time.Now()
	reply, err := g.generate(ctx, backend, task, prompt)
	event := llm.CallEvent{
		SessionID: g.sessionID,
		Task:      task,
		Provider:  g.cfg.Provider,
		Model:     g.cfg.Model,
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   err == nil,
		ErrorCode: errorCode(err),
		CreatedAt: time.Now().UTC(),
	}
	g.observer.OnCallComplete(event)

	if err != nil {
		g.log.Warn("generation failed, using fallback",
			zap.String("session", g.sessionID),
			zap.String("task", string(task)),
			zap.Error(err),
		)
		return "", err
	}
	return reply, nil
}

func (g *Generator) generate(ctx context.Context, backend llm.TextGenerator, task llm.TaskType, prompt string) (reply string, err error) {
	defer func() {
		if r := recover(); r != nil {
			reply, err = "", fmt.Errorf("%w: %v", ErrGenerationPanic, r)
		}
	}()

	out, err := backend.Generate(ctx, prompt, g.cfg.ParamsFor(task))
	if err != nil {
		return "", err
	}
	if len(out) == 0 {
		return "", fmt.Errorf("%w: no completions returned", llm.ErrInvalidOutput)
	}

	reply = ExtractReply(out[0].GeneratedText)
	if reply == "" || utf8.RuneCountInString(reply) <= MinReplyLength {
		return "", fmt.Errorf("%w: %d characters", ErrLowQuality, utf8.RuneCountInString(reply))
	}
	return reply, nil
}

// ensureLoaded runs the loader once. The check and load happen under the
// lock so concurrent callers never load twice.
func (g *Generator) ensureLoaded(ctx context.Context) (llm.TextGenerator, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	switch g.state {
	case StateReady:
		return g.backend, nil
	case StateUnavailable:
		return nil, fmt.Errorf("%w: %v", ErrGenerationUnavailable, g.initErr)
	}

	backend, err := g.load(ctx)
	if err == nil && backend == nil {
		err = fmt.Errorf("%w: loader returned no generator", llm.ErrNotConfigured)
	}
	if err != nil {
		g.state = StateUnavailable
		g.initErr = err
		if !errors.Is(err, llm.ErrDisabled) {
			g.warnings = append(g.warnings, fmt.Sprintf("Could not load AI model (%v). Using fallback responses.", err))
		}
		g.log.Warn("generation backend unavailable",
			zap.String("session", g.sessionID),
			zap.String("provider", string(g.cfg.Provider)),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %v", ErrGenerationUnavailable, err)
	}

	g.state = StateReady
	g.backend = backend
	g.log.Debug("generation backend ready",
		zap.String("session", g.sessionID),
		zap.String("model", g.cfg.Model),
	)
	return backend, nil
}

func (g *Generator) load(ctx context.Context) (backend llm.TextGenerator, err error) {
	defer func() {
		if r := recover(); r != nil {
			backend, err = nil, fmt.Errorf("%w: %v", ErrGenerationPanic, r)
		}
	}()
	return g.loader(ctx)
}

// ExtractReply keeps the text after the last assistant tag, trimmed. Text
// without a tag is returned whole.
func ExtractReply(generated string) string {
	if i := strings.LastIndex(generated, assistantTag); i >= 0 {
		generated = generated[i+len(assistantTag):]
	}
	return strings.TrimSpace(generated)
}

func errorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrLowQuality):
		return "LOW_QUALITY"
	case errors.Is(err, ErrGenerationPanic):
		return "PANIC"
	default:
		return llm.ErrorCode(err)
	}
}
