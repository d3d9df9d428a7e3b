package intelligence

import (
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/alexanderramin/agribot/internal/knowledge"
	"github.com/alexanderramin/agribot/internal/llm"
	"go.uber.org/zap"
)

// BotName is how the assistant refers to itself.
const BotName = "AgriBot"

// Assistant answers farming questions from the knowledge base and falls back
// to text generation for open-ended ones. It holds no per-conversation state;
// that lives in Session.
type Assistant struct {
	kb *knowledge.Base

	rngMu sync.Mutex
	rng   *rand.Rand

	loader   llm.Loader
	cfg      llm.LLMConfig
	observer llm.Observer
	log      *zap.Logger
}

// Option configures an Assistant.
type Option func(*Assistant)

// WithRand sets the random source used for greetings, tips and canned replies.
func WithRand(r *rand.Rand) Option {
	return func(a *Assistant) { a.rng = r }
}

// WithSeed seeds a deterministic random source.
func WithSeed(seed uint64) Option {
	return WithRand(rand.New(rand.NewPCG(seed, seed)))
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(a *Assistant) { a.log = l }
}

// WithObserver receives a CallEvent for every generation attempt.
func WithObserver(o llm.Observer) Option {
	return func(a *Assistant) { a.observer = o }
}

// WithGeneration enables the generation fallback using loader and the
// sampling settings in cfg.
func WithGeneration(loader llm.Loader, cfg llm.LLMConfig) Option {
	return func(a *Assistant) {
		a.loader = loader
		a.cfg = cfg
	}
}

// NewAssistant creates an Assistant over kb. Without WithGeneration every
// generation attempt degrades to the fixed fallback text.
func NewAssistant(kb *knowledge.Base, opts ...Option) *Assistant {
	a := &Assistant{
		kb:       kb,
		cfg:      llm.DefaultConfig(),
		observer: llm.NoopObserver{},
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.rng == nil {
		now := uint64(time.Now().UnixNano())
		a.rng = rand.New(rand.NewPCG(now, now>>1))
	}
	return a
}

// Knowledge returns the knowledge base the assistant answers from.
func (a *Assistant) Knowledge() *knowledge.Base { return a.kb }

// NewGenerator creates an uninitialized Generator that reports call events
// under sessionID.
func (a *Assistant) NewGenerator(sessionID string) *Generator {
	return NewGenerator(a.loader, a.cfg, sessionID, a.observer, a.log)
}

// Greet returns one of three welcome lines. A known userName is addressed
// directly.
func (a *Assistant) Greet(userName string) string {
	if userName == "" {
		return pick(a, []string{
			fmt.Sprintf("Hello! I'm %s, your agricultural assistant. How can I help you today?", BotName),
			fmt.Sprintf("Welcome to %s! I'm here to help with all your farming questions.", BotName),
			fmt.Sprintf("Hi there! %s at your service. What agricultural topic would you like to discuss?", BotName),
		})
	}
	return pick(a, []string{
		fmt.Sprintf("Hello, %s! I'm %s, your agricultural assistant. How can I help you today?", userName, BotName),
		fmt.Sprintf("Welcome back to %s, %s! I'm here to help with all your farming questions.", BotName, userName),
		fmt.Sprintf("Hi %s! %s at your service. What agricultural topic would you like to discuss?", userName, BotName),
	})
}

// RandomTip returns one farming tip. Repeats are allowed.
func (a *Assistant) RandomTip() string {
	return pick(a, a.kb.Tips())
}

func (a *Assistant) intn(n int) int {
	a.rngMu.Lock()
	defer a.rngMu.Unlock()
	return a.rng.IntN(n)
}

func pick[T any](a *Assistant, items []T) T {
	return items[a.intn(len(items))]
}
