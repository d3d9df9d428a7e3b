package llm

import (
	"context"
	"fmt"
)

// DefaultEOSToken asks the backend to pad with its own end-of-sequence token.
const DefaultEOSToken = -1

// GenerationParams are the sampling settings for one completion.
type GenerationParams struct {
	Task         TaskType
	MaxNewTokens int
	DoSample     bool
	Temperature  float64
	TopP         float64
	PadTokenID   int
}

// GeneratedText is one completion. Like a text-generation pipeline, the text
// holds the prompt followed by the newly generated tokens.
type GeneratedText struct {
	GeneratedText string `json:"generated_text"`
}

// TextGenerator is a loaded generation capability.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string, params GenerationParams) ([]GeneratedText, error)
}

// Loader initializes a TextGenerator. Callers invoke it at most once per
// lifecycle; a returned error means the capability cannot be used.
type Loader func(ctx context.Context) (TextGenerator, error)

// ParamsFor builds the generation params configured for task.
func (c LLMConfig) ParamsFor(task TaskType) GenerationParams {
	tc := c.Tasks[task]
	return GenerationParams{
		Task:         task,
		MaxNewTokens: tc.MaxTokens,
		DoSample:     true,
		Temperature:  tc.Temperature,
		TopP:         tc.TopP,
		PadTokenID:   DefaultEOSToken,
	}
}

// NewLoader returns the Loader for the configured provider.
func NewLoader(cfg LLMConfig) Loader {
	if !cfg.Enabled {
		return func(context.Context) (TextGenerator, error) {
			return nil, ErrDisabled
		}
	}
	switch cfg.Provider {
	case ProviderOllama:
		return func(ctx context.Context) (TextGenerator, error) {
			return LoadOllama(ctx, cfg)
		}
	case ProviderGemini:
		return func(ctx context.Context) (TextGenerator, error) {
			return LoadGemini(ctx, cfg)
		}
	case ProviderNone:
		return func(context.Context) (TextGenerator, error) {
			return nil, ErrDisabled
		}
	default:
		return func(context.Context) (TextGenerator, error) {
			return nil, fmt.Errorf("%w: unknown provider %q", ErrNotConfigured, cfg.Provider)
		}
	}
}
