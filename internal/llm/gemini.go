package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"
)

// GeminiGenerator implements TextGenerator using the Google GenAI SDK.
type GeminiGenerator struct {
	cfg    LLMConfig
	client *genai.Client
}

// LoadGemini creates a GenAI client. It fails fast when no API key is set.
func LoadGemini(ctx context.Context, cfg LLMConfig) (*GeminiGenerator, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("%w: gemini requires AGRIBOT_LLM_API_KEY or GEMINI_API_KEY", ErrNotConfigured)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: creating GenAI client: %v", ErrUnavailable, err)
	}

	return &GeminiGenerator{cfg: cfg, client: client}, nil
}

func (g *GeminiGenerator) Generate(ctx context.Context, prompt string, params GenerationParams) ([]GeneratedText, error) {
	timeoutMs := g.cfg.TaskTimeout(params.Task)
	ctx, cancel := context.WithTimeout(ctx, time.Duration(timeoutMs)*time.Millisecond)
	defer cancel()

	config := &genai.GenerateContentConfig{
		MaxOutputTokens: int32(params.MaxNewTokens),
	}
	if params.DoSample {
		config.Temperature = genai.Ptr(float32(params.Temperature))
		config.TopP = genai.Ptr(float32(params.TopP))
	} else {
		config.Temperature = genai.Ptr(float32(0))
	}

	result, err := g.client.Models.GenerateContent(ctx, g.cfg.Model, genai.Text(prompt), config)
	if err != nil {
		if ctx.Err() != nil || errors.Is(err, context.DeadlineExceeded) {
			return nil, ErrTimeout
		}
		return nil, fmt.Errorf("%w: GenAI generate failed: %v", ErrRequestFailed, err)
	}

	text := result.Text()
	if text == "" {
		return nil, fmt.Errorf("%w: GenAI returned no text", ErrInvalidOutput)
	}

	return []GeneratedText{{GeneratedText: prompt + text}}, nil
}
