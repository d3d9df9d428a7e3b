package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"
)

// OllamaGenerator implements TextGenerator using the Ollama HTTP API.
type OllamaGenerator struct {
	cfg  LLMConfig
	http *http.Client
}

// NewOllamaGenerator creates a generator for a local Ollama instance without
// probing it. Use LoadOllama to verify the server and model first.
func NewOllamaGenerator(cfg LLMConfig) *OllamaGenerator {
	return &OllamaGenerator{
		cfg: cfg,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
	}
}

// LoadOllama creates a generator and checks that the server is reachable and
// the configured model has been pulled.
func LoadOllama(ctx context.Context, cfg LLMConfig) (*OllamaGenerator, error) {
	g := NewOllamaGenerator(cfg)
	models, err := g.listModels(ctx)
	if err != nil {
		return nil, err
	}
	if !hasModel(models, cfg.Model) {
		return nil, fmt.Errorf("%w: model %q not pulled on %s", ErrNotConfigured, cfg.Model, cfg.Endpoint)
	}
	return g, nil
}

// ollamaRequest is the JSON body sent to POST /api/generate.
// Raw mode passes the role-tagged prompt through without a chat template.
type ollamaRequest struct {
	Model   string        `json:"model"`
	Prompt  string        `json:"prompt"`
	Raw     bool          `json:"raw"`
	Stream  bool          `json:"stream"`
	Options ollamaOptions `json:"options"`
}

type ollamaOptions struct {
	Temperature float64 `json:"temperature"`
	TopP        float64 `json:"top_p,omitempty"`
	NumPredict  int     `json:"num_predict,omitempty"`
}

// ollamaResponse is the JSON body returned by POST /api/generate (non-streaming).
type ollamaResponse struct {
	Model    string `json:"model"`
	Response string `json:"response"`
}

type ollamaTags struct {
	Models []struct {
		Name string `json:"name"`
	} `json:"models"`
}

func (g *OllamaGenerator) Generate(ctx context.Context, prompt string, params GenerationParams) ([]GeneratedText, error) {
	timeoutMs := g.cfg.TaskTimeout(params.Task)
	ctx, cancel := context.WithTimeout(ctx, time.Duration(timeoutMs)*time.Millisecond)
	defer cancel()

	// Ollama always pads with the model's own EOS token, so PadTokenID is not sent.
	opts := ollamaOptions{NumPredict: params.MaxNewTokens}
	if params.DoSample {
		opts.Temperature = params.Temperature
		opts.TopP = params.TopP
	}
	body := ollamaRequest{
		Model:   g.cfg.Model,
		Prompt:  prompt,
		Raw:     true,
		Stream:  false,
		Options: opts,
	}

	var lastErr error
	attempts := 1 + g.cfg.MaxRetries

	for i := 0; i < attempts; i++ {
		resp, err := g.doRequest(ctx, body)
		if err == nil {
			return []GeneratedText{{GeneratedText: prompt + resp.Response}}, nil
		}
		lastErr = err

		// Don't retry on context cancellation/timeout
		if ctx.Err() != nil {
			break
		}
	}

	if ctx.Err() != nil {
		return nil, ErrTimeout
	}
	if isConnectionError(lastErr) {
		return nil, ErrUnavailable
	}
	return nil, fmt.Errorf("%w: %v", ErrRequestFailed, lastErr)
}

func (g *OllamaGenerator) doRequest(ctx context.Context, body ollamaRequest) (*ollamaResponse, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	url := g.cfg.Endpoint + "/api/generate"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := g.http.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if httpResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ollama returned status %d: %s", httpResp.StatusCode, string(respBody))
	}

	var resp ollamaResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", ErrInvalidOutput, err)
	}

	return &resp, nil
}

func (g *OllamaGenerator) listModels(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	url := g.cfg.Endpoint + "/api/tags"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := g.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: ollama returned status %d", ErrUnavailable, resp.StatusCode)
	}

	var tags ollamaTags
	if err := json.NewDecoder(resp.Body).Decode(&tags); err != nil {
		return nil, fmt.Errorf("%w: decoding tags: %v", ErrInvalidOutput, err)
	}
	names := make([]string, 0, len(tags.Models))
	for _, m := range tags.Models {
		names = append(names, m.Name)
	}
	return names, nil
}

// hasModel reports whether model is in names. A bare model name matches its
// ":latest" tag.
func hasModel(names []string, model string) bool {
	for _, n := range names {
		if n == model || strings.TrimSuffix(n, ":latest") == model {
			return true
		}
	}
	return false
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	var netErr *net.OpError
	return errors.As(err, &netErr)
}
