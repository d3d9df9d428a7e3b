package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(endpoint string) LLMConfig {
	cfg := DefaultConfig()
	cfg.Enabled = true
	cfg.Endpoint = endpoint
	return cfg
}

func TestOllamaGenerator_Generate_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/generate", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)

		var req ollamaRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, defaultOllamaModel, req.Model)
		assert.True(t, req.Raw)
		assert.False(t, req.Stream)
		assert.Equal(t, "<|user|>\nhi\n<|assistant|>\n", req.Prompt)
		assert.Equal(t, 250, req.Options.NumPredict)
		assert.Equal(t, 0.7, req.Options.Temperature)
		assert.Equal(t, 0.9, req.Options.TopP)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(ollamaResponse{Model: req.Model, Response: "Plant in spring."})
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	gen := NewOllamaGenerator(cfg)
	out, err := gen.Generate(context.Background(), "<|user|>\nhi\n<|assistant|>\n", cfg.ParamsFor(TaskUsage))

	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "<|user|>\nhi\n<|assistant|>\nPlant in spring.", out[0].GeneratedText)
}

func TestOllamaGenerator_Generate_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	tc := cfg.Tasks[TaskGeneral]
	tc.TimeoutMs = 50
	cfg.Tasks[TaskGeneral] = tc

	_, err := NewOllamaGenerator(cfg).Generate(context.Background(), "test", cfg.ParamsFor(TaskGeneral))
	assert.ErrorIs(t, err, ErrTimeout)
}

func TestOllamaGenerator_Generate_Unavailable(t *testing.T) {
	cfg := testConfig("http://127.0.0.1:1") // nothing listening
	cfg.TimeoutMs = 1000

	_, err := NewOllamaGenerator(cfg).Generate(context.Background(), "test", cfg.ParamsFor(TaskGeneral))
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestOllamaGenerator_Generate_RetryOnTransientError(t *testing.T) {
	var attempts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte("internal error"))
			return
		}
		json.NewEncoder(w).Encode(ollamaResponse{Response: " ok"})
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.MaxRetries = 1

	out, err := NewOllamaGenerator(cfg).Generate(context.Background(), "p", cfg.ParamsFor(TaskGeneral))
	require.NoError(t, err)
	assert.Equal(t, "p ok", out[0].GeneratedText)
	assert.Equal(t, int32(2), attempts.Load())
}

func TestOllamaGenerator_Generate_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte("bad request"))
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	_, err := NewOllamaGenerator(cfg).Generate(context.Background(), "test", cfg.ParamsFor(TaskGeneral))

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRequestFailed)
	assert.Contains(t, err.Error(), "status 400")
}

func TestLoadOllama_ModelPulled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/tags", r.URL.Path)
		w.Write([]byte(`{"models":[{"name":"llama3.2:latest"},{"name":"phi3:mini"}]}`))
	}))
	defer srv.Close()

	gen, err := LoadOllama(context.Background(), testConfig(srv.URL))
	require.NoError(t, err)
	assert.NotNil(t, gen)
}

func TestLoadOllama_ModelMissing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"models":[{"name":"llama3.2:latest"}]}`))
	}))
	defer srv.Close()

	_, err := LoadOllama(context.Background(), testConfig(srv.URL))
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestLoadOllama_ServerDown(t *testing.T) {
	_, err := LoadOllama(context.Background(), testConfig("http://127.0.0.1:1"))
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestHasModel(t *testing.T) {
	names := []string{"llama3.2:latest", "phi3:mini"}

	assert.True(t, hasModel(names, "llama3.2"))
	assert.True(t, hasModel(names, "llama3.2:latest"))
	assert.True(t, hasModel(names, "phi3:mini"))
	assert.False(t, hasModel(names, "phi3"))
	assert.False(t, hasModel(nil, "phi3:mini"))
}
