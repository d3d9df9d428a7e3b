package llm

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// TaskType identifies the kind of generation being performed.
type TaskType string

const (
	TaskUsage   TaskType = "usage"
	TaskGeneral TaskType = "general"
)

// Tasks lists every task type in a stable order.
var Tasks = []TaskType{TaskUsage, TaskGeneral}

// Provider selects the generation backend.
type Provider string

const (
	ProviderOllama Provider = "ollama"
	ProviderGemini Provider = "gemini"
	ProviderNone   Provider = "none"
)

const (
	defaultOllamaModel = "phi3:mini"
	defaultGeminiModel = "gemini-2.0-flash"
)

// TaskConfig holds per-task generation parameters.
type TaskConfig struct {
	Temperature float64
	TopP        float64
	MaxTokens   int
	TimeoutMs   int // overrides global if > 0
}

// LLMConfig holds all configuration for the generation subsystem.
type LLMConfig struct {
	Enabled    bool
	Provider   Provider
	LogCalls   bool
	CallsDB    string
	Endpoint   string
	Model      string
	APIKey     string
	TimeoutMs  int
	MaxRetries int
	Tasks      map[TaskType]TaskConfig
}

// DefaultConfig returns an LLMConfig with the assistant's fixed sampling
// settings: temperature 0.7, top_p 0.9, 250 tokens for usage guides and
// 200 for general advice. Retries are off.
func DefaultConfig() LLMConfig {
	return LLMConfig{
		Enabled:    true,
		Provider:   ProviderOllama,
		Endpoint:   "http://localhost:11434",
		Model:      defaultOllamaModel,
		TimeoutMs:  60000,
		MaxRetries: 0,
		Tasks: map[TaskType]TaskConfig{
			TaskUsage:   {Temperature: 0.7, TopP: 0.9, MaxTokens: 250},
			TaskGeneral: {Temperature: 0.7, TopP: 0.9, MaxTokens: 200},
		},
	}
}

// LoadConfig reads configuration from a .env file (if present), an optional
// agribot.yaml config file and AGRIBOT_* environment variables, in increasing
// precedence. On error the returned config is still usable defaults.
func LoadConfig() (LLMConfig, error) {
	loadDotEnv()

	v := viper.New()
	v.SetEnvPrefix("AGRIBOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("llm.api_key", "AGRIBOT_LLM_API_KEY", "GEMINI_API_KEY")

	if path := os.Getenv("AGRIBOT_CONFIG"); path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("agribot")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".agribot"))
		}
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return DefaultConfig(), fmt.Errorf("reading config file: %w", err)
		}
	}

	cfg := fromViper(v)
	if err := cfg.Validate(); err != nil {
		return DefaultConfig(), err
	}
	return cfg, nil
}

// Validate checks provider and sampling ranges.
func (c LLMConfig) Validate() error {
	switch c.Provider {
	case ProviderOllama, ProviderGemini, ProviderNone:
	default:
		return fmt.Errorf("unknown llm provider %q (want ollama, gemini or none)", c.Provider)
	}
	for _, task := range Tasks {
		tc := c.Tasks[task]
		if tc.Temperature < 0 || tc.Temperature > 2 {
			return fmt.Errorf("%s temperature must be in [0,2], got %g", task, tc.Temperature)
		}
		if tc.TopP < 0 || tc.TopP > 1 {
			return fmt.Errorf("%s top_p must be in [0,1], got %g", task, tc.TopP)
		}
		if tc.MaxTokens <= 0 {
			return fmt.Errorf("%s max_tokens must be positive, got %d", task, tc.MaxTokens)
		}
	}
	return nil
}

// TaskTimeout returns the effective timeout for a given task type.
// Uses the task-specific timeout if set, otherwise the global timeout.
func (c LLMConfig) TaskTimeout(task TaskType) int {
	if tc, ok := c.Tasks[task]; ok && tc.TimeoutMs > 0 {
		return tc.TimeoutMs
	}
	return c.TimeoutMs
}

func fromViper(v *viper.Viper) LLMConfig {
	cfg := DefaultConfig()

	if b, ok := boolKey(v, "llm.enabled"); ok {
		cfg.Enabled = b
	}
	if b, ok := boolKey(v, "llm.log_calls"); ok {
		cfg.LogCalls = b
	}
	if s := v.GetString("llm.provider"); s != "" {
		cfg.Provider = Provider(strings.ToLower(s))
	}
	if s := v.GetString("llm.model"); s != "" {
		cfg.Model = s
	} else if cfg.Provider == ProviderGemini {
		cfg.Model = defaultGeminiModel
	}
	if s := v.GetString("llm.endpoint"); s != "" {
		cfg.Endpoint = strings.TrimRight(s, "/")
	}
	if s := v.GetString("llm.api_key"); s != "" {
		cfg.APIKey = s
	}
	if s := v.GetString("llm.calls_db"); s != "" {
		cfg.CallsDB = s
	}
	if n, ok := intKey(v, "llm.timeout_ms"); ok && n > 0 {
		cfg.TimeoutMs = n
	}
	if n, ok := intKey(v, "llm.max_retries"); ok && n >= 0 {
		cfg.MaxRetries = n
	}

	for _, task := range Tasks {
		prefix := "llm." + string(task) + "."
		tc := cfg.Tasks[task]
		if n, ok := intKey(v, prefix+"max_tokens"); ok && n > 0 {
			tc.MaxTokens = n
		}
		if n, ok := intKey(v, prefix+"timeout_ms"); ok && n > 0 {
			tc.TimeoutMs = n
		}
		if f, ok := floatKey(v, prefix+"temperature"); ok {
			tc.Temperature = f
		}
		if f, ok := floatKey(v, prefix+"top_p"); ok {
			tc.TopP = f
		}
		cfg.Tasks[task] = tc
	}

	return cfg
}

func boolKey(v *viper.Viper, key string) (bool, bool) {
	if !v.IsSet(key) {
		return false, false
	}
	b, err := strconv.ParseBool(v.GetString(key))
	return b, err == nil
}

func intKey(v *viper.Viper, key string) (int, bool) {
	if !v.IsSet(key) {
		return 0, false
	}
	n, err := strconv.Atoi(v.GetString(key))
	return n, err == nil
}

func floatKey(v *viper.Viper, key string) (float64, bool) {
	if !v.IsSet(key) {
		return 0, false
	}
	f, err := strconv.ParseFloat(v.GetString(key), 64)
	return f, err == nil
}

// loadDotEnv loads the first .env found in the working directory or
// ~/.agribot. Existing environment variables win.
func loadDotEnv() {
	paths := []string{".env"}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".agribot", ".env"))
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			if godotenv.Load(p) == nil {
				return
			}
		}
	}
}
