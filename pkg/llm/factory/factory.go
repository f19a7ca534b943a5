package factory

import (
	"fmt"
	"time"

	"ai-learning-assistant-be/pkg/llm"
	"ai-learning-assistant-be/pkg/llm/gemini"
	"ai-learning-assistant-be/pkg/llm/langchain"
	"ai-learning-assistant-be/pkg/llm/ollama"
)

const (
	ProviderGemini = "gemini"
	ProviderOllama = "ollama"
	ProviderOpenAI = "openai"
)

type Config struct {
	Provider    string
	Model       string
	APIKey      string
	BaseURL     string
	Temperature float64
	Timeout     time.Duration
}

func NewLLMProvider(cfg Config) (llm.LLMProvider, error) {
	switch cfg.Provider {
	case ProviderGemini, "":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("gemini provider requires an API key")
		}
		return gemini.NewGeminiProvider(cfg.APIKey, cfg.BaseURL, cfg.Model, cfg.Temperature, cfg.Timeout), nil
	case ProviderOllama:
		return ollama.NewOllamaProvider(cfg.BaseURL, cfg.Model, cfg.Temperature, cfg.Timeout), nil
	case ProviderOpenAI:
		return langchain.NewOpenAIProvider(cfg.APIKey, cfg.BaseURL, cfg.Model, cfg.Temperature, cfg.Timeout)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
}
