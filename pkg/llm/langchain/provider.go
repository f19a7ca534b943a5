package langchain

import (
	"context"
	"fmt"
	"strings"
	"time"

	"ai-learning-assistant-be/pkg/llm"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// OpenAIProvider talks to any OpenAI-compatible endpoint through langchaingo.
type OpenAIProvider struct {
	model       llms.Model
	temperature float64
	timeout     time.Duration
}

var _ llm.LLMProvider = &OpenAIProvider{}

func NewOpenAIProvider(apiKey, baseURL, model string, temperature float64, timeout time.Duration) (*OpenAIProvider, error) {
	opts := []openai.Option{
		openai.WithModel(model),
		openai.WithToken(apiKey),
	}
	if baseURL != "" {
		opts = append(opts, openai.WithBaseURL(baseURL))
	}

	client, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("create openai client: %w", err)
	}
	return NewProvider(client, temperature, timeout), nil
}

// NewProvider wraps an existing langchaingo model.
func NewProvider(model llms.Model, temperature float64, timeout time.Duration) *OpenAIProvider {
	return &OpenAIProvider{
		model:       model,
		temperature: temperature,
		timeout:     timeout,
	}
}

func (p *OpenAIProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	options := llm.ApplyOptions(llm.Options{Temperature: p.temperature}, opts...)

	messages := make([]llms.MessageContent, 0, len(history))
	for _, msg := range history {
		role := llms.ChatMessageTypeHuman
		if msg.Role == llm.RoleModel {
			role = llms.ChatMessageTypeAI
		}
		messages = append(messages, llms.TextParts(role, msg.Content))
	}

	callOpts := []llms.CallOption{llms.WithTemperature(options.Temperature)}
	if options.Model != "" {
		callOpts = append(callOpts, llms.WithModel(options.Model))
	}
	if options.MaxTokens > 0 {
		callOpts = append(callOpts, llms.WithMaxTokens(options.MaxTokens))
	}

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	resp, err := p.model.GenerateContent(ctx, messages, callOpts...)
	if err != nil {
		if llm.IsDeadline(ctx, err) {
			return "", llm.ErrNoContent
		}
		return "", fmt.Errorf("openai request failed: %w", err)
	}
	if resp == nil || len(resp.Choices) == 0 || resp.Choices[0] == nil {
		return "", llm.ErrNoContent
	}

	text := strings.TrimSpace(resp.Choices[0].Content)
	if text == "" {
		return "", llm.ErrNoContent
	}
	return text, nil
}

func (p *OpenAIProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return p.Chat(ctx, []llm.Message{{Role: llm.RoleUser, Content: prompt}}, opts...)
}
