package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
)

const (
	defaultOllamaBaseURL = "http://localhost:11434"

	// Weekend reviews read better slightly warm.
	defaultOllamaTemperature = 0.7
)

// OllamaClient talks to a local or remote Ollama server through langchaingo.
type OllamaClient struct {
	llm         *ollama.LLM
	model       string
	baseURL     string
	temperature float64
	httpClient  *http.Client
}

// OllamaOption configures an OllamaClient.
type OllamaOption func(*OllamaClient)

// WithOllamaTemperature sets the sampling temperature sent with each chat.
func WithOllamaTemperature(t float64) OllamaOption {
	return func(c *OllamaClient) {
		c.temperature = t
	}
}

// WithOllamaHTTPClient replaces the HTTP client used for requests.
func WithOllamaHTTPClient(hc *http.Client) OllamaOption {
	return func(c *OllamaClient) {
		c.httpClient = hc
	}
}

// NewOllamaClient creates a client for model served at baseURL.
// An empty baseURL points at the default local server.
func NewOllamaClient(model, baseURL string, opts ...OllamaOption) (*OllamaClient, error) {
	model = strings.TrimSpace(model)
	if model == "" {
		return nil, errors.New("ollama model is required")
	}

	c := &OllamaClient{
		model:       model,
		baseURL:     strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		temperature: defaultOllamaTemperature,
	}
	if c.baseURL == "" {
		c.baseURL = defaultOllamaBaseURL
	}
	for _, opt := range opts {
		opt(c)
	}

	llmOpts := []ollama.Option{
		ollama.WithModel(c.model),
		ollama.WithServerURL(c.baseURL),
	}
	if c.httpClient != nil {
		llmOpts = append(llmOpts, ollama.WithHTTPClient(c.httpClient))
	}

	l, err := ollama.New(llmOpts...)
	if err != nil {
		return nil, fmt.Errorf("creating ollama client for %s: %w", c.baseURL, err)
	}
	c.llm = l

	return c, nil
}

// Chat sends the conversation and returns the first reply.
func (c *OllamaClient) Chat(ctx context.Context, messages []Message) (string, error) {
	if len(messages) == 0 {
		return "", errors.New("ollama chat: no messages")
	}

	resp, err := c.llm.GenerateContent(ctx, toLangChainMessages(messages),
		llms.WithModel(c.model),
		llms.WithTemperature(c.temperature),
	)
	if err != nil {
		return "", fmt.Errorf("ollama chat with %s: %w", c.model, err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("no response choices returned")
	}
	return resp.Choices[0].Content, nil
}

// toLangChainMessages maps roles case-insensitively; unknown roles become human turns.
func toLangChainMessages(messages []Message) []llms.MessageContent {
	result := make([]llms.MessageContent, 0, len(messages))
	for _, msg := range messages {
		var role llms.ChatMessageType
		switch strings.ToLower(msg.Role) {
		case RoleSystem:
			role = llms.ChatMessageTypeSystem
		case RoleAssistant:
			role = llms.ChatMessageTypeAI
		default:
			role = llms.ChatMessageTypeHuman
		}
		result = append(result, llms.TextParts(role, msg.Content))
	}
	return result
}
