package recipe

import (
	"context"
	"net/http"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// ChatClient is the part of openai.Client used here.
type ChatClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// OpenAICompleter calls the chat completions endpoint.
type OpenAICompleter struct {
	client    ChatClient
	model     string
	maxTokens int
}

func NewOpenAICompleter(client ChatClient, model string, maxTokens int) *OpenAICompleter {
	return &OpenAICompleter{client: client, model: model, maxTokens: maxTokens}
}

// NewOpenAIClient builds an instrumented go-openai client. baseURL may be empty.
func NewOpenAIClient(apiKey, baseURL string, httpClient *http.Client) *openai.Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	httpClient.Transport = otelhttp.NewTransport(transportOrDefault(httpClient.Transport))
	cfg.HTTPClient = httpClient
	return openai.NewClientWithConfig(cfg)
}

func (c *OpenAICompleter) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     c.model,
		MaxTokens: c.maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", ErrEmptyCompletion
	}
	return resp.Choices[0].Message.Content, nil
}

func transportOrDefault(rt http.RoundTripper) http.RoundTripper {
	if rt == nil {
		return http.DefaultTransport
	}
	return rt
}
