package recipe

import (
	"context"
	"math"
	"net/http"
	"strings"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"google.golang.org/genai"
)

// ContentGenerator is the part of genai.Models used here.
type ContentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GeminiCompleter calls the Gemini generateContent endpoint.
type GeminiCompleter struct {
	models    ContentGenerator
	model     string
	maxTokens int32
}

// NewGeminiCompleter clamps maxTokens to the int32 range the API accepts.
func NewGeminiCompleter(models ContentGenerator, model string, maxTokens int) *GeminiCompleter {
	maxTokens = min(max(maxTokens, 0), math.MaxInt32)
	return &GeminiCompleter{models: models, model: model, maxTokens: int32(maxTokens)}
}

// NewGeminiClient creates an instrumented Gemini Developer API client.
// httpClient may be nil.
func NewGeminiClient(ctx context.Context, apiKey string, httpClient *http.Client) (*genai.Client, error) {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	httpClient.Transport = otelhttp.NewTransport(transportOrDefault(httpClient.Transport))

	return genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: httpClient,
	})
}

func (c *GeminiCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := c.models.GenerateContent(ctx, c.model,
		[]*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)},
		&genai.GenerateContentConfig{MaxOutputTokens: c.maxTokens},
	)
	if err != nil {
		return "", err
	}
	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyCompletion
	}
	return text, nil
}
