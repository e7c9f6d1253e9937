package providers

import (
	"context"
	"errors"
	"net/http"

	"google.golang.org/genai"
)

// DefaultGeminiModel is used when no model is configured.
const DefaultGeminiModel = "gemini-2.5-flash"

// Gemini generates plans with the Gemini API.
type Gemini struct {
	client *genai.Client
}

type GeminiOption func(*genai.ClientConfig)

// WithGeminiBaseURL points the client at a different endpoint.
func WithGeminiBaseURL(raw string) GeminiOption {
	return func(c *genai.ClientConfig) { c.HTTPOptions.BaseURL = raw }
}

func WithGeminiHTTPClient(h *http.Client) GeminiOption {
	return func(c *genai.ClientConfig) { c.HTTPClient = h }
}

// NewGemini creates a Gemini provider for apiKey.
func NewGemini(ctx context.Context, apiKey string, opts ...GeminiOption) (*Gemini, error) {
	if apiKey == "" {
		return nil, errors.New("gemini: api key required")
	}
	cc := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	for _, o := range opts {
		o(cc)
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, err
	}
	return &Gemini{client: client}, nil
}

func (g *Gemini) Name() string         { return "gemini" }
func (g *Gemini) DefaultModel() string { return DefaultGeminiModel }

func (g *Gemini) Generate(ctx context.Context, prompt string, cfg Config) (string, error) {
	model := cfg.Model
	if model == "" {
		model = DefaultGeminiModel
	}

	temperature := float32(cfg.Temperature)
	gc := &genai.GenerateContentConfig{Temperature: &temperature}
	if cfg.MaxOutputTokens > 0 {
		gc.MaxOutputTokens = int32(cfg.MaxOutputTokens)
	}

	resp, err := g.client.Models.GenerateContent(ctx, model, genai.Text(prompt), gc)
	if err != nil {
		var apiErr genai.APIError
		if errors.As(err, &apiErr) {
			return "", &Error{Provider: g.Name(), Message: messageForStatus(apiErr.Code), Err: err}
		}
		var apiErrPtr *genai.APIError
		if errors.As(err, &apiErrPtr) {
			return "", &Error{Provider: g.Name(), Message: messageForStatus(apiErrPtr.Code), Err: err}
		}
		return "", err
	}
	return resp.Text(), nil
}
