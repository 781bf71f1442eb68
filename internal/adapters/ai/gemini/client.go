// Package gemini implements the assistant gateway on Google's Gemini models.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/SscSPs/six_jars_app/internal/apperrors"
	"github.com/SscSPs/six_jars_app/internal/core/ports/gateways"
	"google.golang.org/genai"
)

// DefaultModelName is used when no model is configured.
const DefaultModelName = "gemini-2.5-flash"

// generator produces one model answer. It is the seam tests replace.
type generator interface {
	generate(ctx context.Context, system, prompt string, jsonOut bool) (string, error)
}

// Gateway talks to Gemini through the genai SDK.
type Gateway struct {
	gen    generator
	logger *slog.Logger
}

var _ gateways.AssistantGateway = (*Gateway)(nil)

// New creates a gateway using the Gemini API with the given key.
func New(ctx context.Context, apiKey, model string, logger *slog.Logger) (*Gateway, error) {
	if apiKey == "" {
		return nil, errors.New("gemini api key cannot be empty")
	}
	if model == "" {
		model = DefaultModelName
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return newGateway(&sdkGenerator{client: client, model: model}, logger), nil
}

func newGateway(gen generator, logger *slog.Logger) *Gateway {
	if logger == nil {
		logger = slog.Default()
	}
	return &Gateway{gen: gen, logger: logger}
}

type sdkGenerator struct {
	client *genai.Client
	model  string
}

func (g *sdkGenerator) generate(ctx context.Context, system, prompt string, jsonOut bool) (string, error) {
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: system}}},
		Temperature:       genai.Ptr[float32](0.2),
	}
	if jsonOut {
		cfg.ResponseMIMEType = "application/json"
	}
	contents := []*genai.Content{
		{
			Role:  genai.RoleUser,
			Parts: []*genai.Part{{Text: prompt}},
		},
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, cfg)
	if err != nil {
		return "", classifyError(err)
	}
	return resp.Text(), nil
}

// classifyError maps provider failures onto the application's error kinds.
func classifyError(err error) error {
	if isQuotaError(err) {
		return fmt.Errorf("%w: %v", apperrors.ErrAIQuotaExceeded, err)
	}
	return fmt.Errorf("%w: generate content: %v", apperrors.ErrExternal, err)
}

func isQuotaError(err error) bool {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code == http.StatusTooManyRequests || apiErr.Status == "RESOURCE_EXHAUSTED"
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return apiErrPtr.Code == http.StatusTooManyRequests || apiErrPtr.Status == "RESOURCE_EXHAUSTED"
	}
	msg := err.Error()
	return strings.Contains(msg, "RESOURCE_EXHAUSTED") || strings.Contains(msg, "429")
}

// cleanModelJSON strips Markdown fences and any chatter around the JSON value.
func cleanModelJSON(raw string) string {
	s := strings.TrimSpace(raw)

	// ```json ... ``` or ``` ... ```
	if strings.HasPrefix(s, "```") {
		idx := strings.Index(s, "\n")
		if idx == -1 {
			return s
		}
		s = strings.TrimSpace(s[idx+1:])
	}
	if idx := strings.LastIndex(s, "```"); idx != -1 {
		s = s[:idx]
	}
	s = strings.TrimSpace(s)

	// Keep the outermost object or array, whichever opens first.
	open := strings.IndexAny(s, "[{")
	if open == -1 {
		return s
	}
	closer := "]"
	if s[open] == '{' {
		closer = "}"
	}
	if end := strings.LastIndex(s, closer); end > open {
		s = s[open : end+1]
	}
	return strings.TrimSpace(s)
}
