package services

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/rs/zerolog/log"
	"google.golang.org/genai"
)

// GeminiService is the gateway to the remote generative model: one call per
// request, no automatic retries. Retrying is left to the caller and is only
// safe on the chat path, where no temporary files are involved.
type GeminiService interface {
	GenerateText(ctx context.Context, prompt string, temperature float32) (string, error)
}

type geminiService struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

func NewGeminiService(apiKey, model string, timeout time.Duration) (GeminiService, error) {
	ctx := context.Background()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &geminiService{
		client:  client,
		model:   model,
		timeout: timeout,
	}, nil
}

// GenerateText sends one prompt to the model and returns its raw text reply.
// Every failure comes back as a *GatewayError so callers never see transport
// or SDK internals.
func (g *geminiService) GenerateText(ctx context.Context, prompt string, temperature float32) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	config := &genai.GenerateContentConfig{
		Temperature:     &temperature,
		MaxOutputTokens: 8192,
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), config)
	if err != nil {
		log.Error().Err(err).Str("model", g.model).Msg("gemini call failed")
		return "", normalizeGatewayError(err)
	}

	if resp == nil {
		return "", &GatewayError{Kind: GatewayRemote, Message: "model returned no response"}
	}

	text := resp.Text()
	if text == "" {
		// Content-policy refusals and empty candidates land here
		return "", &GatewayError{Kind: GatewayRemote, Message: "model returned no text content"}
	}

	return text, nil
}

func normalizeGatewayError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &GatewayError{Kind: GatewayTimeout, Message: "model call timed out", Err: err}
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		kind := GatewayNetwork
		if netErr.Timeout() {
			kind = GatewayTimeout
		}
		return &GatewayError{Kind: kind, Message: "could not reach model endpoint", Err: err}
	}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return &GatewayError{
			Kind:    GatewayRemote,
			Message: fmt.Sprintf("model endpoint returned status %d", apiErr.Code),
			Err:     err,
		}
	}

	return &GatewayError{Kind: GatewayUnknown, Message: "model call failed", Err: err}
}
