// README: Gemini-backed completion provider.
package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const geminiModel = "gemini-2.0-flash"

// GeminiProvider implements CompletionProvider using Google's Gemini models.
type GeminiProvider struct {
	client  *genai.Client
	model   *genai.GenerativeModel
	timeout time.Duration
}

// NewGeminiProvider initializes a new Gemini client. apiKey should be
// provided from environment variables. timeout bounds each Complete call.
func NewGeminiProvider(ctx context.Context, apiKey string, timeout time.Duration) (*GeminiProvider, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	// Gemini 2.0 Flash for low latency and cost efficiency.
	model := client.GenerativeModel(geminiModel)
	model.SetTemperature(0.4)

	return &GeminiProvider{
		client:  client,
		model:   model,
		timeout: timeout,
	}, nil
}

// Close cleans up the Gemini client resources.
func (p *GeminiProvider) Close() {
	p.client.Close()
}

func (p *GeminiProvider) Configured() bool { return true }

// Complete sends the concatenated prompts to Gemini and returns the raw
// completion text. Provider failures map onto ErrModelUnavailable and
// ErrModelTimeout so call sites can degrade without knowing the vendor.
func (p *GeminiProvider) Complete(ctx context.Context, systemPrompts []string, userMessage string) (string, error) {
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	var prompt strings.Builder
	for _, sp := range systemPrompts {
		prompt.WriteString(sp)
		prompt.WriteString("\n\n")
	}
	prompt.WriteString(userMessage)

	resp, err := p.model.GenerateContent(ctx, genai.Text(prompt.String()))
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", fmt.Errorf("%w: %v", ErrModelTimeout, err)
		}
		return "", fmt.Errorf("%w: %v", ErrModelUnavailable, err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("%w: no response candidates", ErrModelUnavailable)
	}

	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			text.WriteString(string(txt))
		}
	}
	if strings.TrimSpace(text.String()) == "" {
		return "", fmt.Errorf("%w: empty completion", ErrModelUnavailable)
	}

	return text.String(), nil
}
