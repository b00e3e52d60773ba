package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/generative-ai-go/genai"
	"github.com/sandevgo/memobot/internal/core"
	"github.com/sandevgo/memobot/pkg/log"
	"google.golang.org/api/option"
)

// generator is the part of *genai.GenerativeModel the client uses.
type generator interface {
	GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

// Client is the Gemini backed core.Gateway. Every call is a single
// synchronous request; failures are returned wrapped in core.ErrGateway.
type Client struct {
	client *genai.Client
	model  generator
	name   string
}

func NewClient(ctx context.Context, cfg core.GeminiConfig) (*Client, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.GetGeminiAPIKey()))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create genai client: %w", core.ErrGateway, err)
	}

	log.FromCtx(ctx).Info().Str("model", cfg.GetGeminiModel()).Msg("starting gemini gateway")

	return &Client{
		client: client,
		model:  client.GenerativeModel(cfg.GetGeminiModel()),
		name:   cfg.GetGeminiModel(),
	}, nil
}

func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	return c.generate(ctx, genai.Text(prompt))
}

// GenerateWithImage sends prompt followed by the image. The image MIME type is
// sniffed from its bytes; anything that is not an image is rejected.
func (c *Client) GenerateWithImage(ctx context.Context, prompt string, image []byte) (string, error) {
	mt := mimetype.Detect(image)
	if !strings.HasPrefix(mt.String(), "image/") {
		return "", fmt.Errorf("%w: unsupported upload type %s", core.ErrValidation, mt.String())
	}

	return c.generate(ctx, genai.Text(prompt), genai.Blob{MIMEType: mt.String(), Data: image})
}

func (c *Client) Close() error {
	if c.client == nil {
		return nil
	}
	return c.client.Close()
}

func (c *Client) generate(ctx context.Context, parts ...genai.Part) (string, error) {
	logger := log.FromCtx(ctx)

	resp, err := c.model.GenerateContent(ctx, parts...)
	if err != nil {
		logger.Error().Err(err).Str("model", c.name).Msg("gemini request failed")
		return "", fmt.Errorf("%w: %w", core.ErrGateway, err)
	}

	text, err := responseText(resp)
	if err != nil {
		return "", fmt.Errorf("%w: %w", core.ErrGateway, err)
	}

	logger.Debug().Str("model", c.name).Int("len", len(text)).Msg("gemini response received")
	return text, nil
}

// responseText joins the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", fmt.Errorf("empty response")
	}

	if len(resp.Candidates) == 0 {
		if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != genai.BlockReasonUnspecified {
			return "", fmt.Errorf("prompt blocked: %s", resp.PromptFeedback.BlockReason)
		}
		return "", fmt.Errorf("response has no candidates")
	}

	cand := resp.Candidates[0]
	if cand.Content == nil {
		return "", fmt.Errorf("candidate has no content (finish reason: %s)", cand.FinishReason)
	}

	var sb strings.Builder
	for _, p := range cand.Content.Parts {
		if t, ok := p.(genai.Text); ok {
			sb.WriteString(string(t))
		}
	}

	if sb.Len() == 0 {
		return "", fmt.Errorf("candidate has no text (finish reason: %s)", cand.FinishReason)
	}
	return sb.String(), nil
}

var _ core.Gateway = (*Client)(nil)
