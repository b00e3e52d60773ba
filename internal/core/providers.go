package core

import "context"

// Gateway is the remote text generation service.
type Gateway interface {
	Generate(ctx context.Context, prompt string) (string, error)
	GenerateWithImage(ctx context.Context, prompt string, image []byte) (string, error)
}

// TokenCounter reports how many model tokens a piece of text occupies.
type TokenCounter interface {
	Count(text string) int
}
