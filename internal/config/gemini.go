package config

import (
	"context"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/memobot/pkg/log"
)

type GeminiConfig struct {
	APIKey      string `env:"GEMINI_API_KEY,required,notEmpty"`
	Model       string `env:"GEMINI_MODEL" envDefault:"gemini-2.0-flash"`
	ImagePrompt string `env:"GEMINI_IMAGE_PROMPT" envDefault:"What is this image?"`
}

func NewGeminiConfig(ctx context.Context) *GeminiConfig {
	c := &GeminiConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse Gemini config")
	}
	return c
}

func (c GeminiConfig) GetGeminiAPIKey() string {
	return c.APIKey
}

func (c GeminiConfig) GetGeminiModel() string {
	return c.Model
}

func (c GeminiConfig) GetImagePrompt() string {
	return c.ImagePrompt
}
