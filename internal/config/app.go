package config

import (
	"context"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/memobot/internal/core"
	"github.com/sandevgo/memobot/pkg/log"
)

type AppConfig struct {
	RuntimePath string `env:"MEMO_RUNTIME_PATH" envDefault:".memobot"`
	HTTPAddr    string `env:"MEMO_HTTP_ADDR" envDefault:":8000"`

	// Tag stored with every row when the caller does not name a user
	DefaultUser string `env:"MEMO_DEFAULT_USER" envDefault:"current_user"`

	// Transport Flags
	EnableTelegram bool `env:"MEMO_ENABLE_TELEGRAM" envDefault:"false"`

	// Context Management, zero means the whole transcript
	ContextTurns      int    `env:"MEMO_CONTEXT_TURNS" envDefault:"0"`
	ContextTokens     int    `env:"MEMO_CONTEXT_TOKENS" envDefault:"0"`
	TokenizerEncoding string `env:"MEMO_TOKENIZER_ENCODING" envDefault:"cl100k_base"`

	ReadTimeout     time.Duration `env:"MEMO_HTTP_READ_TIMEOUT" envDefault:"30s"`
	WriteTimeout    time.Duration `env:"MEMO_HTTP_WRITE_TIMEOUT" envDefault:"120s"`
	ShutdownTimeout time.Duration `env:"MEMO_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

func NewAppConfig(ctx context.Context) *AppConfig {
	c := &AppConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse App config")
	}
	c.RuntimePath = resolveRuntimePath(c.RuntimePath)
	if c.DefaultUser == "" {
		c.DefaultUser = core.DefaultUserID
	}
	return c
}

func (c AppConfig) GetRuntimePath() string {
	return c.RuntimePath
}

func (c AppConfig) GetDatabasePath() string {
	return filepath.Join(c.RuntimePath, "chat_memory.db")
}

func (c AppConfig) GetEnvPath() string {
	return EnvPath(c.RuntimePath)
}

func (c AppConfig) GetHTTPAddr() string {
	return c.HTTPAddr
}

func (c AppConfig) GetDefaultUser() string {
	return c.DefaultUser
}

func (c AppConfig) IsTelegramSelected() bool {
	return c.EnableTelegram
}

func (c AppConfig) GetContextTurns() int {
	return c.ContextTurns
}

func (c AppConfig) GetContextTokens() int {
	return c.ContextTokens
}
