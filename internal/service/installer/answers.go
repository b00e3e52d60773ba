package installer

import "errors"

// Answers holds everything `memo init` writes into the runtime .env.
type Answers struct {
	GeminiAPIKey   string `env:"GEMINI_API_KEY"`
	GeminiModel    string `env:"GEMINI_MODEL"`
	HTTPAddr       string `env:"MEMO_HTTP_ADDR"`
	DefaultUser    string `env:"MEMO_DEFAULT_USER"`
	ContextTurns   int    `env:"MEMO_CONTEXT_TURNS"`
	ContextTokens  int    `env:"MEMO_CONTEXT_TOKENS"`
	EnableTelegram bool   `env:"MEMO_ENABLE_TELEGRAM"`
	TelegramToken  string `env:"TELEGRAM_TOKEN"`
	TelegramOwner  int64  `env:"TELEGRAM_OWNER_ID"`
}

func (a Answers) Validate() error {
	if a.GeminiAPIKey == "" {
		return errors.New("gemini API key is required")
	}
	if a.EnableTelegram && (a.TelegramToken == "" || a.TelegramOwner == 0) {
		return errors.New("telegram needs both a bot token and an owner id")
	}
	if a.ContextTurns < 0 || a.ContextTokens < 0 {
		return errors.New("context limits cannot be negative")
	}
	return nil
}
