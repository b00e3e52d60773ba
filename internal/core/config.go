package core

type AppConfig interface {
	GetRuntimePath() string
	GetDatabasePath() string
	GetHTTPAddr() string
	GetDefaultUser() string
	IsTelegramSelected() bool
}

type ContextConfig interface {
	GetContextTurns() int
	GetContextTokens() int
}

type GeminiConfig interface {
	GetGeminiAPIKey() string
	GetGeminiModel() string
	GetImagePrompt() string
}

type TelegramConfig interface {
	GetTelegramToken() string
	GetTelegramOwnerID() int64
}
