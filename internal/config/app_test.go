package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAppConfig_Defaults(t *testing.T) {
	t.Setenv("MEMO_RUNTIME_PATH", t.TempDir())

	cfg := NewAppConfig(context.Background())

	assert.Equal(t, ":8000", cfg.GetHTTPAddr())
	assert.Equal(t, "current_user", cfg.GetDefaultUser())
	assert.Zero(t, cfg.GetContextTurns())
	assert.Zero(t, cfg.GetContextTokens())
	assert.False(t, cfg.IsTelegramSelected())
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "chat_memory.db", filepath.Base(cfg.GetDatabasePath()))
}

func TestNewAppConfig_Overrides(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("MEMO_RUNTIME_PATH", dir)
	t.Setenv("MEMO_HTTP_ADDR", "127.0.0.1:9090")
	t.Setenv("MEMO_DEFAULT_USER", "alice")
	t.Setenv("MEMO_CONTEXT_TURNS", "12")
	t.Setenv("MEMO_CONTEXT_TOKENS", "2048")
	t.Setenv("MEMO_ENABLE_TELEGRAM", "true")

	cfg := NewAppConfig(context.Background())

	assert.Equal(t, dir, cfg.GetRuntimePath())
	assert.Equal(t, "127.0.0.1:9090", cfg.GetHTTPAddr())
	assert.Equal(t, "alice", cfg.GetDefaultUser())
	assert.Equal(t, 12, cfg.GetContextTurns())
	assert.Equal(t, 2048, cfg.GetContextTokens())
	assert.True(t, cfg.IsTelegramSelected())
	assert.Equal(t, filepath.Join(dir, ".env"), cfg.GetEnvPath())
}

func TestResolveRuntimePath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, ".memobot"), resolveRuntimePath(""))
	assert.Equal(t, filepath.Join(home, "custom"), resolveRuntimePath("custom"))
	assert.Equal(t, "/var/lib/memo", resolveRuntimePath("/var/lib/memo"))
}

func TestNewGeminiConfig_Defaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")

	cfg := NewGeminiConfig(context.Background())

	assert.Equal(t, "test-key", cfg.GetGeminiAPIKey())
	assert.Equal(t, "gemini-2.0-flash", cfg.GetGeminiModel())
	assert.Equal(t, "What is this image?", cfg.GetImagePrompt())
}
