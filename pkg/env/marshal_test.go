package env

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	APIKey   string        `env:"GEMINI_API_KEY,required,notEmpty"`
	Turns    int           `env:"MEMO_CONTEXT_TURNS"`
	Telegram bool          `env:"MEMO_ENABLE_TELEGRAM"`
	Timeout  time.Duration `env:"MEMO_SHUTDOWN_TIMEOUT"`
	Prompt   string        `env:"GEMINI_IMAGE_PROMPT"`
	Skipped  string
	hidden   string `env:"HIDDEN"`
}

func TestMarshalEnv(t *testing.T) {
	got, err := MarshalEnv(&sample{
		APIKey:   "key-123",
		Turns:    20,
		Telegram: true,
		Timeout:  15 * time.Second,
		Skipped:  "x",
		hidden:   "y",
	})

	require.NoError(t, err)
	assert.Equal(t, "GEMINI_API_KEY=key-123\nMEMO_CONTEXT_TURNS=20\nMEMO_ENABLE_TELEGRAM=true\nMEMO_SHUTDOWN_TIMEOUT=15s\n", got)
}

func TestMarshalEnv_Empty(t *testing.T) {
	got, err := MarshalEnv(&sample{})

	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestMarshalEnv_NotStructPointer(t *testing.T) {
	_, err := MarshalEnv(sample{})
	assert.Error(t, err)
}

func TestWriteFile_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runtime", ".env")

	err := WriteFile(path, &sample{
		APIKey: "key-123",
		Prompt: "What is this image? # be brief",
	})
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	values, err := godotenv.Read(path)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"GEMINI_API_KEY":      "key-123",
		"GEMINI_IMAGE_PROMPT": "What is this image? # be brief",
	}, values)
}
