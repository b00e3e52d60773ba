package log

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestWithFields(t *testing.T) {
	var buf bytes.Buffer
	base := zerolog.New(&buf)
	ctx := base.WithContext(context.Background())

	ctx = WithFields(ctx, map[string]any{"request_id": "abc"})
	FromCtx(ctx).Info().Msg("hello")

	assert.Contains(t, buf.String(), `"request_id":"abc"`)
	assert.Contains(t, buf.String(), `"message":"hello"`)
}

func TestGooseLogger_Printf(t *testing.T) {
	var buf bytes.Buffer
	base := zerolog.New(&buf).Level(zerolog.DebugLevel)
	ctx := base.WithContext(context.Background())

	NewGooseLoggerFromCtx(ctx).Printf("OK   %s\n", "00001_init.sql")

	assert.Contains(t, buf.String(), `"component":"goose"`)
	assert.Contains(t, buf.String(), "OK   00001_init.sql")
}

func TestNewLogger_Levels(t *testing.T) {
	prev := zerolog.GlobalLevel()
	t.Cleanup(func() { zerolog.SetGlobalLevel(prev) })

	var buf bytes.Buffer
	logger := newLogger(&buf, false)
	logger.Debug().Msg("hidden")
	logger.Info().Msg("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")

	buf.Reset()
	logger = newLogger(&buf, true)
	logger.Debug().Msg("now visible")

	assert.Contains(t, buf.String(), "now visible")
	assert.Contains(t, buf.String(), "logger_test.go")
}
