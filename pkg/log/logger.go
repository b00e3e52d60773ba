package log

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/diode"
	"github.com/rs/zerolog/log"
)

const (
	diodeSize = 1000
	diodePoll = 5 * time.Millisecond
)

// NewContextWithLogger sets up the process logger on stdout and returns a
// context carrying it. Call the returned func before exit to flush.
func NewContextWithLogger(ctx context.Context, debug bool) (context.Context, func()) {
	wr := diode.NewWriter(os.Stdout, diodeSize, diodePoll, func(missed int) {
		fmt.Fprintf(os.Stderr, "logger dropped %d messages\n", missed)
	})

	log.Logger = newLogger(wr, debug)

	return log.Logger.WithContext(ctx), func() {
		_ = wr.Close()
	}
}

// newLogger builds a console logger. Debug mode lowers the level and adds
// the caller to each line.
func newLogger(out io.Writer, debug bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	console := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.DateTime,
		PartsOrder: []string{
			zerolog.LevelFieldName,
			zerolog.TimestampFieldName,
			zerolog.CallerFieldName,
			zerolog.MessageFieldName,
		},
	}

	lc := zerolog.New(console).With().Timestamp()
	if debug {
		lc = lc.Caller()
	}
	return lc.Logger()
}

// WithFields returns a child context whose logger carries the given key/value pairs.
func WithFields(ctx context.Context, fields map[string]any) context.Context {
	return FromCtx(ctx).With().Fields(fields).Logger().WithContext(ctx)
}

func FromCtx(ctx context.Context) *zerolog.Logger {
	return log.Ctx(ctx)
}
