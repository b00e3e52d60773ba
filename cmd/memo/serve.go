package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/sandevgo/memobot/internal/core"
	"github.com/sandevgo/memobot/pkg/log"
	"github.com/sandevgo/memobot/pkg/srv"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API and optional transports",
	Long:  `Opens the fact store, connects to Gemini and serves the chat API until interrupted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		logger := log.FromCtx(ctx)
		logger.Info().Str("version", core.MemoVersion).Msgf("starting %s", core.MemoName)

		app := NewServices(ctx)

		srv.StartServices(ctx, app.services)

		srv.ShutdownServices(ctx, app.services, app.cfg.ShutdownTimeout)
		logger.Info().Msgf("%s has been shut down gracefully", core.MemoName)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
