package main

import (
	"fmt"
	"os"

	"github.com/sandevgo/memobot/internal/config"
	"github.com/sandevgo/memobot/internal/service/installer"
	"github.com/sandevgo/memobot/pkg/env"
	"github.com/sandevgo/memobot/pkg/log"
	"github.com/spf13/cobra"
)

var (
	initOpts  installer.Answers
	initForce bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the runtime .env file",
	Long: `Writes GEMINI_API_KEY and the other settings into the .env of the runtime
directory. Without --gemini-key an interactive wizard asks for them.`,
	SilenceUsage:  true,
	SilenceErrors: false,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		logger := log.FromCtx(ctx)

		envPath := config.EnvPath(config.GetRuntimePath())
		if _, err := os.Stat(envPath); err == nil && !initForce {
			return fmt.Errorf("%s already exists, use --force to overwrite", envPath)
		}

		if initOpts.GeminiAPIKey == "" {
			if err := installer.RunWizard(&initOpts); err != nil {
				return err
			}
		}

		if err := initOpts.Validate(); err != nil {
			return err
		}

		if err := env.WriteFile(envPath, &initOpts); err != nil {
			return err
		}

		logger.Info().Str("path", envPath).Msg("runtime configuration written")
		logger.Info().Msg("You can now run 'memo serve'.")
		return nil
	},
}

func init() {
	f := initCmd.Flags()
	f.StringVar(&initOpts.GeminiAPIKey, "gemini-key", os.Getenv("GEMINI_API_KEY"), "Gemini API key")
	f.StringVar(&initOpts.GeminiModel, "gemini-model", "", "Gemini model (default gemini-2.0-flash)")
	f.StringVar(&initOpts.HTTPAddr, "addr", "", "HTTP listen address (default :8000)")
	f.StringVar(&initOpts.DefaultUser, "user", "", "default user tag (default current_user)")
	f.IntVar(&initOpts.ContextTurns, "context-turns", 0, "keep only the last N turns in the prompt, 0 keeps all")
	f.IntVar(&initOpts.ContextTokens, "context-tokens", 0, "token budget of the prompt, 0 is unbounded")
	f.BoolVar(&initOpts.EnableTelegram, "telegram", false, "enable the Telegram bot")
	f.StringVar(&initOpts.TelegramToken, "telegram-token", "", "Telegram bot token")
	f.Int64Var(&initOpts.TelegramOwner, "telegram-owner", 0, "Telegram user id allowed to talk to the bot")
	f.BoolVar(&initForce, "force", false, "overwrite an existing .env")
	rootCmd.AddCommand(initCmd)
}
