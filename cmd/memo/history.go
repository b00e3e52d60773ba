package main

import (
	"fmt"

	"github.com/sandevgo/memobot/internal/config"
	"github.com/sandevgo/memobot/internal/service/ui"
	"github.com/sandevgo/memobot/pkg/log"
	"github.com/spf13/cobra"
)

var historyUser string

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Print the stored conversation",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		if err := initEnv(ctx, config.GetRuntimePath()); err != nil {
			log.FromCtx(ctx).Warn().Err(err).Msg("continuing without .env")
		}
		appCfg := config.NewAppConfig(ctx)

		store, closeDB, err := initStorage(ctx, appCfg)
		if err != nil {
			return err
		}
		defer closeDB()

		userID := historyUser
		if userID == "" {
			userID = appCfg.GetDefaultUser()
		}

		turns, err := store.AllTurns(ctx, userID)
		if err != nil {
			return err
		}

		fmt.Fprint(cmd.OutOrStdout(), ui.RenderTranscript(userID, turns))
		return nil
	},
}

func init() {
	historyCmd.Flags().StringVarP(&historyUser, "user", "u", "", "user tag to print (default MEMO_DEFAULT_USER)")
	rootCmd.AddCommand(historyCmd)
}
