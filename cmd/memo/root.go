package main

import (
	"context"
	"os"

	"github.com/sandevgo/memobot/internal/config"
	"github.com/sandevgo/memobot/internal/service/ui"
	"github.com/sandevgo/memobot/pkg/log"
	"github.com/spf13/cobra"
)

var (
	debug bool
)

var rootCmd = &cobra.Command{
	Use:   "memo",
	Short: "memobot, a chat relay that remembers",
	Long: `memobot answers simple questions about you from what you told it before
and forwards everything else, with the conversation so far, to Gemini.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", config.IsDebug(), "enable debug logging")
}

func setupLogger(ctx context.Context) (context.Context, func()) {
	return log.NewContextWithLogger(ctx, debug || config.IsDebug())
}

// CustomizeHelp renders help pages with the terminal styles of the ui package.
func CustomizeHelp(rootCmd *cobra.Command) {
	cobra.AddTemplateFunc("title", func(s string) string { return ui.TitleStyle.Render(s) })
	cobra.AddTemplateFunc("usage", func(s string) string { return ui.UsageStyle.Render(s) })
	cobra.AddTemplateFunc("flags", func(s string) string { return ui.FlagStyle.Render(s) })
	cobra.AddTemplateFunc("muted", func(s string) string { return ui.DescStyle.Render(s) })

	rootCmd.SetHelpTemplate(helpTemplate)
}

const helpTemplate = `{{with (or .Long .Short)}}{{. | trimTrailingWhitespaces}}
{{end}}
{{title "Usage"}}
  {{usage .UseLine}}{{if .HasAvailableSubCommands}}
  {{usage (print .CommandPath " [command]")}}{{end}}
{{if .HasAvailableSubCommands}}
{{title "Commands"}}{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{rpad .Name .NamePadding}} {{muted .Short}}{{end}}{{end}}
{{end}}{{if .HasAvailableLocalFlags}}
{{title "Flags"}}
{{flags (.LocalFlags.FlagUsages | trimTrailingWhitespaces)}}
{{end}}{{if .HasAvailableInheritedFlags}}
{{title "Global flags"}}
{{flags (.InheritedFlags.FlagUsages | trimTrailingWhitespaces)}}
{{end}}{{if .HasAvailableSubCommands}}
{{muted (print "Run '" .CommandPath " [command] --help' for details on a command.")}}
{{end}}`
