package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/sandevgo/memobot/internal/core"
)

// RenderTranscript formats stored turns for the terminal, oldest first.
func RenderTranscript(userID string, turns []core.TranscriptEntry) string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render(fmt.Sprintf("HISTORY %s", userID)))
	b.WriteString("\n")

	if len(turns) == 0 {
		b.WriteString(MetaStyle.Render("no turns recorded yet"))
		b.WriteString("\n")
		return b.String()
	}

	for _, t := range turns {
		b.WriteString(MetaStyle.Render(fmt.Sprintf("#%d %s", t.ID, t.CreatedAt.Local().Format(time.DateTime))))
		b.WriteString("\n")
		b.WriteString(UserStyle.Render("User:") + " " + t.User + "\n")
		b.WriteString(BotStyle.Render("Bot:") + " " + t.Bot + "\n\n")
	}
	return b.String()
}
