package memory

import (
	"context"
	"fmt"
	"strings"

	"github.com/sandevgo/memobot/internal/core"
	"github.com/sandevgo/memobot/pkg/log"
)

// Window bounds how much of the transcript goes into a prompt.
// Zero values mean no bound.
type Window struct {
	MaxTurns  int
	MaxTokens int
}

func NewWindow(cfg core.ContextConfig) Window {
	return Window{
		MaxTurns:  cfg.GetContextTurns(),
		MaxTokens: cfg.GetContextTokens(),
	}
}

type Assembler struct {
	repo    core.TranscriptRepository
	window  Window
	counter core.TokenCounter
}

// NewAssembler returns an assembler over repo. counter may be nil when
// window.MaxTokens is zero.
func NewAssembler(repo core.TranscriptRepository, window Window, counter core.TokenCounter) *Assembler {
	return &Assembler{
		repo:    repo,
		window:  window,
		counter: counter,
	}
}

// BuildContext loads the user's transcript and renders the prompt for current.
func (a *Assembler) BuildContext(ctx context.Context, userID, current string) (string, error) {
	history, err := a.repo.RecentTurns(ctx, userID, a.window.MaxTurns)
	if err != nil {
		return "", fmt.Errorf("failed to get history: %w", err)
	}

	history = a.fitBudget(history, current)

	log.FromCtx(ctx).Debug().Int("turns", len(history)).Msg("assembled conversation context")
	return Render(history, current), nil
}

// fitBudget drops the oldest turns until the rendered prompt fits MaxTokens.
// The current message is always kept, even if it alone is over budget.
func (a *Assembler) fitBudget(history []core.TranscriptEntry, current string) []core.TranscriptEntry {
	if a.window.MaxTokens <= 0 || a.counter == nil {
		return history
	}
	for len(history) > 0 && a.counter.Count(Render(history, current)) > a.window.MaxTokens {
		history = history[1:]
	}
	return history
}

// Render formats history as "User: ...\nBot: ..." blocks joined by newlines and
// appends the open turn for current.
func Render(history []core.TranscriptEntry, current string) string {
	var sb strings.Builder
	for i, e := range history {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString("User: ")
		sb.WriteString(e.User)
		sb.WriteString("\nBot: ")
		sb.WriteString(e.Bot)
	}

	sb.WriteString("\nUser: ")
	sb.WriteString(current)
	sb.WriteString("\nBot:")
	return sb.String()
}
