package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/sandevgo/memobot/internal/core"
	"github.com/stretchr/testify/assert"
)

func TestRenderTranscript(t *testing.T) {
	out := RenderTranscript("current_user", []core.TranscriptEntry{
		{ID: 1, User: "hello", Bot: "hi", CreatedAt: time.Now()},
		{ID: 2, User: "I like chess", Bot: "Nice! You like chess.", CreatedAt: time.Now()},
	})

	assert.Contains(t, out, "current_user")
	assert.Contains(t, out, "#1")
	assert.Contains(t, out, "Nice! You like chess.")
	assert.Less(t, strings.Index(out, "hello"), strings.Index(out, "I like chess"))
}

func TestRenderTranscript_Empty(t *testing.T) {
	out := RenderTranscript("alice", nil)

	assert.Contains(t, out, "alice")
	assert.Contains(t, out, "no turns recorded yet")
}
