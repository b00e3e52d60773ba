package telegram

import (
	"fmt"

	"github.com/sandevgo/memobot/pkg/conv"
)

const (
	chatErrorText  = "Error generating bot response"
	imageErrorText = "Error processing the image"
	emptyReplyText = "…"
)

// userTag maps a chat to its fact store user, so each chat keeps its own memory.
func userTag(chatID int64) string {
	return fmt.Sprintf("telegram-%d", chatID)
}

func formatReply(reply string) []string {
	html := conv.TelegramHTML(reply)
	if html == "" {
		return []string{emptyReplyText}
	}
	return conv.Chunk(html, conv.TelegramMaxLen)
}
