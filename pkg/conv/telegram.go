package conv

import (
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/microcosm-cc/bluemonday"
)

// TelegramMaxLen stays below the 4096 limit of the Bot API.
const TelegramMaxLen = 4000

var (
	extensions = parser.CommonExtensions | parser.NoEmptyLineBeforeBlock
	htmlFlags  = html.CommonFlags
	tgPolicy   = newTelegramPolicy()
)

// https://core.telegram.org/bots/api#html-style
func newTelegramPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements("b", "strong", "i", "em", "u", "ins", "s", "strike", "del", "code", "pre", "blockquote")
	p.AllowAttrs("href").OnElements("a")
	p.AllowAttrs("class").OnElements("code")
	return p
}

// TelegramHTML renders model output as the HTML subset Telegram accepts.
func TelegramHTML(md string) string {
	p := parser.NewWithExtensions(extensions)
	renderer := html.NewRenderer(html.RendererOptions{Flags: htmlFlags})
	rendered := markdown.Render(p.Parse([]byte(md)), renderer)

	return strings.TrimSpace(string(tgPolicy.SanitizeBytes(rendered)))
}

