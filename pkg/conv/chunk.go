package conv

import (
	"strings"
	"unicode/utf8"
)

// Chunk splits Telegram HTML into pieces of at most maxLen bytes. Pieces never
// end inside a rune, an entity or a tag. Tags still open at a cut are closed
// at the end of the piece and reopened at the start of the next one. A cut
// prefers the last newline in the latter two thirds of a piece.
func Chunk(html string, maxLen int) []string {
	if len(html) <= maxLen {
		return []string{html}
	}

	c := &chunker{max: maxLen, nl: -1}
	for _, tok := range tokenize(html) {
		c.add(tok)
	}
	c.finish()
	return c.chunks
}

type tokenKind int

const (
	tokText tokenKind = iota
	tokOpen
	tokClose
)

type token struct {
	kind tokenKind
	raw  string
	name string
}

type openTag struct {
	name string
	raw  string
}

// tokenize splits html into tags, entities and single runes. A '<' or '&'
// that does not start a well formed tag or entity is plain text.
func tokenize(html string) []token {
	var toks []token
	for i := 0; i < len(html); {
		switch html[i] {
		case '<':
			if j := strings.IndexByte(html[i:], '>'); j > 0 {
				raw := html[i : i+j+1]
				toks = append(toks, tagToken(raw))
				i += j + 1
				continue
			}
		case '&':
			if j := strings.IndexByte(html[i:], ';'); j > 0 && j <= 10 {
				toks = append(toks, token{kind: tokText, raw: html[i : i+j+1]})
				i += j + 1
				continue
			}
		}

		_, n := utf8.DecodeRuneInString(html[i:])
		toks = append(toks, token{kind: tokText, raw: html[i : i+n]})
		i += n
	}
	return toks
}

func tagToken(raw string) token {
	inner := strings.TrimSuffix(strings.TrimPrefix(raw, "<"), ">")
	if strings.HasSuffix(inner, "/") {
		return token{kind: tokText, raw: raw}
	}

	kind := tokOpen
	if strings.HasPrefix(inner, "/") {
		kind = tokClose
		inner = inner[1:]
	}

	name := inner
	if k := strings.IndexAny(inner, " \t\n"); k >= 0 {
		name = inner[:k]
	}
	return token{kind: kind, raw: raw, name: strings.ToLower(name)}
}

type chunker struct {
	max    int
	chunks []string

	buf  strings.Builder
	open []openTag
	// prefix is the length of the reopened tags at the start of buf.
	prefix int

	// nl is the offset in buf of the last newline, nlOpen the tags open there.
	nl     int
	nlOpen []openTag
}

func (c *chunker) add(tok token) {
	after := c.open
	switch tok.kind {
	case tokOpen:
		after = append(append([]openTag(nil), c.open...), openTag{name: tok.name, raw: tok.raw})
	case tokClose:
		after = popTag(c.open, tok.name)
	}

	for c.buf.Len() > c.prefix && c.buf.Len()+len(tok.raw)+closingLen(after) > c.max {
		c.cut()
	}

	if tok.raw == "\n" {
		c.nl = c.buf.Len()
		c.nlOpen = append([]openTag(nil), c.open...)
	}
	c.buf.WriteString(tok.raw)
	c.open = after
}

// cut emits one piece, at the last newline when there is a good one.
func (c *chunker) cut() {
	cur := c.buf.String()

	if c.nl > c.max/3 {
		head, tail := cur[:c.nl], strings.TrimLeft(cur[c.nl:], " \t\n")
		c.emit(head + closeTags(c.nlOpen))
		c.reset(reopenTags(c.nlOpen), tail)
		return
	}

	c.emit(cur + closeTags(c.open))
	c.reset(reopenTags(c.open), "")
}

func (c *chunker) reset(prefix, tail string) {
	c.buf.Reset()
	c.buf.WriteString(prefix)
	c.buf.WriteString(tail)
	c.prefix = len(prefix)
	c.nl = -1
	c.nlOpen = nil
}

func (c *chunker) emit(piece string) {
	if strings.TrimSpace(piece) != "" {
		c.chunks = append(c.chunks, piece)
	}
}

func (c *chunker) finish() {
	if c.buf.Len() > c.prefix {
		c.emit(c.buf.String() + closeTags(c.open))
	}
}

func popTag(open []openTag, name string) []openTag {
	for i := len(open) - 1; i >= 0; i-- {
		if open[i].name == name {
			return append(append([]openTag(nil), open[:i]...), open[i+1:]...)
		}
	}
	return open
}

func closingLen(open []openTag) int {
	n := 0
	for _, t := range open {
		n += len(t.name) + 3
	}
	return n
}

func closeTags(open []openTag) string {
	var sb strings.Builder
	for i := len(open) - 1; i >= 0; i-- {
		sb.WriteString("</" + open[i].name + ">")
	}
	return sb.String()
}

func reopenTags(open []openTag) string {
	var sb strings.Builder
	for _, t := range open {
		sb.WriteString(t.raw)
	}
	return sb.String()
}
