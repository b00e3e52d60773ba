package intent

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/sandevgo/memobot/internal/core"
)

const (
	colorKnownReply   = "Your favorite color is %s!"
	colorUnknownReply = "I don't know your favorite color yet. Can you tell me what it is?"
	nameAckReply      = "Got it, your name is %s!"
	colorAckReply     = "Got it, your favorite color is %s!"
	hobbyAckReply     = "Nice! You like %s."
)

// DefaultRules is the built-in dispatch table.
//
// The color query is checked before the color declaration, so a message such
// as "my favorite color is blue" is answered as a query and never stored.
func DefaultRules() []Rule {
	return []Rule{
		Query(ColorQuery, core.AttrFavoriteColor, colorKnownReply, colorUnknownReply, "favorite color", "colour"),
		Declaration(NameDeclaration, "my name is", core.AttrName, nameAckReply),
		Declaration(ColorDeclaration, "my favorite color is", core.AttrFavoriteColor, colorAckReply),
		Declaration(HobbyDeclaration, "i like", core.AttrHobby, hobbyAckReply),
	}
}

// Query answers from a stored attribute without writing anything.
func Query(d Disposition, attribute, knownTmpl, unknownReply string, phrases ...string) Rule {
	return Rule{
		Disposition: d,
		Match:       ContainsAny(phrases...),
		Handle: func(ctx context.Context, store core.AttributeRepository, userID, _ string) (string, error) {
			value, found, err := store.LookupAttribute(ctx, userID, attribute)
			if err != nil {
				return "", err
			}
			if !found {
				return unknownReply, nil
			}
			return fmt.Sprintf(knownTmpl, value), nil
		},
	}
}

// Declaration stores whatever follows phrase as attribute and acknowledges it.
func Declaration(d Disposition, phrase, attribute, ackTmpl string) Rule {
	return Rule{
		Disposition: d,
		Match:       ContainsAny(phrase),
		Handle: func(ctx context.Context, store core.AttributeRepository, userID, message string) (string, error) {
			value := ExtractAfter(message, phrase)
			if err := store.RecordAttribute(ctx, userID, attribute, value); err != nil {
				return "", err
			}
			return fmt.Sprintf(ackTmpl, value), nil
		},
	}
}

// ContainsAny matches messages containing any of phrases, ignoring case.
func ContainsAny(phrases ...string) func(string) bool {
	return func(message string) bool {
		for _, p := range phrases {
			if start, _ := indexFold(message, p); start >= 0 {
				return true
			}
		}
		return false
	}
}

// ExtractAfter returns the trimmed text following the first case-insensitive
// occurrence of phrase, or "" when phrase is absent or ends the message.
func ExtractAfter(message, phrase string) string {
	start, end := indexFold(message, phrase)
	if start < 0 {
		return ""
	}
	return strings.TrimSpace(message[end:])
}

// indexFold finds substr in s after lowercasing both and returns the byte
// range of the match in s itself. Lowercasing can change the byte length of
// a rune (the Kelvin sign becomes "k"), so offsets are mapped back per rune.
func indexFold(s, substr string) (start, end int) {
	if substr == "" {
		return 0, 0
	}
	lower, origin := lowerWithOffsets(s)
	needle, _ := lowerWithOffsets(substr)

	i := strings.Index(lower, needle)
	if i < 0 {
		return -1, -1
	}

	end = len(s)
	if j := i + len(needle); j < len(lower) {
		end = origin[j]
	}
	return origin[i], end
}

// lowerWithOffsets lowercases s rune by rune. origin[k] is the offset in s of
// the rune that produced byte k of the result.
func lowerWithOffsets(s string) (string, []int) {
	var sb strings.Builder
	origin := make([]int, 0, len(s))
	for i, r := range s {
		n, _ := sb.WriteRune(unicode.ToLower(r))
		for range n {
			origin = append(origin, i)
		}
	}
	return sb.String(), origin
}
