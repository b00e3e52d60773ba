// Package intent decides whether a chat message declares a user fact, asks
// about one, or has to be delegated to the generation service.
package intent

import (
	"context"
	"fmt"

	"github.com/sandevgo/memobot/internal/core"
	"github.com/sandevgo/memobot/pkg/log"
)

type Disposition string

const (
	ColorQuery       Disposition = "color_query"
	NameDeclaration  Disposition = "name_declaration"
	ColorDeclaration Disposition = "color_declaration"
	HobbyDeclaration Disposition = "hobby_declaration"
	Delegate         Disposition = "delegate"
)

// HandleFunc produces the templated reply for a matched rule.
type HandleFunc func(ctx context.Context, store core.AttributeRepository, userID, message string) (string, error)

// Rule pairs a trigger predicate with the handler that answers it.
type Rule struct {
	Disposition Disposition
	Match       func(message string) bool
	Handle      HandleFunc
}

type Result struct {
	Disposition Disposition
	Reply       string
}

// Handled reports whether the reply came from the fact store.
func (r Result) Handled() bool {
	return r.Disposition != Delegate
}

// Matcher evaluates rules in order; the first match wins.
type Matcher struct {
	store core.AttributeRepository
	rules []Rule
}

// New builds a matcher over rules, or over DefaultRules when none are given.
func New(store core.AttributeRepository, rules ...Rule) *Matcher {
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	return &Matcher{
		store: store,
		rules: rules,
	}
}

func (m *Matcher) Classify(message string) Disposition {
	if rule, ok := m.match(message); ok {
		return rule.Disposition
	}
	return Delegate
}

// Resolve classifies message and runs the matching handler. A Delegate result
// carries no reply and has touched nothing.
func (m *Matcher) Resolve(ctx context.Context, userID, message string) (Result, error) {
	rule, ok := m.match(message)
	if !ok {
		return Result{Disposition: Delegate}, nil
	}

	log.FromCtx(ctx).Debug().Str("disposition", string(rule.Disposition)).Msg("intent matched")

	reply, err := rule.Handle(ctx, m.store, userID, message)
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", rule.Disposition, err)
	}
	return Result{Disposition: rule.Disposition, Reply: reply}, nil
}

func (m *Matcher) match(message string) (Rule, bool) {
	for _, rule := range m.rules {
		if rule.Match(message) {
			return rule, true
		}
	}
	return Rule{}, false
}
