package installer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

var geminiModels = []string{"gemini-2.0-flash", "gemini-2.0-flash-lite", "gemini-1.5-pro"}

func getSteps() []Step {
	return []Step{
		newTextStep("Gemini API key", "AIza...", true, nil, func(a *Answers, v string) error {
			if v == "" {
				return fmt.Errorf("the API key cannot be empty")
			}
			a.GeminiAPIKey = v
			return nil
		}),
		newChoiceStep("Select the Gemini model:", geminiModels, nil, func(a *Answers, v string) {
			a.GeminiModel = v
		}),
		newChoiceStep("Enable the Telegram bot?", []string{"No", "Yes"}, nil, func(a *Answers, v string) {
			a.EnableTelegram = v == "Yes"
		}),
		newTextStep("Telegram bot token", "123456789:ABCDEF...", true, telegramOff, func(a *Answers, v string) error {
			if v == "" {
				return fmt.Errorf("the bot token cannot be empty")
			}
			a.TelegramToken = v
			return nil
		}),
		newTextStep("Telegram user id (owner)", "123456789", false, telegramOff, func(a *Answers, v string) error {
			id, err := strconv.ParseInt(v, 10, 64)
			if err != nil || id == 0 {
				return fmt.Errorf("%q is not a telegram user id", v)
			}
			a.TelegramOwner = id
			return nil
		}),
	}
}

func telegramOff(a *Answers) bool {
	return !a.EnableTelegram
}

// textStep asks for a single line of input.
type textStep struct {
	title string
	input textinput.Model
	skip  func(*Answers) bool
	apply func(*Answers, string) error
	err   error
}

func newTextStep(title, placeholder string, secret bool, skip func(*Answers) bool, apply func(*Answers, string) error) *textStep {
	ti := textinput.New()
	ti.Focus()
	ti.CharLimit = 255
	ti.Width = 40
	ti.Placeholder = placeholder
	if secret {
		ti.EchoMode = textinput.EchoPassword
		ti.EchoCharacter = '•'
	}
	return &textStep{title: title, input: ti, skip: skip, apply: apply}
}

func (s *textStep) Init() tea.Cmd {
	return textinput.Blink
}

func (s *textStep) Skip(a *Answers) bool {
	return s.skip != nil && s.skip(a)
}

func (s *textStep) Update(msg tea.Msg, a *Answers) (bool, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" {
		s.err = s.apply(a, strings.TrimSpace(s.input.Value()))
		return s.err == nil, nil
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return false, cmd
}

func (s *textStep) View(*Answers) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Enter your %s:\n\n%s\n\n", s.title, s.input.View())
	if s.err != nil {
		b.WriteString(errorStyle.Render(s.err.Error()) + "\n\n")
	}
	b.WriteString("(press enter to confirm)\n")
	return b.String()
}

// choiceStep picks one of a fixed set of options.
type choiceStep struct {
	title   string
	choices []string
	cursor  int
	skip    func(*Answers) bool
	apply   func(*Answers, string)
}

func newChoiceStep(title string, choices []string, skip func(*Answers) bool, apply func(*Answers, string)) *choiceStep {
	return &choiceStep{title: title, choices: choices, skip: skip, apply: apply}
}

func (s *choiceStep) Init() tea.Cmd {
	return nil
}

func (s *choiceStep) Skip(a *Answers) bool {
	return s.skip != nil && s.skip(a)
}

func (s *choiceStep) Update(msg tea.Msg, a *Answers) (bool, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return false, nil
	}

	switch key.String() {
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j":
		if s.cursor < len(s.choices)-1 {
			s.cursor++
		}
	case "enter":
		s.apply(a, s.choices[s.cursor])
		return true, nil
	}
	return false, nil
}

func (s *choiceStep) View(*Answers) string {
	var b strings.Builder
	b.WriteString(s.title + "\n\n")
	for i, choice := range s.choices {
		if s.cursor == i {
			b.WriteString(selStyle.Render("❯ "+choice) + "\n")
		} else {
			b.WriteString(itemStyle.Render("  "+choice) + "\n")
		}
	}
	b.WriteString("\n(press ctrl+c to quit)\n")
	return b.String()
}
