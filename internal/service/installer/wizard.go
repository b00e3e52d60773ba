package installer

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	itemStyle  = lipgloss.NewStyle().PaddingLeft(2)
	selStyle   = lipgloss.NewStyle().PaddingLeft(2).Foreground(lipgloss.Color("5"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
)

var ErrInterrupted = errors.New("setup interrupted")

// Step is one screen of the wizard. Update reports true once the step has
// written its answer.
type Step interface {
	Init() tea.Cmd
	Skip(a *Answers) bool
	Update(msg tea.Msg, a *Answers) (bool, tea.Cmd)
	View(a *Answers) string
}

type model struct {
	steps    []Step
	current  int
	answers  *Answers
	quitting bool
}

func newModel(answers *Answers, steps []Step) model {
	m := model{steps: steps, answers: answers, current: -1}
	m.current = m.nextStep()
	return m
}

// nextStep returns the index of the first step after current that applies,
// or len(steps) when the wizard is done.
func (m model) nextStep() int {
	i := m.current + 1
	for i < len(m.steps) && m.steps[i].Skip(m.answers) {
		i++
	}
	return i
}

func (m model) done() bool {
	return m.current >= len(m.steps)
}

func (m model) Init() tea.Cmd {
	if m.done() {
		return tea.Quit
	}
	return m.steps[m.current].Init()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}

	if m.done() {
		return m, tea.Quit
	}

	finished, cmd := m.steps[m.current].Update(msg, m.answers)
	if !finished {
		return m, cmd
	}

	m.current = m.nextStep()
	if m.done() {
		return m, tea.Quit
	}
	return m, m.steps[m.current].Init()
}

func (m model) View() string {
	if m.quitting {
		return "Setup cancelled.\n"
	}
	if m.done() {
		return "Configuration complete!\n"
	}
	return titleStyle.Render("Setting up memobot") + "\n\n" + m.steps[m.current].View(m.answers)
}

// RunWizard asks for the answers flags did not provide. Values already set in
// answers are kept as defaults for skipped prompts.
func RunWizard(answers *Answers) error {
	p := tea.NewProgram(newModel(answers, getSteps()), tea.WithAltScreen())
	m, err := p.Run()
	if err != nil {
		return fmt.Errorf("wizard: %w", err)
	}

	if m.(model).quitting {
		return ErrInterrupted
	}
	return nil
}
