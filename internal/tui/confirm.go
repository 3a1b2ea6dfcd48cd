package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"tailfront/internal/tui/styles"
)

type confirmKeyMap struct {
	Yes    key.Binding
	No     key.Binding
	Left   key.Binding
	Right  key.Binding
	Toggle key.Binding
	Submit key.Binding
	Abort  key.Binding
}

var confirmKeys = confirmKeyMap{
	Yes:    key.NewBinding(key.WithKeys("y", "Y"), key.WithHelp("y", "yes")),
	No:     key.NewBinding(key.WithKeys("n", "N", "esc", "q"), key.WithHelp("n", "no")),
	Left:   key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←", "yes")),
	Right:  key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→", "no")),
	Toggle: key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "toggle")),
	Submit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm")),
	Abort:  key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "abort")),
}

// ConfirmModel is a yes/no dialog. The highlighted answer starts on "No".
type ConfirmModel struct {
	message string
	yes     bool // highlighted answer
	done    bool
	answer  bool
	aborted bool
}

// NewConfirmModel creates a confirm dialog for message
func NewConfirmModel(message string) *ConfirmModel {
	return &ConfirmModel{message: message}
}

// Init initializes the model
func (m *ConfirmModel) Init() tea.Cmd {
	return nil
}

// Update handles key presses
func (m *ConfirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, confirmKeys.Abort):
			m.aborted = true
			m.done = true
			return m, tea.Quit
		case key.Matches(msg, confirmKeys.Yes):
			return m, m.finish(true)
		case key.Matches(msg, confirmKeys.No):
			return m, m.finish(false)
		case key.Matches(msg, confirmKeys.Left):
			m.yes = true
		case key.Matches(msg, confirmKeys.Right):
			m.yes = false
		case key.Matches(msg, confirmKeys.Toggle):
			m.yes = !m.yes
		case key.Matches(msg, confirmKeys.Submit):
			return m, m.finish(m.yes)
		}
	}

	return m, nil
}

func (m *ConfirmModel) finish(answer bool) tea.Cmd {
	m.answer = answer
	m.yes = answer
	m.done = true
	return tea.Quit
}

// Done reports whether the dialog has been answered or aborted
func (m *ConfirmModel) Done() bool {
	return m.done
}

// Answer is the chosen answer; false until Done
func (m *ConfirmModel) Answer() bool {
	return m.done && !m.aborted && m.answer
}

// Aborted reports whether the user pressed ctrl+c
func (m *ConfirmModel) Aborted() bool {
	return m.aborted
}

// View renders the dialog
func (m *ConfirmModel) View() string {
	if m.done {
		answer := "No"
		if m.Answer() {
			answer = "Yes"
		}
		if m.aborted {
			answer = "Aborted"
		}
		return m.message + " " + styles.Muted.Render(answer) + "\n"
	}

	var b strings.Builder
	b.WriteString(styles.InfoValue.Render(m.message))
	b.WriteString("\n\n")

	yesBtn := styles.NormalItem.Render(" Yes ")
	noBtn := styles.SelectedItem.Render(" No ")
	if m.yes {
		yesBtn = styles.SelectedItem.Render(" Yes ")
		noBtn = styles.NormalItem.Render(" No ")
	}
	b.WriteString(yesBtn + "  " + noBtn)
	b.WriteString("\n")

	b.WriteString(styles.FormatHelp(
		"y", "yes",
		"n", "no",
		"←/→", "select",
		"enter", "confirm",
	))
	b.WriteString("\n")

	return b.String()
}
