package prompt

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// confirmModel asks a yes/no question. Enter takes the default answer.
type confirmModel struct {
	question   string
	defaultYes bool
	keys       KeyMap
	answer     bool
	done       bool
	aborted    bool
}

func newConfirmModel(question string, defaultYes bool) *confirmModel {
	return &confirmModel{question: question, defaultYes: defaultYes, keys: DefaultKeyMap()}
}

func (m *confirmModel) Init() tea.Cmd { return nil }

func (m *confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(keyMsg, m.keys.Yes):
		m.answer, m.done = true, true
	case key.Matches(keyMsg, m.keys.No):
		m.answer, m.done = false, true
	case key.Matches(keyMsg, m.keys.Enter):
		m.answer, m.done = m.defaultYes, true
	case key.Matches(keyMsg, m.keys.Cancel):
		m.aborted = true
	default:
		return m, nil
	}
	return m, tea.Quit
}

func (m *confirmModel) View() string {
	hint := "[y/N]"
	if m.defaultYes {
		hint = "[Y/n]"
	}
	if m.done {
		answer := "no"
		if m.answer {
			answer = "yes"
		}
		return titleStyle.Render(m.question) + " " + answer + "\n"
	}
	if m.aborted {
		return ""
	}
	return titleStyle.Render(m.question) + " " + helpStyle.Render(hint) + " "
}
