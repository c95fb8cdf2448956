package prompt

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

const (
	defaultWidth  = 80
	minLabelWidth = 10
)

// listState is the cursor and viewport logic shared by the list prompts.
type listState struct {
	options []string
	cursor  int
	width   int
	keys    KeyMap
}

func (l *listState) move(msg tea.KeyMsg) bool {
	switch {
	case key.Matches(msg, l.keys.Up):
		if l.cursor > 0 {
			l.cursor--
		} else {
			l.cursor = len(l.options) - 1
		}
	case key.Matches(msg, l.keys.Down):
		if l.cursor < len(l.options)-1 {
			l.cursor++
		} else {
			l.cursor = 0
		}
	case key.Matches(msg, l.keys.Top):
		l.cursor = 0
	case key.Matches(msg, l.keys.Bottom):
		l.cursor = len(l.options) - 1
	default:
		return false
	}
	return true
}

func (l *listState) row(i int, marker string) string {
	prefix := "  "
	if i == l.cursor {
		prefix = cursorStyle.Render("> ")
	}
	avail := l.width - 2 - lipgloss.Width(marker)
	if avail < minLabelWidth {
		avail = minLabelWidth
	}
	label := runewidth.Truncate(l.options[i], avail, "…")
	if i == l.cursor {
		return prefix + marker + cursorStyle.Render(label)
	}
	return prefix + marker + itemStyle.Render(label)
}

// selectModel picks one option.
type selectModel struct {
	title string
	listState
	chosen  int
	aborted bool
}

func newSelectModel(title string, options []string, initial string) *selectModel {
	m := &selectModel{
		title:     title,
		listState: listState{options: options, width: defaultWidth, keys: DefaultKeyMap()},
		chosen:    -1,
	}
	for i, o := range options {
		if o == initial {
			m.cursor = i
			break
		}
	}
	return m
}

func (m *selectModel) Init() tea.Cmd { return nil }

func (m *selectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Cancel):
			m.aborted = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Enter):
			m.chosen = m.cursor
			return m, tea.Quit
		default:
			m.move(msg)
		}
	}
	return m, nil
}

func (m *selectModel) View() string {
	if m.chosen >= 0 || m.aborted {
		return ""
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n\n")
	for i := range m.options {
		b.WriteString(m.row(i, ""))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(helpLine(m.keys.Up, m.keys.Down, m.keys.Enter, m.keys.Cancel))
	b.WriteString("\n")
	return b.String()
}

// multiSelectModel picks any number of options.
type multiSelectModel struct {
	title string
	listState
	selected  map[int]bool
	confirmed bool
	aborted   bool
}

func newMultiSelectModel(title string, options []string) *multiSelectModel {
	return &multiSelectModel{
		title:     title,
		listState: listState{options: options, width: defaultWidth, keys: DefaultKeyMap()},
		selected:  map[int]bool{},
	}
}

func (m *multiSelectModel) Init() tea.Cmd { return nil }

func (m *multiSelectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Cancel):
			m.aborted = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Enter):
			m.confirmed = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Toggle):
			m.selected[m.cursor] = !m.selected[m.cursor]
		case key.Matches(msg, m.keys.All):
			all := len(m.Selected()) < len(m.options)
			for i := range m.options {
				m.selected[i] = all
			}
		default:
			m.move(msg)
		}
	}
	return m, nil
}

// Selected returns the chosen options in display order.
func (m *multiSelectModel) Selected() []string {
	var out []string
	for i, o := range m.options {
		if m.selected[i] {
			out = append(out, o)
		}
	}
	return out
}

func (m *multiSelectModel) View() string {
	if m.confirmed || m.aborted {
		return ""
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n\n")
	for i := range m.options {
		marker := "[ ] "
		if m.selected[i] {
			marker = selectedStyle.Render("[x] ")
		}
		b.WriteString(m.row(i, marker))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(helpLine(m.keys.Up, m.keys.Down, m.keys.Toggle, m.keys.All, m.keys.Enter, m.keys.Cancel))
	b.WriteString("\n")
	return b.String()
}
