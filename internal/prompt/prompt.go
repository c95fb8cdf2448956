package prompt

import (
	"errors"
	"fmt"
	"io"
	"os"

	"khelp/pkg/logging"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"
)

const subsystem = "Prompt"

var (
	// ErrAborted is returned when the user cancels a prompt.
	ErrAborted = errors.New("operation cancelled")
	// ErrNotInteractive is returned when a prompt is needed but stdin is not
	// a terminal.
	ErrNotInteractive = errors.New("interactive input required but stdin is not a terminal")
)

// Prompter asks the user questions.
type Prompter interface {
	// Interactive reports whether prompts can be shown at all.
	Interactive() bool
	// Select returns one of options. The cursor starts on initial when present.
	Select(title string, options []string, initial string) (string, error)
	// MultiSelect returns the options the user ticked, possibly none.
	MultiSelect(title string, options []string) ([]string, error)
	// Confirm asks a yes/no question.
	Confirm(question string, defaultYes bool) (bool, error)
}

// For mocking in tests
var isTerminal = term.IsTerminal

// Terminal runs prompts as small bubbletea programs. They draw on the error
// stream so that stdout stays clean for piping.
type Terminal struct {
	in  *os.File
	out io.Writer
}

// NewTerminal returns a Prompter reading stdin and drawing on stderr.
func NewTerminal() *Terminal {
	return &Terminal{in: os.Stdin, out: os.Stderr}
}

// Interactive reports whether stdin is a terminal.
func (t *Terminal) Interactive() bool {
	return isTerminal(int(t.in.Fd()))
}

func (t *Terminal) run(m tea.Model) (tea.Model, error) {
	if !t.Interactive() {
		return nil, ErrNotInteractive
	}
	p := tea.NewProgram(m, tea.WithInput(t.in), tea.WithOutput(t.out))
	final, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("prompt failed: %w", err)
	}
	return final, nil
}

// Select implements Prompter.
func (t *Terminal) Select(title string, options []string, initial string) (string, error) {
	if len(options) == 0 {
		return "", errors.New("nothing to choose from")
	}
	final, err := t.run(newSelectModel(title, options, initial))
	if err != nil {
		return "", err
	}
	m := final.(*selectModel)
	if m.aborted || m.chosen < 0 {
		logging.Debug(subsystem, "Selection cancelled: %s", title)
		return "", ErrAborted
	}
	return m.options[m.chosen], nil
}

// MultiSelect implements Prompter.
func (t *Terminal) MultiSelect(title string, options []string) ([]string, error) {
	if len(options) == 0 {
		return nil, errors.New("nothing to choose from")
	}
	final, err := t.run(newMultiSelectModel(title, options))
	if err != nil {
		return nil, err
	}
	m := final.(*multiSelectModel)
	if m.aborted || !m.confirmed {
		logging.Debug(subsystem, "Selection cancelled: %s", title)
		return nil, ErrAborted
	}
	return m.Selected(), nil
}

// Confirm implements Prompter.
func (t *Terminal) Confirm(question string, defaultYes bool) (bool, error) {
	final, err := t.run(newConfirmModel(question, defaultYes))
	if err != nil {
		return false, err
	}
	m := final.(*confirmModel)
	if m.aborted {
		return false, ErrAborted
	}
	return m.answer, nil
}
