package editor

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"khelp/pkg/logging"
)

const subsystem = "Editor"

// For mocking in tests
var (
	getenv      = os.Getenv
	goos        = runtime.GOOS
	execCommand = exec.Command
)

// Editor is a resolved editor command.
type Editor struct {
	Name string
	Args []string

	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// Resolve picks the editor: the configured command first, then $EDITOR,
// then $VISUAL, then notepad on Windows or vi elsewhere. The command string
// may carry arguments ("code --wait").
func Resolve(configured string) *Editor {
	command := configured
	for _, env := range []string{"EDITOR", "VISUAL"} {
		if strings.TrimSpace(command) != "" {
			break
		}
		command = getenv(env)
	}
	fields := strings.Fields(command)
	if len(fields) == 0 {
		fields = []string{"vi"}
		if goos == "windows" {
			fields = []string{"notepad"}
		}
	}
	return &Editor{
		Name: fields[0],
		Args: fields[1:],
		In:   os.Stdin,
		Out:  os.Stdout,
		Err:  os.Stderr,
	}
}

// String returns the full command line.
func (e *Editor) String() string {
	return strings.Join(append([]string{e.Name}, e.Args...), " ")
}

// detaches reports whether the editor returns before the file is closed.
// VS Code does unless it is told to wait.
func (e *Editor) detaches() bool {
	base := strings.TrimSuffix(filepath.Base(e.Name), filepath.Ext(e.Name))
	if base != "code" && base != "code-insiders" {
		return false
	}
	for _, a := range e.Args {
		if a == "--wait" || a == "-w" {
			return false
		}
	}
	return true
}

// Launch opens path in the editor and returns once editing is finished.
func (e *Editor) Launch(path string) error {
	args := append(append([]string{}, e.Args...), path)
	cmd := execCommand(e.Name, args...)
	logging.Debug(subsystem, "Launching editor: %s %s", e.Name, strings.Join(args, " "))

	if e.detaches() {
		if err := cmd.Start(); err != nil {
			return fmt.Errorf("failed to launch editor '%s': %w", e.Name, err)
		}
		fmt.Fprintln(e.Err, "Press Enter when you've finished editing...")
		if _, err := bufio.NewReader(e.In).ReadString('\n'); err != nil && err != io.EOF {
			return fmt.Errorf("failed to read confirmation: %w", err)
		}
		// The launcher process exits on its own; reap it if it already has.
		go func() { _ = cmd.Wait() }()
		return nil
	}

	cmd.Stdin = e.In
	cmd.Stdout = e.Out
	cmd.Stderr = e.Err
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("editor '%s' exited with an error: %w", e.String(), err)
	}
	return nil
}

// EditBytes writes data to a temporary YAML file, opens it in the editor and
// returns the saved contents.
func (e *Editor) EditBytes(data []byte) ([]byte, error) {
	f, err := os.CreateTemp("", "khelp-edit-*.yaml")
	if err != nil {
		return nil, fmt.Errorf("failed to create temporary file: %w", err)
	}
	path := f.Name()
	defer os.Remove(path)

	if _, err := f.Write(data); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write temporary file: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("failed to write temporary file: %w", err)
	}

	if err := e.Launch(path); err != nil {
		return nil, err
	}

	edited, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read edited file: %w", err)
	}
	return edited, nil
}
