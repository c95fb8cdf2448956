package completion

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"khelp/pkg/logging"

	"github.com/spf13/cobra"
)

const subsystem = "Completion"

// Shell is a supported completion target.
type Shell string

const (
	Bash       Shell = "bash"
	Zsh        Shell = "zsh"
	Fish       Shell = "fish"
	PowerShell Shell = "powershell"
)

// Shells lists the supported shells.
func Shells() []Shell {
	return []Shell{Bash, Zsh, Fish, PowerShell}
}

// ErrUnsupportedShell is returned for shells khelp cannot generate for.
var ErrUnsupportedShell = errors.New("unsupported shell")

// For mocking in tests
var (
	getenv        = os.Getenv
	goos          = runtime.GOOS
	osUserHomeDir = os.UserHomeDir
)

// ParseShell maps a shell name (or a path to a shell binary) to a Shell.
func ParseShell(name string) (Shell, error) {
	base := strings.ToLower(filepath.Base(strings.TrimSpace(name)))
	base = strings.TrimSuffix(base, ".exe")
	switch base {
	case "bash":
		return Bash, nil
	case "zsh":
		return Zsh, nil
	case "fish":
		return Fish, nil
	case "powershell", "pwsh":
		return PowerShell, nil
	}
	return "", fmt.Errorf("%w: %q (supported: bash, zsh, fish, powershell)", ErrUnsupportedShell, name)
}

// DetectShell infers the user's shell from $SHELL. On Windows without $SHELL
// it assumes PowerShell.
func DetectShell() (Shell, error) {
	sh := getenv("SHELL")
	if sh == "" {
		if goos == "windows" {
			return PowerShell, nil
		}
		return "", errors.New("could not detect shell: $SHELL is not set")
	}
	shell, err := ParseShell(sh)
	if err != nil {
		return "", fmt.Errorf("could not detect shell: %w", err)
	}
	logging.Debug(subsystem, "Detected shell %s from $SHELL=%s", shell, sh)
	return shell, nil
}

// Generate writes the completion script for shell.
func Generate(root *cobra.Command, shell Shell, w io.Writer) error {
	switch shell {
	case Bash:
		return root.GenBashCompletionV2(w, true)
	case Zsh:
		return root.GenZshCompletion(w)
	case Fish:
		return root.GenFishCompletion(w, true)
	case PowerShell:
		return root.GenPowerShellCompletionWithDesc(w)
	}
	return fmt.Errorf("%w: %q", ErrUnsupportedShell, shell)
}

// Installation describes what Install wrote.
type Installation struct {
	Shell  Shell
	Script string
	// RCFile is the startup file that was updated, empty when none was.
	RCFile string
	// Activate is the command that enables completions in the current session.
	Activate string
}

// Install writes the completion script to the shell's conventional location
// and, for bash and zsh, hooks it into an existing rc file. Re-running it
// rewrites the script but never duplicates rc lines.
func Install(root *cobra.Command, shell Shell) (*Installation, error) {
	home, err := osUserHomeDir()
	if err != nil || home == "" {
		return nil, errors.New("could not find home directory")
	}

	var buf bytes.Buffer
	if err := Generate(root, shell, &buf); err != nil {
		return nil, err
	}
	name := root.Name()

	inst := &Installation{Shell: shell}
	switch shell {
	case Bash:
		inst.Script = filepath.Join(home, ".bash_completion.d", name)
		sourceLine := "source " + inst.Script
		rc := filepath.Join(home, ".bashrc")
		updated, err := appendIfMissing(rc, sourceLine, "\n# Source "+name+" completions\n"+sourceLine+"\n")
		if err != nil {
			return nil, err
		}
		if updated {
			inst.RCFile = rc
		}
		inst.Activate = sourceLine
	case Zsh:
		inst.Script = filepath.Join(home, ".zfunc", "_"+name)
		rc := filepath.Join(home, ".zshrc")
		updated, err := appendIfMissing(rc, "fpath=(~/.zfunc",
			"\n# Add "+name+" completions to fpath\nfpath=(~/.zfunc $fpath)\nautoload -Uz compinit && compinit\n")
		if err != nil {
			return nil, err
		}
		if updated {
			inst.RCFile = rc
		}
		inst.Activate = "source ~/.zshrc"
	case Fish:
		inst.Script = filepath.Join(home, ".config", "fish", "completions", name+".fish")
		inst.Activate = "source " + inst.Script
	case PowerShell:
		return nil, fmt.Errorf("automatic installation is not supported for PowerShell; run '%s completions powershell' and add the output to your $PROFILE", name)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedShell, shell)
	}

	if err := os.MkdirAll(filepath.Dir(inst.Script), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create completions directory: %w", err)
	}
	if err := os.WriteFile(inst.Script, buf.Bytes(), 0o755); err != nil {
		return nil, fmt.Errorf("failed to write completion script: %w", err)
	}
	logging.Info(subsystem, "Installed %s completions to %s", shell, inst.Script)
	return inst, nil
}

// appendIfMissing appends block to an existing rc file unless marker is
// already present. A missing rc file is left alone.
func appendIfMissing(rc, marker, block string) (bool, error) {
	content, err := os.ReadFile(rc)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logging.Debug(subsystem, "%s does not exist, not modifying it", rc)
			return false, nil
		}
		return false, fmt.Errorf("failed to read %s: %w", rc, err)
	}
	if strings.Contains(string(content), marker) {
		return false, nil
	}
	f, err := os.OpenFile(rc, os.O_APPEND|os.O_WRONLY, 0)
	if err != nil {
		return false, fmt.Errorf("failed to open %s: %w", rc, err)
	}
	defer f.Close()
	if _, err := f.WriteString(block); err != nil {
		return false, fmt.Errorf("failed to update %s: %w", rc, err)
	}
	logging.Debug(subsystem, "Updated %s", rc)
	return true, nil
}
