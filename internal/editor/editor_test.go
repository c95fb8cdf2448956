package editor

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mockEnv(t *testing.T, env map[string]string, platform string) {
	t.Helper()
	originalGetenv, originalGoos := getenv, goos
	t.Cleanup(func() { getenv, goos = originalGetenv, originalGoos })
	getenv = func(k string) string { return env[k] }
	goos = platform
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name       string
		configured string
		env        map[string]string
		goos       string
		wantName   string
		wantArgs   []string
	}{
		{"configured wins", "nano -w", map[string]string{"EDITOR": "vim"}, "linux", "nano", []string{"-w"}},
		{"EDITOR", "", map[string]string{"EDITOR": "vim", "VISUAL": "emacs"}, "linux", "vim", []string{}},
		{"VISUAL", "", map[string]string{"VISUAL": "code --wait"}, "linux", "code", []string{"--wait"}},
		{"blank EDITOR falls through", "  ", map[string]string{"EDITOR": " ", "VISUAL": "emacs"}, "linux", "emacs", []string{}},
		{"fallback vi", "", nil, "darwin", "vi", []string{}},
		{"fallback notepad", "", nil, "windows", "notepad", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockEnv(t, tt.env, tt.goos)
			e := Resolve(tt.configured)
			assert.Equal(t, tt.wantName, e.Name)
			assert.Equal(t, tt.wantArgs, e.Args)
		})
	}
}

func TestDetaches(t *testing.T) {
	tests := []struct {
		command string
		want    bool
	}{
		{"code", true},
		{"/usr/local/bin/code", true},
		{"code.exe", true},
		{"code-insiders", true},
		{"code --wait", false},
		{"code -w", false},
		{"vim", false},
		{"codex", false},
	}
	for _, tt := range tests {
		t.Run(tt.command, func(t *testing.T) {
			fields := strings.Fields(tt.command)
			e := &Editor{Name: fields[0], Args: fields[1:]}
			assert.Equal(t, tt.want, e.detaches())
		})
	}
}

// fakeEditor makes execCommand run this test binary as the editor; the
// helper process appends its arguments to the edited file.
func fakeEditor(t *testing.T, exitCode int) *[]string {
	t.Helper()
	var calls []string
	original := execCommand
	t.Cleanup(func() { execCommand = original })
	execCommand = func(name string, args ...string) *exec.Cmd {
		calls = append(calls, strings.Join(append([]string{name}, args...), " "))
		cs := append([]string{"-test.run=TestHelperProcess", "--"}, args...)
		cmd := exec.Command(os.Args[0], cs...)
		cmd.Env = append(os.Environ(), "GO_WANT_HELPER_PROCESS=1", fmt.Sprintf("HELPER_EXIT=%d", exitCode))
		return cmd
	}
	return &calls
}

func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}
	args := os.Args
	for i, a := range args {
		if a == "--" {
			args = args[i+1:]
			break
		}
	}
	path := args[len(args)-1]
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0)
	if err == nil {
		fmt.Fprintf(f, "edited: %s\n", strings.Join(args[:len(args)-1], ","))
		f.Close()
	}
	if os.Getenv("HELPER_EXIT") != "0" {
		os.Exit(3)
	}
	os.Exit(0)
}

func TestEditBytes(t *testing.T) {
	calls := fakeEditor(t, 0)
	e := &Editor{Name: "myeditor", Args: []string{"--flag"}, In: strings.NewReader(""), Out: &bytes.Buffer{}, Err: &bytes.Buffer{}}

	out, err := e.EditBytes([]byte("name: alpha\n"))
	require.NoError(t, err)
	assert.Equal(t, "name: alpha\nedited: --flag\n", string(out))
	require.Len(t, *calls, 1)
	assert.True(t, strings.HasPrefix((*calls)[0], "myeditor --flag "))
	assert.True(t, strings.HasSuffix((*calls)[0], ".yaml"))
}

func TestEditBytes_EditorFails(t *testing.T) {
	fakeEditor(t, 1)
	e := &Editor{Name: "myeditor", In: strings.NewReader(""), Out: &bytes.Buffer{}, Err: &bytes.Buffer{}}

	_, err := e.EditBytes([]byte("x: y\n"))
	assert.ErrorContains(t, err, "editor 'myeditor' exited with an error")
}

func TestLaunch_DetachedWaitsForEnter(t *testing.T) {
	fakeEditor(t, 0)
	stderr := &bytes.Buffer{}
	e := &Editor{Name: "code", In: strings.NewReader("\n"), Out: &bytes.Buffer{}, Err: stderr}

	path := t.TempDir() + "/buffer.yaml"
	require.NoError(t, os.WriteFile(path, []byte("a: b\n"), 0o600))

	require.NoError(t, e.Launch(path))
	assert.Contains(t, stderr.String(), "Press Enter when you've finished editing")
}
