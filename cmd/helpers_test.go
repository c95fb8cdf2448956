package cmd

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"khelp/internal/config"
	"khelp/internal/kubeconfig"
	"khelp/internal/prompt"

	"github.com/stretchr/testify/require"
)

// fakePrompter answers prompts from queues and records what was asked.
type fakePrompter struct {
	interactive bool
	selects     []string
	multi       [][]string
	confirms    []bool
	asked       []string
}

func (f *fakePrompter) Interactive() bool { return f.interactive }

func (f *fakePrompter) Select(title string, options []string, initial string) (string, error) {
	f.asked = append(f.asked, title)
	if !f.interactive {
		return "", prompt.ErrNotInteractive
	}
	if len(f.selects) == 0 {
		return "", prompt.ErrAborted
	}
	answer := f.selects[0]
	f.selects = f.selects[1:]
	return answer, nil
}

func (f *fakePrompter) MultiSelect(title string, options []string) ([]string, error) {
	f.asked = append(f.asked, title)
	if !f.interactive {
		return nil, prompt.ErrNotInteractive
	}
	if len(f.multi) == 0 {
		return nil, prompt.ErrAborted
	}
	answer := f.multi[0]
	f.multi = f.multi[1:]
	return answer, nil
}

func (f *fakePrompter) Confirm(question string, defaultYes bool) (bool, error) {
	f.asked = append(f.asked, question)
	if !f.interactive {
		return false, prompt.ErrNotInteractive
	}
	if len(f.confirms) == 0 {
		return defaultYes, nil
	}
	answer := f.confirms[0]
	f.confirms = f.confirms[1:]
	return answer, nil
}

// testEnv points the commands at a kubeconfig in a temp dir and stubs the
// settings loader and prompter.
type testEnv struct {
	t        *testing.T
	dir      string
	path     string
	prompter *fakePrompter
}

func newTestEnv(t *testing.T, cfg *kubeconfig.Config) *testEnv {
	t.Helper()
	dir := t.TempDir()
	env := &testEnv{
		t:        t,
		dir:      dir,
		path:     filepath.Join(dir, "config"),
		prompter: &fakePrompter{interactive: true},
	}
	if cfg != nil {
		data, err := kubeconfig.Marshal(cfg)
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(env.path, data, 0o600))
	}

	origLoad, origPrompter, origLogOutput := loadSettings, newPrompter, logOutput
	loadSettings = func() (config.Settings, error) { return config.Defaults(), nil }
	newPrompter = func() prompt.Prompter { return env.prompter }
	logOutput = io.Discard
	t.Cleanup(func() {
		loadSettings, newPrompter, logOutput = origLoad, origPrompter, origLogOutput
		sess = nil
	})
	return env
}

// run executes a fresh command tree; flag variables are reset to their
// defaults when the tree is built.
func (e *testEnv) run(args ...string) (string, error) {
	e.t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--kubeconfig", e.path, "--no-color"}, args...))
	err := root.Execute()
	return out.String(), err
}

func (e *testEnv) load() *kubeconfig.Config {
	e.t.Helper()
	cfg, err := kubeconfig.Load(e.path)
	require.NoError(e.t, err)
	return cfg
}

func (e *testEnv) raw() []byte {
	e.t.Helper()
	data, err := os.ReadFile(e.path)
	require.NoError(e.t, err)
	return data
}

func (e *testEnv) writeFile(name string, cfg *kubeconfig.Config) string {
	e.t.Helper()
	path := filepath.Join(e.dir, name)
	data, err := kubeconfig.Marshal(cfg)
	require.NoError(e.t, err)
	require.NoError(e.t, os.WriteFile(path, data, 0o600))
	return path
}

func newCluster(name, server string) kubeconfig.ClusterEntry {
	return kubeconfig.ClusterEntry{Name: name, Cluster: kubeconfig.ClusterData{Server: server}}
}

func newUser(name, token string) kubeconfig.UserEntry {
	return kubeconfig.UserEntry{Name: name, User: kubeconfig.UserData{Token: token}}
}

func newContext(name, clusterName, userName, namespace string) kubeconfig.ContextEntry {
	return kubeconfig.ContextEntry{
		Name:    name,
		Context: kubeconfig.ContextData{Cluster: clusterName, User: userName, Namespace: namespace},
	}
}

// sampleConfig has dev, staging and prod, each with its own cluster and user;
// dev is current.
func sampleConfig() *kubeconfig.Config {
	cfg := kubeconfig.NewConfig()
	for _, name := range []string{"dev", "staging", "prod"} {
		cfg.Clusters = append(cfg.Clusters, newCluster(name+"-cluster", "https://"+name+".example.com"))
		cfg.Users = append(cfg.Users, newUser(name+"-user", name+"-token"))
		cfg.Contexts = append(cfg.Contexts, newContext(name, name+"-cluster", name+"-user", ""))
	}
	cfg.Contexts[0].Context.Namespace = "team-a"
	cfg.CurrentContext = "dev"
	return cfg
}

func writeText(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func withEditorSetting(t *testing.T, command string) {
	t.Helper()
	loadSettings = func() (config.Settings, error) {
		s := config.Defaults()
		s.Editor = command
		return s, nil
	}
}
