package cmd

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubEditor replaces the external editor with a function over the buffer.
func stubEditor(t *testing.T, edit func(string) string) *string {
	t.Helper()
	var seen string
	orig := editBuffer
	editBuffer = func(command string, data []byte) ([]byte, error) {
		seen = string(data)
		return []byte(edit(string(data))), nil
	}
	t.Cleanup(func() { editBuffer = orig })
	return &seen
}

func TestEdit(t *testing.T) {
	env := newTestEnv(t, sampleConfig())
	seen := stubEditor(t, func(buf string) string {
		buf = strings.Replace(buf, "https://staging.example.com", "https://staging.internal:6443", 1)
		return strings.Replace(buf, "token: staging-token", "token: rotated", 1)
	})

	out, err := env.run("edit", "staging")
	require.NoError(t, err)
	assert.Contains(t, out, "Context 'staging' configuration updated")
	assert.Contains(t, *seen, "# Editing Kubernetes context: staging")

	cfg := env.load()
	cluster, _ := cfg.FindCluster("staging-cluster")
	assert.Equal(t, "https://staging.internal:6443", cluster.Cluster.Server)
	user, _ := cfg.FindUser("staging-user")
	assert.Equal(t, "rotated", user.User.Token)
	// Other entries are untouched.
	prod, _ := cfg.FindCluster("prod-cluster")
	assert.Equal(t, "https://prod.example.com", prod.Cluster.Server)
}

func TestEditInteractiveSelection(t *testing.T) {
	env := newTestEnv(t, sampleConfig())
	env.prompter.selects = []string{"prod"}
	seen := stubEditor(t, func(buf string) string { return buf })

	out, err := env.run("edit")
	require.NoError(t, err)
	assert.Equal(t, []string{"Select a context to edit"}, env.prompter.asked)
	assert.Contains(t, *seen, "# Editing Kubernetes context: prod")
	assert.Contains(t, out, "No changes made")
}

func TestEditUnchangedWritesNothing(t *testing.T) {
	env := newTestEnv(t, sampleConfig())
	stubEditor(t, func(buf string) string { return buf })
	before := env.raw()

	_, err := env.run("edit", "dev")
	require.NoError(t, err)
	assert.Equal(t, before, env.raw())
}

func TestEditRejectsRename(t *testing.T) {
	env := newTestEnv(t, sampleConfig())
	stubEditor(t, func(buf string) string {
		return strings.Replace(buf, "name: dev\n", "name: development\n", 1)
	})
	before := env.raw()

	_, err := env.run("edit", "dev")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "context name cannot be changed (was: dev, now: development)")
	assert.Equal(t, before, env.raw())
}

func TestEditRejectsIncompleteExec(t *testing.T) {
	env := newTestEnv(t, sampleConfig())
	stubEditor(t, func(buf string) string {
		return strings.Replace(buf, "token: dev-token", "exec:\n    command: aws", 1)
	})
	before := env.raw()

	_, err := env.run("edit", "dev")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing field `user.exec.apiVersion`")
	assert.Equal(t, before, env.raw())

	_, err = env.run("list")
	require.NoError(t, err)
}

func TestEditEditorFailure(t *testing.T) {
	env := newTestEnv(t, sampleConfig())
	orig := editBuffer
	defer func() { editBuffer = orig }()
	editBuffer = func(command string, data []byte) ([]byte, error) {
		return nil, errors.New("editor 'vi' exited with an error: exit status 1")
	}

	_, err := env.run("edit", "dev")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exited with an error")
}

func TestEditUsesConfiguredEditor(t *testing.T) {
	env := newTestEnv(t, sampleConfig())
	withEditorSetting(t, "code --wait")

	var got string
	orig := editBuffer
	defer func() { editBuffer = orig }()
	editBuffer = func(command string, data []byte) ([]byte, error) {
		got = command
		return data, nil
	}

	_, err := env.run("edit", "dev")
	require.NoError(t, err)
	assert.Equal(t, "code --wait", got)
}
