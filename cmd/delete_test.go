package cmd

import (
	"testing"

	"khelp/internal/kubeconfig"
	"khelp/internal/prompt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeleteNonCurrent(t *testing.T) {
	env := newTestEnv(t, sampleConfig())
	env.prompter.confirms = []bool{true}

	out, err := env.run("delete", "staging")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted context: staging")
	assert.Equal(t, []string{"Are you sure you want to delete context 'staging'?"}, env.prompter.asked)

	cfg := env.load()
	assert.Equal(t, []string{"dev", "prod"}, cfg.ContextNames())
	assert.Equal(t, "dev", cfg.CurrentContext)
	// Without --cleanup the cluster and user stay.
	assert.Contains(t, cfg.ClusterNames(), "staging-cluster")
	assert.Contains(t, cfg.UserNames(), "staging-user")
}

func TestDeleteCancelled(t *testing.T) {
	env := newTestEnv(t, sampleConfig())
	env.prompter.confirms = []bool{false}
	before := env.raw()

	out, err := env.run("delete", "staging")
	require.NoError(t, err)
	assert.Contains(t, out, "Deletion cancelled")
	assert.Equal(t, before, env.raw())
}

func TestDeleteCurrentSwitchesFirst(t *testing.T) {
	env := newTestEnv(t, sampleConfig())
	env.prompter.confirms = []bool{true, true}
	env.prompter.selects = []string{"prod"}

	out, err := env.run("delete", "dev")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Switch to another context first?",
		"Select a context to switch to",
		"Are you sure you want to delete context 'dev'?",
	}, env.prompter.asked)
	assert.Contains(t, out, "Context 'dev' is currently active")
	assert.Contains(t, out, "Switched to context: prod")

	cfg := env.load()
	assert.Equal(t, "prod", cfg.CurrentContext)
	assert.Equal(t, []string{"staging", "prod"}, cfg.ContextNames())
}

func TestDeleteCurrentRefusingToSwitch(t *testing.T) {
	env := newTestEnv(t, sampleConfig())
	env.prompter.confirms = []bool{false}
	before := env.raw()

	_, err := env.run("delete", "dev")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot delete the current context without switching first")
	assert.Equal(t, before, env.raw())
}

func TestDeleteForce(t *testing.T) {
	env := newTestEnv(t, sampleConfig())
	env.prompter.interactive = false

	_, err := env.run("delete", "dev", "--force")
	require.NoError(t, err)
	assert.Empty(t, env.prompter.asked)

	cfg := env.load()
	assert.Equal(t, "staging", cfg.CurrentContext, "first remaining context becomes current")
	assert.Equal(t, []string{"staging", "prod"}, cfg.ContextNames())
}

func TestDeleteCurrentWithoutTerminal(t *testing.T) {
	env := newTestEnv(t, sampleConfig())
	env.prompter.interactive = false
	before := env.raw()

	_, err := env.run("delete", "dev")
	require.ErrorIs(t, err, prompt.ErrNotInteractive)
	// The replacement is not asked for; only the final confirmation is.
	assert.Equal(t, []string{"Are you sure you want to delete context 'dev'?"}, env.prompter.asked)
	assert.Equal(t, before, env.raw())
}

func TestDeleteLastContext(t *testing.T) {
	cfg := kubeconfig.NewConfig()
	cfg.Clusters = []kubeconfig.ClusterEntry{newCluster("only-cluster", "https://only")}
	cfg.Users = []kubeconfig.UserEntry{newUser("only-user", "t")}
	cfg.Contexts = []kubeconfig.ContextEntry{newContext("only", "only-cluster", "only-user", "")}
	cfg.CurrentContext = "only"
	env := newTestEnv(t, cfg)

	_, err := env.run("delete", "only", "--force")
	require.NoError(t, err)

	after := env.load()
	assert.Empty(t, after.Contexts)
	assert.Empty(t, after.CurrentContext)
}

func TestDeleteWithCleanup(t *testing.T) {
	cfg := sampleConfig()
	// prod shares staging's user, so only the cluster becomes orphaned.
	cfg.Contexts[2].Context.User = "staging-user"
	cfg.Users = cfg.Users[:2]
	env := newTestEnv(t, cfg)

	out, err := env.run("delete", "staging", "--force", "--cleanup")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted orphaned cluster: staging-cluster")
	assert.NotContains(t, out, "Deleted orphaned user")

	after := env.load()
	assert.Equal(t, []string{"dev-cluster", "prod-cluster"}, after.ClusterNames())
	assert.Equal(t, []string{"dev-user", "staging-user"}, after.UserNames())
}

func TestDeleteInteractiveSelection(t *testing.T) {
	env := newTestEnv(t, sampleConfig())
	env.prompter.selects = []string{"prod"}
	env.prompter.confirms = []bool{true}

	_, err := env.run("delete")
	require.NoError(t, err)
	assert.Equal(t, "Select a context to delete", env.prompter.asked[0])
	assert.Equal(t, []string{"dev", "staging"}, env.load().ContextNames())
}

func TestDeleteErrors(t *testing.T) {
	t.Run("unknown context", func(t *testing.T) {
		env := newTestEnv(t, sampleConfig())
		_, err := env.run("delete", "nope", "--force")
		require.ErrorIs(t, err, kubeconfig.ErrNotFound)
	})

	t.Run("no contexts", func(t *testing.T) {
		env := newTestEnv(t, kubeconfig.NewConfig())
		_, err := env.run("delete")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no contexts available to delete")
	})

	t.Run("force without name", func(t *testing.T) {
		env := newTestEnv(t, sampleConfig())
		_, err := env.run("delete", "--force")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "a context name is required with --force")
		assert.Contains(t, newDeleteCmd().Long, "--force needs the context name as an argument")
	})

	t.Run("not interactive without force", func(t *testing.T) {
		env := newTestEnv(t, sampleConfig())
		env.prompter.interactive = false
		before := env.raw()

		_, err := env.run("delete", "staging")
		require.ErrorIs(t, err, prompt.ErrNotInteractive)
		assert.Equal(t, before, env.raw())
	})
}
