package cmd

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubValidation(t *testing.T, errs ...error) {
	t.Helper()
	orig := validateKubeconfig
	validateKubeconfig = func(path string) []error { return errs }
	t.Cleanup(func() { validateKubeconfig = orig })
}

func TestValidateClean(t *testing.T) {
	env := newTestEnv(t, sampleConfig())
	stubValidation(t)

	out, err := env.run("validate")
	require.NoError(t, err)
	assert.Contains(t, out, "is valid (3 contexts, 3 clusters, 3 users)")
	assert.NotContains(t, out, "Tip:")
}

func TestValidateReportsOrphansAsWarnings(t *testing.T) {
	cfg := sampleConfig()
	cfg.Users = append(cfg.Users, newUser("stale-user", "x"))
	env := newTestEnv(t, cfg)
	stubValidation(t)

	out, err := env.run("validate")
	require.NoError(t, err)
	assert.Contains(t, out, "user 'stale-user' is not used by any context")
	assert.Contains(t, out, "Tip: Run khelp cleanup to remove unused entries.")
}

func TestValidateReportsProblems(t *testing.T) {
	cfg := sampleConfig()
	cfg.Contexts[1].Context.User = "ghost"
	env := newTestEnv(t, cfg)
	stubValidation(t, errors.New("cluster has no server defined"))

	out, err := env.run("validate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "has 2 problem(s)")
	assert.Contains(t, out, "cluster has no server defined")
	assert.Contains(t, out, "context 'staging' refers to missing user 'ghost'")
	// staging-user is now unused as well.
	assert.Contains(t, out, "user 'staging-user' is not used by any context")
}

func TestValidateWithClientGo(t *testing.T) {
	env := newTestEnv(t, sampleConfig())

	out, err := env.run("validate")
	require.NoError(t, err)
	assert.Contains(t, out, "is valid")
}
