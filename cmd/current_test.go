package cmd

import (
	"context"
	"errors"
	"testing"

	"khelp/internal/kube"
	"khelp/internal/kubeconfig"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	corev1 "k8s.io/api/core/v1"
)

func TestCurrent(t *testing.T) {
	env := newTestEnv(t, sampleConfig())

	out, err := env.run("current")
	require.NoError(t, err)
	assert.Contains(t, out, "Current context: dev")
	assert.Contains(t, out, "Cluster:   dev-cluster")
	assert.Contains(t, out, "Server:    https://dev.example.com")
	assert.Contains(t, out, "User:      dev-user")
	assert.Contains(t, out, "Auth:      token")
	assert.Contains(t, out, "Namespace: team-a")
}

func TestCurrentDefaultNamespace(t *testing.T) {
	cfg := sampleConfig()
	cfg.CurrentContext = "prod"
	env := newTestEnv(t, cfg)

	out, err := env.run("current")
	require.NoError(t, err)
	assert.Contains(t, out, "Namespace: default")
}

func TestCurrentErrors(t *testing.T) {
	tests := []struct {
		name    string
		current string
		wantErr string
	}{
		{name: "unset", current: "", wantErr: "no current context is set"},
		{name: "dangling", current: "gone", wantErr: "current context 'gone' not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := sampleConfig()
			cfg.CurrentContext = tt.current
			env := newTestEnv(t, cfg)

			_, err := env.run("current")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestCurrentCheck(t *testing.T) {
	env := newTestEnv(t, sampleConfig())

	var gotPath, gotContext string
	orig := checkCluster
	defer func() { checkCluster = orig }()
	checkCluster = func(ctx context.Context, path, contextName string) (*kube.Status, error) {
		gotPath, gotContext = path, contextName
		return &kube.Status{
			Context:        contextName,
			ServerVersion:  "v1.33.0",
			Namespace:      "team-a",
			NamespaceFound: true,
			NamespacePhase: corev1.NamespaceActive,
			ReadyNodes:     2,
			TotalNodes:     3,
		}, nil
	}

	out, err := env.run("current", "--check")
	require.NoError(t, err)
	assert.Equal(t, env.path, gotPath)
	assert.Equal(t, "dev", gotContext)
	assert.Contains(t, out, "Reachable (server version v1.33.0)")
	assert.Contains(t, out, "Namespace team-a exists (Active)")
	assert.Contains(t, out, "2/3 nodes ready")
}

func TestCurrentCheckMissingNamespace(t *testing.T) {
	env := newTestEnv(t, sampleConfig())

	orig := checkCluster
	defer func() { checkCluster = orig }()
	checkCluster = func(ctx context.Context, path, contextName string) (*kube.Status, error) {
		return &kube.Status{
			ServerVersion: "v1.33.0",
			Namespace:     "team-a",
			NodesErr:      errors.New("forbidden"),
		}, nil
	}

	out, err := env.run("current", "--check")
	require.NoError(t, err)
	assert.Contains(t, out, "Namespace team-a does not exist")
	assert.Contains(t, out, "Nodes could not be listed: forbidden")
}

func TestCurrentCheckUnreachable(t *testing.T) {
	env := newTestEnv(t, sampleConfig())

	orig := checkCluster
	defer func() { checkCluster = orig }()
	checkCluster = func(ctx context.Context, path, contextName string) (*kube.Status, error) {
		return nil, errors.New("cluster for context 'dev' is unreachable: connection refused")
	}

	_, err := env.run("current", "--check")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unreachable")
}

func TestCurrentAuthTypes(t *testing.T) {
	tests := []struct {
		name string
		user kubeconfig.UserData
		want string
	}{
		{name: "exec", user: kubeconfig.UserData{Exec: &kubeconfig.ExecConfig{APIVersion: "client.authentication.k8s.io/v1", Command: "aws"}}, want: "Auth:      exec"},
		{name: "client certificate", user: kubeconfig.UserData{ClientCertificateData: "Y2VydA=="}, want: "Auth:      client-certificate"},
		{name: "none", user: kubeconfig.UserData{}, want: "Auth:      none"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := sampleConfig()
			cfg.Users[0].User = tt.user
			env := newTestEnv(t, cfg)

			out, err := env.run("current")
			require.NoError(t, err)
			assert.Contains(t, out, tt.want)
		})
	}
}
