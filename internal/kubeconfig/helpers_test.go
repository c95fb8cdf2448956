package kubeconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func clusterEntry(name, server string) ClusterEntry {
	return ClusterEntry{Name: name, Cluster: ClusterData{Server: server}}
}

func userEntry(name, token string) UserEntry {
	return UserEntry{Name: name, User: UserData{Token: token}}
}

func contextEntry(name, clusterName, userName string) ContextEntry {
	return ContextEntry{Name: name, Context: ContextData{Cluster: clusterName, User: userName}}
}

// twoContextConfig has contexts alpha and beta, each with its own cluster and
// user, and alpha as current.
func twoContextConfig() *Config {
	cfg := NewConfig()
	cfg.Clusters = []ClusterEntry{clusterEntry("c-alpha", "https://alpha:6443"), clusterEntry("c-beta", "https://beta:6443")}
	cfg.Users = []UserEntry{userEntry("u-alpha", "t-alpha"), userEntry("u-beta", "t-beta")}
	cfg.Contexts = []ContextEntry{contextEntry("alpha", "c-alpha", "u-alpha"), contextEntry("beta", "c-beta", "u-beta")}
	cfg.CurrentContext = "alpha"
	return cfg
}

func writeConfig(t *testing.T, dir, name string, cfg *Config) string {
	t.Helper()
	path := filepath.Join(dir, name)
	data, err := Marshal(cfg)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func writeRaw(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func mustMarshal(t *testing.T, cfg *Config) []byte {
	t.Helper()
	data, err := Marshal(cfg)
	require.NoError(t, err)
	return data
}
