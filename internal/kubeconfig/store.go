package kubeconfig

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"khelp/pkg/logging"

	"gopkg.in/yaml.v3"
	"k8s.io/client-go/tools/clientcmd"
)

const subsystem = "Kubeconfig"

// For mocking in tests
var osUserHomeDir = os.UserHomeDir

// DefaultPath returns the well-known kubeconfig location, $HOME/.kube/config.
func DefaultPath() (string, error) {
	home, err := osUserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not find home directory: %w", err)
	}
	if home == "" {
		return "", errors.New("could not find home directory")
	}
	return filepath.Join(home, clientcmd.RecommendedHomeDir, clientcmd.RecommendedFileName), nil
}

// BackupPath returns the path the previous file state is copied to before a
// save: the extension is replaced by ".bak" (~/.kube/config -> ~/.kube/config.bak).
func BackupPath(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ".bak"
}

// Parse decodes a kubeconfig document, applies defaults and checks that every
// entry carries the fields the rest of khelp relies on.
func Parse(data []byte) (*Config, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptyFile
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	if err := cfg.checkRequiredFields(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) checkRequiredFields() error {
	for i, cl := range c.Clusters {
		if cl.Name == "" {
			return &FieldError{Field: fmt.Sprintf("clusters[%d].name", i)}
		}
	}
	for i, ctx := range c.Contexts {
		if ctx.Name == "" {
			return &FieldError{Field: fmt.Sprintf("contexts[%d].name", i)}
		}
	}
	for i := range c.Users {
		if err := c.Users[i].check(fmt.Sprintf("users[%d]", i)); err != nil {
			return err
		}
	}
	return nil
}

// check reports the first required field missing from the entry; prefix
// locates the entry in field names.
func (u *UserEntry) check(prefix string) error {
	if u.Name == "" {
		return &FieldError{Field: prefix + ".name"}
	}
	if u.User.Exec != nil {
		if u.User.Exec.Command == "" {
			return &FieldError{Field: prefix + ".user.exec.command"}
		}
		if u.User.Exec.APIVersion == "" {
			return &FieldError{Field: prefix + ".user.exec.apiVersion"}
		}
	}
	return nil
}

// Marshal encodes a document the way it is persisted.
func Marshal(cfg *Config) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, cfg); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Encode writes the YAML form of v with two-space indentation.
func Encode(w io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to serialize kubeconfig to YAML: %w", err)
	}
	return enc.Close()
}

// Load reads and parses the kubeconfig at path.
func Load(path string) (*Config, error) {
	logging.Debug(subsystem, "Loading kubeconfig from %s", path)

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("kubernetes config file %w at: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		if errors.Is(err, ErrEmptyFile) {
			return nil, fmt.Errorf("%w: %s\n\nA kubeconfig must contain at least apiVersion and kind", err, path)
		}
		return nil, fmt.Errorf("failed to parse kubernetes config YAML %s: %w", path, err)
	}

	logging.Debug(subsystem, "Loaded kubeconfig with %d contexts, %d clusters, %d users",
		len(cfg.Contexts), len(cfg.Clusters), len(cfg.Users))
	return cfg, nil
}

// LoadOrDefault is Load, except that a missing or empty file yields an empty
// default document instead of an error.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if err == nil {
		return cfg, nil
	}
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrEmptyFile) {
		logging.Debug(subsystem, "Starting from an empty kubeconfig: %v", err)
		return NewConfig(), nil
	}
	return nil, err
}

// Save writes cfg to path. With backup set, the file currently at path (if
// any) is copied to BackupPath(path) first. The write itself is not atomic.
func Save(path string, cfg *Config, backup bool) error {
	logging.Debug(subsystem, "Saving kubeconfig to %s", path)

	if err := cfg.checkRequiredFields(); err != nil {
		return fmt.Errorf("refusing to save kubeconfig %s: %w", path, err)
	}
	data, err := Marshal(cfg)
	if err != nil {
		return err
	}

	if backup {
		if err := copyFile(path, BackupPath(path)); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("failed to create backup at %s: %w", BackupPath(path), err)
			}
			logging.Debug(subsystem, "No existing file at %s, skipping backup", path)
		} else {
			logging.Debug(subsystem, "Created backup at %s", BackupPath(path))
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", path, err)
	}

	logging.Info(subsystem, "Config updated successfully (%s)", path)
	return nil
}

func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	info, err := os.Stat(src)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, data, info.Mode().Perm())
}
