package config

// Settings is the khelp settings file. Every field is optional; unset fields
// fall back to Defaults().
type Settings struct {
	// Kubeconfig overrides the kubeconfig path (~/.kube/config by default).
	Kubeconfig string `yaml:"kubeconfig,omitempty"`
	// Backup controls whether the kubeconfig is copied to its .bak path
	// before every write. A pointer so that an explicit false survives merging.
	Backup *bool `yaml:"backup,omitempty"`
	// Editor is the command used by `khelp edit`, may include arguments.
	Editor string `yaml:"editor,omitempty"`
	// UpdateRepository is the GitHub owner/repo `khelp update` checks.
	UpdateRepository string `yaml:"updateRepository,omitempty"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"logLevel,omitempty"`
}

// BackupEnabled reports the effective backup setting.
func (s Settings) BackupEnabled() bool {
	return s.Backup == nil || *s.Backup
}
