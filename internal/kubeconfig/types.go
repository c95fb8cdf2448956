package kubeconfig

const (
	// DefaultAPIVersion is used when a document omits apiVersion.
	DefaultAPIVersion = "v1"
	// DefaultKind is used when a document omits kind.
	DefaultKind = "Config"
	// DefaultNamespace is given to contexts fabricated during import.
	DefaultNamespace = "default"
)

// Config is a kubeconfig document. Collections keep their on-disk order.
// Keys this type does not model are kept in the inline Extra maps so that a
// load/save cycle does not drop them.
type Config struct {
	APIVersion     string                 `yaml:"apiVersion"`
	Clusters       []ClusterEntry         `yaml:"clusters"`
	Contexts       []ContextEntry         `yaml:"contexts"`
	CurrentContext string                 `yaml:"current-context"`
	Kind           string                 `yaml:"kind"`
	Preferences    Preferences            `yaml:"preferences"`
	Users          []UserEntry            `yaml:"users"`
	Extra          map[string]interface{} `yaml:",inline"`
}

// Preferences is serialized as an empty object unless the source carried keys.
type Preferences struct {
	Extra map[string]interface{} `yaml:",inline"`
}

// ClusterEntry is a named cluster.
type ClusterEntry struct {
	Cluster ClusterData `yaml:"cluster"`
	Name    string      `yaml:"name"`
}

// ClusterData holds connection and trust settings of a cluster.
type ClusterData struct {
	CertificateAuthorityData string                 `yaml:"certificate-authority-data,omitempty"`
	CertificateAuthority     string                 `yaml:"certificate-authority,omitempty"`
	Server                   string                 `yaml:"server"`
	InsecureSkipTLSVerify    *bool                  `yaml:"insecure-skip-tls-verify,omitempty"`
	TLSServerName            string                 `yaml:"tls-server-name,omitempty"`
	ProxyURL                 string                 `yaml:"proxy-url,omitempty"`
	Extra                    map[string]interface{} `yaml:",inline"`
}

// ContextEntry is a named context.
type ContextEntry struct {
	Context ContextData `yaml:"context"`
	Name    string      `yaml:"name"`
}

// ContextData references a cluster and a user by name.
type ContextData struct {
	Cluster   string                 `yaml:"cluster"`
	User      string                 `yaml:"user"`
	Namespace string                 `yaml:"namespace,omitempty"`
	Extra     map[string]interface{} `yaml:",inline"`
}

// UserEntry is a named set of credentials.
type UserEntry struct {
	Name string   `yaml:"name"`
	User UserData `yaml:"user"`
}

// UserData holds the credentials of a user.
type UserData struct {
	ClientCertificateData string                 `yaml:"client-certificate-data,omitempty"`
	ClientKeyData         string                 `yaml:"client-key-data,omitempty"`
	ClientCertificate     string                 `yaml:"client-certificate,omitempty"`
	ClientKey             string                 `yaml:"client-key,omitempty"`
	Token                 string                 `yaml:"token,omitempty"`
	Username              string                 `yaml:"username,omitempty"`
	Password              string                 `yaml:"password,omitempty"`
	Exec                  *ExecConfig            `yaml:"exec,omitempty"`
	Extra                 map[string]interface{} `yaml:",inline"`
}

// ExecConfig describes an exec credential plugin.
type ExecConfig struct {
	APIVersion string                 `yaml:"apiVersion"`
	Command    string                 `yaml:"command"`
	Args       []string               `yaml:"args,omitempty"`
	Env        []EnvVar               `yaml:"env,omitempty"`
	Extra      map[string]interface{} `yaml:",inline"`
}

// EnvVar is an environment variable passed to an exec plugin.
type EnvVar struct {
	Name  string `yaml:"name"`
	Value string `yaml:"value"`
}

// Authentication kinds reported by UserData.AuthType.
const (
	AuthExec              = "exec"
	AuthToken             = "token"
	AuthClientCertificate = "client-certificate"
	AuthBasic             = "basic"
	AuthNone              = "none"
)

// AuthType reports which credential mechanism the user entry uses.
func (u UserData) AuthType() string {
	switch {
	case u.Exec != nil:
		return AuthExec
	case u.Token != "":
		return AuthToken
	case u.ClientCertificateData != "" || u.ClientCertificate != "":
		return AuthClientCertificate
	case u.Username != "" || u.Password != "":
		return AuthBasic
	default:
		return AuthNone
	}
}

// NewConfig returns an empty document with default apiVersion and kind.
func NewConfig() *Config {
	return &Config{
		APIVersion: DefaultAPIVersion,
		Kind:       DefaultKind,
	}
}

func (c *Config) applyDefaults() {
	if c.APIVersion == "" {
		c.APIVersion = DefaultAPIVersion
	}
	if c.Kind == "" {
		c.Kind = DefaultKind
	}
}

// IsEmpty reports whether the document has no clusters, users or contexts.
func (c *Config) IsEmpty() bool {
	return len(c.Clusters) == 0 && len(c.Users) == 0 && len(c.Contexts) == 0
}

// ContextNames returns context names in document order.
func (c *Config) ContextNames() []string {
	names := make([]string, 0, len(c.Contexts))
	for _, ctx := range c.Contexts {
		names = append(names, ctx.Name)
	}
	return names
}

// ClusterNames returns cluster names in document order.
func (c *Config) ClusterNames() []string {
	names := make([]string, 0, len(c.Clusters))
	for _, cl := range c.Clusters {
		names = append(names, cl.Name)
	}
	return names
}

// UserNames returns user names in document order.
func (c *Config) UserNames() []string {
	names := make([]string, 0, len(c.Users))
	for _, u := range c.Users {
		names = append(names, u.Name)
	}
	return names
}

// ContextIndex returns the position of the named context or -1.
func (c *Config) ContextIndex(name string) int {
	for i := range c.Contexts {
		if c.Contexts[i].Name == name {
			return i
		}
	}
	return -1
}

// ClusterIndex returns the position of the named cluster or -1.
func (c *Config) ClusterIndex(name string) int {
	for i := range c.Clusters {
		if c.Clusters[i].Name == name {
			return i
		}
	}
	return -1
}

// UserIndex returns the position of the named user or -1.
func (c *Config) UserIndex(name string) int {
	for i := range c.Users {
		if c.Users[i].Name == name {
			return i
		}
	}
	return -1
}

// FindContext returns the named context.
func (c *Config) FindContext(name string) (*ContextEntry, bool) {
	if i := c.ContextIndex(name); i >= 0 {
		return &c.Contexts[i], true
	}
	return nil, false
}

// FindCluster returns the named cluster.
func (c *Config) FindCluster(name string) (*ClusterEntry, bool) {
	if i := c.ClusterIndex(name); i >= 0 {
		return &c.Clusters[i], true
	}
	return nil, false
}

// FindUser returns the named user.
func (c *Config) FindUser(name string) (*UserEntry, bool) {
	if i := c.UserIndex(name); i >= 0 {
		return &c.Users[i], true
	}
	return nil, false
}
