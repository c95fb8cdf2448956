package kubeconfig

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// EditSession ties an edit buffer to the context, cluster and user it was
// rendered from.
type EditSession struct {
	Context string
	Cluster string
	User    string
}

// Edits holds the entries read back from an edit buffer. Entries the user
// removed from the buffer are nil and left unchanged.
type Edits struct {
	Context *ContextEntry
	Cluster *ClusterEntry
	User    *UserEntry
}

// NewEditSession resolves the named context together with its cluster and
// user; all three must exist.
func NewEditSession(cfg *Config, name string) (*EditSession, error) {
	ctx, ok := cfg.FindContext(name)
	if !ok {
		return nil, contextNotFound(name)
	}
	if cfg.ClusterIndex(ctx.Context.Cluster) < 0 {
		return nil, fmt.Errorf("cluster '%s' %w", ctx.Context.Cluster, ErrNotFound)
	}
	if cfg.UserIndex(ctx.Context.User) < 0 {
		return nil, fmt.Errorf("user '%s' %w", ctx.Context.User, ErrNotFound)
	}
	return &EditSession{Context: name, Cluster: ctx.Context.Cluster, User: ctx.Context.User}, nil
}

// Render produces the edit buffer: a comment header followed by the context,
// cluster and user entries as separate YAML documents.
func (s *EditSession) Render(cfg *Config) ([]byte, error) {
	ctx, _ := cfg.FindContext(s.Context)
	cluster, _ := cfg.FindCluster(s.Cluster)
	user, _ := cfg.FindUser(s.User)
	if ctx == nil || cluster == nil || user == nil {
		return nil, fmt.Errorf("context '%s' changed since the edit session started", s.Context)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "# Editing Kubernetes context: %s\n", s.Context)
	buf.WriteString("# Make your changes and save the file.\n")
	buf.WriteString("# The name fields must remain consistent across entries.\n")
	fmt.Fprintf(&buf, "# Available clusters: %s\n", strings.Join(cfg.ClusterNames(), ", "))
	fmt.Fprintf(&buf, "# Available users: %s\n", strings.Join(cfg.UserNames(), ", "))
	buf.WriteString("#\n")
	buf.WriteString("# This contains the full context, cluster, and user entries from your kubeconfig.\n")
	buf.WriteString("# All changes here will be merged back into your config.\n\n")

	sections := []struct {
		title string
		entry interface{}
	}{
		{"Context entry", ctx},
		{"Cluster entry", cluster},
		{"User entry", user},
	}
	for i, sec := range sections {
		if i > 0 {
			buf.WriteString("---\n")
		}
		fmt.Fprintf(&buf, "# %s\n", sec.title)
		if err := Encode(&buf, sec.entry); err != nil {
			return nil, fmt.Errorf("failed to serialize %s: %w", strings.ToLower(sec.title), err)
		}
	}
	return buf.Bytes(), nil
}

type entryProbe struct {
	Name    *string    `yaml:"name"`
	Context *yaml.Node `yaml:"context"`
	Cluster *yaml.Node `yaml:"cluster"`
	User    *yaml.Node `yaml:"user"`
}

// Parse reads an edited buffer back. Names may not change: renaming is a
// separate operation and cluster/user names are referenced from elsewhere.
func (s *EditSession) Parse(data []byte) (*Edits, error) {
	var docs []*yaml.Node
	dec := yaml.NewDecoder(bytes.NewReader(data))
	for {
		var doc yaml.Node
		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse edited YAML entry: %w", err)
		}
		if len(doc.Content) == 0 || doc.Content[0].Tag == "!!null" {
			continue
		}
		docs = append(docs, doc.Content[0])
	}

	if len(docs) == 0 || len(docs) > 3 {
		return nil, fmt.Errorf("expected 1-3 configuration entries (context, cluster, user), found %d", len(docs))
	}

	edits := &Edits{}
	for _, node := range docs {
		if node.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("edited entry at line %d is not a mapping", node.Line)
		}
		var probe entryProbe
		if err := node.Decode(&probe); err != nil {
			return nil, fmt.Errorf("failed to parse edited YAML entry: %w", err)
		}
		if probe.Name == nil {
			return nil, &FieldError{Field: "name"}
		}
		name := *probe.Name

		switch {
		case probe.Context != nil:
			if edits.Context != nil {
				return nil, errors.New("duplicate context entry in edited file")
			}
			if name != s.Context {
				return nil, fmt.Errorf("context name cannot be changed (was: %s, now: %s)", s.Context, name)
			}
			var entry ContextEntry
			if err := node.Decode(&entry); err != nil {
				return nil, fmt.Errorf("failed to deserialize edited context entry: %w", err)
			}
			edits.Context = &entry
		case probe.Cluster != nil:
			if edits.Cluster != nil {
				return nil, errors.New("duplicate cluster entry in edited file")
			}
			if name != s.Cluster {
				return nil, fmt.Errorf("cluster name cannot be changed (was: %s, now: %s)", s.Cluster, name)
			}
			var entry ClusterEntry
			if err := node.Decode(&entry); err != nil {
				return nil, fmt.Errorf("failed to deserialize edited cluster entry: %w", err)
			}
			edits.Cluster = &entry
		case probe.User != nil:
			if edits.User != nil {
				return nil, errors.New("duplicate user entry in edited file")
			}
			if name != s.User {
				return nil, fmt.Errorf("user name cannot be changed (was: %s, now: %s)", s.User, name)
			}
			var entry UserEntry
			if err := node.Decode(&entry); err != nil {
				return nil, fmt.Errorf("failed to deserialize edited user entry: %w", err)
			}
			if err := entry.check("user"); err != nil {
				return nil, err
			}
			edits.User = &entry
		default:
			return nil, fmt.Errorf("entry '%s' is not a context, cluster or user", name)
		}
	}
	return edits, nil
}

// Apply writes the edited entries over their originals, in place.
func (s *EditSession) Apply(cfg *Config, edits *Edits) error {
	if edits.Context != nil {
		i := cfg.ContextIndex(s.Context)
		if i < 0 {
			return contextNotFound(s.Context)
		}
		cfg.Contexts[i] = *edits.Context
	}
	if edits.Cluster != nil {
		i := cfg.ClusterIndex(s.Cluster)
		if i < 0 {
			return fmt.Errorf("cluster '%s' %w", s.Cluster, ErrNotFound)
		}
		cfg.Clusters[i] = *edits.Cluster
	}
	if edits.User != nil {
		i := cfg.UserIndex(s.User)
		if i < 0 {
			return fmt.Errorf("user '%s' %w", s.User, ErrNotFound)
		}
		cfg.Users[i] = *edits.User
	}
	return nil
}
