package kubeconfig

import (
	"fmt"
)

// Current returns the context named by current-context.
func Current(cfg *Config) (*ContextEntry, bool) {
	if cfg.CurrentContext == "" {
		return nil, false
	}
	return cfg.FindContext(cfg.CurrentContext)
}

// SetCurrent makes name the current context.
func SetCurrent(cfg *Config, name string) error {
	if cfg.ContextIndex(name) < 0 {
		return contextNotFound(name)
	}
	cfg.CurrentContext = name
	return nil
}

// OtherContexts returns every context name except name, in document order.
func OtherContexts(cfg *Config, name string) []string {
	var out []string
	for _, c := range cfg.Contexts {
		if c.Name != name {
			out = append(out, c.Name)
		}
	}
	return out
}

// Removal describes the effect of RemoveContext.
type Removal struct {
	Context string
	Cluster string
	User    string
	// WasCurrent is set when the removed context was the current one;
	// NewCurrent is then what current-context became ("" for the last one).
	WasCurrent bool
	NewCurrent string
}

// RemoveContext deletes the named context. If it was current and other
// contexts remain, current-context moves to replacement, or to the first
// remaining context when replacement is empty. Removing the last context
// clears current-context. Clusters and users are left alone; see Prune.
func RemoveContext(cfg *Config, name, replacement string) (*Removal, error) {
	idx := cfg.ContextIndex(name)
	if idx < 0 {
		return nil, contextNotFound(name)
	}
	removed := cfg.Contexts[idx]
	r := &Removal{
		Context:    name,
		Cluster:    removed.Context.Cluster,
		User:       removed.Context.User,
		WasCurrent: cfg.CurrentContext == name,
	}

	others := OtherContexts(cfg, name)
	if r.WasCurrent && len(others) > 0 {
		switch {
		case replacement == "":
			replacement = others[0]
		case replacement == name:
			return nil, fmt.Errorf("cannot switch to context '%s' while deleting it", name)
		case cfg.ContextIndex(replacement) < 0:
			return nil, contextNotFound(replacement)
		}
	} else {
		replacement = ""
	}

	cfg.Contexts = append(cfg.Contexts[:idx:idx], cfg.Contexts[idx+1:]...)
	if r.WasCurrent {
		cfg.CurrentContext = replacement
		r.NewCurrent = replacement
	}
	return r, nil
}

// RenameContext renames a context and keeps current-context pointing at it.
// On error the document is unchanged.
func RenameContext(cfg *Config, oldName, newName string) error {
	idx := cfg.ContextIndex(oldName)
	if idx < 0 {
		return contextNotFound(oldName)
	}
	if oldName == newName {
		return ErrSameName
	}
	if cfg.ContextIndex(newName) >= 0 {
		return fmt.Errorf("context '%s' %w", newName, ErrAlreadyExists)
	}

	cfg.Contexts[idx].Name = newName
	if cfg.CurrentContext == oldName {
		cfg.CurrentContext = newName
	}
	return nil
}
