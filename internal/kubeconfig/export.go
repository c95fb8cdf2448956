package kubeconfig

import (
	"fmt"
)

// Extract builds a standalone document holding the named contexts and the
// clusters and users they reference. Shared clusters or users appear once.
// The first name becomes current-context.
func Extract(cfg *Config, names []string) (*Config, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("no contexts selected")
	}

	out := &Config{
		APIVersion:     cfg.APIVersion,
		Kind:           cfg.Kind,
		Preferences:    cfg.Preferences,
		CurrentContext: names[0],
	}
	out.applyDefaults()

	for _, name := range names {
		ctx, ok := cfg.FindContext(name)
		if !ok {
			return nil, contextNotFound(name)
		}
		cluster, ok := cfg.FindCluster(ctx.Context.Cluster)
		if !ok {
			return nil, fmt.Errorf("cluster '%s' %w for context '%s'", ctx.Context.Cluster, ErrNotFound, name)
		}
		user, ok := cfg.FindUser(ctx.Context.User)
		if !ok {
			return nil, fmt.Errorf("user '%s' %w for context '%s'", ctx.Context.User, ErrNotFound, name)
		}

		if out.ContextIndex(ctx.Name) < 0 {
			out.Contexts = append(out.Contexts, *ctx)
		}
		if out.ClusterIndex(cluster.Name) < 0 {
			out.Clusters = append(out.Clusters, *cluster)
		}
		if out.UserIndex(user.Name) < 0 {
			out.Users = append(out.Users, *user)
		}
	}
	return out, nil
}
