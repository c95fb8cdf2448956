package kubeconfig

// Orphans lists clusters and users that no context references.
type Orphans struct {
	Clusters []string
	Users    []string
}

// Empty reports whether there is nothing to remove.
func (o Orphans) Empty() bool {
	return len(o.Clusters) == 0 && len(o.Users) == 0
}

// Reference is a context pointing at a cluster or user that does not exist.
type Reference struct {
	Context string
	Kind    string // "cluster" or "user"
	Name    string
}

func referenced(cfg *Config) (clusters, users map[string]struct{}) {
	clusters = make(map[string]struct{}, len(cfg.Contexts))
	users = make(map[string]struct{}, len(cfg.Contexts))
	for _, c := range cfg.Contexts {
		clusters[c.Context.Cluster] = struct{}{}
		users[c.Context.User] = struct{}{}
	}
	return clusters, users
}

// FindOrphans computes, from scratch, the clusters and users whose names no
// remaining context refers to. Document order is preserved.
func FindOrphans(cfg *Config) Orphans {
	refClusters, refUsers := referenced(cfg)
	var o Orphans
	for _, c := range cfg.Clusters {
		if _, ok := refClusters[c.Name]; !ok {
			o.Clusters = append(o.Clusters, c.Name)
		}
	}
	for _, u := range cfg.Users {
		if _, ok := refUsers[u.Name]; !ok {
			o.Users = append(o.Users, u.Name)
		}
	}
	return o
}

// Prune removes every orphaned cluster and user and reports what was removed.
// Running it again without changing contexts removes nothing.
func Prune(cfg *Config) Orphans {
	o := FindOrphans(cfg)
	if o.Empty() {
		return o
	}
	refClusters, refUsers := referenced(cfg)

	clusters := cfg.Clusters[:0]
	for _, c := range cfg.Clusters {
		if _, ok := refClusters[c.Name]; ok {
			clusters = append(clusters, c)
		}
	}
	cfg.Clusters = clusters

	users := cfg.Users[:0]
	for _, u := range cfg.Users {
		if _, ok := refUsers[u.Name]; ok {
			users = append(users, u)
		}
	}
	cfg.Users = users
	return o
}

// DanglingReferences lists context references that do not resolve.
func DanglingReferences(cfg *Config) []Reference {
	var refs []Reference
	for _, c := range cfg.Contexts {
		if cfg.ClusterIndex(c.Context.Cluster) < 0 {
			refs = append(refs, Reference{Context: c.Name, Kind: "cluster", Name: c.Context.Cluster})
		}
		if cfg.UserIndex(c.Context.User) < 0 {
			refs = append(refs, Reference{Context: c.Name, Kind: "user", Name: c.Context.User})
		}
	}
	return refs
}
