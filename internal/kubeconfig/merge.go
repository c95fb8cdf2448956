package kubeconfig

import (
	"fmt"

	"khelp/pkg/logging"
)

// Action is what the merge does with one incoming entry.
type Action int

const (
	ActionAdd Action = iota
	ActionOverwrite
	ActionRename
	ActionSkip
)

func (a Action) String() string {
	switch a {
	case ActionAdd:
		return "add"
	case ActionOverwrite:
		return "overwrite"
	case ActionRename:
		return "rename"
	default:
		return "skip"
	}
}

// MergePolicy controls how name collisions are resolved during an import.
type MergePolicy struct {
	Rename    bool
	Overwrite bool
}

// Decide maps a collision state to an action. Overwrite wins over rename,
// rename wins over skip.
func (p MergePolicy) Decide(exists bool) Action {
	switch {
	case !exists:
		return ActionAdd
	case p.Overwrite:
		return ActionOverwrite
	case p.Rename:
		return ActionRename
	default:
		return ActionSkip
	}
}

// Outcome lists the names touched in one collection.
type Outcome struct {
	Added       []string
	Overwritten []string
	Skipped     []string
}

func (o Outcome) changed() bool {
	return len(o.Added) > 0 || len(o.Overwritten) > 0
}

// ImportSummary describes the effect of a Merge.
type ImportSummary struct {
	Clusters Outcome
	Users    Outcome
	Contexts Outcome

	// Old name -> new name for entries added under a fresh name.
	ClusterRenames map[string]string
	UserRenames    map[string]string
	ContextRenames map[string]string

	// FirstContext is the first context added or overwritten, in the order
	// the external document lists them.
	FirstContext string
}

// HasChanges reports whether anything was added or overwritten.
func (s *ImportSummary) HasChanges() bool {
	return s.Clusters.changed() || s.Users.changed() || s.Contexts.changed()
}

// AvailableName returns base-imported, base-imported-2, base-imported-3, ...
// whichever is the first that taken reports as free.
func AvailableName(base string, taken func(string) bool) string {
	name := base + "-imported"
	for n := 2; taken(name); n++ {
		name = fmt.Sprintf("%s-imported-%d", base, n)
	}
	return name
}

type mergeResult[T any] struct {
	entries []T
	outcome Outcome
	renames map[string]string
	first   string
}

// mergeEntries applies policy to every incoming entry against dst and
// returns the new collection. Name lookups always see the collection as
// updated so far, so two renamed entries never receive the same name.
func mergeEntries[T any](dst, incoming []T, name func(*T) string, setName func(*T, string), policy MergePolicy) mergeResult[T] {
	res := mergeResult[T]{
		entries: dst,
		renames: map[string]string{},
	}
	index := make(map[string]int, len(dst))
	for i := range dst {
		index[name(&dst[i])] = i
	}
	taken := func(n string) bool {
		_, ok := index[n]
		return ok
	}
	noteFirst := func(n string) {
		if res.first == "" {
			res.first = n
		}
	}

	for _, entry := range incoming {
		entryName := name(&entry)
		pos, exists := index[entryName]

		switch policy.Decide(exists) {
		case ActionAdd:
			res.entries = append(res.entries, entry)
			index[entryName] = len(res.entries) - 1
			res.outcome.Added = append(res.outcome.Added, entryName)
			noteFirst(entryName)
		case ActionOverwrite:
			res.entries[pos] = entry
			res.outcome.Overwritten = append(res.outcome.Overwritten, entryName)
			noteFirst(entryName)
		case ActionRename:
			newName := AvailableName(entryName, taken)
			setName(&entry, newName)
			res.entries = append(res.entries, entry)
			index[newName] = len(res.entries) - 1
			res.renames[entryName] = newName
			res.outcome.Added = append(res.outcome.Added, newName)
			noteFirst(newName)
		case ActionSkip:
			res.outcome.Skipped = append(res.outcome.Skipped, entryName)
		}
	}
	return res
}

// remapContext rewrites the cluster and user references of c through the
// rename tables produced while merging clusters and users.
func remapContext(c ContextEntry, clusters, users map[string]string) ContextEntry {
	if n, ok := clusters[c.Context.Cluster]; ok {
		c.Context.Cluster = n
	}
	if n, ok := users[c.Context.User]; ok {
		c.Context.User = n
	}
	return c
}

func mergeClusters(dst, incoming []ClusterEntry, policy MergePolicy) mergeResult[ClusterEntry] {
	return mergeEntries(dst, incoming,
		func(c *ClusterEntry) string { return c.Name },
		func(c *ClusterEntry, n string) { c.Name = n },
		policy)
}

func mergeUsers(dst, incoming []UserEntry, policy MergePolicy) mergeResult[UserEntry] {
	return mergeEntries(dst, incoming,
		func(u *UserEntry) string { return u.Name },
		func(u *UserEntry, n string) { u.Name = n },
		policy)
}

func mergeContexts(dst, incoming []ContextEntry, clusterRenames, userRenames map[string]string, policy MergePolicy) mergeResult[ContextEntry] {
	remapped := make([]ContextEntry, 0, len(incoming))
	for _, c := range incoming {
		remapped = append(remapped, remapContext(c, clusterRenames, userRenames))
	}
	return mergeEntries(dst, remapped,
		func(c *ContextEntry) string { return c.Name },
		func(c *ContextEntry, n string) { c.Name = n },
		policy)
}

// Merge folds external into main: clusters first, then users, then contexts
// (with references rewritten to follow renamed clusters and users). main is
// modified in place; when every entry is skipped it is left untouched.
func Merge(main, external *Config, policy MergePolicy) *ImportSummary {
	clusters := mergeClusters(main.Clusters, external.Clusters, policy)
	users := mergeUsers(main.Users, external.Users, policy)
	contexts := mergeContexts(main.Contexts, external.Contexts, clusters.renames, users.renames, policy)

	main.Clusters = clusters.entries
	main.Users = users.entries
	main.Contexts = contexts.entries

	summary := &ImportSummary{
		Clusters:       clusters.outcome,
		Users:          users.outcome,
		Contexts:       contexts.outcome,
		ClusterRenames: clusters.renames,
		UserRenames:    users.renames,
		ContextRenames: contexts.renames,
		FirstContext:   contexts.first,
	}

	logging.Debug(subsystem, "Merge result: %d/%d/%d contexts, %d/%d/%d clusters, %d/%d/%d users added/overwritten/skipped",
		len(summary.Contexts.Added), len(summary.Contexts.Overwritten), len(summary.Contexts.Skipped),
		len(summary.Clusters.Added), len(summary.Clusters.Overwritten), len(summary.Clusters.Skipped),
		len(summary.Users.Added), len(summary.Users.Overwritten), len(summary.Users.Skipped))
	return summary
}
