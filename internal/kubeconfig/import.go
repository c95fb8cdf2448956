package kubeconfig

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"khelp/pkg/logging"

	"gopkg.in/yaml.v3"
)

// ImportOptions controls Import.
type ImportOptions struct {
	MergePolicy
	// Switch makes the first added or overwritten context current.
	Switch bool
	// Backup copies the main file to its .bak path before the first write.
	Backup bool
}

// ImportResult reports what Import did.
type ImportResult struct {
	Summary *ImportSummary
	// Saved is false when the merge changed nothing and no file was written.
	Saved bool
	// SwitchedTo is the new current context when a switch happened.
	SwitchedTo string
	// Dangling lists contexts whose references do not resolve after the merge.
	Dangling []Reference
}

type topLevelProbe struct {
	APIVersion *string `yaml:"apiVersion"`
	Kind       *string `yaml:"kind"`
}

// ReadImportSource reads an external kubeconfig that is about to be merged.
// Unlike Load it insists on apiVersion and kind being present, and it
// explains decoding failures in terms of what is wrong with the file.
func ReadImportSource(path string) (*Config, error) {
	logging.Debug(subsystem, "Loading external kubeconfig from %s", path)

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("file %w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("%w: %s\n\nThe kubeconfig file you're trying to add contains no data", ErrEmptyFile, path)
	}

	var probe topLevelProbe
	if err := yaml.Unmarshal(data, &probe); err != nil {
		return nil, &ImportError{Path: path, Reason: ReasonParse, Err: err}
	}
	if probe.APIVersion == nil || probe.Kind == nil {
		missing := "apiVersion"
		if probe.APIVersion != nil {
			missing = "kind"
		}
		return nil, &ImportError{Path: path, Reason: ReasonMissingTopLevel, Err: &FieldError{Field: missing}}
	}

	cfg, err := Parse(data)
	if err != nil {
		var fieldErr *FieldError
		if errors.As(err, &fieldErr) {
			return nil, &ImportError{Path: path, Reason: ReasonMissingField, Err: err}
		}
		return nil, &ImportError{Path: path, Reason: ReasonParse, Err: err}
	}

	logging.Debug(subsystem, "External config loaded: %d contexts, %d clusters, %d users",
		len(cfg.Contexts), len(cfg.Clusters), len(cfg.Users))
	return cfg, nil
}

// PrepareImport makes an external document ready to merge. A document that
// lists clusters but no contexts, and names a current-context, gets a context
// of that name bound to its first cluster and first user. A document with
// nothing to contribute is rejected with ErrNothingToImport.
func PrepareImport(external *Config) error {
	if len(external.Contexts) == 0 && len(external.Clusters) > 0 && external.CurrentContext != "" && len(external.Users) > 0 {
		logging.Warn(subsystem, "No contexts found in external config, creating %q from current-context", external.CurrentContext)
		external.Contexts = append(external.Contexts, ContextEntry{
			Name: external.CurrentContext,
			Context: ContextData{
				Cluster:   external.Clusters[0].Name,
				User:      external.Users[0].Name,
				Namespace: DefaultNamespace,
			},
		})
	}
	if external.IsEmpty() {
		return ErrNothingToImport
	}
	return nil
}

// Import merges the kubeconfig at sourcePath into the one at mainPath. The
// main file may be missing or empty, in which case it is created.
func Import(mainPath, sourcePath string, opts ImportOptions) (*ImportResult, error) {
	external, err := ReadImportSource(sourcePath)
	if err != nil {
		return nil, err
	}
	if err := PrepareImport(external); err != nil {
		return nil, err
	}

	main, err := LoadOrDefault(mainPath)
	if err != nil {
		return nil, err
	}

	summary := Merge(main, external, opts.MergePolicy)
	result := &ImportResult{Summary: summary}
	if !summary.HasChanges() {
		logging.Warn(subsystem, "No changes made - all entries already exist in the main config")
		return result, nil
	}

	result.Dangling = DanglingReferences(main)
	for _, ref := range result.Dangling {
		logging.Debug(subsystem, "Imported context %q references missing %s %q", ref.Context, ref.Kind, ref.Name)
	}

	if err := Save(mainPath, main, opts.Backup); err != nil {
		return nil, err
	}
	result.Saved = true

	if opts.Switch {
		if summary.FirstContext == "" {
			logging.Warn(subsystem, "No new contexts were added to switch to")
			return result, nil
		}
		main.CurrentContext = summary.FirstContext
		// The backup taken above already holds the pre-import state.
		if err := Save(mainPath, main, false); err != nil {
			return nil, err
		}
		result.SwitchedTo = summary.FirstContext
	}
	return result, nil
}
