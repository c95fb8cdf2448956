package kubeconfig

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned for a missing file or a missing named entry.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists is returned when a target name is taken.
	ErrAlreadyExists = errors.New("already exists")
	// ErrSameName is returned when a rename would not change the name.
	ErrSameName = errors.New("new name must be different from the current name")
	// ErrEmptyFile is returned for empty or whitespace-only documents.
	ErrEmptyFile = errors.New("config file is empty")
	// ErrNothingToImport is returned when an external document has no entries.
	ErrNothingToImport = errors.New("external kubeconfig contains no contexts, clusters, or users to import")
)

// FieldError reports a required field that is absent from a document.
type FieldError struct {
	Field string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("missing field `%s`", e.Field)
}

// ImportReason classifies why an import source could not be read.
type ImportReason int

const (
	ReasonParse ImportReason = iota
	ReasonMissingTopLevel
	ReasonMissingField
)

// ImportError wraps a failure to decode an import source with a
// human-readable explanation.
type ImportError struct {
	Path   string
	Reason ImportReason
	Err    error
}

func (e *ImportError) Error() string {
	switch e.Reason {
	case ReasonMissingTopLevel:
		return fmt.Sprintf("invalid kubeconfig file: %s\n\nThe file appears to be missing required fields (apiVersion, kind).\n\nOriginal error: %v", e.Path, e.Err)
	case ReasonMissingField:
		return fmt.Sprintf("invalid kubeconfig file: %s\n\n%v\n\nPlease check that your kubeconfig file has all required fields.", e.Path, e.Err)
	default:
		return fmt.Sprintf("failed to parse kubeconfig file: %s\n\n%v", e.Path, e.Err)
	}
}

func (e *ImportError) Unwrap() error {
	return e.Err
}

func contextNotFound(name string) error {
	return fmt.Errorf("context '%s' %w", name, ErrNotFound)
}
