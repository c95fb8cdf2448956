package kube

import (
	"errors"

	utilerrors "k8s.io/apimachinery/pkg/util/errors"
	"k8s.io/client-go/tools/clientcmd"
)

// Validate runs client-go's own kubeconfig validation on the file at path
// and returns every problem it finds, or nil when the file is valid.
func Validate(path string) []error {
	cfg, err := clientcmd.LoadFromFile(path)
	if err != nil {
		return []error{err}
	}
	err = clientcmd.Validate(*cfg)
	if err == nil {
		return nil
	}
	var agg utilerrors.Aggregate
	if errors.As(err, &agg) {
		return utilerrors.Flatten(agg).Errors()
	}
	return []error{err}
}
