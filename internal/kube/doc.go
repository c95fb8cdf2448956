// Package kube talks to Kubernetes on behalf of khelp through client-go.
//
// Check connects to the cluster behind a context and reports the server
// version, whether the context namespace exists and node readiness. Validate
// runs client-go's structural validation over a kubeconfig file.
//
// Everything else khelp does to a kubeconfig is file manipulation and lives
// in internal/kubeconfig; this package is only used for diagnostics.
package kube
