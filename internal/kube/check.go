package kube

import (
	"context"
	"fmt"
	"time"

	"khelp/pkg/logging"

	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
	_ "k8s.io/client-go/plugin/pkg/client/auth" // Important for various auth providers
	"k8s.io/client-go/tools/clientcmd"
)

const subsystem = "Kube"

// RequestTimeout bounds every API call made by Check.
const RequestTimeout = 10 * time.Second

// Status is the result of contacting the cluster behind a context.
type Status struct {
	Context       string
	Server        string
	ServerVersion string

	Namespace      string
	NamespaceFound bool
	NamespacePhase corev1.NamespacePhase
	// NamespaceErr is set when the namespace lookup failed for a reason other
	// than not-found, typically missing RBAC permissions.
	NamespaceErr error

	ReadyNodes int
	TotalNodes int
	NodesErr   error
}

// Reachable reports whether the API server answered.
func (s *Status) Reachable() bool {
	return s.ServerVersion != ""
}

type client struct {
	clientset kubernetes.Interface
	server    string
	namespace string
}

// For mocking in tests
var newClient = func(kubeconfigPath, contextName string) (*client, error) {
	loadingRules := &clientcmd.ClientConfigLoadingRules{ExplicitPath: kubeconfigPath}
	configOverrides := &clientcmd.ConfigOverrides{CurrentContext: contextName}
	kubeConfig := clientcmd.NewNonInteractiveDeferredLoadingClientConfig(loadingRules, configOverrides)

	restConfig, err := kubeConfig.ClientConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to get REST config for context %q: %w", contextName, err)
	}
	restConfig.Timeout = RequestTimeout

	namespace, _, err := kubeConfig.Namespace()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve namespace for context %q: %w", contextName, err)
	}

	clientset, err := kubernetes.NewForConfig(restConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kubernetes clientset for context %q: %w", contextName, err)
	}
	return &client{clientset: clientset, server: restConfig.Host, namespace: namespace}, nil
}

// Check contacts the cluster of contextName as configured in kubeconfigPath.
// An unreachable API server is an error; namespace and node lookups that
// fail are recorded in the Status instead.
func Check(ctx context.Context, kubeconfigPath, contextName string) (*Status, error) {
	c, err := newClient(kubeconfigPath, contextName)
	if err != nil {
		return nil, err
	}
	return check(ctx, c, contextName)
}

func check(ctx context.Context, c *client, contextName string) (*Status, error) {
	ctx, cancel := context.WithTimeout(ctx, RequestTimeout)
	defer cancel()

	status := &Status{Context: contextName, Server: c.server, Namespace: c.namespace}

	logging.Debug(subsystem, "Querying server version for context %s (%s)", contextName, c.server)
	info, err := c.clientset.Discovery().ServerVersion()
	if err != nil {
		return status, fmt.Errorf("cluster for context '%s' is unreachable: %w", contextName, err)
	}
	status.ServerVersion = info.GitVersion

	ns, err := c.clientset.CoreV1().Namespaces().Get(ctx, c.namespace, metav1.GetOptions{})
	switch {
	case err == nil:
		status.NamespaceFound = true
		status.NamespacePhase = ns.Status.Phase
	case apierrors.IsNotFound(err):
		logging.Debug(subsystem, "Namespace %s not found in context %s", c.namespace, contextName)
	default:
		status.NamespaceErr = err
	}

	status.ReadyNodes, status.TotalNodes, status.NodesErr = nodeStatus(ctx, c.clientset)
	return status, nil
}

// nodeStatus counts nodes and how many of them report Ready.
func nodeStatus(ctx context.Context, clientset kubernetes.Interface) (readyNodes int, totalNodes int, err error) {
	nodeList, err := clientset.CoreV1().Nodes().List(ctx, metav1.ListOptions{})
	if err != nil {
		return 0, 0, fmt.Errorf("failed to list nodes: %w", err)
	}
	for _, node := range nodeList.Items {
		for _, cond := range node.Status.Conditions {
			if cond.Type == corev1.NodeReady && cond.Status == corev1.ConditionTrue {
				readyNodes++
				break
			}
		}
	}
	return readyNodes, len(nodeList.Items), nil
}
