package cmd

import (
	"context"
	"errors"
	"fmt"

	"khelp/internal/color"
	"khelp/internal/kube"
	"khelp/internal/kubeconfig"

	"github.com/spf13/cobra"
)

var currentCheck bool

// For mocking in tests
var checkCluster = kube.Check

func newCurrentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "current",
		Short: "Show the current context",
		Long: `Shows the current context together with the cluster, user and namespace
it uses. With --check the cluster is contacted to report the server version,
whether the namespace exists and how many nodes are ready.`,
		Args: cobra.NoArgs,
		RunE: runCurrent,
	}
	cmd.Flags().BoolVar(&currentCheck, "check", false, "contact the cluster and report its status")
	return cmd
}

func runCurrent(cmd *cobra.Command, args []string) error {
	cfg, err := loadKubeconfig()
	if err != nil {
		return err
	}

	ctx, ok := kubeconfig.Current(cfg)
	if !ok {
		if cfg.CurrentContext == "" {
			return errors.New("no current context is set")
		}
		return fmt.Errorf("current context '%s' %w in kubeconfig", cfg.CurrentContext, kubeconfig.ErrNotFound)
	}

	writef(cmd, "Current context: %s\n", color.AccentStyle.Render(ctx.Name))
	writef(cmd, "  Cluster:   %s\n", ctx.Context.Cluster)
	if cluster, ok := cfg.FindCluster(ctx.Context.Cluster); ok {
		writef(cmd, "  Server:    %s\n", cluster.Cluster.Server)
	}
	writef(cmd, "  User:      %s\n", ctx.Context.User)
	if user, ok := cfg.FindUser(ctx.Context.User); ok {
		writef(cmd, "  Auth:      %s\n", user.User.AuthType())
	}
	namespace := ctx.Context.Namespace
	if namespace == "" {
		namespace = kubeconfig.DefaultNamespace
	}
	writef(cmd, "  Namespace: %s\n", namespace)

	if !currentCheck {
		return nil
	}
	return printClusterStatus(cmd, ctx.Name)
}

func printClusterStatus(cmd *cobra.Command, contextName string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	status, err := checkCluster(ctx, sess.kubeconfigPath, contextName)
	if err != nil {
		return err
	}

	writeln(cmd)
	writeln(cmd, color.HeaderStyle.Render("Cluster status:"))
	writef(cmd, "  %sReachable (server version %s)\n", color.SuccessStyle.Render(color.SafeIcon(color.IconCheck)), status.ServerVersion)

	switch {
	case status.NamespaceErr != nil:
		writef(cmd, "  %sNamespace %s could not be checked: %v\n", color.WarningStyle.Render(color.SafeIcon(color.IconWarning)), status.Namespace, status.NamespaceErr)
	case status.NamespaceFound:
		writef(cmd, "  %sNamespace %s exists (%s)\n", color.SuccessStyle.Render(color.SafeIcon(color.IconCheck)), status.Namespace, status.NamespacePhase)
	default:
		writef(cmd, "  %sNamespace %s does not exist\n", color.ErrorStyle.Render(color.SafeIcon(color.IconCross)), status.Namespace)
	}

	if status.NodesErr != nil {
		writef(cmd, "  %sNodes could not be listed: %v\n", color.WarningStyle.Render(color.SafeIcon(color.IconWarning)), status.NodesErr)
	} else {
		writef(cmd, "  %s%d/%d nodes ready\n", color.SuccessStyle.Render(color.SafeIcon(color.IconCheck)), status.ReadyNodes, status.TotalNodes)
	}
	return nil
}
