package cmd

import (
	"khelp/internal/color"
	"khelp/internal/kubeconfig"
	"khelp/pkg/logging"

	"github.com/spf13/cobra"
)

var cleanupForce bool

func newCleanupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cleanup",
		Short: "Remove clusters and users not used by any context",
		Long: `Finds clusters and users that no context refers to, lists them and,
after confirmation, removes them from the kubeconfig.`,
		Args: cobra.NoArgs,
		RunE: runCleanup,
	}
	cmd.Flags().BoolVarP(&cleanupForce, "force", "f", false, "remove without confirmation")
	return cmd
}

func runCleanup(cmd *cobra.Command, args []string) error {
	cfg, err := loadKubeconfig()
	if err != nil {
		return err
	}
	logging.Debug(subsystem, "Loaded kubeconfig with %d clusters, %d users, %d contexts",
		len(cfg.Clusters), len(cfg.Users), len(cfg.Contexts))

	orphans := kubeconfig.FindOrphans(cfg)
	if orphans.Empty() {
		writeln(cmd, color.SuccessStyle.Render("No orphaned clusters or users found"))
		return nil
	}

	writeln(cmd, color.HeaderStyle.Render("Found orphaned resources:"))
	if len(orphans.Clusters) > 0 {
		writeln(cmd, "\nClusters:")
		for _, c := range orphans.Clusters {
			writeln(cmd, "  - "+color.AccentStyle.Render(c))
		}
	}
	if len(orphans.Users) > 0 {
		writeln(cmd, "\nUsers:")
		for _, u := range orphans.Users {
			writeln(cmd, "  - "+color.AccentStyle.Render(u))
		}
	}
	writeln(cmd)

	if !cleanupForce {
		ok, err := sess.prompter.Confirm("Delete these orphaned resources?", false)
		if err != nil {
			return err
		}
		if !ok {
			writeln(cmd, color.SubtleStyle.Render("Cleanup cancelled"))
			return nil
		}
	}

	pruned := kubeconfig.Prune(cfg)
	if err := saveKubeconfig(cfg); err != nil {
		return err
	}
	printPruned(cmd, pruned)
	writef(cmd, "Cleaned up %d cluster(s) and %d user(s)\n", len(pruned.Clusters), len(pruned.Users))
	return nil
}
