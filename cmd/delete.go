package cmd

import (
	"errors"
	"fmt"

	"khelp/internal/color"
	"khelp/internal/kubeconfig"
	"khelp/pkg/logging"

	"github.com/spf13/cobra"
)

var (
	deleteForce   bool
	deleteCleanup bool
)

func newDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "delete [context]",
		Aliases: []string{"rm"},
		Short:   "Delete a context",
		Long: `Deletes a context from the kubeconfig. Deleting the current context asks
for another one to switch to first; with --force the first remaining context
is used and no questions are asked.

--force needs the context name as an argument; without one the context is
picked from a list, which --force does not show.

With --cleanup, clusters and users no longer used by any context are removed
as well.`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: firstContextArg,
		RunE:              runDelete,
	}
	cmd.Flags().BoolVarP(&deleteForce, "force", "f", false, "delete without confirmation")
	cmd.Flags().BoolVar(&deleteCleanup, "cleanup", false, "also remove clusters and users left unused")
	return cmd
}

func runDelete(cmd *cobra.Command, args []string) error {
	cfg, err := loadKubeconfig()
	if err != nil {
		return err
	}
	if len(cfg.Contexts) == 0 {
		return errors.New("no contexts available to delete")
	}

	var name string
	if len(args) == 1 {
		name = args[0]
		if cfg.ContextIndex(name) < 0 {
			return fmt.Errorf("context '%s' %w", name, kubeconfig.ErrNotFound)
		}
	} else {
		if deleteForce {
			return errors.New("a context name is required with --force")
		}
		name, err = sess.prompter.Select("Select a context to delete", cfg.ContextNames(), "")
		if err != nil {
			return err
		}
	}
	logging.Debug(subsystem, "Selected context to delete: %s", name)

	replacement, err := chooseReplacement(cmd, cfg, name)
	if err != nil {
		return err
	}

	if !deleteForce {
		ok, err := sess.prompter.Confirm(fmt.Sprintf("Are you sure you want to delete context '%s'?", name), false)
		if err != nil {
			return err
		}
		if !ok {
			writeln(cmd, color.SubtleStyle.Render("Deletion cancelled"))
			return nil
		}
	}

	removal, err := kubeconfig.RemoveContext(cfg, name, replacement)
	if err != nil {
		return err
	}
	var pruned kubeconfig.Orphans
	if deleteCleanup {
		pruned = kubeconfig.Prune(cfg)
	}
	if err := saveKubeconfig(cfg); err != nil {
		return err
	}

	if removal.WasCurrent && removal.NewCurrent != "" {
		writeln(cmd, color.Successf("Switched to context: %s", removal.NewCurrent))
	}
	writeln(cmd, color.Successf("Deleted context: %s", name))
	printPruned(cmd, pruned)
	return nil
}

// chooseReplacement decides which context becomes current when the current
// one is deleted. An empty result lets RemoveContext pick the first one.
func chooseReplacement(cmd *cobra.Command, cfg *kubeconfig.Config, name string) (string, error) {
	if cfg.CurrentContext != name {
		return "", nil
	}
	others := kubeconfig.OtherContexts(cfg, name)
	if len(others) == 0 {
		logging.Debug(subsystem, "Deleting the last remaining context")
		return "", nil
	}

	writeln(cmd, color.Warnf("Context '%s' is currently active", name))
	if deleteForce {
		return "", nil
	}
	if !sess.prompter.Interactive() {
		logging.Debug(subsystem, "No terminal, switching to the first remaining context %s", others[0])
		return "", nil
	}

	switchFirst, err := sess.prompter.Confirm("Switch to another context first?", true)
	if err != nil {
		return "", err
	}
	if !switchFirst {
		return "", errors.New("cannot delete the current context without switching first")
	}
	return sess.prompter.Select("Select a context to switch to", others, "")
}

func printPruned(cmd *cobra.Command, pruned kubeconfig.Orphans) {
	for _, c := range pruned.Clusters {
		writeln(cmd, color.Successf("Deleted orphaned cluster: %s", c))
	}
	for _, u := range pruned.Users {
		writeln(cmd, color.Successf("Deleted orphaned user: %s", u))
	}
}
