package cmd

import (
	"khelp/internal/color"
	"khelp/internal/kubeconfig"

	"github.com/spf13/cobra"
)

func newRenameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rename <old-name> <new-name>",
		Short: "Rename a context",
		Long: `Renames a context. current-context follows the rename; the cluster and
user the context points at keep their names.`,
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: firstContextArg,
		RunE:              runRename,
	}
}

func runRename(cmd *cobra.Command, args []string) error {
	oldName, newName := args[0], args[1]

	cfg, err := loadKubeconfig()
	if err != nil {
		return err
	}
	if err := kubeconfig.RenameContext(cfg, oldName, newName); err != nil {
		return err
	}
	if err := saveKubeconfig(cfg); err != nil {
		return err
	}
	writef(cmd, "%s\n", color.Successf("Renamed context from %s to %s", oldName, newName))
	return nil
}
