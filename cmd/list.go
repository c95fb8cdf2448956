package cmd

import (
	"fmt"

	"khelp/internal/color"
	"khelp/internal/kubeconfig"

	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"
)

var listOutput string

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List all available contexts",
		Long: `Lists every context in the kubeconfig. The current context is marked
with an asterisk. Use -o wide for a table that also shows the cluster and
user each context points at.`,
		Args: cobra.NoArgs,
		RunE: runList,
	}
	cmd.Flags().StringVarP(&listOutput, "output", "o", "", "output format: wide")
	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := loadKubeconfig()
	if err != nil {
		return err
	}

	switch listOutput {
	case "":
		printContextList(cmd, cfg)
		return nil
	case "wide":
		printContextTable(cmd, cfg)
		return nil
	default:
		return fmt.Errorf("unsupported output format %q (supported: wide)", listOutput)
	}
}

func printContextList(cmd *cobra.Command, cfg *kubeconfig.Config) {
	if len(cfg.Contexts) == 0 {
		writeln(cmd, color.WarningStyle.Render("No contexts found in kubeconfig"))
		return
	}

	writeln(cmd, color.HeaderStyle.Render("Kubernetes available contexts:"))
	writeln(cmd, "------------------------------")
	for _, c := range cfg.Contexts {
		line := fmt.Sprintf("  %s", c.Name)
		if c.Name == cfg.CurrentContext {
			line = color.SuccessStyle.Render(fmt.Sprintf("%s %s", color.IconCurrent, c.Name))
		}
		if c.Context.Namespace != "" {
			line += color.SubtleStyle.Render(fmt.Sprintf(" (namespace: %s)", c.Context.Namespace))
		}
		writeln(cmd, line)
	}
}

func printContextTable(cmd *cobra.Command, cfg *kubeconfig.Config) {
	table := uitable.New()
	table.MaxColWidth = 60
	table.AddRow("CURRENT", "NAME", "CLUSTER", "USER", "NAMESPACE")
	for _, c := range cfg.Contexts {
		marker := ""
		if c.Name == cfg.CurrentContext {
			marker = color.IconCurrent
		}
		table.AddRow(marker, c.Name, c.Context.Cluster, c.Context.User, c.Context.Namespace)
	}
	writeln(cmd, table.String())
}
