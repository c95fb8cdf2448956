package cmd

import (
	"fmt"
	"strings"

	"khelp/internal/color"
	"khelp/internal/kubeconfig"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var addOpts kubeconfig.ImportOptions

func newAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "add <file>",
		Aliases: []string{"import"},
		Short:   "Merge another kubeconfig into yours",
		Long: `Adds the contexts, clusters and users of another kubeconfig file to
yours. Entries whose names already exist are skipped unless --rename or
--overwrite is given:

  --rename     keep both, adding the incoming entry as <name>-imported
               (or <name>-imported-2, -3, ... when that is taken too)
  --overwrite  replace the existing entry in place

--overwrite wins when both are given. Contexts follow their renamed
cluster and user. Nothing is written when nothing changes.`,
		Args: cobra.ExactArgs(1),
		RunE: runAdd,
	}
	cmd.Flags().BoolVarP(&addOpts.Rename, "rename", "r", false, "add conflicting entries under a new name")
	cmd.Flags().BoolVar(&addOpts.Overwrite, "overwrite", false, "replace conflicting entries")
	cmd.Flags().BoolVarP(&addOpts.Switch, "switch", "s", false, "switch to the first imported context")
	return cmd
}

func runAdd(cmd *cobra.Command, args []string) error {
	opts := addOpts
	opts.Backup = sess.backup

	result, err := kubeconfig.Import(sess.kubeconfigPath, args[0], opts)
	if err != nil {
		return err
	}

	printImportSummary(cmd, result.Summary)
	if !result.Saved {
		writeln(cmd)
		writeln(cmd, color.Tipf("Use %s to rename conflicting entries or %s to overwrite them.",
			color.WarningStyle.Render("--rename"), color.WarningStyle.Render("--overwrite")))
		return nil
	}
	if result.SwitchedTo != "" {
		writeln(cmd)
		writeln(cmd, color.Successf("Switched to context: %s", result.SwitchedTo))
	} else if opts.Switch {
		writeln(cmd, color.Warnf("No new contexts were added to switch to"))
	}
	return nil
}

func printImportSummary(cmd *cobra.Command, s *kubeconfig.ImportSummary) {
	writeln(cmd)
	writeln(cmd, color.HeaderStyle.Render("Import Summary:"))
	writeln(cmd, color.SuccessStyle.Render("───────────────"))

	kinds := []struct {
		label   string
		outcome kubeconfig.Outcome
	}{
		{"context(s)", s.Contexts},
		{"cluster(s)", s.Clusters},
		{"user(s)", s.Users},
	}
	for _, k := range kinds {
		printSummaryLine(cmd, color.SuccessStyle, color.IconCheck, "Added", k.label, k.outcome.Added)
	}
	for _, k := range kinds {
		printSummaryLine(cmd, color.WarningStyle, color.IconRefresh, "Overwritten", k.label, k.outcome.Overwritten)
	}
	for _, k := range kinds {
		printSummaryLine(cmd, color.SubtleStyle, color.IconSkip, "Skipped", k.label, k.outcome.Skipped)
	}
}

func printSummaryLine(cmd *cobra.Command, style lipgloss.Style, icon, verb, label string, names []string) {
	if len(names) == 0 {
		return
	}
	prefix := style.Render(color.IconText(icon, verb))
	writeln(cmd, fmt.Sprintf("%s %s: %s", prefix, label, strings.Join(names, ", ")))
}
