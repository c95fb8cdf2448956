package cmd

import (
	"fmt"

	"khelp/internal/color"
	"khelp/internal/kube"
	"khelp/internal/kubeconfig"

	"github.com/spf13/cobra"
)

// For mocking in tests
var validateKubeconfig = kube.Validate

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the kubeconfig for problems",
		Long: `Checks the kubeconfig the way kubectl would, then looks for contexts that
refer to missing clusters or users. Clusters and users that no context uses
are reported as warnings; remove them with cleanup.`,
		Args: cobra.NoArgs,
		RunE: runValidate,
	}
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := loadKubeconfig()
	if err != nil {
		return err
	}

	var problems []string
	for _, err := range validateKubeconfig(sess.kubeconfigPath) {
		problems = append(problems, err.Error())
	}
	for _, ref := range kubeconfig.DanglingReferences(cfg) {
		problems = append(problems, fmt.Sprintf("context '%s' refers to missing %s '%s'", ref.Context, ref.Kind, ref.Name))
	}
	problems = dedupe(problems)

	for _, p := range problems {
		writeln(cmd, color.ErrorStyle.Render(color.IconText(color.IconCross, p)))
	}

	orphans := kubeconfig.FindOrphans(cfg)
	for _, c := range orphans.Clusters {
		writeln(cmd, color.Warnf("cluster '%s' is not used by any context", c))
	}
	for _, u := range orphans.Users {
		writeln(cmd, color.Warnf("user '%s' is not used by any context", u))
	}

	if len(problems) > 0 {
		return fmt.Errorf("kubeconfig %s has %d problem(s)", sess.kubeconfigPath, len(problems))
	}
	summary := fmt.Sprintf("%s is valid (%d contexts, %d clusters, %d users)",
		sess.kubeconfigPath, len(cfg.Contexts), len(cfg.Clusters), len(cfg.Users))
	writeln(cmd, color.Successf("%s", summary))
	if !orphans.Empty() {
		writeln(cmd, color.Tipf("Run %s to remove unused entries.", color.AccentStyle.Render("khelp cleanup")))
	}
	return nil
}

func dedupe(lines []string) []string {
	seen := make(map[string]bool, len(lines))
	out := lines[:0]
	for _, l := range lines {
		if seen[l] {
			continue
		}
		seen[l] = true
		out = append(out, l)
	}
	return out
}
