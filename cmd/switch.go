package cmd

import (
	"errors"

	"khelp/internal/color"
	"khelp/internal/kubeconfig"

	"github.com/spf13/cobra"
)

func newSwitchCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "switch [context]",
		Aliases: []string{"use"},
		Short:   "Switch to a different context",
		Long: `Makes the given context current. Without an argument an interactive
list of contexts is shown, with the cursor on the current one.`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: firstContextArg,
		RunE:              runSwitch,
	}
}

func runSwitch(cmd *cobra.Command, args []string) error {
	cfg, err := loadKubeconfig()
	if err != nil {
		return err
	}
	if len(cfg.Contexts) == 0 {
		return errors.New("no contexts available to switch to")
	}

	var name string
	if len(args) == 1 {
		name = args[0]
	} else {
		name, err = sess.prompter.Select("Select a context to switch to", cfg.ContextNames(), cfg.CurrentContext)
		if err != nil {
			return err
		}
	}

	if err := kubeconfig.SetCurrent(cfg, name); err != nil {
		return err
	}
	if err := saveKubeconfig(cfg); err != nil {
		return err
	}
	writeln(cmd, color.Successf("Switched to context: %s", name))
	return nil
}
