package cmd

import (
	"khelp/internal/color"
	"khelp/internal/completion"

	"github.com/spf13/cobra"
)

var completionsInstall bool

func newCompletionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completions [bash|zsh|fish|powershell]",
		Short: "Generate or install shell completions",
		Long: `Prints the completion script for the given shell. Without a shell the
one in $SHELL is used. With --install the script is written to the shell's
completion directory and, for bash and zsh, hooked into the rc file.

  source <(khelp completions bash)
  khelp completions zsh --install`,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
		RunE:      runCompletions,
	}
	cmd.Flags().BoolVar(&completionsInstall, "install", false, "install the completion script for your shell")
	return cmd
}

func runCompletions(cmd *cobra.Command, args []string) error {
	var (
		shell completion.Shell
		err   error
	)
	if len(args) == 1 && args[0] != "" {
		shell, err = completion.ParseShell(args[0])
	} else {
		shell, err = completion.DetectShell()
	}
	if err != nil {
		return err
	}

	root := cmd.Root()
	if !completionsInstall {
		return completion.Generate(root, shell, cmd.OutOrStdout())
	}

	inst, err := completion.Install(root, shell)
	if err != nil {
		return err
	}
	writeln(cmd, color.Successf("Installed %s completions to %s", inst.Shell, inst.Script))
	if inst.RCFile != "" {
		writeln(cmd, color.Successf("Updated %s", inst.RCFile))
	}
	writef(cmd, "Restart your shell or run %s to enable them.\n", color.AccentStyle.Render(inst.Activate))
	return nil
}
