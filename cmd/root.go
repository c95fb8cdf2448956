package cmd

import (
	"fmt"
	"io"
	"os"

	"khelp/internal/color"
	"khelp/internal/config"
	"khelp/internal/kubeconfig"
	"khelp/internal/prompt"
	"khelp/pkg/logging"

	"github.com/spf13/cobra"
)

const subsystem = "CLI"

// globalFlags holds the persistent flags shared by every command.
type globalFlags struct {
	kubeconfig string
	debug      bool
	noColor    bool
	noBackup   bool
}

var globals globalFlags

// session is what PersistentPreRunE resolves before a command runs.
type session struct {
	settings       config.Settings
	kubeconfigPath string
	backup         bool
	prompter       prompt.Prompter
}

var sess *session

// For mocking in tests
var (
	loadSettings           = config.Load
	newPrompter            = func() prompt.Prompter { return prompt.NewTerminal() }
	logOutput    io.Writer = os.Stderr
)

// rootCmd represents the base command when called without any subcommands
var rootCmd *cobra.Command

func init() {
	rootCmd = newRootCmd()
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "khelp",
		Short: "Manage the contexts, clusters and users in your kubeconfig",
		Long: `khelp keeps your kubeconfig tidy.

It lists, switches, edits, exports, renames and deletes contexts, merges
other kubeconfig files into yours with explicit collision handling, and
removes clusters and users that no context uses any more.

Running khelp without a command lists the available contexts.`,
		// SilenceUsage is set to true to prevent printing usage message on errors
		// handled by us (e.g. unknown contexts, unreadable files)
		SilenceUsage:      true,
		Args:              cobra.NoArgs,
		PersistentPreRunE: setupSession,
		RunE:              runList,
	}
	cmd.CompletionOptions.DisableDefaultCmd = true

	flags := cmd.PersistentFlags()
	flags.StringVar(&globals.kubeconfig, "kubeconfig", "", "path to the kubeconfig file (default ~/.kube/config)")
	flags.BoolVar(&globals.debug, "debug", false, "enable debug logging")
	flags.BoolVar(&globals.noColor, "no-color", false, "disable colored output")
	flags.BoolVar(&globals.noBackup, "no-backup", false, "do not write a .bak copy before modifying the kubeconfig")

	cmd.Flags().StringVarP(&listOutput, "output", "o", "", "output format: wide")

	cmd.AddCommand(
		newListCmd(),
		newCurrentCmd(),
		newSwitchCmd(),
		newEditCmd(),
		newExportCmd(),
		newDeleteCmd(),
		newCleanupCmd(),
		newRenameCmd(),
		newAddCmd(),
		newValidateCmd(),
		newCompletionsCmd(),
		newSelfUpdateCmd(),
		newVersionCmd(),
	)
	return cmd
}

// SetVersion sets the version for the root command
func SetVersion(v string) {
	rootCmd.Version = v // Set cobra's version field as well
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	// Set up version template
	rootCmd.SetVersionTemplate(`{{printf "khelp version %s\n" .Version}}`)

	err := rootCmd.Execute()
	if err != nil {
		// Cobra prints the error, we just exit non-zero
		os.Exit(1)
	}
}

// setupSession initialises logging, colors and settings, then resolves the
// kubeconfig path: --kubeconfig, then the settings file, then ~/.kube/config.
func setupSession(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}

	level := logging.ParseLevel(settings.LogLevel)
	if globals.debug {
		level = logging.LevelDebug
	}
	logging.InitForCLI(level, logOutput)
	color.Initialize(globals.noColor)

	path := globals.kubeconfig
	if path == "" {
		path = settings.Kubeconfig
	}
	if path == "" {
		if path, err = kubeconfig.DefaultPath(); err != nil {
			return err
		}
	}
	if path, err = config.ExpandHome(path); err != nil {
		return err
	}

	sess = &session{
		settings:       settings,
		kubeconfigPath: path,
		backup:         settings.BackupEnabled() && !globals.noBackup,
		prompter:       newPrompter(),
	}
	logging.Debug(subsystem, "Using kubeconfig %s (backup: %t)", sess.kubeconfigPath, sess.backup)
	return nil
}

func loadKubeconfig() (*kubeconfig.Config, error) {
	return kubeconfig.Load(sess.kubeconfigPath)
}

func saveKubeconfig(cfg *kubeconfig.Config) error {
	return kubeconfig.Save(sess.kubeconfigPath, cfg, sess.backup)
}

// completeContextNames offers context names from the kubeconfig for
// positional arguments. It runs without PersistentPreRunE, so it resolves
// the path itself.
func completeContextNames(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	path := globals.kubeconfig
	if path == "" {
		if settings, err := loadSettings(); err == nil {
			path = settings.Kubeconfig
		}
	}
	if path == "" {
		var err error
		if path, err = kubeconfig.DefaultPath(); err != nil {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
	}
	if expanded, err := config.ExpandHome(path); err == nil {
		path = expanded
	}
	cfg, err := kubeconfig.Load(path)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	taken := make(map[string]bool, len(args))
	for _, a := range args {
		taken[a] = true
	}
	var names []string
	for _, name := range cfg.ContextNames() {
		if !taken[name] {
			names = append(names, name)
		}
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}

// firstContextArg limits completion to the first positional argument.
func firstContextArg(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return completeContextNames(cmd, args, toComplete)
}

func writef(cmd *cobra.Command, format string, args ...interface{}) {
	fmt.Fprintf(cmd.OutOrStdout(), format, args...)
}

func writeln(cmd *cobra.Command, args ...interface{}) {
	fmt.Fprintln(cmd.OutOrStdout(), args...)
}
