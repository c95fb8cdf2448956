package cmd

import (
	"bytes"
	"errors"

	"khelp/internal/color"
	"khelp/internal/editor"
	"khelp/internal/kubeconfig"
	"khelp/pkg/logging"

	"github.com/spf13/cobra"
)

// For mocking in tests
var editBuffer = func(command string, data []byte) ([]byte, error) {
	return editor.Resolve(command).EditBytes(data)
}

func newEditCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "edit [context]",
		Short: "Edit a context in your editor",
		Long: `Opens the context, its cluster and its user in an editor. The entries
are shown as three YAML documents; saved changes are written back to the
kubeconfig. Names cannot be changed here, use rename for that.

The editor is taken from the editor setting, then $EDITOR, then $VISUAL.`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: firstContextArg,
		RunE:              runEdit,
	}
}

func runEdit(cmd *cobra.Command, args []string) error {
	cfg, err := loadKubeconfig()
	if err != nil {
		return err
	}
	if len(cfg.Contexts) == 0 {
		return errors.New("no contexts available to edit")
	}

	var name string
	if len(args) == 1 {
		name = args[0]
	} else {
		name, err = sess.prompter.Select("Select a context to edit", cfg.ContextNames(), cfg.CurrentContext)
		if err != nil {
			return err
		}
	}
	logging.Debug(subsystem, "Selected context to edit: %s", name)

	edit, err := kubeconfig.NewEditSession(cfg, name)
	if err != nil {
		return err
	}
	original, err := edit.Render(cfg)
	if err != nil {
		return err
	}

	edited, err := editBuffer(sess.settings.Editor, original)
	if err != nil {
		return err
	}
	if bytes.Equal(edited, original) {
		writeln(cmd, color.SubtleStyle.Render("No changes made"))
		return nil
	}

	edits, err := edit.Parse(edited)
	if err != nil {
		return err
	}

	// The editor may have been open for a while; apply to what is on disk now.
	current, err := loadKubeconfig()
	if err != nil {
		return err
	}
	if err := edit.Apply(current, edits); err != nil {
		return err
	}
	if err := saveKubeconfig(current); err != nil {
		return err
	}
	writeln(cmd, color.Successf("Context '%s' configuration updated", name))
	return nil
}
