package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"khelp/internal/color"
	"khelp/internal/kubeconfig"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"
)

var (
	exportOutput string
	exportCopy   bool
)

// For mocking in tests
var clipboardWrite = clipboard.WriteAll

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export [context...]",
		Short: "Export contexts as a standalone kubeconfig",
		Long: `Writes a kubeconfig holding only the selected contexts and the clusters
and users they use. Without arguments the contexts are picked interactively;
a kubeconfig with a single context exports it directly. The first selected
context becomes current-context of the exported document.

  khelp export prod staging > team.yaml
  khelp export prod -o json --copy`,
		ValidArgsFunction: completeContextNames,
		RunE:              runExport,
	}
	cmd.Flags().StringVarP(&exportOutput, "output", "o", "yaml", "output format: yaml or json")
	cmd.Flags().BoolVar(&exportCopy, "copy", false, "copy the exported document to the clipboard instead of printing it")
	return cmd
}

func runExport(cmd *cobra.Command, args []string) error {
	if exportOutput != "yaml" && exportOutput != "json" {
		return fmt.Errorf("unsupported output format %q (supported: yaml, json)", exportOutput)
	}

	cfg, err := loadKubeconfig()
	if err != nil {
		return err
	}

	names := args
	if len(names) == 0 {
		if names, err = selectExportContexts(cfg); err != nil {
			return err
		}
	}

	exported, err := kubeconfig.Extract(cfg, names)
	if err != nil {
		return err
	}
	data, err := renderExport(exported, exportOutput)
	if err != nil {
		return err
	}

	if exportCopy {
		if err := clipboardWrite(string(data)); err != nil {
			return fmt.Errorf("failed to copy to clipboard: %w", err)
		}
		fmt.Fprintln(cmd.ErrOrStderr(), color.Successf("Copied %d context(s) to the clipboard", len(exported.Contexts)))
		return nil
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func selectExportContexts(cfg *kubeconfig.Config) ([]string, error) {
	names := cfg.ContextNames()
	switch len(names) {
	case 0:
		return nil, errors.New("no contexts available to export")
	case 1:
		return names, nil
	}
	selected, err := sess.prompter.MultiSelect("Select contexts to export (Space to select, Enter to confirm)", names)
	if err != nil {
		return nil, err
	}
	if len(selected) == 0 {
		return nil, errors.New("no contexts selected")
	}
	return selected, nil
}

func renderExport(cfg *kubeconfig.Config, format string) ([]byte, error) {
	data, err := kubeconfig.Marshal(cfg)
	if err != nil {
		return nil, err
	}
	if format == "yaml" {
		return data, nil
	}

	raw, err := yaml.YAMLToJSON(data)
	if err != nil {
		return nil, fmt.Errorf("failed to convert kubeconfig to JSON: %w", err)
	}
	var out bytes.Buffer
	if err := json.Indent(&out, raw, "", "  "); err != nil {
		return nil, fmt.Errorf("failed to format JSON: %w", err)
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}
