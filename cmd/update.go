package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"khelp/internal/color"
	"khelp/pkg/logging"

	"github.com/creativeprojects/go-selfupdate"
	"github.com/spf13/cobra"
)

// githubRepoSlug is the owner/repo whose releases are checked. It is set from
// the updateRepository setting.
var githubRepoSlug = ""

var updateApply bool

// release is the part of a GitHub release the update command needs.
type release struct {
	Version   string
	URL       string
	AssetURL  string
	AssetName string
	// Newer is set when the release is newer than the running version.
	Newer bool
}

// For mocking in tests
var (
	checkLatest = func(ctx context.Context, slug, current string) (*release, error) {
		latest, found, err := selfupdate.DetectLatest(ctx, selfupdate.ParseSlug(slug))
		if err != nil {
			return nil, fmt.Errorf("error occurred while detecting version: %w", err)
		}
		if !found {
			return nil, fmt.Errorf("latest version for %s could not be found from github repository", slug)
		}
		return &release{
			Version:   latest.Version(),
			URL:       latest.URL,
			AssetURL:  latest.AssetURL,
			AssetName: latest.AssetName,
			Newer:     !latest.LessOrEqual(current),
		}, nil
	}
	applyLatest = func(ctx context.Context, r *release) error {
		exe, err := selfupdate.ExecutablePath()
		if err != nil {
			return fmt.Errorf("could not locate executable path: %w", err)
		}
		return selfupdate.UpdateTo(ctx, r.AssetURL, r.AssetName, exe)
	}
)

func newSelfUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "update",
		Aliases: []string{"self-update"},
		Short:   "Check for a newer khelp release",
		Long: `Checks for the latest release of khelp on GitHub and reports whether
it is newer than the running version. With --apply the running executable
is replaced by the latest release.

The repository is taken from the updateRepository setting.`,
		Args: cobra.NoArgs,
		RunE: runSelfUpdate,
	}
	cmd.Flags().BoolVar(&updateApply, "apply", false, "download and install the latest release")
	return cmd
}

func runSelfUpdate(cmd *cobra.Command, args []string) error {
	currentVersion := rootCmd.Version
	if currentVersion == "" || currentVersion == "dev" {
		return errors.New("cannot self-update a development version")
	}

	if sess != nil && sess.settings.UpdateRepository != "" {
		githubRepoSlug = sess.settings.UpdateRepository
	}
	if githubRepoSlug == "" {
		return errors.New("no update repository configured; set updateRepository (owner/repo) in ~/.config/khelp/config.yaml")
	}

	var out io.Writer = os.Stdout
	ctx := context.Background()
	if cmd != nil {
		out = cmd.OutOrStdout()
		if cmd.Context() != nil {
			ctx = cmd.Context()
		}
	}

	fmt.Fprintln(out, "Checking for updates...")
	logging.Debug(subsystem, "Checking %s for releases newer than %s", githubRepoSlug, currentVersion)
	latest, err := checkLatest(ctx, githubRepoSlug, currentVersion)
	if err != nil {
		return fmt.Errorf("failed to check for updates: %w", err)
	}

	if !latest.Newer {
		fmt.Fprintln(out, color.SuccessStyle.Render(fmt.Sprintf("Already at the latest version (%s).", currentVersion)))
		return nil
	}

	if !updateApply {
		fmt.Fprintln(out, color.SuccessStyle.Bold(true).Render(fmt.Sprintf("A new version of khelp is available: %s", latest.Version)))
		if latest.URL != "" {
			fmt.Fprintf(out, "Release notes: %s\n", latest.URL)
		}
		fmt.Fprintf(out, "Run %s to update\n", color.AccentStyle.Render("khelp update --apply"))
		return nil
	}

	fmt.Fprintf(out, "Updating to version %s...\n", latest.Version)
	if err := applyLatest(ctx, latest); err != nil {
		return fmt.Errorf("failed to update: %w", err)
	}
	fmt.Fprintln(out, color.Successf("Successfully updated to version %s", latest.Version))
	return nil
}
