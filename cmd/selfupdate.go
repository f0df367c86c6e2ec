package cmd

import (
	"fmt"

	"stlcctl/internal/config"

	"github.com/creativeprojects/go-selfupdate"
	"github.com/spf13/cobra"
)

// githubRepoSlug is used when the configuration names no release repository.
const githubRepoSlug = "stlcctl/stlcctl"

func newSelfUpdateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "self-update",
		Short: "Update stlcctl to the latest release",
		Long: `Checks for the latest release of stlcctl on GitHub and replaces the
running binary with it when it is newer than the current version.

The release repository can be changed with update.repository in the
configuration file.`,
		Args: cobra.NoArgs,
		RunE: runSelfUpdate,
	}
}

func runSelfUpdate(cmd *cobra.Command, args []string) error {
	currentVersion := rootCmd.Version
	if currentVersion == "" || currentVersion == "dev" {
		return fmt.Errorf("cannot self-update a development version")
	}

	ctx := commandContext(cmd)
	slug := updateRepository()

	latest, found, err := selfupdate.DetectLatest(ctx, selfupdate.ParseSlug(slug))
	if err != nil {
		return fmt.Errorf("error occurred while detecting version: %w", err)
	}
	if !found {
		return fmt.Errorf("latest version for %s could not be found in %s", currentVersion, slug)
	}

	if latest.LessOrEqual(currentVersion) {
		fmt.Printf("Current version (%s) is the latest.\n", currentVersion)
		return nil
	}

	exe, err := selfupdate.ExecutablePath()
	if err != nil {
		return fmt.Errorf("could not locate executable path: %w", err)
	}

	fmt.Printf("Updating stlcctl from %s to %s...\n", currentVersion, latest.Version())
	if err := selfupdate.UpdateTo(ctx, latest.AssetURL, latest.AssetName, exe); err != nil {
		return fmt.Errorf("error occurred while updating binary: %w", err)
	}
	fmt.Printf("Successfully updated to version %s\n", latest.Version())
	return nil
}

// updateRepository reads update.repository, falling back to githubRepoSlug
// when no configuration can be loaded.
func updateRepository() string {
	var (
		cfg config.StlcctlConfig
		err error
	)
	if rootConfigPath != "" {
		cfg, err = config.LoadConfigFromPath(rootConfigPath)
	} else {
		cfg, err = config.LoadConfig()
	}
	if err != nil || cfg.Update.Repository == "" {
		return githubRepoSlug
	}
	return cfg.Update.Repository
}
