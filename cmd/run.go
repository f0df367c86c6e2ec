package cmd

import (
	"stlcctl/internal/app"

	"github.com/spf13/cobra"
)

var (
	runRequirements        string
	runRequirementsFile    string
	runUserStoriesFile     string
	runCodeDiffsFile       string
	runPreviousResultsFile string
	runCopyAll             bool
	runExport              bool
	runExportDir           string
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Submit one STLC generation request without the interactive form",
		Long: `Submits requirements and optional context to the STLC generation service
and prints every returned section to stdout in display order.

Requirements are mandatory, either inline (--requirements) or from a plain
text file (--requirements-file). The inline value wins when both are given.
The other inputs are read from files as-is.

Examples:
  stlcctl run --requirements-file reqs.txt
  stlcctl run --requirements "Users can reset their password" --code-diffs-file change.diff --export`,
		Args: cobra.NoArgs,
		RunE: runRun,
	}

	cmd.Flags().StringVar(&runRequirements, "requirements", "", "Requirements text")
	cmd.Flags().StringVar(&runRequirementsFile, "requirements-file", "", "Plain text file holding the requirements")
	cmd.Flags().StringVar(&runUserStoriesFile, "user-stories-file", "", "File holding user stories")
	cmd.Flags().StringVar(&runCodeDiffsFile, "code-diffs-file", "", "File holding code diffs")
	cmd.Flags().StringVar(&runPreviousResultsFile, "previous-results-file", "", "File holding previous test results")
	cmd.Flags().BoolVar(&runCopyAll, "copy", false, "Copy the formatted result to the clipboard")
	cmd.Flags().BoolVar(&runExport, "export", false, "Export the result to the configured export directory")
	cmd.Flags().StringVar(&runExportDir, "export-dir", "", "Export the result below this directory")
	return cmd
}

func runRun(cmd *cobra.Command, args []string) error {
	application, err := newApplication(true)
	if err != nil {
		return err
	}

	cfg := application.Config()
	exportDir := runExportDir
	if exportDir == "" && runExport {
		exportDir = cfg.StlcctlConfig.Export.Dir
	}
	cfg.Run = app.RunOptions{
		Requirements:        runRequirements,
		RequirementsFile:    runRequirementsFile,
		UserStoriesFile:     runUserStoriesFile,
		CodeDiffsFile:       runCodeDiffsFile,
		PreviousResultsFile: runPreviousResultsFile,
		CopyAll:             runCopyAll,
		ExportDir:           exportDir,
		Output:              cmd.OutOrStdout(),
	}
	return application.Run(commandContext(cmd))
}
