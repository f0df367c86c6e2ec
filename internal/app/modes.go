package app

import (
	"context"
	"errors"
	"fmt"
	"os"

	"stlcctl/internal/color"
	"stlcctl/internal/export"
	"stlcctl/internal/stlc"
	"stlcctl/internal/tui/controller"
	"stlcctl/internal/tui/model"
	"stlcctl/pkg/logging"
)

// ErrNoRequirements is returned by a headless run without requirements.
var ErrNoRequirements = errors.New("requirements are required: pass --requirements or --requirements-file")

// runCLIMode performs one submission and prints the displayed sections.
func runCLIMode(ctx context.Context, config *Config, services *Services) error {
	opts := config.Run
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}

	session := stlc.NewSession(services.Client, services.Clipboard)
	if err := fillSession(session, opts); err != nil {
		return err
	}
	if !session.CanSubmit() {
		return ErrNoRequirements
	}

	logging.Info("CLI", "Submitting requirements to %s", services.Client.BaseURL())
	outcome, _ := session.Submit(ctx)
	if outcome.Phase == stlc.PhaseFailed {
		return fmt.Errorf("STLC generation failed: %s", outcome.Reason)
	}

	sections := session.Sections()
	if len(sections) == 0 {
		logging.Warn("CLI", "The service returned no sections")
		return nil
	}
	if _, err := fmt.Fprintln(out, stlc.FormatAll(sections)); err != nil {
		return fmt.Errorf("failed to write result: %w", err)
	}

	if opts.CopyAll {
		if _, _, err := session.CopyAll(); err != nil {
			logging.Warn("CLI", "Could not copy the result to the clipboard: %v", err)
		} else {
			logging.Info("CLI", "Copied %d sections to the clipboard", len(sections))
		}
	}
	if opts.ExportDir != "" {
		if _, err := export.Write(opts.ExportDir, sections); err != nil {
			return fmt.Errorf("failed to export report: %w", err)
		}
	}
	return nil
}

// fillSession loads the run inputs into the session the way the form does:
// the requirements file goes through file ingestion, inline requirements
// win over it, and optional fields are read verbatim.
func fillSession(session *stlc.Session, opts RunOptions) error {
	if opts.RequirementsFile != "" {
		if err := session.IngestFile(stlc.LocalFile{Path: opts.RequirementsFile}); err != nil {
			return fmt.Errorf("%s: %w", session.Notice().Text, err)
		}
	}
	if opts.Requirements != "" {
		session.SetField(stlc.FieldRequirements, opts.Requirements)
	}

	optional := []struct {
		field stlc.InputField
		path  string
	}{
		{stlc.FieldUserStories, opts.UserStoriesFile},
		{stlc.FieldCodeDiffs, opts.CodeDiffsFile},
		{stlc.FieldPreviousTestResults, opts.PreviousResultsFile},
	}
	for _, o := range optional {
		if o.path == "" {
			continue
		}
		data, err := os.ReadFile(o.path)
		if err != nil {
			return fmt.Errorf("failed to read %s for %s: %w", o.path, o.field.Label(), err)
		}
		session.SetField(o.field, string(data))
	}
	return nil
}

// runTUIMode executes the interactive terminal UI mode
func runTUIMode(ctx context.Context, config *Config, services *Services) error {
	logging.Info("CLI", "Starting TUI mode...")

	color.Initialize(color.ResolveDarkMode(config.StlcctlConfig.UI.ColorMode))

	logLevel := logging.LevelInfo
	if config.Debug {
		logLevel = logging.LevelDebug
	}
	logChan := logging.InitForTUI(logLevel)
	defer logging.CloseTUIChannel()

	p := controller.NewProgram(model.TUIConfig{
		DebugMode:    config.Debug,
		ColorMode:    config.StlcctlConfig.UI.ColorMode,
		Generator:    services.Client,
		Clipboard:    services.Clipboard,
		ServiceURL:   services.Client.BaseURL(),
		CopyFeedback: config.StlcctlConfig.UI.CopyFeedback,
		ExportDir:    config.StlcctlConfig.Export.Dir,
		LogChannel:   logChan,
	})

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			p.Quit()
		case <-done:
		}
	}()

	if _, err := p.Run(); err != nil {
		logging.Error("TUI-Lifecycle", err, "Error running TUI program")
		return err
	}
	logging.Info("TUI-Lifecycle", "TUI exited.")
	return nil
}
