package controller

import (
	"fmt"
	"time"

	"stlcctl/internal/stlc"
	"stlcctl/internal/tui/model"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	statusShort = 3 * time.Second
	statusLong  = 5 * time.Second
)

// handleSubmit opens the submission synchronously, so the form shows
// InProgress before the request leaves, and sends the request as a command.
func handleSubmit(m *model.Model) (*model.Model, tea.Cmd) {
	req, ok := m.Session.BeginSubmit()
	if !ok {
		if m.Session.Outcome().Phase == stlc.PhaseInProgress {
			return m, m.SetStatusMessage("Generation already in progress", model.StatusBarWarning, statusShort)
		}
		return m, m.SetStatusMessage("Enter the software requirements first", model.StatusBarWarning, statusShort)
	}
	m.ResultCursor = 0
	m.ResultsDirty = true
	if m.Focus == model.FocusResults {
		m.CycleFocus(1)
	}
	LogInfo(controllerSubsystem, "Submitting %d characters of requirements", m.Session.Form().RequirementsLength())
	return m, tea.Batch(model.SubmitCmd(m.Session, req), m.Spinner.Tick)
}

func handleSubmissionResolved(m *model.Model, msg model.SubmissionResolvedMsg) (*model.Model, tea.Cmd) {
	outcome := m.Session.ResolveSubmit(msg.Bundle, msg.Err)
	m.ResultCursor = 0
	m.ResultsViewport.GotoTop()
	m.ResultsDirty = true

	if outcome.Phase == stlc.PhaseFailed {
		return m, m.SetStatusMessage("Generation failed", model.StatusBarError, statusLong)
	}
	n := len(m.Session.Sections())
	if n == 0 {
		return m, m.SetStatusMessage("Generation finished without results", model.StatusBarWarning, statusLong)
	}
	return m, m.SetStatusMessage(fmt.Sprintf("Generated %d sections", n), model.StatusBarSuccess, statusShort)
}

func handleFileLoaded(m *model.Model, msg model.FileLoadedMsg) (*model.Model, tea.Cmd) {
	if err := m.Session.IngestFile(msg.File); err != nil {
		LogError(controllerSubsystem, err, "Could not load %s", msg.File.Name())
		return m, nil
	}
	m.SyncInputs()
	return m, m.SetStatusMessage(fmt.Sprintf("Loaded %s", msg.File.Name()), model.StatusBarSuccess, statusShort)
}

func handleCopySection(m *model.Model, label string) (*model.Model, tea.Cmd) {
	token, err := m.Session.CopySection(label)
	if err != nil {
		LogError(controllerSubsystem, err, "Copy of %s failed", label)
		return m, m.SetStatusMessage(fmt.Sprintf("Copy failed: %v", err), model.StatusBarError, statusLong)
	}
	m.ResultsDirty = true
	return m, model.CopyExpireCmd(m.CopyFeedback, token)
}

func handleCopyAll(m *model.Model) (*model.Model, tea.Cmd) {
	token, ok, err := m.Session.CopyAll()
	if err != nil {
		LogError(controllerSubsystem, err, "Copy all failed")
		return m, m.SetStatusMessage(fmt.Sprintf("Copy failed: %v", err), model.StatusBarError, statusLong)
	}
	if !ok {
		return m, nil
	}
	m.ResultsDirty = true
	return m, model.CopyExpireCmd(m.CopyFeedback, token)
}

func handleExport(m *model.Model) (*model.Model, tea.Cmd) {
	sections := m.Session.Sections()
	if len(sections) == 0 {
		return m, m.SetStatusMessage("Nothing to export yet", model.StatusBarWarning, statusShort)
	}
	return m, model.ExportCmd(m.ExportDir, sections)
}

func handleExportDone(m *model.Model, msg model.ExportDoneMsg) (*model.Model, tea.Cmd) {
	if msg.Err != nil {
		LogError(controllerSubsystem, msg.Err, "Export failed")
		return m, m.SetStatusMessage(fmt.Sprintf("Export failed: %v", msg.Err), model.StatusBarError, statusLong)
	}
	m.LastExportResult = msg.Result.Dir
	return m, m.SetStatusMessage(fmt.Sprintf("Exported %d files to %s", len(msg.Result.Files), msg.Result.Dir), model.StatusBarSuccess, statusLong)
}
