package controller

import (
	"stlcctl/internal/tui/model"
	"stlcctl/internal/tui/view"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

const controllerDispatchSubsystem = "ControllerDispatch"

// mainControllerDispatch routes every Bubble Tea message to its handler and
// refreshes the viewports afterwards.
func mainControllerDispatch(m *model.Model, msg tea.Msg) (*model.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg.(type) {
	case spinner.TickMsg, tea.MouseMsg, model.NewLogEntryMsg:
	default:
		LogDebug(m, controllerDispatchSubsystem, "Received msg: %T", msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		m, cmd = handleKeyMsg(m, msg)
		cmds = append(cmds, cmd)

	case tea.WindowSizeMsg:
		m = handleWindowSizeMsg(m, msg)

	case model.SubmissionResolvedMsg:
		m, cmd = handleSubmissionResolved(m, msg)
		cmds = append(cmds, cmd)

	case model.FileLoadedMsg:
		m, cmd = handleFileLoaded(m, msg)
		cmds = append(cmds, cmd)

	case model.CopyExpiredMsg:
		if m.Session.ExpireCopy(msg.Token) {
			m.ResultsDirty = true
		}

	case model.ExportDoneMsg:
		m, cmd = handleExportDone(m, msg)
		cmds = append(cmds, cmd)

	case model.ClearStatusBarMsg:
		m.StatusBarMessage = ""
		if m.StatusBarClearCancel != nil {
			close(m.StatusBarClearCancel)
			m.StatusBarClearCancel = nil
		}

	case model.NewLogEntryMsg:
		model.AddRawLineToActivityLog(m, view.FormatLogLine(msg.Entry))
		cmds = append(cmds, model.ListenForLogEntriesCmd(m.LogChannel))

	case spinner.TickMsg:
		m.Spinner, cmd = m.Spinner.Update(msg)
		cmds = append(cmds, cmd)

	case tea.MouseMsg:
		if m.CurrentAppMode == model.ModeLogOverlay {
			m.LogViewport, cmd = m.LogViewport.Update(msg)
		} else {
			m.ResultsViewport, cmd = m.ResultsViewport.Update(msg)
		}
		cmds = append(cmds, cmd)

	default:
		// Cursor blink and other widget-internal messages.
		if field, ok := m.FocusedField(); ok {
			m.Inputs[field], cmd = m.Inputs[field].Update(msg)
			cmds = append(cmds, cmd)
		}
		if m.CurrentAppMode == model.ModeFilePrompt {
			m.FileInput, cmd = m.FileInput.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	refreshViewports(m)
	return m, tea.Batch(cmds...)
}

// refreshViewports re-renders viewport content whose source changed.
func refreshViewports(m *model.Model) {
	if m.ActivityLogDirty || m.LogViewportLastWidth != m.LogViewport.Width {
		atBottom := m.LogViewport.AtBottom()
		m.LogViewport.SetContent(view.PrepareLogContent(m.ActivityLog, m.LogViewport.Width))
		if atBottom {
			m.LogViewport.GotoBottom()
		}
		m.LogViewportLastWidth = m.LogViewport.Width
		m.ActivityLogDirty = false
	}

	// The form above the results changes height as sections open, so the
	// viewport is resized on every pass.
	width, height := view.ResultsViewportSize(m)
	if width != m.ResultsViewport.Width || height != m.ResultsViewport.Height {
		m.ResultsViewport.Width = width
		m.ResultsViewport.Height = height
		m.ResultsDirty = true
	}

	if m.ResultsDirty {
		content, offsets := view.RenderResults(m, m.ResultsViewport.Width)
		m.ResultsViewport.SetContent(content)
		if m.Focus == model.FocusResults && m.ResultCursor < len(offsets) {
			ensureVisible(m, offsets[m.ResultCursor])
		}
		m.ResultsDirty = false
	}
}

func ensureVisible(m *model.Model, line int) {
	vp := &m.ResultsViewport
	if line < vp.YOffset || line >= vp.YOffset+vp.Height {
		vp.SetYOffset(line)
	}
}
