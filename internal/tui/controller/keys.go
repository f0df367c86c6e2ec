package controller

import (
	"strings"

	"stlcctl/internal/stlc"
	"stlcctl/internal/tui/model"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

const keySubsystem = "KeyHandler"

func handleKeyMsg(m *model.Model, msg tea.KeyMsg) (*model.Model, tea.Cmd) {
	if key.Matches(msg, m.Keys.Quit) {
		m.CurrentAppMode = model.ModeQuitting
		return m, tea.Quit
	}

	switch m.CurrentAppMode {
	case model.ModeHelpOverlay:
		if key.Matches(msg, m.Keys.Esc, m.Keys.Help) {
			m.CurrentAppMode = m.LastAppMode
		}
		return m, nil
	case model.ModeLogOverlay:
		if key.Matches(msg, m.Keys.Esc, m.Keys.ToggleLog) {
			m.CurrentAppMode = m.LastAppMode
			return m, nil
		}
		var cmd tea.Cmd
		m.LogViewport, cmd = m.LogViewport.Update(msg)
		return m, cmd
	case model.ModeFilePrompt:
		return handleFilePromptKey(m, msg)
	}

	switch {
	case key.Matches(msg, m.Keys.Help):
		m.LastAppMode = m.CurrentAppMode
		m.CurrentAppMode = model.ModeHelpOverlay
		return m, nil
	case key.Matches(msg, m.Keys.ToggleLog):
		m.LastAppMode = m.CurrentAppMode
		m.CurrentAppMode = model.ModeLogOverlay
		m.LogViewport.GotoBottom()
		return m, nil
	case key.Matches(msg, m.Keys.NextField):
		return m, focusAndRefresh(m, 1)
	case key.Matches(msg, m.Keys.PrevField):
		return m, focusAndRefresh(m, -1)
	case key.Matches(msg, m.Keys.Submit):
		return handleSubmit(m)
	case key.Matches(msg, m.Keys.OpenFile):
		m.LastAppMode = m.CurrentAppMode
		m.CurrentAppMode = model.ModeFilePrompt
		m.FileInput.SetValue("")
		return m, m.FileInput.Focus()
	case key.Matches(msg, m.Keys.CopyAll):
		return handleCopyAll(m)
	case key.Matches(msg, m.Keys.Export):
		return handleExport(m)
	}

	for i, binding := range m.Keys.Toggle {
		if key.Matches(msg, binding) {
			return handleToggleSection(m, stlc.InputFields[i])
		}
	}

	if m.Focus == model.FocusResults {
		return handleResultsKey(m, msg)
	}
	return handleInputKey(m, msg)
}

func focusAndRefresh(m *model.Model, delta int) tea.Cmd {
	cmd := m.CycleFocus(delta)
	m.ResultsDirty = true
	return cmd
}

// handleInputKey feeds the key to the focused text area and stores the
// result in the session. The widget is reset to the stored value so it
// never shows more than the form holds.
func handleInputKey(m *model.Model, msg tea.KeyMsg) (*model.Model, tea.Cmd) {
	field, ok := m.FocusedField()
	if !ok || !m.Focusable(m.Focus) {
		return m, nil
	}
	var cmd tea.Cmd
	m.Inputs[field], cmd = m.Inputs[field].Update(msg)
	value := m.Inputs[field].Value()
	if stored := m.Session.SetField(field, value); stored != value {
		m.Inputs[field].SetValue(stored)
	}
	return m, cmd
}

func handleToggleSection(m *model.Model, field stlc.InputField) (*model.Model, tea.Cmd) {
	m.Session.ToggleSection(field)
	LogDebug(m, keySubsystem, "Toggled section %s, open=%t", field, m.Session.SectionOpen(field))
	if m.Session.SectionOpen(field) {
		return m, m.SetFocus(int(field))
	}
	if m.Focus == int(field) {
		return m, focusAndRefresh(m, 1)
	}
	return m, nil
}

func handleResultsKey(m *model.Model, msg tea.KeyMsg) (*model.Model, tea.Cmd) {
	sections := m.Session.Sections()
	switch {
	case key.Matches(msg, m.Keys.Up):
		if m.ResultCursor > 0 {
			m.ResultCursor--
			m.ResultsDirty = true
		}
	case key.Matches(msg, m.Keys.Down):
		if m.ResultCursor < len(sections)-1 {
			m.ResultCursor++
			m.ResultsDirty = true
		}
	case key.Matches(msg, m.Keys.CopySection):
		if m.ResultCursor < len(sections) {
			return handleCopySection(m, sections[m.ResultCursor].Label)
		}
	default:
		var cmd tea.Cmd
		m.ResultsViewport, cmd = m.ResultsViewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

func handleFilePromptKey(m *model.Model, msg tea.KeyMsg) (*model.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.Keys.Esc):
		m.CurrentAppMode = model.ModeForm
		m.FileInput.Blur()
		return m, nil
	case key.Matches(msg, m.Keys.Confirm):
		path := strings.TrimSpace(m.FileInput.Value())
		m.CurrentAppMode = model.ModeForm
		m.FileInput.Blur()
		if path == "" {
			return m, nil
		}
		LogInfo(keySubsystem, "Loading requirements from %s", path)
		return m, model.LoadFileCmd(path)
	}
	var cmd tea.Cmd
	m.FileInput, cmd = m.FileInput.Update(msg)
	return m, cmd
}
