package controller

import (
	"stlcctl/internal/color"
	"stlcctl/internal/tui/model"
	"stlcctl/internal/tui/view"

	tea "github.com/charmbracelet/bubbletea"
)

const minInputWidth = 20

// handleWindowSizeMsg resizes the widgets to the terminal.
func handleWindowSizeMsg(m *model.Model, msg tea.WindowSizeMsg) *model.Model {
	m.Width = msg.Width
	m.Height = msg.Height

	for i := range m.Inputs {
		m.Inputs[i].SetWidth(max(msg.Width-2, minInputWidth))
	}
	m.FileInput.Width = max(msg.Width-color.OverlayStyle.GetHorizontalFrameSize()-4, minInputWidth)
	m.Help.Width = msg.Width

	m.ResultsDirty = true

	m.LogViewport.Width, m.LogViewport.Height = view.LogOverlaySize(msg.Width, msg.Height)
	return m
}
