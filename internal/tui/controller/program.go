package controller

import (
	"stlcctl/internal/tui/model"

	tea "github.com/charmbracelet/bubbletea"
)

// NewProgram creates the Bubble Tea program for the form.
func NewProgram(cfg model.TUIConfig) *tea.Program {
	app := NewAppModel(model.InitialModel(cfg))
	return tea.NewProgram(app, tea.WithAltScreen())
}
