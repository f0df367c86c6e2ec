package model

import (
	"fmt"
	"time"

	"stlcctl/internal/stlc"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const defaultCopyFeedback = 2 * time.Second

var placeholders = [stlc.InputFieldCount]string{
	"Describe the software requirements...",
	"As a user, I want to...",
	"Paste a unified diff...",
	"Paste the output of the previous test run...",
}

// DefaultKeyMap returns a KeyMap with the default bindings used by the TUI.
func DefaultKeyMap() KeyMap {
	km := KeyMap{
		NextField: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next field"),
		),
		PrevField: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous field"),
		),
		Submit: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "generate"),
		),
		OpenFile: key.NewBinding(
			key.WithKeys("ctrl+o"),
			key.WithHelp("ctrl+o", "load requirements file"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("↑/k", "previous section"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("↓/j", "next section"),
		),
		CopySection: key.NewBinding(
			key.WithKeys("y", "enter"),
			key.WithHelp("y", "copy section"),
		),
		CopyAll: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("ctrl+y", "copy all"),
		),
		Export: key.NewBinding(
			key.WithKeys("ctrl+e"),
			key.WithHelp("ctrl+e", "export report"),
		),
		Help: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("f1", "toggle help"),
		),
		ToggleLog: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("ctrl+l", "toggle log overlay"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "confirm"),
		),
		Esc: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel/back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
	for i, field := range stlc.InputFields {
		n := fmt.Sprintf("alt+%d", i+1)
		km.Toggle[i] = key.NewBinding(
			key.WithKeys(n),
			key.WithHelp(n, "toggle "+field.String()),
		)
	}
	return km
}

// InitialModel constructs the initial model with sensible defaults.
func InitialModel(cfg TUIConfig) *Model {
	clipboard := cfg.Clipboard
	if clipboard == nil {
		clipboard = stlc.SystemClipboard{}
	}
	copyFeedback := cfg.CopyFeedback
	if copyFeedback <= 0 {
		copyFeedback = defaultCopyFeedback
	}

	m := &Model{
		CurrentAppMode: ModeForm,
		DebugMode:      cfg.DebugMode,
		ColorMode:      cfg.ColorMode,
		ServiceURL:     cfg.ServiceURL,
		CopyFeedback:   copyFeedback,
		ExportDir:      cfg.ExportDir,
		Session:        stlc.NewSession(cfg.Generator, clipboard),
		Keys:           DefaultKeyMap(),
		Help:           help.New(),
		LogChannel:     cfg.LogChannel,
	}

	for i := range m.Inputs {
		ta := textarea.New()
		ta.Placeholder = placeholders[i]
		ta.ShowLineNumbers = false
		ta.CharLimit = 0
		ta.SetHeight(4)
		ta.SetWidth(60)
		m.Inputs[i] = ta
	}
	m.Inputs[stlc.FieldRequirements].CharLimit = stlc.MaxRequirementsLength
	m.Inputs[stlc.FieldRequirements].SetHeight(6)
	m.SetFocus(int(stlc.FieldRequirements))

	fi := textinput.New()
	fi.Placeholder = "path/to/requirements.txt"
	fi.CharLimit = 4096
	fi.Width = 50
	m.FileInput = fi

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	m.Spinner = s

	m.ResultsViewport = viewport.New(60, 10)
	m.LogViewport = viewport.New(60, 10)
	return m
}

// Init starts the blinking cursor, the spinner and the log listener.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textarea.Blink, m.Spinner.Tick}
	if m.LogChannel != nil {
		cmds = append(cmds, ListenForLogEntriesCmd(m.LogChannel))
	}
	return tea.Batch(cmds...)
}
