package model

import (
	"time"

	"stlcctl/internal/stlc"
	"stlcctl/pkg/logging"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// AppMode represents the current mode of the application
type AppMode int

const (
	ModeForm AppMode = iota
	ModeFilePrompt
	ModeHelpOverlay
	ModeLogOverlay
	ModeQuitting
)

// String provides a human-readable representation of the AppMode.
func (m AppMode) String() string {
	switch m {
	case ModeForm:
		return "Form"
	case ModeFilePrompt:
		return "FilePrompt"
	case ModeHelpOverlay:
		return "HelpOverlay"
	case ModeLogOverlay:
		return "LogOverlay"
	case ModeQuitting:
		return "Quitting"
	default:
		return "Unknown"
	}
}

// MessageType represents the type of status bar message
type MessageType int

const (
	StatusBarInfo MessageType = iota
	StatusBarSuccess
	StatusBarError
	StatusBarWarning
)

// Focus targets. The four input fields use their stlc.InputField value.
// FocusNone means no target can take focus.
const (
	FocusNone    = -1
	FocusResults = stlc.InputFieldCount
	focusCount   = stlc.InputFieldCount + 1
)

// Constants for UI
const (
	MaxActivityLogLines = 1000
)

// TUIConfig carries everything the model needs from the application.
type TUIConfig struct {
	DebugMode    bool
	ColorMode    string
	Generator    stlc.Generator
	Clipboard    stlc.Clipboard
	ServiceURL   string
	CopyFeedback time.Duration
	ExportDir    string
	LogChannel   <-chan logging.LogEntry
}

// KeyMap defines all the key bindings for the application
type KeyMap struct {
	NextField   key.Binding
	PrevField   key.Binding
	Toggle      [stlc.InputFieldCount]key.Binding
	Submit      key.Binding
	OpenFile    key.Binding
	Up          key.Binding
	Down        key.Binding
	CopySection key.Binding
	CopyAll     key.Binding
	Export      key.Binding
	Help        key.Binding
	ToggleLog   key.Binding
	Confirm     key.Binding
	Esc         key.Binding
	Quit        key.Binding
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextField, k.Submit, k.OpenFile, k.CopyAll, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextField, k.PrevField, k.Toggle[0], k.Toggle[1], k.Toggle[2], k.Toggle[3]},
		{k.Submit, k.OpenFile, k.Export},
		{k.Up, k.Down, k.CopySection, k.CopyAll},
		{k.Help, k.ToggleLog, k.Esc, k.Quit},
	}
}

// Model is the state of the form TUI. Form semantics live in Session; the
// rest is presentation state.
type Model struct {
	// Terminal dimensions
	Width  int
	Height int

	CurrentAppMode AppMode
	LastAppMode    AppMode
	DebugMode      bool
	ColorMode      string
	ServiceURL     string
	CopyFeedback   time.Duration
	ExportDir      string

	Session *stlc.Session

	// Input widgets, one per stlc.InputField.
	Inputs    [stlc.InputFieldCount]textarea.Model
	Focus     int
	FileInput textinput.Model

	// Results
	ResultCursor     int
	ResultsViewport  viewport.Model
	ResultsDirty     bool
	LastExportResult string

	// UI State & Output
	ActivityLog          []string
	ActivityLogDirty     bool
	LogViewportLastWidth int
	LogViewport          viewport.Model
	Spinner              spinner.Model
	Keys                 KeyMap
	Help                 help.Model
	StatusBarMessage     string
	StatusBarMessageType MessageType
	StatusBarClearCancel chan struct{}

	// Logging
	LogChannel <-chan logging.LogEntry
}

// SetStatusMessage shows message in the status bar and returns the command
// that clears it after clearAfter. A newer message cancels the pending clear.
func (m *Model) SetStatusMessage(message string, msgType MessageType, clearAfter time.Duration) tea.Cmd {
	m.StatusBarMessage = message
	m.StatusBarMessageType = msgType

	if m.StatusBarClearCancel != nil {
		close(m.StatusBarClearCancel)
	}

	m.StatusBarClearCancel = make(chan struct{})
	captured := m.StatusBarClearCancel

	return tea.Tick(clearAfter, func(t time.Time) tea.Msg {
		select {
		case <-captured:
			return nil
		default:
			return ClearStatusBarMsg{}
		}
	})
}

// FocusedField returns the focused input field, if an input has focus.
func (m *Model) FocusedField() (stlc.InputField, bool) {
	if m.Focus < 0 || m.Focus >= stlc.InputFieldCount {
		return 0, false
	}
	return stlc.InputField(m.Focus), true
}

// Focusable reports whether focus target i can currently take focus:
// inputs only when their accordion section is open, results only when
// there is something to show.
func (m *Model) Focusable(i int) bool {
	if i < 0 || i > FocusResults {
		return false
	}
	if i == FocusResults {
		return len(m.Session.Sections()) > 0
	}
	return m.Session.SectionOpen(stlc.InputField(i))
}

// SetFocus moves focus to target i and updates the widget focus state.
func (m *Model) SetFocus(i int) tea.Cmd {
	m.Focus = i
	var cmd tea.Cmd
	for idx := range m.Inputs {
		if idx == i {
			cmd = m.Inputs[idx].Focus()
		} else {
			m.Inputs[idx].Blur()
		}
	}
	return cmd
}

// CycleFocus moves focus by delta over the focusable targets. Focus stays
// put when nothing else is focusable and moves to FocusNone when the current
// target cannot hold it either.
func (m *Model) CycleFocus(delta int) tea.Cmd {
	base := m.Focus
	if base == FocusNone {
		base = 0
		if delta > 0 {
			base = focusCount - 1
		}
	}
	for step := 1; step <= focusCount; step++ {
		next := ((base+delta*step)%focusCount + focusCount) % focusCount
		if m.Focusable(next) {
			return m.SetFocus(next)
		}
	}
	return m.SetFocus(FocusNone)
}

// SyncInputs copies the session's field values into the widgets.
func (m *Model) SyncInputs() {
	form := m.Session.Form()
	for _, field := range stlc.InputFields {
		if m.Inputs[field].Value() != form.Field(field) {
			m.Inputs[field].SetValue(form.Field(field))
		}
	}
}
