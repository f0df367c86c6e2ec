package color

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Palette.
var (
	Primary = lipgloss.AdaptiveColor{Light: "#5A4FCF", Dark: "#9D8CFF"}
	Success = lipgloss.AdaptiveColor{Light: "#1E7B34", Dark: "#5FD787"}
	Warning = lipgloss.AdaptiveColor{Light: "#A15C00", Dark: "#FFCB6B"}
	Failure = lipgloss.AdaptiveColor{Light: "#B00020", Dark: "#FF6B6B"}
	Muted   = lipgloss.AdaptiveColor{Light: "#707070", Dark: "#8A8A9A"}
	Border  = lipgloss.AdaptiveColor{Light: "#C0C0C0", Dark: "#44475A"}
	Surface = lipgloss.AdaptiveColor{Light: "#F4F4F8", Dark: "#22222E"}
)

// Styles.
var (
	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(Primary)

	SectionHeaderStyle        = lipgloss.NewStyle().Bold(true)
	SectionHeaderFocusedStyle = lipgloss.NewStyle().Bold(true).Foreground(Primary).Underline(true)
	CounterStyle              = lipgloss.NewStyle().Foreground(Muted)
	CounterFullStyle          = lipgloss.NewStyle().Foreground(Warning)

	ButtonStyle         = lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(lipgloss.Color("#FFFFFF")).Background(Primary)
	ButtonDisabledStyle = lipgloss.NewStyle().Padding(0, 1).Foreground(Muted).Background(Surface)

	NoticeErrorStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(Failure).Padding(0, 1)
	NoticeTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(Failure)
	NoticeInfoStyle  = lipgloss.NewStyle().Foreground(Success)

	ResultPanelStyle       = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(Border).Padding(0, 1)
	ResultLabelStyle       = lipgloss.NewStyle().Bold(true).Foreground(Primary)
	ResultLabelCursorStyle = lipgloss.NewStyle().Bold(true).Reverse(true)
	CopiedStyle            = lipgloss.NewStyle().Foreground(Success)
	CopyHintStyle          = lipgloss.NewStyle().Foreground(Muted)

	StatusBarStyle        = lipgloss.NewStyle().Foreground(Muted)
	StatusBarSuccessStyle = lipgloss.NewStyle().Foreground(Success)
	StatusBarErrorStyle   = lipgloss.NewStyle().Foreground(Failure)
	StatusBarWarningStyle = lipgloss.NewStyle().Foreground(Warning)

	OverlayStyle       = lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(Primary).Padding(0, 1)
	LogPanelTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(Primary)
	LogErrorStyle      = lipgloss.NewStyle().Foreground(Failure)
	LogWarnStyle       = lipgloss.NewStyle().Foreground(Warning)
	LogDebugStyle      = lipgloss.NewStyle().Foreground(Muted)
)

// Initialize sets the background mode used to resolve adaptive colors.
func Initialize(isDarkMode bool) {
	lipgloss.SetHasDarkBackground(isDarkMode)
}

// ResolveDarkMode maps a configured color mode to a dark-background flag.
// "auto" asks the terminal when stdout is one, and assumes dark otherwise.
func ResolveDarkMode(mode string) bool {
	switch mode {
	case "dark":
		return true
	case "light":
		return false
	}
	if term.IsTerminal(int(os.Stdout.Fd())) {
		return lipgloss.HasDarkBackground()
	}
	return true
}
