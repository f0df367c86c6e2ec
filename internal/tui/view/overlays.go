package view

import (
	"strings"

	"stlcctl/internal/color"
	"stlcctl/internal/tui/model"
	"stlcctl/pkg/logging"

	"github.com/charmbracelet/lipgloss"
)

func renderHelpOverlay(m *model.Model, width, height int) string {
	h := m.Help
	h.ShowAll = true
	content := lipgloss.JoinVertical(lipgloss.Left,
		color.TitleStyle.Render("Keys  (esc close)"),
		"",
		h.View(m.Keys),
	)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, color.OverlayStyle.Render(content))
}

func renderLogOverlay(m *model.Model, width, height int) string {
	title := color.LogPanelTitleStyle.Render("Activity Log  (↑/↓ scroll  •  esc close)")
	content := lipgloss.JoinVertical(lipgloss.Left, title, m.LogViewport.View())
	return color.OverlayStyle.
		Width(max(width-color.OverlayStyle.GetHorizontalFrameSize(), 10)).
		Height(max(height-color.OverlayStyle.GetVerticalFrameSize(), 3)).
		Render(content)
}

// LogOverlaySize returns the viewport size of the log overlay for a
// terminal of the given size.
func LogOverlaySize(width, height int) (int, int) {
	w := width - color.OverlayStyle.GetHorizontalFrameSize()
	h := height - color.OverlayStyle.GetVerticalFrameSize() - 1
	return max(w, 10), max(h, 3)
}

// FormatLogLine renders a log entry as one activity log line.
func FormatLogLine(entry logging.LogEntry) string {
	line := entry.Timestamp.Format("15:04:05") + " [" + entry.Level.String() + "] [" + entry.Subsystem + "] " + entry.Message
	if entry.Err != nil {
		line += ": " + entry.Err.Error()
	}
	return line
}

// PrepareLogContent applies color styles based on log level keywords.
func PrepareLogContent(lines []string, maxWidth int) string {
	out := make([]string, len(lines))
	for i, rawLine := range lines {
		style := lipgloss.NewStyle()
		switch {
		case strings.Contains(rawLine, "[ERROR]"):
			style = color.LogErrorStyle
		case strings.Contains(rawLine, "[WARN]"):
			style = color.LogWarnStyle
		case strings.Contains(rawLine, "[DEBUG]"):
			style = color.LogDebugStyle
		}
		out[i] = style.Render(runewidthTruncate(rawLine, maxWidth))
	}
	return strings.Join(out, "\n")
}
