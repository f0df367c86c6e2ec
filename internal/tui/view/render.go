package view

import (
	"fmt"
	"strings"

	"stlcctl/internal/color"
	"stlcctl/internal/stlc"
	"stlcctl/internal/tui/model"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

const (
	minResultsHeight = 5
	defaultWidth     = 80
	defaultHeight    = 24
)

func screenSize(m *model.Model) (int, int) {
	width, height := m.Width, m.Height
	if width <= 0 {
		width = defaultWidth
	}
	if height <= 0 {
		height = defaultHeight
	}
	return width, height
}

// Render draws the whole screen for the current mode.
func Render(m *model.Model) string {
	width, height := screenSize(m)

	switch m.CurrentAppMode {
	case model.ModeQuitting:
		return "Bye.\n"
	case model.ModeHelpOverlay:
		return renderHelpOverlay(m, width, height)
	case model.ModeLogOverlay:
		return renderLogOverlay(m, width, height)
	}

	parts := []string{renderTop(m, width)}
	if len(m.Session.Sections()) > 0 {
		parts = append(parts, renderResultsPanel(m))
	}
	parts = append(parts, renderBottom(m, width))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// ResultsViewportSize returns the results viewport size that fills the
// space left between the form and the status bar.
func ResultsViewportSize(m *model.Model) (width, height int) {
	screenWidth, screenHeight := screenSize(m)
	remaining := screenHeight -
		lipgloss.Height(renderTop(m, screenWidth)) -
		lipgloss.Height(renderBottom(m, screenWidth)) -
		color.ResultPanelStyle.GetVerticalFrameSize()
	if remaining < minResultsHeight {
		remaining = minResultsHeight
	}
	// One row of the panel holds its title.
	return max(screenWidth-color.ResultPanelStyle.GetHorizontalFrameSize(), 10), remaining - 1
}

func renderTop(m *model.Model, width int) string {
	top := lipgloss.JoinVertical(lipgloss.Left,
		renderHeader(m, width),
		renderForm(m),
		renderSubmitLine(m),
	)
	if notice := renderNotice(m.Session.Notice(), width); notice != "" {
		top = lipgloss.JoinVertical(lipgloss.Left, top, notice)
	}
	if m.CurrentAppMode == model.ModeFilePrompt {
		top = lipgloss.JoinVertical(lipgloss.Left, top, renderFilePrompt(m, width))
	}
	return top
}

func renderBottom(m *model.Model, width int) string {
	return lipgloss.JoinVertical(lipgloss.Left, renderStatusBar(m, width), m.Help.ShortHelpView(m.Keys.ShortHelp()))
}

func renderHeader(m *model.Model, width int) string {
	title := color.TitleStyle.Render("STLC Generation")
	phase := m.Session.Outcome().Phase
	status := runewidthTruncate(fmt.Sprintf("  %s  •  %s", m.ServiceURL, phase), width-lipgloss.Width(title))
	return title + color.CounterStyle.Render(status)
}

func renderForm(m *model.Model) string {
	var rows []string
	form := m.Session.Form()
	for i, field := range stlc.InputFields {
		open := m.Session.SectionOpen(field)
		rows = append(rows, renderFieldHeader(m, field, i, open, form))
		if open {
			rows = append(rows, m.Inputs[field].View())
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func renderFieldHeader(m *model.Model, field stlc.InputField, index int, open bool, form stlc.InputForm) string {
	marker := "▸"
	if open {
		marker = "▾"
	}
	style := color.SectionHeaderStyle
	if m.Focus == int(field) {
		style = color.SectionHeaderFocusedStyle
	}
	header := fmt.Sprintf("%s [alt+%d] %s", marker, index+1, style.Render(field.Label()))
	if field == stlc.FieldRequirements {
		header += "  " + RequirementsCounter(form)
	}
	return header
}

// RequirementsCounter renders "<n>/<max>" for the requirements field.
func RequirementsCounter(form stlc.InputForm) string {
	n := form.RequirementsLength()
	text := fmt.Sprintf("%d/%d", n, stlc.MaxRequirementsLength)
	if n >= stlc.MaxRequirementsLength {
		return color.CounterFullStyle.Render(text)
	}
	return color.CounterStyle.Render(text)
}

func renderSubmitLine(m *model.Model) string {
	if m.Session.Outcome().Phase == stlc.PhaseInProgress {
		return color.ButtonDisabledStyle.Render(m.Spinner.View() + " Generating...")
	}
	if !m.Session.CanSubmit() {
		return color.ButtonDisabledStyle.Render("Generate (ctrl+s)")
	}
	return color.ButtonStyle.Render("Generate (ctrl+s)")
}

// NoticeTitle returns the heading shown above an error notice.
func NoticeTitle(kind stlc.NoticeKind) string {
	switch kind {
	case stlc.NoticeTransportError:
		return "Connection error"
	case stlc.NoticeFileError:
		return "File error"
	default:
		return "Error"
	}
}

func renderNotice(n stlc.Notice, width int) string {
	switch {
	case n.Kind == stlc.NoticeNone:
		return ""
	case n.IsError():
		body := lipgloss.JoinVertical(lipgloss.Left, color.NoticeTitleStyle.Render(NoticeTitle(n.Kind)), n.Text)
		return color.NoticeErrorStyle.Width(max(width-color.NoticeErrorStyle.GetHorizontalFrameSize(), 10)).Render(body)
	default:
		return color.NoticeInfoStyle.Render(n.Text)
	}
}

func renderFilePrompt(m *model.Model, width int) string {
	body := lipgloss.JoinVertical(lipgloss.Left,
		color.SectionHeaderStyle.Render("Load requirements from a .txt file"),
		m.FileInput.View(),
		color.CopyHintStyle.Render("enter load  •  esc cancel"),
	)
	return color.OverlayStyle.Width(max(width-color.OverlayStyle.GetHorizontalFrameSize(), 10)).Render(body)
}

// renderResultsPanel draws the viewport at the size the controller stored
// from ResultsViewportSize.
func renderResultsPanel(m *model.Model) string {
	copyAll := color.CopyHintStyle.Render("Copy All (ctrl+y)")
	if m.Session.CopiedAll() {
		copyAll = color.CopiedStyle.Render("Copied All!")
	}
	title := color.TitleStyle.Render("Results") + "  " + copyAll

	body := lipgloss.JoinVertical(lipgloss.Left, title, m.ResultsViewport.View())
	return color.ResultPanelStyle.Render(body)
}

// RenderResults renders the displayed sections for the results viewport and
// returns the line offset of every section.
func RenderResults(m *model.Model, width int) (string, []int) {
	sections := m.Session.Sections()
	focused := m.Focus == model.FocusResults

	var b strings.Builder
	offsets := make([]int, 0, len(sections))
	line := 0
	for i, section := range sections {
		if i > 0 {
			b.WriteString("\n\n")
			line += 2
		}
		offsets = append(offsets, line)

		labelStyle := color.ResultLabelStyle
		if focused && i == m.ResultCursor {
			labelStyle = color.ResultLabelCursorStyle
		}
		copyMarker := color.CopyHintStyle.Render("[y] Copy")
		if section.Copied {
			copyMarker = color.CopiedStyle.Render("✔ Copied")
		}
		b.WriteString(labelStyle.Render(section.Label) + "  " + copyMarker + "\n")
		line++

		content := lipgloss.NewStyle().Width(max(width, 10)).Render(section.Content)
		b.WriteString(content)
		line += lipgloss.Height(content) - 1
	}
	return b.String(), offsets
}

func renderStatusBar(m *model.Model, width int) string {
	if m.StatusBarMessage == "" {
		return ""
	}
	style := color.StatusBarStyle
	switch m.StatusBarMessageType {
	case model.StatusBarSuccess:
		style = color.StatusBarSuccessStyle
	case model.StatusBarError:
		style = color.StatusBarErrorStyle
	case model.StatusBarWarning:
		style = color.StatusBarWarningStyle
	}
	return style.Render(runewidthTruncate(m.StatusBarMessage, width))
}

// runewidthTruncate shortens unstyled text to width terminal cells.
func runewidthTruncate(s string, width int) string {
	if width <= 0 || runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}
