package view

import (
	"strings"
	"testing"
	"time"

	"stlcctl/internal/stlc"
	"stlcctl/internal/tui/model"
	"stlcctl/pkg/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRenderModel() *model.Model {
	m := model.InitialModel(model.TUIConfig{
		ServiceURL: "http://localhost:8000",
		Clipboard:  stlc.ClipboardFunc(func(string) error { return nil }),
	})
	m.Width = 100
	m.Height = 40
	return m
}

func TestRender_FormShowsAccordion(t *testing.T) {
	m := newRenderModel()

	out := Render(m)

	assert.Contains(t, out, "STLC Generation")
	assert.Contains(t, out, "▾ [alt+1] ")
	assert.Contains(t, out, "Software Requirements")
	assert.Contains(t, out, "▸ [alt+2] ")
	assert.Contains(t, out, "User Stories (Optional)")
	assert.Contains(t, out, "Code Diffs (Optional)")
	assert.Contains(t, out, "Previous Test Results (Optional)")
	assert.Contains(t, out, "0/1000")
	assert.NotContains(t, out, "Copy All")
}

func TestRequirementsCounter(t *testing.T) {
	assert.Contains(t, RequirementsCounter(stlc.InputForm{Requirements: "héllo"}), "5/1000")
	full := stlc.InputForm{Requirements: strings.Repeat("x", stlc.MaxRequirementsLength)}
	assert.Contains(t, RequirementsCounter(full), "1000/1000")
}

func TestNoticeTitle(t *testing.T) {
	assert.Equal(t, "Connection error", NoticeTitle(stlc.NoticeTransportError))
	assert.Equal(t, "Error", NoticeTitle(stlc.NoticeServiceError))
	assert.Equal(t, "File error", NoticeTitle(stlc.NoticeFileError))
}

func TestRenderResults_OffsetsAndMarkers(t *testing.T) {
	m := newRenderModel()
	m.Session.SetField(stlc.FieldRequirements, "R")
	m.Session.ResolveSubmit(stlc.NewResultBundle([]byte(`{
		"test_case_generation": {"test_cases": "TC1\nTC2"},
		"test_data_generation": {"test_data": "D1"}
	}`)), nil)
	_, err := m.Session.CopySection("Test Data")
	require.NoError(t, err)

	content, offsets := RenderResults(m, 80)

	require.Len(t, offsets, 2)
	lines := strings.Split(content, "\n")
	assert.Equal(t, 0, offsets[0])
	assert.Contains(t, lines[offsets[0]], "Test Cases")
	assert.Contains(t, lines[offsets[0]], "[y] Copy")
	assert.Contains(t, lines[offsets[1]], "Test Data")
	assert.Contains(t, lines[offsets[1]], "✔ Copied")
}

func TestResultsViewportSize_FillsRemainingScreen(t *testing.T) {
	m := newRenderModel()
	m.Session.SetField(stlc.FieldRequirements, "R")
	m.Session.ResolveSubmit(stlc.NewResultBundle([]byte(`{
		"test_case_generation": {"test_cases": "`+strings.Repeat(`line\n`, 80)+`"}
	}`)), nil)

	width, height := ResultsViewportSize(m)
	m.ResultsViewport.Width, m.ResultsViewport.Height = width, height
	content, _ := RenderResults(m, width)
	m.ResultsViewport.SetContent(content)

	assert.Equal(t, m.Height, strings.Count(Render(m), "\n")+1, "panel fills the screen exactly")

	m.Session.ToggleSection(stlc.FieldUserStories)
	_, shorter := ResultsViewportSize(m)
	assert.Less(t, shorter, height, "opening a section leaves less room for results")
}

func TestPrepareLogContent(t *testing.T) {
	out := PrepareLogContent([]string{"a [ERROR] b", "plain"}, 80)
	assert.Contains(t, out, "a [ERROR] b")
	assert.Contains(t, out, "plain")
	assert.Equal(t, 2, len(strings.Split(out, "\n")))
}

func TestFormatLogLine(t *testing.T) {
	ts := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	line := FormatLogLine(logging.LogEntry{Timestamp: ts, Level: logging.LevelError, Subsystem: "Client", Message: "boom", Err: assert.AnError})
	assert.Equal(t, "03:04:05 [ERROR] [Client] boom: "+assert.AnError.Error(), line)
}

func TestRunewidthTruncate(t *testing.T) {
	assert.Equal(t, "short", runewidthTruncate("short", 10))
	assert.Equal(t, "abcd…", runewidthTruncate("abcdefgh", 5))
	assert.Equal(t, "界…", runewidthTruncate("界界界", 3))
}
