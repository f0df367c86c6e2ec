package model

import (
	"context"
	"time"

	"stlcctl/internal/export"
	"stlcctl/internal/stlc"
	"stlcctl/pkg/logging"

	tea "github.com/charmbracelet/bubbletea"
)

// SubmitCmd performs the generation request off the UI loop.
func SubmitCmd(generator stlc.Generator, req stlc.SubmissionRequest) tea.Cmd {
	return func() tea.Msg {
		bundle, err := generator.Generate(context.Background(), req)
		return SubmissionResolvedMsg{Bundle: bundle, Err: err}
	}
}

// LoadFileCmd reads the file at path.
func LoadFileCmd(path string) tea.Cmd {
	return func() tea.Msg {
		return FileLoadedMsg{File: stlc.Preload(stlc.LocalFile{Path: path})}
	}
}

// CopyExpireCmd reverts the marker behind token after d.
func CopyExpireCmd(d time.Duration, token stlc.CopyToken) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return CopyExpiredMsg{Token: token}
	})
}

// ExportCmd writes sections below dir.
func ExportCmd(dir string, sections []stlc.DisplaySection) tea.Cmd {
	return func() tea.Msg {
		result, err := export.Write(dir, sections)
		return ExportDoneMsg{Result: result, Err: err}
	}
}

// ListenForLogEntriesCmd waits for the next log entry.
func ListenForLogEntriesCmd(ch <-chan logging.LogEntry) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		entry, ok := <-ch
		if !ok {
			return nil
		}
		return NewLogEntryMsg{Entry: entry}
	}
}
