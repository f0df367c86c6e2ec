package model

import (
	"stlcctl/internal/export"
	"stlcctl/internal/stlc"
	"stlcctl/pkg/logging"
)

// ---- Submission ----

// SubmissionResolvedMsg carries the result of the generation request.
type SubmissionResolvedMsg struct {
	Bundle stlc.ResultBundle
	Err    error
}

// ---- File ingestion ----

// FileLoadedMsg carries a file read ahead of ingestion.
type FileLoadedMsg struct {
	File stlc.BufferedFile
}

// ---- Results ----

// CopyExpiredMsg fires when a "Copied" marker should revert.
type CopyExpiredMsg struct {
	Token stlc.CopyToken
}

// ExportDoneMsg reports the outcome of a report export.
type ExportDoneMsg struct {
	Result export.Result
	Err    error
}

// ---- Logging / status bar ----

// NewLogEntryMsg delivers a log entry from the logging channel.
type NewLogEntryMsg struct {
	Entry logging.LogEntry
}

type ClearStatusBarMsg struct{}
