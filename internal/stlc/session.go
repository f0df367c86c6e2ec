package stlc

import (
	"context"
	"errors"
	"fmt"

	"stlcctl/pkg/logging"
)

const sessionSubsystem = "Session"

// NoticeKind classifies the message shown in the notice slot.
type NoticeKind int

const (
	NoticeNone NoticeKind = iota
	NoticeInfo
	NoticeFileError
	NoticeServiceError
	NoticeTransportError
)

// Notice is the single user-visible message slot. A new notice replaces the
// previous one.
type Notice struct {
	Kind NoticeKind
	Text string
}

// IsError reports whether the notice describes a failure.
func (n Notice) IsError() bool {
	return n.Kind == NoticeFileError || n.Kind == NoticeServiceError || n.Kind == NoticeTransportError
}

// Session is the in-memory state of one form session: the input form, the
// submission outcome, the result presentation, the accordion and the notice
// slot. Every field is mutated only through the owning component.
type Session struct {
	form         InputForm
	controller   *Controller
	presentation *Presentation
	accordion    Accordion
	notice       Notice
}

// NewSession creates an empty session.
func NewSession(generator Generator, clipboard Clipboard) *Session {
	return &Session{
		form:         NewInputForm(),
		controller:   NewController(generator),
		presentation: NewPresentation(clipboard),
		accordion:    NewAccordion(),
	}
}

// Form returns a copy of the input form.
func (s *Session) Form() InputForm {
	return s.form
}

// SetField updates field and returns the value actually stored.
func (s *Session) SetField(field InputField, value string) string {
	s.form.SetField(field, value)
	return s.form.Field(field)
}

// IngestFile loads file into the requirements field and reports the result in
// the notice slot.
func (s *Session) IngestFile(file FileHandle) error {
	if err := s.form.IngestFile(file); err != nil {
		logging.Warn(sessionSubsystem, "File ingestion of %q failed: %v", file.Name(), err)
		s.notice = Notice{Kind: NoticeFileError, Text: ReasonOf(err)}
		return err
	}
	logging.Info(sessionSubsystem, "Loaded requirements from %q (%d characters)", file.Name(), s.form.RequirementsLength())
	s.notice = Notice{Kind: NoticeInfo, Text: fmt.Sprintf("Loaded requirements from %s", file.Name())}
	return nil
}

// CanSubmit is the submit trigger gate.
func (s *Session) CanSubmit() bool {
	return CanSubmit(s.form, s.controller.Outcome())
}

// BeginSubmit starts a submission if the gate allows it. The outcome is
// InProgress and the previous results and notice are cleared before it
// returns.
func (s *Session) BeginSubmit() (SubmissionRequest, bool) {
	if !s.CanSubmit() {
		return SubmissionRequest{}, false
	}
	req := s.controller.Begin(s.form)
	s.presentation.Clear()
	s.notice = Notice{}
	return req, true
}

// Generate runs the network call for req. It touches no session state and
// may run off the event loop.
func (s *Session) Generate(ctx context.Context, req SubmissionRequest) (ResultBundle, error) {
	return s.controller.Generate(ctx, req)
}

// ResolveSubmit applies the result of Generate.
func (s *Session) ResolveSubmit(bundle ResultBundle, err error) Outcome {
	outcome := s.controller.Resolve(bundle, err)
	switch outcome.Phase {
	case PhaseSucceeded:
		s.presentation.Load(outcome.Bundle)
		s.notice = Notice{}
	case PhaseFailed:
		kind := NoticeServiceError
		var transport *TransportError
		if errors.As(err, &transport) {
			kind = NoticeTransportError
		}
		s.presentation.Clear()
		s.notice = Notice{Kind: kind, Text: outcome.Reason}
	}
	return outcome
}

// Submit runs a whole submission synchronously. ok is false when the gate
// blocked it.
func (s *Session) Submit(ctx context.Context) (outcome Outcome, ok bool) {
	req, ok := s.BeginSubmit()
	if !ok {
		return s.controller.Outcome(), false
	}
	bundle, err := s.Generate(ctx, req)
	return s.ResolveSubmit(bundle, err), true
}

// Outcome returns the current submission outcome.
func (s *Session) Outcome() Outcome {
	return s.controller.Outcome()
}

// Sections returns the display sections of the current bundle.
func (s *Session) Sections() []DisplaySection {
	return s.presentation.Sections()
}

func (s *Session) CopySection(label string) (CopyToken, error) {
	return s.presentation.CopySection(label)
}

func (s *Session) CopyAll() (CopyToken, bool, error) {
	return s.presentation.CopyAll()
}

// ExpireCopy clears the flag armed by token if it is still current.
func (s *Session) ExpireCopy(token CopyToken) bool {
	return s.presentation.Expire(token)
}

func (s *Session) CopiedAll() bool {
	return s.presentation.CopiedAll()
}

// ToggleSection expands or collapses an input section.
func (s *Session) ToggleSection(field InputField) {
	s.accordion.Toggle(field)
}

func (s *Session) SectionOpen(field InputField) bool {
	return s.accordion.IsOpen(field)
}

// Accordion returns a copy of the accordion state.
func (s *Session) Accordion() Accordion {
	return s.accordion
}

// Notice returns the current notice.
func (s *Session) Notice() Notice {
	return s.notice
}
