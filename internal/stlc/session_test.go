package stlc

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubGenerator returns a fixed result and records what it received.
type stubGenerator struct {
	bundle   ResultBundle
	err      error
	requests []SubmissionRequest
	// observed is the outcome phase seen when Generate was called.
	observed []Phase
	session  *Session
}

func (g *stubGenerator) Generate(_ context.Context, req SubmissionRequest) (ResultBundle, error) {
	g.requests = append(g.requests, req)
	if g.session != nil {
		g.observed = append(g.observed, g.session.Outcome().Phase)
	}
	return g.bundle, g.err
}

func TestCanSubmit_Gate(t *testing.T) {
	tests := []struct {
		name    string
		form    InputForm
		outcome Outcome
		want    bool
	}{
		{name: "empty requirements", form: InputForm{}, outcome: Outcome{Phase: PhaseIdle}, want: false},
		{name: "in progress", form: InputForm{Requirements: "R"}, outcome: Outcome{Phase: PhaseInProgress}, want: false},
		{name: "idle with requirements", form: InputForm{Requirements: "R"}, outcome: Outcome{Phase: PhaseIdle}, want: true},
		{name: "after failure", form: InputForm{Requirements: "R"}, outcome: Outcome{Phase: PhaseFailed}, want: true},
		{name: "after success", form: InputForm{Requirements: "R"}, outcome: Outcome{Phase: PhaseSucceeded}, want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanSubmit(tt.form, tt.outcome))
		})
	}
}

func TestController_BeginIsSynchronous(t *testing.T) {
	c := NewController(&stubGenerator{})
	c.Resolve(ResultBundle{}, errors.New("previous failure"))
	require.Equal(t, PhaseFailed, c.Outcome().Phase)

	req := c.Begin(InputForm{Requirements: "R"})

	assert.Equal(t, "R", req.Requirements)
	assert.True(t, c.InProgress())
	assert.Empty(t, c.Outcome().Reason)
	assert.Nil(t, c.Outcome().Err)
}

func TestController_Submit(t *testing.T) {
	gen := &stubGenerator{bundle: NewResultBundle([]byte(`{"test_case_generation":{"test_cases":"TC1"}}`))}
	c := NewController(gen)

	outcome := c.Submit(context.Background(), InputForm{Requirements: "R", CodeDiffs: "diff"})

	assert.Equal(t, PhaseSucceeded, outcome.Phase)
	require.Len(t, gen.requests, 1)
	require.NotNil(t, gen.requests[0].CodeDiffs)
	assert.Equal(t, "diff", *gen.requests[0].CodeDiffs)
	assert.Len(t, DeriveSections(outcome.Bundle), 1)
}

func TestSession_SubmitSuccessClearsNotice(t *testing.T) {
	gen := &stubGenerator{bundle: twoSectionBundle()}
	s := NewSession(gen, &recordingClipboard{})
	gen.session = s

	require.Error(t, s.IngestFile(fakeFile{name: "notes.pdf", content: "x"}))
	require.True(t, s.Notice().IsError())

	s.SetField(FieldRequirements, "Login")
	outcome, ok := s.Submit(context.Background())

	require.True(t, ok)
	assert.Equal(t, PhaseSucceeded, outcome.Phase)
	assert.Equal(t, []Phase{PhaseInProgress}, gen.observed, "InProgress must be visible before the call")
	assert.Equal(t, Notice{}, s.Notice())
	assert.Len(t, s.Sections(), 2)
}

func TestSession_BeginClearsPreviousResults(t *testing.T) {
	s := NewSession(&stubGenerator{}, &recordingClipboard{})
	s.SetField(FieldRequirements, "R")
	s.ResolveSubmit(twoSectionBundle(), nil)
	require.Len(t, s.Sections(), 2)

	_, ok := s.BeginSubmit()
	require.True(t, ok)

	assert.Empty(t, s.Sections())
	assert.Equal(t, PhaseInProgress, s.Outcome().Phase)
	assert.False(t, s.CanSubmit(), "gate closes while in progress")

	_, ok = s.BeginSubmit()
	assert.False(t, ok, "second trigger while in progress is blocked")
}

func TestSession_SubmitBlockedWithoutRequirements(t *testing.T) {
	gen := &stubGenerator{}
	s := NewSession(gen, &recordingClipboard{})

	outcome, ok := s.Submit(context.Background())

	assert.False(t, ok)
	assert.Equal(t, PhaseIdle, outcome.Phase)
	assert.Empty(t, gen.requests)
}

func TestSession_FailureNotices(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantKind NoticeKind
		wantText string
	}{
		{
			name:     "service rejection",
			err:      &ServiceRejectedError{StatusCode: 500, Reason: "model timeout"},
			wantKind: NoticeServiceError,
			wantText: "model timeout",
		},
		{
			name:     "transport failure",
			err:      &TransportError{Err: errors.New("connection refused")},
			wantKind: NoticeTransportError,
			wantText: "connection refused",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSession(&stubGenerator{err: tt.err}, &recordingClipboard{})
			s.SetField(FieldRequirements, "R")

			outcome, ok := s.Submit(context.Background())

			require.True(t, ok)
			assert.Equal(t, PhaseFailed, outcome.Phase)
			assert.Equal(t, tt.wantText, outcome.Reason)
			assert.Equal(t, Notice{Kind: tt.wantKind, Text: tt.wantText}, s.Notice())
			assert.Empty(t, s.Sections())
		})
	}
}

func TestSession_IngestFileNotices(t *testing.T) {
	s := NewSession(&stubGenerator{}, &recordingClipboard{})
	s.SetField(FieldRequirements, "keep me")

	err := s.IngestFile(fakeFile{name: "notes.pdf", mediaType: "application/pdf", content: "x"})
	assert.ErrorIs(t, err, ErrFileKindRejected)
	assert.Equal(t, Notice{Kind: NoticeFileError, Text: FileKindRejectedMessage}, s.Notice())
	assert.Equal(t, "keep me", s.Form().Requirements)

	err = s.IngestFile(fakeFile{name: "broken.txt", openErr: errors.New("eio")})
	assert.ErrorIs(t, err, ErrFileReadFailed)
	assert.Equal(t, Notice{Kind: NoticeFileError, Text: FileReadFailedMessage}, s.Notice())

	require.NoError(t, s.IngestFile(fakeFile{name: "reqs.txt", content: "new"}))
	assert.Equal(t, NoticeInfo, s.Notice().Kind)
	assert.Equal(t, "new", s.Form().Requirements)
}

func TestSession_AccordionPersistsAcrossSubmissions(t *testing.T) {
	s := NewSession(&stubGenerator{bundle: twoSectionBundle()}, &recordingClipboard{})
	s.ToggleSection(FieldCodeDiffs)
	s.SetField(FieldRequirements, "R")

	_, ok := s.Submit(context.Background())
	require.True(t, ok)

	assert.True(t, s.SectionOpen(FieldRequirements))
	assert.True(t, s.SectionOpen(FieldCodeDiffs))
	assert.False(t, s.SectionOpen(FieldUserStories))
}

func TestSession_SetFieldReturnsStoredValue(t *testing.T) {
	s := NewSession(&stubGenerator{}, &recordingClipboard{})
	long := make([]rune, MaxRequirementsLength+5)
	for i := range long {
		long[i] = 'q'
	}
	stored := s.SetField(FieldRequirements, string(long))
	assert.Len(t, []rune(stored), MaxRequirementsLength)
}
