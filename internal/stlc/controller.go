package stlc

import (
	"context"

	"stlcctl/pkg/logging"
)

const controllerSubsystem = "Submission"

// Phase is the state of the submission outcome.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseInProgress
	PhaseSucceeded
	PhaseFailed
)

// String provides a human-readable representation of the Phase.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "Idle"
	case PhaseInProgress:
		return "InProgress"
	case PhaseSucceeded:
		return "Succeeded"
	case PhaseFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// Outcome is the tagged result of a submission. Bundle is set only when
// Phase is PhaseSucceeded; Reason and Err only when Phase is PhaseFailed.
type Outcome struct {
	Phase  Phase
	Bundle ResultBundle
	Reason string
	Err    error
}

// Generator sends a submission to the generation service.
type Generator interface {
	Generate(ctx context.Context, req SubmissionRequest) (ResultBundle, error)
}

// Controller owns the submission outcome. It does not serialize concurrent
// submissions; callers gate the trigger with CanSubmit.
type Controller struct {
	generator Generator
	outcome   Outcome
}

// NewController creates a controller in the Idle phase.
func NewController(generator Generator) *Controller {
	return &Controller{generator: generator}
}

// Outcome returns the current outcome.
func (c *Controller) Outcome() Outcome {
	return c.outcome
}

// InProgress reports whether a submission is in flight.
func (c *Controller) InProgress() bool {
	return c.outcome.Phase == PhaseInProgress
}

// Begin moves to InProgress, dropping any previous bundle or failure, and
// returns the request to send. It must be called before any network activity.
func (c *Controller) Begin(form InputForm) SubmissionRequest {
	c.outcome = Outcome{Phase: PhaseInProgress}
	return NewSubmissionRequest(form)
}

// Resolve records the result of the call started by Begin. The latest call
// wins; there is no staleness check.
func (c *Controller) Resolve(bundle ResultBundle, err error) Outcome {
	if err != nil {
		reason := ReasonOf(err)
		logging.Warn(controllerSubsystem, "STLC submission failed: %s", reason)
		c.outcome = Outcome{Phase: PhaseFailed, Reason: reason, Err: err}
		return c.outcome
	}
	logging.Info(controllerSubsystem, "STLC submission succeeded")
	c.outcome = Outcome{Phase: PhaseSucceeded, Bundle: bundle}
	return c.outcome
}

// Submit runs a whole submission synchronously.
func (c *Controller) Submit(ctx context.Context, form InputForm) Outcome {
	req := c.Begin(form)
	bundle, err := c.generator.Generate(ctx, req)
	return c.Resolve(bundle, err)
}

// Generate exposes the underlying generator so asynchronous callers can run
// the network call outside their event loop.
func (c *Controller) Generate(ctx context.Context, req SubmissionRequest) (ResultBundle, error) {
	return c.generator.Generate(ctx, req)
}

// CanSubmit is the trigger gate: requirements must be present and no
// submission may be in flight.
func CanSubmit(form InputForm, outcome Outcome) bool {
	return outcome.Phase != PhaseInProgress && form.Requirements != ""
}
