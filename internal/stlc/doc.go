// Package stlc implements the client-side core of the STLC generation form.
//
// The package is split along the three cooperating components of the form:
//
//   - Input model (InputForm): the four free-text fields. The requirements
//     field is truncated to MaxRequirementsLength characters on every
//     mutation, including file ingestion (IngestFile), which only accepts
//     plain text files.
//
//   - Submission controller (Controller, Client): turns the form into a
//     SubmissionRequest, posts it to the generation service's /chat endpoint
//     and resolves into an Outcome. The InProgress transition happens in
//     Begin, before any network activity, so callers can gate the trigger
//     with CanSubmit.
//
//   - Result presentation (Presentation, Accordion): derives the ordered
//     DisplaySection list from a ResultBundle and manages the transient
//     "copied" flags. Flags live in a fixed table keyed by section; every
//     bundle gets a new epoch so expiry timers armed for an older bundle are
//     ignored.
//
// Session composes the three together with the single notice slot used to
// surface errors and file ingestion results to the user.
//
// # Wire format
//
// Request:
//
//	POST /chat
//	Content-Type: application/json
//
//	{"requirements": "...", "user_stories": null, "code_diffs": null, "previous_test_results": null}
//
// Response:
//
//	{"response": {"test_case_generation": {"test_cases": "..."}, ...}}
//
// Non-success responses should carry {"detail": "..."}; the detail text is
// used as the failure reason, falling back to DefaultFailureReason.
package stlc
