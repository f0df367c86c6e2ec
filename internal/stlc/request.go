package stlc

// SubmissionRequest is the body sent to the generation service. Optional
// fields left empty in the form are nil, which encodes as JSON null.
type SubmissionRequest struct {
	Requirements        string  `json:"requirements"`
	UserStories         *string `json:"user_stories"`
	CodeDiffs           *string `json:"code_diffs"`
	PreviousTestResults *string `json:"previous_test_results"`
}

// NewSubmissionRequest snapshots form into a request.
func NewSubmissionRequest(form InputForm) SubmissionRequest {
	return SubmissionRequest{
		Requirements:        form.Requirements,
		UserStories:         optional(form.UserStories),
		CodeDiffs:           optional(form.CodeDiffs),
		PreviousTestResults: optional(form.PreviousTestResults),
	}
}

func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
