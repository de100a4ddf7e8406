package model

// Phase is the state of the submission trigger.
type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseSubmitting Phase = "submitting"
)

// Status is the tri-state view of a submission: idle before any attempt,
// submitting while the request is in flight, completed once an attempt has
// finished (successfully or not) and the trigger is interactive again.
type Status string

const (
	StatusIdle       Status = "idle"
	StatusSubmitting Status = "submitting"
	StatusCompleted  Status = "completed"
)

// Outcome records how the last finished attempt ended.
type Outcome string

const (
	OutcomeNone      Outcome = ""
	OutcomeSucceeded Outcome = "succeeded"
	OutcomeFailed    Outcome = "failed"
)

// SubmissionState tracks the single outbound request of a form.
type SubmissionState struct {
	Phase   Phase   `json:"phase"`
	Outcome Outcome `json:"outcome,omitempty"`
	// Error is the user facing message of the last failed attempt. It is
	// cleared when a new attempt starts.
	Error string `json:"error,omitempty"`
	// Payload is the markdown returned by the last successful attempt.
	Payload    string `json:"payload,omitempty"`
	HasPayload bool   `json:"hasPayload"`
}

// NewSubmissionState returns the state of a freshly mounted form.
func NewSubmissionState() SubmissionState {
	return SubmissionState{Phase: PhaseIdle}
}

// Submitting reports whether a request is in flight.
func (s SubmissionState) Submitting() bool {
	return s.Phase == PhaseSubmitting
}

// Status folds phase and outcome into the tri-state view.
func (s SubmissionState) Status() Status {
	switch {
	case s.Phase == PhaseSubmitting:
		return StatusSubmitting
	case s.Outcome != OutcomeNone:
		return StatusCompleted
	default:
		return StatusIdle
	}
}
