package subscribe

// State is the submission state of a controller.
type State int

const (
	StateIdle State = iota
	StateLoading
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	default:
		return "unknown"
	}
}

// OutcomeKind classifies how a HandleSubmit call ended.
type OutcomeKind string

const (
	// OutcomeSkipped means a submission was already in flight, or the event
	// belonged to an action that was already handled.
	OutcomeSkipped OutcomeKind = "skipped"
	// OutcomeInvalid means local validation failed; nothing was sent.
	OutcomeInvalid OutcomeKind = "invalid"
	// OutcomeSucceeded means the server reported success.
	OutcomeSucceeded OutcomeKind = "succeeded"
	// OutcomeRejected means the server answered with success=false.
	OutcomeRejected OutcomeKind = "rejected"
	// OutcomeFailed means the request itself failed.
	OutcomeFailed OutcomeKind = "failed"
)

// Outcome summarises one HandleSubmit call. Message is the text shown to the
// user, empty for skipped calls.
type Outcome struct {
	Kind    OutcomeKind
	Message string
}
