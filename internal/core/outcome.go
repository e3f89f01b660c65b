package core

// Outcome classifies the result of a call to an external collaborator.
// Degraded results are still usable, faults carry a cause.
type Outcome string

const (
	OutcomeOK       Outcome = "ok"
	OutcomeDegraded Outcome = "degraded"
	OutcomeFault    Outcome = "fault"
)

type Completion struct {
	Text    string
	Outcome Outcome
	Err     error
}

type Retrieval struct {
	Chunks  []ContextChunk
	Outcome Outcome
	Err     error
}
