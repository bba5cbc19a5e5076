package domain

// ReviewStepID is the id of the terminal review step appended after the last wizard step.
const ReviewStepID = "review-step"

// Phase defines where the orchestrator currently is.
type Phase string

const (
	PhaseEditing Phase = "editing" // One of the wizard steps is active
	PhaseReview  Phase = "review"  // Terminal display/submit state
)

// Outcome reports what a user-triggered transition did.
type Outcome string

const (
	OutcomeAdvanced  Outcome = "advanced"  // Moved to another step
	OutcomeBlocked   Outcome = "blocked"   // Refused because of a validation error; errors are now visible
	OutcomeIgnored   Outcome = "ignored"   // Not applicable in the current state (or re-entrant call)
	OutcomeSubmitted Outcome = "submitted" // Submit callback completed
	OutcomeRejected  Outcome = "rejected"  // Submit callback failed; message stored
)

// State represents the current snapshot of the orchestrator.
type State struct {
	// Phase is either editing a step or reviewing.
	Phase Phase

	// StepID is the id of the active step (ReviewStepID while reviewing).
	StepID string

	// StepIndex is the position of the active step in the declared step list.
	// It equals the number of steps while reviewing.
	StepIndex int

	// Submitting is true while the host submit callback is in flight.
	Submitting bool

	// SubmitError holds the message of the last rejected submit.
	SubmitError string
}

// NewState creates the state of a wizard positioned on a step.
func NewState(stepID string, index int) *State {
	return &State{
		Phase:     PhaseEditing,
		StepID:    stepID,
		StepIndex: index,
	}
}

// EditorStatus is the syntax-validity signal of the raw-text document editor.
type EditorStatus string

const (
	EditorSuccess EditorStatus = "success"
	EditorPending EditorStatus = "pending"
	EditorFailure EditorStatus = "failure"
)

// DisplayMode selects how a form tree is rendered.
type DisplayMode string

const (
	DisplayStep        DisplayMode = "step"         // Editable inputs of the active step
	DisplayDetails     DisplayMode = "details"      // Read-only review
	DisplayStepsHidden DisplayMode = "steps-hidden" // Mounted but not shown (inactive steps)
)
