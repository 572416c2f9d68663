// Package flow implements the conversation engine: a finite-state-machine
// runner that drives any declared multi-step dialogue for one user at a
// time. A flow is plain data, an ordered list of step descriptors, so
// the same engine runs the order questionnaire, the cost calculator and
// the admin content editors. The engine never talks to Telegram or to
// any store; it returns prompts for the caller to deliver.
package flow

// Terminal and sentinel states. A step's Next function returns one of
// the flow's declared states, or a terminal.
const (
	// StateConfirmed ends the flow and fires OnComplete.
	StateConfirmed = "confirmed"
	// StateCancelled ends the flow without a callback.
	StateCancelled = "cancelled"
)

// Input is one inbound event from the user: free text, an inline
// keyboard callback, or a document attachment.
type Input struct {
	Text   string
	Data   string // callback payload, empty for plain messages
	FileID string // attached document, empty otherwise
}

// Option is one inline keyboard button on an outbound prompt.
type Option struct {
	Label string
	Data  string
}

// Prompt is the outbound message for a step. Options are rendered by
// the transport layer; the engine does not care how.
type Prompt struct {
	Text    string
	Options [][]Option
}

// Step is one state of a flow awaiting a single input.
type Step struct {
	// State identifies the step; unique within the flow.
	State string

	// Field is the answer key the validated value is stored under.
	// Empty for steps that collect nothing (e.g. a confirm step).
	Field string

	// Prompt builds the outbound message shown when the step becomes
	// current. It may read answers collected so far.
	Prompt func(s *Session) Prompt

	// Validate checks and normalizes raw input. A non-nil error
	// re-prompts the same step without touching the session; the
	// error text is shown to the user above the prompt.
	Validate func(s *Session, in Input) (string, error)

	// Next returns the state to advance to after the value is stored.
	// Nil means the following step in declaration order (or
	// StateConfirmed after the last step).
	Next func(s *Session, value string) string
}

// Flow is a declared, named sequence of steps with one entry point and
// the two terminal transitions.
type Flow struct {
	ID    string
	Steps []Step

	// OnComplete runs when a step transitions to StateConfirmed, with
	// the session still intact. It returns the final message for the
	// user. A non-nil error keeps the session at its current state so
	// the user may retry; implementations must leave shared state
	// unchanged on error.
	OnComplete func(s *Session) (Prompt, error)

	// CancelText is the message shown on the cancelled terminal.
	CancelText string
}

func (f *Flow) step(state string) (Step, bool) {
	for _, st := range f.Steps {
		if st.State == state {
			return st, true
		}
	}
	return Step{}, false
}

// next resolves the state following the given one in declaration order.
func (f *Flow) next(state string) string {
	for i, st := range f.Steps {
		if st.State == state {
			if i+1 < len(f.Steps) {
				return f.Steps[i+1].State
			}
			return StateConfirmed
		}
	}
	return StateCancelled
}
