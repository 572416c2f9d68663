package flow

import "sync"

// Session is the live, per-user instance of a flow in progress. It
// holds the current state and the answers collected so far. Sessions
// are created by Engine.Start and destroyed on terminal transitions or
// Engine.Cancel.
type Session struct {
	UserID  int64
	FlowID  string
	State   string
	answers map[string]string

	// mu serializes Submit calls for this user. Double-submits from
	// the same chat must not interleave.
	mu sync.Mutex
}

func newSession(userID int64, flowID, state string) *Session {
	return &Session{
		UserID:  userID,
		FlowID:  flowID,
		State:   state,
		answers: make(map[string]string),
	}
}

// Answer returns the collected value for a field, or "".
func (s *Session) Answer(field string) string {
	return s.answers[field]
}

// SetAnswer stores a value under a field name. Steps normally store
// their own field via Validate; flows use this for derived values.
func (s *Session) SetAnswer(field, value string) {
	s.answers[field] = value
}

// Answers returns a copy of all collected answers.
func (s *Session) Answers() map[string]string {
	out := make(map[string]string, len(s.answers))
	for k, v := range s.answers {
		out[k] = v
	}
	return out
}
