package flow

import (
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

var (
	// ErrFlowActive is returned by Start while the user already has a
	// session. The caller decides how to tell the user; the engine
	// never silently resets.
	ErrFlowActive = errors.New("flow already active")

	// ErrNoSession is returned by Submit when the user has no session.
	ErrNoSession = errors.New("no active session")

	// ErrUnknownFlow is returned by Start for an unregistered flow id.
	ErrUnknownFlow = errors.New("unknown flow")
)

// Result is the outcome of one Submit call.
type Result struct {
	Prompt Prompt

	// Rejected means the input failed the step's validator; the
	// prompt re-asks the same step and nothing was mutated.
	Rejected bool

	// Done means the flow reached the confirmed terminal and
	// OnComplete ran; the prompt is its final message.
	Done bool

	// Cancelled means the flow reached the cancelled terminal.
	Cancelled bool
}

// Engine runs registered flows, one session per user.
type Engine struct {
	mu       sync.RWMutex
	flows    map[string]*Flow
	sessions map[int64]*Session
	logger   *zap.Logger
}

// NewEngine creates an engine with no registered flows.
func NewEngine(logger *zap.Logger) *Engine {
	return &Engine{
		flows:    make(map[string]*Flow),
		sessions: make(map[int64]*Session),
		logger:   logger,
	}
}

// Register declares a flow. Flow ids and step states must be unique.
func (e *Engine) Register(f *Flow) error {
	if f.ID == "" || len(f.Steps) == 0 {
		return fmt.Errorf("flow %q: must have an id and at least one step", f.ID)
	}

	seen := make(map[string]bool)
	for _, st := range f.Steps {
		if st.State == "" || st.State == StateConfirmed || st.State == StateCancelled {
			return fmt.Errorf("flow %q: invalid step state %q", f.ID, st.State)
		}
		if seen[st.State] {
			return fmt.Errorf("flow %q: duplicate step state %q", f.ID, st.State)
		}
		seen[st.State] = true
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.flows[f.ID]; ok {
		return fmt.Errorf("flow %q: already registered", f.ID)
	}
	e.flows[f.ID] = f
	return nil
}

// Start creates a session for the user at the flow's first step and
// returns its prompt. Fails with ErrFlowActive if a session exists.
func (e *Engine) Start(flowID string, userID int64) (Prompt, error) {
	return e.StartWith(flowID, userID, nil)
}

// StartWith is Start with pre-seeded answers, for flows that need
// context picked before the dialogue begins (e.g. which portfolio case
// an admin is editing).
func (e *Engine) StartWith(flowID string, userID int64, seed map[string]string) (Prompt, error) {
	e.mu.Lock()
	f, ok := e.flows[flowID]
	if !ok {
		e.mu.Unlock()
		return Prompt{}, fmt.Errorf("start %q: %w", flowID, ErrUnknownFlow)
	}
	if _, active := e.sessions[userID]; active {
		e.mu.Unlock()
		return Prompt{}, ErrFlowActive
	}

	s := newSession(userID, flowID, f.Steps[0].State)
	for field, value := range seed {
		s.answers[field] = value
	}
	e.sessions[userID] = s
	e.mu.Unlock()

	return f.Steps[0].Prompt(s), nil
}

// Submit feeds one inbound event into the user's session. Submits for
// the same user are serialized; different users never contend.
func (e *Engine) Submit(userID int64, in Input) (Result, error) {
	e.mu.RLock()
	s, ok := e.sessions[userID]
	e.mu.RUnlock()
	if !ok {
		return Result{}, ErrNoSession
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// The session may have been cancelled while we waited on the lock.
	e.mu.RLock()
	current, alive := e.sessions[userID]
	f := e.flows[s.FlowID]
	e.mu.RUnlock()
	if !alive || current != s {
		return Result{}, ErrNoSession
	}

	step, ok := f.step(s.State)
	if !ok {
		// Unreachable for well-formed flows; drop the broken session.
		e.destroy(s)
		e.logger.Error("session in unknown state",
			zap.Int64("user_id", userID),
			zap.String("flow_id", s.FlowID),
			zap.String("state", s.State),
		)
		return Result{}, ErrNoSession
	}

	value := in.Text
	if step.Validate != nil {
		normalized, err := step.Validate(s, in)
		if err != nil {
			prompt := step.Prompt(s)
			prompt.Text = err.Error() + "\n\n" + prompt.Text
			return Result{Rejected: true, Prompt: prompt}, nil
		}
		value = normalized
	}

	if step.Field != "" {
		s.answers[step.Field] = value
	}

	next := f.next(step.State)
	if step.Next != nil {
		next = step.Next(s, value)
	}

	switch next {
	case StateCancelled:
		e.destroy(s)
		return Result{Cancelled: true, Prompt: Prompt{Text: f.CancelText}}, nil

	case StateConfirmed:
		final, err := f.OnComplete(s)
		if err != nil {
			// Session survives so the user can retry; OnComplete
			// rolled back its own side effects.
			e.logger.Error("flow completion failed",
				zap.Error(err),
				zap.Int64("user_id", userID),
				zap.String("flow_id", s.FlowID),
				zap.String("state", s.State),
			)
			return Result{}, err
		}
		e.destroy(s)
		return Result{Done: true, Prompt: final}, nil

	default:
		nextStep, ok := f.step(next)
		if !ok {
			e.destroy(s)
			e.logger.Error("transition to unknown state",
				zap.Int64("user_id", userID),
				zap.String("flow_id", s.FlowID),
				zap.String("state", next),
			)
			return Result{}, fmt.Errorf("flow %q: transition to unknown state %q", s.FlowID, next)
		}
		s.State = next
		return Result{Prompt: nextStep.Prompt(s)}, nil
	}
}

// Cancel destroys the user's session if one exists. The global escape
// hatch: reachable from every non-terminal state.
func (e *Engine) Cancel(userID int64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.sessions[userID]; !ok {
		return false
	}
	delete(e.sessions, userID)
	return true
}

// Active reports the user's current flow and state, if any.
func (e *Engine) Active(userID int64) (flowID, state string, ok bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	s, ok := e.sessions[userID]
	if !ok {
		return "", "", false
	}
	return s.FlowID, s.State, true
}

// destroy removes the session only if it is still the registered one.
// A cancel plus restart may have replaced it while this Submit was in
// flight; the replacement must survive.
func (e *Engine) destroy(s *Session) {
	e.mu.Lock()
	if e.sessions[s.UserID] == s {
		delete(e.sessions, s.UserID)
	}
	e.mu.Unlock()
}
