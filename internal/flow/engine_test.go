package flow

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// surveyFlow is a three-step flow with one conditional branch: the
// "extra" step is entered only when the user answered "yes" earlier.
func surveyFlow(completed *map[string]string) *Flow {
	return &Flow{
		ID:         "survey",
		CancelText: "cancelled",
		Steps: []Step{
			{
				State: "name", Field: "name",
				Prompt: func(*Session) Prompt { return Prompt{Text: "your name?"} },
				Validate: func(_ *Session, in Input) (string, error) {
					if in.Text == "" {
						return "", errors.New("name must not be empty")
					}
					return in.Text, nil
				},
			},
			{
				State: "wants_extra", Field: "wants_extra",
				Prompt: func(*Session) Prompt { return Prompt{Text: "extra question?"} },
				Next: func(_ *Session, value string) string {
					if value == "yes" {
						return "extra"
					}
					return "confirm"
				},
			},
			{
				State: "extra", Field: "extra",
				Prompt: func(*Session) Prompt { return Prompt{Text: "extra answer?"} },
			},
			{
				State: "confirm",
				Prompt: func(*Session) Prompt { return Prompt{Text: "confirm?"} },
				Next: func(_ *Session, value string) string {
					if value == "no" {
						return StateCancelled
					}
					return StateConfirmed
				},
			},
		},
		OnComplete: func(s *Session) (Prompt, error) {
			*completed = s.Answers()
			return Prompt{Text: "done"}, nil
		},
	}
}

func newTestEngine(t *testing.T, completed *map[string]string) *Engine {
	t.Helper()
	e := NewEngine(zap.NewNop())
	require.NoError(t, e.Register(surveyFlow(completed)))
	return e
}

func TestEngine_StartReturnsFirstPrompt(t *testing.T) {
	var completed map[string]string
	e := newTestEngine(t, &completed)

	prompt, err := e.Start("survey", 1)
	require.NoError(t, err)
	assert.Equal(t, "your name?", prompt.Text)

	flowID, state, ok := e.Active(1)
	require.True(t, ok)
	assert.Equal(t, "survey", flowID)
	assert.Equal(t, "name", state)
}

func TestEngine_StartUnknownFlow(t *testing.T) {
	var completed map[string]string
	e := newTestEngine(t, &completed)

	_, err := e.Start("nope", 1)
	assert.ErrorIs(t, err, ErrUnknownFlow)
}

func TestEngine_StartWhileActive(t *testing.T) {
	var completed map[string]string
	e := newTestEngine(t, &completed)

	_, err := e.Start("survey", 1)
	require.NoError(t, err)

	_, err = e.Start("survey", 1)
	assert.ErrorIs(t, err, ErrFlowActive)

	// A different user is unaffected.
	_, err = e.Start("survey", 2)
	assert.NoError(t, err)
}

func TestEngine_SubmitWithoutSession(t *testing.T) {
	var completed map[string]string
	e := newTestEngine(t, &completed)

	_, err := e.Submit(1, Input{Text: "hello"})
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestEngine_ValidationRejectKeepsState(t *testing.T) {
	var completed map[string]string
	e := newTestEngine(t, &completed)

	_, err := e.Start("survey", 1)
	require.NoError(t, err)

	result, err := e.Submit(1, Input{Text: ""})
	require.NoError(t, err)
	assert.True(t, result.Rejected)
	assert.Contains(t, result.Prompt.Text, "name must not be empty")
	assert.Contains(t, result.Prompt.Text, "your name?")

	// Same state, no answer stored.
	_, state, ok := e.Active(1)
	require.True(t, ok)
	assert.Equal(t, "name", state)

	// Valid input at the same step advances normally.
	result, err = e.Submit(1, Input{Text: "Ivan"})
	require.NoError(t, err)
	assert.False(t, result.Rejected)
	assert.Equal(t, "extra question?", result.Prompt.Text)
}

func TestEngine_ConditionalBranch(t *testing.T) {
	var completed map[string]string
	e := newTestEngine(t, &completed)

	// "yes" takes the extra step.
	_, err := e.Start("survey", 1)
	require.NoError(t, err)
	_, err = e.Submit(1, Input{Text: "Ivan"})
	require.NoError(t, err)
	result, err := e.Submit(1, Input{Text: "yes"})
	require.NoError(t, err)
	assert.Equal(t, "extra answer?", result.Prompt.Text)

	// "no" skips straight to confirm.
	_, err = e.Start("survey", 2)
	require.NoError(t, err)
	_, err = e.Submit(2, Input{Text: "Petr"})
	require.NoError(t, err)
	result, err = e.Submit(2, Input{Text: "no"})
	require.NoError(t, err)
	assert.Equal(t, "confirm?", result.Prompt.Text)
}

func TestEngine_CompleteDeliversAnswersAndDestroysSession(t *testing.T) {
	var completed map[string]string
	e := newTestEngine(t, &completed)

	_, err := e.Start("survey", 1)
	require.NoError(t, err)
	_, err = e.Submit(1, Input{Text: "Ivan"})
	require.NoError(t, err)
	_, err = e.Submit(1, Input{Text: "yes"})
	require.NoError(t, err)
	_, err = e.Submit(1, Input{Text: "42"})
	require.NoError(t, err)

	result, err := e.Submit(1, Input{Text: "ok"})
	require.NoError(t, err)
	assert.True(t, result.Done)
	assert.Equal(t, "done", result.Prompt.Text)

	assert.Equal(t, map[string]string{
		"name":        "Ivan",
		"wants_extra": "yes",
		"extra":       "42",
	}, completed)

	_, _, ok := e.Active(1)
	assert.False(t, ok)

	_, err = e.Submit(1, Input{Text: "anything"})
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestEngine_CancelledTerminal(t *testing.T) {
	var completed map[string]string
	e := newTestEngine(t, &completed)

	_, err := e.Start("survey", 1)
	require.NoError(t, err)
	_, err = e.Submit(1, Input{Text: "Ivan"})
	require.NoError(t, err)
	_, err = e.Submit(1, Input{Text: "no"})
	require.NoError(t, err)

	result, err := e.Submit(1, Input{Text: "no"})
	require.NoError(t, err)
	assert.True(t, result.Cancelled)
	assert.Equal(t, "cancelled", result.Prompt.Text)
	assert.Nil(t, completed)

	_, _, ok := e.Active(1)
	assert.False(t, ok)
}

func TestEngine_CancelDestroysSession(t *testing.T) {
	var completed map[string]string
	e := newTestEngine(t, &completed)

	assert.False(t, e.Cancel(1))

	_, err := e.Start("survey", 1)
	require.NoError(t, err)
	assert.True(t, e.Cancel(1))

	_, err = e.Submit(1, Input{Text: "Ivan"})
	assert.ErrorIs(t, err, ErrNoSession)
	assert.Nil(t, completed)
}

func TestEngine_RestartAfterTerminal(t *testing.T) {
	var completed map[string]string
	e := newTestEngine(t, &completed)

	_, err := e.Start("survey", 1)
	require.NoError(t, err)
	require.True(t, e.Cancel(1))

	// Immediately restartable, from the initial state, empty answers.
	prompt, err := e.Start("survey", 1)
	require.NoError(t, err)
	assert.Equal(t, "your name?", prompt.Text)

	_, state, ok := e.Active(1)
	require.True(t, ok)
	assert.Equal(t, "name", state)
}

func TestEngine_StartWithSeed(t *testing.T) {
	var completed map[string]string
	e := NewEngine(zap.NewNop())

	f := surveyFlow(&completed)
	f.Steps[0].Prompt = func(s *Session) Prompt {
		return Prompt{Text: "hello " + s.Answer("greeting")}
	}
	require.NoError(t, e.Register(f))

	prompt, err := e.StartWith("survey", 1, map[string]string{"greeting": "admin"})
	require.NoError(t, err)
	assert.Equal(t, "hello admin", prompt.Text)
}

func TestEngine_OnCompleteErrorKeepsSession(t *testing.T) {
	e := NewEngine(zap.NewNop())

	attempts := 0
	f := &Flow{
		ID:         "flaky",
		CancelText: "cancelled",
		Steps: []Step{
			{
				State: "only", Field: "value",
				Prompt: func(*Session) Prompt { return Prompt{Text: "value?"} },
			},
		},
		OnComplete: func(s *Session) (Prompt, error) {
			attempts++
			if attempts == 1 {
				return Prompt{}, errors.New("store unavailable")
			}
			return Prompt{Text: "saved"}, nil
		},
	}
	require.NoError(t, e.Register(f))

	_, err := e.Start("flaky", 1)
	require.NoError(t, err)

	_, err = e.Submit(1, Input{Text: "v"})
	require.Error(t, err)

	// Session survived; a retry succeeds and then destroys it.
	_, state, ok := e.Active(1)
	require.True(t, ok)
	assert.Equal(t, "only", state)

	result, err := e.Submit(1, Input{Text: "v"})
	require.NoError(t, err)
	assert.True(t, result.Done)
	assert.Equal(t, "saved", result.Prompt.Text)

	_, _, ok = e.Active(1)
	assert.False(t, ok)
}

func TestEngine_StaleCompletionLeavesReplacementSession(t *testing.T) {
	e := NewEngine(zap.NewNop())

	f := &Flow{
		ID:         "renew",
		CancelText: "cancelled",
		Steps: []Step{{
			State: "only", Field: "value",
			Prompt: func(*Session) Prompt { return Prompt{Text: "value?"} },
		}},
	}
	f.OnComplete = func(s *Session) (Prompt, error) {
		// Stands in for concurrent events arriving while the
		// completion is in flight: the session is cancelled and a
		// fresh one is created before Submit tears down the old one.
		e.Cancel(s.UserID)
		_, err := e.Start("renew", s.UserID)
		require.NoError(t, err)
		return Prompt{Text: "done"}, nil
	}
	require.NoError(t, e.Register(f))

	_, err := e.Start("renew", 1)
	require.NoError(t, err)

	result, err := e.Submit(1, Input{Text: "v"})
	require.NoError(t, err)
	assert.True(t, result.Done)

	// The replacement session survives the stale teardown.
	flowID, state, ok := e.Active(1)
	require.True(t, ok)
	assert.Equal(t, "renew", flowID)
	assert.Equal(t, "only", state)
}

func TestEngine_RegisterValidation(t *testing.T) {
	e := NewEngine(zap.NewNop())

	assert.Error(t, e.Register(&Flow{ID: "empty"}))

	dup := &Flow{ID: "dup", Steps: []Step{
		{State: "a", Prompt: func(*Session) Prompt { return Prompt{} }},
		{State: "a", Prompt: func(*Session) Prompt { return Prompt{} }},
	}}
	assert.Error(t, e.Register(dup))

	reserved := &Flow{ID: "r", Steps: []Step{
		{State: StateConfirmed, Prompt: func(*Session) Prompt { return Prompt{} }},
	}}
	assert.Error(t, e.Register(reserved))
}
