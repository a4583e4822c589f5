package session

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/abhisek/quizdeck/internal/bank"
	"github.com/abhisek/quizdeck/internal/wrongset"
)

// WrongStore persists the wrong-answer set.
type WrongStore interface {
	Save(ctx context.Context, set wrongset.Set) error
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithRand overrides the random source used for selection.
func WithRand(rng RandSource) EngineOption {
	return func(e *Engine) { e.rng = rng }
}

// WithLogger sets the engine logger.
func WithLogger(log zerolog.Logger) EngineOption {
	return func(e *Engine) { e.log = log }
}

// Engine owns the bank, the wrong-answer set and the current round. It is
// driven from a single goroutine.
type Engine struct {
	questions []bank.Question
	wrong     wrongset.Set
	store     WrongStore
	rng       RandSource
	log       zerolog.Logger
	state     *SessionState
}

// NewEngine creates an engine with no active round. store may be nil, in
// which case the wrong set lives only in memory.
func NewEngine(questions []bank.Question, wrong wrongset.Set, store WrongStore, opts ...EngineOption) *Engine {
	if wrong == nil {
		wrong = wrongset.New()
	}
	e := &Engine{
		questions: questions,
		wrong:     wrong,
		store:     store,
		rng:       DefaultRand(),
		log:       zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// StartRound replaces any current round with a fresh one for mode.
func (e *Engine) StartRound(mode Mode) *SessionState {
	e.state = NewRound(e.questions, mode, e.wrong, e.rng)
	e.log.Debug().
		Str("round_id", e.state.RoundID).
		Str("mode", string(mode)).
		Int("questions", len(e.state.Working)).
		Msg("round started")
	return e.state
}

// Submit scores choice against the current question. A nil outcome means
// the answer was ignored. When the wrong set changes it is saved before
// Submit returns; a save failure is returned alongside the outcome and
// leaves the in-memory set updated.
func (e *Engine) Submit(ctx context.Context, choice string) (*AnswerOutcome, error) {
	if e.state == nil {
		return nil, nil
	}
	out := HandleAnswer(e.state, e.wrong, choice)
	if out == nil || !out.WrongSetChanged {
		return out, nil
	}
	if err := e.persist(ctx); err != nil {
		return out, err
	}
	return out, nil
}

// Advance moves past the current question. See Advance.
func (e *Engine) Advance() (skipped, ok bool) {
	if e.state == nil {
		return false, false
	}
	return Advance(e.state)
}

// ClearWrong empties and saves the wrong-answer set. In review mode the
// round restarts, leaving an empty working list. restarted reports
// whether that happened.
func (e *Engine) ClearWrong(ctx context.Context) (restarted bool, err error) {
	e.wrong.Clear()
	err = e.persist(ctx)

	if e.state != nil && e.state.Mode == ModeReview {
		e.StartRound(ModeReview)
		restarted = true
	}
	return restarted, err
}

// State returns the current round, or nil before the first StartRound.
func (e *Engine) State() *SessionState {
	return e.state
}

// Mode returns the mode of the current round, defaulting to normal.
func (e *Engine) Mode() Mode {
	if e.state == nil {
		return ModeNormal
	}
	return e.state.Mode
}

// WrongSet returns a copy of the wrong-answer set.
func (e *Engine) WrongSet() wrongset.Set {
	return e.wrong.Clone()
}

// Questions returns the loaded bank.
func (e *Engine) Questions() []bank.Question {
	return e.questions
}

func (e *Engine) persist(ctx context.Context) error {
	if e.store == nil {
		return nil
	}
	if err := e.store.Save(ctx, e.wrong); err != nil {
		e.log.Error().Err(err).Int("size", e.wrong.Len()).Msg("failed to save wrong-answer set")
		return fmt.Errorf("save wrong-answer set: %w", err)
	}
	return nil
}
