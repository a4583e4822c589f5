package session

import (
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/quizdeck/internal/bank"
	"github.com/abhisek/quizdeck/internal/wrongset"
)

// AnswerOutcome describes a scored answer.
type AnswerOutcome struct {
	Question bank.Question
	Choice   string
	Correct  bool

	// WrongSetChanged is true when the answer added or removed the
	// question from the wrong-answer set.
	WrongSetChanged bool
}

// NewRound builds a fresh round for mode. Nothing carries over from any
// earlier round.
func NewRound(questions []bank.Question, mode Mode, wrong wrongset.Set, rng RandSource) *SessionState {
	return &SessionState{
		RoundID:   uuid.New().String(),
		Mode:      mode,
		Working:   SelectWorkingList(questions, mode, wrong, rng),
		StartTime: time.Now(),
	}
}

// HandleAnswer scores choice against the current question and updates
// wrong in place. It returns nil when the answer is ignored: no working
// list, round complete, or the question was already answered.
func HandleAnswer(state *SessionState, wrong wrongset.Set, choice string) *AnswerOutcome {
	if !state.CanAnswer() {
		return nil
	}
	q, _ := state.Current()

	state.AnsweredCurrent = true
	state.AnsweredCount++

	out := &AnswerOutcome{
		Question: q,
		Choice:   choice,
		Correct:  choice == q.Answer,
	}

	if out.Correct {
		state.CorrectCount++
		state.Feedback = Feedback{Kind: FeedbackCorrect, QuestionID: q.ID(), Choice: choice, Answer: q.Answer}
		if state.Mode == ModeReview {
			out.WrongSetChanged = wrong.Remove(q.ID())
		}
		return out
	}

	state.Feedback = Feedback{Kind: FeedbackIncorrect, QuestionID: q.ID(), Choice: choice, Answer: q.Answer}
	out.WrongSetChanged = wrong.Add(q.ID())
	return out
}

// Advance moves past the current question. A question left unanswered is
// recorded as skipped and does not count towards either counter. ok is
// false when there was nothing to advance past.
func Advance(state *SessionState) (skipped, ok bool) {
	q, has := state.Current()
	if !has {
		return false, false
	}

	if state.AnsweredCurrent {
		state.Feedback = Feedback{}
	} else {
		skipped = true
		state.Feedback = Feedback{Kind: FeedbackSkipped, QuestionID: q.ID(), Answer: q.Answer}
	}

	state.CurrentIndex++
	state.AnsweredCurrent = false
	return skipped, true
}
