package session

import (
	"time"

	"github.com/abhisek/quizdeck/internal/bank"
)

// Mode selects how a round's working list is built.
type Mode string

const (
	ModeNormal Mode = "normal" // random sample of the whole bank
	ModeReview Mode = "review" // questions in the wrong-answer set
)

// FeedbackKind classifies the most recent engine outcome shown to the learner.
type FeedbackKind int

const (
	FeedbackNone FeedbackKind = iota
	FeedbackCorrect
	FeedbackIncorrect
	FeedbackSkipped
)

// Feedback describes the outcome of the last answer or skip.
type Feedback struct {
	Kind FeedbackKind

	// QuestionID identifies the question the feedback refers to.
	QuestionID string

	// Choice is the token the learner picked (empty for skips).
	Choice string

	// Answer is the correct token.
	Answer string
}

// SessionState tracks one round. It is replaced wholesale when a new
// round starts.
type SessionState struct {
	// RoundID is a UUID identifying this round in the event log.
	RoundID string

	// Mode is the mode the working list was built for.
	Mode Mode

	// Working is the ordered list of questions for this round.
	Working []bank.Question

	// CurrentIndex points into Working. len(Working) means the round is complete.
	CurrentIndex int

	// AnsweredCurrent is true once the current question has been scored.
	AnsweredCurrent bool

	// AnsweredCount is the number of questions scored this round.
	AnsweredCount int

	// CorrectCount is the number of correct answers this round.
	CorrectCount int

	// Feedback is the outcome of the last answer or skip.
	Feedback Feedback

	// StartTime is when the round began.
	StartTime time.Time
}

// Current returns the question at CurrentIndex. ok is false when the
// working list is empty or the round is complete.
func (s *SessionState) Current() (q bank.Question, ok bool) {
	if s == nil || s.CurrentIndex < 0 || s.CurrentIndex >= len(s.Working) {
		return bank.Question{}, false
	}
	return s.Working[s.CurrentIndex], true
}

// Empty reports whether the round has no questions at all.
func (s *SessionState) Empty() bool {
	return s == nil || len(s.Working) == 0
}

// Complete reports whether every question in a non-empty round has been
// passed.
func (s *SessionState) Complete() bool {
	return !s.Empty() && s.CurrentIndex >= len(s.Working)
}

// CanAnswer reports whether a choice submitted now would be scored.
func (s *SessionState) CanAnswer() bool {
	_, ok := s.Current()
	return ok && !s.AnsweredCurrent
}

// CanAdvance reports whether Advance would move the round forward.
func (s *SessionState) CanAdvance() bool {
	_, ok := s.Current()
	return ok
}
