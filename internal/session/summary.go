package session

import (
	"math"
	"time"
)

// RoundSummary holds the tally shown when a round completes.
type RoundSummary struct {
	RoundID  string
	Mode     Mode
	Total    int
	Answered int
	Correct  int
	Accuracy int // percent, rounded
	Duration time.Duration
}

// Accuracy returns correct as a rounded percentage of answered, or 0 when
// nothing was answered.
func Accuracy(correct, answered int) int {
	if answered <= 0 {
		return 0
	}
	return int(math.Round(float64(correct) * 100 / float64(answered)))
}

// BuildSummary creates a RoundSummary from the current session state.
func BuildSummary(state *SessionState) *RoundSummary {
	return &RoundSummary{
		RoundID:  state.RoundID,
		Mode:     state.Mode,
		Total:    len(state.Working),
		Answered: state.AnsweredCount,
		Correct:  state.CorrectCount,
		Accuracy: Accuracy(state.CorrectCount, state.AnsweredCount),
		Duration: time.Since(state.StartTime),
	}
}
