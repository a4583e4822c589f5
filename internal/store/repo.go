package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by KVRepo.Get when the key is absent.
var ErrNotFound = errors.New("not found")

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit int       // max results (0 = unlimited)
	Mode  string    // filter by round mode ("" = any)
	From  time.Time // timestamp >= From
	To    time.Time // timestamp <= To
}

// KVRepo is a small durable key-value store.
type KVRepo interface {
	// Get returns the value stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) (string, error)

	// Put stores value under key, replacing any prior value.
	Put(ctx context.Context, key, value string) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}

// Round event actions.
const (
	RoundActionStart = "start"
	RoundActionEnd   = "end"
)

// RoundEventData captures a round lifecycle event.
type RoundEventData struct {
	RoundID      string
	Mode         string
	Action       string // RoundActionStart or RoundActionEnd
	Total        int    // working list size
	Answered     int
	Correct      int
	DurationSecs int
}

// AnswerEventData captures a single scored answer.
type AnswerEventData struct {
	RoundID       string
	Mode          string
	QuestionID    string
	Choice        string
	CorrectAnswer string
	Correct       bool
}

// RoundSummaryRecord is a completed round read back from the event log.
type RoundSummaryRecord struct {
	RoundID      string
	Mode         string
	Timestamp    time.Time
	Total        int
	Answered     int
	Correct      int
	DurationSecs int
}

// MissRecord counts incorrect answers for one question.
type MissRecord struct {
	QuestionID string
	Misses     int
}

// EventRepo provides append and query access to round history.
type EventRepo interface {
	// AppendRoundEvent records a round start or end.
	AppendRoundEvent(ctx context.Context, data RoundEventData) error

	// AppendAnswerEvent records one scored answer.
	AppendAnswerEvent(ctx context.Context, data AnswerEventData) error

	// QueryRoundSummaries returns completed rounds, newest first.
	QueryRoundSummaries(ctx context.Context, opts QueryOpts) ([]RoundSummaryRecord, error)

	// MostMissed returns the questions answered incorrectly most often.
	MostMissed(ctx context.Context, limit int) ([]MissRecord, error)
}
