package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
)

// eventRepo implements EventRepo on the round_events and answer_events tables.
type eventRepo struct {
	db  *sqlx.DB
	seq *sequenceCounter
}

type roundSummaryRow struct {
	RoundID      string `db:"round_id"`
	Mode         string `db:"mode"`
	CreatedAt    int64  `db:"created_at"`
	Total        int    `db:"total"`
	Answered     int    `db:"answered"`
	Correct      int    `db:"correct"`
	DurationSecs int    `db:"duration_secs"`
}

type missRow struct {
	QuestionID string `db:"question_id"`
	Misses     int    `db:"misses"`
}

func (r *eventRepo) AppendRoundEvent(ctx context.Context, data RoundEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO round_events
			(sequence, created_at, round_id, mode, action, total, answered, correct, duration_secs)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		seqNum, time.Now().UnixMilli(), data.RoundID, data.Mode, data.Action,
		data.Total, data.Answered, data.Correct, data.DurationSecs,
	)
	if err != nil {
		return fmt.Errorf("save round event: %w", err)
	}
	return nil
}

func (r *eventRepo) AppendAnswerEvent(ctx context.Context, data AnswerEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO answer_events
			(sequence, created_at, round_id, mode, question_id, choice, correct_answer, correct)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		seqNum, time.Now().UnixMilli(), data.RoundID, data.Mode, data.QuestionID,
		data.Choice, data.CorrectAnswer, data.Correct,
	)
	if err != nil {
		return fmt.Errorf("save answer event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryRoundSummaries(ctx context.Context, opts QueryOpts) ([]RoundSummaryRecord, error) {
	where := []string{"action = ?"}
	args := []any{RoundActionEnd}
	if opts.Mode != "" {
		where = append(where, "mode = ?")
		args = append(args, opts.Mode)
	}
	if !opts.From.IsZero() {
		where = append(where, "created_at >= ?")
		args = append(args, opts.From.UnixMilli())
	}
	if !opts.To.IsZero() {
		where = append(where, "created_at <= ?")
		args = append(args, opts.To.UnixMilli())
	}

	query := `SELECT round_id, mode, created_at, total, answered, correct, duration_secs
		FROM round_events WHERE ` + strings.Join(where, " AND ") + ` ORDER BY sequence DESC`
	if opts.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, opts.Limit)
	}

	var rows []roundSummaryRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("query round summaries: %w", err)
	}

	records := make([]RoundSummaryRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, RoundSummaryRecord{
			RoundID:      row.RoundID,
			Mode:         row.Mode,
			Timestamp:    time.UnixMilli(row.CreatedAt),
			Total:        row.Total,
			Answered:     row.Answered,
			Correct:      row.Correct,
			DurationSecs: row.DurationSecs,
		})
	}
	return records, nil
}

func (r *eventRepo) MostMissed(ctx context.Context, limit int) ([]MissRecord, error) {
	if limit <= 0 {
		limit = 10
	}

	var rows []missRow
	err := r.db.SelectContext(ctx, &rows,
		`SELECT question_id, COUNT(*) AS misses
		FROM answer_events WHERE correct = 0
		GROUP BY question_id
		ORDER BY misses DESC, MAX(sequence) DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query most missed: %w", err)
	}

	records := make([]MissRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, MissRecord{QuestionID: row.QuestionID, Misses: row.Misses})
	}
	return records, nil
}
