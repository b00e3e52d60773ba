package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sandevgo/memobot/internal/core"
	"github.com/sandevgo/memobot/pkg/log"
)

type TranscriptRepo struct {
	db *sql.DB
}

func NewTranscriptRepo(db *sql.DB) *TranscriptRepo {
	return &TranscriptRepo{db: db}
}

func (r *TranscriptRepo) RecordTurn(ctx context.Context, userID, userMessage, botResponse string) (core.TranscriptEntry, error) {
	entry := core.TranscriptEntry{
		UserID:    userID,
		User:      userMessage,
		Bot:       botResponse,
		CreatedAt: time.Now().UTC(),
	}

	query := `INSERT INTO chat_history (user_id, user, bot, created_at) VALUES (?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query, userID, userMessage, botResponse, entry.CreatedAt)
	if err != nil {
		return core.TranscriptEntry{}, fmt.Errorf("%w: failed to insert turn: %w", core.ErrStorage, err)
	}

	entry.ID, err = res.LastInsertId()
	if err != nil {
		return core.TranscriptEntry{}, fmt.Errorf("%w: %w", core.ErrStorage, err)
	}
	return entry, nil
}

func (r *TranscriptRepo) AllTurns(ctx context.Context, userID string) ([]core.TranscriptEntry, error) {
	query := `SELECT id, user_id, user, bot, created_at FROM chat_history WHERE user_id = ? ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query turns: %w", core.ErrStorage, err)
	}
	defer rows.Close()

	entries, err := scanTurns(rows)
	if err != nil {
		return nil, err
	}

	log.FromCtx(ctx).Debug().Int("count", len(entries)).Msg("loaded transcript")
	return entries, nil
}

// RecentTurns returns the last limit turns in chronological order.
func (r *TranscriptRepo) RecentTurns(ctx context.Context, userID string, limit int) ([]core.TranscriptEntry, error) {
	if limit <= 0 {
		return r.AllTurns(ctx, userID)
	}

	// Fetch the LAST 'limit' turns by ordering DESC
	query := `SELECT id, user_id, user, bot, created_at FROM chat_history WHERE user_id = ? ORDER BY id DESC LIMIT ?`

	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query turns: %w", core.ErrStorage, err)
	}
	defer rows.Close()

	entries, err := scanTurns(rows)
	if err != nil {
		return nil, err
	}

	// Newest -> Oldest back to Oldest -> Newest
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}

	log.FromCtx(ctx).Debug().Int("count", len(entries)).Int("limit", limit).Msg("loaded recent transcript")
	return entries, nil
}

func scanTurns(rows *sql.Rows) ([]core.TranscriptEntry, error) {
	entries := make([]core.TranscriptEntry, 0)
	for rows.Next() {
		var e core.TranscriptEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.User, &e.Bot, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: failed to scan turn: %w", core.ErrStorage, err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrStorage, err)
	}
	return entries, nil
}
