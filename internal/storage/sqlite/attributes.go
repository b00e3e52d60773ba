package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/sandevgo/memobot/internal/core"
)

type AttributeRepo struct {
	db *sql.DB
}

func NewAttributeRepo(db *sql.DB) *AttributeRepo {
	return &AttributeRepo{db: db}
}

// RecordAttribute appends a row; earlier rows for the same attribute are kept.
func (r *AttributeRepo) RecordAttribute(ctx context.Context, userID, name, value string) error {
	query := `INSERT INTO user_info (user, attribute, value, created_at) VALUES (?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, query, userID, name, value, time.Now().UTC()); err != nil {
		return fmt.Errorf("%w: failed to insert attribute %q: %w", core.ErrStorage, name, err)
	}
	return nil
}

func (r *AttributeRepo) LookupAttribute(ctx context.Context, userID, name string) (string, bool, error) {
	query := `SELECT value FROM user_info WHERE user = ? AND attribute = ? ORDER BY id DESC LIMIT 1`

	var value string
	err := r.db.QueryRowContext(ctx, query, userID, name).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("%w: failed to lookup attribute %q: %w", core.ErrStorage, name, err)
	}
	return value, true, nil
}

// Attributes lists every stored row for a user in insertion order.
func (r *AttributeRepo) Attributes(ctx context.Context, userID string) ([]core.UserAttribute, error) {
	query := `SELECT id, user, attribute, value, created_at FROM user_info WHERE user = ? ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query attributes: %w", core.ErrStorage, err)
	}
	defer rows.Close()

	var attrs []core.UserAttribute
	for rows.Next() {
		var a core.UserAttribute
		if err := rows.Scan(&a.ID, &a.UserID, &a.Attribute, &a.Value, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: failed to scan attribute: %w", core.ErrStorage, err)
		}
		attrs = append(attrs, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrStorage, err)
	}
	return attrs, nil
}
