package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/chronosvault/chronosvault/internal/model"
)

// ErrEntryNotFound is returned when a diary entry does not exist.
var ErrEntryNotFound = errors.New("diary entry not found")

// CreateDiaryEntry inserts a new diary entry into the database.
func (r *Repository) CreateDiaryEntry(ctx context.Context, entry *model.DiaryEntry) error {
	query := `
		INSERT INTO diary_entries (id, owner_id, content, posted_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.pool.Exec(ctx, query,
		entry.ID,
		entry.OwnerID,
		entry.Content,
		entry.PostedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create diary entry: %w", err)
	}

	return nil
}

// ListDiaryEntriesByOwner returns a user's diary entries, newest first.
func (r *Repository) ListDiaryEntriesByOwner(ctx context.Context, ownerID string) ([]*model.DiaryEntry, error) {
	query := `
		SELECT id, owner_id, content, posted_at
		FROM diary_entries
		WHERE owner_id = $1
		ORDER BY posted_at DESC
	`

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list diary entries: %w", err)
	}
	defer rows.Close()

	var entries []*model.DiaryEntry
	for rows.Next() {
		var e model.DiaryEntry
		if err := rows.Scan(&e.ID, &e.OwnerID, &e.Content, &e.PostedAt); err != nil {
			return nil, fmt.Errorf("failed to scan diary entry: %w", err)
		}
		entries = append(entries, &e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating diary entries: %w", err)
	}

	return entries, nil
}

// GetDiaryEntryByID retrieves a diary entry by its raw identifier.
// Callers looking entries up on behalf of a user must re-check ownership.
func (r *Repository) GetDiaryEntryByID(ctx context.Context, id string) (*model.DiaryEntry, error) {
	query := `
		SELECT id, owner_id, content, posted_at
		FROM diary_entries
		WHERE id = $1
	`

	var entry model.DiaryEntry
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&entry.ID,
		&entry.OwnerID,
		&entry.Content,
		&entry.PostedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrEntryNotFound
		}
		return nil, fmt.Errorf("failed to get diary entry: %w", err)
	}

	return &entry, nil
}
