package repository

import (
	"context"
	"fmt"

	"github.com/chronosvault/chronosvault/internal/model"
)

// CreateCapsule inserts a new capsule into the database.
func (r *Repository) CreateCapsule(ctx context.Context, capsule *model.Capsule) error {
	query := `
		INSERT INTO capsules (id, owner_id, message, unlock_at, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.pool.Exec(ctx, query,
		capsule.ID,
		capsule.OwnerID,
		capsule.Message,
		capsule.UnlockAt,
		capsule.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create capsule: %w", err)
	}

	return nil
}

// ListCapsulesByOwner returns every capsule owned by the given user,
// unordered. Bucket ordering is the classifier's job, not the store's.
func (r *Repository) ListCapsulesByOwner(ctx context.Context, ownerID string) ([]*model.Capsule, error) {
	query := `
		SELECT id, owner_id, message, unlock_at, created_at
		FROM capsules
		WHERE owner_id = $1
	`

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list capsules: %w", err)
	}
	defer rows.Close()

	var capsules []*model.Capsule
	for rows.Next() {
		var c model.Capsule
		if err := rows.Scan(&c.ID, &c.OwnerID, &c.Message, &c.UnlockAt, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan capsule: %w", err)
		}
		capsules = append(capsules, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating capsules: %w", err)
	}

	return capsules, nil
}

// DeleteCapsule removes a capsule if it exists and is owned by ownerID.
// Zero rows affected is not an error: the caller must not learn whether
// the id exists under another owner.
func (r *Repository) DeleteCapsule(ctx context.Context, ownerID, id string) error {
	query := `
		DELETE FROM capsules
		WHERE id = $1 AND owner_id = $2
	`

	if _, err := r.pool.Exec(ctx, query, id, ownerID); err != nil {
		return fmt.Errorf("failed to delete capsule: %w", err)
	}

	return nil
}

// CountCapsulesByOwner returns the number of capsules owned by a user.
func (r *Repository) CountCapsulesByOwner(ctx context.Context, ownerID string) (int64, error) {
	query := `SELECT COUNT(*) FROM capsules WHERE owner_id = $1`

	var count int64
	if err := r.pool.QueryRow(ctx, query, ownerID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count capsules: %w", err)
	}

	return count, nil
}
