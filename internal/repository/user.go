package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/chronosvault/chronosvault/internal/model"
)

// Common errors for user repository operations.
var (
	ErrUserNotFound = errors.New("user not found")
	ErrHandleExists = errors.New("handle already exists")
)

// CreateUser inserts a new user into the database.
func (r *Repository) CreateUser(ctx context.Context, user *model.User) error {
	query := `
		INSERT INTO users (id, handle, password_hash, avatar_ref, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.pool.Exec(ctx, query,
		user.ID,
		user.Handle,
		user.PasswordHash,
		user.AvatarRef,
		user.CreatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return ErrHandleExists
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// GetUserByID retrieves a user by their ID.
func (r *Repository) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	query := `
		SELECT id, handle, password_hash, avatar_ref, created_at
		FROM users
		WHERE id = $1
	`

	var user model.User
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&user.ID,
		&user.Handle,
		&user.PasswordHash,
		&user.AvatarRef,
		&user.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}

	return &user, nil
}

// GetUserByHandle retrieves a user by their unique handle.
func (r *Repository) GetUserByHandle(ctx context.Context, handle string) (*model.User, error) {
	query := `
		SELECT id, handle, password_hash, avatar_ref, created_at
		FROM users
		WHERE handle = $1
	`

	var user model.User
	err := r.pool.QueryRow(ctx, query, handle).Scan(
		&user.ID,
		&user.Handle,
		&user.PasswordHash,
		&user.AvatarRef,
		&user.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by handle: %w", err)
	}

	return &user, nil
}

// UpdateUserAvatar sets the avatar object reference for a user.
func (r *Repository) UpdateUserAvatar(ctx context.Context, userID, avatarRef string) error {
	query := `
		UPDATE users
		SET avatar_ref = $2
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query, userID, avatarRef)
	if err != nil {
		return fmt.Errorf("failed to update avatar: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrUserNotFound
	}

	return nil
}

// isUniqueViolation checks if the error is a PostgreSQL unique constraint violation.
func isUniqueViolation(err error) bool {
	// PostgreSQL error code 23505 is unique_violation
	return err != nil && (strings.Contains(err.Error(), "23505") || strings.Contains(err.Error(), "unique"))
}
