package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"

	"github.com/chronosvault/chronosvault/internal/auth"
	"github.com/chronosvault/chronosvault/internal/clock"
	"github.com/chronosvault/chronosvault/internal/model"
	"github.com/chronosvault/chronosvault/internal/repository"
)

// ErrInvalidRegistration indicates a blank handle or password.
var ErrInvalidRegistration = errors.New("handle and password are required")

// UserStore is the persistence surface the auth service needs.
// Implemented by *repository.Repository.
type UserStore interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByHandle(ctx context.Context, handle string) (*model.User, error)
}

// SessionStore holds opaque bearer tokens. Implemented by *cache.Cache.
type SessionStore interface {
	SetSession(ctx context.Context, token string, session *model.Session, ttl time.Duration) error
	DeleteSession(ctx context.Context, token string) error
}

// AuthService handles registration, login and logout.
type AuthService struct {
	users      UserStore
	sessions   SessionStore
	clock      clock.Clock
	sessionTTL time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(users UserStore, sessions SessionStore, clk clock.Clock, sessionTTL time.Duration) *AuthService {
	return &AuthService{
		users:      users,
		sessions:   sessions,
		clock:      clk,
		sessionTTL: sessionTTL,
	}
}

// Register creates a new user with an argon2id-hashed password.
func (s *AuthService) Register(ctx context.Context, handle, password string) (*model.User, error) {
	handle = strings.TrimSpace(handle)
	if handle == "" || password == "" {
		return nil, ErrInvalidRegistration
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		ID:           ulid.Make().String(),
		Handle:       handle,
		PasswordHash: hash,
		CreatedAt:    s.clock.Now(),
	}

	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrHandleExists) {
			return nil, ErrHandleTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Login verifies credentials and issues an opaque session token.
// Unknown handle and wrong password both return ErrInvalidCredentials;
// the response never distinguishes the two.
func (s *AuthService) Login(ctx context.Context, handle, password string) (string, error) {
	user, err := s.users.GetUserByHandle(ctx, strings.TrimSpace(handle))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	match, err := auth.VerifyPassword(password, user.PasswordHash)
	if err != nil || !match {
		return "", ErrInvalidCredentials
	}

	token := newSessionToken()
	session := &model.Session{
		UserID:    user.ID,
		CreatedAt: s.clock.Now(),
	}

	if err := s.sessions.SetSession(ctx, token, session, s.sessionTTL); err != nil {
		return "", fmt.Errorf("failed to store session: %w", err)
	}

	return token, nil
}

// Logout revokes a session token. Revoking an unknown token succeeds.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.sessions.DeleteSession(ctx, token)
}

// newSessionToken returns an opaque, unguessable bearer token.
func newSessionToken() string {
	return uuid.NewString() + uuid.NewString()
}
