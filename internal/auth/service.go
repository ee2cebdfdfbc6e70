package auth

import (
	"context"
	"errors"
	"time"

	"github.com/EmpoweredVote/roster-backend/internal/apperr"
)

// Service runs the authentication flow: Anonymous -> Authenticated(user) on
// login, back to Anonymous on logout.
type Service struct {
	creds    *CredentialStore
	sessions SessionStore
	ttl      time.Duration
	now      func() time.Time
}

func NewService(creds *CredentialStore, sessions SessionStore, ttl time.Duration) *Service {
	return &Service{creds: creds, sessions: sessions, ttl: ttl, now: time.Now}
}

func (s *Service) Register(ctx context.Context, username, password string) (User, error) {
	return s.creds.Register(ctx, username, password)
}

// Login returns apperr.ErrRejected for both an unknown username and a wrong
// password.
func (s *Service) Login(ctx context.Context, username, password string) (User, Session, error) {
	if NormalizeUsername(username) == "" || password == "" {
		return User{}, Session{}, apperr.Validation("Username and password are required")
	}

	user, err := s.creds.FindByUsername(ctx, username)
	if errors.Is(err, apperr.ErrNotFound) {
		VerifyPassword(password, string(dummyHash))
		return User{}, Session{}, apperr.ErrRejected
	}
	if err != nil {
		return User{}, Session{}, err
	}

	if !VerifyPassword(password, user.PasswordHash) {
		return User{}, Session{}, apperr.ErrRejected
	}

	session, err := s.sessions.Create(ctx, user.ID, s.ttl)
	if err != nil {
		return User{}, Session{}, err
	}
	return user, session, nil
}

func (s *Service) Logout(ctx context.Context, token string) error {
	return s.sessions.Destroy(ctx, token)
}

// Identify resolves a token to its live session without mutating anything.
// Empty, unknown and expired tokens all give ErrUnauthorized.
func (s *Service) Identify(ctx context.Context, token string) (Session, error) {
	if token == "" {
		return Session{}, apperr.ErrUnauthorized
	}
	session, err := s.sessions.Find(ctx, token)
	if errors.Is(err, apperr.ErrNotFound) {
		return Session{}, apperr.ErrUnauthorized
	}
	if err != nil {
		return Session{}, err
	}
	if session.ExpiresAt.Before(s.now()) {
		return Session{}, apperr.Unauthorized("Session expired")
	}
	return session, nil
}

func (s *Service) CurrentIdentity(ctx context.Context, token string) (uint, error) {
	session, err := s.Identify(ctx, token)
	if err != nil {
		return 0, err
	}
	return session.UserID, nil
}

func (s *Service) User(ctx context.Context, id uint) (User, error) {
	return s.creds.FindByID(ctx, id)
}
