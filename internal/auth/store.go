package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/EmpoweredVote/roster-backend/internal/apperr"
	"github.com/EmpoweredVote/roster-backend/internal/db"
	"golang.org/x/text/unicode/norm"
	"gorm.io/gorm"
)

// CredentialStore persists username and password-hash pairs. Username
// uniqueness is enforced by the unique index, not by a prior lookup.
type CredentialStore struct {
	db *gorm.DB
}

func NewCredentialStore(conn *gorm.DB) *CredentialStore {
	return &CredentialStore{db: conn}
}

// NormalizeUsername folds visually identical unicode spellings together.
func NormalizeUsername(username string) string {
	return norm.NFC.String(strings.TrimSpace(username))
}

func (s *CredentialStore) Register(ctx context.Context, username, password string) (User, error) {
	username = NormalizeUsername(username)
	if username == "" || password == "" {
		return User{}, apperr.Validation("Username and password are required")
	}

	hashed, err := HashPassword(password)
	if err != nil {
		return User{}, err
	}

	user := User{Username: username, PasswordHash: hashed}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		if db.IsUniqueViolation(err) {
			return User{}, apperr.Conflict("User already exists")
		}
		return User{}, err
	}
	return user, nil
}

func (s *CredentialStore) FindByUsername(ctx context.Context, username string) (User, error) {
	var user User
	err := s.db.WithContext(ctx).First(&user, "username = ?", NormalizeUsername(username)).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return User{}, apperr.NotFound("User not found")
	}
	return user, err
}

func (s *CredentialStore) FindByID(ctx context.Context, id uint) (User, error) {
	var user User
	err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return User{}, apperr.NotFound("User not found")
	}
	return user, err
}
