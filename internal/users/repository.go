// Package users manages accounts through the /users endpoints. It shares the
// users table with auth and never exposes the stored hash.
package users

import (
	"context"
	"errors"

	"github.com/EmpoweredVote/roster-backend/internal/apperr"
	"github.com/EmpoweredVote/roster-backend/internal/auth"
	"github.com/EmpoweredVote/roster-backend/internal/db"
	"gorm.io/gorm"
)

type Input struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (in *Input) normalize() error {
	in.Username = auth.NormalizeUsername(in.Username)
	if in.Username == "" || in.Password == "" {
		return apperr.Validation("Username and password are required")
	}
	return nil
}

type Repository struct {
	db *gorm.DB
}

func NewRepository(conn *gorm.DB) *Repository {
	return &Repository{db: conn}
}

func (r *Repository) List(ctx context.Context) ([]auth.User, error) {
	users := []auth.User{}
	err := r.db.WithContext(ctx).Order("id").Find(&users).Error
	return users, err
}

func (r *Repository) Get(ctx context.Context, id uint) (auth.User, error) {
	var u auth.User
	err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return auth.User{}, apperr.NotFound("User not found")
	}
	return u, err
}

func (r *Repository) Create(ctx context.Context, in Input) (auth.User, error) {
	if err := in.normalize(); err != nil {
		return auth.User{}, err
	}
	hashed, err := auth.HashPassword(in.Password)
	if err != nil {
		return auth.User{}, err
	}

	u := auth.User{Username: in.Username, PasswordHash: hashed}
	if err := r.db.WithContext(ctx).Create(&u).Error; err != nil {
		if db.IsUniqueViolation(err) {
			return auth.User{}, apperr.Conflict("User already exists")
		}
		return auth.User{}, err
	}
	return u, nil
}

// Update replaces both username and password. The password is always
// rehashed.
func (r *Repository) Update(ctx context.Context, id uint, in Input) (auth.User, error) {
	if err := in.normalize(); err != nil {
		return auth.User{}, err
	}
	hashed, err := auth.HashPassword(in.Password)
	if err != nil {
		return auth.User{}, err
	}

	res := r.db.WithContext(ctx).Model(&auth.User{}).Where("id = ?", id).Updates(map[string]any{
		"username": in.Username,
		"password": hashed,
	})
	if res.Error != nil {
		if db.IsUniqueViolation(res.Error) {
			return auth.User{}, apperr.Conflict("User already exists")
		}
		return auth.User{}, res.Error
	}
	if res.RowsAffected == 0 {
		return auth.User{}, apperr.NotFound("User not found")
	}
	return auth.User{ID: id, Username: in.Username, PasswordHash: hashed}, nil
}

// Delete removes the user together with any stored sessions. Sessions held
// by the memory backend are not reachable from here and run out on their TTL.
func (r *Repository) Delete(ctx context.Context, id uint) error {
	return db.WithTx(ctx, r.db, func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&auth.Session{}).Error; err != nil {
			return err
		}
		return tx.Delete(&auth.User{}, "id = ?", id).Error
	})
}
