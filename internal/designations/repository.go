package designations

import (
	"context"
	"errors"

	"github.com/EmpoweredVote/roster-backend/internal/apperr"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(conn *gorm.DB) *Repository {
	return &Repository{db: conn}
}

func (in Input) validate() error {
	if in.Title == "" || in.Description == "" {
		return apperr.Validation("Title and description are required")
	}
	return nil
}

func (r *Repository) List(ctx context.Context) ([]Designation, error) {
	designations := []Designation{}
	err := r.db.WithContext(ctx).Order("id").Find(&designations).Error
	return designations, err
}

func (r *Repository) Get(ctx context.Context, id uint) (Designation, error) {
	var d Designation
	err := r.db.WithContext(ctx).First(&d, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Designation{}, apperr.NotFound("Designation not found")
	}
	return d, err
}

func (r *Repository) Create(ctx context.Context, in Input) (Designation, error) {
	if err := in.validate(); err != nil {
		return Designation{}, err
	}
	d := Designation{Title: in.Title, Description: in.Description}
	if err := r.db.WithContext(ctx).Create(&d).Error; err != nil {
		return Designation{}, err
	}
	return d, nil
}

func (r *Repository) Update(ctx context.Context, id uint, in Input) (Designation, error) {
	if err := in.validate(); err != nil {
		return Designation{}, err
	}
	res := r.db.WithContext(ctx).Model(&Designation{}).Where("id = ?", id).Updates(map[string]any{
		"title":       in.Title,
		"description": in.Description,
	})
	if res.Error != nil {
		return Designation{}, res.Error
	}
	if res.RowsAffected == 0 {
		return Designation{}, apperr.NotFound("Designation not found")
	}
	return Designation{ID: id, Title: in.Title, Description: in.Description}, nil
}

// Delete does not touch sample_users rows that still reference the
// designation.
func (r *Repository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&Designation{}, "id = ?", id).Error
}
