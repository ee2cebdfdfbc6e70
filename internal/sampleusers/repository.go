package sampleusers

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

// age 0 counts as missing, same as an absent field
func (in Input) validate() error {
	if in.Name == "" || in.Age == 0 || in.DesignationID == 0 {
		return apperr.Validation("Name, age, and designation are required")
	}
	return nil
}

func (r *Repository) List(ctx context.Context) ([]SampleUser, error) {
	users := []SampleUser{}
	err := r.db.WithContext(ctx).Order("id").Find(&users).Error
	return users, err
}

func (r *Repository) Get(ctx context.Context, id uint) (SampleUser, error) {
	var u SampleUser
	err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return SampleUser{}, apperr.NotFound("Sample user not found")
	}
	return u, err
}

func (r *Repository) Create(ctx context.Context, in Input) (SampleUser, error) {
	if err := in.validate(); err != nil {
		return SampleUser{}, err
	}
	designationID := in.DesignationID
	u := SampleUser{Name: in.Name, Age: in.Age, DesignationID: &designationID}
	if err := r.db.WithContext(ctx).Create(&u).Error; err != nil {
		return SampleUser{}, err
	}
	return u, nil
}

func (r *Repository) Update(ctx context.Context, id uint, in Input) (SampleUser, error) {
	if err := in.validate(); err != nil {
		return SampleUser{}, err
	}
	res := r.db.WithContext(ctx).Model(&SampleUser{}).Where("id = ?", id).Updates(map[string]any{
		"name":           in.Name,
		"age":            in.Age,
		"designation_id": in.DesignationID,
	})
	if res.Error != nil {
		return SampleUser{}, res.Error
	}
	if res.RowsAffected == 0 {
		return SampleUser{}, apperr.NotFound("Sample user not found")
	}
	// re-read so the caller sees the propagator-owned addresses_id
	return r.Get(ctx, id)
}

func (r *Repository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&SampleUser{}, "id = ?", id).Error
}

// Names joins sample users to their designation and address. Rows missing
// either reference are left out.
func (r *Repository) Names(ctx context.Context) ([]NameRow, error) {
	rows := []NameRow{}
	err := r.db.WithContext(ctx).
		Table("sample_users AS su").
		Select("su.name AS name, d.title AS title, a.address AS address").
		Joins("JOIN designations d ON su.designation_id = d.id").
		Joins("JOIN addresses a ON su.addresses_id = a.id").
		Order("su.id").
		Scan(&rows).Error
	return rows, err
}
