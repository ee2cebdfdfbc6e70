package addresses

import (
	"context"
	"errors"

	"github.com/EmpoweredVote/roster-backend/internal/apperr"
	"github.com/EmpoweredVote/roster-backend/internal/db"
	"github.com/EmpoweredVote/roster-backend/internal/logutil"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(conn *gorm.DB) *Repository {
	return &Repository{db: conn}
}

func (in Input) validate() error {
	if in.Name == "" || in.Address == "" {
		return apperr.Validation("Name and address are required")
	}
	return nil
}

func (r *Repository) List(ctx context.Context) ([]Address, error) {
	addresses := []Address{}
	err := r.db.WithContext(ctx).Order("id").Find(&addresses).Error
	return addresses, err
}

func (r *Repository) Get(ctx context.Context, id uint) (Address, error) {
	var a Address
	err := r.db.WithContext(ctx).First(&a, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Address{}, apperr.NotFound("Address not found")
	}
	return a, err
}

// Create inserts the address and re-points matching sample users at it in
// one transaction.
func (r *Repository) Create(ctx context.Context, in Input) (Address, error) {
	if err := in.validate(); err != nil {
		return Address{}, err
	}

	a := Address{Name: in.Name, Address: in.Address}
	var linked int64
	err := db.WithTx(ctx, r.db, func(tx *gorm.DB) error {
		if err := tx.Create(&a).Error; err != nil {
			return err
		}
		n, err := relink(tx, a)
		linked = n
		return err
	})
	if err != nil {
		return Address{}, err
	}

	log := logutil.GetOrDefault(ctx)
	log.Debug().Uint("address.id", a.ID).Int64("linked", linked).Msg("address created")
	return a, nil
}

// Update rewrites the address in place and re-links by the new name. Sample
// users matching only the old name keep their reference.
func (r *Repository) Update(ctx context.Context, id uint, in Input) (Address, error) {
	if err := in.validate(); err != nil {
		return Address{}, err
	}

	a := Address{ID: id, Name: in.Name, Address: in.Address}
	var linked int64
	err := db.WithTx(ctx, r.db, func(tx *gorm.DB) error {
		res := tx.Model(&Address{}).Where("id = ?", id).Updates(map[string]any{
			"name":    in.Name,
			"address": in.Address,
		})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperr.NotFound("Address not found")
		}
		n, err := relink(tx, a)
		linked = n
		return err
	})
	if err != nil {
		return Address{}, err
	}

	log := logutil.GetOrDefault(ctx)
	log.Debug().Uint("address.id", a.ID).Int64("linked", linked).Msg("address updated")
	return a, nil
}

// Delete unlinks sample users by the address name before removing the row.
// A missing id is a no-op.
func (r *Repository) Delete(ctx context.Context, id uint) error {
	return db.WithTx(ctx, r.db, func(tx *gorm.DB) error {
		var a Address
		err := tx.Select("id", "name").First(&a, "id = ?", id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		if _, err := unlink(tx, a.Name); err != nil {
			return err
		}
		return tx.Delete(&Address{}, "id = ?", id).Error
	})
}
