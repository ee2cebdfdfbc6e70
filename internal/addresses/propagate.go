package addresses

import (
	"github.com/EmpoweredVote/roster-backend/internal/sampleusers"
	"gorm.io/gorm"
)

// The link between a sample user and its address is kept by name: the
// address most recently created or updated with name N is the one referenced
// by every sample user named N. All of these run inside the caller's
// transaction.

// relink points every sample user named a.Name at a. No match is not an
// error.
func relink(tx *gorm.DB, a Address) (int64, error) {
	res := tx.Model(&sampleusers.SampleUser{}).
		Where("name = ?", a.Name).
		Update("addresses_id", a.ID)
	return res.RowsAffected, res.Error
}

// unlink clears the address reference of every sample user named name.
func unlink(tx *gorm.DB, name string) (int64, error) {
	res := tx.Model(&sampleusers.SampleUser{}).
		Where("name = ?", name).
		Update("addresses_id", nil)
	return res.RowsAffected, res.Error
}
