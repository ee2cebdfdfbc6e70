// Package schema migrates every table the service owns.
package schema

import (
	"github.com/EmpoweredVote/roster-backend/internal/addresses"
	"github.com/EmpoweredVote/roster-backend/internal/auth"
	"github.com/EmpoweredVote/roster-backend/internal/designations"
	"github.com/EmpoweredVote/roster-backend/internal/sampleusers"
	"gorm.io/gorm"
)

func Migrate(conn *gorm.DB) error {
	for _, m := range []func(*gorm.DB) error{
		auth.Migrate,
		designations.Migrate,
		addresses.Migrate,
		sampleusers.Migrate,
	} {
		if err := m(conn); err != nil {
			return err
		}
	}
	return nil
}
