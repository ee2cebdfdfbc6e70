package sampleusers

import (
	"fmt"

	"gorm.io/gorm"
)

func Migrate(conn *gorm.DB) error {
	if err := conn.AutoMigrate(&SampleUser{}); err != nil {
		return fmt.Errorf("auto-migrate sample_users: %w", err)
	}
	return nil
}
