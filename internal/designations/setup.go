package designations

import (
	"fmt"

	"gorm.io/gorm"
)

func Migrate(conn *gorm.DB) error {
	if err := conn.AutoMigrate(&Designation{}); err != nil {
		return fmt.Errorf("auto-migrate designations: %w", err)
	}
	return nil
}
