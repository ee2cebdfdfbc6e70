package auth

import (
	"fmt"

	"gorm.io/gorm"
)

func Migrate(conn *gorm.DB) error {
	if err := conn.AutoMigrate(&User{}, &Session{}); err != nil {
		return fmt.Errorf("auto-migrate auth tables: %w", err)
	}
	return nil
}
