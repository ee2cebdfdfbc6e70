package addresses

import (
	"fmt"

	"gorm.io/gorm"
)

func Migrate(conn *gorm.DB) error {
	if err := conn.AutoMigrate(&Address{}); err != nil {
		return fmt.Errorf("auto-migrate addresses: %w", err)
	}
	return nil
}
