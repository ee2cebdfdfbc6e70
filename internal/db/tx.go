package db

import (
	"context"

	"gorm.io/gorm"
)

// WithTx runs fn inside a transaction bound to ctx. It commits when fn
// returns nil and rolls back on error or panic; panics are rethrown.
//
// Every statement inside fn must go through tx, never through conn.
func WithTx(ctx context.Context, conn *gorm.DB, fn func(tx *gorm.DB) error) (err error) {
	tx := conn.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
		if err != nil {
			tx.Rollback()
			return
		}
		err = tx.Commit().Error
	}()

	err = fn(tx)
	return err
}
