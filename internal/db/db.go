package db

import (
	"errors"
	"fmt"
	"time"

	"github.com/EmpoweredVote/roster-backend/internal/config"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Options tunes a connection opened with Open.
type Options struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	SlowThreshold   time.Duration
	Log             zerolog.Logger
}

// Connect opens the Postgres pool described by cfg.
func Connect(cfg *config.Config, log zerolog.Logger) (*gorm.DB, error) {
	if cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL is empty")
	}
	conn, err := Open(postgres.Open(cfg.DatabaseURL), Options{
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnMaxLifetime,
		SlowThreshold:   cfg.DBSlowThreshold,
		Log:             log,
	})
	if err != nil {
		return nil, err
	}
	log.Info().Msg("Connected to database")
	return conn, nil
}

// Open wraps gorm.Open with the logger and pool settings shared by every
// dialect we run against.
func Open(dialector gorm.Dialector, opts Options) (*gorm.DB, error) {
	sqlLog := opts.Log.With().Str("component", "gorm").Logger()
	lg := logger.New(
		&sqlLog,
		logger.Config{
			SlowThreshold:             opts.SlowThreshold,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	conn, err := gorm.Open(dialector, &gorm.Config{
		Logger:         lg,
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	sqlDB, err := conn.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}
	if opts.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(opts.MaxOpenConns)
	}
	if opts.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(opts.MaxIdleConns)
	}
	if opts.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(opts.ConnMaxLifetime)
	}
	return conn, nil
}

// Close releases the underlying pool.
func Close(conn *gorm.DB) error {
	sqlDB, err := conn.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// IsUniqueViolation reports whether err came from a unique constraint.
func IsUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
