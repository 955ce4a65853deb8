// Package storage owns the relational database handle: driver
// selection, connection retry, and schema migration.
package storage

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"blogapp/internal/model"
)

var (
	// ErrUnsupportedDriver is returned for a driver other than postgres or sqlite.
	ErrUnsupportedDriver = errors.New("storage: unsupported database driver")
	// ErrConnectionFailed is returned when all connection attempts are exhausted.
	ErrConnectionFailed = errors.New("storage: failed to open database connection")
)

// Config is the environment-sourced database configuration.
type Config struct {
	Driver        string        `env:"DB_DRIVER" envDefault:"postgres"`
	DSN           string        `env:"DB_DSN,required"`
	MaxOpenConns  int           `env:"DB_MAX_OPEN_CONNS" envDefault:"10"`
	MaxIdleConns  int           `env:"DB_MAX_IDLE_CONNS" envDefault:"5"`
	RetryAttempts int           `env:"DB_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval time.Duration `env:"DB_RETRY_INTERVAL" envDefault:"5s"`
}

// Open establishes a database connection with linear backoff between
// attempts. Postgres is the production driver; sqlite serves local
// development and tests.
func Open(cfg Config) (*gorm.DB, error) {
	dialector, err := dialectorFor(cfg)
	if err != nil {
		return nil, err
	}

	gormCfg := &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	}

	var lastErr error
	attempts := max(cfg.RetryAttempts, 1)
	for i := 0; i < attempts; i++ {
		db, err := gorm.Open(dialector, gormCfg)
		if err != nil {
			lastErr = err
			time.Sleep(time.Duration(i+1) * cfg.RetryInterval)
			continue
		}

		sqlDB, err := db.DB()
		if err != nil {
			lastErr = err
			time.Sleep(time.Duration(i+1) * cfg.RetryInterval)
			continue
		}
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)

		return db, nil
	}

	return nil, errors.Join(ErrConnectionFailed, lastErr)
}

func dialectorFor(cfg Config) (gorm.Dialector, error) {
	switch cfg.Driver {
	case "postgres":
		return postgres.Open(cfg.DSN), nil
	case "sqlite":
		return sqlite.Open(cfg.DSN), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, cfg.Driver)
	}
}

// Migrate applies the schema for every persistent model.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Post{},
		&model.Follow{},
		&model.DeliveryAttempt{},
	)
}
