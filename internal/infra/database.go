package infra

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx and applies the base
// schema. Only the shared tables live here — the per-restaurant tables are
// created at owner registration, inside the registration transaction.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := applyBaseSchema(db); err != nil {
		return nil, fmt.Errorf("base schema: %w", err)
	}

	return db, nil
}

// applyBaseSchema creates the shared tables. Every statement is idempotent so
// restarting against an existing database is a no-op.
func applyBaseSchema(db *gorm.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS restaurants (
			id          BIGSERIAL PRIMARY KEY,
			name        TEXT NOT NULL,
			owner_name  TEXT NOT NULL,
			phone       TEXT NOT NULL DEFAULT '',
			district    TEXT NOT NULL DEFAULT '',
			secret_code TEXT NOT NULL,
			logo        BYTEA,
			logo_mime   TEXT NOT NULL DEFAULT '',
			created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS users (
			id            BIGSERIAL PRIMARY KEY,
			name          TEXT NOT NULL,
			email         TEXT NOT NULL,
			phone         TEXT NOT NULL DEFAULT '',
			password_hash TEXT NOT NULL,
			role          VARCHAR(20) NOT NULL,
			restaurant_id BIGINT NOT NULL REFERENCES restaurants (id),
			created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users (email)`,
		`CREATE INDEX IF NOT EXISTS idx_users_restaurant ON users (restaurant_id)`,
	}

	for _, stmt := range stmts {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("schema %.40q: %w", stmt, err)
		}
	}
	return nil
}

// RunMigrations applies the base schema for integration tests.
func RunMigrations(db *gorm.DB) error {
	return applyBaseSchema(db)
}
