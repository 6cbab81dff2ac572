// Package db manages the PostgreSQL connection that backs the ledger.
package db

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/yosan-kanri/backend/config"
)

const (
	connectProbeTimeout = 5 * time.Second
	healthProbeTimeout  = 2 * time.Second
)

// Database wraps a pooled GORM connection to the ledger database.
type Database struct {
	db  *gorm.DB
	cfg *config.DatabaseConfig
}

// NewPostgresConnection opens a PostgreSQL connection, applies the pool
// settings from cfg and verifies the server is reachable before returning.
func NewPostgresConnection(cfg *config.DatabaseConfig) (*Database, error) {
	gormDB, err := gorm.Open(postgres.Open(cfg.URL), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open postgres connection: %w", err)
	}

	d := &Database{db: gormDB, cfg: cfg}
	if err := d.configurePool(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), connectProbeTimeout)
	defer cancel()
	if err := d.ping(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	slog.Info("database connected",
		"max_open_conns", cfg.MaxOpenConns,
		"max_idle_conns", cfg.MaxIdleConns,
	)
	return d, nil
}

func (d *Database) configurePool() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return fmt.Errorf("access sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(d.cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(d.cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(d.cfg.ConnMaxLifetime)
	return nil
}

func (d *Database) ping(ctx context.Context) error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// DB exposes the GORM handle for the repositories.
func (d *Database) DB() *gorm.DB {
	return d.db
}

// HealthCheck reports whether the database currently answers a ping.
func (d *Database) HealthCheck() bool {
	ctx, cancel := context.WithTimeout(context.Background(), healthProbeTimeout)
	defer cancel()

	if err := d.ping(ctx); err != nil {
		slog.Error("database health check failed", "error", err)
		return false
	}
	return true
}

// Close releases the underlying connection pool.
func (d *Database) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return fmt.Errorf("access sql.DB: %w", err)
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("close database: %w", err)
	}
	slog.Info("database connection closed")
	return nil
}

// AutoMigrate reconciles the schema with the given models on startup.
func (d *Database) AutoMigrate(models ...interface{}) error {
	if err := d.db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("auto-migrate schema: %w", err)
	}
	return nil
}
