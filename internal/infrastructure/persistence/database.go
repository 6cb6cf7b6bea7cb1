package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/bricksflow/backend/internal/infrastructure/config"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Database is the PostgreSQL handle shared by every repository
type Database struct {
	DB *gorm.DB
}

type openSettings struct {
	log     logger.Interface
	plugins []gorm.Plugin
}

// Option configures Open
type Option func(*openSettings)

// WithLogger routes SQL logging through l. The default is silent.
func WithLogger(l logger.Interface) Option {
	return func(s *openSettings) { s.log = l }
}

// WithPlugin registers a GORM plugin, e.g. the tracing plugin
func WithPlugin(p gorm.Plugin) Option {
	return func(s *openSettings) {
		if p != nil {
			s.plugins = append(s.plugins, p)
		}
	}
}

// Open connects, sizes the pool from cfg and verifies the connection
func Open(cfg *config.DatabaseConfig, opts ...Option) (*Database, error) {
	s := openSettings{log: logger.Default.LogMode(logger.Silent)}
	for _, opt := range opts {
		opt(&s)
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger:                 s.log,
		SkipDefaultTransaction: true,
		PrepareStmt:            true,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Minute)
	sqlDB.SetConnMaxIdleTime(time.Duration(cfg.ConnMaxIdleTime) * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	for _, p := range s.plugins {
		if err := db.Use(p); err != nil {
			_ = sqlDB.Close()
			return nil, fmt.Errorf("register %s plugin: %w", p.Name(), err)
		}
	}
	return &Database{DB: db}, nil
}

// Close releases the pool
func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Ping checks the connection is alive
func (d *Database) Ping(ctx context.Context) error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// TableCount returns the number of tables in the public schema
func (d *Database) TableCount(ctx context.Context) (int64, error) {
	var n int64
	err := d.DB.WithContext(ctx).
		Raw("SELECT count(*) FROM information_schema.tables WHERE table_schema = 'public'").
		Scan(&n).Error
	if err != nil {
		return 0, fmt.Errorf("count tables: %w", err)
	}
	return n, nil
}
