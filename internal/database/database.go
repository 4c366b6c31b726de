package database

import (
	"context"
	"fmt"
	"log"
	"strings"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/orgauth/internal/entities"
)

type Database struct {
	DB *gorm.DB
}

// Option customises NewDatabase.
type Option func(*gorm.Config)

// WithLogLevel sets the gorm logger level: silent, error, warn or info.
func WithLogLevel(level string) Option {
	return func(cfg *gorm.Config) {
		cfg.Logger = logger.Default.LogMode(parseLogLevel(level))
	}
}

func parseLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}

// Models lists every entity managed by AutoMigrate.
func Models() []any {
	return []any{
		&entities.User{},
		&entities.Organisation{},
		&entities.Membership{},
	}
}

func NewDatabase(dbPath string, opts ...Option) (*Database, error) {
	gormCfg := &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	}
	for _, opt := range opts {
		opt(gormCfg)
	}

	db, err := gorm.Open(sqlite.Open(dbPath), gormCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Every connection to ":memory:" is a separate database
	if isMemoryPath(dbPath) {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to access connection pool: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
	}

	if err := db.AutoMigrate(Models()...); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	log.Printf("Database initialized successfully at %s", dbPath)

	return &Database{DB: db}, nil
}

func isMemoryPath(dbPath string) bool {
	return dbPath == ":memory:" || strings.Contains(dbPath, "mode=memory")
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Ping checks that the database is reachable.
func (d *Database) Ping(ctx context.Context) error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Counts is a snapshot of table sizes.
type Counts struct {
	Users         int64
	Organisations int64
	Memberships   int64
}

// Counts returns the number of rows in each identity table.
func (d *Database) Counts(ctx context.Context) (Counts, error) {
	var counts Counts
	db := d.DB.WithContext(ctx)
	if err := db.Model(&entities.User{}).Count(&counts.Users).Error; err != nil {
		return counts, err
	}
	if err := db.Model(&entities.Organisation{}).Count(&counts.Organisations).Error; err != nil {
		return counts, err
	}
	if err := db.Model(&entities.Membership{}).Count(&counts.Memberships).Error; err != nil {
		return counts, err
	}
	return counts, nil
}

// Optimize lets SQLite refresh its query planner statistics.
func (d *Database) Optimize(ctx context.Context) error {
	return d.DB.WithContext(ctx).Exec("PRAGMA optimize").Error
}
