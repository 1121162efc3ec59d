package database

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Sandanu06/citf-backend-v1/config"
	"github.com/Sandanu06/citf-backend-v1/models"
	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open builds the process-wide connection pool described by cfg and migrates the
// schema. With SCHEMA_REPORT=true the schema is left untouched so drift can be reported.
//
// DB_TYPE selects the store:
//   - "postgres": DATABASE_URL, or DB_HOST/DB_USER/DB_PASSWORD/DB_NAME/DB_PORT/DB_SSLMODE
//   - "supa":     same keys, sslmode defaults to require
//   - "sqlite":   SQLITE_PATH (default data/citf.db), for local development
func Open(cfg map[string]string) (*gorm.DB, error) {
	dialector, err := dialectorFor(cfg)
	if err != nil {
		return nil, err
	}

	db, err := OpenWithDialector(dialector, config.GetInt(cfg, "DB_MAX_OPEN_CONNS", 10))
	if err != nil {
		return nil, err
	}

	if config.GetBool(cfg, "SCHEMA_REPORT", false) {
		return db, nil
	}
	if err := models.Migrate(db); err != nil {
		if sqlDB, dbErr := db.DB(); dbErr == nil {
			_ = sqlDB.Close()
		}
		return nil, err
	}
	return db, nil
}

// OpenWithDialector opens and pings a pool for an already chosen dialect.
func OpenWithDialector(dialector gorm.Dialector, maxOpenConns int) (*gorm.DB, error) {
	gormLog := log.With().Str("component", "gorm").Logger()
	newLogger := logger.New(
		&gormLog,
		logger.Config{
			SlowThreshold:             2 * time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(dialector, &gorm.Config{
		PrepareStmt:    false,
		TranslateError: true,
		Logger:         newLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql db: %w", err)
	}
	if maxOpenConns <= 0 {
		maxOpenConns = 10
	}
	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxOpenConns)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return db, nil
}

func dialectorFor(cfg map[string]string) (gorm.Dialector, error) {
	dbType := strings.ToLower(config.GetString(cfg, "DB_TYPE", "postgres"))

	switch dbType {
	case "postgres", "supa":
		return postgres.New(postgres.Config{
			DSN:                  postgresDSN(cfg, dbType),
			PreferSimpleProtocol: true,
		}), nil
	case "sqlite":
		path := config.GetString(cfg, "SQLITE_PATH", filepath.Join("data", "citf.db"))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create sqlite directory: %w", err)
		}
		return sqlite.Open(path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"), nil
	default:
		return nil, errors.New("unsupported DB_TYPE " + dbType)
	}
}

func postgresDSN(cfg map[string]string, dbType string) string {
	if url := config.GetString(cfg, "DATABASE_URL", ""); url != "" {
		return url
	}

	defaultSSL := "disable"
	if dbType == "supa" {
		defaultSSL = "require"
	}

	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		config.GetString(cfg, "DB_HOST", "localhost"),
		config.GetString(cfg, "DB_USER", "postgres"),
		config.GetString(cfg, "DB_PASSWORD", ""),
		config.GetString(cfg, "DB_NAME", "postgres"),
		config.GetString(cfg, "DB_PORT", "5432"),
		config.GetString(cfg, "DB_SSLMODE", defaultSSL),
	)
}
