package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/99minutos/auth-service/internal/infrastructure/db/postgres/migrations"
)

const (
	defaultTimeout       = 10 * time.Second
	defaultSlowThreshold = 200 * time.Millisecond
)

// Config captures the settings required to open the Postgres connection pool.
type Config struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	Timeout         time.Duration
}

// Store owns the GORM handle and the underlying pool. It is created once at
// startup, handed to the repositories, and closed on shutdown.
type Store struct {
	db  *gorm.DB
	sql *sql.DB
}

// Open connects to Postgres through GORM's pgx dialector, applies the pool
// settings and verifies connectivity with a ping. A default timeout is
// applied when none is provided.
func Open(ctx context.Context, cfg Config, log zerolog.Logger) (*Store, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	gl := gormlogger.New(&log, gormlogger.Config{
		SlowThreshold:             defaultSlowThreshold,
		LogLevel:                  gormlogger.Warn,
		IgnoreRecordNotFoundError: true,
	})

	db, err := gorm.Open(pgdriver.Open(cfg.DSN), &gorm.Config{
		Logger:                 gl,
		SkipDefaultTransaction: true,
		TranslateError:         true,
		DisableAutomaticPing:   true,
	})
	if err != nil {
		return nil, fmt.Errorf("postgres open: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("postgres pool: %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := sqlDB.PingContext(pingCtx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("postgres ping: %w", err)
	}

	return &Store{db: db, sql: sqlDB}, nil
}

// Migrate applies the embedded goose migrations.
func (s *Store) Migrate(ctx context.Context) error {
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, s.sql, "."); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}

// Ping checks database connectivity; used by the readiness probe.
func (s *Store) Ping(ctx context.Context) error {
	return s.sql.PingContext(ctx)
}

func (s *Store) Close() error {
	return s.sql.Close()
}

// Users returns the user repository bound to this store.
func (s *Store) Users() *UserRepository {
	return NewUserRepository(s.db)
}
