package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rickgao/donor-medians/internal/config"
)

// Connect creates a connection pool and verifies it with a ping.
func Connect(ctx context.Context, cfg config.DBConfig, appName string) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(BuildConnString(cfg, appName))
	if err != nil {
		return nil, fmt.Errorf("parse connection string: %w", err)
	}

	poolCfg.MinConns = int32(cfg.MinConns)
	poolCfg.MaxConns = int32(cfg.MaxConns)

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return pool, nil
}

// Execer runs a statement without returning rows.
type Execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS medianvals_by_zip (
		run_id   UUID   NOT NULL,
		seq      BIGINT NOT NULL,
		cmte_id  TEXT   NOT NULL,
		zip_code TEXT   NOT NULL,
		median   BIGINT NOT NULL,
		count    BIGINT NOT NULL,
		total    BIGINT NOT NULL,
		PRIMARY KEY (run_id, seq)
	)`,
	`CREATE TABLE IF NOT EXISTS medianvals_by_date (
		run_id         UUID   NOT NULL,
		cmte_id        TEXT   NOT NULL,
		transaction_dt TEXT   NOT NULL,
		median         BIGINT NOT NULL,
		count          BIGINT NOT NULL,
		total          BIGINT NOT NULL,
		PRIMARY KEY (run_id, cmte_id, transaction_dt)
	)`,
}

// EnsureSchema creates the report tables if they do not exist.
func EnsureSchema(ctx context.Context, db Execer) error {
	for _, stmt := range schema {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	return nil
}
