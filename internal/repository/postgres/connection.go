package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"storea/internal/domain/repositories"
)

// Pool is the subset of pgxpool.Pool the repositories rely on. Satisfied
// by *pgxpool.Pool in production and by mock pools in tests.
type Pool interface {
	repositories.DBTX
	Begin(ctx context.Context) (pgx.Tx, error)
}

// RepositoryConfig holds configuration for repository implementations
type RepositoryConfig struct {
	Pool   Pool
	Tables *TableNames
	Logger *slog.Logger
}

// TableNames holds dynamically prefixed table names
type TableNames struct {
	Projects    string
	Documents   string
	Versions    string
	ActivityLog string
	Profiles    string
}

// NewTableNames creates table names with the given prefix
func NewTableNames(prefix string) *TableNames {
	return &TableNames{
		Projects:    fmt.Sprintf("%sprojects", prefix),
		Documents:   fmt.Sprintf("%sdocuments", prefix),
		Versions:    fmt.Sprintf("%sdocument_versions", prefix),
		ActivityLog: fmt.Sprintf("%sactivity_log", prefix),
		Profiles:    fmt.Sprintf("%sprofiles", prefix),
	}
}

// CreateConnectionPool creates a new pgx connection pool.
//
// When the connection goes through a transaction pooler (port 6543 on
// Supabase), prepared statements break with "prepared statement already
// exists". QueryExecModeCacheDescribe keeps the extended protocol (needed
// for JSONB encoding of map values) while only caching statement
// descriptions, which the pooler tolerates. An explicit
// default_query_exec_mode in the connection string takes precedence.
func CreateConnectionPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse connection string: %w", err)
	}

	// Configure pool size
	config.MaxConns = 25
	config.MinConns = 5

	if config.ConnConfig.Port == 6543 && config.ConnConfig.DefaultQueryExecMode == pgx.QueryExecModeCacheStatement {
		config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeCacheDescribe
		slog.Debug("auto-configured cache_describe mode for transaction pooler compatibility", "port", 6543)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	// Test connection
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return pool, nil
}

// GetExecutor returns the appropriate query executor for the context.
// If a transaction is present in the context, it returns the transaction;
// otherwise the provided pool. This lets repositories automatically
// participate in transactions when they exist.
func GetExecutor(ctx context.Context, pool Pool) repositories.DBTX {
	if tx := repositories.GetTx(ctx); tx != nil {
		return tx
	}
	return pool
}
