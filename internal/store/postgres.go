package store

import (
	"context"
	_ "embed"
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// schemaSQL is embedded so a fresh database can be bootstrapped with DB_AUTO_MIGRATE.
//
//go:embed schema.sql
var schemaSQL string

// Row is one result row keyed by column name.
type Row = map[string]any

//go:generate mockgen -package=mocks -destination=mocks/mock_store.go github.com/f3rva/workout-service/internal/store Querier,Gateway

// Querier runs parameterized read statements.
type Querier interface {
	// Query returns every row in result order. No rows yields an empty slice.
	Query(ctx context.Context, stmt string, args ...any) ([]Row, error)

	// QueryOne returns the first row, or ok=false when the statement matched nothing.
	QueryOne(ctx context.Context, stmt string, args ...any) (row Row, ok bool, err error)
}

// Gateway is a Querier that can also pin one connection across several statements.
type Gateway interface {
	Querier

	// Session holds a single connection for the duration of fn and releases it
	// on every exit path.
	Session(ctx context.Context, fn func(q Querier) error) error
}

// PostgresStore is the read path to the workout database.
type PostgresStore struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

var _ Gateway = (*PostgresStore)(nil)

// NewPostgresStore creates a connection pool. Connections are opened lazily,
// so an unreachable database surfaces on first use rather than here.
func NewPostgresStore(ctx context.Context, dsn string, logger *slog.Logger) (*PostgresStore, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, &StorageError{Op: "parse config", Err: err}
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, &StorageError{Op: "connect", Err: err}
	}

	return &PostgresStore{pool: pool, logger: logger}, nil
}

// EnsureSchema applies schema.sql. Safe to run multiple times.
func (p *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := p.pool.Exec(ctx, schemaSQL); err != nil {
		return &StorageError{Op: "ensure schema", Err: err}
	}
	return nil
}

// Ping validates DB connectivity.
func (p *PostgresStore) Ping(ctx context.Context) error {
	if err := p.pool.Ping(ctx); err != nil {
		return &StorageError{Op: "ping", Err: err}
	}
	return nil
}

// Close shuts down the connection pool.
func (p *PostgresStore) Close() {
	p.pool.Close()
}

// Session acquires one pooled connection, runs fn against it and releases it.
func (p *PostgresStore) Session(ctx context.Context, fn func(q Querier) error) error {
	conn, err := p.pool.Acquire(ctx)
	if err != nil {
		p.logger.Error("acquire connection failed", "error", err)
		return &StorageError{Op: "acquire", Err: err}
	}
	defer conn.Release()

	return fn(connQuerier{conn: conn})
}

// Query runs stmt in its own session.
func (p *PostgresStore) Query(ctx context.Context, stmt string, args ...any) ([]Row, error) {
	var out []Row
	err := p.Session(ctx, func(q Querier) error {
		var err error
		out, err = q.Query(ctx, stmt, args...)
		return err
	})
	return out, err
}

// QueryOne runs stmt in its own session.
func (p *PostgresStore) QueryOne(ctx context.Context, stmt string, args ...any) (Row, bool, error) {
	var (
		row Row
		ok  bool
	)
	err := p.Session(ctx, func(q Querier) error {
		var err error
		row, ok, err = q.QueryOne(ctx, stmt, args...)
		return err
	})
	return row, ok, err
}

// connQuerier runs statements on an already acquired connection.
type connQuerier struct {
	conn *pgxpool.Conn
}

func (c connQuerier) Query(ctx context.Context, stmt string, args ...any) ([]Row, error) {
	rows, err := c.conn.Query(ctx, stmt, args...)
	if err != nil {
		return nil, &StorageError{Op: "query", Err: err}
	}

	out, err := pgx.CollectRows(rows, pgx.RowToMap)
	if err != nil {
		return nil, &StorageError{Op: "read rows", Err: err}
	}
	if out == nil {
		out = []Row{}
	}
	return out, nil
}

func (c connQuerier) QueryOne(ctx context.Context, stmt string, args ...any) (Row, bool, error) {
	rows, err := c.conn.Query(ctx, stmt, args...)
	if err != nil {
		return nil, false, &StorageError{Op: "query", Err: err}
	}

	// CollectOneRow keeps the first row and closes the rest.
	row, err := pgx.CollectOneRow(rows, pgx.RowToMap)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, &StorageError{Op: "read row", Err: err}
	}
	return row, true, nil
}
