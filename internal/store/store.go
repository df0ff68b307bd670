package store

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/roach88/airq/internal/movement"
	"github.com/roach88/airq/internal/queryir"
	"github.com/roach88/airq/internal/querysql"
)

//go:embed schema.sql
var schemaSQL string

// DefaultQueryTimeout bounds a single aggregation, load included.
const DefaultQueryTimeout = 30 * time.Second

// defaultBatchSize is the number of records read from a partition at a time.
const defaultBatchSize = 1024

// OpenFunc opens the private database an aggregation runs in.
// Every call must return a fresh, isolated handle.
type OpenFunc func(ctx context.Context) (*sql.DB, error)

// Accessor presents a directory of parquet partitions as one relation.
//
// Each Aggregate call opens its own in-memory SQLite database, loads the
// partitions into it, runs one statement and closes it. No state is shared
// between calls, so an Accessor is safe for concurrent use.
type Accessor struct {
	dir       string
	timeout   time.Duration
	batchSize int
	open      OpenFunc
	compiler  *querysql.SQLCompiler
	logger    *slog.Logger
}

// Option configures an Accessor.
type Option func(*Accessor)

// WithTimeout sets the per-aggregation timeout.
func WithTimeout(d time.Duration) Option {
	return func(a *Accessor) {
		a.timeout = d
	}
}

// WithLogger sets the logger used for execution diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(a *Accessor) {
		a.logger = l
	}
}

// WithOpener replaces the database opener (for testing).
func WithOpener(open OpenFunc) Option {
	return func(a *Accessor) {
		a.open = open
	}
}

// WithBatchSize sets how many records are read from a partition at a time.
func WithBatchSize(n int) Option {
	return func(a *Accessor) {
		if n > 0 {
			a.batchSize = n
		}
	}
}

// New creates an Accessor over the partition files in dir.
// The directory is not touched until the first aggregation.
func New(dir string, opts ...Option) *Accessor {
	a := &Accessor{
		dir:       dir,
		timeout:   DefaultQueryTimeout,
		batchSize: defaultBatchSize,
		open:      openMemory,
		compiler:  querysql.NewSQLCompiler(),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Dir returns the partition directory.
func (a *Accessor) Dir() string {
	return a.dir
}

// Aggregate executes one aggregation request.
//
// Only the columns the request reads are copied into the database.
//
// Errors:
//   - KindDataUnavailable when the directory is missing or empty, or a
//     partition lacks a column or stores it with the wrong type
//   - KindQueryExecution when the request is malformed, a partition cannot
//     be loaded, the engine rejects the statement, or the timeout expires
func (a *Accessor) Aggregate(ctx context.Context, req queryir.Aggregate) (ResultRows, error) {
	files, err := a.Partitions()
	if err != nil {
		return ResultRows{}, err
	}

	query, params, err := a.compiler.Compile(req)
	if err != nil {
		return ResultRows{}, executionError("compile", "", err)
	}

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	start := time.Now()

	db, err := a.open(ctx)
	if err != nil {
		return ResultRows{}, a.fail(ctx, "open", "", err)
	}
	defer db.Close()

	if err := applySchema(ctx, db); err != nil {
		return ResultRows{}, a.fail(ctx, "open", "", err)
	}

	proj := newProjection(req)
	loaded, err := a.load(ctx, db, files, req.Filter, proj)
	if err != nil {
		if IsDataUnavailable(err) {
			return ResultRows{}, err
		}
		var qe *QueryError
		if errors.As(err, &qe) {
			return ResultRows{}, a.fail(ctx, qe.Op, qe.Path, qe.Err)
		}
		return ResultRows{}, a.fail(ctx, "load", "", err)
	}

	result, err := execute(ctx, db, query, params, req)
	if err != nil {
		return ResultRows{}, a.fail(ctx, "execute", "", err)
	}

	a.logger.Debug("aggregate executed",
		"partitions", len(files),
		"rows_loaded", loaded,
		"columns_loaded", len(proj.columns),
		"rows", len(result.Rows),
		"elapsed", time.Since(start))

	return result, nil
}

// fail builds an execution error, attributing it to the timeout when the
// context expired.
func (a *Accessor) fail(ctx context.Context, op, path string, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		if errors.Is(ctxErr, context.DeadlineExceeded) {
			err = fmt.Errorf("query timed out after %s: %w", a.timeout, ctxErr)
		} else {
			err = fmt.Errorf("query cancelled: %w", ctxErr)
		}
	}
	return executionError(op, path, err)
}

// openMemory opens a private in-memory SQLite database.
// A single connection keeps the database alive for the handle's lifetime.
func openMemory(ctx context.Context) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

// applySchema sets pragmas and creates the movements table.
func applySchema(ctx context.Context, db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = OFF",
		"PRAGMA synchronous = OFF",
	}

	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}

	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}

	return nil
}

// execute runs the compiled statement and scans every row.
func execute(ctx context.Context, db *sql.DB, query string, params []any, req queryir.Aggregate) (ResultRows, error) {
	rows, err := db.QueryContext(ctx, query, params...)
	if err != nil {
		return ResultRows{}, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	result := ResultRows{
		GroupBy:  append([]string(nil), req.GroupBy...),
		Measures: make([]string, 0, len(req.Measures)),
	}
	for _, m := range req.Measures {
		result.Measures = append(result.Measures, m.Name)
	}

	for rows.Next() {
		keys := make([]any, len(req.GroupBy))
		values := make([]sql.NullFloat64, len(req.Measures))

		dest := make([]any, 0, len(keys)+len(values))
		for i := range keys {
			dest = append(dest, &keys[i])
		}
		for i := range values {
			dest = append(dest, &values[i])
		}

		if err := rows.Scan(dest...); err != nil {
			return ResultRows{}, fmt.Errorf("scan: %w", err)
		}

		row := Row{
			Keys:   make(map[string]movement.Value, len(keys)),
			Values: make(map[string]float64, len(values)),
		}
		for i, col := range req.GroupBy {
			row.Keys[col] = movement.ValueOf(keys[i])
		}
		for i, m := range req.Measures {
			row.Values[m.Name] = values[i].Float64
		}
		result.Rows = append(result.Rows, row)
	}

	if err := rows.Err(); err != nil {
		return ResultRows{}, fmt.Errorf("iterate rows: %w", err)
	}

	return result, nil
}
