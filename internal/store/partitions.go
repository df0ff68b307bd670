package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/parquet-go/parquet-go"

	"github.com/roach88/airq/internal/movement"
	"github.com/roach88/airq/internal/queryir"
	"github.com/roach88/airq/internal/querysql"
)

// PartitionExt is the suffix of partition files.
const PartitionExt = ".parquet"

// recordSchema is the parquet schema partitions are decoded into.
var recordSchema = parquet.SchemaOf(movement.Record{})

// projection is the subset of columns copied into the movements table.
type projection struct {
	columns []string
	index   []int // position of each column in movement.Columns
}

// newProjection keeps the columns a request reads. A request that reads no
// column still needs one row per record, so it loads the year alone.
func newProjection(req queryir.Aggregate) projection {
	cols := queryir.Columns(req)
	if len(cols) == 0 {
		cols = []string{movement.ColYear}
	}

	p := projection{columns: cols, index: make([]int, len(cols))}
	for i, col := range cols {
		for j, c := range movement.Columns {
			if c == col {
				p.index[i] = j
				break
			}
		}
	}
	return p
}

func (p projection) insertSQL() string {
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		querysql.Table,
		strings.Join(p.columns, ", "),
		strings.TrimSuffix(strings.Repeat("?, ", len(p.columns)), ", "))
}

// args returns the projected values of rec, reusing dst.
func (p projection) args(rec movement.Record, dst []any) []any {
	all := rec.Args()
	dst = dst[:0]
	for _, i := range p.index {
		dst = append(dst, all[i])
	}
	return dst
}

// Partitions lists the partition files directly inside the directory, sorted
// by name. A missing directory or one without partition files is
// KindDataUnavailable.
func (a *Accessor) Partitions() ([]string, error) {
	entries, err := os.ReadDir(a.dir)
	if err != nil {
		return nil, dataUnavailable("discover", a.dir, err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), PartitionExt) {
			continue
		}
		files = append(files, filepath.Join(a.dir, e.Name()))
	}

	if len(files) == 0 {
		return nil, dataUnavailable("discover", a.dir, errNoPartitions)
	}
	return files, nil
}

// load copies the projected columns of every record that can satisfy filter
// into the movements table. Returns the number of records inserted.
func (a *Accessor) load(ctx context.Context, db *sql.DB, files []string, filter queryir.Predicate, proj projection) (int, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin load: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, proj.insertSQL())
	if err != nil {
		return 0, fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	total := 0
	for _, path := range files {
		n, err := a.loadPartition(ctx, stmt, path, filter, proj)
		total += n
		if err != nil {
			if IsDataUnavailable(err) {
				return total, err
			}
			return total, executionError("load", path, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return total, fmt.Errorf("commit load: %w", err)
	}
	return total, nil
}

// loadPartition streams one parquet file into the prepared insert.
func (a *Accessor) loadPartition(ctx context.Context, stmt *sql.Stmt, path string, filter queryir.Predicate, proj projection) (int, error) {
	file, pf, err := openPartition(path, movement.Columns)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	reader := parquet.NewGenericReader[movement.Record](pf)
	defer reader.Close()

	buf := make([]movement.Record, a.batchSize)
	args := make([]any, 0, len(proj.columns))
	inserted := 0
	for {
		if err := ctx.Err(); err != nil {
			return inserted, err
		}

		n, readErr := reader.Read(buf)
		for _, rec := range buf[:n] {
			if !matches(filter, rec) {
				continue
			}
			if _, err := stmt.ExecContext(ctx, proj.args(rec, args)...); err != nil {
				return inserted, fmt.Errorf("insert record: %w", err)
			}
			inserted++
		}

		if errors.Is(readErr, io.EOF) {
			return inserted, nil
		}
		if readErr != nil {
			return inserted, fmt.Errorf("failed to read rows: %w", readErr)
		}
	}
}

// openPartition opens a parquet partition and checks cols against the
// record schema. The caller closes the returned file.
func openPartition(path string, cols []string) (*os.File, *parquet.File, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open file: %w", err)
	}

	stat, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, nil, fmt.Errorf("failed to stat file: %w", err)
	}

	pf, err := parquet.OpenFile(file, stat.Size())
	if err != nil {
		file.Close()
		return nil, nil, fmt.Errorf("failed to open parquet file: %w", err)
	}

	if err := checkSchema(path, pf.Schema(), cols); err != nil {
		file.Close()
		return nil, nil, err
	}
	return file, pf, nil
}

// checkSchema requires every column in cols to be present with the physical
// type movement.Record declares. A partition that fails is reported as
// KindDataUnavailable naming the offending columns.
func checkSchema(path string, schema *parquet.Schema, cols []string) error {
	var missing, mismatched []string
	for _, col := range cols {
		got, ok := schema.Lookup(col)
		if !ok {
			missing = append(missing, col)
			continue
		}
		want, _ := recordSchema.Lookup(col)
		if gk, wk := got.Node.Type().Kind(), want.Node.Type().Kind(); gk != wk {
			mismatched = append(mismatched, fmt.Sprintf("%s is %s, want %s", col, gk, wk))
		}
	}

	switch {
	case len(missing) > 0:
		return dataUnavailable("schema", path,
			fmt.Errorf("partition schema is missing columns: %s", strings.Join(missing, ", ")))
	case len(mismatched) > 0:
		return dataUnavailable("schema", path,
			fmt.Errorf("partition column types differ: %s", strings.Join(mismatched, "; ")))
	}
	return nil
}

// matches evaluates a filter against a record before it is loaded.
// It never rejects a record the SQL filter would keep: when a literal's type
// differs from the column's, the record is kept and SQL decides.
func matches(p queryir.Predicate, r movement.Record) bool {
	switch pred := p.(type) {
	case nil:
		return true
	case queryir.Equals:
		return compare(r, pred.Column, pred.Value, true)
	case *queryir.Equals:
		return compare(r, pred.Column, pred.Value, true)
	case queryir.NotEquals:
		return compare(r, pred.Column, pred.Value, false)
	case *queryir.NotEquals:
		return compare(r, pred.Column, pred.Value, false)
	case queryir.And:
		return matchesAll(pred.Predicates, r)
	case *queryir.And:
		return matchesAll(pred.Predicates, r)
	default:
		return true
	}
}

func matchesAll(preds []queryir.Predicate, r movement.Record) bool {
	for _, p := range preds {
		if !matches(p, r) {
			return false
		}
	}
	return true
}

func compare(r movement.Record, column string, want movement.Value, equal bool) bool {
	got, ok := r.Field(column)
	if !ok || want == nil {
		return true
	}
	switch w := want.(type) {
	case movement.Text:
		g, ok := got.(movement.Text)
		if !ok {
			return true
		}
		return (g == w) == equal
	case movement.Int:
		g, ok := got.(movement.Int)
		if !ok {
			return true
		}
		return (g == w) == equal
	default:
		return true
	}
}
