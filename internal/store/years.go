package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/roach88/airq/internal/movement"
)

// LatestYear returns the largest year across all partitions. found is false
// when the partitions hold no records.
//
// Only the year column is read: its pages are scanned for their bounds and
// no record is loaded into a database. Errors follow Aggregate.
func (a *Accessor) LatestYear(ctx context.Context) (year int, found bool, err error) {
	files, err := a.Partitions()
	if err != nil {
		return 0, false, err
	}

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	start := time.Now()
	var latest, values int64
	for _, path := range files {
		y, n, err := partitionMaxYear(ctx, path)
		if err != nil {
			if IsDataUnavailable(err) {
				return 0, false, err
			}
			return 0, false, a.fail(ctx, "latest year", path, err)
		}
		if n > 0 && (values == 0 || y > latest) {
			latest = y
		}
		values += n
	}

	a.logger.Debug("latest year scanned",
		"partitions", len(files),
		"values", values,
		"elapsed", time.Since(start))

	return int(latest), values > 0, nil
}

// partitionMaxYear returns the largest year in one partition and the number
// of non-null year values it holds.
func partitionMaxYear(ctx context.Context, path string) (int64, int64, error) {
	file, pf, err := openPartition(path, []string{movement.ColYear})
	if err != nil {
		return 0, 0, err
	}
	defer file.Close()

	leaf, _ := pf.Schema().Lookup(movement.ColYear)

	var latest, values int64
	for _, rg := range pf.RowGroups() {
		if err := ctx.Err(); err != nil {
			return 0, 0, err
		}

		pages := rg.ColumnChunks()[leaf.ColumnIndex].Pages()
		for {
			page, err := pages.ReadPage()
			if errors.Is(err, io.EOF) {
				break
			}
			if err != nil {
				pages.Close()
				return 0, 0, fmt.Errorf("read %s page: %w", movement.ColYear, err)
			}
			if _, hi, ok := page.Bounds(); ok {
				if values == 0 || hi.Int64() > latest {
					latest = hi.Int64()
				}
				values += page.NumValues() - page.NumNulls()
			}
		}
		if err := pages.Close(); err != nil {
			return 0, 0, fmt.Errorf("close %s pages: %w", movement.ColYear, err)
		}
	}
	return latest, values, nil
}
