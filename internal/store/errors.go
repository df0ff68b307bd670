package store

import (
	"errors"
	"fmt"
)

// QueryError represents a failure of the columnar store accessor.
//
// Two kinds exist:
//   - DataUnavailable: the partition directory is missing, holds no
//     partition files, or holds a partition whose schema does not match.
//     Callers report "no data", never crash.
//   - QueryExecution: the engine rejected the request or the load failed.
//     Requests built by the ranking engine never trigger this, so an
//     occurrence is a defect worth logging.
type QueryError struct {
	// Kind identifies the error category.
	Kind ErrorKind

	// Op is the accessor step that failed (discover, schema, compile, open,
	// load, execute, latest year).
	Op string

	// Path is the partition directory or file involved, when relevant.
	Path string

	// Err is the underlying cause.
	Err error
}

// ErrorKind categorizes accessor errors.
type ErrorKind string

const (
	// KindDataUnavailable indicates a missing or empty partition directory
	// or a partition with an incompatible schema.
	KindDataUnavailable ErrorKind = "DATA_UNAVAILABLE"

	// KindQueryExecution indicates the engine rejected the request.
	KindQueryExecution ErrorKind = "QUERY_EXECUTION"
)

// ErrDataUnavailable matches every KindDataUnavailable error with errors.Is.
var ErrDataUnavailable = errors.New("movement data unavailable")

// errNoPartitions is the cause reported for a directory without partition files.
var errNoPartitions = errors.New("no partition files found")

// Error implements the error interface.
func (e *QueryError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s %s: %v", e.Kind, e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.Op, e.Err)
}

// Unwrap returns the underlying cause.
func (e *QueryError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrDataUnavailable and e is of that kind.
func (e *QueryError) Is(target error) bool {
	return target == ErrDataUnavailable && e.Kind == KindDataUnavailable
}

// IsDataUnavailable returns true if the error reports missing partition data.
// Uses errors.As to handle wrapped errors.
func IsDataUnavailable(err error) bool {
	var qe *QueryError
	if errors.As(err, &qe) {
		return qe.Kind == KindDataUnavailable
	}
	return false
}

// IsQueryExecution returns true if the error reports an engine rejection.
// Uses errors.As to handle wrapped errors.
func IsQueryExecution(err error) bool {
	var qe *QueryError
	if errors.As(err, &qe) {
		return qe.Kind == KindQueryExecution
	}
	return false
}

func dataUnavailable(op, path string, err error) *QueryError {
	return &QueryError{Kind: KindDataUnavailable, Op: op, Path: path, Err: err}
}

func executionError(op, path string, err error) *QueryError {
	return &QueryError{Kind: KindQueryExecution, Op: op, Path: path, Err: err}
}
