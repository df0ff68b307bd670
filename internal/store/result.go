package store

import (
	"math"

	"github.com/roach88/airq/internal/movement"
)

// ResultRows is the outcome of one aggregation.
type ResultRows struct {
	// GroupBy echoes the grouping columns of the request.
	GroupBy []string

	// Measures echoes the measure names of the request.
	Measures []string

	// Rows are in the order returned by the engine.
	Rows []Row
}

// Empty reports whether the aggregation produced no rows.
func (r ResultRows) Empty() bool {
	return len(r.Rows) == 0
}

// Row is one group of an aggregation.
type Row struct {
	// Keys holds the group column values.
	Keys map[string]movement.Value

	// Values holds the measure values. A NULL aggregate reads as 0.
	Values map[string]float64
}

// Text returns a group key as a string.
func (r Row) Text(col string) string {
	return movement.String(r.Keys[col])
}

// Int returns a group key as an integer; non-integer keys read as 0.
func (r Row) Int(col string) int64 {
	if v, ok := r.Keys[col].(movement.Int); ok {
		return int64(v)
	}
	return 0
}

// Measure returns a measure value.
func (r Row) Measure(name string) float64 {
	return r.Values[name]
}

// Count returns a measure value rounded to an integer.
func (r Row) Count(name string) int64 {
	return int64(math.Round(r.Values[name]))
}
