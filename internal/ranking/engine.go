package ranking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/roach88/airq/internal/compiler"
	"github.com/roach88/airq/internal/queryir"
	"github.com/roach88/airq/internal/store"
)

// ErrNotFound signals a valid empty outcome: no rows for the criteria, no
// partition data, or no year to default to. It is not a failure.
var ErrNotFound = errors.New("no data found for the given criteria")

// DefaultOtherThreshold is the passenger share, in percent, below which an
// operator is merged into the long-tail bucket.
const DefaultOtherThreshold = 1.0

// DefaultTopAirports is the length of the top airports list.
const DefaultTopAirports = 10

// Aggregator executes aggregation requests. *store.Accessor implements it.
type Aggregator interface {
	Aggregate(ctx context.Context, req queryir.Aggregate) (store.ResultRows, error)
}

// Engine runs the analytical queries on top of an Aggregator.
//
// It holds no per-query state; the latest year is looked up on every call
// that needs it, so data appended between calls is always visible.
type Engine struct {
	agg            Aggregator
	otherThreshold float64
	logger         *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithOtherThreshold sets the market-share long-tail threshold in percent.
func WithOtherThreshold(pct float64) Option {
	return func(e *Engine) {
		if pct >= 0 {
			e.otherThreshold = pct
		}
	}
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = l
	}
}

// New creates an Engine.
func New(agg Aggregator, opts ...Option) *Engine {
	e := &Engine{
		agg:            agg,
		otherThreshold: DefaultOtherThreshold,
		logger:         slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run executes the query for a compiled plan.
func (e *Engine) Run(ctx context.Context, plan compiler.Plan) (Result, error) {
	switch plan.Shape {
	case compiler.ShapeHistory:
		return wrap(e.History(ctx, plan.Cargo, plan.Airport))
	case compiler.ShapeMarketShare:
		return wrap(e.MarketShare(ctx, plan.Year, plan.Month, plan.Airport))
	case compiler.ShapeBusiestAirport:
		return wrap(e.BusiestAirport(ctx, plan.Year))
	case compiler.ShapeMostInternational:
		return wrap(e.MostInternationalFlights(ctx, plan.Year))
	case compiler.ShapeTopOperatorPassengers:
		return wrap(e.TopOperatorByPassengers(ctx, plan.Year, plan.Airport))
	case compiler.ShapeTopOperatorCargo:
		return wrap(e.TopOperatorByCargo(ctx, plan.Year, plan.Airport))
	case compiler.ShapeTopDestination:
		return wrap(e.TopDestination(ctx, plan.Year, plan.Airport))
	case compiler.ShapeMostDelayedOperator:
		return wrap(e.MostDelayedOperator(ctx, plan.Year, plan.Airport))
	case compiler.ShapeVolume:
		return wrap(e.Volume(ctx, VolumeQuery{
			Airport:      plan.Airport,
			Year:         plan.Year,
			Month:        plan.Month,
			MovementType: plan.MovementType,
			Nature:       plan.Nature,
			Cargo:        plan.Cargo,
		}))
	default:
		return nil, fmt.Errorf("unsupported shape %q", plan.Shape)
	}
}

// wrap returns a nil Result on error.
func wrap[T Result](r T, err error) (Result, error) {
	if err != nil {
		return nil, err
	}
	return r, nil
}

// YearSource finds the latest year without running an aggregation.
// *store.Accessor implements it by scanning only the year column.
type YearSource interface {
	LatestYear(ctx context.Context) (year int, found bool, err error)
}

// LatestYear returns the largest year present in the data.
func (e *Engine) LatestYear(ctx context.Context) (int, error) {
	if ys, ok := e.agg.(YearSource); ok {
		year, found, err := ys.LatestYear(ctx)
		if err != nil {
			return 0, classify("latest year", err)
		}
		if !found {
			return 0, fmt.Errorf("latest year: %w", ErrNotFound)
		}
		return year, nil
	}

	res, err := e.aggregate(ctx, "latest year", queryir.Aggregate{
		Measures: []queryir.Measure{store.LatestYear(), store.FlightCount()},
	})
	if err != nil {
		return 0, err
	}
	if res.Empty() || res.Rows[0].Count(store.MeasureFlights) == 0 {
		return 0, fmt.Errorf("latest year: %w", ErrNotFound)
	}
	return int(res.Rows[0].Count(store.MeasureMaxYear)), nil
}

// resolveYear returns *year, or the latest year when year is nil.
func (e *Engine) resolveYear(ctx context.Context, year *int) (int, error) {
	if year != nil {
		return *year, nil
	}
	y, err := e.LatestYear(ctx)
	if err != nil {
		return 0, err
	}
	e.logger.Debug("default year resolved", "year", y)
	return y, nil
}

// aggregate runs a request, turning missing data into ErrNotFound.
// Execution errors pass through so callers can report them as defects.
func (e *Engine) aggregate(ctx context.Context, op string, req queryir.Aggregate) (store.ResultRows, error) {
	res, err := e.agg.Aggregate(ctx, req)
	if err != nil {
		return store.ResultRows{}, classify(op, err)
	}
	return res, nil
}

// classify wraps missing data as ErrNotFound and passes other errors through.
func classify(op string, err error) error {
	if store.IsDataUnavailable(err) {
		return fmt.Errorf("%s: %w: %w", op, ErrNotFound, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
