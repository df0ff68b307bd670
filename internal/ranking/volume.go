package ranking

import (
	"context"
	"fmt"

	"github.com/roach88/airq/internal/movement"
	"github.com/roach88/airq/internal/queryir"
	"github.com/roach88/airq/internal/store"
)

// History returns the yearly passenger (or cargo) total in ascending year
// order, optionally for one airport.
func (e *Engine) History(ctx context.Context, cargo bool, airport string) (Series, error) {
	measure := store.VolumeOf(cargo)

	res, err := e.aggregate(ctx, "history", queryir.Aggregate{
		Measures: []queryir.Measure{measure},
		Filter:   airportIs(airport),
		GroupBy:  []string{movement.ColYear},
		OrderBy:  []queryir.Order{{Key: movement.ColYear}},
	})
	if err != nil {
		return Series{}, err
	}
	if res.Empty() {
		return Series{}, fmt.Errorf("history: %w", ErrNotFound)
	}

	s := Series{Cargo: cargo, Airport: airport, Points: make([]YearValue, 0, len(res.Rows))}
	for _, row := range res.Rows {
		s.Points = append(s.Points, YearValue{
			Year:  int(row.Int(movement.ColYear)),
			Value: row.Count(measure.Name),
		})
	}
	return s, nil
}

// Volume returns a scalar passenger (or cargo) total under q's filters.
//
// A nil year with a month set defaults to the latest year. A zero
// total is a legitimate answer when records matched; no matching record at
// all is ErrNotFound.
func (e *Engine) Volume(ctx context.Context, q VolumeQuery) (VolumeResult, error) {
	out := VolumeResult{Query: q}

	if q.Year == nil && q.Month != nil {
		y, err := e.LatestYear(ctx)
		if err != nil {
			return VolumeResult{}, err
		}
		out.Query.Year = &y
		out.YearDefaulted = true
	}

	var filters []queryir.Predicate
	filters = append(filters, airportIs(q.Airport))
	if out.Query.Year != nil {
		filters = append(filters, yearIs(*out.Query.Year))
	}
	filters = append(filters, monthIs(q.Month))
	if q.MovementType != "" {
		filters = append(filters, queryir.Equals{Column: movement.ColMovementType, Value: movement.Text(string(q.MovementType))})
	}
	if q.Nature != "" {
		filters = append(filters, queryir.Equals{Column: movement.ColNature, Value: movement.Text(string(q.Nature))})
	}

	measure := store.VolumeOf(q.Cargo)
	res, err := e.aggregate(ctx, "volume", queryir.Aggregate{
		Measures: []queryir.Measure{measure, store.FlightCount()},
		Filter:   queryir.Where(filters...),
	})
	if err != nil {
		return VolumeResult{}, err
	}
	if res.Empty() || res.Rows[0].Count(store.MeasureFlights) == 0 {
		return VolumeResult{}, fmt.Errorf("volume: %w", ErrNotFound)
	}

	out.Total = res.Rows[0].Count(measure.Name)
	out.Records = res.Rows[0].Count(store.MeasureFlights)
	return out, nil
}
