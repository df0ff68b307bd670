package ranking

import (
	"context"
	"fmt"
	"sort"

	"github.com/roach88/airq/internal/movement"
	"github.com/roach88/airq/internal/queryir"
	"github.com/roach88/airq/internal/store"
)

// MarketShare computes each operator's share of flights and passengers in a
// year, optionally narrowed to a month and an airport.
//
// Shares are taken over the totals of every operator in scope. Operators
// without passengers are then left out, and those under the configured
// threshold are merged into one OtherLabel entry appended at the end.
// Passenger shares of the returned entries therefore sum to 100.
func (e *Engine) MarketShare(ctx context.Context, year *int, month *int, airport string) (MarketShareResult, error) {
	y, err := e.resolveYear(ctx, year)
	if err != nil {
		return MarketShareResult{}, err
	}

	res, err := e.aggregate(ctx, "market share", queryir.Aggregate{
		Measures: []queryir.Measure{store.FlightCount(), store.PassengersTotal()},
		Filter:   queryir.Where(yearIs(y), monthIs(month), airportIs(airport)),
		GroupBy:  []string{movement.ColOperator},
	})
	if err != nil {
		return MarketShareResult{}, err
	}

	var totalFlights, totalPax float64
	for _, row := range res.Rows {
		totalFlights += row.Measure(store.MeasureFlights)
		totalPax += row.Measure(store.MeasurePassengers)
	}
	if totalPax <= 0 {
		return MarketShareResult{}, fmt.Errorf("market share: %w", ErrNotFound)
	}

	var shares []ShareEntry
	for _, row := range res.Rows {
		pax := row.Measure(store.MeasurePassengers)
		if pax <= 0 {
			continue
		}
		shares = append(shares, ShareEntry{
			Operator:       row.Text(movement.ColOperator),
			FlightShare:    row.Measure(store.MeasureFlights) * 100 / totalFlights,
			PassengerShare: pax * 100 / totalPax,
		})
	}

	return MarketShareResult{
		Entries: bucketShares(shares, e.otherThreshold),
		Year:    y,
		Month:   month,
		Airport: airport,
	}, nil
}

// bucketShares sorts by passenger share and merges entries under threshold
// into one trailing OtherLabel entry.
func bucketShares(shares []ShareEntry, threshold float64) []ShareEntry {
	sort.SliceStable(shares, func(i, j int) bool {
		if shares[i].PassengerShare != shares[j].PassengerShare {
			return shares[i].PassengerShare > shares[j].PassengerShare
		}
		return shares[i].Operator < shares[j].Operator
	})

	kept := make([]ShareEntry, 0, len(shares)+1)
	other := ShareEntry{Operator: OtherLabel, Other: true}
	merged := 0
	for _, s := range shares {
		if s.PassengerShare >= threshold {
			kept = append(kept, s)
			continue
		}
		other.FlightShare += s.FlightShare
		other.PassengerShare += s.PassengerShare
		merged++
	}
	if merged > 0 {
		kept = append(kept, other)
	}
	return kept
}
