package ranking

import (
	"context"
	"errors"
	"fmt"
	"sort"
)

// smallOperatorPct is the passenger share under which an operator counts as small.
const smallOperatorPct = 5.0

// MarketObservations summarizes the concentration of a market share result.
type MarketObservations struct {
	LeaderShare    float64 `json:"leader_share"`
	Top3Share      float64 `json:"top3_share"`
	SmallOperators int     `json:"small_operators"`
}

// InsightReport gathers the headline rankings of one year.
// Sections without data are nil.
type InsightReport struct {
	Year         int                 `json:"year"`
	Busiest      *AirportRanking     `json:"busiest,omitempty"`
	TopOperator  *OperatorRanking    `json:"top_operator,omitempty"`
	TopAirports  *TopAirportsResult  `json:"top_airports,omitempty"`
	MarketShare  *MarketShareResult  `json:"market_share,omitempty"`
	Observations *MarketObservations `json:"observations,omitempty"`
}

func (InsightReport) result() {}

// Insights runs the nationwide rankings for one year (latest when nil).
// ErrNotFound only when every section is empty.
func (e *Engine) Insights(ctx context.Context, year *int) (InsightReport, error) {
	y, err := e.resolveYear(ctx, year)
	if err != nil {
		return InsightReport{}, err
	}
	r := InsightReport{Year: y}

	busiest, err := e.BusiestAirport(ctx, &y)
	if r.Busiest, err = keep(busiest, err); err != nil {
		return InsightReport{}, err
	}
	top, err := e.TopOperatorByPassengers(ctx, &y, "")
	if r.TopOperator, err = keep(top, err); err != nil {
		return InsightReport{}, err
	}
	airports, err := e.TopAirports(ctx, y, DefaultTopAirports)
	if r.TopAirports, err = keep(airports, err); err != nil {
		return InsightReport{}, err
	}
	share, err := e.MarketShare(ctx, &y, nil, "")
	if r.MarketShare, err = keep(share, err); err != nil {
		return InsightReport{}, err
	}

	if r.Busiest == nil && r.TopOperator == nil && r.TopAirports == nil && r.MarketShare == nil {
		return InsightReport{}, fmt.Errorf("insights %d: %w", y, ErrNotFound)
	}
	if r.MarketShare != nil {
		obs := Observe(*r.MarketShare)
		r.Observations = &obs
	}
	return r, nil
}

// keep turns ErrNotFound into a nil section.
func keep[T any](v T, err error) (*T, error) {
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// Observe computes concentration figures. The long-tail bucket counts as
// one entry, like any operator.
func Observe(m MarketShareResult) MarketObservations {
	shares := make([]float64, 0, len(m.Entries))
	for _, e := range m.Entries {
		shares = append(shares, e.PassengerShare)
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(shares)))

	var obs MarketObservations
	for i, s := range shares {
		if i == 0 {
			obs.LeaderShare = s
		}
		if i < 3 {
			obs.Top3Share += s
		}
		if s < smallOperatorPct {
			obs.SmallOperators++
		}
	}
	return obs
}
