package ranking

import (
	"context"
	"fmt"

	"github.com/roach88/airq/internal/movement"
	"github.com/roach88/airq/internal/queryir"
	"github.com/roach88/airq/internal/store"
)

func yearIs(year int) queryir.Predicate {
	return queryir.Equals{Column: movement.ColYear, Value: movement.Int(int64(year))}
}

// airportIs filters by reference airport; empty code means no filter.
func airportIs(code string) queryir.Predicate {
	if code == "" {
		return nil
	}
	return queryir.Equals{Column: movement.ColReferenceAirport, Value: movement.Text(code)}
}

func monthIs(month *int) queryir.Predicate {
	if month == nil {
		return nil
	}
	return queryir.Equals{Column: movement.ColMonth, Value: movement.Int(int64(*month))}
}

// topN ranks groupCol by measure, descending, ties broken by groupCol.
func topN(groupCol string, measure queryir.Measure, filter queryir.Predicate, n int) queryir.Aggregate {
	return queryir.Aggregate{
		Measures: []queryir.Measure{measure},
		Filter:   filter,
		GroupBy:  []string{groupCol},
		OrderBy:  []queryir.Order{{Key: measure.Name, Desc: true}},
		Limit:    n,
	}
}

// top1 returns the winning row of a topN(…, 1) request.
func (e *Engine) top1(ctx context.Context, op, groupCol string, measure queryir.Measure, filter queryir.Predicate) (string, int64, error) {
	res, err := e.aggregate(ctx, op, topN(groupCol, measure, filter, 1))
	if err != nil {
		return "", 0, err
	}
	if res.Empty() {
		return "", 0, fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	row := res.Rows[0]
	return row.Text(groupCol), row.Count(measure.Name), nil
}

// BusiestAirport returns the airport with the most passengers in year
// (latest year when nil).
func (e *Engine) BusiestAirport(ctx context.Context, year *int) (AirportRanking, error) {
	y, err := e.resolveYear(ctx, year)
	if err != nil {
		return AirportRanking{}, err
	}

	code, total, err := e.top1(ctx, "busiest airport", movement.ColReferenceAirport,
		store.PassengersTotal(), yearIs(y))
	if err != nil {
		return AirportRanking{}, err
	}
	return AirportRanking{Airport: code, Metric: MetricPassengers, Value: total, Year: y}, nil
}

// MostInternationalFlights returns the airport with the most international
// movements in year.
func (e *Engine) MostInternationalFlights(ctx context.Context, year *int) (AirportRanking, error) {
	y, err := e.resolveYear(ctx, year)
	if err != nil {
		return AirportRanking{}, err
	}

	code, flights, err := e.top1(ctx, "most international flights", movement.ColReferenceAirport,
		store.FlightCount(), queryir.Where(
			yearIs(y),
			queryir.Equals{Column: movement.ColNature, Value: movement.Text(string(movement.International))},
		))
	if err != nil {
		return AirportRanking{}, err
	}
	return AirportRanking{Airport: code, Metric: MetricInternationalFlights, Value: flights, Year: y}, nil
}

// TopOperatorByPassengers returns the operator that carried the most
// passengers in year, optionally at one airport.
func (e *Engine) TopOperatorByPassengers(ctx context.Context, year *int, airport string) (OperatorRanking, error) {
	return e.topOperator(ctx, "top operator by passengers", year, airport, store.PassengersTotal(), MetricPassengers, nil)
}

// TopOperatorByCargo returns the operator that carried the most cargo.
func (e *Engine) TopOperatorByCargo(ctx context.Context, year *int, airport string) (OperatorRanking, error) {
	return e.topOperator(ctx, "top operator by cargo", year, airport, store.CargoTotal(), MetricCargo, nil)
}

// MostDelayedOperator returns the operator with the largest total landing
// delay. The GERAL placeholder operator never ranks, and early arrivals
// count as zero delay.
func (e *Engine) MostDelayedOperator(ctx context.Context, year *int, airport string) (OperatorRanking, error) {
	extra := queryir.Where(
		queryir.Equals{Column: movement.ColMovementType, Value: movement.Text(string(movement.Landing))},
		queryir.NotEquals{Column: movement.ColOperator, Value: movement.Text(movement.GeneralOperator)},
	)
	return e.topOperator(ctx, "most delayed operator", year, airport, store.DelayTotal(), MetricDelayMinutes, extra)
}

func (e *Engine) topOperator(ctx context.Context, op string, year *int, airport string, measure queryir.Measure, metric Metric, extra queryir.Predicate) (OperatorRanking, error) {
	y, err := e.resolveYear(ctx, year)
	if err != nil {
		return OperatorRanking{}, err
	}

	code, value, err := e.top1(ctx, op, movement.ColOperator, measure,
		queryir.Where(yearIs(y), extra, airportIs(airport)))
	if err != nil {
		return OperatorRanking{}, err
	}
	return OperatorRanking{Operator: code, Metric: metric, Value: value, Year: y, Airport: airport}, nil
}

// TopDestination returns the counterpart airport with the most movements,
// optionally as seen from one airport.
func (e *Engine) TopDestination(ctx context.Context, year *int, airport string) (DestinationRanking, error) {
	y, err := e.resolveYear(ctx, year)
	if err != nil {
		return DestinationRanking{}, err
	}

	code, flights, err := e.top1(ctx, "top destination", movement.ColOtherAirport,
		store.FlightCount(), queryir.Where(yearIs(y), airportIs(airport)))
	if err != nil {
		return DestinationRanking{}, err
	}
	return DestinationRanking{Destination: code, Flights: flights, Year: y, Origin: airport}, nil
}

// TopAirports returns the n airports with the most passengers in year.
// n <= 0 means DefaultTopAirports.
func (e *Engine) TopAirports(ctx context.Context, year int, n int) (TopAirportsResult, error) {
	if n <= 0 {
		n = DefaultTopAirports
	}

	res, err := e.aggregate(ctx, "top airports",
		topN(movement.ColReferenceAirport, store.PassengersTotal(), yearIs(year), n))
	if err != nil {
		return TopAirportsResult{}, err
	}
	if res.Empty() {
		return TopAirportsResult{}, fmt.Errorf("top airports: %w", ErrNotFound)
	}

	out := TopAirportsResult{Year: year, Airports: make([]AirportTotal, 0, len(res.Rows))}
	for _, row := range res.Rows {
		out.Airports = append(out.Airports, AirportTotal{
			Airport:    row.Text(movement.ColReferenceAirport),
			Passengers: row.Count(store.MeasurePassengers),
		})
	}
	return out, nil
}
