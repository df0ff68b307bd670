package store

import (
	"github.com/roach88/airq/internal/movement"
	"github.com/roach88/airq/internal/queryir"
)

// Measure names as they appear in ResultRows.
const (
	MeasurePassengers = "total_passengers"
	MeasureCargo      = "total_cargo"
	MeasureFlights    = "flights"
	MeasureDelay      = "delay_minutes"
	MeasureMaxYear    = "max_year"
)

// TotalPassengersExpr is the only definition of a record's passenger total:
// local plus domestic connection plus international connection passengers.
// Every measure that needs passengers builds on it.
func TotalPassengersExpr() queryir.Expr {
	return queryir.Add{Terms: []queryir.Expr{
		queryir.Column{Name: movement.ColLocalPassengers},
		queryir.Column{Name: movement.ColDomesticConnPassengers},
		queryir.Column{Name: movement.ColIntlConnPassengers},
	}}
}

// DelayExpr is a record's delay in minutes, clamped so early arrivals count as zero.
func DelayExpr() queryir.Expr {
	return queryir.NonNegative{Of: queryir.Sub{
		Left:  queryir.Column{Name: movement.ColActualMinutes},
		Right: queryir.Column{Name: movement.ColScheduledMinutes},
	}}
}

// PassengersTotal sums TotalPassengersExpr over a group.
func PassengersTotal() queryir.Measure {
	return queryir.Measure{Name: MeasurePassengers, Expr: queryir.Sum{Of: TotalPassengersExpr()}}
}

// CargoTotal sums cargo weight in kilograms over a group.
func CargoTotal() queryir.Measure {
	return queryir.Measure{Name: MeasureCargo, Expr: queryir.Sum{Of: queryir.Column{Name: movement.ColCargo}}}
}

// FlightCount counts the movements of a group.
func FlightCount() queryir.Measure {
	return queryir.Measure{Name: MeasureFlights, Expr: queryir.Count{}}
}

// DelayTotal sums DelayExpr over a group.
func DelayTotal() queryir.Measure {
	return queryir.Measure{Name: MeasureDelay, Expr: queryir.Sum{Of: DelayExpr()}}
}

// LatestYear is the largest year present.
func LatestYear() queryir.Measure {
	return queryir.Measure{Name: MeasureMaxYear, Expr: queryir.Max{Of: queryir.Column{Name: movement.ColYear}}}
}

// VolumeOf returns the cargo or passenger total measure.
func VolumeOf(cargo bool) queryir.Measure {
	if cargo {
		return CargoTotal()
	}
	return PassengersTotal()
}
