package compiler

import "github.com/roach88/airq/internal/movement"

// Intent is the structured parameter record extracted from one question.
//
// Every field is always present. Absent values are the zero value (empty
// string, nil pointer, false); the NLU adapter guarantees this shape.
type Intent struct {
	Airport      string `json:"airport"`
	Year         *int   `json:"year"`
	Month        *int   `json:"month"`
	MovementType string `json:"movement_type"`
	Nature       string `json:"nature"`

	// Cargo selects cargo weight instead of passengers for volume and history.
	Cargo bool `json:"cargo"`

	BusiestAirport        bool `json:"busiest_airport"`
	MostInternational     bool `json:"most_international"`
	TopOperatorPassengers bool `json:"top_operator_passengers"`
	TopOperatorCargo      bool `json:"top_operator_cargo"`
	TopDestination        bool `json:"top_destination"`
	MostDelayedOperator   bool `json:"most_delayed_operator"`
	MarketShare           bool `json:"market_share"`
	History               bool `json:"history"`
}

// HasRanking reports whether any ranking flag is set.
func (i Intent) HasRanking() bool {
	return i.BusiestAirport || i.MostInternational ||
		i.TopOperatorPassengers || i.TopOperatorCargo ||
		i.TopDestination || i.MostDelayedOperator ||
		i.MarketShare || i.History
}

// Shape identifies one of the supported aggregation shapes.
type Shape string

const (
	ShapeHistory               Shape = "history"
	ShapeMarketShare           Shape = "market_share"
	ShapeBusiestAirport        Shape = "busiest_airport"
	ShapeMostInternational     Shape = "most_international"
	ShapeTopOperatorPassengers Shape = "top_operator_passengers"
	ShapeTopOperatorCargo      Shape = "top_operator_cargo"
	ShapeTopDestination        Shape = "top_destination"
	ShapeMostDelayedOperator   Shape = "most_delayed_operator"
	ShapeVolume                Shape = "volume"
)

// Shapes lists every shape in precedence order.
var Shapes = []Shape{
	ShapeHistory,
	ShapeMarketShare,
	ShapeBusiestAirport,
	ShapeMostInternational,
	ShapeTopOperatorPassengers,
	ShapeTopOperatorCargo,
	ShapeTopDestination,
	ShapeMostDelayedOperator,
	ShapeVolume,
}

// AcceptsAirport reports whether the shape takes an optional airport filter
// that must name a known airport.
func (s Shape) AcceptsAirport() bool {
	switch s {
	case ShapeHistory, ShapeMarketShare,
		ShapeTopOperatorPassengers, ShapeTopOperatorCargo,
		ShapeTopDestination, ShapeMostDelayedOperator:
		return true
	default:
		return false
	}
}

// Plan is a validated, normalized intent bound to exactly one shape.
type Plan struct {
	Shape Shape `json:"shape"`

	// Airport is a canonical code, or empty for no airport filter.
	Airport string `json:"airport,omitempty"`

	// Year is nil when the engine should use the latest year in the data.
	Year *int `json:"year,omitempty"`

	// Month is nil for no month filter; otherwise 1-12.
	Month *int `json:"month,omitempty"`

	MovementType movement.MovementType `json:"movement_type,omitempty"`
	Nature       movement.Nature       `json:"nature,omitempty"`
	Cargo        bool                  `json:"cargo,omitempty"`
}
