package compiler

import (
	"fmt"
	"strings"

	"github.com/roach88/airq/internal/movement"
)

// Resolver is the part of the entity resolver the compiler depends on.
type Resolver interface {
	ResolveAirport(text string) string
	IsKnownAirport(code string) bool
	IsNationwide(text string) bool
}

// Compiler turns intents into plans. It holds no mutable state.
type Compiler struct {
	res Resolver
}

// New creates a Compiler that resolves airport names with res.
func New(res Resolver) *Compiler {
	return &Compiler{res: res}
}

// normalized is an intent after coercion, before shape selection.
type normalized struct {
	airport    string
	nationwide bool
	year       *int
	month      *int
	mt         movement.MovementType
	nature     movement.Nature
}

func (n normalized) hasAirport() bool {
	return n.airport != "" || n.nationwide
}

// Compile validates an intent and binds it to a shape.
//
// The first set ranking flag wins, in the order of Shapes; with no flag set
// the plan is a volume query. Loosely typed values are coerced rather than
// rejected: a month outside 1-12, a non-positive year and an unknown movement
// type or nature are all dropped.
//
// Errors (always *Error):
//   - E201 when the intent carries no information at all
//   - E202/E203 when a volume query lacks the context it needs
//   - E204 when a shape that filters by airport gets an unknown airport
func (c *Compiler) Compile(intent Intent) (Plan, error) {
	n := c.normalize(intent)

	if !intent.HasRanking() && !n.hasAirport() && n.year == nil && n.month == nil &&
		n.mt == "" && n.nature == "" && !intent.Cargo {
		return Plan{}, &Error{
			Code:    ErrIntentNotUnderstood,
			Field:   "intent",
			Message: "no airport, period, filter or ranking could be extracted",
		}
	}

	plan := Plan{
		Shape:        shapeOf(intent),
		Airport:      n.airport,
		Year:         n.year,
		Month:        n.month,
		MovementType: n.mt,
		Nature:       n.nature,
		Cargo:        intent.Cargo,
	}

	switch {
	case plan.Shape == ShapeVolume:
		if err := checkVolume(n); err != nil {
			return Plan{}, err
		}
	case plan.Shape.AcceptsAirport():
		if plan.Airport != "" && !c.res.IsKnownAirport(plan.Airport) {
			return Plan{}, &Error{
				Code:    ErrUnrecognizedAirport,
				Field:   FieldAirport,
				Message: fmt.Sprintf("airport %q is not recognized", plan.Airport),
				Value:   plan.Airport,
			}
		}
	default:
		// Nationwide rankings ignore any airport.
		plan.Airport = ""
	}

	return plan, nil
}

func (c *Compiler) normalize(intent Intent) normalized {
	var n normalized

	if text := strings.TrimSpace(intent.Airport); text != "" {
		if c.res.IsNationwide(text) {
			n.nationwide = true
		} else {
			n.airport = c.res.ResolveAirport(text)
		}
	}

	if intent.Year != nil && *intent.Year > 0 {
		y := *intent.Year
		n.year = &y
	}
	if intent.Month != nil && *intent.Month >= 1 && *intent.Month <= 12 {
		m := *intent.Month
		n.month = &m
	}
	if mt, ok := movement.ParseMovementType(intent.MovementType); ok {
		n.mt = mt
	}
	if nat, ok := movement.ParseNature(intent.Nature); ok {
		n.nature = nat
	}
	return n
}

// shapeOf applies the ranking precedence.
func shapeOf(i Intent) Shape {
	switch {
	case i.History:
		return ShapeHistory
	case i.MarketShare:
		return ShapeMarketShare
	case i.BusiestAirport:
		return ShapeBusiestAirport
	case i.MostInternational:
		return ShapeMostInternational
	case i.TopOperatorPassengers:
		return ShapeTopOperatorPassengers
	case i.TopOperatorCargo:
		return ShapeTopOperatorCargo
	case i.TopDestination:
		return ShapeTopDestination
	case i.MostDelayedOperator:
		return ShapeMostDelayedOperator
	default:
		return ShapeVolume
	}
}

// checkVolume requires a year, except that airport plus month may leave the
// year to default to the latest in the data. A year alone is enough.
func checkVolume(n normalized) error {
	if n.year != nil || (n.hasAirport() && n.month != nil) {
		return nil
	}

	if !n.hasAirport() {
		return &Error{
			Code:    ErrMissingAirport,
			Field:   FieldAirport,
			Message: "volume query needs an airport or a year",
			Missing: []string{FieldAirport, FieldYear},
		}
	}
	return &Error{
		Code:    ErrMissingYear,
		Field:   FieldYear,
		Message: "volume query needs a year unless airport and month are given",
		Missing: []string{FieldYear},
	}
}
