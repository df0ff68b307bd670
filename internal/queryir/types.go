package queryir

import "github.com/roach88/airq/internal/movement"

// Request represents an abstract request against the movement relation.
//
// This is a sealed interface - only Aggregate implements it today.
type Request interface {
	requestNode() // Marker method - seals interface to this package
}

// Predicate represents a filter condition.
//
// Predicate types:
//   - Equals: column = literal
//   - NotEquals: column != literal
//   - And: all predicates must be true
type Predicate interface {
	predicateNode() // Marker method - seals interface to this package
}

// Expr represents a scalar or aggregate expression over record columns.
//
// Scalar expressions (Column, Add, Sub, NonNegative) are evaluated per
// record. Aggregate expressions (Sum, Count, Max) fold a scalar expression
// over the filtered group. A Measure's top-level Expr must be an aggregate.
type Expr interface {
	exprNode() // Marker method - seals interface to this package
}

// Aggregate is the single request shape.
//
// Semantics:
//
//	SELECT <group_by>, <measures> FROM movements
//	WHERE <filter> GROUP BY <group_by>
//	ORDER BY <order_by>, <group_by> ASC LIMIT <limit>
//
// Example (busiest airport in 2023):
//
//	Aggregate{
//	  Measures: []Measure{PassengersTotal},
//	  Filter:   Equals{Column: "ANO", Value: movement.Int(2023)},
//	  GroupBy:  []string{"NR_AEROPORTO_REFERENCIA"},
//	  OrderBy:  []Order{{Key: "total_passengers", Desc: true}},
//	  Limit:    1,
//	}
type Aggregate struct {
	Measures []Measure // At least one
	Filter   Predicate // nil = no filter
	GroupBy  []string  // Column names (empty = scalar result)
	OrderBy  []Order   // Keys name a measure or a group column
	Limit    int       // 0 = no limit
}

func (Aggregate) requestNode() {}

// Measure names an aggregate expression. The name becomes the result column.
type Measure struct {
	Name string
	Expr Expr
}

// Order sorts by a measure name or group column.
type Order struct {
	Key  string
	Desc bool
}

// Equals represents a column-equals-literal predicate.
//
//	<column> = ?
type Equals struct {
	Column string
	Value  movement.Value
}

func (Equals) predicateNode() {}

// NotEquals represents a column-differs-from-literal predicate.
//
//	<column> != ?
type NotEquals struct {
	Column string
	Value  movement.Value
}

func (NotEquals) predicateNode() {}

// And represents a conjunction. An empty And is vacuously true.
type And struct {
	Predicates []Predicate
}

func (And) predicateNode() {}

// Column references a record column.
type Column struct {
	Name string
}

func (Column) exprNode() {}

// Add sums scalar terms.
type Add struct {
	Terms []Expr
}

func (Add) exprNode() {}

// Sub subtracts Right from Left.
type Sub struct {
	Left  Expr
	Right Expr
}

func (Sub) exprNode() {}

// NonNegative clamps a scalar expression to zero from below.
type NonNegative struct {
	Of Expr
}

func (NonNegative) exprNode() {}

// Sum aggregates a scalar expression.
type Sum struct {
	Of Expr
}

func (Sum) exprNode() {}

// Count counts the records of a group.
type Count struct{}

func (Count) exprNode() {}

// Max takes the largest value of a scalar expression.
type Max struct {
	Of Expr
}

func (Max) exprNode() {}

// Where builds a filter from a list of predicates, dropping nils.
// Returns nil when nothing remains, a single predicate when only one does.
func Where(preds ...Predicate) Predicate {
	var kept []Predicate
	for _, p := range preds {
		if p != nil {
			kept = append(kept, p)
		}
	}
	switch len(kept) {
	case 0:
		return nil
	case 1:
		return kept[0]
	default:
		return And{Predicates: kept}
	}
}

// IsAggregate reports whether e folds a group into one value.
func IsAggregate(e Expr) bool {
	switch e.(type) {
	case Sum, *Sum, Count, *Count, Max, *Max:
		return true
	default:
		return false
	}
}
