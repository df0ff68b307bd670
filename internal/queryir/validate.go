package queryir

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/roach88/airq/internal/movement"
)

// measureNamePattern keeps measure names safe to use as SQL aliases.
var measureNamePattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// ValidationResult lists every problem found in a request.
type ValidationResult struct {
	// Valid is true when Problems is empty.
	Valid bool

	// Problems describes each rule violation, in traversal order.
	Problems []string
}

// Err returns nil for a valid request, otherwise one error joining every problem.
func (r ValidationResult) Err() error {
	if r.Valid {
		return nil
	}
	return fmt.Errorf("invalid request: %s", strings.Join(r.Problems, "; "))
}

// Validate checks a request against the structural rules the SQL backend
// relies on:
//  1. At least one measure; names are unique identifiers
//  2. Every measure is an aggregate over scalar expressions
//  3. Every referenced column exists in the movement relation
//  4. Order keys name a measure or a group column
//  5. Limit is not negative
//
// Validate is a pure function with no side effects.
func Validate(req Request) ValidationResult {
	v := &validator{problems: []string{}}
	v.validateRequest(req)

	return ValidationResult{
		Valid:    len(v.problems) == 0,
		Problems: v.problems,
	}
}

// validator accumulates problems during traversal.
type validator struct {
	problems []string
}

func (v *validator) addProblem(format string, args ...any) {
	v.problems = append(v.problems, fmt.Sprintf(format, args...))
}

func (v *validator) validateRequest(req Request) {
	switch r := req.(type) {
	case Aggregate:
		v.validateAggregate(r)
	case *Aggregate:
		if r == nil {
			v.addProblem("nil request")
			return
		}
		v.validateAggregate(*r)
	case nil:
		v.addProblem("nil request")
	default:
		v.addProblem("unknown request type: %T", req)
	}
}

func (v *validator) validateAggregate(agg Aggregate) {
	if len(agg.Measures) == 0 {
		v.addProblem("aggregate requires at least one measure")
	}

	keys := make(map[string]bool)
	for _, m := range agg.Measures {
		if !measureNamePattern.MatchString(m.Name) {
			v.addProblem("invalid measure name %q", m.Name)
		}
		if keys[m.Name] {
			v.addProblem("duplicate measure name %q", m.Name)
		}
		keys[m.Name] = true

		if !IsAggregate(m.Expr) {
			v.addProblem("measure %q is not an aggregate: %T", m.Name, m.Expr)
			continue
		}
		v.validateAggregateExpr(m.Name, m.Expr)
	}

	if agg.Filter != nil {
		v.validatePredicate(agg.Filter)
	}

	seen := make(map[string]bool)
	for _, col := range agg.GroupBy {
		if !movement.IsColumn(col) {
			v.addProblem("unknown group column %q", col)
		}
		if seen[col] {
			v.addProblem("duplicate group column %q", col)
		}
		seen[col] = true
		keys[col] = true
	}

	for _, o := range agg.OrderBy {
		if !keys[o.Key] {
			v.addProblem("order key %q is neither a measure nor a group column", o.Key)
		}
	}

	if agg.Limit < 0 {
		v.addProblem("negative limit %d", agg.Limit)
	}
}

func (v *validator) validateAggregateExpr(name string, e Expr) {
	switch expr := e.(type) {
	case Sum:
		v.validateScalar(name, expr.Of)
	case *Sum:
		v.validateScalar(name, expr.Of)
	case Max:
		v.validateScalar(name, expr.Of)
	case *Max:
		v.validateScalar(name, expr.Of)
	case Count, *Count:
		// COUNT(*) has no operand
	}
}

func (v *validator) validateScalar(name string, e Expr) {
	switch expr := e.(type) {
	case Column:
		if !movement.IsColumn(expr.Name) {
			v.addProblem("measure %q references unknown column %q", name, expr.Name)
		}
	case *Column:
		v.validateScalar(name, *expr)
	case Add:
		if len(expr.Terms) == 0 {
			v.addProblem("measure %q has an empty sum", name)
		}
		for _, t := range expr.Terms {
			v.validateScalar(name, t)
		}
	case *Add:
		v.validateScalar(name, *expr)
	case Sub:
		v.validateScalar(name, expr.Left)
		v.validateScalar(name, expr.Right)
	case *Sub:
		v.validateScalar(name, *expr)
	case NonNegative:
		v.validateScalar(name, expr.Of)
	case *NonNegative:
		v.validateScalar(name, *expr)
	case nil:
		v.addProblem("measure %q has a nil operand", name)
	default:
		v.addProblem("measure %q nests %T inside an aggregate", name, e)
	}
}

func (v *validator) validatePredicate(p Predicate) {
	switch pred := p.(type) {
	case Equals:
		v.validateComparison(pred.Column, pred.Value)
	case *Equals:
		v.validateComparison(pred.Column, pred.Value)
	case NotEquals:
		v.validateComparison(pred.Column, pred.Value)
	case *NotEquals:
		v.validateComparison(pred.Column, pred.Value)
	case And:
		for _, sub := range pred.Predicates {
			v.validatePredicate(sub)
		}
	case *And:
		for _, sub := range pred.Predicates {
			v.validatePredicate(sub)
		}
	case nil:
		v.addProblem("nil predicate inside conjunction")
	default:
		v.addProblem("unknown predicate type: %T", p)
	}
}

func (v *validator) validateComparison(column string, value movement.Value) {
	if !movement.IsColumn(column) {
		v.addProblem("filter references unknown column %q", column)
	}
	if value == nil {
		v.addProblem("filter on %q has no value", column)
	}
}
