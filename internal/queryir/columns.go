package queryir

import "github.com/roach88/airq/internal/movement"

// Columns returns the record columns an aggregation reads, in
// movement.Columns order. Order keys count only when they name a column.
func Columns(agg Aggregate) []string {
	seen := make(map[string]bool)

	collectPredicate(agg.Filter, seen)
	for _, col := range agg.GroupBy {
		seen[col] = true
	}
	for _, m := range agg.Measures {
		collectExpr(m.Expr, seen)
	}
	for _, o := range agg.OrderBy {
		if movement.IsColumn(o.Key) {
			seen[o.Key] = true
		}
	}

	var cols []string
	for _, col := range movement.Columns {
		if seen[col] {
			cols = append(cols, col)
		}
	}
	return cols
}

func collectPredicate(p Predicate, seen map[string]bool) {
	switch pred := p.(type) {
	case Equals:
		seen[pred.Column] = true
	case *Equals:
		seen[pred.Column] = true
	case NotEquals:
		seen[pred.Column] = true
	case *NotEquals:
		seen[pred.Column] = true
	case And:
		for _, sub := range pred.Predicates {
			collectPredicate(sub, seen)
		}
	case *And:
		for _, sub := range pred.Predicates {
			collectPredicate(sub, seen)
		}
	}
}

func collectExpr(e Expr, seen map[string]bool) {
	switch expr := e.(type) {
	case Column:
		seen[expr.Name] = true
	case *Column:
		seen[expr.Name] = true
	case Add:
		for _, t := range expr.Terms {
			collectExpr(t, seen)
		}
	case *Add:
		for _, t := range expr.Terms {
			collectExpr(t, seen)
		}
	case Sub:
		collectExpr(expr.Left, seen)
		collectExpr(expr.Right, seen)
	case *Sub:
		collectExpr(expr.Left, seen)
		collectExpr(expr.Right, seen)
	case NonNegative:
		collectExpr(expr.Of, seen)
	case *NonNegative:
		collectExpr(expr.Of, seen)
	case Sum:
		collectExpr(expr.Of, seen)
	case *Sum:
		collectExpr(expr.Of, seen)
	case Max:
		collectExpr(expr.Of, seen)
	case *Max:
		collectExpr(expr.Of, seen)
	}
}
