package querysql

import (
	"fmt"
	"strings"

	"github.com/roach88/airq/internal/movement"
	"github.com/roach88/airq/internal/queryir"
)

// Table is the relation every partition is loaded into.
const Table = "movements"

// SQLCompiler compiles queryir requests to parameterized SQL for SQLite.
//
// CRITICAL: grouped queries always end their ORDER BY with every group
// column ascending, so equal measures come back in a stable order.
// CRITICAL: all literal values are parameterized, never interpolated.
type SQLCompiler struct{}

// NewSQLCompiler creates a new SQLCompiler.
func NewSQLCompiler() *SQLCompiler {
	return &SQLCompiler{}
}

// Compile converts a request to parameterized SQL.
// Returns (sql, params, error) tuple.
//
// The request is validated first; an invalid request never produces SQL.
func (c *SQLCompiler) Compile(req queryir.Request) (string, []any, error) {
	if req == nil {
		return "", nil, fmt.Errorf("cannot compile nil request")
	}
	if err := queryir.Validate(req).Err(); err != nil {
		return "", nil, err
	}

	switch r := req.(type) {
	case queryir.Aggregate:
		return c.compileAggregate(r)
	case *queryir.Aggregate:
		return c.compileAggregate(*r)
	default:
		return "", nil, fmt.Errorf("unsupported request type: %T", req)
	}
}

// compileAggregate compiles a queryir.Aggregate to SQL.
func (c *SQLCompiler) compileAggregate(agg queryir.Aggregate) (string, []any, error) {
	columns := make([]string, 0, len(agg.GroupBy)+len(agg.Measures))
	columns = append(columns, agg.GroupBy...)
	for _, m := range agg.Measures {
		expr, err := c.compileExpr(m.Expr)
		if err != nil {
			return "", nil, fmt.Errorf("compile measure %q: %w", m.Name, err)
		}
		columns = append(columns, fmt.Sprintf("%s AS %s", expr, m.Name))
	}

	var sb strings.Builder
	var params []any

	sb.WriteString("SELECT ")
	sb.WriteString(strings.Join(columns, ", "))
	sb.WriteString(" FROM ")
	sb.WriteString(Table)

	if agg.Filter != nil {
		filterSQL, filterParams, err := c.compilePredicate(agg.Filter)
		if err != nil {
			return "", nil, fmt.Errorf("compile filter: %w", err)
		}
		sb.WriteString(" WHERE ")
		sb.WriteString(filterSQL)
		params = append(params, filterParams...)
	}

	if len(agg.GroupBy) > 0 {
		sb.WriteString(" GROUP BY ")
		sb.WriteString(strings.Join(agg.GroupBy, ", "))
	}

	if order := c.stableOrderKey(agg); order != "" {
		sb.WriteString(" ORDER BY ")
		sb.WriteString(order)
	}

	if agg.Limit > 0 {
		sb.WriteString(" LIMIT ?")
		params = append(params, int64(agg.Limit))
	}

	return sb.String(), params, nil
}

// stableOrderKey returns the ORDER BY clause for a request.
// Requested keys come first, then every group column not already used,
// ascending with COLLATE BINARY as the deterministic tie-break.
// Scalar requests (no grouping, no ordering) return "".
func (c *SQLCompiler) stableOrderKey(agg queryir.Aggregate) string {
	var parts []string
	used := make(map[string]bool)

	for _, o := range agg.OrderBy {
		dir := "ASC"
		if o.Desc {
			dir = "DESC"
		}
		parts = append(parts, fmt.Sprintf("%s %s", o.Key, dir))
		used[o.Key] = true
	}

	for _, col := range agg.GroupBy {
		if used[col] {
			continue
		}
		parts = append(parts, col+" COLLATE BINARY ASC")
	}

	return strings.Join(parts, ", ")
}

// compileExpr compiles a scalar or aggregate expression.
func (c *SQLCompiler) compileExpr(e queryir.Expr) (string, error) {
	switch expr := e.(type) {
	case queryir.Column:
		return expr.Name, nil
	case *queryir.Column:
		return expr.Name, nil
	case queryir.Add:
		return c.compileAdd(expr)
	case *queryir.Add:
		return c.compileAdd(*expr)
	case queryir.Sub:
		return c.compileSub(expr)
	case *queryir.Sub:
		return c.compileSub(*expr)
	case queryir.NonNegative:
		return c.compileNonNegative(expr)
	case *queryir.NonNegative:
		return c.compileNonNegative(*expr)
	case queryir.Sum:
		return c.wrap("SUM", expr.Of)
	case *queryir.Sum:
		return c.wrap("SUM", expr.Of)
	case queryir.Max:
		return c.wrap("MAX", expr.Of)
	case *queryir.Max:
		return c.wrap("MAX", expr.Of)
	case queryir.Count, *queryir.Count:
		return "COUNT(*)", nil
	default:
		return "", fmt.Errorf("unsupported expression type: %T", e)
	}
}

func (c *SQLCompiler) wrap(fn string, of queryir.Expr) (string, error) {
	inner, err := c.compileExpr(of)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s(%s)", fn, inner), nil
}

func (c *SQLCompiler) compileAdd(add queryir.Add) (string, error) {
	terms := make([]string, 0, len(add.Terms))
	for _, t := range add.Terms {
		sql, err := c.compileExpr(t)
		if err != nil {
			return "", err
		}
		terms = append(terms, sql)
	}
	return "(" + strings.Join(terms, " + ") + ")", nil
}

func (c *SQLCompiler) compileSub(sub queryir.Sub) (string, error) {
	left, err := c.compileExpr(sub.Left)
	if err != nil {
		return "", err
	}
	right, err := c.compileExpr(sub.Right)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("(%s - %s)", left, right), nil
}

func (c *SQLCompiler) compileNonNegative(nn queryir.NonNegative) (string, error) {
	inner, err := c.compileExpr(nn.Of)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("CASE WHEN %s > 0 THEN %s ELSE 0 END", inner, inner), nil
}

// compilePredicate compiles a predicate to a WHERE clause fragment.
// CRITICAL: values NEVER interpolated - always use ? placeholders.
func (c *SQLCompiler) compilePredicate(p queryir.Predicate) (string, []any, error) {
	if p == nil {
		return "1 = 1", nil, nil // Always true
	}

	switch pred := p.(type) {
	case queryir.Equals:
		return c.compileComparison(pred.Column, "=", pred.Value)
	case *queryir.Equals:
		return c.compileComparison(pred.Column, "=", pred.Value)
	case queryir.NotEquals:
		return c.compileComparison(pred.Column, "!=", pred.Value)
	case *queryir.NotEquals:
		return c.compileComparison(pred.Column, "!=", pred.Value)
	case queryir.And:
		return c.compileAnd(pred)
	case *queryir.And:
		return c.compileAnd(*pred)
	default:
		return "", nil, fmt.Errorf("unsupported predicate type: %T", p)
	}
}

func (c *SQLCompiler) compileComparison(column, op string, value movement.Value) (string, []any, error) {
	param, err := movement.Param(value)
	if err != nil {
		return "", nil, fmt.Errorf("convert value: %w", err)
	}
	return fmt.Sprintf("%s %s ?", column, op), []any{param}, nil
}

// compileAnd compiles an And predicate to a conjunction.
func (c *SQLCompiler) compileAnd(and queryir.And) (string, []any, error) {
	if len(and.Predicates) == 0 {
		return "1 = 1", nil, nil // Vacuous truth
	}

	var sqlParts []string
	var allParams []any

	for _, pred := range and.Predicates {
		sql, params, err := c.compilePredicate(pred)
		if err != nil {
			return "", nil, err
		}
		sqlParts = append(sqlParts, sql)
		allParams = append(allParams, params...)
	}

	return strings.Join(sqlParts, " AND "), allParams, nil
}
