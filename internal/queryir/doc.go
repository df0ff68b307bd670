// Package queryir provides the typed aggregation request tree consumed by
// the columnar store accessor.
//
// A request is built from sealed node types, never from text, so no
// user-supplied value can reach a query string:
//
//	[intent] → [ranking engine] → [queryir.Aggregate] → [querysql] → SQL + params
//
// SEALED INTERFACES:
//
// Request, Predicate and Expr are sealed using the marker method pattern.
// Only types in this package implement them, which lets the SQL backend use
// exhaustive type switches:
//
//	switch p := pred.(type) {
//	case Equals:
//	case NotEquals:
//	case And:
//	}
//
// AGGREGATE SHAPE:
//
// Every request is a single Aggregate: measures over an optional filter,
// grouped by zero or more columns, ordered by measures or group columns,
// with an optional limit. Group columns always act as the final tie-break
// so equal measure values come back in a stable order.
//
// Literal values in predicates are movement.Value (Text or Int). Measures
// are computed by the backend and are never compared against literals.
package queryir
