// Package store is the columnar store accessor: it presents a directory of
// parquet partition files as one read-only movement relation and executes
// queryir aggregation requests against it.
//
// # Execution model
//
// Every Aggregate call is isolated:
//
//  1. Discover *.parquet files in the directory (none → DataUnavailable)
//  2. Compile the request to parameterized SQL (invalid → QueryExecution)
//  3. Open a private in-memory SQLite database
//  4. Stream partitions in, skipping records the filter rules out
//  5. Run the statement, scan ResultRows, close the database
//
// The whole call runs under a per-query timeout. Nothing is cached between
// calls, so data appended to the directory is visible to the next call.
//
// # Measures
//
// Derived measures are defined once in measures.go. The total passenger
// figure in particular must only ever come from TotalPassengersExpr.
package store
