// Package ranking answers the analytical questions over movement data:
// rankings, market share, volumes, yearly series and their trends.
//
// Every operation builds queryir requests and runs them through an
// Aggregator, normally a *store.Accessor. A nil year means the latest year
// present in the data, resolved on each call. Missing data surfaces as
// ErrNotFound; engine failures pass through unchanged.
package ranking
