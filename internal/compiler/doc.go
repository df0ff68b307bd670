// Package compiler turns an extracted Intent into exactly one Plan.
//
// A Plan names the aggregation shape and carries normalized filters: airport
// names resolved to codes, out-of-range months dropped, movement type and
// nature mapped onto their enums. Compile never touches the data; resolving
// a missing year to the latest one available is left to the ranking engine.
//
// Shape precedence when several ranking flags are set:
//
//	history → market share → busiest airport → most international flights →
//	top operator by passengers → top operator by cargo → top destination →
//	most delayed operator → volume (no flag)
package compiler
