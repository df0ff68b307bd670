// Package movement defines the airport movement data model shared by every
// layer: the partition record, its column names, and the literal values that
// may appear in filters.
//
// One Record is one landing or departure filed from the perspective of a
// reference airport. Passenger counts are split into local, domestic
// connection, and international connection; their sum is the total
// passenger figure used everywhere.
package movement
