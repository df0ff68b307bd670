package testutil

import (
	"path/filepath"
	"testing"

	"github.com/parquet-go/parquet-go"

	"github.com/roach88/airq/internal/movement"
)

// WritePartition writes records to dir/name as a parquet partition file and
// returns its path. The test fails immediately if the file cannot be written.
func WritePartition(t testing.TB, dir, name string, records ...movement.Record) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := parquet.WriteFile(path, records); err != nil {
		t.Fatalf("write partition %s: %v", path, err)
	}
	return path
}

// PartitionDir creates a temporary directory holding one partition with
// the given records.
func PartitionDir(t testing.TB, records ...movement.Record) string {
	t.Helper()

	dir := t.TempDir()
	WritePartition(t, dir, "part-0000.parquet", records...)
	return dir
}

// Passengers builds a landing record carrying local passengers only.
func Passengers(airport string, year, month int64, operator string, local int64) movement.Record {
	return movement.Record{
		Year:             year,
		Month:            month,
		ReferenceAirport: airport,
		OtherAirport:     "SBGR",
		MovementType:     string(movement.Landing),
		Nature:           string(movement.Domestic),
		Operator:         operator,
		LocalPassengers:  local,
	}
}
