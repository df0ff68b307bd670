package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/airq/internal/movement"
	"github.com/roach88/airq/internal/testutil"
)

func TestLatestYear_AcrossPartitions(t *testing.T) {
	dir := t.TempDir()
	testutil.WritePartition(t, dir, "a.parquet",
		testutil.Passengers("SBRF", 2019, 1, "AZU", 1),
		testutil.Passengers("SBRF", 2024, 3, "AZU", 1))
	testutil.WritePartition(t, dir, "b.parquet",
		testutil.Passengers("SBGR", 2021, 1, "GLO", 1))

	year, found, err := New(dir).LatestYear(context.Background())
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 2024, year)
}

func TestLatestYear_ManyPages(t *testing.T) {
	var records []movement.Record
	for i := 0; i < 5000; i++ {
		records = append(records, testutil.Passengers("SBRF", int64(2010+i%15), 1, "AZU", 1))
	}
	dir := testutil.PartitionDir(t, records...)

	year, found, err := New(dir).LatestYear(context.Background())
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 2024, year)
}

func TestLatestYear_ReadsOnlyYearColumn(t *testing.T) {
	type yearOnly struct {
		Year int64 `parquet:"ANO"`
	}
	dir := t.TempDir()
	require.NoError(t, parquet.WriteFile(filepath.Join(dir, "years.parquet"),
		[]yearOnly{{Year: 2018}, {Year: 2022}, {Year: 2020}}))
	acc := New(dir)

	year, found, err := acc.LatestYear(context.Background())
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 2022, year)

	// A full aggregation over the same file needs every column.
	_, err = acc.Aggregate(context.Background(), airportPassengers(2022))
	assert.True(t, IsDataUnavailable(err))
}

func TestLatestYear_NoRecords(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, parquet.WriteFile(filepath.Join(dir, "empty.parquet"), []movement.Record{}))

	_, found, err := New(dir).LatestYear(context.Background())
	require.NoError(t, err)
	assert.False(t, found)
}

func TestLatestYear_MissingDirectory(t *testing.T) {
	_, _, err := New(filepath.Join(t.TempDir(), "missing")).LatestYear(context.Background())
	assert.True(t, IsDataUnavailable(err))
}

func TestLatestYear_YearStoredAsText(t *testing.T) {
	type textYear struct {
		Year string `parquet:"ANO"`
	}
	dir := t.TempDir()
	require.NoError(t, parquet.WriteFile(filepath.Join(dir, "bad.parquet"), []textYear{{Year: "2023"}}))

	_, _, err := New(dir).LatestYear(context.Background())
	require.Error(t, err)
	assert.True(t, IsDataUnavailable(err))
	assert.Contains(t, err.Error(), "column types differ")
	assert.Contains(t, err.Error(), movement.ColYear)
}

func TestLatestYear_Cancelled(t *testing.T) {
	dir := testutil.PartitionDir(t, testutil.Passengers("SBRF", 2023, 1, "AZU", 1))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := New(dir).LatestYear(ctx)
	assert.True(t, IsQueryExecution(err))
	assert.ErrorIs(t, err, context.Canceled)
}
