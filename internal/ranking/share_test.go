package ranking

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/airq/internal/movement"
	"github.com/roach88/airq/internal/store"
	"github.com/roach88/airq/internal/testutil"
)

func sumShares(entries []ShareEntry) (flights, pax float64) {
	for _, e := range entries {
		flights += e.FlightShare
		pax += e.PassengerShare
	}
	return flights, pax
}

func TestMarketShare_LongTailBucket(t *testing.T) {
	e, _ := engineFor(t,
		flight("SBRF", 2023, "AZU", 1200),
		flight("SBRF", 2023, "GLO", 700),
		flight("SBRF", 2023, "PTB", 10),
	)

	got, err := e.MarketShare(context.Background(), intPtr(2023), nil, "")
	require.NoError(t, err)
	require.Len(t, got.Entries, 3)

	assert.Equal(t, "AZU", got.Entries[0].Operator)
	assert.Equal(t, "GLO", got.Entries[1].Operator)
	assert.Equal(t, OtherLabel, got.Entries[2].Operator)
	assert.True(t, got.Entries[2].Other)
	assert.InDelta(t, 10*100/1910.0, got.Entries[2].PassengerShare, 1e-9)
	assert.InDelta(t, 100.0/3, got.Entries[2].FlightShare, 1e-9)

	flights, pax := sumShares(got.Entries)
	assert.InDelta(t, 100, pax, 1e-9)
	assert.InDelta(t, 100, flights, 1e-9)
	assert.Equal(t, 2023, got.Year)
}

func TestMarketShare_SixtyThirtyFiveHalfSplit(t *testing.T) {
	// 60% / 35% / 0.5% of the passengers, with the rest of the market held
	// by nine more carriers at 0.5% each.
	tail := []movement.Record{flight("SBRF", 2023, "PTB", 100)}
	for i := 1; i <= 9; i++ {
		tail = append(tail, flight("SBRF", 2023, fmt.Sprintf("X%02d", i), 100))
	}

	tests := []struct {
		name        string
		records     []movement.Record
		otherPax    float64
		otherFlight float64
	}{
		{
			name: "three operators",
			records: []movement.Record{
				flight("SBRF", 2023, "AZU", 12000),
				flight("SBRF", 2023, "GLO", 7000),
				flight("SBRF", 2023, "PTB", 100),
			},
			otherPax:    100 * 100 / 19100.0,
			otherFlight: 100.0 / 3,
		},
		{
			name: "literal percentages",
			records: append([]movement.Record{
				flight("SBRF", 2023, "AZU", 12000),
				flight("SBRF", 2023, "GLO", 7000),
			}, tail...),
			otherPax:    5,
			otherFlight: 10 * 100 / 12.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, _ := engineFor(t, tt.records...)

			got, err := e.MarketShare(context.Background(), intPtr(2023), nil, "")
			require.NoError(t, err)
			require.Len(t, got.Entries, 3)

			assert.Equal(t, "AZU", got.Entries[0].Operator)
			assert.Equal(t, "GLO", got.Entries[1].Operator)
			assert.False(t, got.Entries[0].Other)
			assert.False(t, got.Entries[1].Other)

			other := got.Entries[2]
			assert.Equal(t, OtherLabel, other.Operator)
			assert.True(t, other.Other)
			assert.InDelta(t, tt.otherPax, other.PassengerShare, 1e-9)
			assert.InDelta(t, tt.otherFlight, other.FlightShare, 1e-9)

			flights, pax := sumShares(got.Entries)
			assert.InDelta(t, 100, pax, 1e-9)
			assert.InDelta(t, 100, flights, 1e-9)
		})
	}
}

func TestMarketShare_NoBucketWhenAllAboveThreshold(t *testing.T) {
	e, _ := engineFor(t,
		flight("SBRF", 2023, "AZU", 500),
		flight("SBRF", 2023, "GLO", 500),
	)

	got, err := e.MarketShare(context.Background(), intPtr(2023), nil, "")
	require.NoError(t, err)
	require.Len(t, got.Entries, 2)
	// Equal shares order by operator code.
	assert.Equal(t, "AZU", got.Entries[0].Operator)
	assert.Equal(t, "GLO", got.Entries[1].Operator)
	for _, entry := range got.Entries {
		assert.False(t, entry.Other)
	}
}

func TestMarketShare_ConfigurableThreshold(t *testing.T) {
	dir := testutil.PartitionDir(t,
		flight("SBRF", 2023, "AZU", 600),
		flight("SBRF", 2023, "GLO", 300),
		flight("SBRF", 2023, "TAM", 100),
	)
	e := New(store.New(dir), WithOtherThreshold(40))

	got, err := e.MarketShare(context.Background(), intPtr(2023), nil, "")
	require.NoError(t, err)
	require.Len(t, got.Entries, 2)
	assert.Equal(t, "AZU", got.Entries[0].Operator)
	assert.InDelta(t, 40, got.Entries[1].PassengerShare, 1e-9)
	assert.True(t, got.Entries[1].Other)
}

func TestMarketShare_ZeroPassengerOperatorsExcluded(t *testing.T) {
	ferry := flight("SBRF", 2023, "BPC", 0)
	e, _ := engineFor(t,
		flight("SBRF", 2023, "AZU", 100),
		flight("SBRF", 2023, "GLO", 100),
		ferry, ferry,
	)

	got, err := e.MarketShare(context.Background(), intPtr(2023), nil, "")
	require.NoError(t, err)
	require.Len(t, got.Entries, 2)

	// Flight shares are over every operator, so the excluded flights remain
	// in the denominator.
	flights, pax := sumShares(got.Entries)
	assert.InDelta(t, 100, pax, 1e-9)
	assert.InDelta(t, 50, flights, 1e-9)
}

func TestMarketShare_MonthAndAirportFilters(t *testing.T) {
	e, _ := engineFor(t,
		testutil.Passengers("SBRF", 2023, 1, "AZU", 100),
		testutil.Passengers("SBRF", 2023, 2, "GLO", 100),
		testutil.Passengers("SBGR", 2023, 1, "GLO", 900),
	)

	got, err := e.MarketShare(context.Background(), intPtr(2023), intPtr(1), "SBRF")
	require.NoError(t, err)
	require.Len(t, got.Entries, 1)
	assert.Equal(t, "AZU", got.Entries[0].Operator)
	assert.InDelta(t, 100, got.Entries[0].PassengerShare, 1e-9)
	assert.Equal(t, 1, *got.Month)
	assert.Equal(t, "SBRF", got.Airport)
}

func TestMarketShare_NoPassengersIsNotFound(t *testing.T) {
	e, _ := engineFor(t, flight("SBRF", 2023, "BPC", 0))

	_, err := e.MarketShare(context.Background(), intPtr(2023), nil, "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBucketShares_SumsToHundred(t *testing.T) {
	shares := []ShareEntry{
		{Operator: "A", FlightShare: 10, PassengerShare: 0.3},
		{Operator: "B", FlightShare: 40, PassengerShare: 59.5},
		{Operator: "C", FlightShare: 20, PassengerShare: 0.2},
		{Operator: "D", FlightShare: 30, PassengerShare: 40},
	}

	got := bucketShares(shares, DefaultOtherThreshold)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"B", "D", OtherLabel}, []string{got[0].Operator, got[1].Operator, got[2].Operator})
	assert.InDelta(t, 0.5, got[2].PassengerShare, 1e-9)
	assert.InDelta(t, 30, got[2].FlightShare, 1e-9)

	flights, pax := sumShares(got)
	assert.InDelta(t, 100, pax, 1e-9)
	assert.InDelta(t, 100, flights, 1e-9)
}

func TestObserve(t *testing.T) {
	obs := Observe(MarketShareResult{Entries: []ShareEntry{
		{Operator: "AZU", PassengerShare: 50},
		{Operator: "GLO", PassengerShare: 30},
		{Operator: "TAM", PassengerShare: 16},
		{Operator: "PTB", PassengerShare: 3},
		{Operator: OtherLabel, PassengerShare: 1, Other: true},
	}})

	assert.Equal(t, MarketObservations{LeaderShare: 50, Top3Share: 96, SmallOperators: 2}, obs)
}

func TestInsights(t *testing.T) {
	e, _ := engineFor(t,
		flight("SBGR", 2023, "AZU", 800),
		flight("SBRF", 2023, "GLO", 200),
		flight("SBRF", 2022, "GLO", 5000),
	)

	got, err := e.Insights(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 2023, got.Year)
	require.NotNil(t, got.Busiest)
	assert.Equal(t, "SBGR", got.Busiest.Airport)
	require.NotNil(t, got.TopOperator)
	assert.Equal(t, "AZU", got.TopOperator.Operator)
	require.NotNil(t, got.TopAirports)
	assert.Len(t, got.TopAirports.Airports, 2)
	require.NotNil(t, got.MarketShare)
	require.NotNil(t, got.Observations)
	assert.InDelta(t, 80, got.Observations.LeaderShare, 1e-9)
}

func TestInsights_PartialSections(t *testing.T) {
	// Only cargo, so market share has no passengers to split.
	r := flight("SBKP", 2023, "LTG", 0)
	r.CargoKg = 100
	r.MovementType = string(movement.Departure)
	e, _ := engineFor(t, r)

	got, err := e.Insights(context.Background(), intPtr(2023))
	require.NoError(t, err)
	assert.NotNil(t, got.Busiest)
	assert.Nil(t, got.MarketShare)
	assert.Nil(t, got.Observations)
}
