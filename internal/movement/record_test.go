package movement

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecord_TotalPassengers(t *testing.T) {
	r := Record{LocalPassengers: 100, DomesticConnPassengers: 20, IntlConnPassengers: 3}
	assert.Equal(t, int64(123), r.TotalPassengers())
}

func TestRecord_FieldCoversEveryColumn(t *testing.T) {
	r := Record{Year: 2024, ReferenceAirport: "SBRF"}
	for _, col := range Columns {
		_, ok := r.Field(col)
		assert.True(t, ok, "column %s", col)
	}

	v, ok := r.Field(ColYear)
	require.True(t, ok)
	assert.Equal(t, Int(2024), v)

	v, ok = r.Field(ColReferenceAirport)
	require.True(t, ok)
	assert.Equal(t, Text("SBRF"), v)

	_, ok = r.Field("nope")
	assert.False(t, ok)
}

func TestRecord_ArgsMatchColumns(t *testing.T) {
	assert.Len(t, Record{}.Args(), len(Columns))
}

func TestIsColumn(t *testing.T) {
	assert.True(t, IsColumn(ColCargo))
	assert.False(t, IsColumn("id; DROP TABLE movements"))
}

func TestParseMovementType(t *testing.T) {
	tests := []struct {
		in   string
		want MovementType
		ok   bool
	}{
		{"P", Landing, true},
		{"p", Landing, true},
		{" pouso ", Landing, true},
		{"D", Departure, true},
		{"decolagens", Departure, true},
		{"X", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseMovementType(tt.in)
		assert.Equal(t, tt.want, got, tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
	}
}

func TestParseNature(t *testing.T) {
	got, ok := ParseNature("I")
	assert.True(t, ok)
	assert.Equal(t, International, got)

	got, ok = ParseNature("doméstico")
	assert.True(t, ok)
	assert.Equal(t, Domestic, got)

	_, ok = ParseNature("cargo")
	assert.False(t, ok)
}

func TestParam(t *testing.T) {
	p, err := Param(Text("SBRF"))
	require.NoError(t, err)
	assert.Equal(t, "SBRF", p)

	p, err = Param(Int(7))
	require.NoError(t, err)
	assert.Equal(t, int64(7), p)

	_, err = Param(nil)
	assert.Error(t, err)
}

func TestValueOf(t *testing.T) {
	assert.Equal(t, Int(2023), ValueOf(int64(2023)))
	assert.Equal(t, Text("GLO"), ValueOf([]byte("GLO")))
	assert.Equal(t, Text("AZU"), ValueOf("AZU"))
	assert.Equal(t, "2023", String(Int(2023)))
}
