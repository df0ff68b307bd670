package queryir

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/roach88/airq/internal/movement"
)

func TestAggregate_ImplementsRequest(t *testing.T) {
	var r Request = Aggregate{}
	switch r.(type) {
	case Aggregate:
		// Expected
	default:
		t.Fatal("unexpected type")
	}
}

func TestPredicates_ImplementPredicate(t *testing.T) {
	preds := []Predicate{
		Equals{Column: movement.ColYear, Value: movement.Int(2024)},
		NotEquals{Column: movement.ColOperator, Value: movement.Text("GERAL")},
		And{},
	}
	assert.Len(t, preds, 3)
}

func TestWhere(t *testing.T) {
	year := Equals{Column: movement.ColYear, Value: movement.Int(2024)}
	airport := Equals{Column: movement.ColReferenceAirport, Value: movement.Text("SBRF")}

	assert.Nil(t, Where())
	assert.Nil(t, Where(nil, nil))
	assert.Equal(t, year, Where(nil, year))
	assert.Equal(t, And{Predicates: []Predicate{year, airport}}, Where(year, nil, airport))
}

func TestIsAggregate(t *testing.T) {
	assert.True(t, IsAggregate(Sum{Of: Column{Name: movement.ColCargo}}))
	assert.True(t, IsAggregate(Count{}))
	assert.True(t, IsAggregate(&Max{Of: Column{Name: movement.ColYear}}))
	assert.False(t, IsAggregate(Column{Name: movement.ColCargo}))
	assert.False(t, IsAggregate(NonNegative{Of: Column{Name: movement.ColCargo}}))
	assert.False(t, IsAggregate(nil))
}
