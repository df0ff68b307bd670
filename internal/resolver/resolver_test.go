package resolver

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveAirport(t *testing.T) {
	r := New()

	tests := []struct {
		in   string
		want string
	}{
		{"Recife", "SBRF"},
		{"recife", "SBRF"},
		{"  RECIFE  ", "SBRF"},
		{"Guarulhos", "SBGR"},
		{"são paulo", "SBSP"},
		{"sao paulo", "SBSP"},
		{"Brasília", "SBBR"},
		{"brasilia", "SBBR"},
		{"santos dumont", "SBRJ"},
		{"campo de marte", "SBMT"},
		{"sbrf", "SBRF"},
		{"XXXX", "XXXX"},
		{"xxxx", "XXXX"},
		{"", ""},
		{"   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, r.ResolveAirport(tt.in))
		})
	}
}

func TestDisplayNameForAirport(t *testing.T) {
	r := New()

	assert.Equal(t, "Recife", r.DisplayNameForAirport("SBRF"))
	assert.Equal(t, "Recife", r.DisplayNameForAirport("sbrf"))
	assert.Equal(t, "Guarulhos", r.DisplayNameForAirport("SBGR"))
	// SBSP is declared as congonhas before são paulo.
	assert.Equal(t, "Congonhas", r.DisplayNameForAirport("SBSP"))
	// SBGL is declared as galeão before rio de janeiro.
	assert.Equal(t, "Galeão", r.DisplayNameForAirport("SBGL"))
	assert.Equal(t, "Foz Do Iguaçu", r.DisplayNameForAirport("SBFI"))
	assert.Equal(t, "Zzzz", r.DisplayNameForAirport("ZZZZ"))
}

func TestDisplayNameForAirport_RoundTrip(t *testing.T) {
	r := New()

	for _, a := range airportAliases {
		name := r.DisplayNameForAirport(a.code)
		assert.Equal(t, a.code, r.ResolveAirport(name), "display name %q of %s", name, a.code)
	}
}

func TestDisplayNameForOperator(t *testing.T) {
	r := New()

	assert.Equal(t, "Azul", r.DisplayNameForOperator("AZU"))
	assert.Equal(t, "Gol", r.DisplayNameForOperator("glo"))
	assert.Equal(t, "LATAM Brasil", r.DisplayNameForOperator("TAM"))
	assert.Equal(t, "XYZ", r.DisplayNameForOperator("XYZ"))
	assert.Equal(t, "", r.DisplayNameForOperator(""))
}

func TestIsKnownAirport(t *testing.T) {
	r := New()

	assert.True(t, r.IsKnownAirport("SBRF"))
	assert.True(t, r.IsKnownAirport("sbgr"))
	assert.True(t, r.IsKnownAirport("SNTF"))
	assert.False(t, r.IsKnownAirport("XXXX"))
	assert.False(t, r.IsKnownAirport(""))
}

func TestIsNationwide(t *testing.T) {
	r := New()

	assert.True(t, r.IsNationwide("Brasil"))
	assert.True(t, r.IsNationwide("BRAZIL"))
	assert.True(t, r.IsNationwide(" brasil "))
	assert.False(t, r.IsNationwide("Recife"))
	assert.False(t, r.IsNationwide(""))
}

func TestResolver_ConcurrentReads(t *testing.T) {
	r := New()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, "SBSV", r.ResolveAirport("salvador"))
			assert.Equal(t, "Salvador", r.DisplayNameForAirport("SBSV"))
			assert.Equal(t, "SBSL", r.ResolveAirport("sao luis"))
		}()
	}
	wg.Wait()
}
