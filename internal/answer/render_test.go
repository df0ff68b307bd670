package answer

import (
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"

	"github.com/roach88/airq/internal/compiler"
	"github.com/roach88/airq/internal/movement"
	"github.com/roach88/airq/internal/ranking"
	"github.com/roach88/airq/internal/resolver"
)

func intPtr(v int) *int {
	return &v
}

func newGoldie(t *testing.T) *goldie.Goldie {
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func trendSeries(cargo bool, airport string, points ...ranking.YearValue) ranking.Series {
	return ranking.Series{Points: points, Cargo: cargo, Airport: airport}
}

// To regenerate golden files, run:
//
//	go test ./internal/answer -update
func TestRender_Golden(t *testing.T) {
	r := New(resolver.New())

	tests := []struct {
		name   string
		result ranking.Result
	}{
		{"busiest_airport", ranking.AirportRanking{
			Airport: "SBGR", Metric: ranking.MetricPassengers, Value: 41234567, Year: 2023,
		}},
		{"most_international", ranking.AirportRanking{
			Airport: "SBGR", Metric: ranking.MetricInternationalFlights, Value: 65432, Year: 2023,
		}},
		{"top_operator_passengers", ranking.OperatorRanking{
			Operator: "AZU", Metric: ranking.MetricPassengers, Value: 12345678, Year: 2023, Airport: "SBKP",
		}},
		{"top_operator_cargo", ranking.OperatorRanking{
			Operator: "LTG", Metric: ranking.MetricCargo, Value: 98765432, Year: 2022,
		}},
		{"most_delayed_operator", ranking.OperatorRanking{
			Operator: "GLO", Metric: ranking.MetricDelayMinutes, Value: 54321, Year: 2023, Airport: "SBSP",
		}},
		{"top_destination", ranking.DestinationRanking{
			Destination: "SBBR", Flights: 23456, Year: 2023, Origin: "SBRF",
		}},
		{"top_airports", ranking.TopAirportsResult{Year: 2023, Airports: []ranking.AirportTotal{
			{Airport: "SBGR", Passengers: 41234567},
			{Airport: "SBSP", Passengers: 22345678},
			{Airport: "SBBR", Passengers: 15123456},
		}}},
		{"market_share", ranking.MarketShareResult{
			Year: 2023, Month: intPtr(3), Airport: "SBKP",
			Entries: []ranking.ShareEntry{
				{Operator: "AZU", FlightShare: 40.1, PassengerShare: 45.24},
				{Operator: "GLO", FlightShare: 35, PassengerShare: 33.3},
				{Operator: "TAM", FlightShare: 24, PassengerShare: 20.96},
				{Operator: ranking.OtherLabel, FlightShare: 0.9, PassengerShare: 0.5, Other: true},
			},
		}},
		{"history_cargo", trendSeries(true, "SBKP",
			ranking.YearValue{Year: 2021, Value: 123456},
			ranking.YearValue{Year: 2022, Value: 234567},
		)},
		{"history_nationwide", trendSeries(false, "",
			ranking.YearValue{Year: 2022, Value: 98765432},
			ranking.YearValue{Year: 2023, Value: 12345678},
		)},
		{"volume_month_landing_domestic", ranking.VolumeResult{
			Query: ranking.VolumeQuery{
				Airport: "SBRF", Year: intPtr(2023), Month: intPtr(1),
				MovementType: movement.Landing, Nature: movement.Domestic,
			},
			Total: 12345, Records: 10,
		}},
		{"volume_nationwide_cargo", ranking.VolumeResult{
			Query: ranking.VolumeQuery{Year: intPtr(2022), Cargo: true},
			Total: 98765432, Records: 10,
		}},
		{"volume_all_years_departures", ranking.VolumeResult{
			Query: ranking.VolumeQuery{
				Airport: "SBGR", MovementType: movement.Departure, Nature: movement.International,
			},
			Total: 654321, Records: 10,
		}},
		{"trends", ranking.Analyze(trendSeries(false, "SBRF",
			ranking.YearValue{Year: 2019, Value: 100000},
			ranking.YearValue{Year: 2020, Value: 40000},
			ranking.YearValue{Year: 2021, Value: 60000},
		))},
		{"trends_single_year", ranking.Analyze(trendSeries(true, "",
			ranking.YearValue{Year: 2023, Value: 12345},
		))},
		{"insights", ranking.InsightReport{
			Year:        2023,
			Busiest:     &ranking.AirportRanking{Airport: "SBGR", Metric: ranking.MetricPassengers, Value: 41234567, Year: 2023},
			TopOperator: &ranking.OperatorRanking{Operator: "AZU", Metric: ranking.MetricPassengers, Value: 12345678, Year: 2023},
			TopAirports: &ranking.TopAirportsResult{Year: 2023, Airports: []ranking.AirportTotal{
				{Airport: "SBGR", Passengers: 41234567},
				{Airport: "SBSP", Passengers: 22345678},
			}},
			Observations: &ranking.MarketObservations{LeaderShare: 45.24, Top3Share: 90.1, SmallOperators: 3},
		}},
	}

	g := newGoldie(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g.Assert(t, tt.name, []byte(r.Render(tt.result)))
		})
	}
}

func TestFeedback_Golden(t *testing.T) {
	r := New(resolver.New())

	tests := []struct {
		name string
		text string
	}{
		{"clarify_not_understood", r.Clarify(&compiler.Error{Code: compiler.ErrIntentNotUnderstood})},
		{"clarify_missing_airport_and_year", r.Clarify(&compiler.Error{
			Code: compiler.ErrMissingAirport, Missing: []string{compiler.FieldAirport, compiler.FieldYear},
		})},
		{"clarify_unrecognized_airport", r.Clarify(&compiler.Error{
			Code: compiler.ErrUnrecognizedAirport, Field: compiler.FieldAirport, Value: "ATLANTIS",
		})},
		{"not_found_volume", r.NotFound(compiler.Plan{
			Shape: compiler.ShapeVolume, Airport: "SBRF", Year: intPtr(2023), Month: intPtr(1),
			MovementType: movement.Landing, Nature: movement.International, Cargo: true,
		})},
		{"not_found_busiest", r.NotFound(compiler.Plan{Shape: compiler.ShapeBusiestAirport})},
	}

	g := newGoldie(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g.Assert(t, tt.name, []byte(tt.text))
		})
	}
}

func TestClarify_MissingYearOnly(t *testing.T) {
	r := New(resolver.New())

	got := r.Clarify(&compiler.Error{Code: compiler.ErrMissingYear, Missing: []string{compiler.FieldYear}})
	assert.Contains(t, got, feedbackYear)
	assert.NotContains(t, got, feedbackAirport)
}

func TestClarify_NeverLeaksErrorText(t *testing.T) {
	r := New(resolver.New())

	err := &compiler.Error{Code: compiler.ErrMissingYear, Message: "volume query needs a year", Missing: []string{compiler.FieldYear}}
	assert.NotContains(t, r.Clarify(err), "volume query")
	assert.NotContains(t, r.Clarify(err), "E203")
}

func TestNotFound_RankingWithoutCriteriaIsGeneric(t *testing.T) {
	r := New(resolver.New())

	assert.Equal(t, GenericNotFound(), r.NotFound(compiler.Plan{Shape: compiler.ShapeTopOperatorPassengers}))
}

func TestNotFound_MostInternationalWithYear(t *testing.T) {
	r := New(resolver.New())

	got := r.NotFound(compiler.Plan{Shape: compiler.ShapeMostInternational, Year: intPtr(2019)})
	assert.Equal(t, "Não foi possível determinar o aeroporto com mais voos internacionais. Verifique os dados para o ano 2019.", got)
}

func TestRender_UnknownResultIsFailure(t *testing.T) {
	r := New(resolver.New())

	assert.Equal(t, Failure(), r.Render(nil))
}

func TestRender_UnknownOperatorUsesCode(t *testing.T) {
	r := New(resolver.New())

	got := r.Render(ranking.OperatorRanking{Operator: "XYZ", Metric: ranking.MetricPassengers, Value: 10, Year: 2023})
	assert.Contains(t, got, "**XYZ**")
}
