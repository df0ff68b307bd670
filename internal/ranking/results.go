package ranking

import "github.com/roach88/airq/internal/movement"

// Result is a sealed interface over every shape Run can return.
type Result interface {
	result() // Marker method - seals interface to this package
}

// Metric names what a ranking's Value counts.
type Metric string

const (
	MetricPassengers           Metric = "passengers"
	MetricInternationalFlights Metric = "international_flights"
	MetricCargo                Metric = "cargo_kg"
	MetricFlights              Metric = "flights"
	MetricDelayMinutes         Metric = "delay_minutes"
)

// AirportRanking is the top airport for one year.
type AirportRanking struct {
	Airport string `json:"airport"`
	Metric  Metric `json:"metric"`
	Value   int64  `json:"value"`
	Year    int    `json:"year"`
}

func (AirportRanking) result() {}

// OperatorRanking is the top operator for one year, optionally at one airport.
type OperatorRanking struct {
	Operator string `json:"operator"`
	Metric   Metric `json:"metric"`
	Value    int64  `json:"value"`
	Year     int    `json:"year"`
	Airport  string `json:"airport,omitempty"`
}

func (OperatorRanking) result() {}

// DestinationRanking is the most frequent counterpart airport.
type DestinationRanking struct {
	Destination string `json:"destination"`
	Flights     int64  `json:"flights"`
	Year        int    `json:"year"`
	Origin      string `json:"origin,omitempty"`
}

func (DestinationRanking) result() {}

// AirportTotal is one row of the top airports list.
type AirportTotal struct {
	Airport    string `json:"airport"`
	Passengers int64  `json:"passengers"`
}

// TopAirportsResult is the top airports by passengers for one year.
type TopAirportsResult struct {
	Year     int            `json:"year"`
	Airports []AirportTotal `json:"airports"`
}

func (TopAirportsResult) result() {}

// OtherLabel is the operator name of the long-tail bucket.
const OtherLabel = "Demais"

// ShareEntry is one operator's share of flights and passengers, in percent.
type ShareEntry struct {
	Operator       string  `json:"operator"`
	FlightShare    float64 `json:"flight_share"`
	PassengerShare float64 `json:"passenger_share"`

	// Other marks the synthetic bucket of operators under the threshold.
	Other bool `json:"other,omitempty"`
}

// MarketShareResult lists operators by descending passenger share; the
// long-tail bucket, when present, is always last.
type MarketShareResult struct {
	Entries []ShareEntry `json:"entries"`
	Year    int          `json:"year"`
	Month   *int         `json:"month,omitempty"`
	Airport string       `json:"airport,omitempty"`
}

func (MarketShareResult) result() {}

// YearValue is one point of a yearly series.
type YearValue struct {
	Year  int   `json:"year"`
	Value int64 `json:"value"`
}

// Series is a yearly total in ascending year order.
type Series struct {
	Points  []YearValue `json:"points"`
	Cargo   bool        `json:"cargo"`
	Airport string      `json:"airport,omitempty"`
}

func (Series) result() {}

// VolumeQuery holds the filters of a scalar volume query.
// Empty strings and nil pointers mean "no filter".
type VolumeQuery struct {
	Airport      string                `json:"airport,omitempty"`
	Year         *int                  `json:"year,omitempty"`
	Month        *int                  `json:"month,omitempty"`
	MovementType movement.MovementType `json:"movement_type,omitempty"`
	Nature       movement.Nature       `json:"nature,omitempty"`
	Cargo        bool                  `json:"cargo,omitempty"`
}

// VolumeResult is a scalar total with the filters that produced it.
// Query.Year is filled in when it was defaulted.
type VolumeResult struct {
	Query   VolumeQuery `json:"query"`
	Total   int64       `json:"total"`
	Records int64       `json:"records"`

	// YearDefaulted is true when Query.Year was resolved to the latest year.
	YearDefaulted bool `json:"year_defaulted,omitempty"`
}

func (VolumeResult) result() {}
