package movement

import "strings"

// Partition column names. The SQL relation built by the store uses the same
// names, so a column constant is valid both in parquet and in queries.
const (
	ColYear                   = "ANO"
	ColMonth                  = "MES"
	ColReferenceAirport       = "NR_AEROPORTO_REFERENCIA"
	ColOtherAirport           = "NR_VOO_OUTRO_AEROPORTO"
	ColMovementType           = "NR_MOVIMENTO_TIPO"
	ColNature                 = "NR_NATUREZA"
	ColOperator               = "NR_AERONAVE_OPERADOR"
	ColLocalPassengers        = "QT_PAX_LOCAL"
	ColDomesticConnPassengers = "QT_PAX_CONEXAO_DOMESTICO"
	ColIntlConnPassengers     = "QT_PAX_CONEXAO_INTERNACIONAL"
	ColCargo                  = "QT_CARGA"
	ColScheduledMinutes       = "HH_PREVISTO_MIN"
	ColActualMinutes          = "HH_CALCO_MIN"
)

// Columns lists every column of the relation in declaration order.
var Columns = []string{
	ColYear,
	ColMonth,
	ColReferenceAirport,
	ColOtherAirport,
	ColMovementType,
	ColNature,
	ColOperator,
	ColLocalPassengers,
	ColDomesticConnPassengers,
	ColIntlConnPassengers,
	ColCargo,
	ColScheduledMinutes,
	ColActualMinutes,
}

var columnSet = func() map[string]bool {
	m := make(map[string]bool, len(Columns))
	for _, c := range Columns {
		m[c] = true
	}
	return m
}()

// IsColumn reports whether name is a column of the movement relation.
func IsColumn(name string) bool {
	return columnSet[name]
}

// GeneralOperator is the placeholder operator code used for aggregate rows
// that do not belong to a real carrier.
const GeneralOperator = "GERAL"

// Record is one aircraft movement as stored in a partition file.
// Records are immutable once written.
type Record struct {
	Year                   int64  `parquet:"ANO"`
	Month                  int64  `parquet:"MES"`
	ReferenceAirport       string `parquet:"NR_AEROPORTO_REFERENCIA"`
	OtherAirport           string `parquet:"NR_VOO_OUTRO_AEROPORTO"`
	MovementType           string `parquet:"NR_MOVIMENTO_TIPO"`
	Nature                 string `parquet:"NR_NATUREZA"`
	Operator               string `parquet:"NR_AERONAVE_OPERADOR"`
	LocalPassengers        int64  `parquet:"QT_PAX_LOCAL"`
	DomesticConnPassengers int64  `parquet:"QT_PAX_CONEXAO_DOMESTICO"`
	IntlConnPassengers     int64  `parquet:"QT_PAX_CONEXAO_INTERNACIONAL"`
	CargoKg                int64  `parquet:"QT_CARGA"`
	ScheduledMinutes       int64  `parquet:"HH_PREVISTO_MIN"`
	ActualMinutes          int64  `parquet:"HH_CALCO_MIN"`
}

// TotalPassengers returns the record-level passenger total.
func (r Record) TotalPassengers() int64 {
	return r.LocalPassengers + r.DomesticConnPassengers + r.IntlConnPassengers
}

// Field returns the value of the named column.
// The second result is false when name is not a column.
func (r Record) Field(name string) (Value, bool) {
	switch name {
	case ColYear:
		return Int(r.Year), true
	case ColMonth:
		return Int(r.Month), true
	case ColReferenceAirport:
		return Text(r.ReferenceAirport), true
	case ColOtherAirport:
		return Text(r.OtherAirport), true
	case ColMovementType:
		return Text(r.MovementType), true
	case ColNature:
		return Text(r.Nature), true
	case ColOperator:
		return Text(r.Operator), true
	case ColLocalPassengers:
		return Int(r.LocalPassengers), true
	case ColDomesticConnPassengers:
		return Int(r.DomesticConnPassengers), true
	case ColIntlConnPassengers:
		return Int(r.IntlConnPassengers), true
	case ColCargo:
		return Int(r.CargoKg), true
	case ColScheduledMinutes:
		return Int(r.ScheduledMinutes), true
	case ColActualMinutes:
		return Int(r.ActualMinutes), true
	default:
		return nil, false
	}
}

// Args returns the record's column values in Columns order, ready to be
// bound to an INSERT statement.
func (r Record) Args() []any {
	return []any{
		r.Year,
		r.Month,
		r.ReferenceAirport,
		r.OtherAirport,
		r.MovementType,
		r.Nature,
		r.Operator,
		r.LocalPassengers,
		r.DomesticConnPassengers,
		r.IntlConnPassengers,
		r.CargoKg,
		r.ScheduledMinutes,
		r.ActualMinutes,
	}
}

// MovementType is the direction of a movement as seen from the reference airport.
type MovementType string

const (
	Landing   MovementType = "P"
	Departure MovementType = "D"
)

// ParseMovementType accepts the stored codes and their Portuguese names.
// Anything else yields "" and false.
func ParseMovementType(s string) (MovementType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "p", "pouso", "pousos", "chegada", "chegadas", "landing":
		return Landing, true
	case "d", "decolagem", "decolagens", "partida", "partidas", "departure":
		return Departure, true
	default:
		return "", false
	}
}

// Nature distinguishes domestic from international flights.
type Nature string

const (
	Domestic      Nature = "D"
	International Nature = "I"
)

// ParseNature accepts the stored codes and their Portuguese names.
func ParseNature(s string) (Nature, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "d", "domestico", "doméstico", "domestica", "doméstica", "domestic":
		return Domestic, true
	case "i", "internacional", "international":
		return International, true
	default:
		return "", false
	}
}
