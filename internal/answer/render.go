package answer

import (
	"fmt"
	"strings"

	"github.com/roach88/airq/internal/movement"
	"github.com/roach88/airq/internal/ranking"
)

// Namer supplies display names for codes. *resolver.Resolver implements it.
type Namer interface {
	DisplayNameForAirport(code string) string
	DisplayNameForOperator(code string) string
}

// Renderer turns results into answer text.
type Renderer struct {
	names Namer
}

// New creates a Renderer.
func New(names Namer) *Renderer {
	return &Renderer{names: names}
}

// Render returns the answer sentence for a result.
func (r *Renderer) Render(res ranking.Result) string {
	switch v := res.(type) {
	case ranking.AirportRanking:
		return r.airportRanking(v)
	case ranking.OperatorRanking:
		return r.operatorRanking(v)
	case ranking.DestinationRanking:
		return r.destination(v)
	case ranking.TopAirportsResult:
		return r.topAirports(v)
	case ranking.MarketShareResult:
		return r.marketShare(v)
	case ranking.Series:
		return r.history(v)
	case ranking.VolumeResult:
		return r.volume(v)
	case ranking.TrendReport:
		return r.trends(v)
	case ranking.InsightReport:
		return r.insights(v)
	default:
		return Failure()
	}
}

func (r *Renderer) airport(code string) string {
	return r.names.DisplayNameForAirport(code)
}

func (r *Renderer) operator(code string) string {
	if code == ranking.OtherLabel {
		return code
	}
	return r.names.DisplayNameForOperator(code)
}

// at returns " no aeroporto de X", or "" for no airport.
func (r *Renderer) at(code string) string {
	if code == "" {
		return ""
	}
	return " no aeroporto de " + r.airport(code)
}

func (r *Renderer) airportRanking(v ranking.AirportRanking) string {
	name := r.airport(v.Airport)
	if v.Metric == ranking.MetricInternationalFlights {
		return fmt.Sprintf("No ano de %d, o aeroporto com mais voos internacionais foi **%s**, com **%s** voos internacionais registrados.",
			v.Year, name, Number(v.Value))
	}
	return fmt.Sprintf("No ano de %d, o aeroporto mais movimentado do Brasil foi **%s**, com um total de **%s** passageiros.",
		v.Year, name, Number(v.Value))
}

func (r *Renderer) operatorRanking(v ranking.OperatorRanking) string {
	name := r.operator(v.Operator)
	where := r.at(v.Airport)
	switch v.Metric {
	case ranking.MetricCargo:
		return fmt.Sprintf("No ano de %d, a companhia aérea que mais transportou cargas%s foi **%s**, com **%s** kg de cargas.",
			v.Year, where, name, Number(v.Value))
	case ranking.MetricDelayMinutes:
		return fmt.Sprintf("No ano de %d, a companhia aérea com mais atrasos nos pousos%s foi **%s**, com **%s** minutos de atraso acumulados.",
			v.Year, where, name, Number(v.Value))
	default:
		return fmt.Sprintf("No ano de %d, a companhia aérea que mais transportou passageiros%s foi **%s**, com **%s** passageiros.",
			v.Year, where, name, Number(v.Value))
	}
}

func (r *Renderer) destination(v ranking.DestinationRanking) string {
	from := ""
	if v.Origin != "" {
		from = " a partir de " + r.airport(v.Origin)
	}
	return fmt.Sprintf("No ano de %d, o destino mais frequente%s foi **%s**, com **%s** voos registrados.",
		v.Year, from, r.airport(v.Destination), Number(v.Flights))
}

func (r *Renderer) topAirports(v ranking.TopAirportsResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Os aeroportos mais movimentados do Brasil em %d:", v.Year)
	for i, a := range v.Airports {
		fmt.Fprintf(&b, "\n%d. **%s**: %s passageiros", i+1, r.airport(a.Airport), Number(a.Passengers))
	}
	return b.String()
}

func (r *Renderer) marketShare(v ranking.MarketShareResult) string {
	period := fmt.Sprintf("%d", v.Year)
	if v.Month != nil {
		period = fmt.Sprintf("%s de %d", capitalize(MonthName(*v.Month)), v.Year)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Participação de mercado das companhias aéreas%s em %s:", r.at(v.Airport), period)
	for _, e := range v.Entries {
		fmt.Fprintf(&b, "\n- **%s**: %s dos passageiros e %s dos voos",
			r.operator(e.Operator), Percent(e.PassengerShare), Percent(e.FlightShare))
	}
	return b.String()
}

// unit returns the value unit of a passenger or cargo series.
func unit(cargo bool) string {
	if cargo {
		return "kg de cargas"
	}
	return "passageiros"
}

func subject(cargo bool) string {
	if cargo {
		return "cargas"
	}
	return "passageiros"
}

func (r *Renderer) history(v ranking.Series) string {
	where := r.at(v.Airport)
	if where == "" {
		where = " no Brasil"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Movimento anual de %s%s:", subject(v.Cargo), where)
	for _, p := range v.Points {
		fmt.Fprintf(&b, "\n- %d: **%s** %s", p.Year, Number(p.Value), unit(v.Cargo))
	}
	return b.String()
}

func (r *Renderer) volume(v ranking.VolumeResult) string {
	q := v.Query

	who := "o Brasil"
	if q.Airport != "" {
		who = "o aeroporto de " + r.airport(q.Airport)
	}

	var b strings.Builder
	switch {
	case q.Month != nil && q.Year != nil:
		fmt.Fprintf(&b, "No mês de %s de %d, %s ", capitalize(MonthName(*q.Month)), *q.Year, who)
	case q.Year != nil:
		fmt.Fprintf(&b, "Em %d, %s ", *q.Year, who)
	default:
		b.WriteString(strings.ToUpper(who[:1]) + who[1:] + " ")
	}

	if q.Cargo {
		fmt.Fprintf(&b, "movimentou um total de **%s** kg de cargas", Number(v.Total))
	} else {
		verb := "movimentou"
		switch q.MovementType {
		case movement.Landing:
			verb = "recebeu"
		case movement.Departure:
			verb = "registrou"
		}
		fmt.Fprintf(&b, "%s um total de **%s** passageiros", verb, Number(v.Total))
	}

	switch q.MovementType {
	case movement.Landing:
		b.WriteString(" em pousos")
	case movement.Departure:
		b.WriteString(" em decolagens")
	}
	switch q.Nature {
	case movement.Domestic:
		b.WriteString(" em voos domésticos")
	case movement.International:
		b.WriteString(" em voos internacionais")
	}
	b.WriteString(".")
	return b.String()
}

var trendLabels = map[ranking.Trend]string{
	ranking.TrendStrongGrowth:   "crescimento forte",
	ranking.TrendModerateGrowth: "crescimento moderado",
	ranking.TrendDecline:        "queda",
}

func (r *Renderer) trends(v ranking.TrendReport) string {
	s := v.Series
	where := r.at(s.Airport)
	if len(s.Points) == 0 {
		return GenericNotFound()
	}
	first, last := s.Points[0], s.Points[len(s.Points)-1]
	if len(s.Points) == 1 {
		return fmt.Sprintf("Há dados de apenas um ano para %s%s (%d, com **%s** %s); não é possível calcular tendências.",
			subject(s.Cargo), where, last.Year, Number(last.Value), unit(s.Cargo))
	}
	if len(v.Growth) == 0 {
		return fmt.Sprintf("Entre %d e %d, não houve movimento de %s%s suficiente para calcular tendências.",
			first.Year, last.Year, subject(s.Cargo), where)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Entre %d e %d, o movimento de %s%s teve variação média de **%s** ao ano, com volatilidade de %s.",
		first.Year, last.Year, subject(s.Cargo), where, Percent(v.AverageGrowth), Percent(v.Volatility))
	fmt.Fprintf(&b, " Tendência geral: %s. Tendência recente: %s.", trendLabels[v.Direction], trendLabels[v.RecentTrend])
	fmt.Fprintf(&b, " Variação acumulada: **%s**. Melhor ano: %d. Pior ano: %d.", Percent(v.TotalGrowth), v.BestYear, v.WorstYear)
	if v.SharpDrop {
		b.WriteString(" Houve queda de mais de 50% em pelo menos um ano.")
	}
	if v.Recovery {
		b.WriteString(" O último ano mostra recuperação, com crescimento acima de 10%.")
	}
	if len(v.Anomalies) > 0 {
		parts := make([]string, 0, len(v.Anomalies))
		for _, a := range v.Anomalies {
			side := "abaixo"
			if a.High {
				side = "acima"
			}
			parts = append(parts, fmt.Sprintf("%d (%s da média)", a.Year, side))
		}
		fmt.Fprintf(&b, " Anos atípicos: %s.", strings.Join(parts, ", "))
	}
	return b.String()
}

func (r *Renderer) insights(v ranking.InsightReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Destaques de %d:", v.Year)
	if v.Busiest != nil {
		fmt.Fprintf(&b, "\n- Aeroporto mais movimentado: **%s**, com **%s** passageiros.",
			r.airport(v.Busiest.Airport), Number(v.Busiest.Value))
	}
	if v.TopOperator != nil {
		fmt.Fprintf(&b, "\n- Companhia aérea líder: **%s**, com **%s** passageiros.",
			r.operator(v.TopOperator.Operator), Number(v.TopOperator.Value))
	}
	if v.TopAirports != nil && len(v.TopAirports.Airports) > 0 {
		names := make([]string, 0, len(v.TopAirports.Airports))
		for _, a := range v.TopAirports.Airports {
			names = append(names, r.airport(a.Airport))
		}
		fmt.Fprintf(&b, "\n- Maiores aeroportos: %s.", strings.Join(names, ", "))
	}
	if o := v.Observations; o != nil {
		fmt.Fprintf(&b, "\n- Concentração: a líder detém %s dos passageiros e as três maiores somam %s; %d companhias com menos de 5%% cada.",
			Percent(o.LeaderShare), Percent(o.Top3Share), o.SmallOperators)
	}
	return b.String()
}
