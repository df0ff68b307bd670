package answer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/roach88/airq/internal/compiler"
	"github.com/roach88/airq/internal/movement"
)

const (
	feedbackNotUnderstood = "Não consegui extrair informações relevantes da sua pergunta."
	feedbackAirport       = "Não identifiquei o aeroporto. Poderia especificar o nome ou código ICAO?"
	feedbackYear          = "Não identifiquei o ano. Poderia especificar o ano da movimentação?"
)

// Clarify asks the user to rephrase after a compilation error. The text
// lists each missing parameter, or names the unrecognized airport.
func (r *Renderer) Clarify(err error) string {
	var lines []string

	var ce *compiler.Error
	switch {
	case errors.As(err, &ce) && ce.Code == compiler.ErrUnrecognizedAirport:
		lines = append(lines, fmt.Sprintf("Não reconheci o aeroporto **%s**. Poderia especificar o nome ou código ICAO?",
			r.airport(ce.Value)))
	default:
		for _, field := range compiler.MissingFields(err) {
			switch field {
			case compiler.FieldAirport:
				lines = append(lines, feedbackAirport)
			case compiler.FieldYear:
				lines = append(lines, feedbackYear)
			}
		}
	}
	if len(lines) == 0 {
		lines = append(lines, feedbackNotUnderstood)
	}
	return fmt.Sprintf("Desculpe. %s Por favor, tente novamente de forma mais clara.", strings.Join(lines, " "))
}

// NotFound explains that a valid query matched no data, echoing the
// criteria that were applied.
func (r *Renderer) NotFound(plan compiler.Plan) string {
	switch plan.Shape {
	case compiler.ShapeBusiestAirport:
		return fmt.Sprintf("Não foi possível determinar o aeroporto mais movimentado. Verifique os dados para o ano %s.", yearOrAvailable(plan.Year))
	case compiler.ShapeMostInternational:
		return fmt.Sprintf("Não foi possível determinar o aeroporto com mais voos internacionais. Verifique os dados para o ano %s.", yearOrAvailable(plan.Year))
	}

	criteria := r.criteria(plan)
	if len(criteria) == 0 {
		return GenericNotFound()
	}
	return fmt.Sprintf("Não foram encontrados dados com os critérios especificados. Para os critérios %s: "+
		"Verifique se os dados existem para esta combinação ou tente critérios de pesquisa mais amplos.",
		strings.Join(criteria, ", "))
}

func (r *Renderer) criteria(plan compiler.Plan) []string {
	var out []string
	if plan.Airport != "" {
		out = append(out, "aeroporto: "+r.airport(plan.Airport))
	}
	if plan.Year != nil {
		out = append(out, fmt.Sprintf("ano: %d", *plan.Year))
	}
	if plan.Month != nil {
		out = append(out, "mês: "+capitalize(MonthName(*plan.Month)))
	}
	switch plan.MovementType {
	case movement.Landing:
		out = append(out, "tipo de movimento: Pouso")
	case movement.Departure:
		out = append(out, "tipo de movimento: Decolagem")
	}
	switch plan.Nature {
	case movement.Domestic:
		out = append(out, "natureza: Doméstico")
	case movement.International:
		out = append(out, "natureza: Internacional")
	}
	if plan.Shape == compiler.ShapeVolume || plan.Shape == compiler.ShapeHistory {
		out = append(out, "para "+subject(plan.Cargo))
	}
	return out
}

func yearOrAvailable(year *int) string {
	if year == nil {
		return "disponível"
	}
	return fmt.Sprintf("%d", *year)
}

// GenericNotFound is the not-found text when no criteria can be echoed.
func GenericNotFound() string {
	return "Não foram encontrados dados com os critérios especificados. Por favor, tente uma pergunta diferente ou especifique mais detalhes."
}

// DataUnavailable is shown when no movement data can be read at all.
func DataUnavailable() string {
	return "Desculpe. Os dados de movimentação aeroportuária não estão disponíveis no momento. Por favor, tente novamente mais tarde."
}

// Unavailable is shown when questions cannot be interpreted because the
// language service is not configured.
func Unavailable() string {
	return "Desculpe. O serviço de interpretação de perguntas não está disponível no momento. Use consultas estruturadas ou tente novamente mais tarde."
}

// Failure is shown for internal errors.
func Failure() string {
	return "Desculpe. Ocorreu um erro ao processar sua pergunta. Por favor, tente novamente mais tarde."
}
