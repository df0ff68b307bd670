package nlu

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/roach88/airq/internal/compiler"
)

// Keys of the parameter record the model returns.
const (
	keyAirport      = "aeroporto"
	keyYear         = "ano"
	keyMonth        = "mes"
	keyMovementType = "tipo_movimento"
	keyNature       = "natureza"

	keyCargo                 = "intencao_carga"
	keyBusiestAirport        = "intencao_mais_movimentado"
	keyMostInternational     = "intencao_mais_voos_internacionais"
	keyTopOperatorPassengers = "intencao_maior_operador_pax"
	keyTopOperatorCargo      = "intencao_maior_operador_carga"
	keyTopDestination        = "intencao_principal_destino"
	keyMostDelayedOperator   = "intencao_maiores_atrasos"
	keyMarketShare           = "intencao_market_share"
	keyHistory               = "intencao_historico_movimentacao"
)

var knownKeys = map[string]bool{
	keyAirport: true, keyYear: true, keyMonth: true, keyMovementType: true, keyNature: true,
	keyCargo: true, keyBusiestAirport: true, keyMostInternational: true,
	keyTopOperatorPassengers: true, keyTopOperatorCargo: true, keyTopDestination: true,
	keyMostDelayedOperator: true, keyMarketShare: true, keyHistory: true,
}

var errNoParameters = errors.New("no known parameters in response")

// Decode normalizes a raw parameter record into an Intent.
//
// "null" strings count as null, flags that are not booleans are false,
// numbers given as strings are accepted and unknown keys are ignored. A
// record without any known key is an error.
func Decode(raw []byte) (compiler.Intent, error) {
	var params map[string]any
	if err := json.Unmarshal(raw, &params); err != nil {
		return compiler.Intent{}, fmt.Errorf("decode parameters: %w", err)
	}

	found := false
	for k, v := range params {
		if !knownKeys[k] {
			delete(params, k)
			continue
		}
		found = true
		if s, ok := v.(string); ok && strings.EqualFold(strings.TrimSpace(s), "null") {
			params[k] = nil
		}
	}
	if !found {
		return compiler.Intent{}, errNoParameters
	}

	return compiler.Intent{
		Airport:      text(params[keyAirport]),
		Year:         integer(params[keyYear]),
		Month:        integer(params[keyMonth]),
		MovementType: strings.ToUpper(text(params[keyMovementType])),
		Nature:       strings.ToUpper(text(params[keyNature])),

		Cargo:                 flag(params[keyCargo]),
		BusiestAirport:        flag(params[keyBusiestAirport]),
		MostInternational:     flag(params[keyMostInternational]),
		TopOperatorPassengers: flag(params[keyTopOperatorPassengers]),
		TopOperatorCargo:      flag(params[keyTopOperatorCargo]),
		TopDestination:        flag(params[keyTopDestination]),
		MostDelayedOperator:   flag(params[keyMostDelayedOperator]),
		MarketShare:           flag(params[keyMarketShare]),
		History:               flag(params[keyHistory]),
	}, nil
}

func text(v any) string {
	s, _ := v.(string)
	return strings.TrimSpace(s)
}

func flag(v any) bool {
	b, _ := v.(bool)
	return b
}

// integer accepts whole JSON numbers and decimal strings.
func integer(v any) *int {
	var n int
	switch x := v.(type) {
	case float64:
		if x != math.Trunc(x) || math.IsInf(x, 0) {
			return nil
		}
		n = int(x)
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(x))
		if err != nil {
			return nil
		}
		n = i
	default:
		return nil
	}
	return &n
}
