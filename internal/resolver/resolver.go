// Package resolver maps free-form airport and operator references to
// canonical codes and back.
package resolver

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// alias is one common-name → airport code pair.
type alias struct {
	name string
	code string
}

// nationwide lists the names that mean "all of Brazil" rather than an airport.
var nationwide = map[string]bool{
	"brasil": true,
	"brazil": true,
}

// Resolver translates between typed airport/operator references and
// canonical codes. Every method is total: it always returns a usable string.
//
// The lookup tables are built once in New and never mutated, so a Resolver
// is safe for concurrent use.
type Resolver struct {
	byName   map[string]string
	byFolded map[string]string
	codes    map[string]bool
	aliases  []alias
	ops      map[string]string
}

// New builds a Resolver over the built-in airport and operator tables.
func New() *Resolver {
	r := &Resolver{
		byName:   make(map[string]string, len(airportAliases)),
		byFolded: make(map[string]string, len(airportAliases)),
		codes:    make(map[string]bool, len(airportAliases)),
		aliases:  airportAliases,
		ops:      operatorNames,
	}
	for _, a := range airportAliases {
		r.byName[a.name] = a.code
		r.codes[a.code] = true

		// First declaration wins when two names fold to the same key.
		folded := fold(a.name)
		if _, ok := r.byFolded[folded]; !ok {
			r.byFolded[folded] = a.code
		}
	}
	return r
}

// ResolveAirport returns the code for a typed airport reference.
//
// Input is trimmed and lowercased, then matched against the alias table,
// first exactly and then with accents removed ("sao paulo" → SBSP). Anything
// else is returned uppercased, on the assumption it is already a code.
func (r *Resolver) ResolveAirport(text string) string {
	key := strings.ToLower(strings.TrimSpace(text))
	if key == "" {
		return ""
	}
	if code, ok := r.byName[key]; ok {
		return code
	}
	if code, ok := r.byFolded[fold(key)]; ok {
		return code
	}
	return strings.ToUpper(key)
}

// DisplayNameForAirport returns a human name for an airport code: the first
// alias declared for it, title-cased, or the code itself title-cased.
func (r *Resolver) DisplayNameForAirport(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	for _, a := range r.aliases {
		if a.code == code {
			return title(a.name)
		}
	}
	return title(code)
}

// DisplayNameForOperator returns the operator's display name, or the raw
// code when it is not in the table.
func (r *Resolver) DisplayNameForOperator(code string) string {
	if name, ok := r.ops[strings.ToUpper(strings.TrimSpace(code))]; ok {
		return name
	}
	return code
}

// IsKnownAirport reports whether code appears in the airport table.
func (r *Resolver) IsKnownAirport(code string) bool {
	return r.codes[strings.ToUpper(strings.TrimSpace(code))]
}

// IsNationwide reports whether text means the whole country, i.e. no
// airport filter. Accepts names as well as their uppercased forms.
func (r *Resolver) IsNationwide(text string) bool {
	return nationwide[strings.ToLower(strings.TrimSpace(text))]
}

// fold strips diacritics: "são luís" → "sao luis".
// Transformers keep state, so one is built per call.
func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// title capitalizes every word in pt-BR rules: "foz do iguaçu" → "Foz Do Iguaçu".
func title(s string) string {
	return cases.Title(language.BrazilianPortuguese).String(s)
}
