package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/roach88/airq/internal/chat"
	"github.com/roach88/airq/internal/movement"
)

// Scenario defines a scripted conversation.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Data is written as the only movement partition. An empty list
	// leaves the data directory empty.
	Data []Record `yaml:"data,omitempty"`

	// NoParser runs the conversation without a question parser.
	NoParser bool `yaml:"no_parser,omitempty"`

	// Turns are played in order.
	Turns []Turn `yaml:"turns"`

	// Assertions validate the state after every turn has been played.
	Assertions []Assertion `yaml:"assertions,omitempty"`
}

// Record is a movement row in scenario form. Movement type defaults to
// landing and nature to domestic.
type Record struct {
	Airport      string `yaml:"airport"`
	OtherAirport string `yaml:"other_airport,omitempty"`
	Year         int64  `yaml:"year"`
	Month        int64  `yaml:"month"`
	MovementType string `yaml:"movement_type,omitempty"`
	Nature       string `yaml:"nature,omitempty"`
	Operator     string `yaml:"operator"`
	Passengers   int64  `yaml:"passengers,omitempty"`
	DomesticConn int64  `yaml:"domestic_connections,omitempty"`
	IntlConn     int64  `yaml:"international_connections,omitempty"`
	CargoKg      int64  `yaml:"cargo,omitempty"`
	Scheduled    int64  `yaml:"scheduled,omitempty"`
	Actual       int64  `yaml:"actual,omitempty"`
}

// Movement converts r to a partition row.
func (r Record) Movement() movement.Record {
	mt := r.MovementType
	if mt == "" {
		mt = string(movement.Landing)
	}
	nature := r.Nature
	if nature == "" {
		nature = string(movement.Domestic)
	}
	return movement.Record{
		Year:                   r.Year,
		Month:                  r.Month,
		ReferenceAirport:       r.Airport,
		OtherAirport:           r.OtherAirport,
		MovementType:           mt,
		Nature:                 nature,
		Operator:               r.Operator,
		LocalPassengers:        r.Passengers,
		DomesticConnPassengers: r.DomesticConn,
		IntlConnPassengers:     r.IntlConn,
		CargoKg:                r.CargoKg,
		ScheduledMinutes:       r.Scheduled,
		ActualMinutes:          r.Actual,
	}
}

// Turn is one question and the parameter record the model returns for it.
type Turn struct {
	Question string `yaml:"question"`

	// Parsed uses the model's Portuguese keys (aeroporto, ano, ...).
	// Nil means the model returned nothing usable.
	Parsed map[string]any `yaml:"parsed,omitempty"`

	// Expect is checked against the reply. Nil skips validation.
	Expect *Expect `yaml:"expect,omitempty"`
}

// Expect specifies the expected reply.
type Expect struct {
	Kind string `yaml:"kind"`

	// Shape is compared only when set.
	Shape string `yaml:"shape,omitempty"`

	// Contains lists substrings the reply text must include.
	Contains []string `yaml:"contains,omitempty"`

	// Text, when set, must equal the reply text exactly.
	Text string `yaml:"text,omitempty"`
}

// Assertion validates the state after the conversation.
type Assertion struct {
	// Type is one of the Assert* constants.
	Type string `yaml:"type"`

	// Kind is the reply kind (kind_count).
	Kind string `yaml:"kind,omitempty"`

	// Shape and Outcome select the counter (metric_count).
	Shape   string `yaml:"shape,omitempty"`
	Outcome string `yaml:"outcome,omitempty"`

	// Count is the expected number.
	Count int `yaml:"count"`
}

// Assertion type constants.
const (
	AssertHistoryCount = "history_count"
	AssertKindCount    = "kind_count"
	AssertMetricCount  = "metric_count"
)

var validKinds = map[string]bool{
	string(chat.KindAnswer):        true,
	string(chat.KindClarification): true,
	string(chat.KindNotFound):      true,
	string(chat.KindUnavailable):   true,
	string(chat.KindError):         true,
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// LoadScenarios loads every *.yaml file in dir, sorted by file name.
func LoadScenarios(dir string) ([]*Scenario, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)

	scenarios := make([]*Scenario, 0, len(paths))
	for _, p := range paths {
		s, err := LoadScenario(p)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filepath.Base(p), err)
		}
		scenarios = append(scenarios, s)
	}
	return scenarios, nil
}

func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if len(s.Turns) == 0 {
		return fmt.Errorf("at least one turn is required")
	}

	for i, r := range s.Data {
		if r.Airport == "" {
			return fmt.Errorf("data[%d]: airport is required", i)
		}
		if r.Year <= 0 || r.Month < 1 || r.Month > 12 {
			return fmt.Errorf("data[%d]: year and month 1-12 are required", i)
		}
	}

	for i, t := range s.Turns {
		if t.Question == "" {
			return fmt.Errorf("turns[%d]: question is required", i)
		}
		if t.Expect != nil && !validKinds[t.Expect.Kind] {
			return fmt.Errorf("turns[%d]: unknown reply kind %q", i, t.Expect.Kind)
		}
	}

	for i, a := range s.Assertions {
		if err := validateAssertion(a, i); err != nil {
			return err
		}
	}
	return nil
}

func validateAssertion(a Assertion, index int) error {
	if a.Count < 0 {
		return fmt.Errorf("assertions[%d]: count must be non-negative", index)
	}

	switch a.Type {
	case AssertHistoryCount:
	case AssertKindCount:
		if !validKinds[a.Kind] {
			return fmt.Errorf("assertions[%d]: unknown reply kind %q for kind_count", index, a.Kind)
		}
	case AssertMetricCount:
		if a.Shape == "" || a.Outcome == "" {
			return fmt.Errorf("assertions[%d]: shape and outcome are required for metric_count", index)
		}
	case "":
		return fmt.Errorf("assertions[%d]: type is required", index)
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}
	return nil
}
