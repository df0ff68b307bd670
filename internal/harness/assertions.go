package harness

import (
	"context"
	"fmt"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/roach88/airq/internal/history"
)

// queriesMetric is the counter checked by metric_count.
const queriesMetric = "airq_queries_total"

// AssertionError is returned when an assertion fails.
// It includes the transcript to help debug the failure.
type AssertionError struct {
	Type       string
	Expected   string
	Actual     string
	Transcript []TurnRecord
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	fmt.Fprintf(&buf, "\nTranscript:\n")
	for i, turn := range e.Transcript {
		fmt.Fprintf(&buf, "  [%d] %s -> %s\n", i+1, turn.Question, turn.Kind)
	}

	return buf.String()
}

// AssertionContext provides the state that assertions inspect.
type AssertionContext struct {
	Ctx      context.Context
	History  *history.Store
	Registry prometheus.Gatherer
}

// EvaluateAssertions runs all assertions and returns the failure messages.
func EvaluateAssertions(result *Result, assertions []Assertion, actx *AssertionContext) []string {
	var errs []string
	for i, a := range assertions {
		if err := evaluate(result, a, actx); err != nil {
			errs = append(errs, fmt.Sprintf("assertion %d (%s): %s", i, a.Type, err.Error()))
		}
	}
	return errs
}

func evaluate(result *Result, a Assertion, actx *AssertionContext) error {
	switch a.Type {
	case AssertHistoryCount:
		return assertHistoryCount(result, a, actx)
	case AssertKindCount:
		return assertKindCount(result, a)
	case AssertMetricCount:
		return assertMetricCount(result, a, actx)
	default:
		return fmt.Errorf("unknown assertion type: %s", a.Type)
	}
}

func assertHistoryCount(result *Result, a Assertion, actx *AssertionContext) error {
	if actx == nil || actx.History == nil {
		return fmt.Errorf("history_count requires a conversation log")
	}
	turns, err := actx.History.List(actx.Ctx, 0)
	if err != nil {
		return fmt.Errorf("failed to list history: %w", err)
	}
	if len(turns) != a.Count {
		return &AssertionError{
			Type:       AssertHistoryCount,
			Expected:   fmt.Sprintf("%d recorded turns", a.Count),
			Actual:     fmt.Sprintf("%d recorded turns", len(turns)),
			Transcript: result.Transcript,
		}
	}
	return nil
}

func assertKindCount(result *Result, a Assertion) error {
	n := 0
	for _, turn := range result.Transcript {
		if turn.Kind == a.Kind {
			n++
		}
	}
	if n != a.Count {
		return &AssertionError{
			Type:       AssertKindCount,
			Expected:   fmt.Sprintf("%d %s replies", a.Count, a.Kind),
			Actual:     fmt.Sprintf("%d %s replies", n, a.Kind),
			Transcript: result.Transcript,
		}
	}
	return nil
}

func assertMetricCount(result *Result, a Assertion, actx *AssertionContext) error {
	if actx == nil || actx.Registry == nil {
		return fmt.Errorf("metric_count requires a registry")
	}
	got, err := counterValue(actx.Registry, queriesMetric, map[string]string{
		"shape":   a.Shape,
		"outcome": a.Outcome,
	})
	if err != nil {
		return err
	}
	if int(got) != a.Count {
		return &AssertionError{
			Type:       AssertMetricCount,
			Expected:   fmt.Sprintf("%s{shape=%q,outcome=%q} = %d", queriesMetric, a.Shape, a.Outcome, a.Count),
			Actual:     fmt.Sprintf("%g", got),
			Transcript: result.Transcript,
		}
	}
	return nil
}

// counterValue returns the counter with exactly the given labels, or 0
// when it has never been incremented.
func counterValue(g prometheus.Gatherer, name string, labels map[string]string) (float64, error) {
	families, err := g.Gather()
	if err != nil {
		return 0, fmt.Errorf("failed to gather metrics: %w", err)
	}
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			if labelsMatch(m.GetLabel(), labels) {
				return m.GetCounter().GetValue(), nil
			}
		}
	}
	return 0, nil
}

func labelsMatch(pairs []*dto.LabelPair, want map[string]string) bool {
	if len(pairs) != len(want) {
		return false
	}
	for _, p := range pairs {
		if want[p.GetName()] != p.GetValue() {
			return false
		}
	}
	return true
}
