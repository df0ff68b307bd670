package harness

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/airq/internal/compiler"
)

func TestRun_Testdata(t *testing.T) {
	scenarios, err := LoadScenarios("testdata/scenarios")
	require.NoError(t, err)

	for _, s := range scenarios {
		t.Run(s.Name, func(t *testing.T) {
			result, err := Run(t, s)
			require.NoError(t, err)
			assert.True(t, result.Pass, "errors: %v", result.Errors)
			assert.Len(t, result.Transcript, len(s.Turns))
		})
	}
}

func TestRun_ExpectMismatch(t *testing.T) {
	s := &Scenario{
		Name: "mismatch",
		Data: []Record{{Airport: "SBRF", Year: 2023, Month: 1, Operator: "AZU", Passengers: 100}},
		Turns: []Turn{{
			Question: "Quantos passageiros em Recife?",
			Parsed:   map[string]any{"aeroporto": "Recife", "ano": 2023},
			Expect: &Expect{
				Kind:     "not_found",
				Shape:    "history",
				Contains: []string{"Guarulhos"},
				Text:     "outra coisa",
			},
		}},
	}

	result, err := Run(t, s)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 4)
	assert.Contains(t, result.Errors[0], "kind: expected not_found, got answer")
	assert.Contains(t, result.Errors[1], "shape: expected history")
	assert.Contains(t, result.Errors[2], `does not contain "Guarulhos"`)
	assert.Contains(t, result.Errors[3], "text: expected")
}

func TestRun_AssertionFailure(t *testing.T) {
	s := &Scenario{
		Name:       "assertion",
		NoParser:   true,
		Turns:      []Turn{{Question: "q"}},
		Assertions: []Assertion{{Type: AssertHistoryCount, Count: 3}},
	}

	result, err := Run(t, s)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "3 recorded turns")
	assert.Contains(t, result.Errors[0], "1 recorded turns")
}

func TestRun_RequestIDsAreFixed(t *testing.T) {
	s := &Scenario{Name: "ids", NoParser: true, Turns: []Turn{{Question: "a"}, {Question: "b"}}}

	result, err := Run(t, s)
	require.NoError(t, err)
	for _, turn := range result.Transcript {
		assert.Equal(t, "scenario-ids", turn.RequestID)
	}
}

func TestScriptedParser(t *testing.T) {
	p := &scriptedParser{}
	p.push([]byte(`{"aeroporto": "Recife", "ano": "2023"}`))
	p.push(nil)
	p.push([]byte(`{"irrelevante": 1}`))
	ctx := context.Background()

	intent, err := p.Parse(ctx, "q1")
	require.NoError(t, err)
	assert.Equal(t, "Recife", intent.Airport)
	require.NotNil(t, intent.Year)
	assert.Equal(t, 2023, *intent.Year)

	for _, q := range []string{"q2", "q3", "q4"} {
		intent, err = p.Parse(ctx, q)
		require.NoError(t, err)
		assert.Equal(t, compiler.Intent{}, intent, q)
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = p.Parse(cancelled, "q5")
	assert.ErrorIs(t, err, context.Canceled)
}
