package compiler

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_Format(t *testing.T) {
	err := &Error{Code: ErrMissingYear, Field: FieldYear, Message: "year required"}
	assert.Equal(t, "[E203] year: year required", err.Error())
}

func TestErrorHelpers_Wrapped(t *testing.T) {
	wrapped := fmt.Errorf("compile: %w", &Error{Code: ErrUnrecognizedAirport, Field: FieldAirport})

	assert.True(t, IsUnrecognizedAirport(wrapped))
	assert.False(t, IsIntentNotUnderstood(wrapped))
	assert.Nil(t, MissingFields(wrapped))

	plain := errors.New("boom")
	assert.False(t, IsUnrecognizedAirport(plain))
	assert.False(t, IsIntentNotUnderstood(plain))
	assert.Nil(t, MissingFields(plain))
}

func TestIntent_HasRanking(t *testing.T) {
	assert.False(t, Intent{Airport: "SBRF", Cargo: true}.HasRanking())
	assert.True(t, Intent{History: true}.HasRanking())
	assert.True(t, Intent{MostDelayedOperator: true}.HasRanking())
}
