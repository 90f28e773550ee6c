package jsonschemer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goccy/go-json"
)

func TestRatExactDivision(t *testing.T) {
	value := NewRat("8.61")
	require.NotNil(t, value)
	assert.True(t, value.IsMultipleOf(NewRat("0.01")))
	assert.False(t, value.IsMultipleOf(NewRat("0.02")))
	assert.False(t, value.IsMultipleOf(NewRat(0)))
}

func TestRatFormatting(t *testing.T) {
	assert.Equal(t, "5", FormatRat(NewRat(int64(5))))
	assert.Equal(t, "0.1", FormatRat(NewRat("0.1")))
	assert.Equal(t, "null", FormatRat(nil))
}

func TestRatJSONRoundTrip(t *testing.T) {
	var r Rat
	require.NoError(t, json.Unmarshal([]byte("2.5"), &r))

	data, err := json.Marshal(&r)
	require.NoError(t, err)
	assert.Equal(t, "2.5", string(data))
}

func TestNewRatRejectsUnsupported(t *testing.T) {
	assert.Nil(t, NewRat([]string{"no"}))
	assert.Nil(t, NewRat("not-a-number"))
}
