package viewmodel

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexIDAcceptsNumbersAndStrings(t *testing.T) {
	var record struct {
		ID FlexID `json:"id"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"id": 42}`), &record))
	assert.Equal(t, "42", record.ID.String())

	require.NoError(t, json.Unmarshal([]byte(`{"id": "66f1a2"}`), &record))
	assert.Equal(t, "66f1a2", record.ID.String())

	require.NoError(t, json.Unmarshal([]byte(`{"id": null}`), &record))
	assert.Empty(t, record.ID.String())
}

func TestCoalesceNeverReturnsBlank(t *testing.T) {
	assert.Equal(t, "Asha Patel", Coalesce("", "Asha Patel", "fallback"))
	assert.Equal(t, NA, Coalesce("", "  ", ""))
	assert.Equal(t, NA, Coalesce())
}

func TestStatusLabel(t *testing.T) {
	assert.Equal(t, "Pending", StatusLabel("pending"))
	assert.Equal(t, "Converted", StatusLabel("CONVERTED"))
	assert.Equal(t, "Pending", StatusLabel(""))
	assert.Equal(t, "Pending", StatusLabel("  "))
}

func TestFullName(t *testing.T) {
	assert.Equal(t, "Asha Patel", FullName("Asha", "Patel"))
	assert.Equal(t, "Asha", FullName("Asha", ""))
	assert.Equal(t, "", FullName(" ", " "))
}
