package events

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewExpenseCreated(t *testing.T) {
	e := NewExpenseCreated("h1", "alice", "e1", decimal.RequireFromString("10.00"))

	assert.Equal(t, TypeExpenseCreated, e.Type)
	assert.False(t, e.OccurredAt.IsZero())

	body, err := e.ToJSON()
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(body, &decoded))
	assert.Equal(t, "expense.created", decoded["type"])
	assert.Equal(t, "h1", decoded["household_id"])
	assert.Equal(t, "e1", decoded["expense_id"])
	// decimal encodes as a string to keep precision
	assert.Equal(t, "10", decoded["amount"])
}

func TestNewHouseholdJoined_OmitsExpenseFields(t *testing.T) {
	body, err := NewHouseholdJoined("h1", "bob").ToJSON()
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(body, &decoded))
	assert.Equal(t, "household.joined", decoded["type"])
	assert.NotContains(t, decoded, "expense_id")
	assert.NotContains(t, decoded, "amount")
}

func TestNop(t *testing.T) {
	var p Publisher = Nop{}
	assert.NoError(t, p.Publish(context.Background(), NewHouseholdJoined("h", "u")))
	assert.NoError(t, p.Close())
}
