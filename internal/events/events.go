// Package events publishes household ledger events to a message broker.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Event types, used as routing keys.
const (
	TypeExpenseCreated  = "expense.created"
	TypeHouseholdJoined = "household.joined"
)

// Event is a notification that something was committed to the ledger.
// Consumers fetch full details from the API; the event carries identifiers
// and the headline amount only.
type Event struct {
	Type        string           `json:"type"`
	HouseholdID string           `json:"household_id"`
	UserID      string           `json:"user_id"`
	ExpenseID   string           `json:"expense_id,omitempty"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	OccurredAt  time.Time        `json:"occurred_at"`
}

// NewExpenseCreated builds the event for a committed expense.
func NewExpenseCreated(householdID, actorID, expenseID string, amount decimal.Decimal) Event {
	return Event{
		Type:        TypeExpenseCreated,
		HouseholdID: householdID,
		UserID:      actorID,
		ExpenseID:   expenseID,
		Amount:      &amount,
		OccurredAt:  time.Now().UTC(),
	}
}

// NewHouseholdJoined builds the event for a first-time household enrollment.
func NewHouseholdJoined(householdID, userID string) Event {
	return Event{
		Type:        TypeHouseholdJoined,
		HouseholdID: householdID,
		UserID:      userID,
		OccurredAt:  time.Now().UTC(),
	}
}

// ToJSON converts the event to JSON bytes
func (e Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// Publisher delivers events. Implementations must be safe for concurrent use.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// Nop is a Publisher that drops every event. It is used when no broker is configured.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }
func (Nop) Close() error                         { return nil }
