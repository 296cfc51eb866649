// Package ledger implements the household expense operations: membership,
// expense creation with share splitting, and the derived balance and monthly
// reports. All persistence goes through a storage.Store passed in at
// construction; every read recomputes from stored records.
package ledger

import (
	"context"
	"errors"
	"log/slog"

	"github.com/mmynk/households/internal/events"
	"github.com/mmynk/households/internal/storage"
)

var (
	// ErrNotAMember is returned when the caller must belong to the household but does not.
	ErrNotAMember = errors.New("not a member of this household")

	// ErrValidation is returned when an input field is missing or malformed.
	ErrValidation = errors.New("validation failed")
)

// Actor is the authenticated caller of an operation, as asserted by the
// identity provider.
type Actor struct {
	UserID      string
	Email       string
	DisplayName string
}

// Config holds optional ledger behavior.
type Config struct {
	// StrictCustomShares rejects custom shares that do not sum to the expense
	// amount or that name users outside the household.
	StrictCustomShares bool

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// Ledger runs household operations against a Store.
type Ledger struct {
	store     storage.Store
	publisher events.Publisher
	strict    bool
	logger    *slog.Logger
}

// New creates a Ledger. A nil publisher drops events.
func New(store storage.Store, publisher events.Publisher, cfg Config) *Ledger {
	if publisher == nil {
		publisher = events.Nop{}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Ledger{
		store:     store,
		publisher: publisher,
		strict:    cfg.StrictCustomShares,
		logger:    logger,
	}
}

// publish delivers an event after its write has committed. The write stands
// whether or not delivery succeeds.
func (l *Ledger) publish(ctx context.Context, event events.Event) {
	if err := l.publisher.Publish(ctx, event); err != nil {
		l.logger.WarnContext(ctx, "Event publish failed",
			"type", event.Type,
			"household_id", event.HouseholdID,
			"error", err,
		)
	}
}

// requireHousehold returns storage.ErrNotFound (wrapped) when the household is absent.
func (l *Ledger) requireHousehold(ctx context.Context, householdID string) error {
	_, err := l.store.GetHousehold(ctx, householdID)
	return err
}
