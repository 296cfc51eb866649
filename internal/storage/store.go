// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/households/internal/models"
)

// ErrNotFound is returned when a referenced household or user does not exist.
var ErrNotFound = errors.New("not found")

// ShareFunc derives the shares of a new expense from the household's member IDs,
// in enrollment order. The store calls it inside the transaction that writes the
// expense, so the member list it sees is the one the shares are committed with.
type ShareFunc func(memberIDs []string) ([]models.ExpenseShare, error)

// Store defines the interface for household ledger storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, MySQL)
// without changing the ledger layer.
type Store interface {
	// CreateHousehold persists a new household and enrolls its owner as the
	// first member in the same transaction. ID and CreatedAt are populated.
	CreateHousehold(ctx context.Context, household *models.Household) error

	// GetHousehold retrieves a household by ID.
	// Returns ErrNotFound if it does not exist.
	GetHousehold(ctx context.Context, householdID string) (*models.Household, error)

	// ListHouseholds returns all households in creation order.
	ListHouseholds(ctx context.Context) ([]*models.Household, error)

	// AddMember enrolls a user in a household. It reports whether a new row was
	// written; enrolling an existing member is a no-op that returns false.
	AddMember(ctx context.Context, householdID, userID string) (bool, error)

	// IsMember reports whether the user is enrolled in the household.
	IsMember(ctx context.Context, householdID, userID string) (bool, error)

	// ListMembers returns the household's members in enrollment order.
	ListMembers(ctx context.Context, householdID string) ([]models.Member, error)

	// ListHouseholdIDsForUser returns the IDs of the households the user belongs to.
	ListHouseholdIDsForUser(ctx context.Context, userID string) ([]string, error)

	// CreateExpense persists an expense together with the shares produced by
	// shareFn, atomically. ID and CreatedAt are populated on the expense and
	// ExpenseID on every returned share.
	CreateExpense(ctx context.Context, expense *models.Expense, shareFn ShareFunc) ([]models.ExpenseShare, error)

	// ListExpenses returns a household's expenses, newest date first.
	ListExpenses(ctx context.Context, householdID string) ([]models.Expense, error)

	// ListShares returns the shares of every expense in a household, grouped by
	// expense and in insertion order within an expense.
	ListShares(ctx context.Context, householdID string) ([]models.ExpenseShare, error)

	// UpsertUser records or refreshes a user's profile.
	UpsertUser(ctx context.Context, user *models.User) error

	// GetUser retrieves a user profile by ID.
	// Returns ErrNotFound if the identity has no recorded profile.
	GetUser(ctx context.Context, userID string) (*models.User, error)

	// Close releases any resources held by the store.
	Close() error
}
