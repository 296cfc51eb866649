package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/households/internal/models"
	"github.com/mmynk/households/internal/storage"
)

// CreateExpense persists an expense and its shares in one transaction.
//
// The household row is locked first, then the member list is read and handed
// to shareFn. A member joining concurrently either commits before the lock is
// taken (and is included) or waits until the expense is committed.
func (s *Store) CreateExpense(ctx context.Context, expense *models.Expense, shareFn storage.ShareFunc) ([]models.ExpenseShare, error) {
	// Generate ID if not set
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt == 0 {
		expense.CreatedAt = time.Now().Unix()
	}
	expense.Date = expense.Date.Truncate(time.Second).UTC()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var id string
	err = tx.QueryRowContext(ctx, s.q(s.dialect.lockHousehold()), expense.HouseholdID).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("household %s: %w", expense.HouseholdID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock household: %w", err)
	}

	memberIDs, err := s.memberIDs(ctx, tx, expense.HouseholdID)
	if err != nil {
		return nil, err
	}

	shares, err := shareFn(memberIDs)
	if err != nil {
		return nil, err
	}

	_, err = tx.ExecContext(ctx,
		s.q(`INSERT INTO expenses (id, household_id, amount, spent_at, description, paid_by_user_id, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`),
		expense.ID, expense.HouseholdID, expense.Amount, expense.Date.Unix(),
		expense.Description, expense.PaidByUserID, expense.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert expense: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, s.q("INSERT INTO expense_shares (expense_id, user_id, amount) VALUES (?, ?, ?)"))
	if err != nil {
		return nil, fmt.Errorf("failed to prepare share insert: %w", err)
	}
	defer stmt.Close()

	for i := range shares {
		shares[i].ExpenseID = expense.ID
		if _, err := stmt.ExecContext(ctx, expense.ID, shares[i].UserID, shares[i].Amount); err != nil {
			return nil, fmt.Errorf("failed to insert share for %s: %w", shares[i].UserID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return shares, nil
}

// memberIDs reads the household's member IDs in enrollment order within tx.
func (s *Store) memberIDs(ctx context.Context, tx *sql.Tx, householdID string) ([]string, error) {
	rows, err := tx.QueryContext(ctx,
		s.q("SELECT user_id FROM household_members WHERE household_id = ? ORDER BY id"),
		householdID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get members: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate members: %w", err)
	}

	return ids, nil
}

// ListExpenses returns a household's expenses, newest date first.
func (s *Store) ListExpenses(ctx context.Context, householdID string) ([]models.Expense, error) {
	rows, err := s.db.QueryContext(ctx,
		s.q(`SELECT id, household_id, amount, spent_at, description, paid_by_user_id, created_at
		 FROM expenses WHERE household_id = ? ORDER BY spent_at DESC, created_at DESC, id`),
		householdID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses by household: %w", err)
	}
	defer rows.Close()

	var expenses []models.Expense
	for rows.Next() {
		var (
			e       models.Expense
			spentAt int64
		)
		if err := rows.Scan(&e.ID, &e.HouseholdID, &e.Amount, &spentAt,
			&e.Description, &e.PaidByUserID, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		e.Date = time.Unix(spentAt, 0).UTC()
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}

	return expenses, nil
}

// ListShares returns the shares of every expense in a household.
func (s *Store) ListShares(ctx context.Context, householdID string) ([]models.ExpenseShare, error) {
	rows, err := s.db.QueryContext(ctx,
		s.q(`SELECT s.expense_id, s.user_id, s.amount
		 FROM expense_shares s JOIN expenses e ON e.id = s.expense_id
		 WHERE e.household_id = ? ORDER BY s.id`),
		householdID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list shares by household: %w", err)
	}
	defer rows.Close()

	var shares []models.ExpenseShare
	for rows.Next() {
		var sh models.ExpenseShare
		if err := rows.Scan(&sh.ExpenseID, &sh.UserID, &sh.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan share: %w", err)
		}
		shares = append(shares, sh)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate shares: %w", err)
	}

	return shares, nil
}
