package ledger

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/mmynk/households/internal/calculator"
	"github.com/mmynk/households/internal/events"
	"github.com/mmynk/households/internal/models"
)

// ShareInput is one caller-specified share of a custom split.
type ShareInput struct {
	UserID string `validate:"required"`
	Amount decimal.Decimal
}

// CreateExpenseInput describes a new expense.
type CreateExpenseInput struct {
	HouseholdID string          `validate:"required"`
	Amount      decimal.Decimal `validate:"positive_decimal"`
	Description string          `validate:"max=500"`

	// Date defaults to now (UTC) when zero.
	Date time.Time

	// PaidByUserID defaults to the actor when empty.
	PaidByUserID string

	// SplitEqually selects an equal split. With SplitEqually false, Shares are
	// used as given; if Shares is empty the expense is split equally anyway.
	SplitEqually bool
	Shares       []ShareInput `validate:"dive"`
}

// ShareDetail is a stored share with a resolved display name.
type ShareDetail struct {
	models.ExpenseShare
	DisplayName string
}

// ExpenseDetail is a stored expense with its shares and resolved names.
type ExpenseDetail struct {
	models.Expense
	PaidByName string
	Shares     []ShareDetail
}

// CreateExpense records an expense in a household the actor belongs to.
//
// The share basis (household member list) is read in the same transaction
// that writes the expense and its shares. A non-member actor gets
// ErrNotAMember and nothing is written.
func (l *Ledger) CreateExpense(ctx context.Context, actor Actor, in CreateExpenseInput) (*ExpenseDetail, error) {
	in.PaidByUserID = strings.TrimSpace(in.PaidByUserID)
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	if err := l.requireMember(ctx, in.HouseholdID, actor.UserID); err != nil {
		return nil, err
	}

	payerID := in.PaidByUserID
	if payerID == "" {
		payerID = actor.UserID
	}
	date := in.Date
	if date.IsZero() {
		date = time.Now().UTC()
	}

	mode := calculator.CustomSplit
	if in.SplitEqually {
		mode = calculator.EqualSplit
	} else if err := checkDistinctShareUsers(in.Shares); err != nil {
		return nil, err
	}
	explicit := make([]calculator.Share, len(in.Shares))
	for i, s := range in.Shares {
		explicit[i] = calculator.Share{UserID: s.UserID, Amount: s.Amount}
	}

	expense := &models.Expense{
		HouseholdID:  in.HouseholdID,
		Amount:       in.Amount,
		Date:         date,
		Description:  in.Description,
		PaidByUserID: payerID,
	}

	shares, err := l.store.CreateExpense(ctx, expense, func(memberIDs []string) ([]models.ExpenseShare, error) {
		computed, err := calculator.ComputeShares(in.Amount, memberIDs, mode, explicit)
		if err != nil {
			return nil, err
		}
		if l.strict && mode == calculator.CustomSplit && len(explicit) > 0 {
			if err := checkCustomShares(in.Amount, memberIDs, computed); err != nil {
				return nil, err
			}
		}

		shares := make([]models.ExpenseShare, len(computed))
		for i, s := range computed {
			shares[i] = models.ExpenseShare{UserID: s.UserID, Amount: s.Amount}
		}
		return shares, nil
	})
	if err != nil {
		return nil, fmt.Errorf("create expense: %w", err)
	}

	l.logger.InfoContext(ctx, "Expense created",
		"household_id", expense.HouseholdID,
		"expense_id", expense.ID,
		"amount", expense.Amount.String(),
		"paid_by", expense.PaidByUserID,
		"split", mode.String(),
		"shares_count", len(shares),
	)
	l.publish(ctx, events.NewExpenseCreated(expense.HouseholdID, actor.UserID, expense.ID, expense.Amount))

	return l.describeExpense(ctx, l.newNameCache(), *expense, shares), nil
}

// requireMember is the membership gate. An absent household reports not-found
// rather than not-a-member.
func (l *Ledger) requireMember(ctx context.Context, householdID, userID string) error {
	ok, err := l.store.IsMember(ctx, householdID, userID)
	if err != nil {
		return fmt.Errorf("check membership: %w", err)
	}
	if ok {
		return nil
	}
	if err := l.requireHousehold(ctx, householdID); err != nil {
		return err
	}
	return ErrNotAMember
}

// checkDistinctShareUsers rejects custom shares that name a user more than
// once. An expense holds at most one share per user.
func checkDistinctShareUsers(shares []ShareInput) error {
	seen := make(map[string]bool, len(shares))
	for _, s := range shares {
		if seen[s.UserID] {
			return fmt.Errorf("%w: duplicate share for user %s", ErrValidation, s.UserID)
		}
		seen[s.UserID] = true
	}
	return nil
}

// checkCustomShares enforces that custom shares cover the amount exactly and
// only name household members.
func checkCustomShares(amount decimal.Decimal, memberIDs []string, shares []calculator.Share) error {
	members := make(map[string]bool, len(memberIDs))
	for _, id := range memberIDs {
		members[id] = true
	}
	for _, s := range shares {
		if !members[s.UserID] {
			return fmt.Errorf("%w: share user %s is not a household member", ErrValidation, s.UserID)
		}
	}
	if sum := calculator.SumShares(shares); !sum.Equal(amount) {
		return fmt.Errorf("%w: shares sum to %s, expense amount is %s", ErrValidation, sum, amount)
	}
	return nil
}

// ListExpenses returns a household's expenses newest first, each with its shares.
func (l *Ledger) ListExpenses(ctx context.Context, householdID string) ([]ExpenseDetail, error) {
	expenses, shares, err := l.loadHousehold(ctx, householdID)
	if err != nil {
		return nil, err
	}

	byExpense := make(map[string][]models.ExpenseShare, len(expenses))
	for _, s := range shares {
		byExpense[s.ExpenseID] = append(byExpense[s.ExpenseID], s)
	}

	names := l.newNameCache()
	details := make([]ExpenseDetail, len(expenses))
	for i, e := range expenses {
		details[i] = *l.describeExpense(ctx, names, e, byExpense[e.ID])
	}
	return details, nil
}

// loadHousehold fetches all expenses and shares of a household concurrently.
func (l *Ledger) loadHousehold(ctx context.Context, householdID string) ([]models.Expense, []models.ExpenseShare, error) {
	if err := l.requireHousehold(ctx, householdID); err != nil {
		return nil, nil, err
	}

	var (
		expenses []models.Expense
		shares   []models.ExpenseShare
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		expenses, err = l.store.ListExpenses(gctx, householdID)
		return err
	})
	g.Go(func() error {
		var err error
		shares, err = l.store.ListShares(gctx, householdID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, fmt.Errorf("load household %s: %w", householdID, err)
	}
	return expenses, shares, nil
}

func (l *Ledger) describeExpense(ctx context.Context, names *nameCache, e models.Expense, shares []models.ExpenseShare) *ExpenseDetail {
	detail := &ExpenseDetail{
		Expense:    e,
		PaidByName: names.labelOrID(ctx, e.PaidByUserID),
		Shares:     make([]ShareDetail, len(shares)),
	}
	for i, s := range shares {
		detail.Shares[i] = ShareDetail{ExpenseShare: s, DisplayName: names.labelOrID(ctx, s.UserID)}
	}
	return detail
}
