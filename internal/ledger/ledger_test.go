package ledger

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/households/internal/events"
	"github.com/mmynk/households/internal/models"
	"github.com/mmynk/households/internal/storage"
	"github.com/mmynk/households/internal/storage/sqlstore"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, e events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	types := make([]string, len(p.events))
	for i, e := range p.events {
		types[i] = e.Type
	}
	return types
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newTestLedger(t *testing.T, cfg Config) (*Ledger, *sqlstore.Store, *recordingPublisher) {
	t.Helper()

	store, err := sqlstore.NewSQLite(filepath.Join(t.TempDir(), "ledger.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	pub := &recordingPublisher{}
	return New(store, pub, cfg), store, pub
}

var (
	alice = Actor{UserID: "A", Email: "alice@example.com", DisplayName: "Alice"}
	bob   = Actor{UserID: "B", Email: "bob@example.com"}
	carol = Actor{UserID: "C"}
)

// setupHousehold creates a household owned by alice that bob and carol have joined.
func setupHousehold(t *testing.T, l *Ledger) *models.Household {
	t.Helper()
	ctx := context.Background()

	h, err := l.CreateHousehold(ctx, alice, "Home")
	require.NoError(t, err)
	for _, a := range []Actor{bob, carol} {
		ok, err := l.JoinHousehold(ctx, a, h.ID)
		require.NoError(t, err)
		require.True(t, ok)
	}
	return h
}

func TestCreateHousehold(t *testing.T) {
	l, store, _ := newTestLedger(t, Config{})
	ctx := context.Background()

	h, err := l.CreateHousehold(ctx, alice, "  Flat 3B  ")
	require.NoError(t, err)
	assert.Equal(t, "Flat 3B", h.Name)
	assert.Equal(t, "A", h.OwnerUserID)

	ok, err := store.IsMember(ctx, h.ID, "A")
	require.NoError(t, err)
	assert.True(t, ok, "creator is enrolled")

	t.Run("empty name is rejected", func(t *testing.T) {
		_, err := l.CreateHousehold(ctx, alice, "   ")
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("missing actor is rejected", func(t *testing.T) {
		_, err := l.CreateHousehold(ctx, Actor{}, "Nobody's")
		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestJoinHousehold(t *testing.T) {
	l, _, pub := newTestLedger(t, Config{})
	ctx := context.Background()

	h, err := l.CreateHousehold(ctx, alice, "Home")
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		ok, err := l.JoinHousehold(ctx, bob, h.ID)
		require.NoError(t, err)
		assert.True(t, ok)
	}

	members, err := l.ListMembers(ctx, h.ID)
	require.NoError(t, err)
	require.Len(t, members, 2, "second join must not add a row")
	assert.Equal(t, "A", members[0].UserID)
	assert.Equal(t, "B", members[1].UserID)

	assert.Equal(t, []string{events.TypeHouseholdJoined}, pub.types(), "only the first join is announced")

	t.Run("unknown household", func(t *testing.T) {
		_, err := l.JoinHousehold(ctx, bob, "missing")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}

func TestListHouseholds(t *testing.T) {
	l, _, _ := newTestLedger(t, Config{})
	ctx := context.Background()

	mine, err := l.CreateHousehold(ctx, alice, "Mine")
	require.NoError(t, err)
	theirs, err := l.CreateHousehold(ctx, bob, "Theirs")
	require.NoError(t, err)

	listings, err := l.ListHouseholds(ctx, "A")
	require.NoError(t, err)
	require.Len(t, listings, 2)

	flags := map[string]bool{}
	for _, h := range listings {
		flags[h.ID] = h.IsMember
	}
	assert.True(t, flags[mine.ID])
	assert.False(t, flags[theirs.ID])
}

func TestCreateExpense_EqualSplitDefaultsPayerToActor(t *testing.T) {
	l, _, pub := newTestLedger(t, Config{})
	ctx := context.Background()
	h := setupHousehold(t, l)

	got, err := l.CreateExpense(ctx, alice, CreateExpenseInput{
		HouseholdID:  h.ID,
		Amount:       dec("10.00"),
		Description:  "groceries",
		SplitEqually: true,
	})
	require.NoError(t, err)

	assert.Equal(t, "A", got.PaidByUserID)
	assert.Equal(t, "Alice", got.PaidByName)
	assert.False(t, got.Date.IsZero(), "date defaults to now")

	want := map[string]string{"A": "3.34", "B": "3.33", "C": "3.33"}
	require.Len(t, got.Shares, 3)
	sum := decimal.Zero
	for _, s := range got.Shares {
		assert.True(t, s.Amount.Equal(dec(want[s.UserID])), "%s: got %s", s.UserID, s.Amount)
		sum = sum.Add(s.Amount)
	}
	assert.True(t, sum.Equal(dec("10")))

	assert.Equal(t, "Alice", got.Shares[0].DisplayName)
	assert.Equal(t, "bob@example.com", got.Shares[1].DisplayName, "email is the fallback label")
	assert.Equal(t, "C", got.Shares[2].DisplayName, "raw ID when no profile exists")

	assert.Contains(t, pub.types(), events.TypeExpenseCreated)
}

func TestCreateExpense_CustomShares(t *testing.T) {
	ctx := context.Background()

	t.Run("permissive mode stores shares as given", func(t *testing.T) {
		l, _, _ := newTestLedger(t, Config{})
		h := setupHousehold(t, l)

		got, err := l.CreateExpense(ctx, bob, CreateExpenseInput{
			HouseholdID: h.ID,
			Amount:      dec("30"),
			Shares: []ShareInput{
				{UserID: "A", Amount: dec("5")},
				{UserID: "outsider", Amount: dec("1")},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, "B", got.PaidByUserID)
		require.Len(t, got.Shares, 2)
		assert.Equal(t, "outsider", got.Shares[1].UserID)
	})

	t.Run("empty custom shares fall back to equal split", func(t *testing.T) {
		l, _, _ := newTestLedger(t, Config{})
		h := setupHousehold(t, l)

		got, err := l.CreateExpense(ctx, bob, CreateExpenseInput{HouseholdID: h.ID, Amount: dec("9")})
		require.NoError(t, err)
		require.Len(t, got.Shares, 3)
		for _, s := range got.Shares {
			assert.True(t, s.Amount.Equal(dec("3")))
		}
	})

	t.Run("strict mode rejects a short sum", func(t *testing.T) {
		l, store, _ := newTestLedger(t, Config{StrictCustomShares: true})
		h := setupHousehold(t, l)

		_, err := l.CreateExpense(ctx, alice, CreateExpenseInput{
			HouseholdID: h.ID,
			Amount:      dec("30"),
			Shares:      []ShareInput{{UserID: "A", Amount: dec("10")}, {UserID: "B", Amount: dec("10")}},
		})
		assert.ErrorIs(t, err, ErrValidation)

		expenses, err := store.ListExpenses(ctx, h.ID)
		require.NoError(t, err)
		assert.Empty(t, expenses)
	})

	t.Run("strict mode rejects non-members", func(t *testing.T) {
		l, _, _ := newTestLedger(t, Config{StrictCustomShares: true})
		h := setupHousehold(t, l)

		_, err := l.CreateExpense(ctx, alice, CreateExpenseInput{
			HouseholdID: h.ID,
			Amount:      dec("2"),
			Shares:      []ShareInput{{UserID: "A", Amount: dec("1")}, {UserID: "Z", Amount: dec("1")}},
		})
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("strict mode accepts an exact split", func(t *testing.T) {
		l, _, _ := newTestLedger(t, Config{StrictCustomShares: true})
		h := setupHousehold(t, l)

		_, err := l.CreateExpense(ctx, alice, CreateExpenseInput{
			HouseholdID: h.ID,
			Amount:      dec("30"),
			Shares: []ShareInput{
				{UserID: "A", Amount: dec("10")},
				{UserID: "B", Amount: dec("15")},
				{UserID: "C", Amount: dec("5")},
			},
		})
		assert.NoError(t, err)
	})
}

func TestCreateExpense_Rejections(t *testing.T) {
	l, store, pub := newTestLedger(t, Config{})
	ctx := context.Background()
	h := setupHousehold(t, l)
	before := len(pub.types())

	t.Run("non-member writes nothing", func(t *testing.T) {
		_, err := l.CreateExpense(ctx, Actor{UserID: "D"}, CreateExpenseInput{
			HouseholdID: h.ID, Amount: dec("5"), SplitEqually: true,
		})
		assert.ErrorIs(t, err, ErrNotAMember)

		expenses, err := store.ListExpenses(ctx, h.ID)
		require.NoError(t, err)
		assert.Empty(t, expenses)
		assert.Len(t, pub.types(), before)
	})

	t.Run("unknown household is not found", func(t *testing.T) {
		_, err := l.CreateExpense(ctx, alice, CreateExpenseInput{
			HouseholdID: "missing", Amount: dec("5"), SplitEqually: true,
		})
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	for _, amount := range []string{"0", "-1.50"} {
		t.Run("non-positive amount "+amount, func(t *testing.T) {
			_, err := l.CreateExpense(ctx, alice, CreateExpenseInput{
				HouseholdID: h.ID, Amount: dec(amount), SplitEqually: true,
			})
			assert.ErrorIs(t, err, ErrValidation)
		})
	}

	for _, strict := range []bool{false, true} {
		t.Run(fmt.Sprintf("duplicate share user strict=%v", strict), func(t *testing.T) {
			l, store, _ := newTestLedger(t, Config{StrictCustomShares: strict})
			h := setupHousehold(t, l)

			_, err := l.CreateExpense(ctx, alice, CreateExpenseInput{
				HouseholdID: h.ID,
				Amount:      dec("10"),
				Shares:      []ShareInput{{UserID: "A", Amount: dec("5")}, {UserID: "A", Amount: dec("5")}},
			})
			assert.ErrorIs(t, err, ErrValidation)

			expenses, err := store.ListExpenses(ctx, h.ID)
			require.NoError(t, err)
			assert.Empty(t, expenses)
		})
	}

	t.Run("blank share user", func(t *testing.T) {
		_, err := l.CreateExpense(ctx, alice, CreateExpenseInput{
			HouseholdID: h.ID, Amount: dec("1"), Shares: []ShareInput{{Amount: dec("1")}},
		})
		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestReports(t *testing.T) {
	l, _, _ := newTestLedger(t, Config{})
	ctx := context.Background()
	h := setupHousehold(t, l)

	add := func(actor Actor, amount string, date time.Time) {
		t.Helper()
		_, err := l.CreateExpense(ctx, actor, CreateExpenseInput{
			HouseholdID: h.ID, Amount: dec(amount), Date: date, SplitEqually: true,
		})
		require.NoError(t, err)
	}
	add(alice, "10", time.Date(2024, time.January, 3, 0, 0, 0, 0, time.UTC))
	add(bob, "5", time.Date(2024, time.January, 20, 0, 0, 0, 0, time.UTC))
	add(carol, "7", time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC))

	t.Run("ListExpenses newest first with shares", func(t *testing.T) {
		expenses, err := l.ListExpenses(ctx, h.ID)
		require.NoError(t, err)
		require.Len(t, expenses, 3)
		assert.True(t, expenses[0].Amount.Equal(dec("7")))
		assert.True(t, expenses[2].Amount.Equal(dec("10")))
		for _, e := range expenses {
			assert.Len(t, e.Shares, 3)
		}
	})

	t.Run("GetMonthlySummary", func(t *testing.T) {
		months, err := l.GetMonthlySummary(ctx, h.ID)
		require.NoError(t, err)
		require.Len(t, months, 2)
		assert.Equal(t, 2024, months[0].Year)
		assert.Equal(t, 2, months[0].Month)
		assert.True(t, months[0].TotalSpent.Equal(dec("7")))
		assert.Equal(t, 1, months[1].Month)
		assert.True(t, months[1].TotalSpent.Equal(dec("15")))
	})

	t.Run("GetBalances sums to zero", func(t *testing.T) {
		balances, err := l.GetBalances(ctx, h.ID)
		require.NoError(t, err)
		require.Len(t, balances, 3)

		net := decimal.Zero
		for _, b := range balances {
			assert.True(t, b.Balance.Equal(b.TotalPaid.Sub(b.TotalOwed)))
			net = net.Add(b.Balance)
		}
		assert.True(t, net.IsZero(), "net %s", net)
		assert.Equal(t, "Alice", balances[0].DisplayName)
	})

	t.Run("GetSettlementPlan clears every balance", func(t *testing.T) {
		balances, err := l.GetBalances(ctx, h.ID)
		require.NoError(t, err)
		plan, err := l.GetSettlementPlan(ctx, h.ID)
		require.NoError(t, err)
		require.NotEmpty(t, plan)

		remaining := map[string]decimal.Decimal{}
		for _, b := range balances {
			remaining[b.UserID] = b.Balance
		}
		for _, tr := range plan {
			assert.True(t, tr.Amount.IsPositive())
			remaining[tr.FromUserID] = remaining[tr.FromUserID].Add(tr.Amount)
			remaining[tr.ToUserID] = remaining[tr.ToUserID].Sub(tr.Amount)
		}
		for id, r := range remaining {
			assert.True(t, r.IsZero(), "%s left with %s", id, r)
		}
	})

	t.Run("unknown household", func(t *testing.T) {
		_, err := l.GetBalances(ctx, "missing")
		assert.ErrorIs(t, err, storage.ErrNotFound)
		_, err = l.GetMonthlySummary(ctx, "missing")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}

func TestPublishFailureDoesNotFailWrite(t *testing.T) {
	l, store, pub := newTestLedger(t, Config{})
	pub.err = errors.New("broker down")
	ctx := context.Background()
	h := setupHousehold(t, l)

	_, err := l.CreateExpense(ctx, alice, CreateExpenseInput{HouseholdID: h.ID, Amount: dec("3"), SplitEqually: true})
	require.NoError(t, err)

	expenses, err := store.ListExpenses(ctx, h.ID)
	require.NoError(t, err)
	assert.Len(t, expenses, 1)
}

func TestResolveDisplayName(t *testing.T) {
	l, _, _ := newTestLedger(t, Config{})
	ctx := context.Background()
	setupHousehold(t, l)

	name, ok := l.ResolveDisplayName(ctx, "A")
	assert.True(t, ok)
	assert.Equal(t, "Alice", name)

	_, ok = l.ResolveDisplayName(ctx, "C")
	assert.False(t, ok, "carol has no profile")
}
