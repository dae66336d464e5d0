package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"teamledger/internal/models"
	"teamledger/internal/storage"
	"teamledger/internal/storage/sqlite"
)

func newTestStore(t *testing.T) storage.Store {
	t.Helper()
	tempDir, err := os.MkdirTemp("", "teamledger-service-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := sqlite.New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestAutoSettlementOnExpense(t *testing.T) {
	store := newTestStore(t)
	svc := NewLedgerService(store)
	ctx := context.Background()

	expense := &models.Expense{
		PersonPaid:        "Alice",
		PersonResponsible: "Bob",
		Amount:            1000,
		PaymentStatus:     models.PaymentStatusPaid,
		Purpose:           "Team offsite",
		ExpenseDate:       "2026-08-10",
	}
	if err := svc.CreateExpense(ctx, expense); err != nil {
		t.Fatalf("CreateExpense failed: %v", err)
	}

	settlements, err := store.ListSettlementsBySource(ctx, expense.ID, "")
	if err != nil {
		t.Fatalf("ListSettlementsBySource failed: %v", err)
	}
	if len(settlements) != 1 {
		t.Fatalf("got %d settlements, want 1", len(settlements))
	}
	s := settlements[0]
	if s.FromPerson != "Bob" || s.ToPerson != "Alice" || s.Amount != 1000 {
		t.Errorf("settlement = %s -> %s for %v, want Bob -> Alice for 1000", s.FromPerson, s.ToPerson, s.Amount)
	}
	if s.Status != models.SettlementStatusPending {
		t.Errorf("status = %s, want pending", s.Status)
	}
	if s.Purpose != "[Auto] Team offsite" {
		t.Errorf("purpose = %q, want auto-generated prefix", s.Purpose)
	}

	// Re-running the writer via an update must not produce a second row.
	expense.Amount = 1000
	if err := svc.UpdateExpense(ctx, expense); err != nil {
		t.Fatalf("UpdateExpense failed: %v", err)
	}
	settlements, err = store.ListSettlementsBySource(ctx, expense.ID, "")
	if err != nil {
		t.Fatalf("ListSettlementsBySource failed: %v", err)
	}
	if len(settlements) != 1 {
		t.Errorf("got %d settlements after update, want 1 (idempotent)", len(settlements))
	}
}

func TestAutoSettlementSkipsNonQualifyingExpenses(t *testing.T) {
	store := newTestStore(t)
	svc := NewLedgerService(store)
	ctx := context.Background()

	tests := []struct {
		name    string
		expense models.Expense
	}{
		{
			name: "pending payment",
			expense: models.Expense{
				PersonPaid: "Alice", PersonResponsible: "Bob", Amount: 100,
				PaymentStatus: models.PaymentStatusPending, ExpenseDate: "2026-08-01",
			},
		},
		{
			name: "self-paid",
			expense: models.Expense{
				PersonPaid: "Alice", PersonResponsible: "Alice", Amount: 100,
				PaymentStatus: models.PaymentStatusPaid, ExpenseDate: "2026-08-01",
			},
		},
		{
			name: "no responsible party",
			expense: models.Expense{
				PersonPaid: "Alice", Amount: 100,
				PaymentStatus: models.PaymentStatusPaid, ExpenseDate: "2026-08-01",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expense := tt.expense
			if err := svc.CreateExpense(ctx, &expense); err != nil {
				t.Fatalf("CreateExpense failed: %v", err)
			}
			settlements, err := store.ListSettlementsBySource(ctx, expense.ID, "")
			if err != nil {
				t.Fatalf("ListSettlementsBySource failed: %v", err)
			}
			if len(settlements) != 0 {
				t.Errorf("got %d settlements, want 0", len(settlements))
			}
		})
	}
}

func TestAutoSettlementDistinctExpensesGetDistinctRows(t *testing.T) {
	store := newTestStore(t)
	svc := NewLedgerService(store)
	ctx := context.Background()

	// Identical payer/responsible/amount but different ids: two rows.
	for i := 0; i < 2; i++ {
		expense := &models.Expense{
			PersonPaid:        "Alice",
			PersonResponsible: "Bob",
			Amount:            500,
			PaymentStatus:     models.PaymentStatusPaid,
			ExpenseDate:       "2026-08-01",
		}
		if err := svc.CreateExpense(ctx, expense); err != nil {
			t.Fatalf("CreateExpense failed: %v", err)
		}
	}

	settlements, err := store.ListSettlements(ctx, "")
	if err != nil {
		t.Fatalf("ListSettlements failed: %v", err)
	}
	if len(settlements) != 2 {
		t.Errorf("got %d settlements, want 2 independent rows", len(settlements))
	}
}

func TestAutoSettlementOnSubscription(t *testing.T) {
	store := newTestStore(t)
	svc := NewLedgerService(store)
	ctx := context.Background()

	subscription := &models.Subscription{
		PaidBy:       "Alice",
		UsedBy:       "Bob",
		Amount:       1200,
		RenewalCycle: models.CycleYearly,
		Platform:     "Figma",
		PlanType:     "Pro",
		IsActive:     true,
	}
	if err := svc.CreateSubscription(ctx, subscription); err != nil {
		t.Fatalf("CreateSubscription failed: %v", err)
	}

	settlements, err := store.ListSettlementsBySource(ctx, "", subscription.ID)
	if err != nil {
		t.Fatalf("ListSettlementsBySource failed: %v", err)
	}
	if len(settlements) != 1 {
		t.Fatalf("got %d settlements, want 1", len(settlements))
	}
	if settlements[0].Amount != 100 {
		t.Errorf("amount = %v, want monthly-equivalent 100", settlements[0].Amount)
	}
	if settlements[0].FromPerson != "Bob" || settlements[0].ToPerson != "Alice" {
		t.Errorf("settlement = %s -> %s, want Bob -> Alice", settlements[0].FromPerson, settlements[0].ToPerson)
	}
}

// brokenSettlementStore fails settlement writes while letting the primary
// record writes through.
type brokenSettlementStore struct {
	storage.Store
}

func (b *brokenSettlementStore) CreateSettlementIfAbsent(ctx context.Context, settlement *models.Settlement) (bool, error) {
	return false, errors.New("settlements table unavailable")
}

func TestAutoSettlementFailureDoesNotBlockPrimaryWrite(t *testing.T) {
	store := &brokenSettlementStore{Store: newTestStore(t)}
	svc := NewLedgerService(store)
	ctx := context.Background()

	expense := &models.Expense{
		PersonPaid:        "Alice",
		PersonResponsible: "Bob",
		Amount:            100,
		PaymentStatus:     models.PaymentStatusPaid,
		ExpenseDate:       "2026-08-01",
	}
	if err := svc.CreateExpense(ctx, expense); err != nil {
		t.Fatalf("CreateExpense must succeed despite settlement failure, got: %v", err)
	}

	// The primary record persisted as paid.
	got, err := store.GetExpense(ctx, expense.ID)
	if err != nil {
		t.Fatalf("GetExpense failed: %v", err)
	}
	if got.PaymentStatus != models.PaymentStatusPaid {
		t.Errorf("payment status = %s, want paid", got.PaymentStatus)
	}
}
