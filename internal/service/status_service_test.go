package service

import (
	"context"
	"math"
	"testing"

	"teamledger/internal/ledger"
	"teamledger/internal/models"
)

func TestTeamSettlementStatus(t *testing.T) {
	store := newTestStore(t)
	svc := NewStatusService(store, ledger.New(store))
	ctx := context.Background()
	month := "2026-08"

	seedPaidExpense(t, store, "Alice", "Bob", 500, "2026-08-01")
	seedPaidExpense(t, store, "Alice", "Bob", 300, "2026-08-05")
	seedPaidExpense(t, store, "Bob", "Carol", 50, "2026-08-07")

	statuses, err := svc.TeamSettlementStatus(ctx, month)
	if err != nil {
		t.Fatalf("TeamSettlementStatus failed: %v", err)
	}

	// Bob and Carol owe money this month; both start pending. Alice owes
	// nothing and is not listed.
	if len(statuses) != 2 {
		t.Fatalf("got %d statuses, want 2: %v", len(statuses), statuses)
	}
	if settled, ok := statuses["Bob"]; !ok || settled {
		t.Errorf("Bob status = %v/%v, want listed and pending", settled, ok)
	}
	if settled, ok := statuses["Carol"]; !ok || settled {
		t.Errorf("Carol status = %v/%v, want listed and pending", settled, ok)
	}

	// Projection reflects the live matrix.
	rows, err := store.ListMonthlyStatuses(ctx, month)
	if err != nil {
		t.Fatalf("ListMonthlyStatuses failed: %v", err)
	}
	for _, row := range rows {
		if row.MemberName == "Bob" {
			if math.Abs(row.TotalAmount-800) > 0.01 || row.ItemCount != 2 {
				t.Errorf("Bob projection = %v/%d, want 800/2", row.TotalAmount, row.ItemCount)
			}
		}
	}
}

func TestTeamSettlementStatusPreservesToggles(t *testing.T) {
	store := newTestStore(t)
	svc := NewStatusService(store, ledger.New(store))
	ctx := context.Background()
	month := "2026-08"

	seedPaidExpense(t, store, "Alice", "Bob", 100, "2026-08-01")

	if _, err := svc.TeamSettlementStatus(ctx, month); err != nil {
		t.Fatalf("TeamSettlementStatus failed: %v", err)
	}

	// User marks Bob settled.
	if err := svc.UpdateStatus(ctx, "Bob", true, month, 100, 1); err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}

	// New data lands and the summary is re-read; the flag must survive the
	// recompute.
	seedPaidExpense(t, store, "Alice", "Bob", 60, "2026-08-20")
	statuses, err := svc.TeamSettlementStatus(ctx, month)
	if err != nil {
		t.Fatalf("TeamSettlementStatus failed: %v", err)
	}
	if !statuses["Bob"] {
		t.Error("recompute reset Bob's settled flag")
	}

	rows, err := store.ListMonthlyStatuses(ctx, month)
	if err != nil {
		t.Fatalf("ListMonthlyStatuses failed: %v", err)
	}
	if math.Abs(rows[0].TotalAmount-160) > 0.01 {
		t.Errorf("Bob total = %v, want refreshed 160", rows[0].TotalAmount)
	}

	// Toggle back to pending.
	if err := svc.UpdateStatus(ctx, "Bob", false, month, 160, 2); err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}
	statuses, err = svc.TeamSettlementStatus(ctx, month)
	if err != nil {
		t.Fatalf("TeamSettlementStatus failed: %v", err)
	}
	if statuses["Bob"] {
		t.Error("expected Bob back to pending")
	}
}

func TestBulkUpdateStatus(t *testing.T) {
	store := newTestStore(t)
	svc := NewStatusService(store, ledger.New(store))
	ctx := context.Background()
	month := "2026-08"

	entries := []StatusEntry{
		{MemberName: "Bob", IsSettled: true, TotalAmount: 800, ItemCount: 2},
		{MemberName: "Carol", IsSettled: false, TotalAmount: 50, ItemCount: 1},
	}
	if err := svc.BulkUpdateStatus(ctx, entries, month); err != nil {
		t.Fatalf("BulkUpdateStatus failed: %v", err)
	}

	rows, err := store.ListMonthlyStatuses(ctx, month)
	if err != nil {
		t.Fatalf("ListMonthlyStatuses failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}

	byName := make(map[string]models.MonthlySettlementStatus)
	for _, row := range rows {
		byName[row.MemberName] = row
	}
	if !byName["Bob"].IsSettled || byName["Carol"].IsSettled {
		t.Errorf("flags = Bob:%v Carol:%v, want true/false", byName["Bob"].IsSettled, byName["Carol"].IsSettled)
	}
}

func TestStatusValidation(t *testing.T) {
	store := newTestStore(t)
	svc := NewStatusService(store, ledger.New(store))
	ctx := context.Background()

	if _, err := svc.TeamSettlementStatus(ctx, ""); err == nil {
		t.Error("expected error for empty month")
	}
	if err := svc.UpdateStatus(ctx, "", true, "2026-08", 0, 0); err == nil {
		t.Error("expected error for empty member")
	}
	if err := svc.BulkUpdateStatus(ctx, nil, ""); err == nil {
		t.Error("expected error for empty month")
	}
}
