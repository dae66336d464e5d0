package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"teamledger/internal/calculator"
	"teamledger/internal/ledger"
	"teamledger/internal/models"
	"teamledger/internal/storage"
)

// StatusEntry is one member's settled/pending flag in a bulk update.
type StatusEntry struct {
	MemberName  string  `json:"member_name"`
	IsSettled   bool    `json:"is_settled"`
	TotalAmount float64 `json:"total_amount"`
	ItemCount   int     `json:"item_count"`
}

// StatusService maintains the per-month, per-member settled/pending cache.
// Reads reconcile the cached projection against the live matrix; the
// is_settled flag itself is only ever changed by explicit toggles.
type StatusService struct {
	store   storage.Store
	adapter *ledger.Adapter
}

// NewStatusService creates a StatusService.
func NewStatusService(store storage.Store, adapter *ledger.Adapter) *StatusService {
	return &StatusService{store: store, adapter: adapter}
}

// TeamSettlementStatus returns the settled/pending flag per member for a
// month. Before reading the flags it recomputes each debtor's monthly total
// and item count from the live imbalance set and upserts them, preserving
// previously stored flags (merge, not replace). Members with nothing to
// settle that month are not listed.
func (s *StatusService) TeamSettlementStatus(ctx context.Context, month string) (map[string]bool, error) {
	if month == "" {
		return nil, fmt.Errorf("month is required")
	}

	records, err := s.adapter.ImbalanceRecords(ctx, month)
	if err != nil {
		slog.Error("TeamSettlementStatus failed", "month", month, "error", err)
		return nil, fmt.Errorf("load imbalance records: %w", err)
	}

	now := time.Now().Unix()
	for member, summary := range debtorSummaries(records) {
		err := s.store.RefreshMonthlyStatus(ctx, &models.MonthlySettlementStatus{
			MemberName:      member,
			SettlementMonth: month,
			TotalAmount:     summary.total,
			ItemCount:       summary.count,
			LastUpdated:     now,
		})
		if err != nil {
			return nil, fmt.Errorf("refresh status for %s: %w", member, err)
		}
	}

	statuses, err := s.store.ListMonthlyStatuses(ctx, month)
	if err != nil {
		return nil, fmt.Errorf("list monthly statuses: %w", err)
	}

	result := make(map[string]bool, len(statuses))
	for _, status := range statuses {
		result[status.MemberName] = status.IsSettled
	}

	slog.Info("Team settlement status read", "month", month, "members", len(result))
	return result, nil
}

// UpdateStatus explicitly sets one member's settled/pending flag for a month.
// Both directions are allowed; the flag survives subsequent recomputes.
func (s *StatusService) UpdateStatus(ctx context.Context, member string, settled bool, month string, totalAmount float64, itemCount int) error {
	if member == "" || month == "" {
		return fmt.Errorf("member and month are required")
	}

	err := s.store.SetMonthlyStatus(ctx, &models.MonthlySettlementStatus{
		MemberName:      member,
		SettlementMonth: month,
		IsSettled:       settled,
		TotalAmount:     calculator.Round2(totalAmount),
		ItemCount:       itemCount,
	})
	if err != nil {
		slog.Error("UpdateStatus failed", "member", member, "month", month, "error", err)
		return err
	}

	slog.Info("Settlement status updated", "member", member, "month", month, "is_settled", settled)
	return nil
}

// BulkUpdateStatus applies several flag updates for one month.
func (s *StatusService) BulkUpdateStatus(ctx context.Context, entries []StatusEntry, month string) error {
	if month == "" {
		return fmt.Errorf("month is required")
	}
	for i, entry := range entries {
		if err := s.UpdateStatus(ctx, entry.MemberName, entry.IsSettled, month, entry.TotalAmount, entry.ItemCount); err != nil {
			return fmt.Errorf("entry %d: %w", i, err)
		}
	}
	return nil
}

type memberSummary struct {
	total float64
	count int
}

// debtorSummaries aggregates what each responsible party owes for the month:
// the authoritative total_amount / item_count projection.
func debtorSummaries(records []models.ImbalanceRecord) map[string]memberSummary {
	summaries := make(map[string]memberSummary)
	for _, rec := range records {
		amount := rec.Amount
		if rec.SourceType == models.SourceTypeSubscription {
			amount = rec.PeriodEquivalentAmount
		}
		summary := summaries[rec.ResponsibleParty]
		summary.total = calculator.Round2(summary.total + amount)
		summary.count++
		summaries[rec.ResponsibleParty] = summary
	}
	return summaries
}
