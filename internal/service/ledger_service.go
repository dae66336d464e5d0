package service

import (
	"context"
	"fmt"
	"log/slog"

	"teamledger/internal/calculator"
	"teamledger/internal/metrics"
	"teamledger/internal/models"
	"teamledger/internal/storage"
)

// autoPurposePrefix marks settlements materialized by the writer rather than
// accepted from suggestions.
const (
	autoPurposePrefix = "[Auto] "
	autoNotes         = "Auto-generated from shared payment record"
)

// LedgerService owns the expense/subscription write path. Every create or
// update runs the auto-settlement writer synchronously: a paid record whose
// payer and responsible party diverge materializes a pending settlement
// exactly once, keyed to its source record.
type LedgerService struct {
	store storage.Store
}

// NewLedgerService creates a LedgerService with the given storage backend.
func NewLedgerService(store storage.Store) *LedgerService {
	return &LedgerService{store: store}
}

// CreateExpense persists an expense and runs the auto-settlement writer.
func (s *LedgerService) CreateExpense(ctx context.Context, expense *models.Expense) error {
	if expense.PersonPaid == "" {
		return fmt.Errorf("person_paid is required")
	}
	if expense.Amount <= 0 {
		return fmt.Errorf("amount must be positive")
	}

	if err := s.store.CreateExpense(ctx, expense); err != nil {
		slog.Error("CreateExpense failed", "error", err)
		return err
	}
	slog.Info("Expense created", "expense_id", expense.ID, "amount", expense.Amount)

	s.autoSettleExpense(ctx, expense)
	return nil
}

// UpdateExpense updates an expense and re-runs the auto-settlement writer.
// A record that became paid (or had its parties corrected) after creation
// gets its settlement materialized here; the source-id guard keeps repeated
// updates from stacking rows.
func (s *LedgerService) UpdateExpense(ctx context.Context, expense *models.Expense) error {
	if err := s.store.UpdateExpense(ctx, expense); err != nil {
		slog.Error("UpdateExpense failed", "expense_id", expense.ID, "error", err)
		return err
	}
	slog.Info("Expense updated", "expense_id", expense.ID)

	s.autoSettleExpense(ctx, expense)
	return nil
}

// CreateSubscription persists a subscription and runs the auto-settlement
// writer.
func (s *LedgerService) CreateSubscription(ctx context.Context, subscription *models.Subscription) error {
	if subscription.PaidBy == "" {
		return fmt.Errorf("paid_by is required")
	}
	if subscription.Amount <= 0 {
		return fmt.Errorf("amount must be positive")
	}

	if err := s.store.CreateSubscription(ctx, subscription); err != nil {
		slog.Error("CreateSubscription failed", "error", err)
		return err
	}
	slog.Info("Subscription created", "subscription_id", subscription.ID, "platform", subscription.Platform)

	s.autoSettleSubscription(ctx, subscription)
	return nil
}

// UpdateSubscription updates a subscription and re-runs the auto-settlement
// writer.
func (s *LedgerService) UpdateSubscription(ctx context.Context, subscription *models.Subscription) error {
	if err := s.store.UpdateSubscription(ctx, subscription); err != nil {
		slog.Error("UpdateSubscription failed", "subscription_id", subscription.ID, "error", err)
		return err
	}
	slog.Info("Subscription updated", "subscription_id", subscription.ID)

	s.autoSettleSubscription(ctx, subscription)
	return nil
}

// autoSettleExpense materializes the settlement obligation for a paid shared
// expense. Failures are logged and swallowed: settlement bookkeeping is
// secondary to the primary financial record, which has already been written.
func (s *LedgerService) autoSettleExpense(ctx context.Context, expense *models.Expense) {
	if expense.PaymentStatus != models.PaymentStatusPaid || !expense.IsShared() {
		return
	}

	created, err := s.store.CreateSettlementIfAbsent(ctx, &models.Settlement{
		FromPerson:       expense.PersonResponsible,
		ToPerson:         expense.PersonPaid,
		Amount:           calculator.Round2(expense.Amount),
		Purpose:          autoPurposePrefix + expense.Purpose,
		Notes:            autoNotes,
		Status:           models.SettlementStatusPending,
		RelatedExpenseID: expense.ID,
	})
	s.recordAutoSettleOutcome("expense", expense.ID, created, err)
}

// autoSettleSubscription materializes the settlement obligation for an active
// shared subscription, on a monthly-equivalent basis.
func (s *LedgerService) autoSettleSubscription(ctx context.Context, subscription *models.Subscription) {
	if !subscription.IsActive || !subscription.IsShared() {
		return
	}

	created, err := s.store.CreateSettlementIfAbsent(ctx, &models.Settlement{
		FromPerson:            subscription.UsedBy,
		ToPerson:              subscription.PaidBy,
		Amount:                calculator.Round2(subscription.Amount / models.CycleMonths(subscription.RenewalCycle)),
		Purpose:               fmt.Sprintf("%s%s %s subscription", autoPurposePrefix, subscription.Platform, subscription.PlanType),
		Notes:                 autoNotes,
		Status:                models.SettlementStatusPending,
		RelatedSubscriptionID: subscription.ID,
	})
	s.recordAutoSettleOutcome("subscription", subscription.ID, created, err)
}

func (s *LedgerService) recordAutoSettleOutcome(sourceType, sourceID string, created bool, err error) {
	switch {
	case err != nil:
		// Swallowed: the source record stays paid even when its settlement
		// could not be materialized.
		metrics.AutoSettlements.WithLabelValues("failed").Inc()
		slog.Error("Auto-settlement failed",
			"source_type", sourceType,
			"source_id", sourceID,
			"error", err,
		)
	case created:
		metrics.AutoSettlements.WithLabelValues("created").Inc()
		slog.Info("Auto-settlement created", "source_type", sourceType, "source_id", sourceID)
	default:
		metrics.AutoSettlements.WithLabelValues("skipped").Inc()
		slog.Debug("Auto-settlement skipped, already exists", "source_type", sourceType, "source_id", sourceID)
	}
}
