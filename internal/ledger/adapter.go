// Package ledger normalizes the two shared-payment sources (expenses and
// subscriptions) into the common imbalance record shape consumed by the
// balance calculator.
package ledger

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"teamledger/internal/models"
)

// Source supplies the raw shared-payment records. Implemented by the SQLite
// store; tests substitute fakes.
type Source interface {
	// ListPaidExpenses returns paid expenses, optionally filtered to a month
	// (YYYY-MM, empty for all time).
	ListPaidExpenses(ctx context.Context, month string) ([]models.Expense, error)

	// ListActiveSubscriptions returns currently active subscriptions.
	ListActiveSubscriptions(ctx context.Context) ([]models.Subscription, error)
}

// Adapter reads raw records and projects them into imbalance records.
// It has no side effects and holds no state beyond its source.
type Adapter struct {
	source Source
}

// New creates an Adapter over the given source.
func New(source Source) *Adapter {
	return &Adapter{source: source}
}

// ImbalanceRecords returns the imbalance set for the given month (empty month
// means all time). Both sources are read concurrently.
//
// An expense contributes a record only when it is paid and its payer and
// responsible party are both present and differ. A subscription contributes
// only when active with distinct payer and user; its amount is normalized to
// a monthly basis by dividing by the cycle length in months. Records where
// payer and responsible party match carry no imbalance and are dropped here,
// never surfaced as errors: partial rows are expected in a hand-entered
// ledger.
func (a *Adapter) ImbalanceRecords(ctx context.Context, month string) ([]models.ImbalanceRecord, error) {
	var (
		expenses      []models.Expense
		subscriptions []models.Subscription
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		expenses, err = a.source.ListPaidExpenses(gctx, month)
		if err != nil {
			return fmt.Errorf("list paid expenses: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		subscriptions, err = a.source.ListActiveSubscriptions(gctx)
		if err != nil {
			return fmt.Errorf("list active subscriptions: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	records := make([]models.ImbalanceRecord, 0, len(expenses)+len(subscriptions))
	for _, e := range expenses {
		if !e.IsShared() {
			continue
		}
		records = append(records, models.ImbalanceRecord{
			SourceType:             models.SourceTypeExpense,
			SourceID:               e.ID,
			Payer:                  e.PersonPaid,
			ResponsibleParty:       e.PersonResponsible,
			Amount:                 e.Amount,
			PeriodEquivalentAmount: e.Amount,
			Description:            e.Purpose,
		})
	}
	for _, s := range subscriptions {
		if !s.IsShared() {
			continue
		}
		records = append(records, models.ImbalanceRecord{
			SourceType:             models.SourceTypeSubscription,
			SourceID:               s.ID,
			Payer:                  s.PaidBy,
			ResponsibleParty:       s.UsedBy,
			Amount:                 s.Amount,
			PeriodEquivalentAmount: s.Amount / models.CycleMonths(s.RenewalCycle),
			Description:            fmt.Sprintf("%s %s subscription", s.Platform, s.PlanType),
		})
	}
	return records, nil
}
