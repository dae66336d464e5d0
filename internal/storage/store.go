// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"teamledger/internal/models"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// Store defines the interface for settlement-engine storage operations.
// This abstraction allows swapping storage backends without changing the
// service layer, and keeps the engine free of connection state.
type Store interface {
	// CreateExpense persists a new expense. The expense.ID field will be
	// populated by the store if empty.
	CreateExpense(ctx context.Context, expense *models.Expense) error

	// UpdateExpense updates an existing expense by ID.
	UpdateExpense(ctx context.Context, expense *models.Expense) error

	// GetExpense retrieves an expense by ID.
	GetExpense(ctx context.Context, id string) (*models.Expense, error)

	// ListPaidExpenses returns paid expenses, optionally filtered to a month
	// (YYYY-MM, empty for all time).
	ListPaidExpenses(ctx context.Context, month string) ([]models.Expense, error)

	// CreateSubscription persists a new subscription.
	CreateSubscription(ctx context.Context, subscription *models.Subscription) error

	// UpdateSubscription updates an existing subscription by ID.
	UpdateSubscription(ctx context.Context, subscription *models.Subscription) error

	// GetSubscription retrieves a subscription by ID.
	GetSubscription(ctx context.Context, id string) (*models.Subscription, error)

	// ListActiveSubscriptions returns all currently active subscriptions.
	ListActiveSubscriptions(ctx context.Context) ([]models.Subscription, error)

	// CreateSettlement persists a settlement unconditionally. Callers are
	// responsible for any dedup; bulk acceptance of suggestions uses this.
	CreateSettlement(ctx context.Context, settlement *models.Settlement) error

	// CreateSettlementIfAbsent atomically inserts a settlement unless one
	// already exists for the same related expense/subscription id. Returns
	// true when a row was inserted. This is the auto-settlement idempotency
	// guard; uniqueness is enforced by the schema, not by a prior read.
	CreateSettlementIfAbsent(ctx context.Context, settlement *models.Settlement) (bool, error)

	// ListSettlementsBySource returns settlements linked to the given source
	// expense or subscription id (pass the other argument empty).
	ListSettlementsBySource(ctx context.Context, expenseID, subscriptionID string) ([]*models.Settlement, error)

	// ListSettlements returns settlements, optionally filtered to the month
	// they were created in (YYYY-MM, empty for all time).
	ListSettlements(ctx context.Context, month string) ([]*models.Settlement, error)

	// CompleteSettlement transitions a pending settlement to completed and
	// records the settlement date.
	CompleteSettlement(ctx context.Context, id, settlementDate string) error

	// ListMonthlyStatuses returns all per-member status rows for a month.
	ListMonthlyStatuses(ctx context.Context, month string) ([]models.MonthlySettlementStatus, error)

	// RefreshMonthlyStatus upserts the recomputed projection fields
	// (total_amount, item_count) for one (member, month) pair while
	// preserving any previously stored is_settled flag.
	RefreshMonthlyStatus(ctx context.Context, status *models.MonthlySettlementStatus) error

	// SetMonthlyStatus upserts a full status row including the is_settled
	// flag. This is the explicit user toggle.
	SetMonthlyStatus(ctx context.Context, status *models.MonthlySettlementStatus) error

	// Close releases any resources held by the store.
	Close() error
}
