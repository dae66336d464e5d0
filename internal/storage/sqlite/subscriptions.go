package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"teamledger/internal/models"
	"teamledger/internal/storage"
)

// CreateSubscription persists a new subscription to the database.
func (s *SQLiteStore) CreateSubscription(ctx context.Context, subscription *models.Subscription) error {
	if subscription.ID == "" {
		subscription.ID = uuid.New().String()
	}
	if subscription.CreatedAt == 0 {
		subscription.CreatedAt = time.Now().Unix()
	}
	if subscription.RenewalCycle == "" {
		subscription.RenewalCycle = models.CycleMonthly
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO subscriptions (id, paid_by, used_by, amount, renewal_cycle, platform, plan_type, is_active, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		subscription.ID, subscription.PaidBy, subscription.UsedBy, subscription.Amount,
		subscription.RenewalCycle, subscription.Platform, subscription.PlanType,
		boolToInt(subscription.IsActive), subscription.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert subscription: %w", err)
	}
	return nil
}

// UpdateSubscription updates an existing subscription by ID.
func (s *SQLiteStore) UpdateSubscription(ctx context.Context, subscription *models.Subscription) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE subscriptions
		 SET paid_by = ?, used_by = ?, amount = ?, renewal_cycle = ?, platform = ?, plan_type = ?, is_active = ?
		 WHERE id = ?`,
		subscription.PaidBy, subscription.UsedBy, subscription.Amount,
		subscription.RenewalCycle, subscription.Platform, subscription.PlanType,
		boolToInt(subscription.IsActive), subscription.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update subscription: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("subscription %s: %w", subscription.ID, storage.ErrNotFound)
	}
	return nil
}

// GetSubscription retrieves a subscription by ID.
func (s *SQLiteStore) GetSubscription(ctx context.Context, id string) (*models.Subscription, error) {
	subscription := &models.Subscription{}
	var active int
	err := s.db.QueryRowContext(ctx,
		`SELECT id, paid_by, used_by, amount, renewal_cycle, platform, plan_type, is_active, created_at
		 FROM subscriptions WHERE id = ?`,
		id,
	).Scan(&subscription.ID, &subscription.PaidBy, &subscription.UsedBy, &subscription.Amount,
		&subscription.RenewalCycle, &subscription.Platform, &subscription.PlanType,
		&active, &subscription.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("subscription %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}
	subscription.IsActive = active != 0
	return subscription, nil
}

// ListActiveSubscriptions returns all currently active subscriptions.
func (s *SQLiteStore) ListActiveSubscriptions(ctx context.Context) ([]models.Subscription, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, paid_by, used_by, amount, renewal_cycle, platform, plan_type, is_active, created_at
		 FROM subscriptions WHERE is_active = 1 ORDER BY created_at, id`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list active subscriptions: %w", err)
	}
	defer rows.Close()

	var subscriptions []models.Subscription
	for rows.Next() {
		var subscription models.Subscription
		var active int
		if err := rows.Scan(&subscription.ID, &subscription.PaidBy, &subscription.UsedBy, &subscription.Amount,
			&subscription.RenewalCycle, &subscription.Platform, &subscription.PlanType,
			&active, &subscription.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan subscription: %w", err)
		}
		subscription.IsActive = active != 0
		subscriptions = append(subscriptions, subscription)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate subscriptions: %w", err)
	}
	return subscriptions, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
