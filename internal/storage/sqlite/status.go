package sqlite

import (
	"context"
	"fmt"
	"time"

	"teamledger/internal/models"
)

// ListMonthlyStatuses returns all per-member status rows for a month.
func (s *SQLiteStore) ListMonthlyStatuses(ctx context.Context, month string) ([]models.MonthlySettlementStatus, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT member_name, settlement_month, is_settled, total_amount, item_count, last_updated
		 FROM monthly_settlement_status WHERE settlement_month = ? ORDER BY member_name`,
		month,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list monthly statuses: %w", err)
	}
	defer rows.Close()

	var statuses []models.MonthlySettlementStatus
	for rows.Next() {
		var status models.MonthlySettlementStatus
		var settled int
		if err := rows.Scan(&status.MemberName, &status.SettlementMonth, &settled,
			&status.TotalAmount, &status.ItemCount, &status.LastUpdated); err != nil {
			return nil, fmt.Errorf("failed to scan monthly status: %w", err)
		}
		status.IsSettled = settled != 0
		statuses = append(statuses, status)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate monthly statuses: %w", err)
	}
	return statuses, nil
}

// RefreshMonthlyStatus upserts the recomputed projection for one
// (member, month) pair. The upsert deliberately leaves is_settled untouched
// on conflict: the flag is owned by explicit user toggles, not by the
// recompute. New rows start unsettled.
func (s *SQLiteStore) RefreshMonthlyStatus(ctx context.Context, status *models.MonthlySettlementStatus) error {
	if status.LastUpdated == 0 {
		status.LastUpdated = time.Now().Unix()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO monthly_settlement_status (member_name, settlement_month, is_settled, total_amount, item_count, last_updated)
		 VALUES (?, ?, 0, ?, ?, ?)
		 ON CONFLICT (member_name, settlement_month) DO UPDATE SET
		     total_amount = excluded.total_amount,
		     item_count = excluded.item_count,
		     last_updated = excluded.last_updated`,
		status.MemberName, status.SettlementMonth, status.TotalAmount, status.ItemCount, status.LastUpdated,
	)
	if err != nil {
		return fmt.Errorf("failed to refresh monthly status: %w", err)
	}
	return nil
}

// SetMonthlyStatus upserts a full status row including the is_settled flag.
func (s *SQLiteStore) SetMonthlyStatus(ctx context.Context, status *models.MonthlySettlementStatus) error {
	if status.LastUpdated == 0 {
		status.LastUpdated = time.Now().Unix()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO monthly_settlement_status (member_name, settlement_month, is_settled, total_amount, item_count, last_updated)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT (member_name, settlement_month) DO UPDATE SET
		     is_settled = excluded.is_settled,
		     total_amount = excluded.total_amount,
		     item_count = excluded.item_count,
		     last_updated = excluded.last_updated`,
		status.MemberName, status.SettlementMonth, boolToInt(status.IsSettled),
		status.TotalAmount, status.ItemCount, status.LastUpdated,
	)
	if err != nil {
		return fmt.Errorf("failed to set monthly status: %w", err)
	}
	return nil
}
