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

const settlementColumns = `id, from_person, to_person, amount, purpose, status,
	related_expense_id, related_subscription_id, notes, created_at, settlement_date`

// CreateSettlement persists a settlement unconditionally. No dedup is
// performed; callers accepting user-approved suggestions own that decision.
func (s *SQLiteStore) CreateSettlement(ctx context.Context, settlement *models.Settlement) error {
	prepareSettlement(settlement)

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO settlements (`+settlementColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		settlementArgs(settlement)...,
	)
	if err != nil {
		return fmt.Errorf("failed to insert settlement: %w", err)
	}
	return nil
}

// CreateSettlementIfAbsent atomically inserts a settlement unless one already
// exists for the same source id. The partial unique indexes on
// related_expense_id / related_subscription_id make ON CONFLICT DO NOTHING
// race-free without a prior existence read.
func (s *SQLiteStore) CreateSettlementIfAbsent(ctx context.Context, settlement *models.Settlement) (bool, error) {
	prepareSettlement(settlement)

	result, err := s.db.ExecContext(ctx,
		`INSERT INTO settlements (`+settlementColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT DO NOTHING`,
		settlementArgs(settlement)...,
	)
	if err != nil {
		return false, fmt.Errorf("failed to insert settlement: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check insert result: %w", err)
	}
	return rows > 0, nil
}

// ListSettlementsBySource returns settlements linked to the given source id.
func (s *SQLiteStore) ListSettlementsBySource(ctx context.Context, expenseID, subscriptionID string) ([]*models.Settlement, error) {
	var (
		query string
		arg   string
	)
	switch {
	case expenseID != "":
		query = `SELECT ` + settlementColumns + ` FROM settlements WHERE related_expense_id = ?`
		arg = expenseID
	case subscriptionID != "":
		query = `SELECT ` + settlementColumns + ` FROM settlements WHERE related_subscription_id = ?`
		arg = subscriptionID
	default:
		return nil, fmt.Errorf("either expenseID or subscriptionID is required")
	}

	rows, err := s.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to list settlements by source: %w", err)
	}
	defer rows.Close()
	return scanSettlements(rows)
}

// ListSettlements returns settlements, optionally filtered to the month they
// were created in.
func (s *SQLiteStore) ListSettlements(ctx context.Context, month string) ([]*models.Settlement, error) {
	query := `SELECT ` + settlementColumns + ` FROM settlements`
	var args []interface{}
	if month != "" {
		query += ` WHERE strftime('%Y-%m', created_at, 'unixepoch') = ?`
		args = append(args, month)
	}
	query += ` ORDER BY created_at DESC, id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list settlements: %w", err)
	}
	defer rows.Close()
	return scanSettlements(rows)
}

// CompleteSettlement transitions a pending settlement to completed.
func (s *SQLiteStore) CompleteSettlement(ctx context.Context, id, settlementDate string) error {
	if settlementDate == "" {
		settlementDate = time.Now().Format("2006-01-02")
	}
	result, err := s.db.ExecContext(ctx,
		`UPDATE settlements SET status = ?, settlement_date = ? WHERE id = ? AND status = ?`,
		models.SettlementStatusCompleted, settlementDate, id, models.SettlementStatusPending,
	)
	if err != nil {
		return fmt.Errorf("failed to complete settlement: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("pending settlement %s: %w", id, storage.ErrNotFound)
	}
	return nil
}

func prepareSettlement(settlement *models.Settlement) {
	if settlement.ID == "" {
		settlement.ID = uuid.New().String()
	}
	if settlement.CreatedAt == 0 {
		settlement.CreatedAt = time.Now().Unix()
	}
	if settlement.Status == "" {
		settlement.Status = models.SettlementStatusPending
	}
}

func settlementArgs(settlement *models.Settlement) []interface{} {
	return []interface{}{
		settlement.ID, settlement.FromPerson, settlement.ToPerson, settlement.Amount,
		settlement.Purpose, settlement.Status,
		nullable(settlement.RelatedExpenseID), nullable(settlement.RelatedSubscriptionID),
		nullable(settlement.Notes), settlement.CreatedAt, nullable(settlement.SettlementDate),
	}
}

func scanSettlements(rows *sql.Rows) ([]*models.Settlement, error) {
	var settlements []*models.Settlement
	for rows.Next() {
		settlement := &models.Settlement{}
		var expenseID, subscriptionID, notes, settlementDate sql.NullString

		if err := rows.Scan(&settlement.ID, &settlement.FromPerson, &settlement.ToPerson,
			&settlement.Amount, &settlement.Purpose, &settlement.Status,
			&expenseID, &subscriptionID, &notes, &settlement.CreatedAt, &settlementDate); err != nil {
			return nil, fmt.Errorf("failed to scan settlement: %w", err)
		}

		settlement.RelatedExpenseID = expenseID.String
		settlement.RelatedSubscriptionID = subscriptionID.String
		settlement.Notes = notes.String
		settlement.SettlementDate = settlementDate.String
		settlements = append(settlements, settlement)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate settlements: %w", err)
	}
	return settlements, nil
}

// nullable maps empty strings to NULL so the partial unique indexes only see
// real source ids.
func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
