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

// CreateExpense persists a new expense to the database.
func (s *SQLiteStore) CreateExpense(ctx context.Context, expense *models.Expense) error {
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt == 0 {
		expense.CreatedAt = time.Now().Unix()
	}
	if expense.PaymentStatus == "" {
		expense.PaymentStatus = models.PaymentStatusPending
	}
	if expense.ExpenseDate == "" {
		expense.ExpenseDate = time.Now().Format("2006-01-02")
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO expenses (id, person_paid, person_responsible, amount, payment_status, purpose, expense_date, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		expense.ID, expense.PersonPaid, expense.PersonResponsible, expense.Amount,
		expense.PaymentStatus, expense.Purpose, expense.ExpenseDate, expense.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}
	return nil
}

// UpdateExpense updates an existing expense by ID.
func (s *SQLiteStore) UpdateExpense(ctx context.Context, expense *models.Expense) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE expenses
		 SET person_paid = ?, person_responsible = ?, amount = ?, payment_status = ?, purpose = ?, expense_date = ?
		 WHERE id = ?`,
		expense.PersonPaid, expense.PersonResponsible, expense.Amount,
		expense.PaymentStatus, expense.Purpose, expense.ExpenseDate, expense.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update expense: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("expense %s: %w", expense.ID, storage.ErrNotFound)
	}
	return nil
}

// GetExpense retrieves an expense by ID.
func (s *SQLiteStore) GetExpense(ctx context.Context, id string) (*models.Expense, error) {
	expense := &models.Expense{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, person_paid, person_responsible, amount, payment_status, purpose, expense_date, created_at
		 FROM expenses WHERE id = ?`,
		id,
	).Scan(&expense.ID, &expense.PersonPaid, &expense.PersonResponsible, &expense.Amount,
		&expense.PaymentStatus, &expense.Purpose, &expense.ExpenseDate, &expense.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("expense %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}
	return expense, nil
}

// ListPaidExpenses returns paid expenses, optionally filtered to a month.
func (s *SQLiteStore) ListPaidExpenses(ctx context.Context, month string) ([]models.Expense, error) {
	query := `SELECT id, person_paid, person_responsible, amount, payment_status, purpose, expense_date, created_at
		 FROM expenses WHERE payment_status = ?`
	args := []interface{}{models.PaymentStatusPaid}
	if month != "" {
		query += " AND expense_date LIKE ? || '%'"
		args = append(args, month)
	}
	query += " ORDER BY expense_date, id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list paid expenses: %w", err)
	}
	defer rows.Close()

	var expenses []models.Expense
	for rows.Next() {
		var expense models.Expense
		if err := rows.Scan(&expense.ID, &expense.PersonPaid, &expense.PersonResponsible, &expense.Amount,
			&expense.PaymentStatus, &expense.Purpose, &expense.ExpenseDate, &expense.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, expense)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}
	return expenses, nil
}
