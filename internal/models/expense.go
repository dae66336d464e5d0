package models

// Payment status values for an expense.
const (
	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
)

// Expense represents a payment one team member made, possibly on behalf of
// another member. Only paid expenses whose payer and responsible party differ
// contribute to the balance matrix.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string `json:"id"`

	// PersonPaid is the member who actually paid.
	PersonPaid string `json:"person_paid"`

	// PersonResponsible is the member the payment was made on behalf of.
	// Empty when the payer paid for themselves.
	PersonResponsible string `json:"person_responsible"`

	// Amount is the expense amount.
	Amount float64 `json:"amount"`

	// PaymentStatus is either "pending" or "paid".
	PaymentStatus string `json:"payment_status"`

	// Purpose is a human-readable description of the expense.
	Purpose string `json:"purpose"`

	// ExpenseDate is the date of the expense in YYYY-MM-DD format.
	ExpenseDate string `json:"expense_date"`

	// CreatedAt is the Unix timestamp when the expense was recorded.
	CreatedAt int64 `json:"created_at"`
}

// IsShared reports whether the expense carries a payer/responsible-party
// imbalance worth settling.
func (e *Expense) IsShared() bool {
	return e.PersonPaid != "" && e.PersonResponsible != "" && e.PersonPaid != e.PersonResponsible
}
