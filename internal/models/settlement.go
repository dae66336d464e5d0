package models

// Settlement status values.
const (
	SettlementStatusPending   = "pending"
	SettlementStatusCompleted = "completed"
)

// Settlement represents a persisted money-transfer obligation between two
// members. It is the only persisted entity of the settlement engine; all
// balance structures are recomputed from the expense/subscription sources.
//
// At most one of RelatedExpenseID / RelatedSubscriptionID is set, and for a
// given non-empty source id at most one settlement row exists. The storage
// layer enforces this with partial unique indexes.
type Settlement struct {
	// ID is the unique identifier for the settlement (UUID format).
	ID string `json:"id"`

	// FromPerson is the debtor who has to pay.
	FromPerson string `json:"from_person"`

	// ToPerson is the creditor being paid.
	ToPerson string `json:"to_person"`

	// Amount is the transfer amount.
	Amount float64 `json:"amount"`

	// Purpose describes what the settlement covers.
	Purpose string `json:"purpose"`

	// Status is "pending" until a user explicitly completes the transfer.
	Status string `json:"status"`

	// RelatedExpenseID links an auto-generated settlement to its source
	// expense. Empty for manually created settlements.
	RelatedExpenseID string `json:"related_expense_id,omitempty"`

	// RelatedSubscriptionID links an auto-generated settlement to its source
	// subscription. Empty for manually created settlements.
	RelatedSubscriptionID string `json:"related_subscription_id,omitempty"`

	// Notes is free-form text; auto-generated settlements are marked here.
	Notes string `json:"notes,omitempty"`

	// CreatedAt is the Unix timestamp when the settlement was recorded.
	CreatedAt int64 `json:"created_at"`

	// SettlementDate is the date the transfer was completed (YYYY-MM-DD).
	// Empty while the settlement is pending.
	SettlementDate string `json:"settlement_date,omitempty"`
}
