package models

import "time"

// Source types for an imbalance record.
const (
	SourceTypeExpense      = "expense"
	SourceTypeSubscription = "subscription"
)

// ImbalanceRecord is a derived fact that one member paid for something on
// behalf of another. Records are rebuilt from the expense and subscription
// sources on every balance query and are never persisted.
//
// Invariant: Payer != ResponsibleParty. Records where the two match carry no
// imbalance and are excluded by the ledger adapter.
type ImbalanceRecord struct {
	// SourceType is "expense" or "subscription".
	SourceType string `json:"source_type"`

	// SourceID is the id of the originating expense or subscription.
	SourceID string `json:"source_id"`

	// Payer is the member who paid (the creditor side).
	Payer string `json:"payer"`

	// ResponsibleParty is the member the payment was for (the debtor side).
	ResponsibleParty string `json:"responsible_party"`

	// Amount is the raw source amount.
	Amount float64 `json:"amount"`

	// PeriodEquivalentAmount is the amount normalized to a monthly basis.
	// Equal to Amount for expenses; Amount divided by the cycle length in
	// months for subscriptions.
	PeriodEquivalentAmount float64 `json:"period_equivalent_amount"`

	// Description is a human-readable label for reporting.
	Description string `json:"description"`
}

// PersonBalance is one member's aggregate position across all pairwise debts.
// Recomputed wholesale on every query, never incrementally mutated.
type PersonBalance struct {
	// Person is the member name.
	Person string `json:"person"`

	// TotalPaidForOthers is the sum of what this member owes others
	// (their outgoing edges in the balance matrix).
	TotalPaidForOthers float64 `json:"total_paid_for_others"`

	// TotalOwedToOthers is the sum of what others owe this member
	// (their incoming edges in the balance matrix).
	TotalOwedToOthers float64 `json:"total_owed_to_others"`

	// NetBalance = TotalOwedToOthers - TotalPaidForOthers.
	// Positive means net creditor, negative means net debtor.
	NetBalance float64 `json:"net_balance"`

	// CreditorRank is the 1-based position when sorting descending by
	// NetBalance (rank 1 is the largest creditor).
	CreditorRank int `json:"creditor_rank"`

	// DebtorRank is the 1-based position when sorting ascending by
	// NetBalance (rank 1 is the largest debtor).
	DebtorRank int `json:"debtor_rank"`
}

// SettlementSuggestion is a proposed transfer that would clear an outstanding
// debt. Suggestions are advisory only; nothing is persisted until a caller
// converts them into settlements.
type SettlementSuggestion struct {
	ID         string  `json:"id"`
	FromPerson string  `json:"from_person"`
	ToPerson   string  `json:"to_person"`
	Amount     float64 `json:"amount"`
	Purpose    string  `json:"purpose"`

	// ConfidenceScore is 0-100. Direct-edge suggestions carry a constant
	// high score; it is not derived from data quality.
	ConfidenceScore int `json:"confidence_score"`

	CreatedAt time.Time `json:"created_at"`
}

// TeamBalanceOverview is the full read-path result for reporting callers.
type TeamBalanceOverview struct {
	// BalanceMatrix maps debtor -> creditor -> amount owed.
	BalanceMatrix map[string]map[string]float64 `json:"balance_matrix"`

	PersonBalances       []PersonBalance        `json:"person_balances"`
	TopCreditors         []PersonBalance        `json:"top_creditors"`
	TopDebtors           []PersonBalance        `json:"top_debtors"`
	SuggestedSettlements []SettlementSuggestion `json:"suggested_settlements"`
	LastUpdated          time.Time              `json:"last_updated"`
}
