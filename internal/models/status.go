package models

// MonthlySettlementStatus is the per-member, per-month settled/pending flag
// used by reporting views, uniquely keyed by (MemberName, SettlementMonth).
//
// TotalAmount and ItemCount are a projection of the live balance matrix and
// are refreshed on every monthly summary read. IsSettled is owned by the
// user: refreshes preserve whatever value was last written by an explicit
// toggle.
type MonthlySettlementStatus struct {
	// MemberName is the member this row describes.
	MemberName string `json:"member_name"`

	// SettlementMonth is the month in YYYY-MM format.
	SettlementMonth string `json:"settlement_month"`

	// IsSettled is the manually toggled settled/pending flag.
	IsSettled bool `json:"is_settled"`

	// TotalAmount is what the member owes for the month, per the live matrix.
	TotalAmount float64 `json:"total_amount"`

	// ItemCount is the number of imbalance records behind TotalAmount.
	ItemCount int `json:"item_count"`

	// LastUpdated is the Unix timestamp of the last refresh or toggle.
	LastUpdated int64 `json:"last_updated"`
}
