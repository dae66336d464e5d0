package models

// Renewal cycle values for a subscription.
const (
	CycleMonthly   = "monthly"
	CycleQuarterly = "quarterly"
	CycleYearly    = "yearly"
)

// Subscription represents a recurring service paid by one member but used by
// another. Active subscriptions whose payer and user differ contribute a
// monthly-equivalent amount to the balance matrix.
type Subscription struct {
	// ID is the unique identifier for the subscription (UUID format).
	ID string `json:"id"`

	// PaidBy is the member whose card the subscription renews on.
	PaidBy string `json:"paid_by"`

	// UsedBy is the member who actually uses the service.
	UsedBy string `json:"used_by"`

	// Amount is the raw amount charged per renewal cycle.
	Amount float64 `json:"amount"`

	// RenewalCycle is one of "monthly", "quarterly" or "yearly".
	RenewalCycle string `json:"renewal_cycle"`

	// Platform is the service name (e.g. "Netflix", "Figma").
	Platform string `json:"platform"`

	// PlanType is the subscribed plan (e.g. "Premium").
	PlanType string `json:"plan_type"`

	// IsActive reports whether the subscription is currently renewing.
	IsActive bool `json:"is_active"`

	// CreatedAt is the Unix timestamp when the subscription was recorded.
	CreatedAt int64 `json:"created_at"`
}

// IsShared reports whether the subscription carries a payer/user imbalance
// worth settling.
func (s *Subscription) IsShared() bool {
	return s.PaidBy != "" && s.UsedBy != "" && s.PaidBy != s.UsedBy
}

// CycleMonths returns the number of months covered by one renewal charge.
// Unknown cycles are treated as monthly.
func CycleMonths(cycle string) float64 {
	switch cycle {
	case CycleQuarterly:
		return 3
	case CycleYearly:
		return 12
	default:
		return 1
	}
}
