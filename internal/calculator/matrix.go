// Package calculator implements the balance aggregation and settlement
// suggestion algorithms. All functions are pure: they take a snapshot of
// imbalance records and return freshly built structures, so callers can run
// them per request without any shared state.
package calculator

import (
	"math"

	"teamledger/internal/models"
)

// noise is the threshold below which amounts are treated as floating point
// residue and dropped.
const noise = 0.01

// BalanceMatrix maps debtor -> creditor -> amount owed. Amounts are strictly
// positive and there are no self-edges.
type BalanceMatrix map[string]map[string]float64

// BuildBalanceMatrix folds imbalance records into a debt matrix.
//
// Each record adds its monthly-equivalent amount to
// matrix[responsible_party][payer]: the responsible party owes the payer.
// Accumulation is a plain sum, so multiple records between the same pair
// collapse into one edge and the result does not depend on input order.
//
// Precondition: records with payer == responsible party were filtered out by
// the ledger adapter. The builder does not re-validate this.
func BuildBalanceMatrix(records []models.ImbalanceRecord) BalanceMatrix {
	matrix := make(BalanceMatrix)
	for _, rec := range records {
		amount := settleableAmount(rec)
		if amount <= 0 {
			continue
		}
		if _, exists := matrix[rec.ResponsibleParty]; !exists {
			matrix[rec.ResponsibleParty] = make(map[string]float64)
		}
		matrix[rec.ResponsibleParty][rec.Payer] += amount
	}
	return matrix
}

// settleableAmount picks the amount a record contributes to the matrix:
// the monthly-equivalent amount for subscriptions, the raw amount otherwise.
func settleableAmount(rec models.ImbalanceRecord) float64 {
	if rec.SourceType == models.SourceTypeSubscription {
		return rec.PeriodEquivalentAmount
	}
	return rec.Amount
}

// Round2 rounds a monetary amount to cents.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
