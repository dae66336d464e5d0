package calculator

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"teamledger/internal/models"
)

// directConfidence is the constant score attached to direct-edge suggestions.
// Direct edges come straight from the ledger, so confidence is uniformly high
// rather than derived per suggestion.
const directConfidence = 95

// simplifiedConfidence is the score for net-position suggestions, which may
// propose transfers between members with no direct debt history.
const simplifiedConfidence = 90

// DirectSettlements proposes transfers that clear direct pairwise debts.
//
// For every creditor (net balance > 0, largest first) paired with every
// debtor (net balance < 0, largest debt first), a suggestion is emitted for
// the exact matrix[debtor][creditor] edge amount when such an edge exists.
//
// This intentionally clears only direct debts: triangular cycles (A owes B,
// B owes C) produce no A->C suggestion even when net positions would allow
// one. Use SimplifyDebts for net-position clearing.
//
// At most limit suggestions are returned; limit <= 0 means no cap. Given
// unchanged inputs the suggested transfers are identical across calls.
func DirectSettlements(matrix BalanceMatrix, balances []models.PersonBalance, limit int) []models.SettlementSuggestion {
	creditors := TopCreditors(balances, len(balances))
	debtors := TopDebtors(balances, len(balances))

	var suggestions []models.SettlementSuggestion
	for _, creditor := range creditors {
		for _, debtor := range debtors {
			amount := matrix[debtor.Person][creditor.Person]
			if amount <= noise {
				continue
			}
			suggestions = append(suggestions, newSuggestion(
				debtor.Person,
				creditor.Person,
				amount,
				fmt.Sprintf("Clear outstanding balance owed to %s", creditor.Person),
				directConfidence,
			))
			if limit > 0 && len(suggestions) == limit {
				return suggestions
			}
		}
	}
	return suggestions
}

// SimplifyDebts proposes the smaller transfer set that zeroes all net
// positions, ignoring whether a direct debt exists between the matched pair.
//
// Greedy matching: repeatedly pair the largest remaining creditor with the
// largest remaining debtor for the minimum of the two outstanding amounts.
func SimplifyDebts(balances []models.PersonBalance, limit int) []models.SettlementSuggestion {
	var creditors, debtors []models.PersonBalance
	for _, b := range balances {
		switch {
		case b.NetBalance > noise:
			creditors = append(creditors, b)
		case b.NetBalance < -noise:
			debtors = append(debtors, b)
		}
	}
	sort.Slice(creditors, func(i, j int) bool {
		if creditors[i].NetBalance != creditors[j].NetBalance {
			return creditors[i].NetBalance > creditors[j].NetBalance
		}
		return creditors[i].Person < creditors[j].Person
	})
	sort.Slice(debtors, func(i, j int) bool {
		if debtors[i].NetBalance != debtors[j].NetBalance {
			return debtors[i].NetBalance < debtors[j].NetBalance
		}
		return debtors[i].Person < debtors[j].Person
	})

	remainingCredit := make(map[string]float64, len(creditors))
	remainingDebt := make(map[string]float64, len(debtors))
	for _, c := range creditors {
		remainingCredit[c.Person] = c.NetBalance
	}
	for _, d := range debtors {
		remainingDebt[d.Person] = -d.NetBalance
	}

	var suggestions []models.SettlementSuggestion
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		debtor := debtors[i].Person
		creditor := creditors[j].Person

		amount := remainingDebt[debtor]
		if remainingCredit[creditor] < amount {
			amount = remainingCredit[creditor]
		}

		if amount > noise {
			suggestions = append(suggestions, newSuggestion(
				debtor,
				creditor,
				amount,
				fmt.Sprintf("Net settlement toward %s", creditor),
				simplifiedConfidence,
			))
			if limit > 0 && len(suggestions) == limit {
				return suggestions
			}
		}

		remainingDebt[debtor] -= amount
		remainingCredit[creditor] -= amount
		if remainingDebt[debtor] < noise {
			i++
		}
		if remainingCredit[creditor] < noise {
			j++
		}
	}
	return suggestions
}

func newSuggestion(from, to string, amount float64, purpose string, confidence int) models.SettlementSuggestion {
	return models.SettlementSuggestion{
		ID:              uuid.New().String(),
		FromPerson:      from,
		ToPerson:        to,
		Amount:          Round2(amount),
		Purpose:         purpose,
		ConfidenceScore: confidence,
		CreatedAt:       time.Now(),
	}
}
