package calculator

import (
	"sort"

	"teamledger/internal/models"
)

// CalculatePositions reduces a balance matrix to one signed net position per
// member and assigns creditor/debtor ranks.
//
// For a member p:
//
//	TotalOwedToOthers  = sum over all debtors d of matrix[d][p]  (others owe p)
//	TotalPaidForOthers = sum over all creditors c of matrix[p][c] (p owes others)
//	NetBalance         = TotalOwedToOthers - TotalPaidForOthers
//
// CreditorRank sorts descending by net balance, DebtorRank ascending; ties
// break name-lexicographically so output is deterministic. The returned slice
// is in creditor order (largest creditor first).
func CalculatePositions(matrix BalanceMatrix) []models.PersonBalance {
	positions := make(map[string]*models.PersonBalance)

	ensure := func(person string) *models.PersonBalance {
		if _, exists := positions[person]; !exists {
			positions[person] = &models.PersonBalance{Person: person}
		}
		return positions[person]
	}

	for debtor, creditors := range matrix {
		for creditor, amount := range creditors {
			ensure(debtor).TotalPaidForOthers += amount
			ensure(creditor).TotalOwedToOthers += amount
		}
	}

	balances := make([]models.PersonBalance, 0, len(positions))
	for _, pos := range positions {
		pos.TotalPaidForOthers = Round2(pos.TotalPaidForOthers)
		pos.TotalOwedToOthers = Round2(pos.TotalOwedToOthers)
		pos.NetBalance = Round2(pos.TotalOwedToOthers - pos.TotalPaidForOthers)
		balances = append(balances, *pos)
	}

	// Creditor order: largest net balance first.
	sort.Slice(balances, func(i, j int) bool {
		if balances[i].NetBalance != balances[j].NetBalance {
			return balances[i].NetBalance > balances[j].NetBalance
		}
		return balances[i].Person < balances[j].Person
	})
	for i := range balances {
		balances[i].CreditorRank = i + 1
	}

	// Debtor ranks come from the ascending order with the same tie-break.
	byDebt := make([]*models.PersonBalance, len(balances))
	for i := range balances {
		byDebt[i] = &balances[i]
	}
	sort.Slice(byDebt, func(i, j int) bool {
		if byDebt[i].NetBalance != byDebt[j].NetBalance {
			return byDebt[i].NetBalance < byDebt[j].NetBalance
		}
		return byDebt[i].Person < byDebt[j].Person
	})
	for i, pos := range byDebt {
		pos.DebtorRank = i + 1
	}

	return balances
}

// TopCreditors returns up to n members with positive net balances, largest
// first. The input must be in creditor order as returned by
// CalculatePositions.
func TopCreditors(balances []models.PersonBalance, n int) []models.PersonBalance {
	var top []models.PersonBalance
	for _, b := range balances {
		if b.NetBalance <= noise {
			break
		}
		top = append(top, b)
		if len(top) == n {
			break
		}
	}
	return top
}

// TopDebtors returns up to n members with negative net balances, largest debt
// first.
func TopDebtors(balances []models.PersonBalance, n int) []models.PersonBalance {
	debtors := make([]models.PersonBalance, 0, len(balances))
	for _, b := range balances {
		if b.NetBalance < -noise {
			debtors = append(debtors, b)
		}
	}
	sort.Slice(debtors, func(i, j int) bool {
		if debtors[i].NetBalance != debtors[j].NetBalance {
			return debtors[i].NetBalance < debtors[j].NetBalance
		}
		return debtors[i].Person < debtors[j].Person
	})
	if len(debtors) > n {
		debtors = debtors[:n]
	}
	return debtors
}
