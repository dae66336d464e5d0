// Package service implements the settlement engine's use cases on top of the
// storage layer. Every balance structure is rebuilt per call from the source
// tables; services hold no aggregate state between requests.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"teamledger/internal/calculator"
	"teamledger/internal/ledger"
	"teamledger/internal/metrics"
	"teamledger/internal/models"
	"teamledger/internal/storage"
)

const topRankCount = 3

// SettlementForm is a user-approved suggestion submitted for persistence.
type SettlementForm struct {
	FromPerson string  `json:"from_person"`
	ToPerson   string  `json:"to_person"`
	Amount     float64 `json:"amount"`
	Purpose    string  `json:"purpose"`
	Notes      string  `json:"notes"`
}

// BalanceService serves the read path: balance overviews and settlement
// suggestions, plus bulk acceptance of approved suggestions.
type BalanceService struct {
	store           storage.Store
	adapter         *ledger.Adapter
	suggestionLimit int
}

// NewBalanceService creates a BalanceService. suggestionLimit caps the number
// of suggestions embedded in an overview; <= 0 means uncapped.
func NewBalanceService(store storage.Store, adapter *ledger.Adapter, suggestionLimit int) *BalanceService {
	return &BalanceService{store: store, adapter: adapter, suggestionLimit: suggestionLimit}
}

// TeamBalanceOverview recomputes the full balance picture for the given month
// (empty month means all time). Each call reads a fresh snapshot; nothing is
// cached or mutated.
func (s *BalanceService) TeamBalanceOverview(ctx context.Context, month string) (*models.TeamBalanceOverview, error) {
	start := time.Now()

	records, err := s.adapter.ImbalanceRecords(ctx, month)
	if err != nil {
		slog.Error("TeamBalanceOverview failed", "month", month, "error", err)
		return nil, fmt.Errorf("load imbalance records: %w", err)
	}

	matrix := calculator.BuildBalanceMatrix(records)
	balances := calculator.CalculatePositions(matrix)
	suggestions := calculator.DirectSettlements(matrix, balances, s.suggestionLimit)

	metrics.OverviewComputations.Inc()
	metrics.OverviewDuration.Observe(time.Since(start).Seconds())
	slog.Info("TeamBalanceOverview computed",
		"month", month,
		"records", len(records),
		"people", len(balances),
		"suggestions", len(suggestions),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return &models.TeamBalanceOverview{
		BalanceMatrix:        matrix,
		PersonBalances:       balances,
		TopCreditors:         calculator.TopCreditors(balances, topRankCount),
		TopDebtors:           calculator.TopDebtors(balances, topRankCount),
		SuggestedSettlements: suggestions,
		LastUpdated:          time.Now(),
	}, nil
}

// GenerateSettlementSuggestions returns proposed transfers for the month.
// With optimal=false the suggestions clear direct pairwise debts only; with
// optimal=true they net out positions greedily, which may propose transfers
// between members with no direct debt. Suggestions never mutate state.
func (s *BalanceService) GenerateSettlementSuggestions(ctx context.Context, month string, optimal bool) ([]models.SettlementSuggestion, error) {
	records, err := s.adapter.ImbalanceRecords(ctx, month)
	if err != nil {
		slog.Error("GenerateSettlementSuggestions failed", "month", month, "error", err)
		return nil, fmt.Errorf("load imbalance records: %w", err)
	}

	matrix := calculator.BuildBalanceMatrix(records)
	balances := calculator.CalculatePositions(matrix)

	var suggestions []models.SettlementSuggestion
	if optimal {
		suggestions = calculator.SimplifyDebts(balances, s.suggestionLimit)
	} else {
		suggestions = calculator.DirectSettlements(matrix, balances, s.suggestionLimit)
	}

	slog.Info("Settlement suggestions generated",
		"month", month,
		"optimal", optimal,
		"count", len(suggestions),
	)
	return suggestions, nil
}

// CreateBulkSettlements persists user-approved suggestions as pending
// settlements. No dedup check is performed; that responsibility stays with
// the approving caller. Fails fast on the first storage error.
func (s *BalanceService) CreateBulkSettlements(ctx context.Context, forms []SettlementForm) error {
	for i, form := range forms {
		if form.FromPerson == "" || form.ToPerson == "" {
			return fmt.Errorf("settlement %d: from and to are required", i)
		}
		if form.FromPerson == form.ToPerson {
			return fmt.Errorf("settlement %d: from and to must differ", i)
		}
		if form.Amount <= 0 {
			return fmt.Errorf("settlement %d: amount must be positive", i)
		}

		settlement := &models.Settlement{
			FromPerson: form.FromPerson,
			ToPerson:   form.ToPerson,
			Amount:     calculator.Round2(form.Amount),
			Purpose:    form.Purpose,
			Notes:      form.Notes,
			Status:     models.SettlementStatusPending,
		}
		if err := s.store.CreateSettlement(ctx, settlement); err != nil {
			slog.Error("CreateBulkSettlements failed", "index", i, "error", err)
			return fmt.Errorf("create settlement %d: %w", i, err)
		}
	}

	slog.Info("Bulk settlements created", "count", len(forms))
	return nil
}

// ListSettlements returns persisted settlements, optionally for one month.
func (s *BalanceService) ListSettlements(ctx context.Context, month string) ([]*models.Settlement, error) {
	settlements, err := s.store.ListSettlements(ctx, month)
	if err != nil {
		slog.Error("ListSettlements failed", "month", month, "error", err)
		return nil, err
	}
	return settlements, nil
}

// CompleteSettlement transitions a pending settlement to completed.
func (s *BalanceService) CompleteSettlement(ctx context.Context, id, settlementDate string) error {
	if err := s.store.CompleteSettlement(ctx, id, settlementDate); err != nil {
		slog.Error("CompleteSettlement failed", "settlement_id", id, "error", err)
		return err
	}
	slog.Info("Settlement completed", "settlement_id", id)
	return nil
}
