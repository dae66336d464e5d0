package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"teamledger/internal/service"
)

// GetBalanceOverview returns the recomputed team balance picture: the debt
// matrix, per-person net positions, top creditors/debtors and suggested
// settlements. Optional ?month=YYYY-MM scopes the computation.
func (s *Server) GetBalanceOverview(c *gin.Context) {
	overview, err := s.balances.TeamBalanceOverview(c.Request.Context(), c.Query("month"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, overview)
}

// GetSettlementSuggestions returns proposed transfers. ?optimal=true switches
// from direct-edge clearing to net-position netting.
func (s *Server) GetSettlementSuggestions(c *gin.Context) {
	optimal := c.Query("optimal") == "true"
	suggestions, err := s.balances.GenerateSettlementSuggestions(c.Request.Context(), c.Query("month"), optimal)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"suggestions": suggestions})
}

// CreateBulkSettlements persists user-approved suggestions as pending
// settlements.
func (s *Server) CreateBulkSettlements(c *gin.Context) {
	var req struct {
		Settlements []service.SettlementForm `json:"settlements" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := s.balances.CreateBulkSettlements(c.Request.Context(), req.Settlements); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"created": len(req.Settlements)})
}

// ListSettlements returns persisted settlements, optionally for one month.
func (s *Server) ListSettlements(c *gin.Context) {
	settlements, err := s.balances.ListSettlements(c.Request.Context(), c.Query("month"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"settlements": settlements})
}

// CompleteSettlement marks a pending settlement as completed.
func (s *Server) CompleteSettlement(c *gin.Context) {
	var req struct {
		SettlementDate string `json:"settlement_date"`
	}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	if err := s.balances.CompleteSettlement(c.Request.Context(), c.Param("id"), req.SettlementDate); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "completed"})
}
