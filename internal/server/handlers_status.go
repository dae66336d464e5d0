package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"teamledger/internal/service"
)

// GetSettlementStatus returns the settled/pending flag per member for a
// month. Reading reconciles the cached totals against the live matrix first.
func (s *Server) GetSettlementStatus(c *gin.Context) {
	month := c.Query("month")
	if month == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "month query parameter is required"})
		return
	}

	statuses, err := s.statuses.TeamSettlementStatus(c.Request.Context(), month)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"month": month, "statuses": statuses})
}

// UpdateSettlementStatus explicitly toggles one member's flag for a month.
func (s *Server) UpdateSettlementStatus(c *gin.Context) {
	var req struct {
		MemberName  string  `json:"member_name" binding:"required"`
		Month       string  `json:"month" binding:"required"`
		IsSettled   bool    `json:"is_settled"`
		TotalAmount float64 `json:"total_amount"`
		ItemCount   int     `json:"item_count"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := s.statuses.UpdateStatus(c.Request.Context(), req.MemberName, req.IsSettled, req.Month, req.TotalAmount, req.ItemCount); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

// BulkUpdateSettlementStatus applies several flag updates for one month.
func (s *Server) BulkUpdateSettlementStatus(c *gin.Context) {
	var req struct {
		Month   string                `json:"month" binding:"required"`
		Entries []service.StatusEntry `json:"entries" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := s.statuses.BulkUpdateStatus(c.Request.Context(), req.Entries, req.Month); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": len(req.Entries)})
}
