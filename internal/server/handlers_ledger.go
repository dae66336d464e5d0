package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"teamledger/internal/models"
)

type expenseRequest struct {
	PersonPaid        string  `json:"person_paid" binding:"required"`
	PersonResponsible string  `json:"person_responsible"`
	Amount            float64 `json:"amount" binding:"required,gt=0"`
	PaymentStatus     string  `json:"payment_status"`
	Purpose           string  `json:"purpose"`
	ExpenseDate       string  `json:"expense_date"`
}

func (r *expenseRequest) toModel(id string) *models.Expense {
	return &models.Expense{
		ID:                id,
		PersonPaid:        r.PersonPaid,
		PersonResponsible: r.PersonResponsible,
		Amount:            r.Amount,
		PaymentStatus:     r.PaymentStatus,
		Purpose:           r.Purpose,
		ExpenseDate:       r.ExpenseDate,
	}
}

// CreateExpense records an expense. When it is paid on someone's behalf the
// auto-settlement writer materializes the matching obligation synchronously.
func (s *Server) CreateExpense(c *gin.Context) {
	var req expenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	expense := req.toModel("")
	if err := s.ledger.CreateExpense(c.Request.Context(), expense); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, expense)
}

// UpdateExpense updates an expense and re-runs the auto-settlement writer.
func (s *Server) UpdateExpense(c *gin.Context) {
	var req expenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	expense := req.toModel(c.Param("id"))
	if err := s.ledger.UpdateExpense(c.Request.Context(), expense); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, expense)
}

type subscriptionRequest struct {
	PaidBy       string  `json:"paid_by" binding:"required"`
	UsedBy       string  `json:"used_by"`
	Amount       float64 `json:"amount" binding:"required,gt=0"`
	RenewalCycle string  `json:"renewal_cycle" binding:"omitempty,oneof=monthly quarterly yearly"`
	Platform     string  `json:"platform"`
	PlanType     string  `json:"plan_type"`
	IsActive     bool    `json:"is_active"`
}

func (r *subscriptionRequest) toModel(id string) *models.Subscription {
	return &models.Subscription{
		ID:           id,
		PaidBy:       r.PaidBy,
		UsedBy:       r.UsedBy,
		Amount:       r.Amount,
		RenewalCycle: r.RenewalCycle,
		Platform:     r.Platform,
		PlanType:     r.PlanType,
		IsActive:     r.IsActive,
	}
}

// CreateSubscription records a subscription; shared active subscriptions get
// an auto-settlement on a monthly-equivalent basis.
func (s *Server) CreateSubscription(c *gin.Context) {
	var req subscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	subscription := req.toModel("")
	if err := s.ledger.CreateSubscription(c.Request.Context(), subscription); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, subscription)
}

// UpdateSubscription updates a subscription and re-runs the auto-settlement
// writer.
func (s *Server) UpdateSubscription(c *gin.Context) {
	var req subscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	subscription := req.toModel(c.Param("id"))
	if err := s.ledger.UpdateSubscription(c.Request.Context(), subscription); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, subscription)
}
