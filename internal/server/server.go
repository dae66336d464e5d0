// Package server exposes the settlement engine over HTTP.
package server

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"teamledger/internal/service"
	"teamledger/internal/storage"
)

// Server bundles the services behind the HTTP handlers.
type Server struct {
	balances *service.BalanceService
	ledger   *service.LedgerService
	statuses *service.StatusService
}

// New creates a Server over the given services.
func New(balances *service.BalanceService, ledger *service.LedgerService, statuses *service.StatusService) *Server {
	return &Server{balances: balances, ledger: ledger, statuses: statuses}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api/v1")
	{
		api.GET("/balances/overview", s.GetBalanceOverview)

		api.GET("/settlements", s.ListSettlements)
		api.GET("/settlements/suggestions", s.GetSettlementSuggestions)
		api.POST("/settlements/bulk", s.CreateBulkSettlements)
		api.PUT("/settlements/:id/complete", s.CompleteSettlement)

		api.GET("/settlements/status", s.GetSettlementStatus)
		api.PUT("/settlements/status", s.UpdateSettlementStatus)
		api.PUT("/settlements/status/bulk", s.BulkUpdateSettlementStatus)

		api.POST("/expenses", s.CreateExpense)
		api.PUT("/expenses/:id", s.UpdateExpense)
		api.POST("/subscriptions", s.CreateSubscription)
		api.PUT("/subscriptions/:id", s.UpdateSubscription)
	}

	return router
}

// requestLogger logs every request with method, path, status and duration.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		slog.Info("Request completed",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
}

// abortWithError maps service/storage errors to HTTP responses.
func abortWithError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, storage.ErrNotFound) {
		status = http.StatusNotFound
	}
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}
