package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/TermBridge/internal/logging"
	"github.com/GriffinCanCode/TermBridge/internal/monitoring"
	"github.com/GriffinCanCode/TermBridge/internal/service"
	"github.com/GriffinCanCode/TermBridge/internal/session"
	"github.com/GriffinCanCode/TermBridge/internal/shared/id"
	"github.com/GriffinCanCode/TermBridge/internal/terminal"
	"github.com/GriffinCanCode/TermBridge/internal/types"
)

// Handlers contains all HTTP handlers
type Handlers struct {
	registry *service.Registry
	sessions *session.Manager
	platform terminal.Platform
	metrics  *monitoring.Metrics
	log      *logging.Logger
}

// NewHandlers creates a new handler set
func NewHandlers(
	registry *service.Registry,
	sessions *session.Manager,
	platform terminal.Platform,
	metrics *monitoring.Metrics,
	log *logging.Logger,
) *Handlers {
	return &Handlers{
		registry: registry,
		sessions: sessions,
		platform: platform,
		metrics:  metrics,
		log:      log,
	}
}

// Root handles health check
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "online",
		"service": "TermBridge",
		"version": "0.1.0",
	})
}

// Health handles detailed health check
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"platform": string(h.platform),
		"sessions": h.sessions.Count(),
	})
}

// ListServices lists all available services
func (h *Handlers) ListServices(c *gin.Context) {
	services := h.registry.List()

	c.JSON(http.StatusOK, gin.H{
		"services": services,
		"count":    len(services),
	})
}

// ExecuteService executes a service tool
func (h *Handlers) ExecuteService(c *gin.Context) {
	var req types.ExecuteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	requestID := id.NewRequestID().String()
	appCtx := &types.Context{RequestID: &requestID}

	timer := monitoring.NewTimer(h.metrics, req.ToolID)
	result, err := h.registry.Execute(c.Request.Context(), req.ToolID, req.Params, appCtx)
	if err != nil {
		timer.Stop("error")
		h.metrics.RecordToolError(req.ToolID, "execute")
		h.log.Error("tool execution failed",
			zap.String("request_id", requestID),
			zap.String("tool_id", req.ToolID),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if result.Success {
		timer.Stop("success")
	} else {
		timer.Stop("failure")
	}
	h.metrics.SetSessionsActive(h.sessions.Count())

	c.JSON(http.StatusOK, result)
}
