package http

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/deconcierge/vitals/internal/domain/plan"
	apperrors "github.com/deconcierge/vitals/pkg/errors"
)

// Handler wires the HTTP transport to the plan assembler.
type Handler struct {
	planSvc plan.Service
	logger  *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(planSvc plan.Service, logger *slog.Logger) *Handler {
	return &Handler{
		planSvc: planSvc,
		logger:  logger.With("component", "http.handler"),
	}
}

// GeneratePlan handles the concierge intent endpoint. An empty body is a
// valid request: the assembler substitutes the default intent.
func (h *Handler) GeneratePlan(c *gin.Context) {
	var req plan.Request
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", err.Error(), err))
		return
	}

	result, err := h.planSvc.Generate(c.Request.Context(), req)
	if err != nil {
		status := http.StatusInternalServerError
		code := "plan_failed"
		if apperrors.IsCode(err, "catalog_invalid") || apperrors.IsCode(err, "catalog_unavailable") {
			status = http.StatusBadGateway
			code = "catalog_error"
		}
		abortWithError(c, NewHTTPError(status, code, err.Error(), err))
		return
	}

	c.JSON(http.StatusOK, result)
}

// Health reports liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
