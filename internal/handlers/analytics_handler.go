package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/roadscope/api/internal/analytics"
	"github.com/roadscope/api/internal/dataset"
	apierrors "github.com/roadscope/api/internal/errors"
	"github.com/roadscope/api/internal/middleware"
)

// AnalyticsHandler handles the dashboard aggregate endpoints.
type AnalyticsHandler struct {
	service analytics.Service
}

// NewAnalyticsHandler creates a new AnalyticsHandler instance.
func NewAnalyticsHandler(service analytics.Service) *AnalyticsHandler {
	return &AnalyticsHandler{
		service: service,
	}
}

// TopNRequest represents the query parameters of endpoints with a top-N
// component.
type TopNRequest struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=50"`
}

// Summary handles GET /api/v1/summary.
func (h *AnalyticsHandler) Summary(c *gin.Context) {
	summary, err := h.service.Summary(c.Request.Context())
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// Hours handles GET /api/v1/analytics/hours.
func (h *AnalyticsHandler) Hours(c *gin.Context) {
	stats, err := h.service.Hours(c.Request.Context())
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// Demographics handles GET /api/v1/analytics/demographics.
func (h *AnalyticsHandler) Demographics(c *gin.Context) {
	limit, ok := bindLimit(c)
	if !ok {
		return
	}

	stats, err := h.service.Demographics(c.Request.Context(), limit)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// Geography handles GET /api/v1/analytics/geography.
func (h *AnalyticsHandler) Geography(c *gin.Context) {
	limit, ok := bindLimit(c)
	if !ok {
		return
	}

	stats, err := h.service.Geography(c.Request.Context(), limit)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// Junctions handles GET /api/v1/analytics/junctions.
func (h *AnalyticsHandler) Junctions(c *gin.Context) {
	stats, err := h.service.Junctions(c.Request.Context())
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// Risk handles GET /api/v1/analytics/risk.
func (h *AnalyticsHandler) Risk(c *gin.Context) {
	profile, err := h.service.Risk(c.Request.Context())
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// bindLimit binds and validates the optional limit query parameter,
// responding with the appropriate error itself when binding fails.
func bindLimit(c *gin.Context) (int, bool) {
	var req TopNRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			apierrors.ValidationError(c, validationErrors)
			return 0, false
		}
		apierrors.BadRequest(c, "Invalid query parameters", nil)
		return 0, false
	}
	if req.Limit == 0 {
		req.Limit = analytics.DefaultLimit
	}
	return req.Limit, true
}

// renderError maps service and load errors onto HTTP responses. A missing
// source file is a 503 (no unified table is available, and presentation must
// refuse to proceed); corrupt or schema-mismatched data stays a 500 until
// corrected files are supplied.
func (h *AnalyticsHandler) renderError(c *gin.Context, err error) {
	log := middleware.GetLogger(c)
	if log != nil {
		log.Warn("Analytics request failed", map[string]interface{}{
			"path":  c.Request.URL.Path,
			"error": err.Error(),
		})
	}

	switch {
	case errors.Is(err, analytics.ErrInvalidLimit):
		apierrors.BadRequest(c, err.Error(), nil)
	case errors.Is(err, dataset.ErrSourceUnavailable):
		apierrors.DataUnavailable(c, "Dataset not loaded; upload source files to continue")
	default:
		apierrors.InternalServerError(c, "Failed to compute statistics", err)
	}
}
