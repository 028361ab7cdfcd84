package api

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"danawa-crawler/adapters"
	"danawa-crawler/internal/types"
	"danawa-crawler/report"
)

// CategoryExtractor extracts the products of one category
type CategoryExtractor interface {
	Extract(ctx context.Context, code string) (*types.CategoryResult, error)
}

// APIResponse represents the response from the API
type APIResponse struct {
	Success bool                  `json:"success"`
	Data    *types.CategoryResult `json:"data,omitempty"`
	Error   string                `json:"error,omitempty"`
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	extractor CategoryExtractor
	logger    types.Logger
	timeout   time.Duration
}

// NewHandler creates a new HTTP handler. timeout bounds a single extraction.
func NewHandler(extractor CategoryExtractor, logger types.Logger, timeout time.Duration) *Handler {
	return &Handler{
		extractor: extractor,
		logger:    logger,
		timeout:   timeout,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// ListCategories returns the known categories
func (h *Handler) ListCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": adapters.Categories()})
}

// GetProducts crawls a category and returns its report
func (h *Handler) GetProducts(c *gin.Context) {
	code := strings.TrimSpace(c.Param("code"))
	format := c.DefaultQuery("format", report.FormatJSON)

	if !report.ValidFormat(format) {
		h.sendError(c, "unsupported format: "+format, http.StatusBadRequest)
		return
	}
	if code == "" || strings.Trim(code, "0123456789") != "" {
		h.sendError(c, "category code must be numeric", http.StatusBadRequest)
		return
	}

	h.logger.Infof("API request received for category: %s", code)

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	result, err := h.extractor.Extract(ctx, code)
	if err != nil {
		h.logger.Warnf("Failed to extract category %s: %v", code, err)
		status := http.StatusBadGateway
		if errors.Is(err, context.DeadlineExceeded) {
			status = http.StatusGatewayTimeout
		}
		h.sendError(c, err.Error(), status)
		return
	}

	switch format {
	case report.FormatJSON:
		c.JSON(http.StatusOK, APIResponse{Success: true, Data: result})
	case report.FormatTable:
		c.String(http.StatusOK, report.Table(result.Products)+"\n")
	default:
		c.String(http.StatusOK, report.Text(result.Products)+"\n")
	}
}

// sendError sends an error response
func (h *Handler) sendError(c *gin.Context, message string, statusCode int) {
	c.JSON(statusCode, APIResponse{
		Success: false,
		Error:   message,
	})
}
