package http

import (
	"bytes"
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"sjsage522/pricecompare/internal/crawler"
	"sjsage522/pricecompare/logger"
	"sjsage522/pricecompare/services/comparer"
	"sjsage522/pricecompare/services/exporter"
)

// ComparisonService runs a comparison for a search term
type ComparisonService interface {
	Compare(ctx context.Context, query string) ([]crawler.Listing, bool)
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	service ComparisonService
	topN    int
}

// NewHandler creates a new HTTP handler
func NewHandler(service ComparisonService, topN int) *Handler {
	return &Handler{service: service, topN: topN}
}

// CompareResponse is the JSON body of a successful comparison
type CompareResponse struct {
	Query    string            `json:"query"`
	Count    int               `json:"count"`
	Cheapest []crawler.Listing `json:"cheapest"`
	Listings []crawler.Listing `json:"listings"`
	Summary  SummaryResponse   `json:"summary"`
}

// SummaryResponse carries price statistics over the result set
type SummaryResponse struct {
	MinPrice     float64        `json:"min_price"`
	MaxPrice     float64        `json:"max_price"`
	AveragePrice float64        `json:"average_price"`
	BySource     map[string]int `json:"by_source"`
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "pricecompare",
	})
}

// Compare handles GET /api/v1/compare?q=
func (h *Handler) Compare(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))

	listings, found := h.service.Compare(c.Request.Context(), query)
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "no products found"})
		return
	}

	summary := comparer.Summarize(listings)
	c.JSON(http.StatusOK, CompareResponse{
		Query:    query,
		Count:    len(listings),
		Cheapest: comparer.Top(listings, h.topN),
		Listings: listings,
		Summary: SummaryResponse{
			MinPrice:     summary.MinPrice,
			MaxPrice:     summary.MaxPrice,
			AveragePrice: summary.AveragePrice,
			BySource:     summary.BySource,
		},
	})
}

// Export handles GET /api/v1/compare/export?q= and returns the ranked set as CSV
func (h *Handler) Export(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))

	listings, found := h.service.Compare(c.Request.Context(), query)
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "no products found"})
		return
	}

	var buf bytes.Buffer
	if err := exporter.WriteCSV(&buf, listings); err != nil {
		logger.ForHTTP().Error().Err(err).Str("query", query).Msg("Failed to render CSV")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "export failed"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+exporter.FileName(query)+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}
