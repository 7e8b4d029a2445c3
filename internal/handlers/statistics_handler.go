package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SergioSanchezIglesias/retiros-backend/internal/apperrors"
	"github.com/SergioSanchezIglesias/retiros-backend/internal/services"
	"github.com/SergioSanchezIglesias/retiros-backend/internal/uuid"
)

// StatisticsHandler handles read-side statistics requests
type StatisticsHandler struct {
	statistics services.StatisticsServicer
}

// NewStatisticsHandler creates a new StatisticsHandler
func NewStatisticsHandler(statistics services.StatisticsServicer) *StatisticsHandler {
	return &StatisticsHandler{statistics: statistics}
}

// GetEventBalance handles the balance report for one event
func (h *StatisticsHandler) GetEventBalance(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	report, err := h.statistics.EventBalance(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"balance": report})
}

// GetGlobalBalance handles the balance report aggregated over all events
func (h *StatisticsHandler) GetGlobalBalance(c *gin.Context) {
	report, err := h.statistics.GlobalBalance()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"balance": report})
}

// GetCategoryTotals handles per-category totals, optionally restricted to
// one event via the event_id query parameter.
func (h *StatisticsHandler) GetCategoryTotals(c *gin.Context) {
	var eventID *string
	if id := c.Query("event_id"); id != "" {
		if !uuid.IsValid(id) {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid event_id"))
			return
		}
		eventID = &id
	}

	totals, err := h.statistics.CategoryTotals(eventID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"category_totals": totals})
}

// GetCrossEventStatistics handles averages over events with activity
func (h *StatisticsHandler) GetCrossEventStatistics(c *gin.Context) {
	stats, err := h.statistics.CrossEventStatistics()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"statistics": stats})
}
