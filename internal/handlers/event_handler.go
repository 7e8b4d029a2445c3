package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/SergioSanchezIglesias/retiros-backend/internal/apperrors"
	"github.com/SergioSanchezIglesias/retiros-backend/internal/models"
	"github.com/SergioSanchezIglesias/retiros-backend/internal/services"
)

// EventHandler handles event-related requests
type EventHandler struct {
	events services.EventServicer
}

// NewEventHandler creates a new EventHandler
func NewEventHandler(events services.EventServicer) *EventHandler {
	return &EventHandler{events: events}
}

// EventRequest represents the request payload for creating or updating an
// event. Updates are full replacements of the descriptive fields.
type EventRequest struct {
	Name         string    `json:"name" binding:"required,max=200"`
	Description  string    `json:"description" binding:"max=500"`
	StartDate    time.Time `json:"start_date" binding:"required"`
	EndDate      time.Time `json:"end_date" binding:"required"`
	Location     string    `json:"location" binding:"max=200"`
	Participants int       `json:"participants" binding:"required,min=1"`
}

// SetEventStateRequest represents the request payload for a state transition
type SetEventStateRequest struct {
	State models.EventState `json:"state" binding:"required,event_state"`
}

// CreateEvent handles the creation of a new event
func (h *EventHandler) CreateEvent(c *gin.Context) {
	var req EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	event, err := h.events.CreateEvent(req.Name, req.Description, req.StartDate, req.EndDate, req.Location, req.Participants)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"event": event})
}

// GetEvents handles the retrieval of all events, optionally filtered by
// state or by a name search query.
func (h *EventHandler) GetEvents(c *gin.Context) {
	var events []models.Event
	var err error

	switch {
	case c.Query("search") != "":
		events, err = h.events.SearchEventsByName(c.Query("search"))
	case c.Query("state") != "":
		events, err = h.events.GetEventsByState(models.EventState(c.Query("state")))
	default:
		events, err = h.events.GetEvents()
	}
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"events": events})
}

// GetEventByID handles the retrieval of a specific event
func (h *EventHandler) GetEventByID(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	event, err := h.events.GetEventByID(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"event": event})
}

// UpdateEvent handles updating an event's descriptive fields
func (h *EventHandler) UpdateEvent(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	event, err := h.events.UpdateEvent(id, req.Name, req.Description, req.StartDate, req.EndDate, req.Location, req.Participants)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"event": event})
}

// SetEventState handles an explicit lifecycle state transition
func (h *EventHandler) SetEventState(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req SetEventStateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	event, err := h.events.SetEventState(id, req.State)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"event": event})
}

// DeleteEvent handles deleting an event and, atomically, every transaction
// it owns.
func (h *EventHandler) DeleteEvent(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.events.DeleteEvent(id); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Event deleted successfully"})
}
