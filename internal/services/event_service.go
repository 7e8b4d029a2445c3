package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/SergioSanchezIglesias/retiros-backend/internal/apperrors"
	"github.com/SergioSanchezIglesias/retiros-backend/internal/models"
)

// eventService handles event (retreat) business logic.
type eventService struct {
	db *gorm.DB
}

// NewEventService creates a new EventServicer.
func NewEventService(db *gorm.DB) EventServicer {
	return &eventService{db: db}
}

func validateEventFields(name, description string, startDate, endDate time.Time, location string, participants int) error {
	if name == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "event name is required")
	}
	if len(name) > 200 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "event name must be at most 200 characters")
	}
	if len(description) > 500 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "event description must be at most 500 characters")
	}
	if len(location) > 200 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "event location must be at most 200 characters")
	}
	if startDate.IsZero() || endDate.IsZero() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "start and end dates are required")
	}
	if !endDate.After(startDate) {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "end date must be after start date")
	}
	if participants < 1 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "participants must be at least 1")
	}
	return nil
}

// CreateEvent creates a new event in the planning state.
func (s *eventService) CreateEvent(name, description string, startDate, endDate time.Time, location string, participants int) (*models.Event, error) {
	if err := validateEventFields(name, description, startDate, endDate, location, participants); err != nil {
		return nil, err
	}

	event := &models.Event{
		Name:         name,
		Description:  description,
		StartDate:    startDate,
		EndDate:      endDate,
		Location:     location,
		Participants: participants,
		State:        models.EventStatePlanning,
	}

	if err := s.db.Create(event).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}

	return event, nil
}

// GetEvents retrieves all events, most recent start date first.
func (s *eventService) GetEvents() ([]models.Event, error) {
	var events []models.Event
	if err := s.db.Order("start_date DESC").Find(&events).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}
	return events, nil
}

// GetEventsByState retrieves all events in one lifecycle state.
func (s *eventService) GetEventsByState(state models.EventState) ([]models.Event, error) {
	if !state.Valid() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "state must be planning, active or finished")
	}

	var events []models.Event
	if err := s.db.Where("state = ?", state).Order("start_date DESC").Find(&events).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}
	return events, nil
}

// SearchEventsByName retrieves events whose name contains the query,
// case-insensitively.
func (s *eventService) SearchEventsByName(query string) ([]models.Event, error) {
	if query == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "search query is required")
	}

	var events []models.Event
	if err := s.db.Where("LOWER(name) LIKE LOWER(?)", "%"+query+"%").
		Order("start_date DESC").Find(&events).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}
	return events, nil
}

// GetEventByID retrieves an event by ID
func (s *eventService) GetEventByID(id string) (*models.Event, error) {
	var event models.Event
	if err := s.db.Where("id = ?", id).First(&event).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}
	return &event, nil
}

// UpdateEvent replaces the descriptive fields of an existing event,
// re-validating the same constraints as create. The lifecycle state is not
// touched here; SetEventState owns that write.
func (s *eventService) UpdateEvent(id, name, description string, startDate, endDate time.Time, location string, participants int) (*models.Event, error) {
	if err := validateEventFields(name, description, startDate, endDate, location, participants); err != nil {
		return nil, err
	}

	event, err := s.GetEventByID(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"name":         name,
		"description":  description,
		"start_date":   startDate,
		"end_date":     endDate,
		"location":     location,
		"participants": participants,
	}
	if err := s.db.Model(event).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}

	return event, nil
}

// SetEventState performs an explicit state transition. All three states are
// mutually reachable; the only guard is enum membership.
func (s *eventService) SetEventState(id string, state models.EventState) (*models.Event, error) {
	if !state.Valid() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "state must be planning, active or finished")
	}

	event, err := s.GetEventByID(id)
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(event).Update("state", state).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}

	return event, nil
}

// DeleteEvent deletes an event and all transactions it owns as one atomic
// unit. Concurrent readers never observe the event gone with its
// transactions still present, or the reverse.
func (s *eventService) DeleteEvent(id string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		event := &models.Event{}
		if err := tx.Where("id = ?", id).First(event).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrEventNotFound
			}
			return apperrors.Wrap(apperrors.ErrStorage, err)
		}

		if err := tx.Where("event_id = ?", id).Delete(&models.Transaction{}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrStorage, err)
		}

		if err := tx.Delete(event).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrStorage, err)
		}
		return nil
	})
}
