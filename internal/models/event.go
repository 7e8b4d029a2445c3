package models

import "time"

// EventState is the lifecycle state of a retreat.
type EventState string

const (
	EventStatePlanning EventState = "planning"
	EventStateActive   EventState = "active"
	EventStateFinished EventState = "finished"
)

// Valid reports whether the state is one of the known values.
func (s EventState) Valid() bool {
	switch s {
	case EventStatePlanning, EventStateActive, EventStateFinished:
		return true
	}
	return false
}

// Event represents a retreat: a time-boxed occasion whose finances are
// tracked as one unit. An event exclusively owns its transactions; deleting
// the event deletes them in the same atomic step.
type Event struct {
	Base
	Name         string     `gorm:"size:200;not null" json:"name"`
	Description  string     `gorm:"size:500" json:"description"`
	StartDate    time.Time  `gorm:"not null" json:"start_date"`
	EndDate      time.Time  `gorm:"not null" json:"end_date"`
	Location     string     `gorm:"size:200" json:"location"`
	Participants int        `gorm:"not null" json:"participants"`
	State        EventState `gorm:"size:10;not null" json:"state"`

	// Relationships
	Transactions []Transaction `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE" json:"transactions,omitempty"`
}
