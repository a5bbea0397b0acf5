package entities

import (
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventTypeCreated EventType = "weather.created"
	EventTypeUpdated EventType = "weather.updated"
	EventTypeDeleted EventType = "weather.deleted"
)

// WeatherEvent describes a committed change to a record. Record is nil for
// deletions.
type WeatherEvent struct {
	ID         string         `json:"id"`
	Type       EventType      `json:"type"`
	RecordID   int64          `json:"record_id"`
	City       string         `json:"city,omitempty"`
	Record     *WeatherRecord `json:"record,omitempty"`
	OccurredAt time.Time      `json:"occurred_at"`
}

func NewWeatherEvent(eventType EventType, recordID int64, record *WeatherRecord) WeatherEvent {
	event := WeatherEvent{
		ID:         uuid.New().String(),
		Type:       eventType,
		RecordID:   recordID,
		Record:     record,
		OccurredAt: time.Now().UTC(),
	}
	if record != nil {
		event.City = record.City
	}
	return event
}
