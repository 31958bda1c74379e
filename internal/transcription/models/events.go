package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type DomainEvent interface {
	EventID() uuid.UUID
	EventType() string
	AggregateID() string
	OccurredAt() time.Time
}

type TranscriptionStatusChanged struct {
	eventID         uuid.UUID
	transcriptionID string
	to              Status
	occurredAt      time.Time
}

func NewTranscriptionStatusChanged(transcriptionID string, to Status) *TranscriptionStatusChanged {
	return &TranscriptionStatusChanged{
		eventID:         uuid.New(),
		transcriptionID: transcriptionID,
		to:              to,
		occurredAt:      time.Now(),
	}
}

func (e *TranscriptionStatusChanged) EventID() uuid.UUID    { return e.eventID }
func (e *TranscriptionStatusChanged) EventType() string     { return "TranscriptionStatusChanged" }
func (e *TranscriptionStatusChanged) AggregateID() string   { return e.transcriptionID }
func (e *TranscriptionStatusChanged) OccurredAt() time.Time { return e.occurredAt }

func (e *TranscriptionStatusChanged) To() Status { return e.to }

func (e *TranscriptionStatusChanged) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		EventID         uuid.UUID `json:"event_id"`
		TranscriptionID string    `json:"transcription_id"`
		To              Status    `json:"to"`
		OccurredAt      time.Time `json:"occurred_at"`
	}{
		EventID:         e.eventID,
		TranscriptionID: e.transcriptionID,
		To:              e.to,
		OccurredAt:      e.occurredAt,
	})
}
