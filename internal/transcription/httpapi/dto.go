package httpapi

import (
	"time"

	"github.com/deepscribes/transcription-platform/internal/artifacts"
	"github.com/deepscribes/transcription-platform/internal/transcription/models"
)

type CreateTranscriptionRequest struct {
	ID                  string        `json:"id,omitempty"`
	Title               string        `json:"title"`
	Status              models.Status `json:"status,omitempty"`
	UserID              string        `json:"user_id"`
	TranscriptionLength float64       `json:"transcription_length,omitempty"`
	AudioExtension      string        `json:"audio_extension,omitempty"`
	RefinementPrompt    string        `json:"refinement_prompt,omitempty"`
}

type TranscriptionResponse struct {
	ID                  string        `json:"id"`
	Title               string        `json:"title"`
	Status              models.Status `json:"status"`
	CreatedAt           time.Time     `json:"created_at"`
	UserID              string        `json:"user_id"`
	TranscriptionLength float64       `json:"transcription_length"`
	AudioExtension      string        `json:"audio_extension,omitempty"`
	RefinementPrompt    string        `json:"refinement_prompt,omitempty"`
}

type UpdateTitleRequest struct {
	Title string `json:"title"`
}

type UpdateStatusRequest struct {
	Status models.Status `json:"status"`
}

type UpdateDurationRequest struct {
	Seconds float64 `json:"seconds"`
}

type UpdatePromptRequest struct {
	Prompt string `json:"prompt"`
}

type ReferenceRequest struct {
	Stage     artifacts.Stage     `json:"stage"`
	Direction artifacts.Direction `json:"direction"`
	ChunkID   string              `json:"chunk_id,omitempty"`
}

func toTranscriptionResponse(t *models.Transcription) TranscriptionResponse {
	return TranscriptionResponse{
		ID:                  t.ID,
		Title:               t.Title,
		Status:              t.Status,
		CreatedAt:           t.CreatedAt,
		UserID:              t.UserID,
		TranscriptionLength: t.TranscriptionLength,
		AudioExtension:      t.AudioExtension,
		RefinementPrompt:    t.RefinementPrompt,
	}
}
