package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/deepscribes/transcription-platform/internal/transcription/models"
	"github.com/deepscribes/transcription-platform/internal/transcription/repository"
)

// EventPublisher pushes lifecycle events to the message bus. Publication is
// best-effort and never fails the triggering operation.
type EventPublisher interface {
	Publish(ctx context.Context, key string, value []byte) error
}

type Service struct {
	repo          repository.TranscriptionRepository
	publisher     EventPublisher
	statuses      models.StatusSet
	defaultStatus models.Status
	clock         func() time.Time
	idGen         func() string
	logger        zerolog.Logger
}

type Option func(*Service)

// WithStatusSet overrides the accepted status values and the status stamped
// on creation when the caller supplies none.
func WithStatusSet(set models.StatusSet, initial models.Status) Option {
	return func(s *Service) {
		s.statuses = set
		s.defaultStatus = initial
	}
}

func WithPublisher(p EventPublisher) Option {
	return func(s *Service) { s.publisher = p }
}

func WithLogger(l zerolog.Logger) Option {
	return func(s *Service) { s.logger = l }
}

func New(repo repository.TranscriptionRepository, opts ...Option) *Service {
	s := &Service{
		repo:          repo,
		statuses:      models.DefaultStatusSet(),
		defaultStatus: models.ProcessingStatus,
		clock:         time.Now,
		idGen:         func() string { return uuid.NewString() },
		logger:        zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create builds the full record and persists it. Service owns invariants:
// generated id, createdAt stamp, zero-duration default, default status.
func (s *Service) Create(ctx context.Context, in models.CreateTranscriptionInput) (*models.Transcription, error) {
	if in.Title == "" || in.UserID == "" {
		return nil, models.ErrInvalidArgument
	}
	if in.TranscriptionLength < 0 {
		return nil, models.ErrInvalidArgument
	}

	status := in.Status
	if status == "" {
		status = s.defaultStatus
	}
	if !s.statuses.Contains(status) {
		return nil, fmt.Errorf("%w: unknown status %q", models.ErrInvalidArgument, status)
	}

	t := &models.Transcription{
		ID:                  in.ID,
		Title:               in.Title,
		Status:              status,
		CreatedAt:           s.clock().UTC(),
		UserID:              in.UserID,
		TranscriptionLength: in.TranscriptionLength,
		AudioExtension:      in.AudioExtension,
		RefinementPrompt:    in.RefinementPrompt,
	}
	if t.ID == "" {
		t.ID = s.idGen()
	}

	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// Get returns the record by id, passing domain errors (models.ErrNotFound)
// through so the transport layer can map them.
func (s *Service) Get(ctx context.Context, id string) (*models.Transcription, error) {
	if id == "" {
		return nil, models.ErrInvalidArgument
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByUser(ctx context.Context, userID string) ([]models.Transcription, error) {
	if userID == "" {
		return nil, models.ErrInvalidArgument
	}
	return s.repo.ListByUser(ctx, userID)
}

func (s *Service) UpdateTitle(ctx context.Context, id, title string) error {
	if id == "" || title == "" {
		return models.ErrInvalidArgument
	}
	return s.repo.UpdateTitle(ctx, id, title)
}

// UpdateStatus persists whatever status the caller supplies as long as it is
// in the configured set. Transition legality is pipeline policy, checked by
// callers via the domain package, not here: this call deliberately does not
// read the current record first.
func (s *Service) UpdateStatus(ctx context.Context, id string, status models.Status) error {
	if id == "" {
		return models.ErrInvalidArgument
	}
	if !s.statuses.Contains(status) {
		return fmt.Errorf("%w: unknown status %q", models.ErrInvalidArgument, status)
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return err
	}

	s.publishStatusChanged(ctx, id, status)
	return nil
}

func (s *Service) UpdateDuration(ctx context.Context, id string, seconds float64) error {
	if id == "" || seconds < 0 {
		return models.ErrInvalidArgument
	}
	return s.repo.UpdateDuration(ctx, id, seconds)
}

func (s *Service) UpdateRefinementPrompt(ctx context.Context, id, prompt string) error {
	if id == "" {
		return models.ErrInvalidArgument
	}
	return s.repo.UpdateRefinementPrompt(ctx, id, prompt)
}

// Delete is administrative/testing only.
func (s *Service) Delete(ctx context.Context, id string) error {
	if id == "" {
		return models.ErrInvalidArgument
	}
	return s.repo.Delete(ctx, id)
}

// DeleteAllForUser is administrative/testing only.
func (s *Service) DeleteAllForUser(ctx context.Context, userID string) error {
	if userID == "" {
		return models.ErrInvalidArgument
	}
	return s.repo.DeleteAllForUser(ctx, userID)
}

func (s *Service) publishStatusChanged(ctx context.Context, id string, to models.Status) {
	if s.publisher == nil {
		return
	}

	event := models.NewTranscriptionStatusChanged(id, to)
	payload, err := json.Marshal(event)
	if err != nil {
		s.logger.Error().Err(err).Str("transcription_id", id).Msg("marshal status event")
		return
	}

	if err := s.publisher.Publish(ctx, id, payload); err != nil {
		// Событие потеряно — статус уже записан, апдейт не откатываем
		s.logger.Error().Err(err).Str("transcription_id", id).Msg("publish status event")
	}
}
