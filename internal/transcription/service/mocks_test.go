package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/deepscribes/transcription-platform/internal/transcription/models"
)

type StoreMock struct {
	mock.Mock
}

func (m *StoreMock) Create(ctx context.Context, t *models.Transcription) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *StoreMock) GetByID(ctx context.Context, id string) (*models.Transcription, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*models.Transcription), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *StoreMock) ListByUser(ctx context.Context, userID string) ([]models.Transcription, error) {
	args := m.Called(ctx, userID)
	if v := args.Get(0); v != nil {
		return v.([]models.Transcription), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *StoreMock) UpdateTitle(ctx context.Context, id, title string) error {
	args := m.Called(ctx, id, title)
	return args.Error(0)
}

func (m *StoreMock) UpdateStatus(ctx context.Context, id string, status models.Status) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *StoreMock) UpdateDuration(ctx context.Context, id string, seconds float64) error {
	args := m.Called(ctx, id, seconds)
	return args.Error(0)
}

func (m *StoreMock) UpdateRefinementPrompt(ctx context.Context, id, prompt string) error {
	args := m.Called(ctx, id, prompt)
	return args.Error(0)
}

func (m *StoreMock) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *StoreMock) DeleteAllForUser(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type PublisherMock struct {
	mock.Mock
}

func (m *PublisherMock) Publish(ctx context.Context, key string, value []byte) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}
