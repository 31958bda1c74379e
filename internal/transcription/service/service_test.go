package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/deepscribes/transcription-platform/internal/transcription/models"
	"github.com/deepscribes/transcription-platform/internal/transcription/repository"
)

func TestCreate_SetsInvariantsAndPersists(t *testing.T) {
	ctx := context.Background()
	st := new(StoreMock)
	svc := New(st)

	fixedTime := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	svc.idGen = func() string { return "11111111-1111-1111-1111-111111111111" }
	svc.clock = func() time.Time { return fixedTime }

	var persisted *models.Transcription
	st.On("Create", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			persisted = args.Get(1).(*models.Transcription)
		}).
		Return(nil).
		Once()

	got, err := svc.Create(ctx, models.CreateTranscriptionInput{
		Title:  "Board Meeting",
		UserID: "u1",
	})
	require.NoError(t, err)
	require.Equal(t, persisted, got)

	assert.Equal(t, "11111111-1111-1111-1111-111111111111", got.ID)
	assert.Equal(t, models.ProcessingStatus, got.Status)
	assert.Equal(t, fixedTime, got.CreatedAt)
	assert.Equal(t, "u1", got.UserID)
	assert.Zero(t, got.TranscriptionLength)
	st.AssertExpectations(t)
}

func TestCreate_GeneratedIDsAreDistinct(t *testing.T) {
	ctx := context.Background()
	st := new(StoreMock)
	svc := New(st)

	st.On("Create", mock.Anything, mock.Anything).Return(nil).Twice()

	first, err := svc.Create(ctx, models.CreateTranscriptionInput{Title: "a", UserID: "u1"})
	require.NoError(t, err)
	second, err := svc.Create(ctx, models.CreateTranscriptionInput{Title: "b", UserID: "u1"})
	require.NoError(t, err)

	assert.NotEmpty(t, first.ID)
	assert.NotEmpty(t, second.ID)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestCreate_CallerSuppliedFieldsKept(t *testing.T) {
	ctx := context.Background()
	st := new(StoreMock)
	svc := New(st)

	st.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

	got, err := svc.Create(ctx, models.CreateTranscriptionInput{
		ID:                  "t-custom",
		Title:               "Board Meeting",
		Status:              models.ReadyStatus,
		UserID:              "u1",
		TranscriptionLength: 42,
		AudioExtension:      "mp3",
		RefinementPrompt:    "be formal",
	})
	require.NoError(t, err)
	assert.Equal(t, "t-custom", got.ID)
	assert.Equal(t, models.ReadyStatus, got.Status)
	assert.Equal(t, 42.0, got.TranscriptionLength)
	assert.Equal(t, "mp3", got.AudioExtension)
	assert.Equal(t, "be formal", got.RefinementPrompt)
}

func TestCreate_InvalidArguments(t *testing.T) {
	ctx := context.Background()

	cases := []struct {
		name  string
		input models.CreateTranscriptionInput
	}{
		{name: "empty title", input: models.CreateTranscriptionInput{UserID: "u1"}},
		{name: "empty user", input: models.CreateTranscriptionInput{Title: "x"}},
		{name: "negative length", input: models.CreateTranscriptionInput{Title: "x", UserID: "u1", TranscriptionLength: -1}},
		{name: "status outside configured set", input: models.CreateTranscriptionInput{Title: "x", UserID: "u1", Status: "archived"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			st := new(StoreMock)
			svc := New(st)

			got, err := svc.Create(ctx, tc.input)
			require.ErrorIs(t, err, models.ErrInvalidArgument)
			require.Nil(t, got)
			st.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestCreate_ConfigurableStatusSet(t *testing.T) {
	ctx := context.Background()
	st := new(StoreMock)
	svc := New(st, WithStatusSet(
		models.NewStatusSet("queued", models.ReadyStatus),
		"queued",
	))

	st.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

	got, err := svc.Create(ctx, models.CreateTranscriptionInput{Title: "x", UserID: "u1"})
	require.NoError(t, err)
	assert.Equal(t, models.Status("queued"), got.Status)

	// The default production set no longer applies.
	_, err = svc.Create(ctx, models.CreateTranscriptionInput{Title: "x", UserID: "u1", Status: models.ProcessingStatus})
	require.ErrorIs(t, err, models.ErrInvalidArgument)
}

func TestUpdateStatus_RejectsUnknownStatus(t *testing.T) {
	st := new(StoreMock)
	svc := New(st)

	err := svc.UpdateStatus(context.Background(), "t1", "bogus")
	require.ErrorIs(t, err, models.ErrInvalidArgument)
	st.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateStatus_PublishesEvent(t *testing.T) {
	ctx := context.Background()
	st := new(StoreMock)
	pub := new(PublisherMock)
	svc := New(st, WithPublisher(pub))

	st.On("UpdateStatus", mock.Anything, "t1", models.ReadyStatus).Return(nil).Once()

	var payload []byte
	pub.On("Publish", mock.Anything, "t1", mock.Anything).
		Run(func(args mock.Arguments) {
			payload = args.Get(2).([]byte)
		}).
		Return(nil).
		Once()

	require.NoError(t, svc.UpdateStatus(ctx, "t1", models.ReadyStatus))

	var event struct {
		TranscriptionID string        `json:"transcription_id"`
		To              models.Status `json:"to"`
	}
	require.NoError(t, json.Unmarshal(payload, &event))
	assert.Equal(t, "t1", event.TranscriptionID)
	assert.Equal(t, models.ReadyStatus, event.To)
	st.AssertExpectations(t)
	pub.AssertExpectations(t)
}

func TestUpdateStatus_PublishFailureDoesNotFailUpdate(t *testing.T) {
	st := new(StoreMock)
	pub := new(PublisherMock)
	svc := New(st, WithPublisher(pub))

	st.On("UpdateStatus", mock.Anything, "t1", models.ErrorStatus).Return(nil).Once()
	pub.On("Publish", mock.Anything, "t1", mock.Anything).Return(errors.New("broker down")).Once()

	require.NoError(t, svc.UpdateStatus(context.Background(), "t1", models.ErrorStatus))
}

func TestUpdateDuration_NegativeRejected(t *testing.T) {
	st := new(StoreMock)
	svc := New(st)

	err := svc.UpdateDuration(context.Background(), "t1", -0.5)
	require.ErrorIs(t, err, models.ErrInvalidArgument)
	st.AssertNotCalled(t, "UpdateDuration", mock.Anything, mock.Anything, mock.Anything)
}

func TestGet_RepoErrorPropagated(t *testing.T) {
	st := new(StoreMock)
	svc := New(st)

	st.On("GetByID", mock.Anything, "t1").Return(nil, models.ErrStoreUnavailable).Once()

	got, err := svc.Get(context.Background(), "t1")
	require.ErrorIs(t, err, models.ErrStoreUnavailable)
	require.Nil(t, got)
}

// Scenario over the in-memory repository: create, update duration, update
// status, fetch. Targeted updates must leave the other fields alone.
func TestScenario_CreateUpdateFetch(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryRepository()
	svc := New(repo)

	created, err := svc.Create(ctx, models.CreateTranscriptionInput{
		Title:  "Board Meeting",
		Status: models.ProcessingStatus,
		UserID: "u1",
	})
	require.NoError(t, err)

	require.NoError(t, svc.UpdateDuration(ctx, created.ID, 92.45))
	require.NoError(t, svc.UpdateStatus(ctx, created.ID, models.ReadyStatus))

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Board Meeting", got.Title)
	assert.Equal(t, models.ReadyStatus, got.Status)
	assert.Equal(t, 92.45, got.TranscriptionLength)
	assert.Equal(t, "u1", got.UserID)
	assert.Equal(t, created.CreatedAt, got.CreatedAt)
	assert.Equal(t, created.ID, got.ID)
}

func TestScenario_RoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryRepository()
	svc := New(repo)

	created, err := svc.Create(ctx, models.CreateTranscriptionInput{
		Title:          "Standup",
		UserID:         "u1",
		AudioExtension: "wav",
	})
	require.NoError(t, err)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, created, got)
}

func TestScenario_ListingCompleteness(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryRepository()
	svc := New(repo)

	for i := 0; i < 3; i++ {
		_, err := svc.Create(ctx, models.CreateTranscriptionInput{Title: "rec", UserID: "u1"})
		require.NoError(t, err)
	}

	mine, err := svc.ListByUser(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, mine, 3)

	other, err := svc.ListByUser(ctx, "u2")
	require.NoError(t, err)
	require.NotNil(t, other)
	assert.Empty(t, other)
}

func TestScenario_NotFoundRead(t *testing.T) {
	svc := New(repository.NewMemoryRepository())

	got, err := svc.Get(context.Background(), "does-not-exist")
	require.ErrorIs(t, err, models.ErrNotFound)
	require.Nil(t, got)
}

func TestScenario_BulkUserDeletion(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryRepository()
	svc := New(repo)

	for i := 0; i < 2; i++ {
		_, err := svc.Create(ctx, models.CreateTranscriptionInput{Title: "rec", UserID: "u1"})
		require.NoError(t, err)
	}
	keep, err := svc.Create(ctx, models.CreateTranscriptionInput{Title: "rec", UserID: "u2"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteAllForUser(ctx, "u1"))

	gone, err := svc.ListByUser(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, gone)

	// Other users' records survive the wipe.
	still, err := svc.Get(ctx, keep.ID)
	require.NoError(t, err)
	assert.Equal(t, "u2", still.UserID)
}

func TestScenario_TargetedUpdateIsolation(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryRepository()
	svc := New(repo)

	created, err := svc.Create(ctx, models.CreateTranscriptionInput{
		Title:               "Original",
		UserID:              "u1",
		TranscriptionLength: 10,
	})
	require.NoError(t, err)

	require.NoError(t, svc.UpdateTitle(ctx, created.ID, "Renamed"))

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Title)
	assert.Equal(t, created.Status, got.Status)
	assert.Equal(t, created.CreatedAt, got.CreatedAt)
	assert.Equal(t, created.UserID, got.UserID)
	assert.Equal(t, created.TranscriptionLength, got.TranscriptionLength)
}
