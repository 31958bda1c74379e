package dynamo

import (
	"context"
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"golang.org/x/sync/errgroup"

	"github.com/deepscribes/transcription-platform/internal/transcription/models"
)

// TranscriptionUserIndex is the secondary index on userId. Kept in sync with
// the table definition in the infrastructure stack.
const TranscriptionUserIndex = "TranscriptionUserIdIndex"

type TranscriptionRepo struct {
	api   API
	store *Store[models.Transcription]
	table string
}

func NewTranscriptionRepo(api API, table string) (*TranscriptionRepo, error) {
	store, err := NewStore[models.Transcription](api, table)
	if err != nil {
		return nil, err
	}
	return &TranscriptionRepo{api: api, store: store, table: table}, nil
}

func (r *TranscriptionRepo) Create(ctx context.Context, t *models.Transcription) error {
	if t == nil {
		return models.ErrInvalidArgument
	}
	return r.store.Put(ctx, *t)
}

func (r *TranscriptionRepo) GetByID(ctx context.Context, id string) (*models.Transcription, error) {
	if id == "" {
		return nil, models.ErrInvalidArgument
	}
	return r.store.GetByKey(ctx, id)
}

func (r *TranscriptionRepo) ListByUser(ctx context.Context, userID string) ([]models.Transcription, error) {
	if userID == "" {
		return nil, models.ErrInvalidArgument
	}
	return r.store.QueryByIndex(ctx, TranscriptionUserIndex, "userId", userID, nil)
}

func (r *TranscriptionRepo) UpdateTitle(ctx context.Context, id, title string) error {
	return r.updateAttribute(ctx, id, "title", &types.AttributeValueMemberS{Value: title})
}

func (r *TranscriptionRepo) UpdateStatus(ctx context.Context, id string, status models.Status) error {
	return r.updateAttribute(ctx, id, "status", &types.AttributeValueMemberS{Value: string(status)})
}

func (r *TranscriptionRepo) UpdateDuration(ctx context.Context, id string, seconds float64) error {
	n := strconv.FormatFloat(seconds, 'f', -1, 64)
	return r.updateAttribute(ctx, id, "transcriptionLength", &types.AttributeValueMemberN{Value: n})
}

func (r *TranscriptionRepo) UpdateRefinementPrompt(ctx context.Context, id, prompt string) error {
	return r.updateAttribute(ctx, id, "refinementPrompt", &types.AttributeValueMemberS{Value: prompt})
}

// updateAttribute mutates a single attribute without reading the item first.
// There is no existence pre-check: an update against a missing key follows
// backend semantics (DynamoDB creates a partial item).
func (r *TranscriptionRepo) updateAttribute(ctx context.Context, id, attribute string, value types.AttributeValue) error {
	if id == "" {
		return models.ErrInvalidArgument
	}

	_, err := r.api.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                aws.String(r.table),
		Key:                      primaryKey(id),
		UpdateExpression:         aws.String("SET #a = :v"),
		ExpressionAttributeNames: map[string]string{"#a": attribute},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":v": value,
		},
	})
	if err != nil {
		return fmt.Errorf("%w: update %s: %v", models.ErrStoreUnavailable, attribute, err)
	}
	return nil
}

// Delete removes the record outright. Administrative and test tooling only;
// the production pipeline never deletes transcriptions.
func (r *TranscriptionRepo) Delete(ctx context.Context, id string) error {
	if id == "" {
		return models.ErrInvalidArgument
	}
	return r.store.Delete(ctx, id)
}

// DeleteAllForUser queries the user's records and issues independent deletes
// concurrently. Partial success is possible and is not rolled back; the
// first failure is reported after all deletes have run.
func (r *TranscriptionRepo) DeleteAllForUser(ctx context.Context, userID string) error {
	records, err := r.ListByUser(ctx, userID)
	if err != nil {
		return err
	}

	var g errgroup.Group
	for _, rec := range records {
		g.Go(func() error {
			return r.store.Delete(ctx, rec.ID)
		})
	}
	return g.Wait()
}
