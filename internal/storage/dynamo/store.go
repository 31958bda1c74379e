package dynamo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/deepscribes/transcription-platform/internal/transcription/models"
)

// Store is a keyed record store over one DynamoDB table. Records are written
// atomically as whole items; the primary key attribute is always "id".
type Store[T any] struct {
	api   API
	table string
}

// EqualityFilter narrows an index query by an equality check on a second
// attribute (e.g. status = "active").
type EqualityFilter struct {
	Attribute string
	Value     string
}

func NewStore[T any](api API, table string) (*Store[T], error) {
	if api == nil {
		return nil, fmt.Errorf("%w: nil dynamodb client", models.ErrMisconfigured)
	}
	if table == "" {
		return nil, fmt.Errorf("%w: empty table name", models.ErrMisconfigured)
	}
	return &Store[T]{api: api, table: table}, nil
}

// Put upserts the record by primary key, overwriting any existing item.
func (s *Store[T]) Put(ctx context.Context, rec T) error {
	item, err := attributevalue.MarshalMap(rec)
	if err != nil {
		return fmt.Errorf("marshal item: %w", err)
	}

	_, err = s.api.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("%w: put item: %v", models.ErrStoreUnavailable, err)
	}
	return nil
}

// GetByKey returns the record or models.ErrNotFound. Absence is a normal
// outcome, distinct from a backend failure.
func (s *Store[T]) GetByKey(ctx context.Context, key string) (*T, error) {
	out, err := s.api.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.table),
		Key:       primaryKey(key),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: get item: %v", models.ErrStoreUnavailable, err)
	}
	if len(out.Item) == 0 {
		return nil, models.ErrNotFound
	}

	var rec T
	if err := attributevalue.UnmarshalMap(out.Item, &rec); err != nil {
		return nil, fmt.Errorf("unmarshal item: %w", err)
	}
	return &rec, nil
}

// QueryByIndex returns all records whose indexed attribute equals value,
// optionally narrowed by filter. No matches yields an empty slice, never nil.
func (s *Store[T]) QueryByIndex(ctx context.Context, index, attribute, value string, filter *EqualityFilter) ([]T, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.table),
		IndexName:              aws.String(index),
		KeyConditionExpression: aws.String("#pk = :pk"),
		ExpressionAttributeNames: map[string]string{
			"#pk": attribute,
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk": &types.AttributeValueMemberS{Value: value},
		},
	}
	if filter != nil {
		input.FilterExpression = aws.String("#f = :f")
		input.ExpressionAttributeNames["#f"] = filter.Attribute
		input.ExpressionAttributeValues[":f"] = &types.AttributeValueMemberS{Value: filter.Value}
	}

	out, err := s.api.Query(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("%w: query index %s: %v", models.ErrStoreUnavailable, index, err)
	}

	recs := make([]T, 0, len(out.Items))
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &recs); err != nil {
		return nil, fmt.Errorf("unmarshal items: %w", err)
	}
	return recs, nil
}

// Delete removes the record if present. Deleting an absent key is a no-op.
func (s *Store[T]) Delete(ctx context.Context, key string) error {
	_, err := s.api.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(s.table),
		Key:       primaryKey(key),
	})
	if err != nil {
		return fmt.Errorf("%w: delete item: %v", models.ErrStoreUnavailable, err)
	}
	return nil
}

func primaryKey(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"id": &types.AttributeValueMemberS{Value: id},
	}
}
