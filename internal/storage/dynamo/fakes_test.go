package dynamo

import (
	"context"
	"sync"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

// fakeAPI routes each call to an optional hook and records inputs, so tests
// can assert the exact requests a store builds.
type fakeAPI struct {
	mu sync.Mutex

	putItem    func(*dynamodb.PutItemInput) (*dynamodb.PutItemOutput, error)
	getItem    func(*dynamodb.GetItemInput) (*dynamodb.GetItemOutput, error)
	query      func(*dynamodb.QueryInput) (*dynamodb.QueryOutput, error)
	deleteItem func(*dynamodb.DeleteItemInput) (*dynamodb.DeleteItemOutput, error)
	updateItem func(*dynamodb.UpdateItemInput) (*dynamodb.UpdateItemOutput, error)

	putInputs    []*dynamodb.PutItemInput
	getInputs    []*dynamodb.GetItemInput
	queryInputs  []*dynamodb.QueryInput
	deleteInputs []*dynamodb.DeleteItemInput
	updateInputs []*dynamodb.UpdateItemInput
}

func (f *fakeAPI) PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.mu.Lock()
	f.putInputs = append(f.putInputs, params)
	f.mu.Unlock()
	if f.putItem != nil {
		return f.putItem(params)
	}
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeAPI) GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	f.mu.Lock()
	f.getInputs = append(f.getInputs, params)
	f.mu.Unlock()
	if f.getItem != nil {
		return f.getItem(params)
	}
	return &dynamodb.GetItemOutput{}, nil
}

func (f *fakeAPI) Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	f.mu.Lock()
	f.queryInputs = append(f.queryInputs, params)
	f.mu.Unlock()
	if f.query != nil {
		return f.query(params)
	}
	return &dynamodb.QueryOutput{}, nil
}

func (f *fakeAPI) DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	f.mu.Lock()
	f.deleteInputs = append(f.deleteInputs, params)
	f.mu.Unlock()
	if f.deleteItem != nil {
		return f.deleteItem(params)
	}
	return &dynamodb.DeleteItemOutput{}, nil
}

func (f *fakeAPI) UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	f.mu.Lock()
	f.updateInputs = append(f.updateInputs, params)
	f.mu.Unlock()
	if f.updateItem != nil {
		return f.updateItem(params)
	}
	return &dynamodb.UpdateItemOutput{}, nil
}

func (f *fakeAPI) deletedKeys() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	keys := make([]string, 0, len(f.deleteInputs))
	for _, in := range f.deleteInputs {
		keys = append(keys, stringAttr(in.Key, "id"))
	}
	return keys
}
