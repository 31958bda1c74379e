package dynamo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	submodels "github.com/deepscribes/transcription-platform/internal/subscription/models"
	"github.com/deepscribes/transcription-platform/internal/transcription/models"
)

// SubscriptionUserIndex is the secondary index on userId. Kept in sync with
// the table definition in the infrastructure stack.
const SubscriptionUserIndex = "SubscriptionUserIdIndex"

type SubscriptionRepo struct {
	store *Store[submodels.Subscription]
	clock func() time.Time
	idGen func() string
}

func NewSubscriptionRepo(api API, table string) (*SubscriptionRepo, error) {
	store, err := NewStore[submodels.Subscription](api, table)
	if err != nil {
		return nil, err
	}
	return &SubscriptionRepo{
		store: store,
		clock: time.Now,
		idGen: func() string { return uuid.NewString() },
	}, nil
}

type CreateSubscriptionInput struct {
	ID             string
	UserID         string
	Plan           submodels.Plan
	Status         submodels.Status
	ExpirationDate time.Time
	IsTrial        bool
}

func (r *SubscriptionRepo) Create(ctx context.Context, in CreateSubscriptionInput) (*submodels.Subscription, error) {
	if in.UserID == "" || in.Plan == "" || in.Status == "" {
		return nil, models.ErrInvalidArgument
	}

	now := r.clock().UTC()
	sub := submodels.Subscription{
		ID:             in.ID,
		UserID:         in.UserID,
		Plan:           in.Plan,
		Status:         in.Status,
		ExpirationDate: in.ExpirationDate,
		CreatedAt:      now,
		UpdatedAt:      now,
		IsTrial:        in.IsTrial,
	}
	if sub.ID == "" {
		sub.ID = r.idGen()
	}

	if err := r.store.Put(ctx, sub); err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *SubscriptionRepo) GetByID(ctx context.Context, id string) (*submodels.Subscription, error) {
	if id == "" {
		return nil, models.ErrInvalidArgument
	}
	return r.store.GetByKey(ctx, id)
}

// ListActiveByUser returns the user's active subscriptions via the secondary
// index with an equality filter on status.
func (r *SubscriptionRepo) ListActiveByUser(ctx context.Context, userID string) ([]submodels.Subscription, error) {
	if userID == "" {
		return nil, models.ErrInvalidArgument
	}
	filter := &EqualityFilter{Attribute: "status", Value: string(submodels.ActiveStatus)}
	return r.store.QueryByIndex(ctx, SubscriptionUserIndex, "userId", userID, filter)
}

// Update reads the stored record, merges the patch and writes the whole item
// back. CreatedAt is preserved, UpdatedAt is stamped. Read-then-write, so a
// concurrent update can be lost; acceptable under the eventual-consistency
// contract of this layer.
func (r *SubscriptionRepo) Update(ctx context.Context, id string, patch submodels.Patch) (*submodels.Subscription, error) {
	old, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	sub := *old
	if patch.UserID != nil {
		sub.UserID = *patch.UserID
	}
	if patch.Plan != nil {
		sub.Plan = *patch.Plan
	}
	if patch.Status != nil {
		sub.Status = *patch.Status
	}
	if patch.ExpirationDate != nil {
		sub.ExpirationDate = *patch.ExpirationDate
	}
	if patch.IsTrial != nil {
		sub.IsTrial = *patch.IsTrial
	}
	sub.UpdatedAt = r.clock().UTC()

	if err := r.store.Put(ctx, sub); err != nil {
		return nil, err
	}
	return &sub, nil
}

// Delete is for testing and administrative tooling only.
func (r *SubscriptionRepo) Delete(ctx context.Context, id string) error {
	if id == "" {
		return models.ErrInvalidArgument
	}
	return r.store.Delete(ctx, id)
}

// DeleteAllForUser removes every active subscription for the user with
// independent concurrent deletes. Testing and administrative tooling only.
func (r *SubscriptionRepo) DeleteAllForUser(ctx context.Context, userID string) error {
	subs, err := r.ListActiveByUser(ctx, userID)
	if err != nil {
		return err
	}

	var g errgroup.Group
	for _, sub := range subs {
		g.Go(func() error {
			return r.store.Delete(ctx, sub.ID)
		})
	}
	return g.Wait()
}
