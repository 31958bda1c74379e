package dynamo

import (
	"context"
	"errors"
	"time"

	"github.com/deepscribes/transcription-platform/internal/transcription/models"
)

// Guard records accepted idempotency tokens with a 24h backend TTL. It is a
// best-effort duplicate suppressor: Check and Accept are separate calls and
// nothing makes them atomic.
type Guard struct {
	store *Store[models.IdempotencyRecord]
	clock func() time.Time
	ttl   time.Duration
}

func NewGuard(api API, table string) (*Guard, error) {
	store, err := NewStore[models.IdempotencyRecord](api, table)
	if err != nil {
		return nil, err
	}
	return &Guard{
		store: store,
		clock: time.Now,
		ttl:   24 * time.Hour,
	}, nil
}

// Check reports whether an unexpired record exists for token. Expiry is
// compared against the clock because backend TTL deletion can lag.
func (g *Guard) Check(ctx context.Context, token string) (bool, error) {
	if token == "" {
		return false, models.ErrInvalidArgument
	}

	rec, err := g.store.GetByKey(ctx, token)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return !rec.Expired(g.clock()), nil
}

// Accept records the token with a refreshed expiry. Re-accepting an existing
// token simply overwrites it; that is not an error.
func (g *Guard) Accept(ctx context.Context, token string) error {
	if token == "" {
		return models.ErrInvalidArgument
	}

	return g.store.Put(ctx, models.IdempotencyRecord{
		ID:        token,
		ExpiresAt: g.clock().Add(g.ttl).Unix(),
	})
}
