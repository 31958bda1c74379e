package repository

import (
	"context"
	"sync"
	"time"

	"github.com/deepscribes/transcription-platform/internal/transcription/models"
)

type MemoryRepository struct {
	mu   sync.RWMutex
	data map[string]*models.Transcription
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		data: make(map[string]*models.Transcription),
	}
}

func (r *MemoryRepository) Create(ctx context.Context, t *models.Transcription) error {
	if t == nil || t.ID == "" {
		return models.ErrInvalidArgument
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Защитная копия, чтобы внешняя сторона не могла мутировать хранимый объект
	cp := *t
	r.data[t.ID] = &cp

	return nil
}

func (r *MemoryRepository) GetByID(ctx context.Context, id string) (*models.Transcription, error) {
	if id == "" {
		return nil, models.ErrInvalidArgument
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.data[id]
	if !ok {
		return nil, models.ErrNotFound
	}

	cp := *t
	return &cp, nil
}

func (r *MemoryRepository) ListByUser(ctx context.Context, userID string) ([]models.Transcription, error) {
	if userID == "" {
		return nil, models.ErrInvalidArgument
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Transcription, 0)
	for _, t := range r.data {
		if t.UserID == userID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (r *MemoryRepository) update(id string, apply func(*models.Transcription)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.data[id]
	if !ok {
		// Прицельный update по отсутствующему ключу: бекенд завёл бы
		// частичную запись, in-memory версия просто отклоняет
		return models.ErrNotFound
	}
	apply(t)
	return nil
}

func (r *MemoryRepository) UpdateTitle(ctx context.Context, id, title string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.update(id, func(t *models.Transcription) { t.Title = title })
}

func (r *MemoryRepository) UpdateStatus(ctx context.Context, id string, status models.Status) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.update(id, func(t *models.Transcription) { t.Status = status })
}

func (r *MemoryRepository) UpdateDuration(ctx context.Context, id string, seconds float64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.update(id, func(t *models.Transcription) { t.TranscriptionLength = seconds })
}

func (r *MemoryRepository) UpdateRefinementPrompt(ctx context.Context, id, prompt string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.update(id, func(t *models.Transcription) { t.RefinementPrompt = prompt })
}

func (r *MemoryRepository) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.data, id)
	return nil
}

func (r *MemoryRepository) DeleteAllForUser(ctx context.Context, userID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for id, t := range r.data {
		if t.UserID == userID {
			delete(r.data, id)
		}
	}
	return nil
}

type MemoryGuard struct {
	mu    sync.Mutex
	data  map[string]time.Time
	clock func() time.Time
	ttl   time.Duration
}

func NewMemoryGuard() *MemoryGuard {
	return &MemoryGuard{
		data:  make(map[string]time.Time),
		clock: time.Now,
		ttl:   24 * time.Hour,
	}
}

func (g *MemoryGuard) Check(ctx context.Context, token string) (bool, error) {
	if token == "" {
		return false, models.ErrInvalidArgument
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	expiresAt, ok := g.data[token]
	if !ok {
		return false, nil
	}
	return g.clock().Before(expiresAt), nil
}

func (g *MemoryGuard) Accept(ctx context.Context, token string) error {
	if token == "" {
		return models.ErrInvalidArgument
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	g.data[token] = g.clock().Add(g.ttl)
	return nil
}
