package memory

import (
	"context"
	"sync"
	"time"

	"ai-learning-assistant-be/internal/entity"
	"ai-learning-assistant-be/internal/repository/contract"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// QuizBatchRepository keeps generated quizzes in process memory. Used when
// Redis is not reachable; batches do not survive a restart.
type QuizBatchRepository struct {
	mu    sync.Mutex
	cache *cache.Cache
}

func NewQuizBatchRepository(ttl time.Duration) contract.QuizBatchRepository {
	return &QuizBatchRepository{
		cache: cache.New(ttl, 10*time.Minute),
	}
}

func (r *QuizBatchRepository) Save(ctx context.Context, batch *entity.QuizBatch) error {
	r.cache.Set(batch.Id.String(), batch, cache.DefaultExpiration)
	return nil
}

func (r *QuizBatchRepository) Get(ctx context.Context, id uuid.UUID) (*entity.QuizBatch, error) {
	if x, found := r.cache.Get(id.String()); found {
		return x.(*entity.QuizBatch), nil
	}
	return nil, nil
}

func (r *QuizBatchRepository) Take(ctx context.Context, id uuid.UUID) (*entity.QuizBatch, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	x, found := r.cache.Get(id.String())
	if !found {
		return nil, nil
	}
	r.cache.Delete(id.String())
	return x.(*entity.QuizBatch), nil
}
