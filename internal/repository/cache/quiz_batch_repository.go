package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"ai-learning-assistant-be/internal/entity"
	"ai-learning-assistant-be/internal/repository/contract"
	"ai-learning-assistant-be/pkg/quiz"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const quizBatchKeyPrefix = "quiz:batch:"

type cachedQuizBatch struct {
	Id        uuid.UUID   `json:"id"`
	UserId    uuid.UUID   `json:"user_id"`
	ChatId    uuid.UUID   `json:"chat_id"`
	Items     []quiz.Item `json:"items"`
	CreatedAt time.Time   `json:"created_at"`
}

type QuizBatchRepository struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewQuizBatchRepository(rdb *redis.Client, ttl time.Duration) contract.QuizBatchRepository {
	return &QuizBatchRepository{
		rdb: rdb,
		ttl: ttl,
	}
}

func quizBatchKey(id uuid.UUID) string {
	return quizBatchKeyPrefix + id.String()
}

func (r *QuizBatchRepository) Save(ctx context.Context, batch *entity.QuizBatch) error {
	payload, err := json.Marshal(cachedQuizBatch{
		Id:        batch.Id,
		UserId:    batch.UserId,
		ChatId:    batch.ChatId,
		Items:     batch.Items,
		CreatedAt: batch.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("encode quiz batch: %w", err)
	}
	return r.rdb.Set(ctx, quizBatchKey(batch.Id), payload, r.ttl).Err()
}

func (r *QuizBatchRepository) Get(ctx context.Context, id uuid.UUID) (*entity.QuizBatch, error) {
	return decodeQuizBatch(r.rdb.Get(ctx, quizBatchKey(id)).Bytes())
}

// Take uses GETDEL so a batch is handed out at most once.
func (r *QuizBatchRepository) Take(ctx context.Context, id uuid.UUID) (*entity.QuizBatch, error) {
	return decodeQuizBatch(r.rdb.GetDel(ctx, quizBatchKey(id)).Bytes())
}

func decodeQuizBatch(payload []byte, err error) (*entity.QuizBatch, error) {
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var cached cachedQuizBatch
	if err := json.Unmarshal(payload, &cached); err != nil {
		return nil, fmt.Errorf("decode quiz batch: %w", err)
	}

	return &entity.QuizBatch{
		Id:        cached.Id,
		UserId:    cached.UserId,
		ChatId:    cached.ChatId,
		Items:     cached.Items,
		CreatedAt: cached.CreatedAt,
	}, nil
}
