package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"ai-learning-assistant-be/internal/entity"
	"ai-learning-assistant-be/pkg/quiz"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func redisClient(t *testing.T) *redis.Client {
	t.Helper()
	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("Skipping redis test: REDIS_URL not set")
	}
	opt, err := redis.ParseURL(url)
	require.NoError(t, err)

	rdb := redis.NewClient(opt)
	t.Cleanup(func() { _ = rdb.Close() })
	require.NoError(t, rdb.Ping(context.Background()).Err())
	return rdb
}

func TestQuizBatchRepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	rdb := redisClient(t)
	repo := NewQuizBatchRepository(rdb, time.Minute)

	batch := &entity.QuizBatch{
		Id:        uuid.New(),
		UserId:    uuid.New(),
		ChatId:    uuid.New(),
		Items:     []quiz.Item{{Question: "q", Options: []string{"a", "b", "c", "d"}, Answer: "a"}},
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
	require.NoError(t, repo.Save(ctx, batch))

	ttl, err := rdb.TTL(ctx, quizBatchKey(batch.Id)).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	got, err := repo.Get(ctx, batch.Id)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, batch.Items, got.Items)
	assert.True(t, batch.CreatedAt.Equal(got.CreatedAt))

	taken, err := repo.Take(ctx, batch.Id)
	require.NoError(t, err)
	require.NotNil(t, taken)
	assert.Equal(t, batch.Id, taken.Id)

	taken, err = repo.Take(ctx, batch.Id)
	require.NoError(t, err)
	assert.Nil(t, taken)

	got, err = repo.Get(ctx, batch.Id)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestQuizBatchKey(t *testing.T) {
	id := uuid.MustParse("00000000-0000-0000-0000-000000000001")
	assert.Equal(t, "quiz:batch:00000000-0000-0000-0000-000000000001", quizBatchKey(id))
}
