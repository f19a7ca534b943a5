package memory

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"ai-learning-assistant-be/internal/entity"
	"ai-learning-assistant-be/pkg/quiz"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuizBatchRepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewQuizBatchRepository(time.Minute)

	batch := &entity.QuizBatch{
		Id:     uuid.New(),
		UserId: uuid.New(),
		ChatId: uuid.New(),
		Items: []quiz.Item{
			{Question: "q", Options: []string{"a", "b", "c", "d"}, Answer: "a"},
		},
	}
	require.NoError(t, repo.Save(ctx, batch))

	got, err := repo.Get(ctx, batch.Id)
	require.NoError(t, err)
	assert.Equal(t, batch, got)

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

func TestQuizBatchRepositoryExpires(t *testing.T) {
	ctx := context.Background()
	repo := NewQuizBatchRepository(10 * time.Millisecond)

	id := uuid.New()
	require.NoError(t, repo.Save(ctx, &entity.QuizBatch{Id: id}))
	time.Sleep(30 * time.Millisecond)

	got, err := repo.Get(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestQuizBatchRepositoryTakeOnce(t *testing.T) {
	ctx := context.Background()
	repo := NewQuizBatchRepository(time.Minute)
	id := uuid.New()
	require.NoError(t, repo.Save(ctx, &entity.QuizBatch{Id: id}))

	var (
		wg    sync.WaitGroup
		won   atomic.Int32
		start = make(chan struct{})
	)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			if got, err := repo.Take(ctx, id); err == nil && got != nil {
				won.Add(1)
			}
		}()
	}
	close(start)
	wg.Wait()

	assert.Equal(t, int32(1), won.Load())
}
