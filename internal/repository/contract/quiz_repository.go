package contract

import (
	"context"

	"ai-learning-assistant-be/internal/entity"
	"ai-learning-assistant-be/internal/repository/specification"

	"github.com/google/uuid"
)

type QuizAttemptRepository interface {
	Create(ctx context.Context, attempt *entity.QuizAttempt) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.QuizAttempt, error)
}

// QuizBatchRepository holds generated quizzes until they are submitted.
// Get and Take return (nil, nil) for unknown or expired ids. Take removes
// the batch atomically, so of several concurrent callers only one gets it.
type QuizBatchRepository interface {
	Save(ctx context.Context, batch *entity.QuizBatch) error
	Get(ctx context.Context, id uuid.UUID) (*entity.QuizBatch, error)
	Take(ctx context.Context, id uuid.UUID) (*entity.QuizBatch, error)
}
