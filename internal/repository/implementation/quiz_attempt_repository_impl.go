package implementation

import (
	"context"

	"ai-learning-assistant-be/internal/entity"
	"ai-learning-assistant-be/internal/mapper"
	"ai-learning-assistant-be/internal/model"
	"ai-learning-assistant-be/internal/repository/contract"
	"ai-learning-assistant-be/internal/repository/specification"

	"gorm.io/gorm"
)

type QuizAttemptRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.QuizMapper
}

func NewQuizAttemptRepository(db *gorm.DB) contract.QuizAttemptRepository {
	return &QuizAttemptRepositoryImpl{
		db:     db,
		mapper: mapper.NewQuizMapper(),
	}
}

func (r *QuizAttemptRepositoryImpl) Create(ctx context.Context, attempt *entity.QuizAttempt) error {
	m := r.mapper.AttemptToModel(attempt)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*attempt = *r.mapper.AttemptToEntity(m)
	return nil
}

func (r *QuizAttemptRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.QuizAttempt, error) {
	var models []*model.QuizAttempt
	query := specification.ApplyAll(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}

	entities := make([]*entity.QuizAttempt, len(models))
	for i, m := range models {
		entities[i] = r.mapper.AttemptToEntity(m)
	}
	return entities, nil
}
