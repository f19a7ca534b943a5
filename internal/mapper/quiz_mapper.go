package mapper

import (
	"ai-learning-assistant-be/internal/entity"
	"ai-learning-assistant-be/internal/model"
)

type QuizMapper struct{}

func NewQuizMapper() *QuizMapper {
	return &QuizMapper{}
}

func (m *QuizMapper) AttemptToEntity(a *model.QuizAttempt) *entity.QuizAttempt {
	if a == nil {
		return nil
	}
	return &entity.QuizAttempt{
		Id:        a.Id,
		UserId:    a.UserId,
		ChatId:    a.ChatId,
		Score:     a.Score,
		Total:     a.Total,
		CreatedAt: a.CreatedAt,
	}
}

func (m *QuizMapper) AttemptToModel(a *entity.QuizAttempt) *model.QuizAttempt {
	if a == nil {
		return nil
	}
	return &model.QuizAttempt{
		Id:        a.Id,
		UserId:    a.UserId,
		ChatId:    a.ChatId,
		Score:     a.Score,
		Total:     a.Total,
		CreatedAt: a.CreatedAt,
	}
}
