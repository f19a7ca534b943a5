// FILE: internal/service/quiz_service.go
package service

import (
	"context"
	"errors"
	"time"

	"ai-learning-assistant-be/internal/constant"
	"ai-learning-assistant-be/internal/dto"
	"ai-learning-assistant-be/internal/entity"
	"ai-learning-assistant-be/internal/pkg/apperror"
	"ai-learning-assistant-be/internal/pkg/logger"
	"ai-learning-assistant-be/internal/repository/contract"
	"ai-learning-assistant-be/pkg/chat/content"
	"ai-learning-assistant-be/pkg/chat/prompt"
	"ai-learning-assistant-be/pkg/llm"
	"ai-learning-assistant-be/pkg/quiz"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

type IQuizService interface {
	Generate(ctx context.Context, userId, chatId uuid.UUID) (*dto.GenerateQuizResponse, error)
	Submit(ctx context.Context, userId, chatId uuid.UUID, req *dto.SubmitQuizRequest) (*dto.SubmitQuizResponse, error)
}

type quizService struct {
	contents    *content.Store
	provider    llm.LLMProvider
	decoder     *quiz.Decoder
	batches     contract.QuizBatchRepository
	userService IUserService
	logger      logger.ILogger
}

func NewQuizService(
	contents *content.Store,
	provider llm.LLMProvider,
	decoder *quiz.Decoder,
	batches contract.QuizBatchRepository,
	userService IUserService,
	log logger.ILogger,
) IQuizService {
	return &quizService{
		contents:    contents,
		provider:    provider,
		decoder:     decoder,
		batches:     batches,
		userService: userService,
		logger:      log,
	}
}

// Generate asks the model for a quiz over the chat's content. Unlike Ask, an
// empty or unparseable reply is an error: there is no safe placeholder quiz.
func (s *quizService) Generate(ctx context.Context, userId, chatId uuid.UUID) (*dto.GenerateQuizResponse, error) {
	text, ok, err := s.contents.Read(ctx, chatId, userId)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperror.NotFound("chat not found")
	}
	if text == "" {
		return nil, apperror.InputInvalid("no content found")
	}

	raw, err := s.provider.Chat(ctx, prompt.BuildQuiz(text))
	if err != nil {
		if errors.Is(err, llm.ErrNoContent) {
			return nil, apperror.UpstreamEmpty("no text in model response")
		}
		s.logger.Error(constant.ModuleQuiz, "Generation request failed", map[string]interface{}{
			"chat_id": chatId.String(),
			"error":   err.Error(),
		})
		return nil, apperror.Upstream(err)
	}

	result := s.decoder.Decode(raw)
	if !result.OK() {
		s.logger.Warn(constant.ModuleQuiz, "Model returned malformed quiz", map[string]interface{}{
			"chat_id": chatId.String(),
			"reason":  string(result.Failure.Reason),
			"issues":  result.Failure.Issues,
			"text":    result.Failure.Text,
		})
		return nil, apperror.Malformed("failed to parse quiz JSON", result.Failure.Text, result.Failure)
	}

	batch := &entity.QuizBatch{
		Id:        uuid.New(),
		UserId:    userId,
		ChatId:    chatId,
		Items:     result.Batch,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.batches.Save(ctx, batch); err != nil {
		// the quiz can still be taken and scored by the client
		s.logger.Warn(constant.ModuleQuiz, "Failed to cache quiz batch", map[string]interface{}{
			"quiz_id": batch.Id.String(),
			"error":   err.Error(),
		})
	}

	s.logger.Info(constant.ModuleQuiz, "Quiz generated", map[string]interface{}{
		"chat_id":   chatId.String(),
		"quiz_id":   batch.Id.String(),
		"questions": len(batch.Items),
	})

	return &dto.GenerateQuizResponse{
		QuizId: batch.Id,
		ChatId: chatId,
		Questions: lo.Map(batch.Items, func(item quiz.Item, _ int) dto.QuizQuestion {
			return dto.QuizQuestion{
				Question: item.Question,
				Options:  item.Options,
				Answer:   item.Answer,
			}
		}),
	}, nil
}

func (s *quizService) Submit(ctx context.Context, userId, chatId uuid.UUID, req *dto.SubmitQuizRequest) (*dto.SubmitQuizResponse, error) {
	batch, err := s.batches.Get(ctx, req.QuizId)
	if err != nil {
		return nil, apperror.Storage(err)
	}
	if batch == nil || batch.UserId != userId || batch.ChatId != chatId {
		return nil, apperror.NotFound("quiz not found or expired")
	}

	grade, err := quiz.GradeAnswers(batch.Items, req.Answers)
	if err != nil {
		return nil, apperror.InputInvalid(err.Error())
	}

	// only the caller that removes the batch may record it
	claimed, err := s.batches.Take(ctx, batch.Id)
	if err != nil {
		return nil, apperror.Storage(err)
	}
	if claimed == nil {
		return nil, apperror.NotFound("quiz not found or expired")
	}

	progress, err := s.userService.RecordAttempt(ctx, userId, &chatId, grade.Score, grade.Total)
	if err != nil {
		if restoreErr := s.batches.Save(ctx, claimed); restoreErr != nil {
			s.logger.Warn(constant.ModuleQuiz, "Failed to restore quiz batch", map[string]interface{}{
				"quiz_id": batch.Id.String(),
				"error":   restoreErr.Error(),
			})
		}
		return nil, err
	}

	return &dto.SubmitQuizResponse{
		Score:    grade.Score,
		Total:    grade.Total,
		Correct:  grade.Correct,
		Progress: *progress,
	}, nil
}
