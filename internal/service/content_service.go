// FILE: internal/service/content_service.go
package service

import (
	"context"

	"ai-learning-assistant-be/internal/constant"
	"ai-learning-assistant-be/internal/dto"
	"ai-learning-assistant-be/internal/pkg/logger"
	"ai-learning-assistant-be/pkg/chat/content"
	"ai-learning-assistant-be/pkg/events"
)

// DocumentExtractor turns an uploaded file into plain text.
type DocumentExtractor interface {
	Extract(ctx context.Context, filename string, data []byte) (string, error)
}

type IContentService interface {
	Submit(ctx context.Context, cmd content.Command) (*dto.SubmitContentResponse, error)
	ExtractDocument(ctx context.Context, filename string, data []byte) (string, error)
}

type contentService struct {
	store     *content.Store
	extractor DocumentExtractor
	publisher events.Publisher
	logger    logger.ILogger
}

func NewContentService(store *content.Store, extractor DocumentExtractor, publisher events.Publisher, log logger.ILogger) IContentService {
	return &contentService{
		store:     store,
		extractor: extractor,
		publisher: publisher,
		logger:    log,
	}
}

func (s *contentService) Submit(ctx context.Context, cmd content.Command) (*dto.SubmitContentResponse, error) {
	chat, err := s.store.Submit(ctx, cmd)
	if err != nil {
		return nil, err
	}

	_, created := cmd.(content.CreateConversation)
	publish(ctx, s.publisher, s.logger, constant.ModuleContent, events.New(events.TypeContentAppended, map[string]interface{}{
		"chat_id":      chat.Id.String(),
		"user_id":      chat.UserId.String(),
		"created":      created,
		"content_size": len(chat.Content),
	}))

	return &dto.SubmitContentResponse{ChatId: chat.Id}, nil
}

func (s *contentService) ExtractDocument(ctx context.Context, filename string, data []byte) (string, error) {
	text, err := s.extractor.Extract(ctx, filename, data)
	if err != nil {
		s.logger.Warn(constant.ModuleContent, "Document extraction failed", map[string]interface{}{
			"filename": filename,
			"size":     len(data),
			"error":    err.Error(),
		})
		return "", err
	}
	return text, nil
}
