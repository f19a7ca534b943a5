// FILE: internal/service/chat_service.go
package service

import (
	"context"
	"errors"
	"strings"

	"ai-learning-assistant-be/internal/constant"
	"ai-learning-assistant-be/internal/dto"
	"ai-learning-assistant-be/internal/entity"
	"ai-learning-assistant-be/internal/pkg/apperror"
	"ai-learning-assistant-be/internal/pkg/logger"
	"ai-learning-assistant-be/internal/repository/specification"
	"ai-learning-assistant-be/internal/repository/unitofwork"
	"ai-learning-assistant-be/pkg/chat/history"
	"ai-learning-assistant-be/pkg/chat/prompt"
	"ai-learning-assistant-be/pkg/chat/state"
	"ai-learning-assistant-be/pkg/events"
	"ai-learning-assistant-be/pkg/llm"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

type IChatService interface {
	Ask(ctx context.Context, userId uuid.UUID, req *dto.AskRequest) (*dto.AskResponse, error)
	GetChats(ctx context.Context, userId uuid.UUID) ([]*dto.ChatResponse, error)
	GetChat(ctx context.Context, userId, chatId uuid.UUID) (*dto.ChatResponse, error)
	Rename(ctx context.Context, userId, chatId uuid.UUID, req *dto.RenameChatRequest) (*dto.ChatResponse, error)
	Save(ctx context.Context, cmd state.SaveCommand) (*dto.ChatResponse, error)
	Delete(ctx context.Context, userId, chatId uuid.UUID) error
}

type chatService struct {
	uowFactory    unitofwork.RepositoryFactory
	states        *state.Manager
	provider      llm.LLMProvider
	publisher     events.Publisher
	logger        logger.ILogger
	historyWindow int
}

func NewChatService(
	uowFactory unitofwork.RepositoryFactory,
	states *state.Manager,
	provider llm.LLMProvider,
	publisher events.Publisher,
	log logger.ILogger,
	historyWindow int,
) IChatService {
	return &chatService{
		uowFactory:    uowFactory,
		states:        states,
		provider:      provider,
		publisher:     publisher,
		logger:        log,
		historyWindow: historyWindow,
	}
}

func toChatResponse(chat *entity.Chat) *dto.ChatResponse {
	return &dto.ChatResponse{
		Id:      chat.Id,
		Summary: chat.Summary,
		Content: chat.Content,
		Messages: lo.Map(chat.Messages, func(m entity.ChatMessage, _ int) dto.MessageDto {
			return dto.MessageDto{Sender: string(m.Sender), Text: m.Text}
		}),
		CreatedAt: chat.CreatedAt,
		UpdatedAt: chat.UpdatedAt,
	}
}

// Ask answers a question against the chat's content. Missing content, a
// missing question and an empty model reply produce an in-band answer and
// leave the chat untouched.
func (s *chatService) Ask(ctx context.Context, userId uuid.UUID, req *dto.AskRequest) (*dto.AskResponse, error) {
	// a missing or unreadable chat id means nothing was uploaded yet
	chatId, err := uuid.Parse(strings.TrimSpace(req.ChatId))
	if err != nil || chatId == uuid.Nil {
		return &dto.AskResponse{Answer: constant.AskNoContentAnswer}, nil
	}
	question := strings.TrimSpace(req.Question)
	if question == "" {
		return &dto.AskResponse{Answer: constant.AskNoQuestion}, nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	chat, err := uow.ChatRepository().FindOne(ctx, specification.OwnedChat(chatId, userId)...)
	if err != nil {
		return nil, apperror.Storage(err)
	}
	if chat == nil {
		return nil, apperror.NotFound("chat not found")
	}
	if !chat.HasContent() {
		return &dto.AskResponse{Answer: constant.AskNoContentAnswer}, nil
	}

	payload := prompt.BuildAsk(chat.Content, history.Window(chat.Messages, s.historyWindow), question)
	answer, err := s.provider.Chat(ctx, payload)
	if err != nil {
		if errors.Is(err, llm.ErrNoContent) {
			s.logger.Warn(constant.ModuleChat, "Model returned no answer", map[string]interface{}{"chat_id": chat.Id.String()})
			return &dto.AskResponse{Answer: constant.AskNoAnswer}, nil
		}
		s.logger.Error(constant.ModuleChat, "Generation request failed", map[string]interface{}{
			"chat_id": chat.Id.String(),
			"error":   err.Error(),
		})
		return nil, apperror.Upstream(err)
	}

	if _, err := s.states.AppendTurn(ctx, chat.Id, userId, question, answer); err != nil {
		return nil, err
	}
	return &dto.AskResponse{Answer: answer}, nil
}

func (s *chatService) GetChats(ctx context.Context, userId uuid.UUID) ([]*dto.ChatResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	chats, err := uow.ChatRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.NewestFirst{},
	)
	if err != nil {
		return nil, apperror.Storage(err)
	}
	return lo.Map(chats, func(c *entity.Chat, _ int) *dto.ChatResponse {
		return toChatResponse(c)
	}), nil
}

func (s *chatService) GetChat(ctx context.Context, userId, chatId uuid.UUID) (*dto.ChatResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	chat, err := uow.ChatRepository().FindOne(ctx, specification.OwnedChat(chatId, userId)...)
	if err != nil {
		return nil, apperror.Storage(err)
	}
	if chat == nil {
		return nil, apperror.NotFound("chat not found")
	}
	return toChatResponse(chat), nil
}

func (s *chatService) Rename(ctx context.Context, userId, chatId uuid.UUID, req *dto.RenameChatRequest) (*dto.ChatResponse, error) {
	chat, err := s.states.Rename(ctx, chatId, userId, req.Summary)
	if err != nil {
		return nil, err
	}
	return toChatResponse(chat), nil
}

func (s *chatService) Save(ctx context.Context, cmd state.SaveCommand) (*dto.ChatResponse, error) {
	chat, err := s.states.Save(ctx, cmd)
	if err != nil {
		return nil, err
	}
	return toChatResponse(chat), nil
}

func (s *chatService) Delete(ctx context.Context, userId, chatId uuid.UUID) error {
	if err := s.states.Delete(ctx, chatId, userId); err != nil {
		return err
	}

	s.logger.Info(constant.ModuleChat, "Chat deleted", map[string]interface{}{"chat_id": chatId.String()})
	publish(ctx, s.publisher, s.logger, constant.ModuleChat, events.New(events.TypeChatDeleted, map[string]interface{}{
		"chat_id": chatId.String(),
		"user_id": userId.String(),
	}))
	return nil
}
