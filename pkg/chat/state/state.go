// Package state owns every change to a chat's message log and summary.
// Mutations re-read the chat under a row lock inside their own transaction.
package state

import (
	"context"
	"strings"

	"ai-learning-assistant-be/internal/entity"
	"ai-learning-assistant-be/internal/pkg/apperror"
	"ai-learning-assistant-be/internal/repository/contract"
	"ai-learning-assistant-be/internal/repository/specification"
	"ai-learning-assistant-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

const (
	DefaultSummary       = "Untitled"
	DefaultSummaryLength = 40
)

// Summarize is the first user message cut to limit runes, or DefaultSummary
// when no user message exists.
func Summarize(messages []entity.ChatMessage, limit int) string {
	for _, m := range messages {
		if m.Sender != entity.SenderUser {
			continue
		}
		runes := []rune(m.Text)
		if limit > 0 && len(runes) > limit {
			runes = runes[:limit]
		}
		return string(runes)
	}
	return DefaultSummary
}

// SaveCommand is either CreateConversation or ReplaceMessages.
type SaveCommand interface {
	saveCommand()
}

// CreateConversation stores a new chat holding Messages and no content.
type CreateConversation struct {
	OwnerID  uuid.UUID
	Messages []entity.ChatMessage
}

// ReplaceMessages overwrites the whole log of an existing chat.
type ReplaceMessages struct {
	ConversationID uuid.UUID
	OwnerID        uuid.UUID
	Messages       []entity.ChatMessage
}

func (CreateConversation) saveCommand() {}
func (ReplaceMessages) saveCommand()    {}

type Manager struct {
	uowFactory    unitofwork.RepositoryFactory
	summaryLength int
}

func NewManager(uowFactory unitofwork.RepositoryFactory, summaryLength int) *Manager {
	if summaryLength <= 0 {
		summaryLength = DefaultSummaryLength
	}
	return &Manager{
		uowFactory:    uowFactory,
		summaryLength: summaryLength,
	}
}

// AppendTurn adds the question and the answer, in that order, to the log.
func (m *Manager) AppendTurn(ctx context.Context, conversationID, ownerID uuid.UUID, question, answer string) (*entity.Chat, error) {
	return m.mutate(ctx, conversationID, ownerID, func(chat *entity.Chat) error {
		chat.Messages = append(chat.Messages,
			entity.ChatMessage{Sender: entity.SenderUser, Text: question},
			entity.ChatMessage{Sender: entity.SenderBot, Text: answer},
		)
		return nil
	})
}

func (m *Manager) Save(ctx context.Context, cmd SaveCommand) (*entity.Chat, error) {
	switch c := cmd.(type) {
	case CreateConversation:
		return m.create(ctx, c)
	case ReplaceMessages:
		return m.replace(ctx, c)
	default:
		return nil, apperror.InputInvalid("unsupported save command")
	}
}

func (m *Manager) create(ctx context.Context, cmd CreateConversation) (*entity.Chat, error) {
	messages, err := validMessages(cmd.Messages)
	if err != nil {
		return nil, err
	}

	chat := &entity.Chat{
		Id:       uuid.New(),
		UserId:   cmd.OwnerID,
		Summary:  Summarize(messages, m.summaryLength),
		Messages: messages,
	}
	uow := m.uowFactory.NewUnitOfWork(ctx)
	if err := uow.ChatRepository().Create(ctx, chat); err != nil {
		return nil, apperror.Storage(err)
	}
	return chat, nil
}

func (m *Manager) replace(ctx context.Context, cmd ReplaceMessages) (*entity.Chat, error) {
	messages, err := validMessages(cmd.Messages)
	if err != nil {
		return nil, err
	}

	return m.mutate(ctx, cmd.ConversationID, cmd.OwnerID, func(chat *entity.Chat) error {
		chat.Messages = messages
		chat.Summary = Summarize(messages, m.summaryLength)
		return nil
	})
}

func (m *Manager) Rename(ctx context.Context, conversationID, ownerID uuid.UUID, summary string) (*entity.Chat, error) {
	summary = strings.TrimSpace(summary)
	if summary == "" {
		return nil, apperror.InputInvalid("summary is required")
	}

	return m.mutate(ctx, conversationID, ownerID, func(chat *entity.Chat) error {
		chat.Summary = summary
		return nil
	})
}

// Delete removes the chat permanently.
func (m *Manager) Delete(ctx context.Context, conversationID, ownerID uuid.UUID) error {
	uow := m.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return apperror.Storage(err)
	}
	defer uow.Rollback()

	repo := uow.ChatRepository()
	if _, err := lockOwned(ctx, repo, conversationID, ownerID); err != nil {
		return err
	}
	if err := repo.Delete(ctx, conversationID); err != nil {
		return apperror.Storage(err)
	}
	if err := uow.Commit(); err != nil {
		return apperror.Storage(err)
	}
	return nil
}

func (m *Manager) mutate(ctx context.Context, conversationID, ownerID uuid.UUID, change func(*entity.Chat) error) (*entity.Chat, error) {
	uow := m.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, apperror.Storage(err)
	}
	defer uow.Rollback()

	repo := uow.ChatRepository()
	chat, err := lockOwned(ctx, repo, conversationID, ownerID)
	if err != nil {
		return nil, err
	}
	if err := change(chat); err != nil {
		return nil, err
	}
	if err := repo.Update(ctx, chat); err != nil {
		return nil, apperror.Storage(err)
	}
	if err := uow.Commit(); err != nil {
		return nil, apperror.Storage(err)
	}
	return chat, nil
}

func lockOwned(ctx context.Context, repo contract.ChatRepository, conversationID, ownerID uuid.UUID) (*entity.Chat, error) {
	specs := append(specification.OwnedChat(conversationID, ownerID), specification.ForUpdate{})
	chat, err := repo.FindOne(ctx, specs...)
	if err != nil {
		return nil, apperror.Storage(err)
	}
	if chat == nil {
		return nil, apperror.NotFound("chat not found")
	}
	return chat, nil
}

func validMessages(messages []entity.ChatMessage) ([]entity.ChatMessage, error) {
	out := make([]entity.ChatMessage, len(messages))
	for i, msg := range messages {
		if !msg.Sender.Valid() {
			return nil, apperror.InputInvalid("message sender must be \"user\" or \"bot\"")
		}
		out[i] = msg
	}
	return out, nil
}
