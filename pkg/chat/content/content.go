// Package content accumulates study material on a chat. Content only grows:
// uploads are appended, never replaced.
package content

import (
	"context"
	"strings"

	"ai-learning-assistant-be/internal/entity"
	"ai-learning-assistant-be/internal/pkg/apperror"
	"ai-learning-assistant-be/internal/repository/specification"
	"ai-learning-assistant-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

const Separator = "\n\n"

// Join appends text to existing content with one blank line between them.
// Empty existing content yields text unchanged.
func Join(existing, text string) string {
	if existing == "" {
		return text
	}
	return existing + Separator + text
}

// Command is either CreateConversation or AppendToConversation.
type Command interface {
	contentCommand()
}

// CreateConversation starts a new chat whose content is Text.
type CreateConversation struct {
	OwnerID uuid.UUID
	Text    string
}

// AppendToConversation adds Text to an existing chat owned by OwnerID.
type AppendToConversation struct {
	ConversationID uuid.UUID
	OwnerID        uuid.UUID
	Text           string
}

func (CreateConversation) contentCommand()   {}
func (AppendToConversation) contentCommand() {}

type Store struct {
	uowFactory     unitofwork.RepositoryFactory
	defaultSummary string
}

func NewStore(uowFactory unitofwork.RepositoryFactory, defaultSummary string) *Store {
	return &Store{
		uowFactory:     uowFactory,
		defaultSummary: defaultSummary,
	}
}

// Submit applies cmd and returns the chat as stored.
func (s *Store) Submit(ctx context.Context, cmd Command) (*entity.Chat, error) {
	switch c := cmd.(type) {
	case CreateConversation:
		return s.create(ctx, c)
	case AppendToConversation:
		return s.append(ctx, c)
	default:
		return nil, apperror.InputInvalid("unsupported content command")
	}
}

func (s *Store) create(ctx context.Context, cmd CreateConversation) (*entity.Chat, error) {
	if strings.TrimSpace(cmd.Text) == "" {
		return nil, apperror.InputInvalid("content text is required")
	}

	chat := &entity.Chat{
		Id:       uuid.New(),
		UserId:   cmd.OwnerID,
		Summary:  s.defaultSummary,
		Content:  cmd.Text,
		Messages: []entity.ChatMessage{},
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.ChatRepository().Create(ctx, chat); err != nil {
		return nil, apperror.Storage(err)
	}
	return chat, nil
}

func (s *Store) append(ctx context.Context, cmd AppendToConversation) (*entity.Chat, error) {
	if strings.TrimSpace(cmd.Text) == "" {
		return nil, apperror.InputInvalid("content text is required")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, apperror.Storage(err)
	}
	defer uow.Rollback()

	specs := append(specification.OwnedChat(cmd.ConversationID, cmd.OwnerID), specification.ForUpdate{})
	chat, err := uow.ChatRepository().FindOne(ctx, specs...)
	if err != nil {
		return nil, apperror.Storage(err)
	}
	if chat == nil {
		return nil, apperror.NotFound("chat not found")
	}

	chat.Content = Join(chat.Content, cmd.Text)
	if err := uow.ChatRepository().Update(ctx, chat); err != nil {
		return nil, apperror.Storage(err)
	}
	if err := uow.Commit(); err != nil {
		return nil, apperror.Storage(err)
	}
	return chat, nil
}

// Read returns the content of an owned chat. ok is false when the chat does
// not exist or belongs to someone else.
func (s *Store) Read(ctx context.Context, conversationID, ownerID uuid.UUID) (content string, ok bool, err error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	chat, err := uow.ChatRepository().FindOne(ctx, specification.OwnedChat(conversationID, ownerID)...)
	if err != nil {
		return "", false, apperror.Storage(err)
	}
	if chat == nil {
		return "", false, nil
	}
	return chat.Content, true, nil
}
