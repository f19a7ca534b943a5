package mapper

import (
	"time"

	"ai-learning-assistant-be/internal/entity"
	"ai-learning-assistant-be/internal/model"

	"gorm.io/datatypes"
)

type ChatMapper struct{}

func NewChatMapper() *ChatMapper {
	return &ChatMapper{}
}

func (m *ChatMapper) ChatToEntity(c *model.Chat) *entity.Chat {
	if c == nil {
		return nil
	}

	var updatedAt *time.Time
	if !c.UpdatedAt.IsZero() {
		t := c.UpdatedAt
		updatedAt = &t
	}

	return &entity.Chat{
		Id:        c.Id,
		UserId:    c.UserId,
		Summary:   c.Summary,
		Content:   c.Content,
		Messages:  m.MessagesToEntity(c.Messages),
		CreatedAt: c.CreatedAt,
		UpdatedAt: updatedAt,
	}
}

func (m *ChatMapper) ChatToModel(c *entity.Chat) *model.Chat {
	if c == nil {
		return nil
	}

	var updatedAt time.Time
	if c.UpdatedAt != nil {
		updatedAt = *c.UpdatedAt
	}

	return &model.Chat{
		Id:        c.Id,
		UserId:    c.UserId,
		Summary:   c.Summary,
		Content:   c.Content,
		Messages:  m.MessagesToModel(c.Messages),
		CreatedAt: c.CreatedAt,
		UpdatedAt: updatedAt,
	}
}

func (m *ChatMapper) ChatsToEntities(models []*model.Chat) []*entity.Chat {
	entities := make([]*entity.Chat, len(models))
	for i, c := range models {
		entities[i] = m.ChatToEntity(c)
	}
	return entities
}

// MessagesToEntity never returns nil so an empty log serializes as [].
func (m *ChatMapper) MessagesToEntity(messages datatypes.JSONSlice[model.ChatMessage]) []entity.ChatMessage {
	result := make([]entity.ChatMessage, len(messages))
	for i, msg := range messages {
		result[i] = entity.ChatMessage{
			Sender: entity.Sender(msg.Sender),
			Text:   msg.Text,
		}
	}
	return result
}

func (m *ChatMapper) MessagesToModel(messages []entity.ChatMessage) datatypes.JSONSlice[model.ChatMessage] {
	result := make(datatypes.JSONSlice[model.ChatMessage], len(messages))
	for i, msg := range messages {
		result[i] = model.ChatMessage{
			Sender: string(msg.Sender),
			Text:   msg.Text,
		}
	}
	return result
}
