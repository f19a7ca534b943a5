package mapper

import (
	"testing"
	"time"

	"ai-learning-assistant-be/internal/entity"
	"ai-learning-assistant-be/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestChatToEntityPreservesMessageOrder(t *testing.T) {
	m := NewChatMapper()
	now := time.Now()

	chat := m.ChatToEntity(&model.Chat{
		Id:      uuid.New(),
		UserId:  uuid.New(),
		Summary: "Untitled",
		Content: "notes",
		Messages: []model.ChatMessage{
			{Sender: "user", Text: "q1"},
			{Sender: "bot", Text: "a1"},
			{Sender: "user", Text: "q2"},
		},
		CreatedAt: now,
		UpdatedAt: now,
	})

	assert.Equal(t, []entity.ChatMessage{
		{Sender: entity.SenderUser, Text: "q1"},
		{Sender: entity.SenderBot, Text: "a1"},
		{Sender: entity.SenderUser, Text: "q2"},
	}, chat.Messages)
	assert.NotNil(t, chat.UpdatedAt)
	assert.True(t, chat.HasContent())
}

func TestEmptyMessagesAreNonNil(t *testing.T) {
	m := NewChatMapper()

	chat := m.ChatToEntity(&model.Chat{Id: uuid.New()})
	assert.NotNil(t, chat.Messages)
	assert.Empty(t, chat.Messages)
	assert.Nil(t, chat.UpdatedAt)

	back := m.ChatToModel(chat)
	assert.NotNil(t, back.Messages)
	assert.Empty(t, back.Messages)
}

func TestNilChat(t *testing.T) {
	m := NewChatMapper()
	assert.Nil(t, m.ChatToEntity(nil))
	assert.Nil(t, m.ChatToModel(nil))
}
