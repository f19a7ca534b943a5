package content

import (
	"context"
	"errors"
	"strings"
	"testing"

	"ai-learning-assistant-be/internal/entity"
	"ai-learning-assistant-be/internal/pkg/apperror"
	"ai-learning-assistant-be/internal/repository/repotest"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJoin(t *testing.T) {
	assert.Equal(t, "first", Join("", "first"))
	assert.Equal(t, "first\n\nsecond", Join("first", "second"))
	assert.Equal(t, "  spaced ", Join("", "  spaced "))
}

func TestCreateConversation(t *testing.T) {
	store := repotest.NewStore()
	s := NewStore(store, "Untitled")
	owner := uuid.New()

	chat, err := s.Submit(context.Background(), CreateConversation{OwnerID: owner, Text: "Photosynthesis converts light to chemical energy."})
	require.NoError(t, err)

	stored, ok := store.Chat(chat.Id)
	require.True(t, ok)
	assert.Equal(t, owner, stored.UserId)
	assert.Equal(t, "Untitled", stored.Summary)
	assert.Equal(t, "Photosynthesis converts light to chemical energy.", stored.Content)
	assert.Empty(t, stored.Messages)
}

func TestAppendKeepsOrder(t *testing.T) {
	ctx := context.Background()
	store := repotest.NewStore()
	s := NewStore(store, "Untitled")
	owner := uuid.New()

	chat, err := s.Submit(ctx, CreateConversation{OwnerID: owner, Text: "t1"})
	require.NoError(t, err)
	_, err = s.Submit(ctx, AppendToConversation{ConversationID: chat.Id, OwnerID: owner, Text: "t2"})
	require.NoError(t, err)

	content, ok, err := s.Read(ctx, chat.Id, owner)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "t1\n\nt2", content)
	assert.True(t, strings.HasSuffix(content, "t2"))
}

func TestAppendToEmptyContentHasNoSeparator(t *testing.T) {
	ctx := context.Background()
	store := repotest.NewStore()
	owner := uuid.New()
	chat := store.PutChat(entity.Chat{UserId: owner, Messages: []entity.ChatMessage{{Sender: entity.SenderUser, Text: "hi"}}})

	s := NewStore(store, "Untitled")
	_, err := s.Submit(ctx, AppendToConversation{ConversationID: chat.Id, OwnerID: owner, Text: "material"})
	require.NoError(t, err)

	stored, _ := store.Chat(chat.Id)
	assert.Equal(t, "material", stored.Content)
	assert.Len(t, stored.Messages, 1)
}

func TestAppendToForeignChat(t *testing.T) {
	ctx := context.Background()
	store := repotest.NewStore()
	chat := store.PutChat(entity.Chat{UserId: uuid.New(), Content: "private"})

	s := NewStore(store, "Untitled")
	_, err := s.Submit(ctx, AppendToConversation{ConversationID: chat.Id, OwnerID: uuid.New(), Text: "intrusion"})
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	stored, _ := store.Chat(chat.Id)
	assert.Equal(t, "private", stored.Content)

	_, ok, err := s.Read(ctx, chat.Id, uuid.New())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestBlankTextRejected(t *testing.T) {
	s := NewStore(repotest.NewStore(), "Untitled")
	_, err := s.Submit(context.Background(), CreateConversation{OwnerID: uuid.New(), Text: " \n "})
	assert.ErrorIs(t, err, apperror.ErrInputInvalid)
}

func TestStorageFailureIsReported(t *testing.T) {
	store := repotest.NewStore()
	store.FailWrites = errors.New("db down")

	s := NewStore(store, "Untitled")
	_, err := s.Submit(context.Background(), CreateConversation{OwnerID: uuid.New(), Text: "t"})
	assert.ErrorIs(t, err, apperror.ErrStorage)
}
