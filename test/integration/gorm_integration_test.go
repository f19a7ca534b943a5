package integration

import (
	"context"
	"log"
	"os"
	"sync"
	"testing"

	"ai-learning-assistant-be/internal/constant"
	"ai-learning-assistant-be/internal/entity"
	"ai-learning-assistant-be/internal/model"
	"ai-learning-assistant-be/internal/pkg/apperror"
	"ai-learning-assistant-be/internal/repository/specification"
	"ai-learning-assistant-be/internal/repository/unitofwork"
	"ai-learning-assistant-be/pkg/chat/content"
	"ai-learning-assistant-be/pkg/chat/state"
	"ai-learning-assistant-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func openDB(t *testing.T) *gorm.DB {
	t.Helper()
	if err := godotenv.Load("../../.env"); err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	db, err := database.NewGormDBFromDSN(dsn, false, database.DefaultPoolConfig())
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Chat{}, &model.QuizAttempt{}))
	return db
}

func createUser(t *testing.T, uowFactory unitofwork.RepositoryFactory) *entity.User {
	t.Helper()
	user := &entity.User{
		Id:           uuid.New(),
		Email:        "test-integration-" + uuid.NewString() + "@example.com",
		PasswordHash: "x",
	}
	require.NoError(t, uowFactory.NewUnitOfWork(context.Background()).UserRepository().Create(context.Background(), user))
	return user
}

func TestChatLifecycle(t *testing.T) {
	ctx := context.Background()
	uowFactory := unitofwork.NewRepositoryFactory(openDB(t))
	user := createUser(t, uowFactory)

	contents := content.NewStore(uowFactory, constant.DefaultChatSummary)
	states := state.NewManager(uowFactory, state.DefaultSummaryLength)

	chat, err := contents.Submit(ctx, content.CreateConversation{OwnerID: user.Id, Text: "Photosynthesis converts light to chemical energy."})
	require.NoError(t, err)

	_, err = states.AppendTurn(ctx, chat.Id, user.Id, "What does photosynthesis convert?", "Light to chemical energy.")
	require.NoError(t, err)

	stored, err := uowFactory.NewUnitOfWork(ctx).ChatRepository().FindOne(ctx, specification.OwnedChat(chat.Id, user.Id)...)
	require.NoError(t, err)
	require.NotNil(t, stored)
	require.Len(t, stored.Messages, 2)
	assert.Equal(t, entity.SenderBot, stored.Messages[1].Sender)

	require.NoError(t, states.Delete(ctx, chat.Id, user.Id))
	_, ok, err := contents.Read(ctx, chat.Id, user.Id)
	require.NoError(t, err)
	assert.False(t, ok)

	err = states.Delete(ctx, chat.Id, user.Id)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestConcurrentAppendsKeepEveryUpload(t *testing.T) {
	ctx := context.Background()
	uowFactory := unitofwork.NewRepositoryFactory(openDB(t))
	user := createUser(t, uowFactory)
	contents := content.NewStore(uowFactory, constant.DefaultChatSummary)

	chat, err := contents.Submit(ctx, content.CreateConversation{OwnerID: user.Id, Text: "base"})
	require.NoError(t, err)

	const writers = 8
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := contents.Submit(ctx, content.AppendToConversation{ConversationID: chat.Id, OwnerID: user.Id, Text: "part"})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	text, ok, err := contents.Read(ctx, chat.Id, user.Id)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Len(t, text, len("base")+writers*len(content.Separator+"part"))
}
