package service

import (
	"context"
	"testing"
	"time"

	"ai-learning-assistant-be/internal/constant"
	"ai-learning-assistant-be/internal/dto"
	"ai-learning-assistant-be/internal/pkg/logger"
	"ai-learning-assistant-be/internal/repository/memory"
	"ai-learning-assistant-be/internal/repository/repotest"
	"ai-learning-assistant-be/pkg/chat/content"
	"ai-learning-assistant-be/pkg/chat/state"
	"ai-learning-assistant-be/pkg/quiz"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStudySessionEndToEnd(t *testing.T) {
	ctx := context.Background()
	store := repotest.NewStore()
	log := logger.NewNopLogger()
	publisher := &recordingPublisher{}
	provider := &scriptedProvider{replies: []string{
		"It converts light energy into chemical energy.",
		"```json\n" + quizJSON(t, 5) + "\n```",
	}}

	contents := content.NewStore(store, constant.DefaultChatSummary)
	auth := NewAuthService(store, testSecret, time.Hour, log)
	users := NewUserService(store, publisher, log, t.TempDir(), 1<<20)
	contentSvc := NewContentService(contents, stubExtractor{}, publisher, log)
	chats := NewChatService(store, state.NewManager(store, state.DefaultSummaryLength), provider, publisher, log, 5)
	quizzes := NewQuizService(contents, provider, quiz.NewDecoder(quiz.DefaultBatchSize), memory.NewQuizBatchRepository(time.Minute), users, log)

	registered, err := auth.Register(ctx, &dto.RegisterRequest{Email: "student@example.com", Password: "secret1"})
	require.NoError(t, err)
	userId := registered.Id

	submitted, err := contentSvc.Submit(ctx, content.CreateConversation{
		OwnerID: userId,
		Text:    "Photosynthesis converts light energy into chemical energy stored in glucose.",
	})
	require.NoError(t, err)
	chatId := submitted.ChatId

	answer, err := chats.Ask(ctx, userId, &dto.AskRequest{ChatId: chatId.String(), Question: "What does photosynthesis do?"})
	require.NoError(t, err)
	assert.Equal(t, "It converts light energy into chemical energy.", answer.Answer)

	generated, err := quizzes.Generate(ctx, userId, chatId)
	require.NoError(t, err)
	require.Len(t, generated.Questions, 5)

	answers := make([]string, len(generated.Questions))
	for i, q := range generated.Questions {
		answers[i] = q.Answer
	}
	answers[4] = "A"

	result, err := quizzes.Submit(ctx, userId, chatId, &dto.SubmitQuizRequest{QuizId: generated.QuizId, Answers: answers})
	require.NoError(t, err)
	assert.Equal(t, 4, result.Score)
	assert.Equal(t, "4.00", result.Progress.AvgScore)

	chat, err := chats.GetChat(ctx, userId, chatId)
	require.NoError(t, err)
	require.Len(t, chat.Messages, 2)
	assert.Equal(t, "user", chat.Messages[0].Sender)
	assert.Equal(t, "bot", chat.Messages[1].Sender)

	profile, err := users.GetProfile(ctx, userId)
	require.NoError(t, err)
	assert.Equal(t, 1, profile.QuizzesTaken)
}
