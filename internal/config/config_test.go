package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "config-test-secret"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "gemini", cfg.Ai.LLMProvider)
	assert.Equal(t, 5, cfg.Chat.HistoryWindow)
	assert.Equal(t, 40, cfg.Chat.SummaryLength)
	assert.Equal(t, 5, cfg.Chat.QuizSize)
	assert.Equal(t, 60*time.Second, cfg.Ai.RequestTimeout)
	assert.Equal(t, testSecret, cfg.Auth.JwtSecret)
	assert.False(t, cfg.IsProduction())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("LLM_PROVIDER", "ollama")
	t.Setenv("CHAT_HISTORY_WINDOW", "8")
	t.Setenv("LLM_REQUEST_TIMEOUT", "5s")
	t.Setenv("GO_ENV", "production")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "ollama", cfg.Ai.LLMProvider)
	assert.Equal(t, 8, cfg.Chat.HistoryWindow)
	assert.Equal(t, 5*time.Second, cfg.Ai.RequestTimeout)
	assert.True(t, cfg.IsProduction())
}

func TestLoadRejectsInvalidQuizSize(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("QUIZ_SIZE", "0")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRequiresJwtSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	assert.ErrorContains(t, err, "JWT_SECRET")
}
