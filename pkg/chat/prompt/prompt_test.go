package prompt

import (
	"strings"
	"testing"

	"ai-learning-assistant-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildAsk(t *testing.T) {
	history := []llm.Message{
		{Role: llm.RoleUser, Content: "earlier question"},
		{Role: llm.RoleModel, Content: "earlier answer"},
	}

	payload := BuildAsk("Photosynthesis converts light to chemical energy.", history, "What does photosynthesis convert?")

	require.Len(t, payload, 3)
	assert.Equal(t, history, payload[:2])
	assert.Equal(t, llm.Message{
		Role:    llm.RoleUser,
		Content: "Context: Photosynthesis converts light to chemical energy.\n\nQuestion: What does photosynthesis convert?",
	}, payload[2])
	assert.Len(t, history, 2)
}

func TestBuildAskWithoutHistory(t *testing.T) {
	payload := BuildAsk("c", nil, "q")
	require.Len(t, payload, 1)
	assert.Equal(t, "Context: c\n\nQuestion: q", payload[0].Content)
}

func TestBuildQuiz(t *testing.T) {
	content := "line one\n\nline two"
	payload := BuildQuiz(content)

	require.Len(t, payload, 1)
	assert.Equal(t, llm.RoleUser, payload[0].Role)
	assert.True(t, strings.HasPrefix(payload[0].Content, "Generate 5 MCQs with 4 options each"))
	assert.True(t, strings.HasSuffix(payload[0].Content, "\nContent: "+content))
}
