package history

import (
	"fmt"
	"testing"

	"ai-learning-assistant-be/internal/entity"
	"ai-learning-assistant-be/pkg/llm"

	"github.com/stretchr/testify/assert"
)

func messages(n int) []entity.ChatMessage {
	out := make([]entity.ChatMessage, n)
	for i := range out {
		sender := entity.SenderUser
		if i%2 == 1 {
			sender = entity.SenderBot
		}
		out[i] = entity.ChatMessage{Sender: sender, Text: fmt.Sprintf("m%d", i)}
	}
	return out
}

func TestWindowShortLogIsReturnedWhole(t *testing.T) {
	for n := 0; n <= DefaultWindow; n++ {
		got := Window(messages(n), DefaultWindow)
		assert.Len(t, got, n)
		for i, m := range got {
			assert.Equal(t, fmt.Sprintf("m%d", i), m.Content)
		}
	}
}

func TestWindowLongLogKeepsLastK(t *testing.T) {
	got := Window(messages(12), DefaultWindow)

	assert.Equal(t, []llm.Message{
		{Role: llm.RoleModel, Content: "m7"},
		{Role: llm.RoleUser, Content: "m8"},
		{Role: llm.RoleModel, Content: "m9"},
		{Role: llm.RoleUser, Content: "m10"},
		{Role: llm.RoleModel, Content: "m11"},
	}, got)
}

func TestWindowDoesNotMutateInput(t *testing.T) {
	in := messages(3)
	_ = Window(in, 2)
	assert.Equal(t, messages(3), in)
}

func TestWindowZero(t *testing.T) {
	assert.Empty(t, Window(messages(3), 0))
}
