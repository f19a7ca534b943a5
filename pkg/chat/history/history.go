package history

import (
	"ai-learning-assistant-be/internal/entity"
	"ai-learning-assistant-be/pkg/llm"

	"github.com/samber/lo"
)

const DefaultWindow = 5

// Window returns the last k messages in their original order as provider
// turns. Older turns are dropped.
func Window(messages []entity.ChatMessage, k int) []llm.Message {
	if k <= 0 {
		return []llm.Message{}
	}
	if len(messages) > k {
		messages = messages[len(messages)-k:]
	}
	return lo.Map(messages, func(m entity.ChatMessage, _ int) llm.Message {
		return llm.Message{Role: Role(m.Sender), Content: m.Text}
	})
}

// Role maps a stored sender to a provider role. Anything that is not the bot
// is treated as the user.
func Role(sender entity.Sender) string {
	if sender == entity.SenderBot {
		return llm.RoleModel
	}
	return llm.RoleUser
}
