package prompt

import (
	"fmt"

	"ai-learning-assistant-be/pkg/llm"
)

const QuizDirective = `Generate 5 MCQs with 4 options each based on the following content. Also include the correct answer. Format it as JSON array only like:
[
  {
    "question": "What is ...?",
    "options": ["A", "B", "C", "D"],
    "answer": "B"
  }, ...
]`

// BuildAsk appends a final user turn carrying the full content and the
// question to the windowed history. The provider keeps no state, so the
// content goes into every request.
func BuildAsk(content string, history []llm.Message, question string) []llm.Message {
	payload := make([]llm.Message, 0, len(history)+1)
	payload = append(payload, history...)
	return append(payload, llm.Message{
		Role:    llm.RoleUser,
		Content: fmt.Sprintf("Context: %s\n\nQuestion: %s", content, question),
	})
}

// BuildQuiz is a single instruction turn followed by the content verbatim.
func BuildQuiz(content string) []llm.Message {
	return []llm.Message{{
		Role:    llm.RoleUser,
		Content: QuizDirective + "\nContent: " + content,
	}}
}
