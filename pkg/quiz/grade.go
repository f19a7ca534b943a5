package quiz

import (
	"fmt"
	"strings"
)

type Grade struct {
	Score   int
	Total   int
	Correct []bool
}

// GradeAnswers compares answers position by position, ignoring surrounding
// whitespace and case. An empty answer counts as wrong.
func GradeAnswers(items []Item, answers []string) (Grade, error) {
	if len(answers) != len(items) {
		return Grade{}, fmt.Errorf("expected %d answers, got %d", len(items), len(answers))
	}

	grade := Grade{
		Total:   len(items),
		Correct: make([]bool, len(items)),
	}
	for i, item := range items {
		given := strings.TrimSpace(answers[i])
		if given != "" && strings.EqualFold(given, strings.TrimSpace(item.Answer)) {
			grade.Correct[i] = true
			grade.Score++
		}
	}
	return grade, nil
}
