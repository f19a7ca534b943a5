package dto

import "github.com/google/uuid"

type QuizQuestion struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Answer   string   `json:"answer"`
}

type GenerateQuizResponse struct {
	QuizId    uuid.UUID      `json:"quiz_id"`
	ChatId    uuid.UUID      `json:"chat_id"`
	Questions []QuizQuestion `json:"questions"`
}

type SubmitQuizRequest struct {
	QuizId  uuid.UUID `json:"quiz_id" validate:"required"`
	Answers []string  `json:"answers" validate:"required"`
}

type SubmitQuizResponse struct {
	Score    int              `json:"score"`
	Total    int              `json:"total"`
	Correct  []bool           `json:"correct"`
	Progress ProgressResponse `json:"progress"`
}
