package entity

import (
	"time"

	"ai-learning-assistant-be/pkg/quiz"

	"github.com/google/uuid"
)

// QuizBatch is a generated quiz kept around until it is submitted or expires.
type QuizBatch struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	ChatId    uuid.UUID
	Items     []quiz.Item
	CreatedAt time.Time
}

type QuizAttempt struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	ChatId    *uuid.UUID
	Score     int
	Total     int
	CreatedAt time.Time
}
