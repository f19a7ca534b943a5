package model

import (
	"time"

	"github.com/google/uuid"
)

type QuizAttempt struct {
	Id        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId    uuid.UUID  `gorm:"type:uuid;not null;index"`
	ChatId    *uuid.UUID `gorm:"type:uuid;index"`
	Score     int        `gorm:"not null"`
	Total     int        `gorm:"not null;default:0"`
	CreatedAt time.Time  `gorm:"autoCreateTime"`
}

func (QuizAttempt) TableName() string {
	return "quiz_attempts"
}
