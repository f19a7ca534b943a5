package entity

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	Id           uuid.UUID
	Email        string
	Username     string
	PasswordHash string
	ProfilePic   *string
	QuizzesTaken int
	TotalScore   int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
