package dto

import (
	"time"

	"github.com/google/uuid"
)

type ProfileResponse struct {
	Id           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	ProfilePic   *string   `json:"profile_pic"`
	QuizzesTaken int       `json:"quizzes_taken"`
	AvgScore     string    `json:"avg_score"`
}

type UpdateProfileRequest struct {
	Username string `json:"username" validate:"required,max=100"`
}

type UploadAvatarResponse struct {
	ProfilePic string `json:"profile_pic"`
}

// RecordScoreRequest records a quiz graded by the client.
type RecordScoreRequest struct {
	ChatId *uuid.UUID `json:"chat_id"`
	Score  int        `json:"score" validate:"min=0"`
	Total  int        `json:"total" validate:"min=0"`
}

type ProgressEntry struct {
	Score  int        `json:"score"`
	Total  int        `json:"total"`
	ChatId *uuid.UUID `json:"chat_id,omitempty"`
	Date   time.Time  `json:"date"`
}

type ProgressResponse struct {
	QuizzesTaken int             `json:"quizzes_taken"`
	AvgScore     string          `json:"avg_score"`
	Progress     []ProgressEntry `json:"progress"`
}
