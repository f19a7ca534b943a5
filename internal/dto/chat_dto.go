package dto

import (
	"time"

	"github.com/google/uuid"
)

type AskRequest struct {
	ChatId   string `json:"chat_id"`
	Question string `json:"question"`
}

type AskResponse struct {
	Answer string `json:"answer"`
}

type MessageDto struct {
	Sender string `json:"sender" validate:"required,oneof=user bot"`
	Text   string `json:"text"`
}

type ChatResponse struct {
	Id        uuid.UUID    `json:"id"`
	Summary   string       `json:"summary"`
	Content   string       `json:"content"`
	Messages  []MessageDto `json:"messages"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt *time.Time   `json:"updated_at"`
}

type RenameChatRequest struct {
	Summary string `json:"summary" validate:"required,max=255"`
}

type SaveChatRequest struct {
	ChatId   *uuid.UUID   `json:"chat_id"`
	Messages []MessageDto `json:"messages" validate:"dive"`
}
