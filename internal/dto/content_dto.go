package dto

import "github.com/google/uuid"

type SubmitTextRequest struct {
	ChatId *uuid.UUID `json:"chat_id"`
	Text   string     `json:"text" validate:"required"`
}

type SubmitContentResponse struct {
	ChatId uuid.UUID `json:"chat_id"`
}
