package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ChatMessage struct {
	Sender string `json:"sender"`
	Text   string `json:"text"`
}

// Chat has no DeletedAt: deletion is permanent.
type Chat struct {
	Id        uuid.UUID                        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId    uuid.UUID                        `gorm:"type:uuid;not null;index"`
	Summary   string                           `gorm:"type:varchar(255);not null;default:'Untitled'"`
	Content   string                           `gorm:"type:text;not null;default:''"`
	Messages  datatypes.JSONSlice[ChatMessage] `gorm:"type:jsonb;not null;default:'[]'"`
	CreatedAt time.Time                        `gorm:"autoCreateTime;index"`
	UpdatedAt time.Time                        `gorm:"autoUpdateTime"`
}

func (Chat) TableName() string {
	return "chats"
}
