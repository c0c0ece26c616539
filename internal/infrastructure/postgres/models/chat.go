package models

import "time"

// ChatMessageModel maps the marketplace chat table, read-only, for the
// dossier transcript.
type ChatMessageModel struct {
	ID          string `gorm:"primaryKey"`
	SenderID    string `gorm:"index"`
	RecipientID string `gorm:"index"`
	Body        string
	CreatedAt   time.Time
}

func (ChatMessageModel) TableName() string {
	return "chat_messages"
}
