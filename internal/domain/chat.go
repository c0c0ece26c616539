package domain

import (
	"context"
	"time"
)

// ChatMessage is the read model of the marketplace chat. The dossier
// pulls the prior conversation between the two parties of a case,
// matched by identity pair rather than by case.
type ChatMessage struct {
	ID          string
	SenderID    string
	RecipientID string
	Body        string
	CreatedAt   time.Time
}

type ChatRepository interface {
	// ListConversation returns every message exchanged between the two
	// users in chronological order.
	ListConversation(ctx context.Context, userA, userB string) ([]*ChatMessage, error)
}
