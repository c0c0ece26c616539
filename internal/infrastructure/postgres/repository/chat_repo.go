package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/loopwear/loopwear-violation-service/internal/domain"
	"github.com/loopwear/loopwear-violation-service/internal/infrastructure/postgres/mappers"
	"github.com/loopwear/loopwear-violation-service/internal/infrastructure/postgres/models"
)

type DefaultChatRepository struct {
	db *gorm.DB
}

func NewDefaultChatRepository(db *gorm.DB) *DefaultChatRepository {
	return &DefaultChatRepository{db: db}
}

// ListConversation returns the full exchange between the two users in
// either direction, oldest first.
func (r *DefaultChatRepository) ListConversation(ctx context.Context, userA, userB string) ([]*domain.ChatMessage, error) {
	var messageModels []models.ChatMessageModel
	if err := r.db.WithContext(ctx).
		Where("(sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?)", userA, userB, userB, userA).
		Order("created_at ASC").
		Find(&messageModels).Error; err != nil {
		return nil, err
	}
	messages := make([]*domain.ChatMessage, len(messageModels))
	for i := range messageModels {
		messages[i] = mappers.ToDomainChatMessage(&messageModels[i])
	}
	return messages, nil
}
