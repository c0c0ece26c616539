package mappers

import (
	"github.com/loopwear/loopwear-violation-service/internal/domain"
	"github.com/loopwear/loopwear-violation-service/internal/infrastructure/postgres/models"
)

func ToDomainOrder(model *models.OrderModel) *domain.Order {
	order := &domain.Order{
		ID:          model.ID,
		CustomerID:  model.CustomerID,
		ProviderID:  model.ProviderID,
		Type:        domain.OrderType(model.Type),
		Status:      domain.OrderStatus(model.Status),
		DeliveredAt: model.DeliveredAt,
		RentalStart: model.RentalStart,
		RentalEnd:   model.RentalEnd,
		CreatedAt:   model.CreatedAt,
	}
	for i := range model.Items {
		order.Items = append(order.Items, ToDomainOrderItem(&model.Items[i]))
	}
	return order
}

func ToDomainOrderItem(model *models.OrderItemModel) *domain.OrderItem {
	return &domain.OrderItem{
		ID:             model.ID,
		OrderID:        model.OrderID,
		ProductID:      model.ProductID,
		ProductName:    model.ProductName,
		Quantity:       model.Quantity,
		DepositPerUnit: model.DepositPerUnit,
	}
}

func ToDomainChatMessage(model *models.ChatMessageModel) *domain.ChatMessage {
	return &domain.ChatMessage{
		ID:          model.ID,
		SenderID:    model.SenderID,
		RecipientID: model.RecipientID,
		Body:        model.Body,
		CreatedAt:   model.CreatedAt,
	}
}

func ToDomainUser(model *models.UserModel) *domain.User {
	return &domain.User{
		ID:        model.ID,
		FullName:  model.FullName,
		AvatarURL: model.AvatarURL,
	}
}
