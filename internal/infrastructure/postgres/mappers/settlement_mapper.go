package mappers

import (
	"github.com/loopwear/loopwear-violation-service/internal/domain"
	"github.com/loopwear/loopwear-violation-service/internal/infrastructure/postgres/models"
)

func ToDomainSettlement(model *models.SettlementModel) *domain.Settlement {
	return &domain.Settlement{
		ID:            model.ID,
		CaseID:        model.CaseID,
		OrderItemID:   model.OrderItemID,
		DepositBase:   model.DepositBase,
		PenaltyAmount: model.PenaltyAmount,
		RefundAmount:  model.RefundAmount,
		SettledAt:     model.SettledAt,
	}
}

func ToGORMSettlement(settlement *domain.Settlement) *models.SettlementModel {
	return &models.SettlementModel{
		ID:            settlement.ID,
		CaseID:        settlement.CaseID,
		OrderItemID:   settlement.OrderItemID,
		DepositBase:   settlement.DepositBase,
		PenaltyAmount: settlement.PenaltyAmount,
		RefundAmount:  settlement.RefundAmount,
		SettledAt:     settlement.SettledAt,
	}
}
