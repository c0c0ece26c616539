package mappers

import (
	"github.com/loopwear/loopwear-violation-service/internal/domain"
	"github.com/loopwear/loopwear-violation-service/internal/infrastructure/postgres/models"
)

func ToDomainViolationCase(model *models.ViolationCaseModel) *domain.ViolationCase {
	return &domain.ViolationCase{
		ID:                       model.ID,
		OrderID:                  model.OrderID,
		OrderItemID:              model.OrderItemID,
		Kind:                     domain.ViolationKind(model.Kind),
		Description:              model.Description,
		DamagePercent:            model.DamagePercent,
		PenaltyPercent:           model.PenaltyPercent,
		PenaltyAmount:            model.PenaltyAmount,
		Status:                   domain.ViolationStatus(model.Status),
		CustomerResponseNote:     model.CustomerResponseNote,
		CustomerRespondedAt:      model.CustomerRespondedAt,
		ProviderRevisionNote:     model.ProviderRevisionNote,
		ProviderRevisedAt:        model.ProviderRevisedAt,
		ProviderEscalationReason: model.ProviderEscalationReason,
		CustomerEscalationReason: model.CustomerEscalationReason,
		ResolutionKind:           domain.ResolutionKind(model.ResolutionKind),
		ResolutionNote:           model.ResolutionNote,
		CreatedAt:                model.CreatedAt,
		UpdatedAt:                model.UpdatedAt,
	}
}

func ToGORMViolationCase(violationCase *domain.ViolationCase) *models.ViolationCaseModel {
	return &models.ViolationCaseModel{
		ID:                       violationCase.ID,
		OrderID:                  violationCase.OrderID,
		OrderItemID:              violationCase.OrderItemID,
		Kind:                     string(violationCase.Kind),
		Description:              violationCase.Description,
		DamagePercent:            violationCase.DamagePercent,
		PenaltyPercent:           violationCase.PenaltyPercent,
		PenaltyAmount:            violationCase.PenaltyAmount,
		Status:                   string(violationCase.Status),
		CustomerResponseNote:     violationCase.CustomerResponseNote,
		CustomerRespondedAt:      violationCase.CustomerRespondedAt,
		ProviderRevisionNote:     violationCase.ProviderRevisionNote,
		ProviderRevisedAt:        violationCase.ProviderRevisedAt,
		ProviderEscalationReason: violationCase.ProviderEscalationReason,
		CustomerEscalationReason: violationCase.CustomerEscalationReason,
		ResolutionKind:           string(violationCase.ResolutionKind),
		ResolutionNote:           violationCase.ResolutionNote,
		CreatedAt:                violationCase.CreatedAt,
		UpdatedAt:                violationCase.UpdatedAt,
	}
}

func ToDomainViolationCases(caseModels []models.ViolationCaseModel) []*domain.ViolationCase {
	cases := make([]*domain.ViolationCase, len(caseModels))
	for i := range caseModels {
		cases[i] = ToDomainViolationCase(&caseModels[i])
	}
	return cases
}
