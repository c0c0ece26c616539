package mappers

import (
	"github.com/loopwear/loopwear-violation-service/internal/domain"
	"github.com/loopwear/loopwear-violation-service/internal/infrastructure/postgres/models"
)

func ToDomainResolution(model *models.DisputeResolutionModel) *domain.DisputeResolution {
	return &domain.DisputeResolution{
		ID:            model.ID,
		CaseID:        model.CaseID,
		AdminID:       model.AdminID,
		Kind:          domain.ResolutionKind(model.Kind),
		Note:          model.Note,
		PenaltyAmount: model.PenaltyAmount,
		CreatedAt:     model.CreatedAt,
	}
}

func ToGORMResolution(resolution *domain.DisputeResolution) *models.DisputeResolutionModel {
	return &models.DisputeResolutionModel{
		ID:            resolution.ID,
		CaseID:        resolution.CaseID,
		AdminID:       resolution.AdminID,
		Kind:          string(resolution.Kind),
		Note:          resolution.Note,
		PenaltyAmount: resolution.PenaltyAmount,
		CreatedAt:     resolution.CreatedAt,
	}
}
