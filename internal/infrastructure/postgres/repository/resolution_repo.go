package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/loopwear/loopwear-violation-service/internal/domain"
	"github.com/loopwear/loopwear-violation-service/internal/infrastructure/postgres/mappers"
	"github.com/loopwear/loopwear-violation-service/internal/infrastructure/postgres/models"
)

type DefaultResolutionRepository struct {
	db *gorm.DB
}

func NewDefaultResolutionRepository(db *gorm.DB) *DefaultResolutionRepository {
	return &DefaultResolutionRepository{db: db}
}

// RecordResolution inserts the resolution and flips the case to
// RESOLVED in one transaction. The case row is locked and its status
// re-checked, so two admins cannot both rule on the same case.
func (r *DefaultResolutionRepository) RecordResolution(ctx context.Context, resolution *domain.DisputeResolution) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var caseModel models.ViolationCaseModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&caseModel, "id = ?", resolution.CaseID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: %s", domain.ErrCaseNotFound, resolution.CaseID)
			}
			return err
		}
		if caseModel.Status != string(domain.ViolationPendingAdminReview) {
			return fmt.Errorf("%w: case %s is %s, resolution requires PENDING_ADMIN_REVIEW", domain.ErrInvalidCaseStatus, resolution.CaseID, caseModel.Status)
		}

		if err := tx.Create(mappers.ToGORMResolution(resolution)).Error; err != nil {
			return err
		}

		return tx.Model(&models.ViolationCaseModel{}).
			Where("id = ?", resolution.CaseID).
			Updates(map[string]interface{}{
				"status":          string(domain.ViolationResolved),
				"resolution_kind": string(resolution.Kind),
				"resolution_note": resolution.Note,
				"updated_at":      resolution.CreatedAt,
			}).Error
	})
}

func (r *DefaultResolutionRepository) GetByCaseID(ctx context.Context, caseID string) (*domain.DisputeResolution, error) {
	var resolutionModel models.DisputeResolutionModel
	if err := r.db.WithContext(ctx).First(&resolutionModel, "case_id = ?", caseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: case %s", domain.ErrResolutionNotFound, caseID)
		}
		return nil, err
	}
	return mappers.ToDomainResolution(&resolutionModel), nil
}
