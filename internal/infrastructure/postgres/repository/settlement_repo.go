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

type DefaultSettlementRepository struct {
	db *gorm.DB
}

func NewDefaultSettlementRepository(db *gorm.DB) *DefaultSettlementRepository {
	return &DefaultSettlementRepository{db: db}
}

// Create relies on the unique case_id index: a concurrent or repeated
// settlement of the same case inserts nothing and reports created =
// false, which is the idempotency guarantee.
func (r *DefaultSettlementRepository) Create(ctx context.Context, settlement *domain.Settlement) (bool, error) {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "case_id"}},
			DoNothing: true,
		}).
		Create(mappers.ToGORMSettlement(settlement))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *DefaultSettlementRepository) GetByCaseID(ctx context.Context, caseID string) (*domain.Settlement, error) {
	var settlementModel models.SettlementModel
	if err := r.db.WithContext(ctx).First(&settlementModel, "case_id = ?", caseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("no settlement recorded for case %s", caseID)
		}
		return nil, err
	}
	return mappers.ToDomainSettlement(&settlementModel), nil
}
