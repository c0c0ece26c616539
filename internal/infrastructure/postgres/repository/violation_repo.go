package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/loopwear/loopwear-violation-service/internal/domain"
	"github.com/loopwear/loopwear-violation-service/internal/infrastructure/postgres/mappers"
	"github.com/loopwear/loopwear-violation-service/internal/infrastructure/postgres/models"
)

type DefaultViolationRepository struct {
	db *gorm.DB
}

func NewDefaultViolationRepository(db *gorm.DB) *DefaultViolationRepository {
	return &DefaultViolationRepository{db: db}
}

var openStatuses = func() []string {
	statuses := make([]string, len(domain.OpenViolationStatuses))
	for i, s := range domain.OpenViolationStatuses {
		statuses[i] = string(s)
	}
	return statuses
}()

// CreateCasesWithEvidence writes a whole report batch atomically. The
// open-case guard runs inside the transaction: existing open cases for
// each item are locked and re-checked, so concurrent reports for the
// same item cannot both pass. A partial unique index on open cases
// backs this up at the schema level.
func (r *DefaultViolationRepository) CreateCasesWithEvidence(ctx context.Context, cases []*domain.ViolationCase, evidence []*domain.EvidenceRecord) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, violationCase := range cases {
			var open int64
			if err := tx.Model(&models.ViolationCaseModel{}).
				Clauses(clause.Locking{Strength: "UPDATE"}).
				Where("order_item_id = ?", violationCase.OrderItemID).
				Where("status IN ?", openStatuses).
				Count(&open).Error; err != nil {
				return err
			}
			if open > 0 {
				return fmt.Errorf("%w: item %s", domain.ErrDuplicateOpenCase, violationCase.OrderItemID)
			}
			if err := tx.Create(mappers.ToGORMViolationCase(violationCase)).Error; err != nil {
				return err
			}
		}
		for _, record := range evidence {
			if err := tx.Create(mappers.ToGORMEvidence(record)).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *DefaultViolationRepository) GetCaseByID(ctx context.Context, caseID string) (*domain.ViolationCase, error) {
	var caseModel models.ViolationCaseModel
	if err := r.db.WithContext(ctx).First(&caseModel, "id = ?", caseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", domain.ErrCaseNotFound, caseID)
		}
		return nil, err
	}
	return mappers.ToDomainViolationCase(&caseModel), nil
}

func (r *DefaultViolationRepository) ListCasesByOrderID(ctx context.Context, orderID string) ([]*domain.ViolationCase, error) {
	return r.listCases(ctx, "order_id = ?", orderID)
}

func (r *DefaultViolationRepository) ListCasesByItemID(ctx context.Context, itemID string) ([]*domain.ViolationCase, error) {
	return r.listCases(ctx, "order_item_id = ?", itemID)
}

func (r *DefaultViolationRepository) listCases(ctx context.Context, query string, args ...interface{}) ([]*domain.ViolationCase, error) {
	var caseModels []models.ViolationCaseModel
	if err := r.db.WithContext(ctx).
		Where(query, args...).
		Order("created_at DESC").
		Find(&caseModels).Error; err != nil {
		return nil, err
	}
	return mappers.ToDomainViolationCases(caseModels), nil
}

func (r *DefaultViolationRepository) ListCasesByProviderID(ctx context.Context, providerID string) ([]*domain.ViolationCase, error) {
	return r.listCasesJoiningOrders(ctx, "orders.provider_id = ?", providerID)
}

func (r *DefaultViolationRepository) ListCasesByCustomerID(ctx context.Context, customerID string) ([]*domain.ViolationCase, error) {
	return r.listCasesJoiningOrders(ctx, "orders.customer_id = ?", customerID)
}

func (r *DefaultViolationRepository) listCasesJoiningOrders(ctx context.Context, query string, args ...interface{}) ([]*domain.ViolationCase, error) {
	var caseModels []models.ViolationCaseModel
	if err := r.db.WithContext(ctx).
		Model(&models.ViolationCaseModel{}).
		Joins("JOIN orders ON orders.id = violation_cases.order_id").
		Where(query, args...).
		Order("violation_cases.created_at DESC").
		Find(&caseModels).Error; err != nil {
		return nil, err
	}
	return mappers.ToDomainViolationCases(caseModels), nil
}

// ListCasesByStatus orders oldest-first: the admin queue serves the
// first-reported deadlock first.
func (r *DefaultViolationRepository) ListCasesByStatus(ctx context.Context, status domain.ViolationStatus) ([]*domain.ViolationCase, error) {
	var caseModels []models.ViolationCaseModel
	if err := r.db.WithContext(ctx).
		Where("status = ?", string(status)).
		Order("created_at ASC").
		Find(&caseModels).Error; err != nil {
		return nil, err
	}
	return mappers.ToDomainViolationCases(caseModels), nil
}

func (r *DefaultViolationRepository) HasOpenCaseForItem(ctx context.Context, itemID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ViolationCaseModel{}).
		Where("order_item_id = ?", itemID).
		Where("status IN ?", openStatuses).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// RespondCAS performs the customer-response transition as a guarded
// UPDATE: the status predicate makes concurrent responses lose instead
// of double-transitioning. Rebuttal evidence is attached in the same
// transaction.
func (r *DefaultViolationRepository) RespondCAS(ctx context.Context, caseID string, newStatus domain.ViolationStatus, note string, respondedAt time.Time, evidence []*domain.EvidenceRecord) (bool, error) {
	swapped := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.ViolationCaseModel{}).
			Where("id = ?", caseID).
			Where("status = ?", string(domain.ViolationPending)).
			Updates(map[string]interface{}{
				"status":                 string(newStatus),
				"customer_response_note": note,
				"customer_responded_at":  respondedAt,
				"updated_at":             respondedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return nil
		}
		swapped = true
		for _, record := range evidence {
			if err := tx.Create(mappers.ToGORMEvidence(record)).Error; err != nil {
				return err
			}
		}
		return nil
	})
	return swapped, err
}

// ReviseCase applies the provider's patch under a row lock. The
// read-modify-write touches several columns, so a plain CAS update is
// not enough here.
func (r *DefaultViolationRepository) ReviseCase(ctx context.Context, caseID string, patch domain.ReviseCasePatch, revisedAt time.Time) (*domain.ViolationCase, error) {
	var revised *domain.ViolationCase
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var caseModel models.ViolationCaseModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&caseModel, "id = ?", caseID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: %s", domain.ErrCaseNotFound, caseID)
			}
			return err
		}
		if caseModel.Status != string(domain.ViolationCustomerRejected) {
			return fmt.Errorf("%w: case %s is %s, revision requires CUSTOMER_REJECTED", domain.ErrInvalidCaseStatus, caseID, caseModel.Status)
		}

		if patch.Kind != nil {
			caseModel.Kind = string(*patch.Kind)
		}
		if patch.Description != nil {
			caseModel.Description = *patch.Description
		}
		if patch.DamagePercent != nil {
			caseModel.DamagePercent = patch.DamagePercent
		}
		if patch.PenaltyPercent != nil {
			caseModel.PenaltyPercent = *patch.PenaltyPercent
		}
		if patch.PenaltyAmount != nil {
			caseModel.PenaltyAmount = *patch.PenaltyAmount
		}
		if patch.ResponseNote != nil {
			caseModel.ProviderRevisionNote = *patch.ResponseNote
		}
		caseModel.ProviderRevisedAt = &revisedAt

		// Revision always restarts the customer-response step.
		caseModel.Status = string(domain.ViolationPending)
		caseModel.CustomerResponseNote = ""
		caseModel.CustomerRespondedAt = nil
		caseModel.UpdatedAt = revisedAt

		if err := tx.Model(&models.ViolationCaseModel{}).
			Where("id = ?", caseID).
			Select("*").
			Omit("id", "created_at").
			Updates(&caseModel).Error; err != nil {
			return err
		}
		revised = mappers.ToDomainViolationCase(&caseModel)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return revised, nil
}

// EscalateCAS moves a contested case to admin review, writing the
// initiator's reason into its own column so both framings survive.
func (r *DefaultViolationRepository) EscalateCAS(ctx context.Context, caseID string, initiator domain.Role, reason string) (bool, error) {
	updates := map[string]interface{}{
		"status":     string(domain.ViolationPendingAdminReview),
		"updated_at": time.Now(),
	}
	switch initiator {
	case domain.RoleProvider:
		updates["provider_escalation_reason"] = reason
	case domain.RoleCustomer:
		updates["customer_escalation_reason"] = reason
	}

	result := r.db.WithContext(ctx).
		Model(&models.ViolationCaseModel{}).
		Where("id = ?", caseID).
		Where("status = ?", string(domain.ViolationCustomerRejected)).
		Updates(updates)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *DefaultViolationRepository) ListEvidenceByCase(ctx context.Context, caseID string) ([]*domain.EvidenceRecord, error) {
	var recordModels []models.EvidenceRecordModel
	if err := r.db.WithContext(ctx).
		Where("case_id = ?", caseID).
		Order("created_at ASC").
		Find(&recordModels).Error; err != nil {
		return nil, err
	}
	return mappers.ToDomainEvidenceList(recordModels), nil
}

// ListSettleableCases finds cases owed a settlement: accepted by the
// customer, or resolved in the provider's favor, with no ledger row
// yet. Resolved-against-the-claim cases refund through the regular
// deposit path, not here.
func (r *DefaultViolationRepository) ListSettleableCases(ctx context.Context) ([]*domain.ViolationCase, error) {
	var caseModels []models.ViolationCaseModel
	if err := r.db.WithContext(ctx).
		Model(&models.ViolationCaseModel{}).
		Joins("LEFT JOIN violation_settlements ON violation_settlements.case_id = violation_cases.id").
		Where("violation_settlements.id IS NULL").
		Where(
			r.db.Where("violation_cases.status = ?", string(domain.ViolationCustomerAccepted)).
				Or("violation_cases.status = ? AND violation_cases.resolution_kind IN ?",
					string(domain.ViolationResolved),
					[]string{string(domain.ResolutionUphold), string(domain.ResolutionCompromise)},
				),
		).
		Order("violation_cases.updated_at ASC").
		Find(&caseModels).Error; err != nil {
		return nil, err
	}
	return mappers.ToDomainViolationCases(caseModels), nil
}
