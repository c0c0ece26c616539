package usecase

import (
	"context"

	"github.com/loopwear/loopwear-violation-service/internal/domain"
)

func (uc *DefaultViolationUsecase) GetCaseByID(ctx context.Context, caseID string) (*domain.ViolationCase, error) {
	violationCase, err := uc.violationRepo.GetCaseByID(ctx, caseID)
	if err != nil {
		return nil, err
	}
	violationCase.Evidence, err = uc.violationRepo.ListEvidenceByCase(ctx, caseID)
	if err != nil {
		return nil, err
	}
	return violationCase, nil
}

func (uc *DefaultViolationUsecase) ListCasesByOrderID(ctx context.Context, orderID string) ([]*domain.ViolationCase, error) {
	return uc.violationRepo.ListCasesByOrderID(ctx, orderID)
}

func (uc *DefaultViolationUsecase) ListCasesByItemID(ctx context.Context, itemID string) ([]*domain.ViolationCase, error) {
	return uc.violationRepo.ListCasesByItemID(ctx, itemID)
}

func (uc *DefaultViolationUsecase) ListCasesByProviderID(ctx context.Context, providerID string) ([]*domain.ViolationCase, error) {
	return uc.violationRepo.ListCasesByProviderID(ctx, providerID)
}

func (uc *DefaultViolationUsecase) ListCasesByCustomerID(ctx context.Context, customerID string) ([]*domain.ViolationCase, error) {
	return uc.violationRepo.ListCasesByCustomerID(ctx, customerID)
}
