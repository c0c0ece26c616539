package usecase

import (
	"context"

	"github.com/loopwear/loopwear-violation-service/internal/domain"
)

// AccessCheck is the authorization predicate gating every read and
// write on a case. Admins always pass; a provider or customer passes
// only for their own order.
func (uc *DefaultViolationUsecase) AccessCheck(ctx context.Context, caseID, userID string, role domain.Role) (bool, error) {
	if role == domain.RoleAdmin {
		return true, nil
	}
	violationCase, err := uc.violationRepo.GetCaseByID(ctx, caseID)
	if err != nil {
		return false, err
	}
	order, err := uc.orderRepo.GetOrderWithItems(ctx, violationCase.OrderID)
	if err != nil {
		return false, err
	}
	switch role {
	case domain.RoleProvider:
		return order.ProviderID == userID, nil
	case domain.RoleCustomer:
		return order.CustomerID == userID, nil
	default:
		return false, nil
	}
}
