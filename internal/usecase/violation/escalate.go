package usecase

import (
	"context"
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/loopwear/loopwear-violation-service/internal/domain"
	violationdto "github.com/loopwear/loopwear-violation-service/internal/usecase/dto/violation"
)

// Escalate moves a deadlocked case to admin review. Either party may
// initiate; the reason lands in the initiator's own field so both
// framings survive into arbitration.
func (uc *DefaultViolationUsecase) Escalate(ctx context.Context, input *violationdto.EscalateInput) (*domain.ViolationCase, error) {
	violationCase, err := uc.violationRepo.GetCaseByID(ctx, input.CaseID)
	if err != nil {
		return nil, err
	}
	order, err := uc.orderRepo.GetOrderWithItems(ctx, violationCase.OrderID)
	if err != nil {
		return nil, err
	}

	var initiator domain.Role
	var counterpartID string
	switch input.InitiatorID {
	case order.ProviderID:
		initiator = domain.RoleProvider
		counterpartID = order.CustomerID
	case order.CustomerID:
		initiator = domain.RoleCustomer
		counterpartID = order.ProviderID
	default:
		return nil, status.Error(codes.PermissionDenied, "caller is not a party of this order")
	}

	if violationCase.Status != domain.ViolationCustomerRejected {
		return nil, fmt.Errorf("%w: case %s is %s, escalation requires CUSTOMER_REJECTED", domain.ErrInvalidCaseStatus, violationCase.ID, violationCase.Status)
	}

	swapped, err := uc.violationRepo.EscalateCAS(ctx, violationCase.ID, initiator, input.Reason)
	if err != nil {
		return nil, err
	}
	if !swapped {
		return nil, fmt.Errorf("%w: case %s changed state concurrently", domain.ErrInvalidCaseStatus, violationCase.ID)
	}

	uc.metrics.CasesEscalatedTotal.WithLabelValues(string(initiator)).Inc()
	uc.notify(ctx, counterpartID,
		"The violation case on your order was escalated to an administrator for review.",
		domain.NotifyCategoryViolationEscalated, order.ID)

	return uc.violationRepo.GetCaseByID(ctx, violationCase.ID)
}
