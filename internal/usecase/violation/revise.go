package usecase

import (
	"context"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/loopwear/loopwear-violation-service/internal/domain"
	violationdto "github.com/loopwear/loopwear-violation-service/internal/usecase/dto/violation"
)

// ProviderRevise updates only the supplied fields of a contested case,
// clears the customer's prior response and restarts the response step
// by resetting the status to PENDING. Only legal from
// CUSTOMER_REJECTED.
func (uc *DefaultViolationUsecase) ProviderRevise(ctx context.Context, input *violationdto.ProviderReviseInput) (*domain.ViolationCase, error) {
	violationCase, err := uc.violationRepo.GetCaseByID(ctx, input.CaseID)
	if err != nil {
		return nil, err
	}
	order, err := uc.orderRepo.GetOrderWithItems(ctx, violationCase.OrderID)
	if err != nil {
		return nil, err
	}
	if order.ProviderID != input.ProviderID {
		return nil, status.Error(codes.PermissionDenied, "caller is not the provider of this order")
	}

	if err := validateRevisePatch(input.Patch); err != nil {
		return nil, err
	}

	revised, err := uc.violationRepo.ReviseCase(ctx, violationCase.ID, input.Patch, time.Now())
	if err != nil {
		return nil, err
	}

	uc.metrics.CasesRevisedTotal.Inc()
	uc.notify(ctx, order.CustomerID,
		"The provider revised the violation claim on your order. Please review and respond again.",
		domain.NotifyCategoryViolationRevised, order.ID)

	return revised, nil
}

func validateRevisePatch(patch domain.ReviseCasePatch) error {
	if patch.Kind != nil && !patch.Kind.Valid() {
		return status.Errorf(codes.InvalidArgument, "unknown violation kind %q", *patch.Kind)
	}
	if patch.Description != nil {
		if err := validateDescription(*patch.Description); err != nil {
			return status.Error(codes.InvalidArgument, err.Error())
		}
	}
	if patch.DamagePercent != nil {
		if err := validatePercent("damage percent", *patch.DamagePercent); err != nil {
			return status.Error(codes.InvalidArgument, err.Error())
		}
	}
	if patch.PenaltyPercent != nil {
		if err := validatePercent("penalty percent", *patch.PenaltyPercent); err != nil {
			return status.Error(codes.InvalidArgument, err.Error())
		}
	}
	if patch.PenaltyAmount != nil && *patch.PenaltyAmount < 0 {
		return status.Errorf(codes.InvalidArgument, "penalty amount must not be negative, got %.2f", *patch.PenaltyAmount)
	}
	return nil
}
