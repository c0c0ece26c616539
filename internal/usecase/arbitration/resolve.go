package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/loopwear/loopwear-violation-service/internal/domain"
	arbitrationdto "github.com/loopwear/loopwear-violation-service/internal/usecase/dto/arbitration"
)

// RecordResolution writes the admin's binding decision and moves the
// case from PENDING_ADMIN_REVIEW to RESOLVED. The single authoritative
// exit from arbitration; settlement is picked up separately by the
// worker observing the RESOLVED transition.
func (uc *DefaultArbitrationUsecase) RecordResolution(ctx context.Context, input *arbitrationdto.RecordResolutionInput) (*domain.DisputeResolution, error) {
	if !input.Kind.Valid() {
		return nil, status.Errorf(codes.InvalidArgument, "unknown resolution kind %q", input.Kind)
	}

	violationCase, err := uc.violationRepo.GetCaseByID(ctx, input.CaseID)
	if err != nil {
		return nil, err
	}
	if violationCase.Status != domain.ViolationPendingAdminReview {
		return nil, fmt.Errorf("%w: case %s is %s, resolution requires PENDING_ADMIN_REVIEW", domain.ErrInvalidCaseStatus, violationCase.ID, violationCase.Status)
	}

	penalty, err := resolvedPenalty(violationCase, input)
	if err != nil {
		return nil, err
	}

	resolution := &domain.DisputeResolution{
		ID:            uuid.NewString(),
		CaseID:        violationCase.ID,
		AdminID:       input.AdminID,
		Kind:          input.Kind,
		Note:          input.Note,
		PenaltyAmount: penalty,
		CreatedAt:     time.Now(),
	}
	if err := uc.resolutionRepo.RecordResolution(ctx, resolution); err != nil {
		return nil, err
	}

	uc.metrics.CasesResolvedTotal.WithLabelValues(string(input.Kind)).Inc()

	if order, err := uc.orderRepo.GetOrderWithItems(ctx, violationCase.OrderID); err == nil {
		message := fmt.Sprintf("An administrator resolved the violation case on your order: %s.", resolutionMessage(input.Kind))
		uc.notifyQuiet(ctx, order.ProviderID, message, order.ID)
		uc.notifyQuiet(ctx, order.CustomerID, message, order.ID)
	} else {
		slog.Error("failed to load order for resolution notifications, skipping both parties",
			"case_id", violationCase.ID,
			"order_id", violationCase.OrderID,
			"error", err.Error(),
		)
	}

	return resolution, nil
}

// resolvedPenalty selects the penalty the settlement will apply:
// uphold keeps the provider's claimed amount, reject zeroes it, and
// compromise takes the admin-set amount.
func resolvedPenalty(violationCase *domain.ViolationCase, input *arbitrationdto.RecordResolutionInput) (float64, error) {
	switch input.Kind {
	case domain.ResolutionUphold:
		return violationCase.PenaltyAmount, nil
	case domain.ResolutionReject:
		return 0, nil
	case domain.ResolutionCompromise:
		if input.PenaltyAmount == nil {
			return 0, status.Error(codes.InvalidArgument, "compromise resolution requires a penalty amount")
		}
		if *input.PenaltyAmount < 0 {
			return 0, status.Errorf(codes.InvalidArgument, "penalty amount must not be negative, got %.2f", *input.PenaltyAmount)
		}
		return *input.PenaltyAmount, nil
	default:
		return 0, status.Errorf(codes.InvalidArgument, "unknown resolution kind %q", input.Kind)
	}
}

func resolutionMessage(kind domain.ResolutionKind) string {
	switch kind {
	case domain.ResolutionUphold:
		return "the claim was upheld"
	case domain.ResolutionReject:
		return "the claim was rejected"
	case domain.ResolutionCompromise:
		return "a compromise was reached"
	default:
		return string(kind)
	}
}

func (uc *DefaultArbitrationUsecase) notifyQuiet(ctx context.Context, userID, message, orderID string) {
	if err := uc.notifier.Notify(ctx, userID, message, domain.NotifyCategoryViolationResolved, orderID); err != nil {
		uc.metrics.NotificationErrorsTotal.Inc()
		slog.Error("failed to deliver resolution notification", "user_id", userID, "order_id", orderID, "error", err.Error())
	}
}
