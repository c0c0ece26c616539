package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/loopwear/loopwear-violation-service/internal/domain"
	"github.com/loopwear/loopwear-violation-service/internal/infrastructure/metrics"
)

type SettlementUsecase interface {
	// SettleCase computes and records the deposit refund for one case.
	// Idempotent: a second call returns the recorded settlement
	// unchanged, never a second deduction.
	SettleCase(ctx context.Context, caseID string) (*domain.Settlement, error)
	// SettleEligibleCases sweeps accepted and admin-resolved cases that
	// have no settlement yet.
	SettleEligibleCases(ctx context.Context) error
}

type DefaultSettlementUsecase struct {
	violationRepo  domain.ViolationRepository
	resolutionRepo domain.ResolutionRepository
	orderRepo      domain.OrderRepository
	settlementRepo domain.SettlementRepository
	metrics        *metrics.ViolationMetrics
}

func NewDefaultSettlementUsecase(
	violationRepo domain.ViolationRepository,
	resolutionRepo domain.ResolutionRepository,
	orderRepo domain.OrderRepository,
	settlementRepo domain.SettlementRepository,
	violationMetrics *metrics.ViolationMetrics,
) *DefaultSettlementUsecase {
	return &DefaultSettlementUsecase{
		violationRepo:  violationRepo,
		resolutionRepo: resolutionRepo,
		orderRepo:      orderRepo,
		settlementRepo: settlementRepo,
		metrics:        violationMetrics,
	}
}

func (uc *DefaultSettlementUsecase) SettleCase(ctx context.Context, caseID string) (*domain.Settlement, error) {
	violationCase, err := uc.violationRepo.GetCaseByID(ctx, caseID)
	if err != nil {
		return nil, err
	}

	penalty, err := uc.effectivePenalty(ctx, violationCase)
	if err != nil {
		return nil, err
	}

	order, err := uc.orderRepo.GetOrderWithItems(ctx, violationCase.OrderID)
	if err != nil {
		return nil, err
	}
	item := order.Item(violationCase.OrderItemID)
	if item == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrOrderItemNotFound, violationCase.OrderItemID)
	}

	depositBase, refund := ComputeRefund(item.DepositPerUnit, item.Quantity, penalty)
	settlement := &domain.Settlement{
		ID:            uuid.NewString(),
		CaseID:        violationCase.ID,
		OrderItemID:   item.ID,
		DepositBase:   depositBase,
		PenaltyAmount: penalty,
		RefundAmount:  refund,
		SettledAt:     time.Now(),
	}

	created, err := uc.settlementRepo.Create(ctx, settlement)
	if err != nil {
		return nil, err
	}
	if !created {
		// Already settled; return the recorded row untouched.
		return uc.settlementRepo.GetByCaseID(ctx, violationCase.ID)
	}

	uc.metrics.SettlementsTotal.Inc()
	if refund > 0 {
		uc.metrics.SettlementRefundTotal.Add(refund)
	}
	slog.Info("violation case settled",
		"case_id", settlement.CaseID,
		"deposit_base", settlement.DepositBase,
		"penalty", settlement.PenaltyAmount,
		"refund", settlement.RefundAmount,
	)
	return settlement, nil
}

// effectivePenalty resolves which penalty applies: the provider's
// claimed amount for customer-accepted cases, the admin-approved amount
// for resolved ones. Rejected claims are not settlement-eligible, their
// deposit goes back through the regular refund path.
func (uc *DefaultSettlementUsecase) effectivePenalty(ctx context.Context, violationCase *domain.ViolationCase) (float64, error) {
	switch violationCase.Status {
	case domain.ViolationCustomerAccepted:
		return violationCase.PenaltyAmount, nil
	case domain.ViolationResolved:
		resolution, err := uc.resolutionRepo.GetByCaseID(ctx, violationCase.ID)
		if err != nil {
			return 0, err
		}
		if resolution.Kind == domain.ResolutionReject {
			return 0, fmt.Errorf("%w: case %s was resolved against the claim", domain.ErrCaseNotSettleable, violationCase.ID)
		}
		return resolution.PenaltyAmount, nil
	default:
		return 0, fmt.Errorf("%w: case %s is %s", domain.ErrCaseNotSettleable, violationCase.ID, violationCase.Status)
	}
}

func (uc *DefaultSettlementUsecase) SettleEligibleCases(ctx context.Context) error {
	cases, err := uc.violationRepo.ListSettleableCases(ctx)
	if err != nil {
		return err
	}
	settled := 0
	for _, violationCase := range cases {
		select {
		case <-ctx.Done():
			slog.Info("settlement sweep canceled", "settled", settled)
			return ctx.Err()
		default:
		}

		if _, err := uc.SettleCase(ctx, violationCase.ID); err != nil {
			slog.Error("failed to settle case", "case_id", violationCase.ID, "error", err.Error())
			continue
		}
		settled++
	}
	return nil
}
