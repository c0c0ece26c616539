package usecase

import (
	"context"

	"github.com/loopwear/loopwear-violation-service/internal/domain"
	"github.com/loopwear/loopwear-violation-service/internal/infrastructure/metrics"
	arbitrationdto "github.com/loopwear/loopwear-violation-service/internal/usecase/dto/arbitration"
)

type ArbitrationUsecase interface {
	ListPendingCases(ctx context.Context) ([]*arbitrationdto.PendingCaseSummary, error)
	GetCaseDossier(ctx context.Context, caseID string) (*arbitrationdto.CaseDossier, error)
	RecordResolution(ctx context.Context, input *arbitrationdto.RecordResolutionInput) (*domain.DisputeResolution, error)
}

type DefaultArbitrationUsecase struct {
	violationRepo  domain.ViolationRepository
	resolutionRepo domain.ResolutionRepository
	orderRepo      domain.OrderRepository
	userRepo       domain.UserRepository
	chatRepo       domain.ChatRepository
	notifier       domain.NotificationGateway
	metrics        *metrics.ViolationMetrics
}

func NewDefaultArbitrationUsecase(
	violationRepo domain.ViolationRepository,
	resolutionRepo domain.ResolutionRepository,
	orderRepo domain.OrderRepository,
	userRepo domain.UserRepository,
	chatRepo domain.ChatRepository,
	notifier domain.NotificationGateway,
	violationMetrics *metrics.ViolationMetrics,
) *DefaultArbitrationUsecase {
	return &DefaultArbitrationUsecase{
		violationRepo:  violationRepo,
		resolutionRepo: resolutionRepo,
		orderRepo:      orderRepo,
		userRepo:       userRepo,
		chatRepo:       chatRepo,
		notifier:       notifier,
		metrics:        violationMetrics,
	}
}
