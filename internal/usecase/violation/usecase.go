package usecase

import (
	"context"

	"github.com/loopwear/loopwear-violation-service/internal/domain"
	"github.com/loopwear/loopwear-violation-service/internal/infrastructure/metrics"
	violationdto "github.com/loopwear/loopwear-violation-service/internal/usecase/dto/violation"
)

type ViolationUsecase interface {
	ReportViolations(ctx context.Context, input *violationdto.ReportViolationsInput) ([]*domain.ViolationCase, error)
	CustomerRespond(ctx context.Context, input *violationdto.CustomerRespondInput) (*domain.ViolationCase, error)
	ProviderRevise(ctx context.Context, input *violationdto.ProviderReviseInput) (*domain.ViolationCase, error)
	Escalate(ctx context.Context, input *violationdto.EscalateInput) (*domain.ViolationCase, error)
	AccessCheck(ctx context.Context, caseID, userID string, role domain.Role) (bool, error)

	GetCaseByID(ctx context.Context, caseID string) (*domain.ViolationCase, error)
	ListCasesByOrderID(ctx context.Context, orderID string) ([]*domain.ViolationCase, error)
	ListCasesByItemID(ctx context.Context, itemID string) ([]*domain.ViolationCase, error)
	ListCasesByProviderID(ctx context.Context, providerID string) ([]*domain.ViolationCase, error)
	ListCasesByCustomerID(ctx context.Context, customerID string) ([]*domain.ViolationCase, error)
}

type DefaultViolationUsecase struct {
	violationRepo domain.ViolationRepository
	orderRepo     domain.OrderRepository
	storage       domain.EvidenceStorage
	notifier      domain.NotificationGateway
	metrics       *metrics.ViolationMetrics
}

func NewDefaultViolationUsecase(
	violationRepo domain.ViolationRepository,
	orderRepo domain.OrderRepository,
	storage domain.EvidenceStorage,
	notifier domain.NotificationGateway,
	violationMetrics *metrics.ViolationMetrics,
) *DefaultViolationUsecase {
	return &DefaultViolationUsecase{
		violationRepo: violationRepo,
		orderRepo:     orderRepo,
		storage:       storage,
		notifier:      notifier,
		metrics:       violationMetrics,
	}
}
