package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/loopwear/loopwear-violation-service/internal/domain"
	"github.com/loopwear/loopwear-violation-service/internal/infrastructure/metrics"
)

// Fakes embed the repository interfaces so only the methods the
// arbitration path touches need an implementation.

type fakeCaseSource struct {
	domain.ViolationRepository
	cases    map[string]*domain.ViolationCase
	evidence map[string][]*domain.EvidenceRecord
}

func (f *fakeCaseSource) GetCaseByID(ctx context.Context, caseID string) (*domain.ViolationCase, error) {
	c, ok := f.cases[caseID]
	if !ok {
		return nil, domain.ErrCaseNotFound
	}
	return c, nil
}

func (f *fakeCaseSource) ListCasesByStatus(ctx context.Context, violationStatus domain.ViolationStatus) ([]*domain.ViolationCase, error) {
	var out []*domain.ViolationCase
	for _, c := range f.cases {
		if c.Status == violationStatus {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCaseSource) ListEvidenceByCase(ctx context.Context, caseID string) ([]*domain.EvidenceRecord, error) {
	return f.evidence[caseID], nil
}

type fakeResolutionRepo struct {
	cases       *fakeCaseSource
	resolutions map[string]*domain.DisputeResolution
	recordErr   error
}

func (f *fakeResolutionRepo) RecordResolution(ctx context.Context, resolution *domain.DisputeResolution) error {
	if f.recordErr != nil {
		return f.recordErr
	}
	c, ok := f.cases.cases[resolution.CaseID]
	if !ok {
		return domain.ErrCaseNotFound
	}
	if c.Status != domain.ViolationPendingAdminReview {
		return fmt.Errorf("%w: case %s is %s", domain.ErrInvalidCaseStatus, c.ID, c.Status)
	}
	f.resolutions[resolution.CaseID] = resolution
	c.Status = domain.ViolationResolved
	c.ResolutionKind = resolution.Kind
	c.ResolutionNote = resolution.Note
	return nil
}

func (f *fakeResolutionRepo) GetByCaseID(ctx context.Context, caseID string) (*domain.DisputeResolution, error) {
	r, ok := f.resolutions[caseID]
	if !ok {
		return nil, domain.ErrResolutionNotFound
	}
	return r, nil
}

type fakeOrderSource struct {
	domain.OrderRepository
	orders map[string]*domain.Order
}

func (f *fakeOrderSource) GetOrderWithItems(ctx context.Context, orderID string) (*domain.Order, error) {
	o, ok := f.orders[orderID]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	return o, nil
}

type fakeUserRepo struct {
	users map[string]*domain.User
}

func (f *fakeUserRepo) GetByID(ctx context.Context, userID string) (*domain.User, error) {
	u, ok := f.users[userID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

type fakeChatRepo struct {
	messages []*domain.ChatMessage
}

func (f *fakeChatRepo) ListConversation(ctx context.Context, userA, userB string) ([]*domain.ChatMessage, error) {
	var out []*domain.ChatMessage
	for _, m := range f.messages {
		if (m.SenderID == userA && m.RecipientID == userB) || (m.SenderID == userB && m.RecipientID == userA) {
			out = append(out, m)
		}
	}
	return out, nil
}

type fakeNotifier struct {
	sent []string
	err  error
}

func (f *fakeNotifier) Notify(ctx context.Context, userID, message, category, orderID string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, userID)
	return nil
}

type arbitrationEnv struct {
	uc          *DefaultArbitrationUsecase
	cases       *fakeCaseSource
	resolutions *fakeResolutionRepo
	users       *fakeUserRepo
	chat        *fakeChatRepo
	notifier    *fakeNotifier
}

func newArbitrationEnv() *arbitrationEnv {
	cases := &fakeCaseSource{
		cases:    make(map[string]*domain.ViolationCase),
		evidence: make(map[string][]*domain.EvidenceRecord),
	}
	resolutions := &fakeResolutionRepo{cases: cases, resolutions: make(map[string]*domain.DisputeResolution)}
	orders := &fakeOrderSource{orders: map[string]*domain.Order{
		"order-1": {
			ID:         "order-1",
			CustomerID: "customer-1",
			ProviderID: "provider-1",
			Status:     domain.OrderReturned,
			Items: []*domain.OrderItem{
				{ID: "item-1", OrderID: "order-1", ProductName: "Evening dress", Quantity: 2, DepositPerUnit: 100},
			},
		},
	}}
	users := &fakeUserRepo{users: map[string]*domain.User{
		"provider-1": {ID: "provider-1", FullName: "Atelier Nord"},
		"customer-1": {ID: "customer-1", FullName: "Lena Marsh"},
	}}
	chat := &fakeChatRepo{}
	notifier := &fakeNotifier{}

	uc := NewDefaultArbitrationUsecase(cases, resolutions, orders, users, chat, notifier,
		metrics.NewViolationMetrics(prometheus.NewRegistry()))
	return &arbitrationEnv{uc: uc, cases: cases, resolutions: resolutions, users: users, chat: chat, notifier: notifier}
}

func escalatedCase(id string, penaltyAmount float64) *domain.ViolationCase {
	return &domain.ViolationCase{
		ID:                       id,
		OrderID:                  "order-1",
		OrderItemID:              "item-1",
		Kind:                     domain.ViolationDamaged,
		Description:              "Large red wine stain on the front panel",
		PenaltyAmount:            penaltyAmount,
		Status:                   domain.ViolationPendingAdminReview,
		ProviderEscalationReason: "The rebuttal video shows a different garment",
		CreatedAt:                time.Now().Add(-48 * time.Hour),
		UpdatedAt:                time.Now().Add(-2 * time.Hour),
	}
}
