package usecase

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/loopwear/loopwear-violation-service/internal/domain"
	"github.com/loopwear/loopwear-violation-service/internal/infrastructure/metrics"
)

type fakeViolationRepo struct {
	mu       sync.Mutex
	cases    map[string]*domain.ViolationCase
	evidence map[string][]*domain.EvidenceRecord

	createErr        error
	respondForceMiss bool
}

func newFakeViolationRepo() *fakeViolationRepo {
	return &fakeViolationRepo{
		cases:    make(map[string]*domain.ViolationCase),
		evidence: make(map[string][]*domain.EvidenceRecord),
	}
}

func (r *fakeViolationRepo) put(c *domain.ViolationCase) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cases[c.ID] = c
}

func (r *fakeViolationRepo) CreateCasesWithEvidence(ctx context.Context, cases []*domain.ViolationCase, evidence []*domain.EvidenceRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	for _, c := range cases {
		for _, existing := range r.cases {
			if existing.OrderItemID == c.OrderItemID && existing.Status.Open() {
				return fmt.Errorf("%w: item %s", domain.ErrDuplicateOpenCase, c.OrderItemID)
			}
		}
	}
	for _, c := range cases {
		r.cases[c.ID] = c
	}
	for _, e := range evidence {
		r.evidence[e.CaseID] = append(r.evidence[e.CaseID], e)
	}
	return nil
}

func (r *fakeViolationRepo) GetCaseByID(ctx context.Context, caseID string) (*domain.ViolationCase, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.cases[caseID]
	if !ok {
		return nil, domain.ErrCaseNotFound
	}
	copied := *c
	return &copied, nil
}

func (r *fakeViolationRepo) listWhere(match func(*domain.ViolationCase) bool) []*domain.ViolationCase {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.ViolationCase
	for _, c := range r.cases {
		if match(c) {
			copied := *c
			out = append(out, &copied)
		}
	}
	return out
}

func (r *fakeViolationRepo) ListCasesByOrderID(ctx context.Context, orderID string) ([]*domain.ViolationCase, error) {
	return r.listWhere(func(c *domain.ViolationCase) bool { return c.OrderID == orderID }), nil
}

func (r *fakeViolationRepo) ListCasesByItemID(ctx context.Context, itemID string) ([]*domain.ViolationCase, error) {
	return r.listWhere(func(c *domain.ViolationCase) bool { return c.OrderItemID == itemID }), nil
}

func (r *fakeViolationRepo) ListCasesByProviderID(ctx context.Context, providerID string) ([]*domain.ViolationCase, error) {
	return nil, nil
}

func (r *fakeViolationRepo) ListCasesByCustomerID(ctx context.Context, customerID string) ([]*domain.ViolationCase, error) {
	return nil, nil
}

func (r *fakeViolationRepo) ListCasesByStatus(ctx context.Context, violationStatus domain.ViolationStatus) ([]*domain.ViolationCase, error) {
	return r.listWhere(func(c *domain.ViolationCase) bool { return c.Status == violationStatus }), nil
}

func (r *fakeViolationRepo) HasOpenCaseForItem(ctx context.Context, itemID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.cases {
		if c.OrderItemID == itemID && c.Status.Open() {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeViolationRepo) RespondCAS(ctx context.Context, caseID string, newStatus domain.ViolationStatus, note string, respondedAt time.Time, evidence []*domain.EvidenceRecord) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.cases[caseID]
	if !ok {
		return false, domain.ErrCaseNotFound
	}
	if r.respondForceMiss || c.Status != domain.ViolationPending {
		return false, nil
	}
	c.Status = newStatus
	c.CustomerResponseNote = note
	c.CustomerRespondedAt = &respondedAt
	r.evidence[caseID] = append(r.evidence[caseID], evidence...)
	return true, nil
}

func (r *fakeViolationRepo) ReviseCase(ctx context.Context, caseID string, patch domain.ReviseCasePatch, revisedAt time.Time) (*domain.ViolationCase, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.cases[caseID]
	if !ok {
		return nil, domain.ErrCaseNotFound
	}
	if c.Status != domain.ViolationCustomerRejected {
		return nil, fmt.Errorf("%w: case %s is %s", domain.ErrInvalidCaseStatus, caseID, c.Status)
	}
	if patch.Kind != nil {
		c.Kind = *patch.Kind
	}
	if patch.Description != nil {
		c.Description = *patch.Description
	}
	if patch.DamagePercent != nil {
		c.DamagePercent = patch.DamagePercent
	}
	if patch.PenaltyPercent != nil {
		c.PenaltyPercent = *patch.PenaltyPercent
	}
	if patch.PenaltyAmount != nil {
		c.PenaltyAmount = *patch.PenaltyAmount
	}
	if patch.ResponseNote != nil {
		c.ProviderRevisionNote = *patch.ResponseNote
	}
	c.CustomerResponseNote = ""
	c.CustomerRespondedAt = nil
	c.ProviderRevisedAt = &revisedAt
	c.Status = domain.ViolationPending
	copied := *c
	return &copied, nil
}

func (r *fakeViolationRepo) EscalateCAS(ctx context.Context, caseID string, initiator domain.Role, reason string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.cases[caseID]
	if !ok {
		return false, domain.ErrCaseNotFound
	}
	if c.Status != domain.ViolationCustomerRejected {
		return false, nil
	}
	if initiator == domain.RoleProvider {
		c.ProviderEscalationReason = reason
	} else {
		c.CustomerEscalationReason = reason
	}
	c.Status = domain.ViolationPendingAdminReview
	return true, nil
}

func (r *fakeViolationRepo) ListEvidenceByCase(ctx context.Context, caseID string) ([]*domain.EvidenceRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.evidence[caseID], nil
}

func (r *fakeViolationRepo) ListSettleableCases(ctx context.Context) ([]*domain.ViolationCase, error) {
	return nil, nil
}

type fakeOrderRepo struct {
	orders map[string]*domain.Order
}

func newFakeOrderRepo(orders ...*domain.Order) *fakeOrderRepo {
	repo := &fakeOrderRepo{orders: make(map[string]*domain.Order)}
	for _, o := range orders {
		repo.orders[o.ID] = o
	}
	return repo
}

func (r *fakeOrderRepo) GetOrderWithItems(ctx context.Context, orderID string) (*domain.Order, error) {
	o, ok := r.orders[orderID]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	return o, nil
}

func (r *fakeOrderRepo) FindInTransitOrders(ctx context.Context) ([]*domain.Order, error) {
	return nil, nil
}

func (r *fakeOrderRepo) UpdateStatusCAS(ctx context.Context, orderID string, from, to domain.OrderStatus) (bool, error) {
	o, ok := r.orders[orderID]
	if !ok || o.Status != from {
		return false, nil
	}
	o.Status = to
	return true, nil
}

type fakeEvidenceStorage struct {
	mu       sync.Mutex
	uploads  []string
	deleted  []string
	failFile string
}

func (s *fakeEvidenceStorage) Upload(ctx context.Context, content io.Reader, fileName, ownerID string) (string, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if fileName == s.failFile {
		return "", "", fmt.Errorf("upload of %s failed", fileName)
	}
	key := fmt.Sprintf("evidence/%s/%s", ownerID, fileName)
	s.uploads = append(s.uploads, key)
	return "https://storage.test/" + key, key, nil
}

func (s *fakeEvidenceStorage) Delete(ctx context.Context, storageKey string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleted = append(s.deleted, storageKey)
	return nil
}

type sentNotification struct {
	UserID   string
	Message  string
	Category string
	OrderID  string
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []sentNotification
	err  error
}

func (n *fakeNotifier) Notify(ctx context.Context, userID, message, category, orderID string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.err != nil {
		return n.err
	}
	n.sent = append(n.sent, sentNotification{UserID: userID, Message: message, Category: category, OrderID: orderID})
	return nil
}

type testEnv struct {
	uc       *DefaultViolationUsecase
	repo     *fakeViolationRepo
	orders   *fakeOrderRepo
	storage  *fakeEvidenceStorage
	notifier *fakeNotifier
}

func newTestEnv(orders ...*domain.Order) *testEnv {
	env := &testEnv{
		repo:     newFakeViolationRepo(),
		orders:   newFakeOrderRepo(orders...),
		storage:  &fakeEvidenceStorage{},
		notifier: &fakeNotifier{},
	}
	env.uc = NewDefaultViolationUsecase(
		env.repo,
		env.orders,
		env.storage,
		env.notifier,
		metrics.NewViolationMetrics(prometheus.NewRegistry()),
	)
	return env
}

func reportableOrder() *domain.Order {
	delivered := time.Now().Add(-72 * time.Hour)
	return &domain.Order{
		ID:          "order-1",
		CustomerID:  "customer-1",
		ProviderID:  "provider-1",
		Type:        domain.OrderTypeRental,
		Status:      domain.OrderInUse,
		DeliveredAt: &delivered,
		Items: []*domain.OrderItem{
			{ID: "item-1", OrderID: "order-1", ProductName: "Evening dress", Quantity: 2, DepositPerUnit: 100},
			{ID: "item-2", OrderID: "order-1", ProductName: "Silk scarf", Quantity: 1, DepositPerUnit: 40},
		},
	}
}

func pendingCase(id, itemID string) *domain.ViolationCase {
	return &domain.ViolationCase{
		ID:             id,
		OrderID:        "order-1",
		OrderItemID:    itemID,
		Kind:           domain.ViolationDamaged,
		Description:    "Large red wine stain on the front panel",
		PenaltyPercent: 20,
		PenaltyAmount:  40,
		Status:         domain.ViolationPending,
		CreatedAt:      time.Now(),
	}
}
