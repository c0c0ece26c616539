package domain

import (
	"context"
	"time"
)

type ViolationStatus string

const (
	ViolationPending            ViolationStatus = "PENDING"
	ViolationCustomerAccepted   ViolationStatus = "CUSTOMER_ACCEPTED"
	ViolationCustomerRejected   ViolationStatus = "CUSTOMER_REJECTED"
	ViolationPendingAdminReview ViolationStatus = "PENDING_ADMIN_REVIEW"
	ViolationResolved           ViolationStatus = "RESOLVED"
)

// OpenViolationStatuses are the statuses that count against the
// one-open-case-per-item rule. Accepted and resolved cases are kept
// for audit but no longer block a new report.
var OpenViolationStatuses = []ViolationStatus{
	ViolationPending,
	ViolationCustomerRejected,
	ViolationPendingAdminReview,
}

func (s ViolationStatus) Open() bool {
	for _, open := range OpenViolationStatuses {
		if s == open {
			return true
		}
	}
	return false
}

// ViolationStatusLabel maps a status to its display string. Labels are
// never persisted.
func ViolationStatusLabel(s ViolationStatus) string {
	switch s {
	case ViolationPending:
		return "Awaiting customer response"
	case ViolationCustomerAccepted:
		return "Accepted by customer"
	case ViolationCustomerRejected:
		return "Contested by customer"
	case ViolationPendingAdminReview:
		return "Under admin review"
	case ViolationResolved:
		return "Resolved"
	default:
		return "Unknown"
	}
}

type ViolationKind string

const (
	ViolationDamaged     ViolationKind = "DAMAGED"
	ViolationLateReturn  ViolationKind = "LATE_RETURN"
	ViolationNotReturned ViolationKind = "NOT_RETURNED"
)

func (k ViolationKind) Valid() bool {
	switch k {
	case ViolationDamaged, ViolationLateReturn, ViolationNotReturned:
		return true
	}
	return false
}

type Role string

const (
	RoleProvider Role = "PROVIDER"
	RoleCustomer Role = "CUSTOMER"
	RoleAdmin    Role = "ADMIN"
)

type ViolationCase struct {
	ID          string
	OrderID     string
	OrderItemID string

	Kind          ViolationKind
	Description   string
	DamagePercent *float64

	PenaltyPercent float64
	PenaltyAmount  float64

	Status ViolationStatus

	CustomerResponseNote string
	CustomerRespondedAt  *time.Time

	ProviderRevisionNote string
	ProviderRevisedAt    *time.Time

	ProviderEscalationReason string
	CustomerEscalationReason string

	ResolutionKind ResolutionKind
	ResolutionNote string

	CreatedAt time.Time
	UpdatedAt time.Time

	Evidence []*EvidenceRecord
}

// ReviseCasePatch carries the provider's revision. Nil fields keep
// their prior values.
type ReviseCasePatch struct {
	Kind           *ViolationKind
	Description    *string
	DamagePercent  *float64
	PenaltyPercent *float64
	PenaltyAmount  *float64
	ResponseNote   *string
}

type ViolationRepository interface {
	// CreateCasesWithEvidence persists a whole report batch in one
	// transaction, enforcing the open-case guard per item.
	CreateCasesWithEvidence(ctx context.Context, cases []*ViolationCase, evidence []*EvidenceRecord) error

	GetCaseByID(ctx context.Context, caseID string) (*ViolationCase, error)
	ListCasesByOrderID(ctx context.Context, orderID string) ([]*ViolationCase, error)
	ListCasesByItemID(ctx context.Context, itemID string) ([]*ViolationCase, error)
	ListCasesByProviderID(ctx context.Context, providerID string) ([]*ViolationCase, error)
	ListCasesByCustomerID(ctx context.Context, customerID string) ([]*ViolationCase, error)
	ListCasesByStatus(ctx context.Context, status ViolationStatus) ([]*ViolationCase, error)
	HasOpenCaseForItem(ctx context.Context, itemID string) (bool, error)

	// RespondCAS flips a PENDING case to the customer's verdict and
	// attaches any rebuttal evidence atomically. Returns false when the
	// case was not in PENDING anymore.
	RespondCAS(ctx context.Context, caseID string, newStatus ViolationStatus, note string, respondedAt time.Time, evidence []*EvidenceRecord) (bool, error)

	// ReviseCase applies the provider's patch under a row lock. Fails
	// with ErrInvalidCaseStatus unless the case is CUSTOMER_REJECTED.
	ReviseCase(ctx context.Context, caseID string, patch ReviseCasePatch, revisedAt time.Time) (*ViolationCase, error)

	// EscalateCAS moves a CUSTOMER_REJECTED case to admin review,
	// recording the initiator's framing in its own reason field.
	EscalateCAS(ctx context.Context, caseID string, initiator Role, reason string) (bool, error)

	ListEvidenceByCase(ctx context.Context, caseID string) ([]*EvidenceRecord, error)

	// ListSettleableCases returns accepted or resolved-in-provider-favor
	// cases that have no settlement recorded yet.
	ListSettleableCases(ctx context.Context) ([]*ViolationCase, error)
}
