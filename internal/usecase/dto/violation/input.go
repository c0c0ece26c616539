package violationdto

import (
	"io"

	"github.com/loopwear/loopwear-violation-service/internal/domain"
)

// EvidenceFileInput is one media file attached to a report or a
// rebuttal. Content is streamed to the evidence store after the whole
// batch validates.
type EvidenceFileInput struct {
	FileName  string
	SizeBytes int64
	Content   io.Reader
}

// ItemViolationInput is one alleged breach within a report batch.
type ItemViolationInput struct {
	OrderItemID    string
	Kind           domain.ViolationKind
	Description    string
	DamagePercent  *float64
	PenaltyPercent float64
	PenaltyAmount  float64
	EvidenceFiles  []EvidenceFileInput
}

type ReportViolationsInput struct {
	OrderID    string
	ProviderID string
	Items      []ItemViolationInput
}

type CustomerRespondInput struct {
	CaseID        string
	CustomerID    string
	Accepted      bool
	Note          string
	EvidenceFiles []EvidenceFileInput
}

type ProviderReviseInput struct {
	CaseID     string
	ProviderID string
	Patch      domain.ReviseCasePatch
}

type EscalateInput struct {
	CaseID      string
	InitiatorID string
	Reason      string
}
