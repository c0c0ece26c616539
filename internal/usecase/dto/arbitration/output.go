package arbitrationdto

import (
	"time"

	"github.com/loopwear/loopwear-violation-service/internal/domain"
)

// PendingCaseSummary is one row of the admin review queue, enriched
// with display data for the product and both parties.
type PendingCaseSummary struct {
	Case         *domain.ViolationCase
	ProductName  string
	Provider     *domain.User
	Customer     *domain.User
	ReportedAt   time.Time
	WaitingSince time.Time
}

// CaseDossier is the full read model an admin reviews before ruling.
type CaseDossier struct {
	Case             *domain.ViolationCase
	ProviderEvidence []*domain.EvidenceRecord
	CustomerEvidence []*domain.EvidenceRecord
	ChatTranscript   []*domain.ChatMessage
	Order            *domain.Order
	Item             *domain.OrderItem
	Provider         *domain.User
	Customer         *domain.User
}

type RecordResolutionInput struct {
	CaseID  string
	AdminID string
	Kind    domain.ResolutionKind
	Note    string
	// PenaltyAmount is the admin-set penalty for COMPROMISE rulings.
	// Ignored for UPHOLD (case's claimed amount) and REJECT (zero).
	PenaltyAmount *float64
}
