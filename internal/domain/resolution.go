package domain

import (
	"context"
	"time"
)

type ResolutionKind string

const (
	ResolutionUphold     ResolutionKind = "UPHOLD"
	ResolutionReject     ResolutionKind = "REJECT"
	ResolutionCompromise ResolutionKind = "COMPROMISE"
)

func (k ResolutionKind) Valid() bool {
	switch k {
	case ResolutionUphold, ResolutionReject, ResolutionCompromise:
		return true
	}
	return false
}

// DisputeResolution is the admin's binding decision on an escalated
// case. Immutable once recorded, one per case.
type DisputeResolution struct {
	ID            string
	CaseID        string
	AdminID       string
	Kind          ResolutionKind
	Note          string
	PenaltyAmount float64
	CreatedAt     time.Time
}

type ResolutionRepository interface {
	// RecordResolution writes the resolution and flips the case from
	// PENDING_ADMIN_REVIEW to RESOLVED in one transaction.
	RecordResolution(ctx context.Context, resolution *DisputeResolution) error
	GetByCaseID(ctx context.Context, caseID string) (*DisputeResolution, error)
}
