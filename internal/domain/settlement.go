package domain

import (
	"context"
	"time"
)

// Settlement is the ledger row recording a deposit refund computation
// for one case. The unique case id is the idempotency guard against
// double-deduction.
type Settlement struct {
	ID            string
	CaseID        string
	OrderItemID   string
	DepositBase   float64
	PenaltyAmount float64
	RefundAmount  float64
	SettledAt     time.Time
}

type SettlementRepository interface {
	// Create inserts the settlement unless one already exists for the
	// case. Returns false when the case was settled before.
	Create(ctx context.Context, settlement *Settlement) (bool, error)
	GetByCaseID(ctx context.Context, caseID string) (*Settlement, error)
}
