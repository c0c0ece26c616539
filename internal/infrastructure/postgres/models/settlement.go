package models

import "time"

// SettlementModel is the idempotency ledger: the unique case id index
// makes a second settlement of the same case a conflict, not a second
// deduction.
type SettlementModel struct {
	ID            string `gorm:"primaryKey"`
	CaseID        string `gorm:"uniqueIndex"`
	OrderItemID   string `gorm:"index"`
	DepositBase   float64
	PenaltyAmount float64
	RefundAmount  float64
	SettledAt     time.Time

	CreatedAt time.Time
}

func (SettlementModel) TableName() string {
	return "violation_settlements"
}
