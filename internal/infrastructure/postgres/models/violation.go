package models

import "time"

type ViolationCaseModel struct {
	ID          string `gorm:"primaryKey"`
	OrderID     string `gorm:"index"`
	OrderItemID string `gorm:"index"`

	Kind          string
	Description   string
	DamagePercent *float64

	PenaltyPercent float64
	PenaltyAmount  float64

	Status string `gorm:"index"`

	CustomerResponseNote string
	CustomerRespondedAt  *time.Time

	ProviderRevisionNote string
	ProviderRevisedAt    *time.Time

	ProviderEscalationReason string
	CustomerEscalationReason string

	ResolutionKind string
	ResolutionNote string

	Order OrderModel `gorm:"foreignKey:OrderID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (ViolationCaseModel) TableName() string {
	return "violation_cases"
}
