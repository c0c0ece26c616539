package models

import "time"

type DisputeResolutionModel struct {
	ID            string `gorm:"primaryKey"`
	CaseID        string `gorm:"uniqueIndex"`
	AdminID       string
	Kind          string
	Note          string
	PenaltyAmount float64

	Case ViolationCaseModel `gorm:"foreignKey:CaseID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"`

	CreatedAt time.Time
}

func (DisputeResolutionModel) TableName() string {
	return "dispute_resolutions"
}
