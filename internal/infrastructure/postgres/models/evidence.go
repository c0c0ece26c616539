package models

import "time"

type EvidenceRecordModel struct {
	ID            string `gorm:"primaryKey"`
	CaseID        string `gorm:"index"`
	SubmitterRole string
	MediaURL      string
	StorageKey    string
	MediaKind     string
	FileName      string
	SizeBytes     int64

	Case ViolationCaseModel `gorm:"foreignKey:CaseID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`

	CreatedAt time.Time
}

func (EvidenceRecordModel) TableName() string {
	return "evidence_records"
}
