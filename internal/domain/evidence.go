package domain

import "time"

type MediaKind string

const (
	MediaImage MediaKind = "IMAGE"
	MediaVideo MediaKind = "VIDEO"
)

type EvidenceRecord struct {
	ID            string
	CaseID        string
	SubmitterRole Role
	MediaURL      string
	StorageKey    string
	MediaKind     MediaKind
	FileName      string
	SizeBytes     int64
	UploadedAt    time.Time
}
