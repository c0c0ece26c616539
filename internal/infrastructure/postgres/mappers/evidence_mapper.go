package mappers

import (
	"github.com/loopwear/loopwear-violation-service/internal/domain"
	"github.com/loopwear/loopwear-violation-service/internal/infrastructure/postgres/models"
)

func ToDomainEvidence(model *models.EvidenceRecordModel) *domain.EvidenceRecord {
	return &domain.EvidenceRecord{
		ID:            model.ID,
		CaseID:        model.CaseID,
		SubmitterRole: domain.Role(model.SubmitterRole),
		MediaURL:      model.MediaURL,
		StorageKey:    model.StorageKey,
		MediaKind:     domain.MediaKind(model.MediaKind),
		FileName:      model.FileName,
		SizeBytes:     model.SizeBytes,
		UploadedAt:    model.CreatedAt,
	}
}

func ToGORMEvidence(record *domain.EvidenceRecord) *models.EvidenceRecordModel {
	return &models.EvidenceRecordModel{
		ID:            record.ID,
		CaseID:        record.CaseID,
		SubmitterRole: string(record.SubmitterRole),
		MediaURL:      record.MediaURL,
		StorageKey:    record.StorageKey,
		MediaKind:     string(record.MediaKind),
		FileName:      record.FileName,
		SizeBytes:     record.SizeBytes,
		CreatedAt:     record.UploadedAt,
	}
}

func ToDomainEvidenceList(recordModels []models.EvidenceRecordModel) []*domain.EvidenceRecord {
	records := make([]*domain.EvidenceRecord, len(recordModels))
	for i := range recordModels {
		records[i] = ToDomainEvidence(&recordModels[i])
	}
	return records
}
