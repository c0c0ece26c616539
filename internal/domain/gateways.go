package domain

import (
	"context"
	"io"
)

// EvidenceStorage uploads and deletes binary evidence media. Delete is
// idempotent: removing an already-deleted object succeeds.
type EvidenceStorage interface {
	Upload(ctx context.Context, content io.Reader, fileName, ownerID string) (url string, storageKey string, err error)
	Delete(ctx context.Context, storageKey string) error
}

// Notification categories understood by the downstream delivery
// services (push, email).
const (
	NotifyCategoryViolationReported  = "violation_reported"
	NotifyCategoryViolationResponse  = "violation_response"
	NotifyCategoryViolationRevised   = "violation_revised"
	NotifyCategoryViolationEscalated = "violation_escalated"
	NotifyCategoryViolationResolved  = "violation_resolved"
	NotifyCategoryOrderAdvanced      = "order_advanced"
)

// NotificationGateway is fire-and-forget from the caller's view:
// delivery failure never fails the state transition that triggered it.
type NotificationGateway interface {
	Notify(ctx context.Context, userID, message, category, orderID string) error
}
