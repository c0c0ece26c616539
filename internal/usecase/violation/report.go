package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jaevor/go-nanoid"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/loopwear/loopwear-violation-service/internal/domain"
	violationdto "github.com/loopwear/loopwear-violation-service/internal/usecase/dto/violation"
)

// ReportViolations batch-creates one case per reported item. The batch
// is all-or-nothing: the whole input validates before any upload, and a
// failure after uploads started rolls the uploaded objects back
// best-effort while the original error is returned.
func (uc *DefaultViolationUsecase) ReportViolations(ctx context.Context, input *violationdto.ReportViolationsInput) ([]*domain.ViolationCase, error) {
	if len(input.Items) == 0 {
		return nil, status.Error(codes.InvalidArgument, "report must list at least one item")
	}

	order, err := uc.orderRepo.GetOrderWithItems(ctx, input.OrderID)
	if err != nil {
		return nil, err
	}
	if order.ProviderID != input.ProviderID {
		return nil, status.Error(codes.PermissionDenied, "caller is not the provider of this order")
	}
	if !order.ViolationReportable() {
		return nil, status.Errorf(codes.FailedPrecondition, "order %s is %s, violations can only be reported once in use", order.ID, order.Status)
	}

	if err := uc.validateReportBatch(ctx, order, input.Items); err != nil {
		return nil, err
	}

	idGenerator, err := nanoid.Standard(15)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	cases := make([]*domain.ViolationCase, len(input.Items))
	for i, item := range input.Items {
		cases[i] = &domain.ViolationCase{
			ID:             idGenerator(),
			OrderID:        order.ID,
			OrderItemID:    item.OrderItemID,
			Kind:           item.Kind,
			Description:    item.Description,
			DamagePercent:  item.DamagePercent,
			PenaltyPercent: item.PenaltyPercent,
			PenaltyAmount:  item.PenaltyAmount,
			Status:         domain.ViolationPending,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
	}

	evidence, err := uc.uploadReportEvidence(ctx, input.ProviderID, cases, input.Items)
	if err != nil {
		return nil, err
	}

	if err := uc.violationRepo.CreateCasesWithEvidence(ctx, cases, evidence); err != nil {
		uc.rollbackUploads(ctx, evidence)
		return nil, err
	}

	for _, c := range cases {
		uc.metrics.CasesReportedTotal.WithLabelValues(string(c.Kind)).Inc()
	}

	message := fmt.Sprintf("The provider reported rental violations on %d item(s) of your order. Please review and respond.", len(cases))
	uc.notify(ctx, order.CustomerID, message, domain.NotifyCategoryViolationReported, order.ID)

	return cases, nil
}

// validateReportBatch checks the whole batch before anything is
// uploaded or written: item membership, open-case uniqueness, field
// ranges and every evidence file.
func (uc *DefaultViolationUsecase) validateReportBatch(ctx context.Context, order *domain.Order, items []violationdto.ItemViolationInput) error {
	seen := make(map[string]bool, len(items))
	for _, item := range items {
		if order.Item(item.OrderItemID) == nil {
			return status.Errorf(codes.InvalidArgument, "item %s does not belong to order %s", item.OrderItemID, order.ID)
		}
		if seen[item.OrderItemID] {
			return status.Errorf(codes.InvalidArgument, "item %s is listed twice in the report", item.OrderItemID)
		}
		seen[item.OrderItemID] = true

		if !item.Kind.Valid() {
			return status.Errorf(codes.InvalidArgument, "unknown violation kind %q", item.Kind)
		}
		if err := validateDescription(item.Description); err != nil {
			return status.Error(codes.InvalidArgument, err.Error())
		}
		if item.DamagePercent != nil {
			if err := validatePercent("damage percent", *item.DamagePercent); err != nil {
				return status.Error(codes.InvalidArgument, err.Error())
			}
		}
		if err := validatePercent("penalty percent", item.PenaltyPercent); err != nil {
			return status.Error(codes.InvalidArgument, err.Error())
		}
		if item.PenaltyAmount < 0 {
			return status.Errorf(codes.InvalidArgument, "penalty amount must not be negative, got %.2f", item.PenaltyAmount)
		}
		if err := validateEvidenceFiles(item.EvidenceFiles); err != nil {
			return err
		}

		// Advisory pre-check; the create transaction re-checks under lock.
		open, err := uc.violationRepo.HasOpenCaseForItem(ctx, item.OrderItemID)
		if err != nil {
			return err
		}
		if open {
			return fmt.Errorf("%w: item %s", domain.ErrDuplicateOpenCase, item.OrderItemID)
		}
	}
	return nil
}

// uploadReportEvidence fans the uploads out concurrently and joins
// them. On any failure the siblings already uploaded are rolled back.
func (uc *DefaultViolationUsecase) uploadReportEvidence(ctx context.Context, providerID string, cases []*domain.ViolationCase, items []violationdto.ItemViolationInput) ([]*domain.EvidenceRecord, error) {
	type uploadJob struct {
		caseID string
		file   violationdto.EvidenceFileInput
	}

	var jobs []uploadJob
	for i, item := range items {
		for _, file := range item.EvidenceFiles {
			jobs = append(jobs, uploadJob{caseID: cases[i].ID, file: file})
		}
	}
	if len(jobs) == 0 {
		return nil, nil
	}

	results := make([]*domain.EvidenceRecord, len(jobs))
	group, groupCtx := errgroup.WithContext(ctx)
	for i, job := range jobs {
		group.Go(func() error {
			record, err := uc.uploadOne(groupCtx, providerID, job.caseID, domain.RoleProvider, job.file)
			if err != nil {
				return err
			}
			results[i] = record
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		uc.metrics.EvidenceUploadErrorsTotal.Inc()
		var uploaded []*domain.EvidenceRecord
		for _, record := range results {
			if record != nil {
				uploaded = append(uploaded, record)
			}
		}
		uc.rollbackUploads(ctx, uploaded)
		return nil, fmt.Errorf("evidence upload failed: %w", err)
	}
	return results, nil
}

func (uc *DefaultViolationUsecase) uploadOne(ctx context.Context, ownerID, caseID string, role domain.Role, file violationdto.EvidenceFileInput) (*domain.EvidenceRecord, error) {
	kind, err := validateEvidenceFile(file)
	if err != nil {
		return nil, err
	}
	url, key, err := uc.storage.Upload(ctx, file.Content, file.FileName, ownerID)
	if err != nil {
		return nil, err
	}
	return &domain.EvidenceRecord{
		ID:            uuid.NewString(),
		CaseID:        caseID,
		SubmitterRole: role,
		MediaURL:      url,
		StorageKey:    key,
		MediaKind:     kind,
		FileName:      file.FileName,
		SizeBytes:     file.SizeBytes,
		UploadedAt:    time.Now(),
	}, nil
}

// rollbackUploads deletes already-uploaded objects best-effort.
// Failures are logged and swallowed so they never mask the original
// error; leaked objects are acceptable garbage.
func (uc *DefaultViolationUsecase) rollbackUploads(ctx context.Context, records []*domain.EvidenceRecord) {
	for _, record := range records {
		if record == nil {
			continue
		}
		if err := uc.storage.Delete(ctx, record.StorageKey); err != nil {
			slog.Error("failed to roll back evidence upload",
				"storage_key", record.StorageKey,
				"case_id", record.CaseID,
				"error", err.Error(),
			)
		}
	}
}

// notify delivers a best-effort notification. Delivery failure is
// logged and counted, never propagated.
func (uc *DefaultViolationUsecase) notify(ctx context.Context, userID, message, category, orderID string) {
	if err := uc.notifier.Notify(ctx, userID, message, category, orderID); err != nil {
		uc.metrics.NotificationErrorsTotal.Inc()
		slog.Error("failed to deliver notification",
			"user_id", userID,
			"category", category,
			"order_id", orderID,
			"error", err.Error(),
		)
	}
}
