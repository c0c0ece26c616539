package usecase

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/loopwear/loopwear-violation-service/internal/domain"
	violationdto "github.com/loopwear/loopwear-violation-service/internal/usecase/dto/violation"
)

// CustomerRespond records the customer's verdict on a PENDING case.
// Acceptance makes the case settlement-eligible; rejection stores the
// customer's note and any rebuttal evidence. The status flip is a
// compare-and-set, so two concurrent responses cannot both succeed.
func (uc *DefaultViolationUsecase) CustomerRespond(ctx context.Context, input *violationdto.CustomerRespondInput) (*domain.ViolationCase, error) {
	violationCase, err := uc.violationRepo.GetCaseByID(ctx, input.CaseID)
	if err != nil {
		return nil, err
	}
	order, err := uc.orderRepo.GetOrderWithItems(ctx, violationCase.OrderID)
	if err != nil {
		return nil, err
	}
	if order.CustomerID != input.CustomerID {
		return nil, status.Error(codes.PermissionDenied, "caller is not the customer of this order")
	}
	if violationCase.Status != domain.ViolationPending {
		return nil, fmt.Errorf("%w: case %s is %s, response requires PENDING", domain.ErrInvalidCaseStatus, violationCase.ID, violationCase.Status)
	}

	newStatus := domain.ViolationCustomerRejected
	if input.Accepted {
		newStatus = domain.ViolationCustomerAccepted
	}

	var rebuttal []*domain.EvidenceRecord
	if !input.Accepted && len(input.EvidenceFiles) > 0 {
		if err := validateEvidenceFiles(input.EvidenceFiles); err != nil {
			return nil, err
		}
		rebuttal, err = uc.uploadRebuttalEvidence(ctx, input.CustomerID, violationCase.ID, input.EvidenceFiles)
		if err != nil {
			return nil, err
		}
	}

	respondedAt := time.Now()
	swapped, err := uc.violationRepo.RespondCAS(ctx, violationCase.ID, newStatus, input.Note, respondedAt, rebuttal)
	if err != nil {
		uc.rollbackUploads(ctx, rebuttal)
		return nil, err
	}
	if !swapped {
		uc.rollbackUploads(ctx, rebuttal)
		return nil, fmt.Errorf("%w: case %s was responded to concurrently", domain.ErrInvalidCaseStatus, violationCase.ID)
	}

	var message string
	if input.Accepted {
		uc.metrics.CasesAcceptedTotal.Inc()
		message = "The customer accepted your violation claim. The deposit settlement will follow."
	} else {
		uc.metrics.CasesRejectedTotal.Inc()
		message = "The customer contested your violation claim. You can revise the claim or escalate it."
	}
	uc.notify(ctx, order.ProviderID, message, domain.NotifyCategoryViolationResponse, order.ID)

	// Same enriched read model as GetCaseByID, rebuttal included.
	return uc.GetCaseByID(ctx, violationCase.ID)
}

func (uc *DefaultViolationUsecase) uploadRebuttalEvidence(ctx context.Context, customerID, caseID string, files []violationdto.EvidenceFileInput) ([]*domain.EvidenceRecord, error) {
	results := make([]*domain.EvidenceRecord, len(files))
	group, groupCtx := errgroup.WithContext(ctx)
	for i, file := range files {
		group.Go(func() error {
			record, err := uc.uploadOne(groupCtx, customerID, caseID, domain.RoleCustomer, file)
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
		return nil, fmt.Errorf("rebuttal evidence upload failed: %w", err)
	}
	return results, nil
}
