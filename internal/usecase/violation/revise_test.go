package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/loopwear/loopwear-violation-service/internal/domain"
	violationdto "github.com/loopwear/loopwear-violation-service/internal/usecase/dto/violation"
)

func rejectedCase(id, itemID string) *domain.ViolationCase {
	c := pendingCase(id, itemID)
	respondedAt := time.Now()
	c.Status = domain.ViolationCustomerRejected
	c.CustomerResponseNote = "The stain was already there at delivery"
	c.CustomerRespondedAt = &respondedAt
	return c
}

func TestProviderRevise_AppliesPatchAndRestartsResponse(t *testing.T) {
	env := newTestEnv(reportableOrder())
	env.repo.put(rejectedCase("case-1", "item-1"))

	newAmount := 25.0
	note := "Lowered the penalty after reviewing the rebuttal video"
	result, err := env.uc.ProviderRevise(context.Background(), &violationdto.ProviderReviseInput{
		CaseID:     "case-1",
		ProviderID: "provider-1",
		Patch: domain.ReviseCasePatch{
			PenaltyAmount: &newAmount,
			ResponseNote:  &note,
		},
	})
	if err != nil {
		t.Fatalf("ProviderRevise: %v", err)
	}
	if result.Status != domain.ViolationPending {
		t.Errorf("status = %s, want PENDING after revision", result.Status)
	}
	if result.PenaltyAmount != 25 {
		t.Errorf("penalty amount = %.2f, want 25", result.PenaltyAmount)
	}
	if result.Kind != domain.ViolationDamaged {
		t.Errorf("untouched kind changed to %s", result.Kind)
	}
	if result.Description == "" {
		t.Error("untouched description was cleared")
	}
	if result.CustomerResponseNote != "" || result.CustomerRespondedAt != nil {
		t.Error("prior customer response must be cleared by a revision")
	}
	if result.ProviderRevisionNote != note {
		t.Errorf("revision note = %q", result.ProviderRevisionNote)
	}
	if result.ProviderRevisedAt == nil {
		t.Error("revised-at timestamp not recorded")
	}
	if len(env.notifier.sent) != 1 || env.notifier.sent[0].UserID != "customer-1" {
		t.Errorf("customer should be notified of the revision, sent = %+v", env.notifier.sent)
	}
}

func TestProviderRevise_RequiresOrderProvider(t *testing.T) {
	env := newTestEnv(reportableOrder())
	env.repo.put(rejectedCase("case-1", "item-1"))

	_, err := env.uc.ProviderRevise(context.Background(), &violationdto.ProviderReviseInput{
		CaseID:     "case-1",
		ProviderID: "someone-else",
	})
	if status.Code(err) != codes.PermissionDenied {
		t.Fatalf("expected PermissionDenied, got %v", err)
	}
}

func TestProviderRevise_OnlyFromCustomerRejected(t *testing.T) {
	env := newTestEnv(reportableOrder())
	env.repo.put(pendingCase("case-1", "item-1"))

	_, err := env.uc.ProviderRevise(context.Background(), &violationdto.ProviderReviseInput{
		CaseID:     "case-1",
		ProviderID: "provider-1",
	})
	if !errors.Is(err, domain.ErrInvalidCaseStatus) {
		t.Fatalf("expected ErrInvalidCaseStatus, got %v", err)
	}
}

func TestProviderRevise_ValidatesSuppliedFieldsOnly(t *testing.T) {
	env := newTestEnv(reportableOrder())
	env.repo.put(rejectedCase("case-1", "item-1"))

	badPercent := -3.0
	_, err := env.uc.ProviderRevise(context.Background(), &violationdto.ProviderReviseInput{
		CaseID:     "case-1",
		ProviderID: "provider-1",
		Patch:      domain.ReviseCasePatch{PenaltyPercent: &badPercent},
	})
	if status.Code(err) != codes.InvalidArgument {
		t.Fatalf("expected InvalidArgument, got %v", err)
	}
}
