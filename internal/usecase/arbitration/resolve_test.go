package usecase

import (
	"context"
	"errors"
	"testing"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/loopwear/loopwear-violation-service/internal/domain"
	arbitrationdto "github.com/loopwear/loopwear-violation-service/internal/usecase/dto/arbitration"
)

func TestRecordResolution_Uphold(t *testing.T) {
	env := newArbitrationEnv()
	env.cases.cases["case-1"] = escalatedCase("case-1", 40)

	resolution, err := env.uc.RecordResolution(context.Background(), &arbitrationdto.RecordResolutionInput{
		CaseID:  "case-1",
		AdminID: "admin-1",
		Kind:    domain.ResolutionUphold,
		Note:    "The provider's evidence is conclusive",
	})
	if err != nil {
		t.Fatalf("RecordResolution: %v", err)
	}
	if resolution.PenaltyAmount != 40 {
		t.Errorf("uphold penalty = %.2f, want claimed 40", resolution.PenaltyAmount)
	}
	if got := env.cases.cases["case-1"].Status; got != domain.ViolationResolved {
		t.Errorf("case status = %s, want RESOLVED", got)
	}
	if len(env.notifier.sent) != 2 {
		t.Errorf("both parties should be notified, got %d notifications", len(env.notifier.sent))
	}
}

func TestRecordResolution_RejectZeroesPenalty(t *testing.T) {
	env := newArbitrationEnv()
	env.cases.cases["case-1"] = escalatedCase("case-1", 40)

	resolution, err := env.uc.RecordResolution(context.Background(), &arbitrationdto.RecordResolutionInput{
		CaseID:  "case-1",
		AdminID: "admin-1",
		Kind:    domain.ResolutionReject,
	})
	if err != nil {
		t.Fatalf("RecordResolution: %v", err)
	}
	if resolution.PenaltyAmount != 0 {
		t.Errorf("reject penalty = %.2f, want 0", resolution.PenaltyAmount)
	}
}

func TestRecordResolution_CompromiseTakesAdminAmount(t *testing.T) {
	env := newArbitrationEnv()
	env.cases.cases["case-1"] = escalatedCase("case-1", 40)

	adminAmount := 20.0
	resolution, err := env.uc.RecordResolution(context.Background(), &arbitrationdto.RecordResolutionInput{
		CaseID:        "case-1",
		AdminID:       "admin-1",
		Kind:          domain.ResolutionCompromise,
		PenaltyAmount: &adminAmount,
	})
	if err != nil {
		t.Fatalf("RecordResolution: %v", err)
	}
	if resolution.PenaltyAmount != 20 {
		t.Errorf("compromise penalty = %.2f, want admin-set 20", resolution.PenaltyAmount)
	}
}

func TestRecordResolution_CompromiseRequiresAmount(t *testing.T) {
	env := newArbitrationEnv()
	env.cases.cases["case-1"] = escalatedCase("case-1", 40)

	_, err := env.uc.RecordResolution(context.Background(), &arbitrationdto.RecordResolutionInput{
		CaseID:  "case-1",
		AdminID: "admin-1",
		Kind:    domain.ResolutionCompromise,
	})
	if status.Code(err) != codes.InvalidArgument {
		t.Fatalf("expected InvalidArgument without an amount, got %v", err)
	}

	negative := -10.0
	_, err = env.uc.RecordResolution(context.Background(), &arbitrationdto.RecordResolutionInput{
		CaseID:        "case-1",
		AdminID:       "admin-1",
		Kind:          domain.ResolutionCompromise,
		PenaltyAmount: &negative,
	})
	if status.Code(err) != codes.InvalidArgument {
		t.Fatalf("expected InvalidArgument for a negative amount, got %v", err)
	}
}

func TestRecordResolution_UnknownKind(t *testing.T) {
	env := newArbitrationEnv()
	env.cases.cases["case-1"] = escalatedCase("case-1", 40)

	_, err := env.uc.RecordResolution(context.Background(), &arbitrationdto.RecordResolutionInput{
		CaseID:  "case-1",
		AdminID: "admin-1",
		Kind:    "SPLIT_THE_BABY",
	})
	if status.Code(err) != codes.InvalidArgument {
		t.Fatalf("expected InvalidArgument, got %v", err)
	}
}

func TestRecordResolution_OnlyFromPendingAdminReview(t *testing.T) {
	env := newArbitrationEnv()
	c := escalatedCase("case-1", 40)
	c.Status = domain.ViolationCustomerRejected
	env.cases.cases["case-1"] = c

	_, err := env.uc.RecordResolution(context.Background(), &arbitrationdto.RecordResolutionInput{
		CaseID:  "case-1",
		AdminID: "admin-1",
		Kind:    domain.ResolutionUphold,
	})
	if !errors.Is(err, domain.ErrInvalidCaseStatus) {
		t.Fatalf("expected ErrInvalidCaseStatus, got %v", err)
	}
	if len(env.resolutions.resolutions) != 0 {
		t.Error("no resolution should be recorded for a non-escalated case")
	}
}

func TestRecordResolution_MissingOrderSkipsNotificationsOnly(t *testing.T) {
	env := newArbitrationEnv()
	orphan := escalatedCase("case-1", 40)
	orphan.OrderID = "order-gone"
	env.cases.cases["case-1"] = orphan

	resolution, err := env.uc.RecordResolution(context.Background(), &arbitrationdto.RecordResolutionInput{
		CaseID:  "case-1",
		AdminID: "admin-1",
		Kind:    domain.ResolutionUphold,
	})
	if err != nil {
		t.Fatalf("a failed order lookup must not fail the resolution: %v", err)
	}
	if resolution.PenaltyAmount != 40 {
		t.Errorf("penalty = %.2f, want 40", resolution.PenaltyAmount)
	}
	if got := env.cases.cases["case-1"].Status; got != domain.ViolationResolved {
		t.Errorf("case status = %s, want RESOLVED", got)
	}
	if len(env.notifier.sent) != 0 {
		t.Errorf("no notifications should be attempted without the order, got %d", len(env.notifier.sent))
	}
}

func TestRecordResolution_ImmutableOncePerCase(t *testing.T) {
	env := newArbitrationEnv()
	env.cases.cases["case-1"] = escalatedCase("case-1", 40)

	if _, err := env.uc.RecordResolution(context.Background(), &arbitrationdto.RecordResolutionInput{
		CaseID: "case-1", AdminID: "admin-1", Kind: domain.ResolutionUphold,
	}); err != nil {
		t.Fatalf("first RecordResolution: %v", err)
	}

	_, err := env.uc.RecordResolution(context.Background(), &arbitrationdto.RecordResolutionInput{
		CaseID: "case-1", AdminID: "admin-2", Kind: domain.ResolutionReject,
	})
	if !errors.Is(err, domain.ErrInvalidCaseStatus) {
		t.Fatalf("second resolution must fail, got %v", err)
	}
	if env.resolutions.resolutions["case-1"].AdminID != "admin-1" {
		t.Error("the recorded resolution was overwritten")
	}
}
