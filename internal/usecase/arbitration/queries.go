package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/loopwear/loopwear-violation-service/internal/domain"
	arbitrationdto "github.com/loopwear/loopwear-violation-service/internal/usecase/dto/arbitration"
)

// ListPendingCases returns the admin review queue oldest-first, so the
// first-reported deadlock is served first. Each entry is enriched with
// product and party display data; enrichment failures degrade to a
// sparse row rather than hiding the case from the queue.
func (uc *DefaultArbitrationUsecase) ListPendingCases(ctx context.Context) ([]*arbitrationdto.PendingCaseSummary, error) {
	cases, err := uc.violationRepo.ListCasesByStatus(ctx, domain.ViolationPendingAdminReview)
	if err != nil {
		return nil, err
	}

	summaries := make([]*arbitrationdto.PendingCaseSummary, 0, len(cases))
	for _, violationCase := range cases {
		summary := &arbitrationdto.PendingCaseSummary{
			Case:         violationCase,
			ReportedAt:   violationCase.CreatedAt,
			WaitingSince: violationCase.UpdatedAt,
		}
		order, err := uc.orderRepo.GetOrderWithItems(ctx, violationCase.OrderID)
		if err != nil {
			slog.Error("failed to enrich pending case", "case_id", violationCase.ID, "error", err.Error())
			summaries = append(summaries, summary)
			continue
		}
		if item := order.Item(violationCase.OrderItemID); item != nil {
			summary.ProductName = item.ProductName
		}
		summary.Provider = uc.displayUser(ctx, order.ProviderID)
		summary.Customer = uc.displayUser(ctx, order.CustomerID)
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

// GetCaseDossier assembles everything an admin needs to rule: the case,
// both parties' evidence, the prior chat transcript between the two
// parties and the order context.
func (uc *DefaultArbitrationUsecase) GetCaseDossier(ctx context.Context, caseID string) (*arbitrationdto.CaseDossier, error) {
	violationCase, err := uc.violationRepo.GetCaseByID(ctx, caseID)
	if err != nil {
		return nil, err
	}
	order, err := uc.orderRepo.GetOrderWithItems(ctx, violationCase.OrderID)
	if err != nil {
		return nil, err
	}
	item := order.Item(violationCase.OrderItemID)
	if item == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrOrderItemNotFound, violationCase.OrderItemID)
	}

	evidence, err := uc.violationRepo.ListEvidenceByCase(ctx, caseID)
	if err != nil {
		return nil, err
	}
	dossier := &arbitrationdto.CaseDossier{
		Case:     violationCase,
		Order:    order,
		Item:     item,
		Provider: uc.displayUser(ctx, order.ProviderID),
		Customer: uc.displayUser(ctx, order.CustomerID),
	}
	for _, record := range evidence {
		if record.SubmitterRole == domain.RoleCustomer {
			dossier.CustomerEvidence = append(dossier.CustomerEvidence, record)
		} else {
			dossier.ProviderEvidence = append(dossier.ProviderEvidence, record)
		}
	}

	// Transcript matched by identity pair, independent of the case.
	transcript, err := uc.chatRepo.ListConversation(ctx, order.CustomerID, order.ProviderID)
	if err != nil {
		slog.Error("failed to load chat transcript for dossier", "case_id", caseID, "error", err.Error())
	} else {
		dossier.ChatTranscript = transcript
	}

	return dossier, nil
}

func (uc *DefaultArbitrationUsecase) displayUser(ctx context.Context, userID string) *domain.User {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		slog.Error("failed to load user display data", "user_id", userID, "error", err.Error())
		return &domain.User{ID: userID}
	}
	return user
}
