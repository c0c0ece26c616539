package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/loopwear/loopwear-violation-service/internal/domain"
	"github.com/loopwear/loopwear-violation-service/internal/infrastructure/metrics"
)

const (
	// Rental orders count as in use 48h after delivery even when the
	// scheduled rental window has not started yet.
	rentalDeliveryGrace = 48 * time.Hour
	// Purchase-only orders flip after a week in the customer's hands.
	purchaseDeliveryGrace = 7 * 24 * time.Hour
)

const (
	advanceRuleRentalStart = "rental_start_reached"
	advanceRuleDelivery48h = "delivered_48h"
	advanceRuleDelivery7d  = "delivered_7d"
)

type OrderStateUsecase interface {
	// AdvanceInTransitOrders runs one sweep over in-transit orders and
	// flips the time-eligible ones to in-use. Each order is its own
	// unit of work: a fault skips that order and the sweep continues,
	// already-persisted flips stay.
	AdvanceInTransitOrders(ctx context.Context) error
}

type DefaultOrderStateUsecase struct {
	orderRepo domain.OrderRepository
	notifier  domain.NotificationGateway
	metrics   *metrics.ViolationMetrics
	nowFn     func() time.Time
}

func NewDefaultOrderStateUsecase(
	orderRepo domain.OrderRepository,
	notifier domain.NotificationGateway,
	violationMetrics *metrics.ViolationMetrics,
) *DefaultOrderStateUsecase {
	return &DefaultOrderStateUsecase{
		orderRepo: orderRepo,
		notifier:  notifier,
		metrics:   violationMetrics,
		nowFn:     time.Now,
	}
}

func (uc *DefaultOrderStateUsecase) AdvanceInTransitOrders(ctx context.Context) error {
	started := uc.nowFn()
	defer func() {
		uc.metrics.SweepDuration.Observe(uc.nowFn().Sub(started).Seconds())
	}()

	orders, err := uc.orderRepo.FindInTransitOrders(ctx)
	if err != nil {
		return fmt.Errorf("failed to list in-transit orders: %w", err)
	}

	advanced := 0
	for _, order := range orders {
		select {
		case <-ctx.Done():
			slog.Info("order-state sweep canceled", "advanced", advanced)
			return ctx.Err()
		default:
		}

		rule, due := uc.advanceRule(order)
		if !due {
			continue
		}
		if err := uc.advanceOrder(ctx, order, rule); err != nil {
			slog.Error("failed to advance order, will retry next sweep", "order_id", order.ID, "error", err.Error())
			continue
		}
		advanced++
	}

	slog.Info("order-state sweep finished", "checked", len(orders), "advanced", advanced)
	return nil
}

// advanceRule decides whether the order is due and which condition
// fired. An order without a delivery timestamp is never due: the elapsed
// rules are anchored on delivery, and rental-start alone cannot put an
// undelivered order in use.
func (uc *DefaultOrderStateUsecase) advanceRule(order *domain.Order) (string, bool) {
	if order.DeliveredAt == nil {
		return "", false
	}
	now := uc.nowFn()
	switch order.Type {
	case domain.OrderTypeRental:
		if !order.RentalStart.IsZero() && !now.Before(order.RentalStart) {
			return advanceRuleRentalStart, true
		}
		if !now.Before(order.DeliveredAt.Add(rentalDeliveryGrace)) {
			return advanceRuleDelivery48h, true
		}
	case domain.OrderTypePurchase:
		if !now.Before(order.DeliveredAt.Add(purchaseDeliveryGrace)) {
			return advanceRuleDelivery7d, true
		}
	}
	return "", false
}

// advanceOrder flips one order and notifies both parties. The status
// write and the notification attempt form one unit; a notification
// failure after a successful write is logged, not retried, and never
// rolls the write back.
func (uc *DefaultOrderStateUsecase) advanceOrder(ctx context.Context, order *domain.Order, rule string) error {
	swapped, err := uc.orderRepo.UpdateStatusCAS(ctx, order.ID, domain.OrderInTransit, domain.OrderInUse)
	if err != nil {
		return err
	}
	if !swapped {
		// Someone else moved the order; nothing to do.
		return nil
	}

	uc.metrics.OrdersAdvancedTotal.WithLabelValues(rule).Inc()

	message := fmt.Sprintf("Your order was marked in use (%s).", advanceRuleMessage(rule))
	for _, userID := range []string{order.CustomerID, order.ProviderID} {
		if err := uc.notifier.Notify(ctx, userID, message, domain.NotifyCategoryOrderAdvanced, order.ID); err != nil {
			uc.metrics.NotificationErrorsTotal.Inc()
			slog.Error("failed to notify about order advance", "order_id", order.ID, "user_id", userID, "error", err.Error())
		}
	}
	return nil
}

func advanceRuleMessage(rule string) string {
	switch rule {
	case advanceRuleRentalStart:
		return "the scheduled rental start was reached"
	case advanceRuleDelivery48h:
		return "48 hours passed since delivery"
	case advanceRuleDelivery7d:
		return "7 days passed since delivery"
	default:
		return rule
	}
}
