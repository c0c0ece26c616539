package background

import (
	"context"
	"log/slog"
	"time"

	orderstate "github.com/loopwear/loopwear-violation-service/internal/usecase/orderstate"
	settlement "github.com/loopwear/loopwear-violation-service/internal/usecase/settlement"
)

type BackgroundTasks struct {
	OrderStateUsecase  orderstate.OrderStateUsecase
	SettlementUsecase  settlement.SettlementUsecase
	OrderSweepInterval time.Duration
	SettlementInterval time.Duration
}

func NewBackgroundTasks(
	orderStateUC orderstate.OrderStateUsecase,
	settlementUC settlement.SettlementUsecase,
	orderSweepInterval, settlementInterval time.Duration,
) *BackgroundTasks {
	return &BackgroundTasks{
		OrderStateUsecase:  orderStateUC,
		SettlementUsecase:  settlementUC,
		OrderSweepInterval: orderSweepInterval,
		SettlementInterval: settlementInterval,
	}
}

func (bt *BackgroundTasks) StartAll(ctx context.Context) {
	go bt.startOrderStateSweep(ctx)
	go bt.startSettlementWorker(ctx)
}

// startOrderStateSweep drives the time-based order transitions. One
// sweep runs at a time; a failed sweep just waits for the next tick, so
// a transient fault retries on the daily cadence.
func (bt *BackgroundTasks) startOrderStateSweep(ctx context.Context) {
	ticker := time.NewTicker(bt.OrderSweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := bt.OrderStateUsecase.AdvanceInTransitOrders(ctx); err != nil {
				slog.Error("order-state sweep failed, will retry next cycle", "error", err.Error())
			}
		}
	}
}

// startSettlementWorker settles accepted and admin-resolved cases. The
// settlement recorder is idempotent per case, so re-processing after a
// fault cannot double-charge.
func (bt *BackgroundTasks) startSettlementWorker(ctx context.Context) {
	ticker := time.NewTicker(bt.SettlementInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := bt.SettlementUsecase.SettleEligibleCases(ctx); err != nil {
				slog.Error("settlement worker cycle failed", "error", err.Error())
			}
		}
	}
}
