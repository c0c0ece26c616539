package domain

import (
	"context"
	"time"
)

type OrderStatus string

const (
	OrderCreated   OrderStatus = "CREATED"
	OrderPaid      OrderStatus = "PAID"
	OrderInTransit OrderStatus = "IN_TRANSIT"
	OrderInUse     OrderStatus = "IN_USE"
	OrderReturned  OrderStatus = "RETURNED"
	OrderCompleted OrderStatus = "COMPLETED"
	OrderCanceled  OrderStatus = "CANCELED"
)

type OrderType string

const (
	OrderTypeRental   OrderType = "RENTAL"
	OrderTypePurchase OrderType = "PURCHASE"
)

// Order is the read model of the marketplace order this service
// references. The only column this service writes is Status, and only
// from the time-driver sweep.
type Order struct {
	ID          string
	CustomerID  string
	ProviderID  string
	Type        OrderType
	Status      OrderStatus
	DeliveredAt *time.Time
	RentalStart time.Time
	RentalEnd   time.Time
	CreatedAt   time.Time
	Items       []*OrderItem
}

type OrderItem struct {
	ID             string
	OrderID        string
	ProductID      string
	ProductName    string
	Quantity       int
	DepositPerUnit float64
}

func (o *Order) Item(itemID string) *OrderItem {
	for _, item := range o.Items {
		if item.ID == itemID {
			return item
		}
	}
	return nil
}

// ViolationReportable reports whether the order has progressed far
// enough for the provider to report a violation on it.
func (o *Order) ViolationReportable() bool {
	switch o.Status {
	case OrderInUse, OrderReturned, OrderCompleted:
		return true
	}
	return false
}

type OrderRepository interface {
	GetOrderWithItems(ctx context.Context, orderID string) (*Order, error)
	FindInTransitOrders(ctx context.Context) ([]*Order, error)
	// UpdateStatusCAS flips the order status only if it still holds the
	// expected prior value.
	UpdateStatusCAS(ctx context.Context, orderID string, from, to OrderStatus) (bool, error)
}
