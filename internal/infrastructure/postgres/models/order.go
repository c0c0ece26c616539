package models

import "time"

// OrderModel and OrderItemModel map the marketplace tables this service
// reads. The time-driver writes orders.status; everything else is
// read-only here.
type OrderModel struct {
	ID          string `gorm:"primaryKey"`
	CustomerID  string `gorm:"index"`
	ProviderID  string `gorm:"index"`
	Type        string
	Status      string `gorm:"index"`
	DeliveredAt *time.Time
	RentalStart time.Time
	RentalEnd   time.Time

	Items []OrderItemModel `gorm:"foreignKey:OrderID;references:ID"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (OrderModel) TableName() string {
	return "orders"
}

type OrderItemModel struct {
	ID             string `gorm:"primaryKey"`
	OrderID        string `gorm:"index"`
	ProductID      string
	ProductName    string
	Quantity       int
	DepositPerUnit float64

	CreatedAt time.Time
}

func (OrderItemModel) TableName() string {
	return "order_items"
}
