package publisher

import "time"

// NotificationEvent is consumed by the downstream delivery services
// (push channel, email) which fan the message out to the user.
type NotificationEvent struct {
	UserID    string    `json:"user_id"`
	Message   string    `json:"message"`
	Category  string    `json:"category"`
	OrderID   string    `json:"order_id"`
	CreatedAt time.Time `json:"created_at"`
}
