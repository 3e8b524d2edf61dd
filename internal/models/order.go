package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderCompleted OrderStatus = "completed"
	OrderCancelled OrderStatus = "cancelled"
	OrderRefunded  OrderStatus = "refunded"
)

var ErrInvalidStatusTransition = errors.New("invalid order status transition")

// Order is append-only once completed: total price and menu never change
// after the deduction commits.
type Order struct {
	OrderID    string      `json:"order_id"`
	UserID     string      `json:"user_id"`
	MenuID     int64       `json:"menu_id"`
	Quantity   int         `json:"quantity"`
	TotalPrice int64       `json:"total_price"`
	OrderDate  time.Time   `json:"order_date"`
	Status     OrderStatus `json:"status"`
}

func NewOrder(userID string, menuID int64, quantity int, totalPrice int64) Order {
	return Order{
		OrderID:    uuid.NewString(),
		UserID:     userID,
		MenuID:     menuID,
		Quantity:   quantity,
		TotalPrice: totalPrice,
		OrderDate:  time.Now(),
		Status:     OrderPending,
	}
}

// MarkCompleted transitions pending -> completed.
func (o *Order) MarkCompleted() error {
	if o.Status != OrderPending {
		return ErrInvalidStatusTransition
	}
	o.Status = OrderCompleted
	return nil
}

// MarkCancelled transitions pending|completed -> cancelled.
func (o *Order) MarkCancelled() error {
	if o.Status == OrderCancelled || o.Status == OrderRefunded {
		return ErrInvalidStatusTransition
	}
	o.Status = OrderCancelled
	return nil
}

// MarkRefunded transitions completed -> refunded.
func (o *Order) MarkRefunded() error {
	if o.Status != OrderCompleted {
		return ErrInvalidStatusTransition
	}
	o.Status = OrderRefunded
	return nil
}
