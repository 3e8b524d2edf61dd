package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOrder(t *testing.T) {
	o := NewOrder("u1", 2, 3, 12000)

	assert.NotEmpty(t, o.OrderID)
	assert.Equal(t, "u1", o.UserID)
	assert.Equal(t, int64(2), o.MenuID)
	assert.Equal(t, 3, o.Quantity)
	assert.Equal(t, int64(12000), o.TotalPrice)
	assert.Equal(t, OrderPending, o.Status)
	assert.False(t, o.OrderDate.IsZero())
}

func TestOrderStatusTransitions(t *testing.T) {
	tests := []struct {
		name    string
		from    OrderStatus
		apply   func(*Order) error
		want    OrderStatus
		wantErr bool
	}{
		{"pending to completed", OrderPending, (*Order).MarkCompleted, OrderCompleted, false},
		{"completed cannot re-complete", OrderCompleted, (*Order).MarkCompleted, OrderCompleted, true},
		{"cancelled cannot complete", OrderCancelled, (*Order).MarkCompleted, OrderCancelled, true},
		{"pending to cancelled", OrderPending, (*Order).MarkCancelled, OrderCancelled, false},
		{"completed to cancelled", OrderCompleted, (*Order).MarkCancelled, OrderCancelled, false},
		{"cancelled cannot re-cancel", OrderCancelled, (*Order).MarkCancelled, OrderCancelled, true},
		{"refunded cannot cancel", OrderRefunded, (*Order).MarkCancelled, OrderRefunded, true},
		{"completed to refunded", OrderCompleted, (*Order).MarkRefunded, OrderRefunded, false},
		{"pending cannot refund", OrderPending, (*Order).MarkRefunded, OrderPending, true},
		{"refunded cannot re-refund", OrderRefunded, (*Order).MarkRefunded, OrderRefunded, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := Order{Status: tt.from}
			err := tt.apply(&o)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidStatusTransition)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, o.Status)
		})
	}
}
