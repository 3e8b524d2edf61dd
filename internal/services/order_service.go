package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jungmin-dev/coffee-order-backend/internal/apperr"
	"github.com/jungmin-dev/coffee-order-backend/internal/collector"
	"github.com/jungmin-dev/coffee-order-backend/internal/metrics"
	"github.com/jungmin-dev/coffee-order-backend/internal/models"
	repo "github.com/jungmin-dev/coffee-order-backend/internal/repository"
	"github.com/jungmin-dev/coffee-order-backend/internal/worker"
)

// OrderService coordinates the order transaction: validate, compute the
// total, deduct the balance, append the order row, notify the collector.
// The deduction carries the version read at acquisition, so of two racing
// orders for the same user exactly one commits; the loser gets a
// CONCURRENCY_CONFLICT and no order row. The coordinator never retries on
// its own; sufficiency must be re-validated on a fresh read.
type OrderService struct {
	users  repo.Users
	menus  repo.Menus
	orders repo.Orders
	tx     repo.TxRunner
	col    collector.Client
	wp     *worker.Pool
}

func NewOrderService(r repo.Repos, tx repo.TxRunner, col collector.Client, wp *worker.Pool) *OrderService {
	return &OrderService{
		users:  r.Users,
		menus:  r.Menus,
		orders: r.Orders,
		tx:     tx,
		col:    col,
		wp:     wp,
	}
}

type OrderResponse struct {
	OrderID        string             `json:"order_id"`
	UserID         string             `json:"user_id"`
	MenuID         int64              `json:"menu_id"`
	MenuName       string             `json:"menu_name"`
	Quantity       int                `json:"quantity"`
	TotalPrice     int64              `json:"total_price"`
	RemainingPoint int64              `json:"remaining_point"`
	OrderDate      time.Time          `json:"order_date"`
	Status         models.OrderStatus `json:"status"`
}

// PlaceOrder runs the whole transaction for one order request. Any
// client-declared total price is ignored; the server-computed total is
// authoritative.
func (s *OrderService) PlaceOrder(ctx context.Context, userID string, menuID int64, quantity int) (OrderResponse, error) {
	if quantity <= 0 {
		return OrderResponse{}, fail(apperr.New(apperr.CodeInvalidInput, "quantity must be greater than zero"))
	}

	// The snapshot read is the optimistic acquisition: user.Version is the
	// token every later write must present.
	user, err := s.users.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return OrderResponse{}, fail(apperr.New(apperr.CodeUserNotFound, "user not found"))
		}
		return OrderResponse{}, fail(apperr.Wrap(apperr.CodeInternal, "order failed", err))
	}

	menu, err := s.menus.Get(ctx, menuID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return OrderResponse{}, fail(apperr.New(apperr.CodeMenuNotFound, "menu not found"))
		}
		return OrderResponse{}, fail(apperr.Wrap(apperr.CodeInternal, "order failed", err))
	}

	totalPrice := menu.Price * int64(quantity)
	if user.Point < totalPrice {
		slog.Info("order rejected, insufficient point",
			"user_id", userID, "point", user.Point, "required", totalPrice)
		return OrderResponse{}, fail(apperr.New(apperr.CodeInsufficientBalance, "insufficient point balance"))
	}

	order := models.NewOrder(userID, menuID, quantity, totalPrice)
	if err := order.MarkCompleted(); err != nil {
		return OrderResponse{}, fail(apperr.Wrap(apperr.CodeInternal, "order failed", err))
	}

	var remaining int64
	txErr := s.tx.WithTx(ctx, func(r repo.Repos) error {
		updated, err := r.Users.DeductPoint(ctx, userID, totalPrice, user.Version)
		if err != nil {
			return err
		}
		if err := r.Orders.Create(ctx, order); err != nil {
			return err
		}
		remaining = updated.Point
		return nil
	})
	if txErr != nil {
		switch {
		case errors.Is(txErr, repo.ErrVersionConflict):
			metrics.ConcurrencyConflictsTotal.Inc()
			slog.Warn("order lost balance race", "user_id", userID, "menu_id", menuID)
			return OrderResponse{}, fail(apperr.New(apperr.CodeConcurrencyConflict,
				"concurrent balance update, please retry"))
		case errors.Is(txErr, repo.ErrNotFound):
			return OrderResponse{}, fail(apperr.New(apperr.CodeUserNotFound, "user not found"))
		default:
			slog.Error("order transaction failed", "user_id", userID, "err", txErr)
			return OrderResponse{}, fail(apperr.Wrap(apperr.CodeInternal, "order failed", txErr))
		}
	}

	s.notify(collector.OrderData{
		OrderID:       order.OrderID,
		UserID:        order.UserID,
		MenuID:        menu.ID,
		MenuName:      menu.Name,
		Quantity:      order.Quantity,
		PaymentAmount: order.TotalPrice,
		OrderDate:     order.OrderDate,
	})

	metrics.OrdersTotal.WithLabelValues("completed").Inc()
	slog.Info("order completed",
		"order_id", order.OrderID, "user_id", userID, "menu_id", menuID,
		"total_price", totalPrice, "remaining_point", remaining)

	return OrderResponse{
		OrderID:        order.OrderID,
		UserID:         order.UserID,
		MenuID:         menu.ID,
		MenuName:       menu.Name,
		Quantity:       order.Quantity,
		TotalPrice:     order.TotalPrice,
		RemainingPoint: remaining,
		OrderDate:      order.OrderDate,
		Status:         order.Status,
	}, nil
}

// notify ships the order to the data-collection platform off the request
// path. Failure is logged and dropped, never propagated.
func (s *OrderService) notify(data collector.OrderData) {
	s.wp.Submit(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.col.SendOrderData(ctx, data); err != nil {
			slog.Warn("order data collection failed", "order_id", data.OrderID, "err", err)
		}
	})
}

func (s *OrderService) GetByID(ctx context.Context, orderID string) (models.Order, error) {
	o, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return models.Order{}, apperr.New(apperr.CodeOrderNotFound, "order not found")
		}
		return models.Order{}, apperr.Wrap(apperr.CodeInternal, "order lookup failed", err)
	}
	return o, nil
}

func (s *OrderService) ListByUser(ctx context.Context, userID string, limit, offset int) ([]models.Order, error) {
	orders, err := s.orders.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "order list failed", err)
	}
	return orders, nil
}

// fail counts the failed attempt under its error code.
func fail(err *apperr.Error) error {
	metrics.OrdersTotal.WithLabelValues(string(err.Code)).Inc()
	return err
}
