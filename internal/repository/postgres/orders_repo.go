package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jungmin-dev/coffee-order-backend/internal/models"
	repo "github.com/jungmin-dev/coffee-order-backend/internal/repository"
)

type ordersRepo struct{ db querier }

func (r *ordersRepo) Create(ctx context.Context, o models.Order) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO orders(order_id, user_id, menu_id, quantity, total_price, order_date, status)
		 VALUES($1, $2, $3, $4, $5, $6, $7)`,
		o.OrderID, o.UserID, o.MenuID, o.Quantity, o.TotalPrice, o.OrderDate, o.Status,
	)
	return err
}

func (r *ordersRepo) GetByID(ctx context.Context, orderID string) (models.Order, error) {
	var o models.Order
	err := r.db.QueryRow(ctx,
		`SELECT order_id, user_id, menu_id, quantity, total_price, order_date, status
		   FROM orders WHERE order_id=$1`, orderID,
	).Scan(&o.OrderID, &o.UserID, &o.MenuID, &o.Quantity, &o.TotalPrice, &o.OrderDate, &o.Status)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Order{}, repo.ErrNotFound
	}
	return o, err
}

func (r *ordersRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]models.Order, error) {
	rows, err := r.db.Query(ctx,
		`SELECT order_id, user_id, menu_id, quantity, total_price, order_date, status
		   FROM orders
		  WHERE user_id=$1
		  ORDER BY order_date DESC
		  LIMIT $2 OFFSET $3`,
		userID, limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Order
	for rows.Next() {
		var o models.Order
		if err := rows.Scan(&o.OrderID, &o.UserID, &o.MenuID, &o.Quantity, &o.TotalPrice, &o.OrderDate, &o.Status); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func (r *ordersRepo) AggregateByMenuSince(ctx context.Context, since time.Time, limit int) ([]models.PopularMenuItem, error) {
	rows, err := r.db.Query(ctx,
		`SELECT m.id, m.name, m.price, COUNT(o.order_id) AS order_count
		   FROM orders o
		   JOIN menus m ON m.id = o.menu_id
		  WHERE o.order_date >= $1
		  GROUP BY m.id, m.name, m.price
		  ORDER BY COUNT(o.order_id) DESC, m.id ASC
		  LIMIT $2`,
		since, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.PopularMenuItem
	for rows.Next() {
		var it models.PopularMenuItem
		if err := rows.Scan(&it.MenuID, &it.MenuName, &it.Price, &it.OrderCount); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}
