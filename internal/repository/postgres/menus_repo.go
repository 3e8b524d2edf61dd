package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/jungmin-dev/coffee-order-backend/internal/models"
	repo "github.com/jungmin-dev/coffee-order-backend/internal/repository"
)

type menusRepo struct{ db querier }

func (r *menusRepo) Create(ctx context.Context, m models.Menu) (models.Menu, error) {
	err := r.db.QueryRow(ctx,
		`INSERT INTO menus(name, price) VALUES($1, $2) RETURNING id, name, price`,
		m.Name, m.Price,
	).Scan(&m.ID, &m.Name, &m.Price)
	return m, err
}

func (r *menusRepo) Get(ctx context.Context, id int64) (models.Menu, error) {
	var m models.Menu
	err := r.db.QueryRow(ctx,
		`SELECT id, name, price FROM menus WHERE id=$1`, id,
	).Scan(&m.ID, &m.Name, &m.Price)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Menu{}, repo.ErrNotFound
	}
	return m, err
}

func (r *menusRepo) List(ctx context.Context) ([]models.Menu, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, price FROM menus ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Menu
	for rows.Next() {
		var m models.Menu
		if err := rows.Scan(&m.ID, &m.Name, &m.Price); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
