package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	repo "github.com/jungmin-dev/coffee-order-backend/internal/repository"
)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx so every repo can run
// against the pool or inside a transaction.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type Repositories struct {
	Users  repo.Users
	Menus  repo.Menus
	Orders repo.Orders

	pool *pgxpool.Pool
}

func NewRepositories(pool *pgxpool.Pool) Repositories {
	return Repositories{
		Users:  &usersRepo{db: pool},
		Menus:  &menusRepo{db: pool},
		Orders: &ordersRepo{db: pool},
		pool:   pool,
	}
}

func (r Repositories) Repos() repo.Repos {
	return repo.Repos{Users: r.Users, Menus: r.Menus, Orders: r.Orders}
}

// WithTx runs fn with tx-bound stores in a single database transaction.
func (r Repositories) WithTx(ctx context.Context, fn func(repo.Repos) error) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{
		IsoLevel:   pgx.ReadCommitted,
		AccessMode: pgx.ReadWrite,
	})
	if err != nil {
		return err
	}
	bound := repo.Repos{
		Users:  &usersRepo{db: tx},
		Menus:  &menusRepo{db: tx},
		Orders: &ordersRepo{db: tx},
	}
	if err := fn(bound); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	return tx.Commit(ctx)
}
