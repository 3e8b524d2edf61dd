// Package memory backs the stores with process-local maps. It is the storage
// driver for tests and for running the server without a database; balance
// writes serialize on a per-user mutex and carry the same version counter as
// the Postgres driver.
package memory

import (
	"context"
	"sync"

	"github.com/jungmin-dev/coffee-order-backend/internal/models"
	repo "github.com/jungmin-dev/coffee-order-backend/internal/repository"
)

type userRow struct {
	mu sync.Mutex
	u  models.User
}

type store struct {
	mu     sync.RWMutex
	users  map[string]*userRow
	menus  map[int64]models.Menu
	orders []models.Order

	nextMenuID int64
}

type Repositories struct {
	Users  repo.Users
	Menus  repo.Menus
	Orders repo.Orders
}

func NewRepositories() Repositories {
	s := &store{
		users: make(map[string]*userRow),
		menus: make(map[int64]models.Menu),
	}
	return Repositories{
		Users:  &usersRepo{s},
		Menus:  &menusRepo{s},
		Orders: &ordersRepo{s},
	}
}

func (r Repositories) Repos() repo.Repos {
	return repo.Repos{Users: r.Users, Menus: r.Menus, Orders: r.Orders}
}

// WithTx passes the stores through unchanged: every write below is atomic on
// its own, and callers order the deduction before the order append so a lost
// race aborts before any order row exists.
func (r Repositories) WithTx(_ context.Context, fn func(repo.Repos) error) error {
	return fn(r.Repos())
}
