package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jungmin-dev/coffee-order-backend/internal/models"
)

var (
	ErrNotFound = errors.New("record not found")
	// ErrVersionConflict reports a lost optimistic-lock race: the stored
	// version no longer matches the one presented on write.
	ErrVersionConflict = errors.New("version conflict")
	ErrDuplicate       = errors.New("duplicate key")
)

type Users interface {
	Create(ctx context.Context, u models.User) (models.User, error)
	Get(ctx context.Context, userID string) (models.User, error)

	// AddPoint atomically credits the balance and bumps the version.
	// Concurrent charges never lose updates.
	AddPoint(ctx context.Context, userID string, amount int64) (models.User, error)

	// DeductPoint debits the balance only if the stored version still equals
	// expectedVersion, bumping it on success. Returns ErrVersionConflict when
	// another writer got there first; the committed balance never goes
	// negative.
	DeductPoint(ctx context.Context, userID string, amount int64, expectedVersion int64) (models.User, error)
}

type Menus interface {
	Create(ctx context.Context, m models.Menu) (models.Menu, error)
	Get(ctx context.Context, id int64) (models.Menu, error)
	List(ctx context.Context) ([]models.Menu, error)
}

type Orders interface {
	Create(ctx context.Context, o models.Order) error
	GetByID(ctx context.Context, orderID string) (models.Order, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]models.Order, error)

	// AggregateByMenuSince counts orders per menu with order_date >= since,
	// ordered by count descending, menu id ascending, truncated to limit.
	AggregateByMenuSince(ctx context.Context, since time.Time, limit int) ([]models.PopularMenuItem, error)
}

// Repos bundles the stores visible to one unit of work.
type Repos struct {
	Users  Users
	Menus  Menus
	Orders Orders
}

// TxRunner runs fn with all stores bound to one atomic unit. The Postgres
// implementation opens a database transaction; the memory implementation
// relies on per-row atomicity and simply passes its stores through.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(Repos) error) error
}
