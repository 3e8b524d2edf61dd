package memory

import (
	"context"
	"time"

	"github.com/jungmin-dev/coffee-order-backend/internal/models"
	repo "github.com/jungmin-dev/coffee-order-backend/internal/repository"
)

type usersRepo struct{ s *store }

func (r *usersRepo) row(userID string) (*userRow, bool) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	row, ok := r.s.users[userID]
	return row, ok
}

func (r *usersRepo) Create(_ context.Context, u models.User) (models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[u.UserID]; ok {
		return models.User{}, repo.ErrDuplicate
	}
	now := time.Now()
	u.Version = 0
	u.CreatedAt = now
	u.UpdatedAt = now
	r.s.users[u.UserID] = &userRow{u: u}
	return u, nil
}

func (r *usersRepo) Get(_ context.Context, userID string) (models.User, error) {
	row, ok := r.row(userID)
	if !ok {
		return models.User{}, repo.ErrNotFound
	}
	row.mu.Lock()
	defer row.mu.Unlock()
	return row.u, nil
}

func (r *usersRepo) AddPoint(_ context.Context, userID string, amount int64) (models.User, error) {
	row, ok := r.row(userID)
	if !ok {
		return models.User{}, repo.ErrNotFound
	}
	row.mu.Lock()
	defer row.mu.Unlock()
	row.u.Point += amount
	row.u.Version++
	row.u.UpdatedAt = time.Now()
	return row.u, nil
}

func (r *usersRepo) DeductPoint(_ context.Context, userID string, amount int64, expectedVersion int64) (models.User, error) {
	row, ok := r.row(userID)
	if !ok {
		return models.User{}, repo.ErrNotFound
	}
	row.mu.Lock()
	defer row.mu.Unlock()
	if row.u.Version != expectedVersion {
		return models.User{}, repo.ErrVersionConflict
	}
	row.u.Point -= amount
	row.u.Version++
	row.u.UpdatedAt = time.Now()
	return row.u, nil
}
