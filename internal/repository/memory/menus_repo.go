package memory

import (
	"context"
	"sort"

	"github.com/jungmin-dev/coffee-order-backend/internal/models"
	repo "github.com/jungmin-dev/coffee-order-backend/internal/repository"
)

type menusRepo struct{ s *store }

func (r *menusRepo) Create(_ context.Context, m models.Menu) (models.Menu, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if m.ID == 0 {
		r.s.nextMenuID++
		m.ID = r.s.nextMenuID
	} else if m.ID > r.s.nextMenuID {
		r.s.nextMenuID = m.ID
	}
	if _, ok := r.s.menus[m.ID]; ok {
		return models.Menu{}, repo.ErrDuplicate
	}
	r.s.menus[m.ID] = m
	return m, nil
}

func (r *menusRepo) Get(_ context.Context, id int64) (models.Menu, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	m, ok := r.s.menus[id]
	if !ok {
		return models.Menu{}, repo.ErrNotFound
	}
	return m, nil
}

func (r *menusRepo) List(_ context.Context) ([]models.Menu, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]models.Menu, 0, len(r.s.menus))
	for _, m := range r.s.menus {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
