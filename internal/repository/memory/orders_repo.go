package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jungmin-dev/coffee-order-backend/internal/models"
	repo "github.com/jungmin-dev/coffee-order-backend/internal/repository"
)

type ordersRepo struct{ s *store }

func (r *ordersRepo) Create(_ context.Context, o models.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.orders = append(r.s.orders, o)
	return nil
}

func (r *ordersRepo) GetByID(_ context.Context, orderID string) (models.Order, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, o := range r.s.orders {
		if o.OrderID == orderID {
			return o, nil
		}
	}
	return models.Order{}, repo.ErrNotFound
}

func (r *ordersRepo) ListByUser(_ context.Context, userID string, limit, offset int) ([]models.Order, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var all []models.Order
	for _, o := range r.s.orders {
		if o.UserID == userID {
			all = append(all, o)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].OrderDate.After(all[j].OrderDate) })
	if offset >= len(all) {
		return nil, nil
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

func (r *ordersRepo) AggregateByMenuSince(_ context.Context, since time.Time, limit int) ([]models.PopularMenuItem, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	counts := make(map[int64]int64)
	for _, o := range r.s.orders {
		if !o.OrderDate.Before(since) {
			counts[o.MenuID]++
		}
	}

	out := make([]models.PopularMenuItem, 0, len(counts))
	for menuID, n := range counts {
		m, ok := r.s.menus[menuID]
		if !ok {
			continue
		}
		out = append(out, models.PopularMenuItem{
			MenuID:     m.ID,
			MenuName:   m.Name,
			Price:      m.Price,
			OrderCount: n,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].OrderCount != out[j].OrderCount {
			return out[i].OrderCount > out[j].OrderCount
		}
		return out[i].MenuID < out[j].MenuID
	})
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}
