package services

import (
	"context"
	"errors"
	"time"

	"github.com/jungmin-dev/coffee-order-backend/internal/apperr"
	"github.com/jungmin-dev/coffee-order-backend/internal/models"
	repo "github.com/jungmin-dev/coffee-order-backend/internal/repository"
)

type MenuService struct {
	menus  repo.Menus
	orders repo.Orders

	defaultWindowDays int
	defaultLimit      int
}

func NewMenuService(menus repo.Menus, orders repo.Orders, windowDays, limit int) *MenuService {
	return &MenuService{
		menus:             menus,
		orders:            orders,
		defaultWindowDays: windowDays,
		defaultLimit:      limit,
	}
}

func (s *MenuService) List(ctx context.Context) ([]models.Menu, error) {
	menus, err := s.menus.List(ctx)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "menu list failed", err)
	}
	return menus, nil
}

func (s *MenuService) Get(ctx context.Context, id int64) (models.Menu, error) {
	m, err := s.menus.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return models.Menu{}, apperr.New(apperr.CodeMenuNotFound, "menu not found")
		}
		return models.Menu{}, apperr.Wrap(apperr.CodeInternal, "menu lookup failed", err)
	}
	return m, nil
}

// Popular ranks menus by order volume over a trailing window. Non-positive
// windowDays/limit fall back to the configured defaults. An empty window is
// an empty list, not an error.
func (s *MenuService) Popular(ctx context.Context, windowDays, limit int) ([]models.PopularMenuItem, error) {
	if windowDays <= 0 {
		windowDays = s.defaultWindowDays
	}
	if limit <= 0 {
		limit = s.defaultLimit
	}
	since := time.Now().AddDate(0, 0, -windowDays)

	items, err := s.orders.AggregateByMenuSince(ctx, since, limit)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "popular menu query failed", err)
	}
	if items == nil {
		items = []models.PopularMenuItem{}
	}
	return items, nil
}

// EnsureDefaultMenus installs the stock catalog when the menu table is empty.
func (s *MenuService) EnsureDefaultMenus(ctx context.Context) error {
	existing, err := s.menus.List(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}
	defaults := []models.Menu{
		{Name: "Americano", Price: 3000},
		{Name: "Cafe Latte", Price: 4000},
		{Name: "Cappuccino", Price: 4000},
		{Name: "Vanilla Latte", Price: 4500},
		{Name: "Espresso", Price: 2500},
	}
	for _, m := range defaults {
		if _, err := s.menus.Create(ctx, m); err != nil {
			return err
		}
	}
	return nil
}
