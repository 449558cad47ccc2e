// Package services orchestrates the persistence gateway and the side cache.
// Every write follows the same shape: check existence, mutate, re-read for
// fresh counts, cache the result, invalidate the affected keys. Reads consult
// the cache first and fall back to the gateway on a miss.
package services

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"menuapi/application/ports"
	"menuapi/domain/entities"
	"menuapi/infrastructure/cache"
	apperrors "menuapi/pkg/errors"
)

// MenuService implements the menu operations.
type MenuService struct {
	menus  ports.MenuRepository
	cache  ports.Cache
	logger *zap.Logger
}

// NewMenuService creates a menu service.
func NewMenuService(menus ports.MenuRepository, c ports.Cache, logger *zap.Logger) *MenuService {
	return &MenuService{menus: menus, cache: c, logger: logger}
}

// List returns all menus, serving the cached listing when present.
func (s *MenuService) List(ctx context.Context) ([]entities.MenuInfo, error) {
	key := cache.Key("menu", cache.AllKey)

	var cached []entities.MenuInfo
	if err := s.cache.Get(ctx, key, &cached); err == nil {
		return cached, nil
	}

	menus, err := s.menus.List(ctx)
	if err != nil {
		return nil, err
	}
	s.cacheSet(ctx, key, menus)
	return menus, nil
}

// Get returns one menu by id.
func (s *MenuService) Get(ctx context.Context, menuID string) (*entities.MenuInfo, error) {
	key := cache.Key("menu", menuID)

	var cached entities.MenuInfo
	if err := s.cache.Get(ctx, key, &cached); err == nil {
		return &cached, nil
	}

	menu, err := s.menus.Get(ctx, menuID)
	if err != nil {
		return nil, err
	}
	if menu == nil {
		return nil, apperrors.NewNotFoundError("menu")
	}
	s.cacheSet(ctx, key, menu)
	return menu, nil
}

// Create inserts a menu, re-reads it for the derived counts, caches the new
// entity and invalidates the menu listing.
func (s *MenuService) Create(ctx context.Context, data entities.MenuCreate) (*entities.MenuInfo, error) {
	menuID, err := s.menus.Create(ctx, data)
	if err != nil {
		if errors.Is(err, ports.ErrUniqueViolation) {
			return nil, apperrors.NewConflictError("Menu with that title already exists").WithCause(err)
		}
		return nil, err
	}

	created, err := s.menus.Get(ctx, menuID)
	if err != nil {
		return nil, err
	}

	s.cacheSet(ctx, cache.Key("menu", menuID), created)
	s.cacheClear(ctx, cache.Key("menu", cache.AllKey))
	return created, nil
}

// Update applies a partial update, returning NotFound when the menu is
// absent. The single-entity keys of other menus stay cached; only this id
// and the listing change.
func (s *MenuService) Update(ctx context.Context, menuID string, patch entities.MenuPatch) (*entities.MenuInfo, error) {
	existing, err := s.menus.Get(ctx, menuID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, apperrors.NewNotFoundError("menu")
	}

	if err := s.menus.Update(ctx, menuID, patch); err != nil {
		if errors.Is(err, ports.ErrUniqueViolation) {
			return nil, apperrors.NewConflictError("Menu with that title already exists").WithCause(err)
		}
		return nil, err
	}

	updated, err := s.menus.Get(ctx, menuID)
	if err != nil {
		return nil, err
	}

	s.cacheSet(ctx, cache.Key("menu", menuID), updated)
	s.cacheClear(ctx, cache.Key("menu", cache.AllKey))
	return updated, nil
}

// Delete removes a menu and, via the storage layer's cascade, everything
// under it. The caches of the whole subtree are cleared wholesale: every
// submenu and dish key could belong to a deleted descendant.
func (s *MenuService) Delete(ctx context.Context, menuID string) (*entities.Message, error) {
	existing, err := s.menus.Get(ctx, menuID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, apperrors.NewNotFoundError("menu")
	}

	if err := s.menus.Delete(ctx, menuID); err != nil {
		return nil, err
	}

	s.cacheClear(ctx, cache.Key("menu", menuID))
	s.cacheClear(ctx, cache.Key("menu", cache.AllKey))
	s.cacheClearPrefix(ctx, "submenu:")
	s.cacheClearPrefix(ctx, "dish:")
	return &entities.Message{Status: true, Message: "The menu has been deleted"}, nil
}

// Cache failures never fail a request; the store stays authoritative.

func (s *MenuService) cacheSet(ctx context.Context, key string, value any) {
	if err := s.cache.Set(ctx, key, value); err != nil {
		s.logger.Warn("Cache set failed", zap.String("key", key), zap.Error(err))
	}
}

func (s *MenuService) cacheClear(ctx context.Context, key string) {
	if err := s.cache.Clear(ctx, key); err != nil {
		s.logger.Warn("Cache clear failed", zap.String("key", key), zap.Error(err))
	}
}

func (s *MenuService) cacheClearPrefix(ctx context.Context, prefix string) {
	if err := s.cache.ClearPrefix(ctx, prefix); err != nil {
		s.logger.Warn("Cache prefix clear failed", zap.String("prefix", prefix), zap.Error(err))
	}
}
