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

// DishService implements the dish operations.
type DishService struct {
	dishes ports.DishRepository
	cache  ports.Cache
	logger *zap.Logger
}

// NewDishService creates a dish service.
func NewDishService(dishes ports.DishRepository, c ports.Cache, logger *zap.Logger) *DishService {
	return &DishService{dishes: dishes, cache: c, logger: logger}
}

// List returns the dishes of a submenu, serving the cached listing when
// present.
func (s *DishService) List(ctx context.Context, menuID, submenuID string) ([]entities.DishInfo, error) {
	key := cache.Key("dish", cache.AllKey)

	var cached []entities.DishInfo
	if err := s.cache.Get(ctx, key, &cached); err == nil {
		return cached, nil
	}

	dishes, err := s.dishes.List(ctx, menuID, submenuID)
	if err != nil {
		return nil, err
	}
	s.cacheSet(ctx, key, dishes)
	return dishes, nil
}

// Get returns one dish under the given parent chain.
func (s *DishService) Get(ctx context.Context, menuID, submenuID, dishID string) (*entities.DishInfo, error) {
	key := cache.Key("dish", dishID)

	var cached entities.DishInfo
	if err := s.cache.Get(ctx, key, &cached); err == nil {
		return &cached, nil
	}

	dish, err := s.dishes.Get(ctx, menuID, submenuID, dishID)
	if err != nil {
		return nil, err
	}
	if dish == nil {
		return nil, apperrors.NewNotFoundError("dish")
	}
	s.cacheSet(ctx, key, dish)
	return dish, nil
}

// Create inserts a dish and invalidates both ancestor levels: the submenu's
// and the menu's dish counts changed.
func (s *DishService) Create(ctx context.Context, menuID, submenuID string, data entities.DishCreate) (*entities.DishInfo, error) {
	dishID, err := s.dishes.Create(ctx, submenuID, data)
	if err != nil {
		switch {
		case errors.Is(err, ports.ErrUniqueViolation):
			return nil, apperrors.NewConflictError("Dish with that title already exists").WithCause(err)
		case errors.Is(err, ports.ErrForeignKeyViolation):
			return nil, apperrors.NewConflictError("parent submenu not found").WithCause(err)
		}
		return nil, err
	}

	created, err := s.dishes.Get(ctx, menuID, submenuID, dishID)
	if err != nil {
		return nil, err
	}

	s.cacheSet(ctx, cache.Key("dish", dishID), created)
	s.invalidateAncestors(ctx, menuID, submenuID)
	return created, nil
}

// Update applies a partial update. Sibling entries stay cached; the listing
// and ancestor keys are invalidated.
func (s *DishService) Update(ctx context.Context, menuID, submenuID, dishID string, patch entities.DishPatch) (*entities.DishInfo, error) {
	existing, err := s.dishes.Get(ctx, menuID, submenuID, dishID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, apperrors.NewNotFoundError("dish")
	}

	if err := s.dishes.Update(ctx, menuID, submenuID, dishID, patch); err != nil {
		if errors.Is(err, ports.ErrUniqueViolation) {
			return nil, apperrors.NewConflictError("Dish with that title already exists").WithCause(err)
		}
		return nil, err
	}

	updated, err := s.dishes.Get(ctx, menuID, submenuID, dishID)
	if err != nil {
		return nil, err
	}

	s.cacheSet(ctx, cache.Key("dish", dishID), updated)
	s.invalidateAncestors(ctx, menuID, submenuID)
	return updated, nil
}

// Delete removes a dish and runs the full ancestor fan-out.
func (s *DishService) Delete(ctx context.Context, menuID, submenuID, dishID string) (*entities.Message, error) {
	existing, err := s.dishes.Get(ctx, menuID, submenuID, dishID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, apperrors.NewNotFoundError("dish")
	}

	if err := s.dishes.Delete(ctx, submenuID, dishID); err != nil {
		return nil, err
	}

	s.cacheClear(ctx, cache.Key("dish", dishID))
	s.invalidateAncestors(ctx, menuID, submenuID)
	return &entities.Message{Status: true, Message: "The dish has been deleted"}, nil
}

// invalidateAncestors clears the dish listing and both ancestor levels.
func (s *DishService) invalidateAncestors(ctx context.Context, menuID, submenuID string) {
	s.cacheClear(ctx, cache.Key("dish", cache.AllKey))
	s.cacheClear(ctx, cache.Key("submenu", submenuID))
	s.cacheClear(ctx, cache.Key("submenu", cache.AllKey))
	s.cacheClear(ctx, cache.Key("menu", menuID))
	s.cacheClear(ctx, cache.Key("menu", cache.AllKey))
}

func (s *DishService) cacheSet(ctx context.Context, key string, value any) {
	if err := s.cache.Set(ctx, key, value); err != nil {
		s.logger.Warn("Cache set failed", zap.String("key", key), zap.Error(err))
	}
}

func (s *DishService) cacheClear(ctx context.Context, key string) {
	if err := s.cache.Clear(ctx, key); err != nil {
		s.logger.Warn("Cache clear failed", zap.String("key", key), zap.Error(err))
	}
}
