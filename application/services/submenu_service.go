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

// SubmenuService implements the submenu operations.
type SubmenuService struct {
	submenus ports.SubmenuRepository
	cache    ports.Cache
	logger   *zap.Logger
}

// NewSubmenuService creates a submenu service.
func NewSubmenuService(submenus ports.SubmenuRepository, c ports.Cache, logger *zap.Logger) *SubmenuService {
	return &SubmenuService{submenus: submenus, cache: c, logger: logger}
}

// List returns the submenus of a menu, serving the cached listing when
// present.
func (s *SubmenuService) List(ctx context.Context, menuID string) ([]entities.SubmenuInfo, error) {
	key := cache.Key("submenu", cache.AllKey)

	var cached []entities.SubmenuInfo
	if err := s.cache.Get(ctx, key, &cached); err == nil {
		return cached, nil
	}

	submenus, err := s.submenus.List(ctx, menuID)
	if err != nil {
		return nil, err
	}
	s.cacheSet(ctx, key, submenus)
	return submenus, nil
}

// Get returns one submenu under the given menu.
func (s *SubmenuService) Get(ctx context.Context, menuID, submenuID string) (*entities.SubmenuInfo, error) {
	key := cache.Key("submenu", submenuID)

	var cached entities.SubmenuInfo
	if err := s.cache.Get(ctx, key, &cached); err == nil {
		return &cached, nil
	}

	submenu, err := s.submenus.Get(ctx, menuID, submenuID)
	if err != nil {
		return nil, err
	}
	if submenu == nil {
		return nil, apperrors.NewNotFoundError("submenu")
	}
	s.cacheSet(ctx, key, submenu)
	return submenu, nil
}

// Create inserts a submenu, caches the re-read entity and invalidates the
// submenu listing plus the parent menu's single and listing keys, whose
// submenus_count changed.
func (s *SubmenuService) Create(ctx context.Context, menuID string, data entities.SubmenuCreate) (*entities.SubmenuInfo, error) {
	submenuID, err := s.submenus.Create(ctx, menuID, data)
	if err != nil {
		switch {
		case errors.Is(err, ports.ErrUniqueViolation):
			return nil, apperrors.NewConflictError("Submenu with that title already exists").WithCause(err)
		case errors.Is(err, ports.ErrForeignKeyViolation):
			return nil, apperrors.NewConflictError("parent menu not found").WithCause(err)
		}
		return nil, err
	}

	created, err := s.submenus.Get(ctx, menuID, submenuID)
	if err != nil {
		return nil, err
	}

	s.cacheSet(ctx, cache.Key("submenu", submenuID), created)
	s.invalidateAncestors(ctx, menuID)
	return created, nil
}

// Update applies a partial update. Sibling entries stay cached (their data
// did not change); the listing and ancestor keys are invalidated.
func (s *SubmenuService) Update(ctx context.Context, menuID, submenuID string, patch entities.SubmenuPatch) (*entities.SubmenuInfo, error) {
	existing, err := s.submenus.Get(ctx, menuID, submenuID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, apperrors.NewNotFoundError("submenu")
	}

	if err := s.submenus.Update(ctx, menuID, submenuID, patch); err != nil {
		if errors.Is(err, ports.ErrUniqueViolation) {
			return nil, apperrors.NewConflictError("Submenu with that title already exists").WithCause(err)
		}
		return nil, err
	}

	updated, err := s.submenus.Get(ctx, menuID, submenuID)
	if err != nil {
		return nil, err
	}

	s.cacheSet(ctx, cache.Key("submenu", submenuID), updated)
	s.invalidateAncestors(ctx, menuID)
	return updated, nil
}

// Delete removes a submenu and its dishes via cascade. The dish key space is
// cleared wholesale since any cached dish may have belonged to this submenu.
func (s *SubmenuService) Delete(ctx context.Context, menuID, submenuID string) (*entities.Message, error) {
	existing, err := s.submenus.Get(ctx, menuID, submenuID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, apperrors.NewNotFoundError("submenu")
	}

	if err := s.submenus.Delete(ctx, menuID, submenuID); err != nil {
		return nil, err
	}

	s.cacheClear(ctx, cache.Key("submenu", submenuID))
	s.cacheClearPrefix(ctx, "dish:")
	s.invalidateAncestors(ctx, menuID)
	return &entities.Message{Status: true, Message: "The submenu has been deleted"}, nil
}

// invalidateAncestors clears the submenu listing and the parent menu keys.
func (s *SubmenuService) invalidateAncestors(ctx context.Context, menuID string) {
	s.cacheClear(ctx, cache.Key("submenu", cache.AllKey))
	s.cacheClear(ctx, cache.Key("menu", menuID))
	s.cacheClear(ctx, cache.Key("menu", cache.AllKey))
}

func (s *SubmenuService) cacheSet(ctx context.Context, key string, value any) {
	if err := s.cache.Set(ctx, key, value); err != nil {
		s.logger.Warn("Cache set failed", zap.String("key", key), zap.Error(err))
	}
}

func (s *SubmenuService) cacheClear(ctx context.Context, key string) {
	if err := s.cache.Clear(ctx, key); err != nil {
		s.logger.Warn("Cache clear failed", zap.String("key", key), zap.Error(err))
	}
}

func (s *SubmenuService) cacheClearPrefix(ctx context.Context, prefix string) {
	if err := s.cache.ClearPrefix(ctx, prefix); err != nil {
		s.logger.Warn("Cache prefix clear failed", zap.String("prefix", prefix), zap.Error(err))
	}
}
