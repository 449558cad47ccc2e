package ports

import (
	"context"
	"errors"

	"menuapi/domain/entities"
)

// Constraint violations surfaced by the persistence gateway. The entity
// services translate exactly these two into domain errors; any other
// persistence failure propagates unchanged.
var (
	ErrUniqueViolation     = errors.New("unique constraint violation")
	ErrForeignKeyViolation = errors.New("foreign key violation")
)

// MenuRepository is the persistence gateway for menus. Get returns
// (nil, nil) when the menu does not exist; absence is a normal outcome,
// not an error.
type MenuRepository interface {
	List(ctx context.Context) ([]entities.MenuInfo, error)
	Get(ctx context.Context, menuID string) (*entities.MenuInfo, error)
	Create(ctx context.Context, data entities.MenuCreate) (string, error)
	Update(ctx context.Context, menuID string, patch entities.MenuPatch) error
	Delete(ctx context.Context, menuID string) error
}

// SubmenuRepository is the persistence gateway for submenus. All lookups are
// scoped by the owning menu so an id under the wrong parent reads as absent.
type SubmenuRepository interface {
	List(ctx context.Context, menuID string) ([]entities.SubmenuInfo, error)
	Get(ctx context.Context, menuID, submenuID string) (*entities.SubmenuInfo, error)
	Create(ctx context.Context, menuID string, data entities.SubmenuCreate) (string, error)
	Update(ctx context.Context, menuID, submenuID string, patch entities.SubmenuPatch) error
	Delete(ctx context.Context, menuID, submenuID string) error
}

// DishRepository is the persistence gateway for dishes, scoped by the full
// menu/submenu parent chain.
type DishRepository interface {
	List(ctx context.Context, menuID, submenuID string) ([]entities.DishInfo, error)
	Get(ctx context.Context, menuID, submenuID, dishID string) (*entities.DishInfo, error)
	Create(ctx context.Context, submenuID string, data entities.DishCreate) (string, error)
	Update(ctx context.Context, menuID, submenuID, dishID string, patch entities.DishPatch) error
	Delete(ctx context.Context, submenuID, dishID string) error
}

// SnapshotRepository produces the full nested hierarchy in one query. Used by
// the export job; bypasses per-entity caching.
type SnapshotRepository interface {
	Dump(ctx context.Context) ([]entities.MenuNode, error)
}

// SeedRepository inserts a whole fixture tree inside a single transaction.
// Any failure rolls the entire insert back: no partially-seeded state.
type SeedRepository interface {
	Seed(ctx context.Context, menus []entities.MenuNode) error
}
