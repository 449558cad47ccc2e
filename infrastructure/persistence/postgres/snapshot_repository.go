package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"menuapi/application/ports"
	"menuapi/domain/entities"
)

// SnapshotRepository reads the whole hierarchy in one query and seeds fixture
// trees inside a single transaction. Both paths bypass the per-entity cache.
type SnapshotRepository struct {
	pool *pgxpool.Pool
}

var (
	_ ports.SnapshotRepository = (*SnapshotRepository)(nil)
	_ ports.SeedRepository     = (*SnapshotRepository)(nil)
)

// NewSnapshotRepository creates a snapshot repository.
func NewSnapshotRepository(pool *pgxpool.Pool) *SnapshotRepository {
	return &SnapshotRepository{pool: pool}
}

const snapshotQuery = `
SELECT COALESCE(json_agg(json_build_object(
	'id', m.id,
	'title', m.title,
	'description', m.description,
	'submenus', (
		SELECT COALESCE(json_agg(json_build_object(
			'id', s.id,
			'title', s.title,
			'description', s.description,
			'dishes', (
				SELECT COALESCE(json_agg(json_build_object(
					'id', d.id,
					'title', d.title,
					'description', d.description,
					'price', d.price
				) ORDER BY d.title), '[]')
				FROM dishes d WHERE d.submenu_id = s.id
			)
		) ORDER BY s.title), '[]')
		FROM submenus s WHERE s.menu_id = m.id
	)
) ORDER BY m.title), '[]')
FROM menus m
`

// Dump aggregates the full menus→submenus→dishes hierarchy into a nested
// document with a single query.
func (r *SnapshotRepository) Dump(ctx context.Context) ([]entities.MenuNode, error) {
	var raw []byte
	if err := r.pool.QueryRow(ctx, snapshotQuery).Scan(&raw); err != nil {
		return nil, fmt.Errorf("dump hierarchy: %w", err)
	}

	var menus []entities.MenuNode
	if err := json.Unmarshal(raw, &menus); err != nil {
		return nil, fmt.Errorf("decode hierarchy snapshot: %w", err)
	}
	return menus, nil
}

// Seed inserts a whole fixture tree. The insert runs in one transaction:
// any failure rolls everything back, leaving no partially-seeded state.
func (r *SnapshotRepository) Seed(ctx context.Context, menus []entities.MenuNode) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		menuRepo := NewMenuRepository(tx)
		submenuRepo := NewSubmenuRepository(tx)
		dishRepo := NewDishRepository(tx)

		for _, menu := range menus {
			menuID, err := menuRepo.Create(ctx, entities.MenuCreate{
				Title:       menu.Title,
				Description: menu.Description,
			})
			if err != nil {
				return fmt.Errorf("seed menu %q: %w", menu.Title, err)
			}

			for _, submenu := range menu.Submenus {
				submenuID, err := submenuRepo.Create(ctx, menuID, entities.SubmenuCreate{
					Title:       submenu.Title,
					Description: submenu.Description,
				})
				if err != nil {
					return fmt.Errorf("seed submenu %q: %w", submenu.Title, err)
				}

				for _, dish := range submenu.Dishes {
					_, err := dishRepo.Create(ctx, submenuID, entities.DishCreate{
						Title:       dish.Title,
						Description: dish.Description,
						Price:       dish.Price,
					})
					if err != nil {
						return fmt.Errorf("seed dish %q: %w", dish.Title, err)
					}
				}
			}
		}
		return nil
	})
}
