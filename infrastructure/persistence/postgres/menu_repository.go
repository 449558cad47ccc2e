package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"menuapi/application/ports"
	"menuapi/domain/entities"
)

// MenuRepository persists menus.
type MenuRepository struct {
	db DBTX
}

var _ ports.MenuRepository = (*MenuRepository)(nil)

// NewMenuRepository creates a menu repository over the given querier.
func NewMenuRepository(db DBTX) *MenuRepository {
	return &MenuRepository{db: db}
}

const menuInfoQuery = `
SELECT m.id, m.title, m.description,
       COUNT(DISTINCT s.id) AS submenus_count,
       COUNT(d.id)          AS dishes_count
FROM menus m
LEFT JOIN submenus s ON s.menu_id = m.id
LEFT JOIN dishes d   ON d.submenu_id = s.id
`

// List returns every menu with freshly computed child counts. An empty table
// yields an empty slice, never an error.
func (r *MenuRepository) List(ctx context.Context) ([]entities.MenuInfo, error) {
	rows, err := r.db.Query(ctx, menuInfoQuery+`GROUP BY m.id ORDER BY m.title`)
	if err != nil {
		return nil, fmt.Errorf("list menus: %w", err)
	}
	defer rows.Close()

	menus := []entities.MenuInfo{}
	for rows.Next() {
		var m entities.MenuInfo
		if err := rows.Scan(&m.ID, &m.Title, &m.Description, &m.SubmenusCount, &m.DishesCount); err != nil {
			return nil, fmt.Errorf("scan menu row: %w", err)
		}
		menus = append(menus, m)
	}
	return menus, rows.Err()
}

// Get returns one menu with counts, or (nil, nil) if it does not exist.
func (r *MenuRepository) Get(ctx context.Context, menuID string) (*entities.MenuInfo, error) {
	row := r.db.QueryRow(ctx, menuInfoQuery+`WHERE m.id = $1 GROUP BY m.id`, menuID)

	var m entities.MenuInfo
	err := row.Scan(&m.ID, &m.Title, &m.Description, &m.SubmenusCount, &m.DishesCount)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get menu %s: %w", menuID, err)
	}
	return &m, nil
}

// Create inserts a menu and returns its generated id.
func (r *MenuRepository) Create(ctx context.Context, data entities.MenuCreate) (string, error) {
	id := uuid.New().String()
	_, err := r.db.Exec(ctx,
		`INSERT INTO menus (id, title, description) VALUES ($1, $2, $3)`,
		id, data.Title, data.Description,
	)
	if err != nil {
		return "", mapConstraintErr(err)
	}
	return id, nil
}

// Update applies only the provided fields; nil fields keep their prior value.
// Existence must already have been verified by the caller.
func (r *MenuRepository) Update(ctx context.Context, menuID string, patch entities.MenuPatch) error {
	_, err := r.db.Exec(ctx,
		`UPDATE menus
		 SET title = COALESCE($2, title), description = COALESCE($3, description)
		 WHERE id = $1`,
		menuID, patch.Title, patch.Description,
	)
	if err != nil {
		return mapConstraintErr(err)
	}
	return nil
}

// Delete removes a menu. The schema cascades the delete to its submenus and
// their dishes.
func (r *MenuRepository) Delete(ctx context.Context, menuID string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM menus WHERE id = $1`, menuID); err != nil {
		return fmt.Errorf("delete menu %s: %w", menuID, err)
	}
	return nil
}
