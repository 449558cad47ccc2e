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

// SubmenuRepository persists submenus.
type SubmenuRepository struct {
	db DBTX
}

var _ ports.SubmenuRepository = (*SubmenuRepository)(nil)

// NewSubmenuRepository creates a submenu repository over the given querier.
func NewSubmenuRepository(db DBTX) *SubmenuRepository {
	return &SubmenuRepository{db: db}
}

const submenuInfoQuery = `
SELECT s.id, s.title, s.description,
       COUNT(d.id) AS dishes_count
FROM submenus s
LEFT JOIN dishes d ON d.submenu_id = s.id
`

// List returns the submenus of a menu with freshly computed dish counts.
func (r *SubmenuRepository) List(ctx context.Context, menuID string) ([]entities.SubmenuInfo, error) {
	rows, err := r.db.Query(ctx,
		submenuInfoQuery+`WHERE s.menu_id = $1 GROUP BY s.id ORDER BY s.title`,
		menuID,
	)
	if err != nil {
		return nil, fmt.Errorf("list submenus of menu %s: %w", menuID, err)
	}
	defer rows.Close()

	submenus := []entities.SubmenuInfo{}
	for rows.Next() {
		var s entities.SubmenuInfo
		if err := rows.Scan(&s.ID, &s.Title, &s.Description, &s.DishesCount); err != nil {
			return nil, fmt.Errorf("scan submenu row: %w", err)
		}
		submenus = append(submenus, s)
	}
	return submenus, rows.Err()
}

// Get returns one submenu under the given menu, or (nil, nil) if the id does
// not exist under that parent.
func (r *SubmenuRepository) Get(ctx context.Context, menuID, submenuID string) (*entities.SubmenuInfo, error) {
	row := r.db.QueryRow(ctx,
		submenuInfoQuery+`WHERE s.menu_id = $1 AND s.id = $2 GROUP BY s.id`,
		menuID, submenuID,
	)

	var s entities.SubmenuInfo
	err := row.Scan(&s.ID, &s.Title, &s.Description, &s.DishesCount)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get submenu %s: %w", submenuID, err)
	}
	return &s, nil
}

// Create inserts a submenu under the given menu and returns its generated id.
func (r *SubmenuRepository) Create(ctx context.Context, menuID string, data entities.SubmenuCreate) (string, error) {
	id := uuid.New().String()
	_, err := r.db.Exec(ctx,
		`INSERT INTO submenus (id, menu_id, title, description) VALUES ($1, $2, $3, $4)`,
		id, menuID, data.Title, data.Description,
	)
	if err != nil {
		return "", mapConstraintErr(err)
	}
	return id, nil
}

// Update applies only the provided fields; nil fields keep their prior value.
func (r *SubmenuRepository) Update(ctx context.Context, menuID, submenuID string, patch entities.SubmenuPatch) error {
	_, err := r.db.Exec(ctx,
		`UPDATE submenus
		 SET title = COALESCE($3, title), description = COALESCE($4, description)
		 WHERE menu_id = $1 AND id = $2`,
		menuID, submenuID, patch.Title, patch.Description,
	)
	if err != nil {
		return mapConstraintErr(err)
	}
	return nil
}

// Delete removes a submenu; the schema cascades to its dishes.
func (r *SubmenuRepository) Delete(ctx context.Context, menuID, submenuID string) error {
	_, err := r.db.Exec(ctx,
		`DELETE FROM submenus WHERE menu_id = $1 AND id = $2`,
		menuID, submenuID,
	)
	if err != nil {
		return fmt.Errorf("delete submenu %s: %w", submenuID, err)
	}
	return nil
}
