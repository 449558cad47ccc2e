package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"menuapi/application/ports"
	"menuapi/domain/entities"
)

// DishRepository persists dishes.
type DishRepository struct {
	db DBTX
}

var _ ports.DishRepository = (*DishRepository)(nil)

// NewDishRepository creates a dish repository over the given querier.
func NewDishRepository(db DBTX) *DishRepository {
	return &DishRepository{db: db}
}

// List returns the dishes of a submenu, verifying the full parent chain.
func (r *DishRepository) List(ctx context.Context, menuID, submenuID string) ([]entities.DishInfo, error) {
	rows, err := r.db.Query(ctx,
		`SELECT d.id, d.title, d.description, d.price
		 FROM dishes d
		 JOIN submenus s ON s.id = d.submenu_id
		 WHERE s.menu_id = $1 AND d.submenu_id = $2
		 ORDER BY d.title`,
		menuID, submenuID,
	)
	if err != nil {
		return nil, fmt.Errorf("list dishes of submenu %s: %w", submenuID, err)
	}
	defer rows.Close()

	dishes := []entities.DishInfo{}
	for rows.Next() {
		d, err := scanDish(rows)
		if err != nil {
			return nil, err
		}
		dishes = append(dishes, *d)
	}
	return dishes, rows.Err()
}

// Get returns one dish under the given menu/submenu chain, or (nil, nil) if
// the id does not exist under those parents.
func (r *DishRepository) Get(ctx context.Context, menuID, submenuID, dishID string) (*entities.DishInfo, error) {
	row := r.db.QueryRow(ctx,
		`SELECT d.id, d.title, d.description, d.price
		 FROM dishes d
		 JOIN submenus s ON s.id = d.submenu_id
		 WHERE s.menu_id = $1 AND d.submenu_id = $2 AND d.id = $3`,
		menuID, submenuID, dishID,
	)

	d, err := scanDish(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get dish %s: %w", dishID, err)
	}
	return d, nil
}

// Create inserts a dish under the given submenu and returns its generated id.
func (r *DishRepository) Create(ctx context.Context, submenuID string, data entities.DishCreate) (string, error) {
	id := uuid.New().String()
	_, err := r.db.Exec(ctx,
		`INSERT INTO dishes (id, submenu_id, title, description, price)
		 VALUES ($1, $2, $3, $4, $5)`,
		id, submenuID, data.Title, data.Description, data.Price,
	)
	if err != nil {
		return "", mapConstraintErr(err)
	}
	return id, nil
}

// Update applies only the provided fields; nil fields keep their prior value.
func (r *DishRepository) Update(ctx context.Context, menuID, submenuID, dishID string, patch entities.DishPatch) error {
	_, err := r.db.Exec(ctx,
		`UPDATE dishes
		 SET title       = COALESCE($3, title),
		     description = COALESCE($4, description),
		     price       = COALESCE($5, price)
		 WHERE id = $1 AND submenu_id = $2
		   AND EXISTS (SELECT 1 FROM submenus s WHERE s.id = $2 AND s.menu_id = $6)`,
		dishID, submenuID, patch.Title, patch.Description, patch.Price, menuID,
	)
	if err != nil {
		return mapConstraintErr(err)
	}
	return nil
}

// Delete removes a dish.
func (r *DishRepository) Delete(ctx context.Context, submenuID, dishID string) error {
	_, err := r.db.Exec(ctx,
		`DELETE FROM dishes WHERE submenu_id = $1 AND id = $2`,
		submenuID, dishID,
	)
	if err != nil {
		return fmt.Errorf("delete dish %s: %w", dishID, err)
	}
	return nil
}

// scanDish reads a dish row, rendering the price with exactly two fraction
// digits. Storage keeps the full-precision numeric; the string form is the
// output contract only.
func scanDish(row pgx.Row) (*entities.DishInfo, error) {
	var d entities.DishInfo
	var price decimal.Decimal
	if err := row.Scan(&d.ID, &d.Title, &d.Description, &price); err != nil {
		return nil, err
	}
	d.Price = price.StringFixed(2)
	return &d, nil
}
