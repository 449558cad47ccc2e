package entities

import "github.com/shopspring/decimal"

// Dish is a leaf of the hierarchy. Titles are unique within the owning
// submenu. Price keeps full numeric precision in storage; read paths render
// it with exactly two fraction digits.
type Dish struct {
	ID          string          `json:"id"`
	SubmenuID   string          `json:"submenu_id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
}

// DishInfo is a dish as returned on read paths. Price is the two-decimal
// string form required by the API contract.
type DishInfo struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Price       string `json:"price"`
}

// DishCreate carries the writable fields of a dish.
type DishCreate struct {
	Title       string
	Description string
	Price       decimal.Decimal
}

// DishPatch is a partial update. Nil fields keep their prior value.
type DishPatch struct {
	Title       *string
	Description *string
	Price       *decimal.Decimal
}
