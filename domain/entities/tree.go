package entities

import "github.com/shopspring/decimal"

// The node types below describe the full menus→submenus→dishes hierarchy as
// one strongly typed tree. The seeder unmarshals its fixture into it and the
// export job receives the database snapshot in the same shape, so both tree
// walks dispatch on the static type of a node instead of sniffing for child
// keys in loosely typed maps.

// MenuNode is a menu with its nested submenus.
type MenuNode struct {
	ID          string        `json:"id,omitempty"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Submenus    []SubmenuNode `json:"submenus"`
}

// SubmenuNode is a submenu with its nested dishes.
type SubmenuNode struct {
	ID          string     `json:"id,omitempty"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Dishes      []DishNode `json:"dishes"`
}

// DishNode is a leaf dish.
type DishNode struct {
	ID          string          `json:"id,omitempty"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
}
