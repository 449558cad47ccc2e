package entities

// Submenu belongs to exactly one menu. Titles are unique within that menu.
type Submenu struct {
	ID          string `json:"id"`
	MenuID      string `json:"menu_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// SubmenuInfo is a submenu as returned on read paths.
type SubmenuInfo struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	DishesCount int    `json:"dishes_count"`
}

// SubmenuCreate carries the writable fields of a submenu.
type SubmenuCreate struct {
	Title       string
	Description string
}

// SubmenuPatch is a partial update. Nil fields keep their prior value.
type SubmenuPatch struct {
	Title       *string
	Description *string
}
