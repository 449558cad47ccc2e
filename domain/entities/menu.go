package entities

// Menu is the top level of the hierarchy. Titles are unique across all menus.
type Menu struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// MenuInfo is a menu as returned on read paths. The counts are computed from
// current child rows at query time and are never stored.
type MenuInfo struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	SubmenusCount int    `json:"submenus_count"`
	DishesCount   int    `json:"dishes_count"`
}

// MenuCreate carries the writable fields of a menu.
type MenuCreate struct {
	Title       string
	Description string
}

// MenuPatch is a partial update. Nil fields keep their prior value.
type MenuPatch struct {
	Title       *string
	Description *string
}
