package models

// MenuItemSize is a size variant of a menu item. Its price replaces the
// item's base price when the size is selected.
type MenuItemSize struct {
	ID    int     `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// MenuItemOption is an add-on for a menu item. Its price is added on top
// of the selected size (or base) price.
type MenuItemOption struct {
	ID      int     `json:"id"`
	Name    string  `json:"name"`
	Section string  `json:"section"`
	Price   float64 `json:"price"`
}

// MenuItem is one orderable item as served by the catalog. The snapshot is
// read-only: downstream components copy what they need instead of holding
// references back into a refreshable catalog.
type MenuItem struct {
	ID          int              `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Price       float64          `json:"price"`
	PhotoURL    string           `json:"photoUrl"`
	IsAvailable bool             `json:"isAvailable"`
	Sizes       []MenuItemSize   `json:"sizes,omitempty"`
	Options     []MenuItemOption `json:"options,omitempty"`
}

// MenuCategory groups menu items for display
type MenuCategory struct {
	ID        int        `json:"id"`
	Name      string     `json:"name"`
	MenuItems []MenuItem `json:"menuItems"`
}

// Truck is the per-fetch catalog snapshot for one food truck
type Truck struct {
	ID             int            `json:"id"`
	Name           string         `json:"name"`
	Description    string         `json:"description"`
	Schedule       string         `json:"schedule,omitempty"`
	VendorID       int            `json:"vendorId"`
	MenuCategories []MenuCategory `json:"menuCategories,omitempty"`
}

// FindMenuItem looks an item up by id across all categories
func (t *Truck) FindMenuItem(id int) (MenuItem, bool) {
	for _, category := range t.MenuCategories {
		for _, item := range category.MenuItems {
			if item.ID == id {
				return item, true
			}
		}
	}
	return MenuItem{}, false
}
