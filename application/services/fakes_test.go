package services

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"menuapi/application/ports"
	"menuapi/domain/entities"
)

// memStore is an in-memory stand-in for the persistence gateway. It enforces
// the same scoped uniqueness, foreign keys, cascades and read-time counts as
// the real schema so the services can be exercised end to end.
type memStore struct {
	mu       sync.Mutex
	menus    map[string]*entities.Menu
	submenus map[string]*entities.Submenu
	dishes   map[string]*entities.Dish

	// reads counts gateway reads, letting tests assert cache hits
	reads int
}

func newMemStore() *memStore {
	return &memStore{
		menus:    make(map[string]*entities.Menu),
		submenus: make(map[string]*entities.Submenu),
		dishes:   make(map[string]*entities.Dish),
	}
}

func (s *memStore) menuInfo(m *entities.Menu) entities.MenuInfo {
	submenusCount, dishesCount := 0, 0
	for _, sub := range s.submenus {
		if sub.MenuID != m.ID {
			continue
		}
		submenusCount++
		for _, d := range s.dishes {
			if d.SubmenuID == sub.ID {
				dishesCount++
			}
		}
	}
	return entities.MenuInfo{
		ID:            m.ID,
		Title:         m.Title,
		Description:   m.Description,
		SubmenusCount: submenusCount,
		DishesCount:   dishesCount,
	}
}

func (s *memStore) submenuInfo(sub *entities.Submenu) entities.SubmenuInfo {
	dishesCount := 0
	for _, d := range s.dishes {
		if d.SubmenuID == sub.ID {
			dishesCount++
		}
	}
	return entities.SubmenuInfo{
		ID:          sub.ID,
		Title:       sub.Title,
		Description: sub.Description,
		DishesCount: dishesCount,
	}
}

func dishInfo(d *entities.Dish) entities.DishInfo {
	return entities.DishInfo{
		ID:          d.ID,
		Title:       d.Title,
		Description: d.Description,
		Price:       d.Price.StringFixed(2),
	}
}

type menuRepo struct{ s *memStore }

var _ ports.MenuRepository = menuRepo{}

func (r menuRepo) List(ctx context.Context) ([]entities.MenuInfo, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.reads++

	menus := []entities.MenuInfo{}
	for _, m := range r.s.menus {
		menus = append(menus, r.s.menuInfo(m))
	}
	sort.Slice(menus, func(i, j int) bool { return menus[i].Title < menus[j].Title })
	return menus, nil
}

func (r menuRepo) Get(ctx context.Context, menuID string) (*entities.MenuInfo, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.reads++

	m, ok := r.s.menus[menuID]
	if !ok {
		return nil, nil
	}
	info := r.s.menuInfo(m)
	return &info, nil
}

func (r menuRepo) Create(ctx context.Context, data entities.MenuCreate) (string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, m := range r.s.menus {
		if m.Title == data.Title {
			return "", fmt.Errorf("%w: menus_title_key", ports.ErrUniqueViolation)
		}
	}
	id := uuid.New().String()
	r.s.menus[id] = &entities.Menu{ID: id, Title: data.Title, Description: data.Description}
	return id, nil
}

func (r menuRepo) Update(ctx context.Context, menuID string, patch entities.MenuPatch) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	m, ok := r.s.menus[menuID]
	if !ok {
		return nil
	}
	if patch.Title != nil {
		for id, other := range r.s.menus {
			if id != menuID && other.Title == *patch.Title {
				return fmt.Errorf("%w: menus_title_key", ports.ErrUniqueViolation)
			}
		}
		m.Title = *patch.Title
	}
	if patch.Description != nil {
		m.Description = *patch.Description
	}
	return nil
}

func (r menuRepo) Delete(ctx context.Context, menuID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	delete(r.s.menus, menuID)
	for subID, sub := range r.s.submenus {
		if sub.MenuID != menuID {
			continue
		}
		delete(r.s.submenus, subID)
		for dishID, d := range r.s.dishes {
			if d.SubmenuID == subID {
				delete(r.s.dishes, dishID)
			}
		}
	}
	return nil
}

type submenuRepo struct{ s *memStore }

var _ ports.SubmenuRepository = submenuRepo{}

func (r submenuRepo) List(ctx context.Context, menuID string) ([]entities.SubmenuInfo, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.reads++

	submenus := []entities.SubmenuInfo{}
	for _, sub := range r.s.submenus {
		if sub.MenuID == menuID {
			submenus = append(submenus, r.s.submenuInfo(sub))
		}
	}
	sort.Slice(submenus, func(i, j int) bool { return submenus[i].Title < submenus[j].Title })
	return submenus, nil
}

func (r submenuRepo) Get(ctx context.Context, menuID, submenuID string) (*entities.SubmenuInfo, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.reads++

	sub, ok := r.s.submenus[submenuID]
	if !ok || sub.MenuID != menuID {
		return nil, nil
	}
	info := r.s.submenuInfo(sub)
	return &info, nil
}

func (r submenuRepo) Create(ctx context.Context, menuID string, data entities.SubmenuCreate) (string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.menus[menuID]; !ok {
		return "", fmt.Errorf("%w: submenus_menu_id_fkey", ports.ErrForeignKeyViolation)
	}
	for _, sub := range r.s.submenus {
		if sub.MenuID == menuID && sub.Title == data.Title {
			return "", fmt.Errorf("%w: submenus_menu_id_title_key", ports.ErrUniqueViolation)
		}
	}
	id := uuid.New().String()
	r.s.submenus[id] = &entities.Submenu{ID: id, MenuID: menuID, Title: data.Title, Description: data.Description}
	return id, nil
}

func (r submenuRepo) Update(ctx context.Context, menuID, submenuID string, patch entities.SubmenuPatch) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	sub, ok := r.s.submenus[submenuID]
	if !ok || sub.MenuID != menuID {
		return nil
	}
	if patch.Title != nil {
		sub.Title = *patch.Title
	}
	if patch.Description != nil {
		sub.Description = *patch.Description
	}
	return nil
}

func (r submenuRepo) Delete(ctx context.Context, menuID, submenuID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	sub, ok := r.s.submenus[submenuID]
	if !ok || sub.MenuID != menuID {
		return nil
	}
	delete(r.s.submenus, submenuID)
	for dishID, d := range r.s.dishes {
		if d.SubmenuID == submenuID {
			delete(r.s.dishes, dishID)
		}
	}
	return nil
}

type dishRepo struct{ s *memStore }

var _ ports.DishRepository = dishRepo{}

func (r dishRepo) List(ctx context.Context, menuID, submenuID string) ([]entities.DishInfo, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.reads++

	dishes := []entities.DishInfo{}
	for _, d := range r.s.dishes {
		if d.SubmenuID != submenuID {
			continue
		}
		if sub, ok := r.s.submenus[submenuID]; !ok || sub.MenuID != menuID {
			continue
		}
		dishes = append(dishes, dishInfo(d))
	}
	sort.Slice(dishes, func(i, j int) bool { return dishes[i].Title < dishes[j].Title })
	return dishes, nil
}

func (r dishRepo) Get(ctx context.Context, menuID, submenuID, dishID string) (*entities.DishInfo, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.reads++

	d, ok := r.s.dishes[dishID]
	if !ok || d.SubmenuID != submenuID {
		return nil, nil
	}
	sub, ok := r.s.submenus[submenuID]
	if !ok || sub.MenuID != menuID {
		return nil, nil
	}
	info := dishInfo(d)
	return &info, nil
}

func (r dishRepo) Create(ctx context.Context, submenuID string, data entities.DishCreate) (string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.submenus[submenuID]; !ok {
		return "", fmt.Errorf("%w: dishes_submenu_id_fkey", ports.ErrForeignKeyViolation)
	}
	for _, d := range r.s.dishes {
		if d.SubmenuID == submenuID && d.Title == data.Title {
			return "", fmt.Errorf("%w: dishes_submenu_id_title_key", ports.ErrUniqueViolation)
		}
	}
	id := uuid.New().String()
	r.s.dishes[id] = &entities.Dish{
		ID:          id,
		SubmenuID:   submenuID,
		Title:       data.Title,
		Description: data.Description,
		Price:       data.Price,
	}
	return id, nil
}

func (r dishRepo) Update(ctx context.Context, menuID, submenuID, dishID string, patch entities.DishPatch) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	d, ok := r.s.dishes[dishID]
	if !ok || d.SubmenuID != submenuID {
		return nil
	}
	if patch.Title != nil {
		d.Title = *patch.Title
	}
	if patch.Description != nil {
		d.Description = *patch.Description
	}
	if patch.Price != nil {
		d.Price = *patch.Price
	}
	return nil
}

func (r dishRepo) Delete(ctx context.Context, submenuID, dishID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if d, ok := r.s.dishes[dishID]; ok && d.SubmenuID == submenuID {
		delete(r.s.dishes, dishID)
	}
	return nil
}
