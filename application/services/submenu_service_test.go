package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"menuapi/domain/entities"
	apperrors "menuapi/pkg/errors"
)

// testServices bundles the three entity services over one shared store and one
// shared cache, mirroring the wiring of the running application.
type testServices struct {
	store    *memStore
	menus    *MenuService
	submenus *SubmenuService
	dishes   *DishService
}

func newTestServices(t *testing.T) *testServices {
	t.Helper()
	store := newMemStore()
	c := newTestCache(t)
	logger := zap.NewNop()
	return &testServices{
		store:    store,
		menus:    NewMenuService(menuRepo{store}, c, logger),
		submenus: NewSubmenuService(submenuRepo{store}, c, logger),
		dishes:   NewDishService(dishRepo{store}, c, logger),
	}
}

func (ts *testServices) mustCreateMenu(t *testing.T, title string) *entities.MenuInfo {
	t.Helper()
	menu, err := ts.menus.Create(context.Background(), entities.MenuCreate{Title: title, Description: ""})
	require.NoError(t, err)
	return menu
}

func (ts *testServices) mustCreateSubmenu(t *testing.T, menuID, title string) *entities.SubmenuInfo {
	t.Helper()
	submenu, err := ts.submenus.Create(context.Background(), menuID, entities.SubmenuCreate{Title: title, Description: ""})
	require.NoError(t, err)
	return submenu
}

func TestSubmenuService_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	ts := newTestServices(t)
	menu := ts.mustCreateMenu(t, "My menu")

	created, err := ts.submenus.Create(ctx, menu.ID, entities.SubmenuCreate{Title: "My submenu", Description: "d"})
	require.NoError(t, err)
	assert.Equal(t, "My submenu", created.Title)
	assert.Equal(t, 0, created.DishesCount)

	got, err := ts.submenus.Get(ctx, menu.ID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestSubmenuService_CreateUnderMissingMenu(t *testing.T) {
	ctx := context.Background()
	ts := newTestServices(t)

	_, err := ts.submenus.Create(ctx, "00000000-0000-0000-0000-000000000000", entities.SubmenuCreate{Title: "x", Description: ""})
	require.Error(t, err)
	assert.True(t, apperrors.IsConflict(err))
	assert.Equal(t, "parent menu not found", apperrors.GetAppError(err).Message)
}

func TestSubmenuService_TitleScoping(t *testing.T) {
	ctx := context.Background()
	ts := newTestServices(t)
	first := ts.mustCreateMenu(t, "First menu")
	second := ts.mustCreateMenu(t, "Second menu")

	ts.mustCreateSubmenu(t, first.ID, "Soups")

	t.Run("duplicate within the same menu", func(t *testing.T) {
		_, err := ts.submenus.Create(ctx, first.ID, entities.SubmenuCreate{Title: "Soups", Description: ""})
		require.Error(t, err)
		assert.True(t, apperrors.IsConflict(err))
		assert.Equal(t, "Submenu with that title already exists", apperrors.GetAppError(err).Message)
	})

	t.Run("same title under another menu", func(t *testing.T) {
		_, err := ts.submenus.Create(ctx, second.ID, entities.SubmenuCreate{Title: "Soups", Description: ""})
		require.NoError(t, err)
	})
}

func TestSubmenuService_ParentCountsRefresh(t *testing.T) {
	ctx := context.Background()
	ts := newTestServices(t)
	menu := ts.mustCreateMenu(t, "My menu")

	// Warm the menu cache, then change its children. The service must not
	// serve the stale zero counts afterwards.
	cached, err := ts.menus.Get(ctx, menu.ID)
	require.NoError(t, err)
	require.Equal(t, 0, cached.SubmenusCount)

	submenu := ts.mustCreateSubmenu(t, menu.ID, "My submenu")

	fresh, err := ts.menus.Get(ctx, menu.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, fresh.SubmenusCount)

	_, err = ts.submenus.Delete(ctx, menu.ID, submenu.ID)
	require.NoError(t, err)

	fresh, err = ts.menus.Get(ctx, menu.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, fresh.SubmenusCount)
}

func TestSubmenuService_WrongParentReadsAsAbsent(t *testing.T) {
	ctx := context.Background()
	ts := newTestServices(t)
	menu := ts.mustCreateMenu(t, "First menu")
	other := ts.mustCreateMenu(t, "Second menu")
	submenu := ts.mustCreateSubmenu(t, menu.ID, "My submenu")

	_, err := ts.submenus.Get(ctx, other.ID, submenu.ID)
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
	assert.Equal(t, "submenu not found", apperrors.GetAppError(err).Message)
}

func TestSubmenuService_Delete(t *testing.T) {
	ctx := context.Background()
	ts := newTestServices(t)
	menu := ts.mustCreateMenu(t, "My menu")
	submenu := ts.mustCreateSubmenu(t, menu.ID, "My submenu")

	msg, err := ts.submenus.Delete(ctx, menu.ID, submenu.ID)
	require.NoError(t, err)
	assert.Equal(t, "The submenu has been deleted", msg.Message)

	_, err = ts.submenus.Get(ctx, menu.ID, submenu.ID)
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestMenuService_CascadeDeleteClearsDescendants(t *testing.T) {
	ctx := context.Background()
	ts := newTestServices(t)
	menu := ts.mustCreateMenu(t, "My menu")
	submenu := ts.mustCreateSubmenu(t, menu.ID, "My submenu")

	// Cache the submenu so the delete has a stale entry to clear.
	_, err := ts.submenus.Get(ctx, menu.ID, submenu.ID)
	require.NoError(t, err)

	_, err = ts.menus.Delete(ctx, menu.ID)
	require.NoError(t, err)

	_, err = ts.submenus.Get(ctx, menu.ID, submenu.ID)
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}
