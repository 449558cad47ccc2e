package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"menuapi/domain/entities"
	"menuapi/infrastructure/cache"
	apperrors "menuapi/pkg/errors"
)

func newTestCache(t *testing.T) *cache.TTLCache {
	t.Helper()
	c := cache.NewTTLCache(time.Minute)
	t.Cleanup(c.Stop)
	return c
}

func newMenuService(t *testing.T) (*MenuService, *memStore) {
	t.Helper()
	store := newMemStore()
	return NewMenuService(menuRepo{store}, newTestCache(t), zap.NewNop()), store
}

func strPtr(s string) *string { return &s }

func TestMenuService_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	svc, _ := newMenuService(t)

	created, err := svc.Create(ctx, entities.MenuCreate{Title: "My menu", Description: "My description"})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, "My menu", created.Title)
	assert.Equal(t, "My description", created.Description)
	assert.Equal(t, 0, created.SubmenusCount)
	assert.Equal(t, 0, created.DishesCount)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestMenuService_GetMissing(t *testing.T) {
	ctx := context.Background()
	svc, _ := newMenuService(t)

	_, err := svc.Get(ctx, "00000000-0000-0000-0000-000000000000")
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
	assert.Equal(t, "menu not found", apperrors.GetAppError(err).Message)
}

func TestMenuService_DuplicateTitle(t *testing.T) {
	ctx := context.Background()
	svc, _ := newMenuService(t)

	_, err := svc.Create(ctx, entities.MenuCreate{Title: "My menu", Description: "first"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, entities.MenuCreate{Title: "My menu", Description: "second"})
	require.Error(t, err)
	assert.True(t, apperrors.IsConflict(err))
	assert.Equal(t, "Menu with that title already exists", apperrors.GetAppError(err).Message)
}

func TestMenuService_PartialUpdate(t *testing.T) {
	ctx := context.Background()
	svc, _ := newMenuService(t)

	created, err := svc.Create(ctx, entities.MenuCreate{Title: "My menu", Description: "My description"})
	require.NoError(t, err)

	t.Run("title only keeps description", func(t *testing.T) {
		updated, err := svc.Update(ctx, created.ID, entities.MenuPatch{Title: strPtr("Renamed")})
		require.NoError(t, err)
		assert.Equal(t, "Renamed", updated.Title)
		assert.Equal(t, "My description", updated.Description)
	})

	t.Run("description only keeps title", func(t *testing.T) {
		updated, err := svc.Update(ctx, created.ID, entities.MenuPatch{Description: strPtr("New description")})
		require.NoError(t, err)
		assert.Equal(t, "Renamed", updated.Title)
		assert.Equal(t, "New description", updated.Description)
	})

	t.Run("missing menu", func(t *testing.T) {
		_, err := svc.Update(ctx, "00000000-0000-0000-0000-000000000000", entities.MenuPatch{Title: strPtr("x")})
		require.Error(t, err)
		assert.True(t, apperrors.IsNotFound(err))
	})
}

func TestMenuService_Delete(t *testing.T) {
	ctx := context.Background()
	svc, _ := newMenuService(t)

	created, err := svc.Create(ctx, entities.MenuCreate{Title: "My menu", Description: ""})
	require.NoError(t, err)

	msg, err := svc.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, msg.Status)
	assert.Equal(t, "The menu has been deleted", msg.Message)

	_, err = svc.Get(ctx, created.ID)
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))

	_, err = svc.Delete(ctx, created.ID)
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestMenuService_ListCaching(t *testing.T) {
	ctx := context.Background()
	svc, store := newMenuService(t)

	_, err := svc.Create(ctx, entities.MenuCreate{Title: "First", Description: ""})
	require.NoError(t, err)

	first, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, first, 1)

	// A repeated listing is served from the cache without a gateway read.
	reads := store.reads
	second, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, reads, store.reads)

	// A write invalidates the listing, so the next read sees the new menu.
	_, err = svc.Create(ctx, entities.MenuCreate{Title: "Second", Description: ""})
	require.NoError(t, err)

	third, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, third, 2)
	assert.Equal(t, "First", third[0].Title)
	assert.Equal(t, "Second", third[1].Title)
}

func TestMenuService_ListEmpty(t *testing.T) {
	ctx := context.Background()
	svc, _ := newMenuService(t)

	menus, err := svc.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, menus)
	assert.Empty(t, menus)
}
