package di

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"menuapi/application/ports"
	"menuapi/application/services"
	"menuapi/infrastructure/cache"
	"menuapi/infrastructure/config"
	"menuapi/infrastructure/persistence/postgres"
	"menuapi/infrastructure/tasks"
)

// Container holds all application dependencies
type Container struct {
	Config   *config.Config
	Logger   *zap.Logger
	Pool     *pgxpool.Pool
	Cache    ports.Cache
	Menus    *services.MenuService
	Submenus *services.SubmenuService
	Dishes   *services.DishService
	Seeder   *services.SeederService
	Export   *services.ExportService
}

// Close releases the container's long-lived resources.
func (c *Container) Close() {
	if c.Pool != nil {
		c.Pool.Close()
	}
	if ttl, ok := c.Cache.(*cache.TTLCache); ok {
		ttl.Stop()
	}
}

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// ProvidePool connects to the database and applies pending migrations
func ProvidePool(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	if err := postgres.RunMigrations(pool); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

// ProvideCache creates the TTL side cache
func ProvideCache(cfg *config.Config) ports.Cache {
	return cache.NewTTLCache(cfg.CacheTTL)
}

// ProvideMenuRepository creates the menu persistence gateway
func ProvideMenuRepository(pool *pgxpool.Pool) ports.MenuRepository {
	return postgres.NewMenuRepository(pool)
}

// ProvideSubmenuRepository creates the submenu persistence gateway
func ProvideSubmenuRepository(pool *pgxpool.Pool) ports.SubmenuRepository {
	return postgres.NewSubmenuRepository(pool)
}

// ProvideDishRepository creates the dish persistence gateway
func ProvideDishRepository(pool *pgxpool.Pool) ports.DishRepository {
	return postgres.NewDishRepository(pool)
}

// ProvideSnapshotRepository creates the nested-snapshot gateway
func ProvideSnapshotRepository(pool *pgxpool.Pool) *postgres.SnapshotRepository {
	return postgres.NewSnapshotRepository(pool)
}

// ProvideMenuService creates the menu service
func ProvideMenuService(repo ports.MenuRepository, c ports.Cache, logger *zap.Logger) *services.MenuService {
	return services.NewMenuService(repo, c, logger)
}

// ProvideSubmenuService creates the submenu service
func ProvideSubmenuService(repo ports.SubmenuRepository, c ports.Cache, logger *zap.Logger) *services.SubmenuService {
	return services.NewSubmenuService(repo, c, logger)
}

// ProvideDishService creates the dish service
func ProvideDishService(repo ports.DishRepository, c ports.Cache, logger *zap.Logger) *services.DishService {
	return services.NewDishService(repo, c, logger)
}

// ProvideTaskStore creates the export task store
func ProvideTaskStore(ctx context.Context, cfg *config.Config) *tasks.Store {
	return tasks.NewStore(ctx, cfg.TaskTTL)
}

// ProvideExportPool creates and starts the export worker pool
func ProvideExportPool(ctx context.Context, store *tasks.Store, cfg *config.Config, logger *zap.Logger) *tasks.Pool {
	pool := tasks.NewPool(store, cfg.ExportDir, cfg.ExportWorkers, cfg.ExportQueueSize, logger)
	pool.Start(ctx)
	return pool
}

// ProvideExportService creates the export service
func ProvideExportService(snapshots *postgres.SnapshotRepository, pool *tasks.Pool, store *tasks.Store, logger *zap.Logger) *services.ExportService {
	return services.NewExportService(snapshots, pool, store, logger)
}

// ProvideSeederService creates the seeder service
func ProvideSeederService(snapshots *postgres.SnapshotRepository, c ports.Cache, logger *zap.Logger) *services.SeederService {
	return services.NewSeederService(snapshots, c, logger)
}
