package rest

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"menuapi/application/services"
	"menuapi/interfaces/http/rest/handlers"
	"menuapi/interfaces/http/rest/middleware"
	apperrors "menuapi/pkg/errors"
)

// Router creates and configures the HTTP router
type Router struct {
	menus    *services.MenuService
	submenus *services.SubmenuService
	dishes   *services.DishService
	seeder   *services.SeederService
	export   *services.ExportService
	pool     *pgxpool.Pool
	logger   *zap.Logger
}

// NewRouter creates a new router instance
func NewRouter(
	menus *services.MenuService,
	submenus *services.SubmenuService,
	dishes *services.DishService,
	seeder *services.SeederService,
	export *services.ExportService,
	pool *pgxpool.Pool,
	logger *zap.Logger,
) *Router {
	return &Router{
		menus:    menus,
		submenus: submenus,
		dishes:   dishes,
		seeder:   seeder,
		export:   export,
		pool:     pool,
		logger:   logger,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(rt.logger))

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))

	router.Get("/health", rt.healthCheck)
	router.Get("/ready", rt.readinessCheck)

	errHandler := apperrors.NewErrorHandler(rt.logger)

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/menus", func(r chi.Router) {
			menuHandler := handlers.NewMenuHandler(rt.menus, errHandler, rt.logger)
			r.Get("/", menuHandler.ListMenus)
			r.Post("/", menuHandler.CreateMenu)
			r.Get("/{menuID}", menuHandler.GetMenu)
			r.Patch("/{menuID}", menuHandler.UpdateMenu)
			r.Delete("/{menuID}", menuHandler.DeleteMenu)

			r.Route("/{menuID}/submenus", func(r chi.Router) {
				submenuHandler := handlers.NewSubmenuHandler(rt.submenus, errHandler, rt.logger)
				r.Get("/", submenuHandler.ListSubmenus)
				r.Post("/", submenuHandler.CreateSubmenu)
				r.Get("/{submenuID}", submenuHandler.GetSubmenu)
				r.Patch("/{submenuID}", submenuHandler.UpdateSubmenu)
				r.Delete("/{submenuID}", submenuHandler.DeleteSubmenu)

				r.Route("/{submenuID}/dishes", func(r chi.Router) {
					dishHandler := handlers.NewDishHandler(rt.dishes, errHandler, rt.logger)
					r.Get("/", dishHandler.ListDishes)
					r.Post("/", dishHandler.CreateDish)
					r.Get("/{dishID}", dishHandler.GetDish)
					r.Patch("/{dishID}", dishHandler.UpdateDish)
					r.Delete("/{dishID}", dishHandler.DeleteDish)
				})
			})
		})

		helperHandler := handlers.NewHelperHandler(rt.seeder, rt.export, errHandler, rt.logger)
		r.Post("/generated_data", helperHandler.GenerateData)
		r.Post("/content_as_file", helperHandler.SubmitExport)
		r.Get("/content_as_file/{taskID}", helperHandler.PollExport)
	})

	return router
}

func (rt *Router) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeStatus(w, http.StatusOK, "healthy")
}

func (rt *Router) readinessCheck(w http.ResponseWriter, r *http.Request) {
	if err := rt.pool.Ping(r.Context()); err != nil {
		rt.logger.Warn("Readiness check failed", zap.Error(err))
		writeStatus(w, http.StatusServiceUnavailable, "database unavailable")
		return
	}
	writeStatus(w, http.StatusOK, "ready")
}

func writeStatus(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"status": message})
}
