package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"menuapi/application/services"
	"menuapi/domain/entities"
	apperrors "menuapi/pkg/errors"
	"menuapi/pkg/utils"
)

// DishHandler handles dish HTTP requests
type DishHandler struct {
	dishes *services.DishService
	errors *apperrors.ErrorHandler
	logger *zap.Logger
}

// NewDishHandler creates a new dish handler
func NewDishHandler(dishes *services.DishService, errHandler *apperrors.ErrorHandler, logger *zap.Logger) *DishHandler {
	return &DishHandler{dishes: dishes, errors: errHandler, logger: logger}
}

// CreateDishRequest is the body for creating a dish. Price accepts a JSON
// number or numeric string and keeps full precision.
type CreateDishRequest struct {
	Title       string          `json:"title" validate:"required"`
	Description string          `json:"description" validate:"required"`
	Price       decimal.Decimal `json:"price" validate:"required"`
}

// UpdateDishRequest is the partial-update body
type UpdateDishRequest struct {
	Title       *string          `json:"title,omitempty"`
	Description *string          `json:"description,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
}

// ListDishes handles GET .../submenus/{submenuID}/dishes
func (h *DishHandler) ListDishes(w http.ResponseWriter, r *http.Request) {
	dishes, err := h.dishes.List(r.Context(),
		chi.URLParam(r, "menuID"), chi.URLParam(r, "submenuID"))
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	respondJSON(w, h.logger, http.StatusOK, dishes)
}

// GetDish handles GET .../dishes/{dishID}
func (h *DishHandler) GetDish(w http.ResponseWriter, r *http.Request) {
	dish, err := h.dishes.Get(r.Context(),
		chi.URLParam(r, "menuID"), chi.URLParam(r, "submenuID"), chi.URLParam(r, "dishID"))
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	respondJSON(w, h.logger, http.StatusOK, dish)
}

// CreateDish handles POST .../submenus/{submenuID}/dishes
func (h *DishHandler) CreateDish(w http.ResponseWriter, r *http.Request) {
	var req CreateDishRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errors.Handle(w, r, apperrors.NewValidationError("invalid request body: "+err.Error()))
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		h.errors.Handle(w, r, apperrors.NewValidationError(err.Error()))
		return
	}

	dish, err := h.dishes.Create(r.Context(),
		chi.URLParam(r, "menuID"), chi.URLParam(r, "submenuID"),
		entities.DishCreate{
			Title:       req.Title,
			Description: req.Description,
			Price:       req.Price,
		})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	respondJSON(w, h.logger, http.StatusCreated, dish)
}

// UpdateDish handles PATCH .../dishes/{dishID}
func (h *DishHandler) UpdateDish(w http.ResponseWriter, r *http.Request) {
	var req UpdateDishRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errors.Handle(w, r, apperrors.NewValidationError("invalid request body: "+err.Error()))
		return
	}

	dish, err := h.dishes.Update(r.Context(),
		chi.URLParam(r, "menuID"), chi.URLParam(r, "submenuID"), chi.URLParam(r, "dishID"),
		entities.DishPatch{
			Title:       req.Title,
			Description: req.Description,
			Price:       req.Price,
		})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	respondJSON(w, h.logger, http.StatusOK, dish)
}

// DeleteDish handles DELETE .../dishes/{dishID}
func (h *DishHandler) DeleteDish(w http.ResponseWriter, r *http.Request) {
	message, err := h.dishes.Delete(r.Context(),
		chi.URLParam(r, "menuID"), chi.URLParam(r, "submenuID"), chi.URLParam(r, "dishID"))
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	respondJSON(w, h.logger, http.StatusOK, message)
}
