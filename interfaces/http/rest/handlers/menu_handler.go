package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"menuapi/application/services"
	"menuapi/domain/entities"
	apperrors "menuapi/pkg/errors"
	"menuapi/pkg/utils"
)

// MenuHandler handles menu HTTP requests
type MenuHandler struct {
	menus    *services.MenuService
	errors   *apperrors.ErrorHandler
	logger   *zap.Logger
}

// NewMenuHandler creates a new menu handler
func NewMenuHandler(menus *services.MenuService, errHandler *apperrors.ErrorHandler, logger *zap.Logger) *MenuHandler {
	return &MenuHandler{menus: menus, errors: errHandler, logger: logger}
}

// CreateMenuRequest is the body for creating a menu
type CreateMenuRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
}

// UpdateMenuRequest is the partial-update body; omitted fields keep their
// prior value
type UpdateMenuRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
}

// ListMenus handles GET /menus
func (h *MenuHandler) ListMenus(w http.ResponseWriter, r *http.Request) {
	menus, err := h.menus.List(r.Context())
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	respondJSON(w, h.logger, http.StatusOK, menus)
}

// GetMenu handles GET /menus/{menuID}
func (h *MenuHandler) GetMenu(w http.ResponseWriter, r *http.Request) {
	menu, err := h.menus.Get(r.Context(), chi.URLParam(r, "menuID"))
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	respondJSON(w, h.logger, http.StatusOK, menu)
}

// CreateMenu handles POST /menus
func (h *MenuHandler) CreateMenu(w http.ResponseWriter, r *http.Request) {
	var req CreateMenuRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errors.Handle(w, r, apperrors.NewValidationError("invalid request body: "+err.Error()))
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		h.errors.Handle(w, r, apperrors.NewValidationError(err.Error()))
		return
	}

	menu, err := h.menus.Create(r.Context(), entities.MenuCreate{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	respondJSON(w, h.logger, http.StatusCreated, menu)
}

// UpdateMenu handles PATCH /menus/{menuID}
func (h *MenuHandler) UpdateMenu(w http.ResponseWriter, r *http.Request) {
	var req UpdateMenuRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errors.Handle(w, r, apperrors.NewValidationError("invalid request body: "+err.Error()))
		return
	}

	menu, err := h.menus.Update(r.Context(), chi.URLParam(r, "menuID"), entities.MenuPatch{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	respondJSON(w, h.logger, http.StatusOK, menu)
}

// DeleteMenu handles DELETE /menus/{menuID}
func (h *MenuHandler) DeleteMenu(w http.ResponseWriter, r *http.Request) {
	message, err := h.menus.Delete(r.Context(), chi.URLParam(r, "menuID"))
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	respondJSON(w, h.logger, http.StatusOK, message)
}

// respondJSON writes a JSON response; shared by every handler in the package.
func respondJSON(w http.ResponseWriter, logger *zap.Logger, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("Failed to encode response", zap.Error(err))
	}
}
