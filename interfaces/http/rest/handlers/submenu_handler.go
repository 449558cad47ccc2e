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

// SubmenuHandler handles submenu HTTP requests
type SubmenuHandler struct {
	submenus *services.SubmenuService
	errors   *apperrors.ErrorHandler
	logger   *zap.Logger
}

// NewSubmenuHandler creates a new submenu handler
func NewSubmenuHandler(submenus *services.SubmenuService, errHandler *apperrors.ErrorHandler, logger *zap.Logger) *SubmenuHandler {
	return &SubmenuHandler{submenus: submenus, errors: errHandler, logger: logger}
}

// CreateSubmenuRequest is the body for creating a submenu
type CreateSubmenuRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
}

// UpdateSubmenuRequest is the partial-update body
type UpdateSubmenuRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
}

// ListSubmenus handles GET /menus/{menuID}/submenus
func (h *SubmenuHandler) ListSubmenus(w http.ResponseWriter, r *http.Request) {
	submenus, err := h.submenus.List(r.Context(), chi.URLParam(r, "menuID"))
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	respondJSON(w, h.logger, http.StatusOK, submenus)
}

// GetSubmenu handles GET /menus/{menuID}/submenus/{submenuID}
func (h *SubmenuHandler) GetSubmenu(w http.ResponseWriter, r *http.Request) {
	submenu, err := h.submenus.Get(r.Context(),
		chi.URLParam(r, "menuID"), chi.URLParam(r, "submenuID"))
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	respondJSON(w, h.logger, http.StatusOK, submenu)
}

// CreateSubmenu handles POST /menus/{menuID}/submenus
func (h *SubmenuHandler) CreateSubmenu(w http.ResponseWriter, r *http.Request) {
	var req CreateSubmenuRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errors.Handle(w, r, apperrors.NewValidationError("invalid request body: "+err.Error()))
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		h.errors.Handle(w, r, apperrors.NewValidationError(err.Error()))
		return
	}

	submenu, err := h.submenus.Create(r.Context(), chi.URLParam(r, "menuID"),
		entities.SubmenuCreate{
			Title:       req.Title,
			Description: req.Description,
		})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	respondJSON(w, h.logger, http.StatusCreated, submenu)
}

// UpdateSubmenu handles PATCH /menus/{menuID}/submenus/{submenuID}
func (h *SubmenuHandler) UpdateSubmenu(w http.ResponseWriter, r *http.Request) {
	var req UpdateSubmenuRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errors.Handle(w, r, apperrors.NewValidationError("invalid request body: "+err.Error()))
		return
	}

	submenu, err := h.submenus.Update(r.Context(),
		chi.URLParam(r, "menuID"), chi.URLParam(r, "submenuID"),
		entities.SubmenuPatch{
			Title:       req.Title,
			Description: req.Description,
		})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	respondJSON(w, h.logger, http.StatusOK, submenu)
}

// DeleteSubmenu handles DELETE /menus/{menuID}/submenus/{submenuID}
func (h *SubmenuHandler) DeleteSubmenu(w http.ResponseWriter, r *http.Request) {
	message, err := h.submenus.Delete(r.Context(),
		chi.URLParam(r, "menuID"), chi.URLParam(r, "submenuID"))
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	respondJSON(w, h.logger, http.StatusOK, message)
}
