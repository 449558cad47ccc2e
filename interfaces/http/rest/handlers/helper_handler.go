package handlers

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"menuapi/application/services"
	apperrors "menuapi/pkg/errors"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// HelperHandler handles the seeding and export endpoints
type HelperHandler struct {
	seeder *services.SeederService
	export *services.ExportService
	errors *apperrors.ErrorHandler
	logger *zap.Logger
}

// NewHelperHandler creates a new helper handler
func NewHelperHandler(seeder *services.SeederService, export *services.ExportService, errHandler *apperrors.ErrorHandler, logger *zap.Logger) *HelperHandler {
	return &HelperHandler{seeder: seeder, export: export, errors: errHandler, logger: logger}
}

// GenerateData handles POST /generated_data
func (h *HelperHandler) GenerateData(w http.ResponseWriter, r *http.Request) {
	message, err := h.seeder.Generate(r.Context())
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	respondJSON(w, h.logger, http.StatusCreated, message)
}

// SubmitExport handles POST /content_as_file
func (h *HelperHandler) SubmitExport(w http.ResponseWriter, r *http.Request) {
	message, err := h.export.Submit(r.Context())
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	respondJSON(w, h.logger, http.StatusAccepted, message)
}

// PollExport handles GET /content_as_file/{taskID}. While the task has not
// produced a file it answers with the task status; once finished it serves
// the spreadsheet as an attachment.
func (h *HelperHandler) PollExport(w http.ResponseWriter, r *http.Request) {
	file, status, err := h.export.Result(r.Context(), chi.URLParam(r, "taskID"))
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	if file == nil {
		respondJSON(w, h.logger, http.StatusOK, status)
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", file.FileName))
	http.ServeFile(w, r, file.Path)
}
