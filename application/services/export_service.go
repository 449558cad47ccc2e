package services

import (
	"context"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"menuapi/application/ports"
	"menuapi/domain/entities"
	"menuapi/infrastructure/tasks"
	apperrors "menuapi/pkg/errors"
)

// ExportStatus is the poll response while a task has not produced a file.
type ExportStatus struct {
	TaskID string `json:"task_id"`
	Status string `json:"status"`
}

// ExportFile points at a finished spreadsheet ready for download.
type ExportFile struct {
	Path     string
	FileName string
}

// ExportService submits hierarchy dumps to the worker pool and resolves poll
// requests against the task store.
type ExportService struct {
	snapshots ports.SnapshotRepository
	pool      *tasks.Pool
	store     *tasks.Store
	logger    *zap.Logger
}

// NewExportService creates an export service.
func NewExportService(snapshots ports.SnapshotRepository, pool *tasks.Pool, store *tasks.Store, logger *zap.Logger) *ExportService {
	return &ExportService{snapshots: snapshots, pool: pool, store: store, logger: logger}
}

// Submit captures the hierarchy snapshot and enqueues the export. The
// snapshot query runs here, at submission time, so the file reflects the
// state the caller requested even if the worker lags.
func (s *ExportService) Submit(ctx context.Context) (*entities.Message, error) {
	menus, err := s.snapshots.Dump(ctx)
	if err != nil {
		return nil, err
	}
	if len(menus) == 0 {
		return nil, apperrors.NewValidationError("Database is empty!")
	}

	taskID, err := s.pool.Submit(menus)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to register export task").WithCause(err)
	}

	s.logger.Info("Export task registered", zap.String("taskID", taskID))
	return &entities.Message{
		Status:  true,
		Message: fmt.Sprintf("Task registred with ID: %s", taskID),
	}, nil
}

// Result resolves a poll. Exactly one of the returns is non-nil on success:
// the file once the task succeeded, the status while it is pending, started
// or failed. Failures carry no structured detail beyond the status.
func (s *ExportService) Result(ctx context.Context, taskID string) (*ExportFile, *ExportStatus, error) {
	task, ok := s.store.Get(taskID)
	if !ok {
		return nil, nil, apperrors.NewNotFoundError("task")
	}

	if task.Status == tasks.StatusSuccess {
		return &ExportFile{
			Path:     filepath.Join(s.pool.Dir(), task.FileName),
			FileName: task.FileName,
		}, nil, nil
	}
	return nil, &ExportStatus{TaskID: task.ID, Status: string(task.Status)}, nil
}
