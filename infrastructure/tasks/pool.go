package tasks

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"menuapi/domain/entities"
)

// job is one queued export: the snapshot is captured at submission time, so
// the file reflects the hierarchy as of the request, not of execution.
type job struct {
	taskID string
	menus  []entities.MenuNode
}

// Pool is the export worker pool. Submission enqueues a job and returns an
// opaque task id; workers drain the queue and record results in the store.
type Pool struct {
	store   *Store
	dir     string
	jobs    chan job
	workers int
	logger  *zap.Logger
}

// NewPool creates a pool writing files into dir.
func NewPool(store *Store, dir string, workers, queueSize int, logger *zap.Logger) *Pool {
	if workers < 1 {
		workers = 1
	}
	return &Pool{
		store:   store,
		dir:     dir,
		jobs:    make(chan job, queueSize),
		workers: workers,
		logger:  logger,
	}
}

// Start launches the workers. They exit when ctx is cancelled; queued jobs
// left behind simply never finish, which poll surfaces as a stuck PENDING.
func (p *Pool) Start(ctx context.Context) {
	for i := 0; i < p.workers; i++ {
		go p.worker(ctx)
	}
}

// Submit registers a new task and enqueues it. Returns the task id
// immediately; the result is observed by polling the store.
func (p *Pool) Submit(menus []entities.MenuNode) (string, error) {
	task := &Task{
		ID:          uuid.New().String(),
		Status:      StatusPending,
		SubmittedAt: time.Now(),
	}
	if err := p.store.Put(task); err != nil {
		return "", err
	}

	select {
	case p.jobs <- job{taskID: task.ID, menus: menus}:
		return task.ID, nil
	default:
		p.store.SetStatus(task.ID, StatusFailure, "", "export queue full")
		return "", fmt.Errorf("export queue full")
	}
}

// Dir returns the directory exported files are written to.
func (p *Pool) Dir() string {
	return p.dir
}

func (p *Pool) worker(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case j := <-p.jobs:
			p.run(j)
		}
	}
}

func (p *Pool) run(j job) {
	p.store.SetStatus(j.taskID, StatusStarted, "", "")

	fileName, err := p.export(j.menus)
	if err != nil {
		p.logger.Error("Export task failed",
			zap.String("taskID", j.taskID),
			zap.Error(err),
		)
		p.store.SetStatus(j.taskID, StatusFailure, "", err.Error())
		return
	}

	p.logger.Info("Export task finished",
		zap.String("taskID", j.taskID),
		zap.String("file", fileName),
	)
	p.store.SetStatus(j.taskID, StatusSuccess, fileName, "")
}

// export writes the workbook to a temp path and renames it into place on
// success, so an aborted export never leaves a partial file behind.
func (p *Pool) export(menus []entities.MenuNode) (string, error) {
	book, err := writeWorkbook(menus)
	if err != nil {
		return "", err
	}
	defer book.Close()

	if err := os.MkdirAll(p.dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}

	fileName := fmt.Sprintf("%s_restaurant_menu.xlsx", time.Now().Format("02-01-2006-15-04"))
	tmpPath := filepath.Join(p.dir, "."+fileName+".tmp")
	if err := book.SaveAs(tmpPath); err != nil {
		return "", fmt.Errorf("write workbook: %w", err)
	}
	if err := os.Rename(tmpPath, filepath.Join(p.dir, fileName)); err != nil {
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("finalize workbook: %w", err)
	}
	return fileName, nil
}
