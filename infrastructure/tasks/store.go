// Package tasks runs the spreadsheet export as a background job: submission
// returns an opaque task id immediately and completion is observed by polling
// the task store.
package tasks

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Status is the lifecycle state of an export task.
type Status string

const (
	StatusPending Status = "PENDING"
	StatusStarted Status = "STARTED"
	StatusSuccess Status = "SUCCESS"
	StatusFailure Status = "FAILURE"
)

// Task is one export job. FileName is set only on success; Error only on
// failure. Failed tasks are not retried.
type Task struct {
	ID          string
	Status      Status
	FileName    string
	Error       string
	SubmittedAt time.Time
	FinishedAt  time.Time
}

// Store keeps task results in memory. Entries expire after a TTL so
// abandoned (never-polled) tasks do not accumulate.
type Store struct {
	mu    sync.RWMutex
	tasks map[string]*Task
	ttl   time.Duration
}

// NewStore creates a task store whose entries expire after ttl. The cleanup
// loop runs until the context is cancelled.
func NewStore(ctx context.Context, ttl time.Duration) *Store {
	s := &Store{
		tasks: make(map[string]*Task),
		ttl:   ttl,
	}
	go s.cleanupLoop(ctx)
	return s
}

// Put stores a task, replacing any previous state for its id.
func (s *Store) Put(task *Task) error {
	if task == nil || task.ID == "" {
		return fmt.Errorf("invalid task")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks[task.ID] = task
	return nil
}

// Get returns a copy of the task, or (nil, false) if unknown or expired.
func (s *Store) Get(taskID string) (*Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	task, ok := s.tasks[taskID]
	if !ok || s.expired(task, time.Now()) {
		return nil, false
	}
	copied := *task
	return &copied, true
}

// SetStatus transitions a task, recording the finish time on terminal states.
func (s *Store) SetStatus(taskID string, status Status, fileName, errMsg string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks[taskID]
	if !ok {
		return
	}
	task.Status = status
	task.FileName = fileName
	task.Error = errMsg
	if status == StatusSuccess || status == StatusFailure {
		task.FinishedAt = time.Now()
	}
}

func (s *Store) expired(task *Task, now time.Time) bool {
	return now.Sub(task.SubmittedAt) > s.ttl
}

func (s *Store) cleanupLoop(ctx context.Context) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			now := time.Now()
			s.mu.Lock()
			for id, task := range s.tasks {
				if s.expired(task, now) {
					delete(s.tasks, id)
				}
			}
			s.mu.Unlock()
		}
	}
}
