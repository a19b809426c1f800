package repository

import (
	"context"
	"errors"

	"tasknag-backend/internal/task/domain"
)

// ErrNotFound is returned when a task id does not exist.
var ErrNotFound = errors.New("task not found")

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create inserts a new task
	Create(ctx context.Context, task *domain.Task) error

	// FindByID finds a task by its ID, ErrNotFound when absent
	FindByID(ctx context.Context, id string) (*domain.Task, error)

	// ListBoard returns every task in kanban display order
	// (status, then level descending, then newest first)
	ListBoard(ctx context.Context) ([]*domain.Task, error)

	// ListRoots returns tasks without a parent, in board order
	ListRoots(ctx context.Context) ([]*domain.Task, error)

	// GetChildren returns the direct children of a parent, oldest first
	GetChildren(ctx context.Context, parentID string) ([]*domain.Task, error)

	// ListActiveNotifiable returns tasks eligible for a notification check:
	// not done and carrying a non-none notification type
	ListActiveNotifiable(ctx context.Context) ([]*domain.Task, error)

	// ListIncomplete returns every task whose status is not done
	ListIncomplete(ctx context.Context) ([]*domain.Task, error)

	// CountIncomplete counts tasks whose status is not done
	CountIncomplete(ctx context.Context) (int64, error)

	// Save persists every field of an existing task
	Save(ctx context.Context, task *domain.Task) error

	// Delete removes a task; children cascade at the store level
	Delete(ctx context.Context, id string) error
}
