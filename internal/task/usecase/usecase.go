package usecase

import (
	"context"

	"tasknag-backend/internal/browser"
	"tasknag-backend/internal/task/domain"
)

// TaskUsecase defines the interface for task business logic
type TaskUsecase interface {
	// CreateTask creates a new task; new tasks start in inbox with no
	// notification unless the request says otherwise
	CreateTask(ctx context.Context, req CreateTaskRequest) (*domain.Task, error)

	// GetTask retrieves a task by ID
	GetTask(ctx context.Context, id string) (*domain.Task, error)

	// ListBoard returns every task in kanban display order
	ListBoard(ctx context.Context) ([]*domain.Task, error)

	// ListRoots returns the top-level tasks
	ListRoots(ctx context.Context) ([]*domain.Task, error)

	// ListChildren returns a task's direct children
	ListChildren(ctx context.Context, id string) ([]*domain.Task, error)

	// UpdateTask applies a partial update and re-propagates ancestor progress
	UpdateTask(ctx context.Context, id string, req UpdateTaskRequest) (*domain.Task, error)

	// MoveTask changes only the status (kanban drag target)
	MoveTask(ctx context.Context, id string, status string) (*domain.Task, error)

	// UpdateProgress sets a leaf task's progress directly; rejected for tasks
	// with children, whose progress is derived
	UpdateProgress(ctx context.Context, id string, progress int) (*domain.Task, error)

	// DeleteTask removes a task and its subtree, then re-aggregates the
	// former parent
	DeleteTask(ctx context.Context, id string) error

	// SearchTasks fuzzy-matches tasks against a query, most relevant first
	SearchTasks(ctx context.Context, query string) ([]*domain.Task, error)

	// CountIncomplete counts tasks not yet done (tray badge)
	CountIncomplete(ctx context.Context) (int64, error)
}

// CreateTaskRequest carries the fields the UI submits for a new task.
type CreateTaskRequest struct {
	Title          string                       `json:"title"`
	Description    string                       `json:"description"`
	Status         *string                      `json:"status,omitempty"`
	ParentID       *string                      `json:"parent_id,omitempty"`
	DueDate        *string                      `json:"due_date,omitempty"` // RFC3339
	Notification   *domain.NotificationSettings `json:"notification_settings,omitempty"`
	BrowserActions *browser.Settings            `json:"browser_actions,omitempty"`
}

// UpdateTaskRequest represents the fields that can be updated; nil means
// "leave unchanged", an empty due date string clears it.
type UpdateTaskRequest struct {
	Title          *string                      `json:"title,omitempty"`
	Description    *string                      `json:"description,omitempty"`
	Status         *string                      `json:"status,omitempty"`
	ParentID       *string                      `json:"parent_id,omitempty"`
	DueDate        *string                      `json:"due_date,omitempty"`
	Notification   *domain.NotificationSettings `json:"notification_settings,omitempty"`
	BrowserActions *browser.Settings            `json:"browser_actions,omitempty"`
}
