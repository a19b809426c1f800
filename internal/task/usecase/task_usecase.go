package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"tasknag-backend/internal/browser"
	"tasknag-backend/internal/progress"
	"tasknag-backend/internal/task/domain"
	"tasknag-backend/internal/task/repository"
	"tasknag-backend/pkg/clock"
	"tasknag-backend/pkg/fuzzy"
)

// ErrProgressDerived is returned when a direct progress write hits a task
// whose progress is an aggregate of its children.
var ErrProgressDerived = errors.New("progress is derived from children and cannot be set directly")

// taskUsecase implements TaskUsecase interface
type taskUsecase struct {
	taskRepo   repository.TaskRepository
	propagator *progress.Propagator
	validator  *browser.Validator
	clock      clock.Clock
}

// NewTaskUsecase creates a new instance of taskUsecase
func NewTaskUsecase(taskRepo repository.TaskRepository, propagator *progress.Propagator, clk clock.Clock) TaskUsecase {
	return &taskUsecase{
		taskRepo:   taskRepo,
		propagator: propagator,
		validator:  browser.NewValidator(),
		clock:      clk,
	}
}

func (u *taskUsecase) CreateTask(ctx context.Context, req CreateTaskRequest) (*domain.Task, error) {
	if req.Title == "" {
		return nil, errors.New("title is required")
	}

	status := domain.TaskStatusInbox
	if req.Status != nil {
		status = domain.TaskStatus(*req.Status)
		if !status.Valid() {
			return nil, fmt.Errorf("invalid status: %s", *req.Status)
		}
	}

	task := &domain.Task{
		Title:       req.Title,
		Description: req.Description,
		Status:      status,
		ParentID:    req.ParentID,
		Progress:    0,

		NotificationType:  domain.NotificationNone,
		NotificationLevel: domain.LevelToast,
	}

	if req.DueDate != nil && *req.DueDate != "" {
		t, err := time.Parse(time.RFC3339, *req.DueDate)
		if err != nil {
			return nil, fmt.Errorf("invalid due date: %w", err)
		}
		task.DueDate = &t
	}

	if req.Notification != nil {
		if err := applyNotificationSettings(task, req.Notification); err != nil {
			return nil, err
		}
	}

	if req.BrowserActions != nil {
		encoded, err := u.validateBrowserActions(*req.BrowserActions)
		if err != nil {
			return nil, err
		}
		task.BrowserActions = &encoded
	}

	if status == domain.TaskStatusDone {
		now := u.clock.Now()
		task.CompletedAt = &now
		task.Progress = 100
	}

	if err := u.taskRepo.Create(ctx, task); err != nil {
		return nil, err
	}

	// A new child shifts its parent's aggregate immediately.
	if task.ParentID != nil {
		if err := u.propagator.OnChildChanged(ctx, task.ID); err != nil {
			return nil, err
		}
	}

	return task, nil
}

func (u *taskUsecase) GetTask(ctx context.Context, id string) (*domain.Task, error) {
	return u.taskRepo.FindByID(ctx, id)
}

func (u *taskUsecase) ListBoard(ctx context.Context) ([]*domain.Task, error) {
	return u.taskRepo.ListBoard(ctx)
}

func (u *taskUsecase) ListRoots(ctx context.Context) ([]*domain.Task, error) {
	return u.taskRepo.ListRoots(ctx)
}

func (u *taskUsecase) ListChildren(ctx context.Context, id string) ([]*domain.Task, error) {
	if _, err := u.taskRepo.FindByID(ctx, id); err != nil {
		return nil, err
	}
	return u.taskRepo.GetChildren(ctx, id)
}

func (u *taskUsecase) UpdateTask(ctx context.Context, id string, req UpdateTaskRequest) (*domain.Task, error) {
	task, err := u.taskRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	formerParent := task.ParentID
	affectsAggregate := false

	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Status != nil {
		status := domain.TaskStatus(*req.Status)
		if !status.Valid() {
			return nil, fmt.Errorf("invalid status: %s", *req.Status)
		}
		if status != task.Status {
			task.Status = status
			affectsAggregate = true
			if status == domain.TaskStatusDone {
				now := u.clock.Now()
				task.CompletedAt = &now
			} else {
				task.CompletedAt = nil
			}
		}
	}
	if req.ParentID != nil {
		if *req.ParentID == task.ID {
			return nil, errors.New("task cannot be its own parent")
		}
		task.ParentID = req.ParentID
		affectsAggregate = true
	}
	if req.DueDate != nil {
		if *req.DueDate == "" {
			task.DueDate = nil
		} else {
			t, err := time.Parse(time.RFC3339, *req.DueDate)
			if err != nil {
				return nil, fmt.Errorf("invalid due date: %w", err)
			}
			task.DueDate = &t
		}
	}
	if req.Notification != nil {
		if err := applyNotificationSettings(task, req.Notification); err != nil {
			return nil, err
		}
	}
	if req.BrowserActions != nil {
		encoded, err := u.validateBrowserActions(*req.BrowserActions)
		if err != nil {
			return nil, err
		}
		task.BrowserActions = &encoded
	}

	if err := u.taskRepo.Save(ctx, task); err != nil {
		return nil, err
	}

	if affectsAggregate {
		if err := u.propagator.OnChildChanged(ctx, task.ID); err != nil {
			return nil, err
		}
		// Reparenting also re-aggregates the subtree the task left.
		if formerParent != nil && !sameParent(formerParent, task.ParentID) {
			if err := u.propagator.OnChildRemoved(ctx, *formerParent); err != nil {
				return nil, err
			}
		}
	}

	return task, nil
}

func (u *taskUsecase) MoveTask(ctx context.Context, id string, status string) (*domain.Task, error) {
	return u.UpdateTask(ctx, id, UpdateTaskRequest{Status: &status})
}

func (u *taskUsecase) UpdateProgress(ctx context.Context, id string, value int) (*domain.Task, error) {
	if value < 0 || value > 100 {
		return nil, errors.New("progress must be between 0 and 100")
	}

	task, err := u.taskRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	children, err := u.taskRepo.GetChildren(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(children) > 0 {
		return nil, ErrProgressDerived
	}

	task.Progress = value

	// 100% completes the task itself; partial progress never un-completes it.
	if value == 100 && !task.IsDone() {
		task.Status = domain.TaskStatusDone
		now := u.clock.Now()
		task.CompletedAt = &now
	}

	if err := u.taskRepo.Save(ctx, task); err != nil {
		return nil, err
	}

	if err := u.propagator.OnChildChanged(ctx, task.ID); err != nil {
		return nil, err
	}

	return task, nil
}

func (u *taskUsecase) DeleteTask(ctx context.Context, id string) error {
	task, err := u.taskRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := u.taskRepo.Delete(ctx, id); err != nil {
		return err
	}

	// The store cascades the subtree; the former parent's aggregate must
	// reflect the removal.
	if task.ParentID != nil {
		return u.propagator.OnChildRemoved(ctx, *task.ParentID)
	}
	return nil
}

func (u *taskUsecase) SearchTasks(ctx context.Context, query string) ([]*domain.Task, error) {
	if query == "" {
		return nil, errors.New("query is required")
	}

	tasks, err := u.taskRepo.ListBoard(ctx)
	if err != nil {
		return nil, err
	}

	type scored struct {
		task  *domain.Task
		score float64
	}
	var matches []scored
	for _, t := range tasks {
		if fuzzy.FuzzyMatchTask(query, t.Title, t.Description) {
			matches = append(matches, scored{
				task:  t,
				score: fuzzy.CalculateRelevanceScore(query, t.Title, t.Description),
			})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool { return matches[i].score > matches[j].score })

	results := make([]*domain.Task, len(matches))
	for i, m := range matches {
		results[i] = m.task
	}
	return results, nil
}

func (u *taskUsecase) CountIncomplete(ctx context.Context) (int64, error) {
	return u.taskRepo.CountIncomplete(ctx)
}

// validateBrowserActions enforces the storage boundary: at most five actions,
// every URL on the allow-list. New actions get IDs here.
func (u *taskUsecase) validateBrowserActions(settings browser.Settings) (string, error) {
	if len(settings.Actions) > browser.MaxActions {
		return "", fmt.Errorf("at most %d browser actions are allowed", browser.MaxActions)
	}
	for i := range settings.Actions {
		action := &settings.Actions[i]
		if result := u.validator.Validate(action.URL); !result.IsValid {
			return "", fmt.Errorf("invalid URL %q: %s", action.URL, result.Error)
		}
		if action.ID == "" {
			fresh := browser.NewAction(action.Label, action.URL, action.Order)
			action.ID = fresh.ID
			action.CreatedAt = fresh.CreatedAt
		}
	}
	return settings.Encode()
}

func applyNotificationSettings(task *domain.Task, settings *domain.NotificationSettings) error {
	switch settings.Type {
	case domain.NotificationNone, domain.NotificationDueDateBased, domain.NotificationRecurring:
	default:
		return fmt.Errorf("invalid notification type: %s", settings.Type)
	}

	task.NotificationType = settings.Type
	task.NotificationDaysBefore = settings.DaysBefore
	task.NotificationTime = settings.Time
	task.NotificationLevel = domain.ClampLevel(settings.Level)

	if settings.DaysOfWeek != nil {
		encoded, err := json.Marshal(settings.DaysOfWeek)
		if err != nil {
			return fmt.Errorf("encode days of week: %w", err)
		}
		s := string(encoded)
		task.NotificationDaysOfWeek = &s
	} else {
		task.NotificationDaysOfWeek = nil
	}
	return nil
}

func sameParent(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
