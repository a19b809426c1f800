package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tasknag-backend/internal/task/domain"
)

// boardOrder sorts the way the kanban renders: column, then urgency, then age.
const boardOrder = `
	CASE status
		WHEN 'inbox' THEN 1
		WHEN 'todo' THEN 2
		WHEN 'in_progress' THEN 3
		WHEN 'done' THEN 4
	END,
	notification_level DESC,
	created_at DESC`

// gormTaskRepository implements TaskRepository using GORM
type gormTaskRepository struct {
	db *gorm.DB
}

// NewGormTaskRepository creates a new GORM-based TaskRepository
func NewGormTaskRepository(db *gorm.DB) TaskRepository {
	return &gormTaskRepository{db: db}
}

func (r *gormTaskRepository) Create(ctx context.Context, task *domain.Task) error {
	if task.ID == "" {
		task.ID = uuid.New().String()
	}
	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	return nil
}

func (r *gormTaskRepository) FindByID(ctx context.Context, id string) (*domain.Task, error) {
	var task domain.Task
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&task).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find task %s: %w", id, err)
	}
	return &task, nil
}

func (r *gormTaskRepository) ListBoard(ctx context.Context) ([]*domain.Task, error) {
	var tasks []*domain.Task
	if err := r.db.WithContext(ctx).Order(boardOrder).Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

func (r *gormTaskRepository) ListRoots(ctx context.Context) ([]*domain.Task, error) {
	var tasks []*domain.Task
	if err := r.db.WithContext(ctx).Where("parent_id IS NULL").
		Order(boardOrder).Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("list root tasks: %w", err)
	}
	return tasks, nil
}

func (r *gormTaskRepository) GetChildren(ctx context.Context, parentID string) ([]*domain.Task, error) {
	var tasks []*domain.Task
	if err := r.db.WithContext(ctx).Where("parent_id = ?", parentID).
		Order("created_at ASC").Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("list children of %s: %w", parentID, err)
	}
	return tasks, nil
}

func (r *gormTaskRepository) ListActiveNotifiable(ctx context.Context) ([]*domain.Task, error) {
	var tasks []*domain.Task
	if err := r.db.WithContext(ctx).
		Where("status != ? AND notification_type != ?", domain.TaskStatusDone, domain.NotificationNone).
		Order("notification_level DESC, created_at DESC").
		Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("list notifiable tasks: %w", err)
	}
	return tasks, nil
}

func (r *gormTaskRepository) ListIncomplete(ctx context.Context) ([]*domain.Task, error) {
	var tasks []*domain.Task
	if err := r.db.WithContext(ctx).Where("status != ?", domain.TaskStatusDone).
		Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("list incomplete tasks: %w", err)
	}
	return tasks, nil
}

func (r *gormTaskRepository) CountIncomplete(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.Task{}).
		Where("status != ?", domain.TaskStatusDone).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count incomplete tasks: %w", err)
	}
	return count, nil
}

func (r *gormTaskRepository) Save(ctx context.Context, task *domain.Task) error {
	if err := r.db.WithContext(ctx).Save(task).Error; err != nil {
		return fmt.Errorf("save task %s: %w", task.ID, err)
	}
	return nil
}

func (r *gormTaskRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&domain.Task{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("delete task %s: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
