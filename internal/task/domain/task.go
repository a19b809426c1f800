package domain

import "time"

// TaskStatus represents the kanban column a task lives in
type TaskStatus string

const (
	TaskStatusInbox      TaskStatus = "inbox"
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusDone       TaskStatus = "done"
)

// Valid reports whether s is one of the four known statuses. Any status may
// move to any other; ordering is display-only.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusInbox, TaskStatusTodo, TaskStatusInProgress, TaskStatusDone:
		return true
	}
	return false
}

// NotificationType selects the trigger policy for a task
type NotificationType string

const (
	NotificationNone         NotificationType = "none"
	NotificationDueDateBased NotificationType = "due_date_based"
	NotificationRecurring    NotificationType = "recurring"
)

// Notification intensity levels. Higher levels add delivery channels.
const (
	LevelToast    = 1 // desktop toast only
	LevelSound    = 2 // toast + sound
	LevelMaximize = 3 // toast + sound + window maximize
)

// ClampLevel forces a stored level into the valid 1..3 range.
func ClampLevel(level int) int {
	if level < LevelToast {
		return LevelToast
	}
	if level > LevelMaximize {
		return LevelMaximize
	}
	return level
}

// Task is the aggregate root. Tasks form a forest via ParentID; a task with
// children has a derived Progress that must only be written by the progress
// propagator.
type Task struct {
	ID          string     `json:"id" gorm:"primaryKey"`
	Title       string     `json:"title" gorm:"not null"`
	Description string     `json:"description,omitempty"`
	Status      TaskStatus `json:"status" gorm:"index;default:inbox"`
	ParentID    *string    `json:"parent_id,omitempty" gorm:"index"`
	Progress    int        `json:"progress" gorm:"default:0"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`

	NotificationType       NotificationType `json:"notification_type" gorm:"index;default:none"`
	NotificationDaysBefore *int             `json:"notification_days_before,omitempty"`
	NotificationTime       *string          `json:"notification_time,omitempty"` // "HH:MM"
	NotificationDaysOfWeek *string          `json:"notification_days_of_week,omitempty"` // JSON array of 0..6, 0=Sunday
	NotificationLevel      int              `json:"notification_level" gorm:"default:1"`

	// Serialized browser action settings; see internal/browser.Settings.
	BrowserActions *string `json:"browser_actions,omitempty"`

	Children []Task `json:"children,omitempty" gorm:"foreignKey:ParentID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NotificationSettings is the wire shape the UI edits as one unit.
type NotificationSettings struct {
	Type       NotificationType `json:"notificationType"`
	DaysBefore *int             `json:"daysBefore,omitempty"`
	Time       *string          `json:"notificationTime,omitempty"`
	DaysOfWeek []int            `json:"daysOfWeek,omitempty"`
	Level      int              `json:"level"`
}

// HasNotification reports whether the task participates in notification checks.
func (t *Task) HasNotification() bool {
	return t.NotificationType == NotificationDueDateBased ||
		t.NotificationType == NotificationRecurring
}

// IsDone reports whether the task is completed.
func (t *Task) IsDone() bool {
	return t.Status == TaskStatusDone
}
