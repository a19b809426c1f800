package notification

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tasknag-backend/internal/task/domain"
)

func TestResolver_EmitsMatchingTasks(t *testing.T) {
	now := time.Date(2026, 9, 2, 14, 30, 0, 0, time.UTC) // Wednesday
	tasks := []*domain.Task{
		recurringTask("14:30", "[3]"),
		recurringTask("18:00", "[3]"), // wrong time, must not fire
	}
	tasks[0].ID = "hit"
	tasks[0].NotificationLevel = domain.LevelSound
	tasks[1].ID = "miss"

	events := NewResolver().Resolve(now, tasks)

	require.Len(t, events, 1)
	assert.Equal(t, "hit", events[0].TaskID)
	assert.Equal(t, domain.LevelSound, events[0].Level)
	assert.Equal(t, ReasonRecurring, events[0].Reason.Type)
}

func TestResolver_SkipsDoneAndUnconfigured(t *testing.T) {
	now := time.Date(2026, 9, 2, 14, 30, 0, 0, time.UTC)

	done := recurringTask("14:30", "[3]")
	done.ID = "done"
	done.Status = domain.TaskStatusDone

	plain := &domain.Task{ID: "plain", NotificationType: domain.NotificationNone}

	events := NewResolver().Resolve(now, []*domain.Task{done, plain})
	assert.Empty(t, events)
}

func TestResolver_DedupesWithinMinute(t *testing.T) {
	now := time.Date(2026, 9, 2, 14, 30, 0, 0, time.UTC)
	task := recurringTask("14:30", "[3]")
	r := NewResolver()

	first := r.Resolve(now, []*domain.Task{task})
	require.Len(t, first, 1)

	// a manual check twenty seconds later lands in the same minute bucket
	second := r.Resolve(now.Add(20*time.Second), []*domain.Task{task})
	assert.Empty(t, second)
}

func TestResolver_NewMinuteFiresAgain(t *testing.T) {
	r := NewResolver()
	task := recurringTask("14:30", "[3]")

	now := time.Date(2026, 9, 2, 14, 30, 0, 0, time.UTC)
	require.Len(t, r.Resolve(now, []*domain.Task{task}), 1)

	// next Wednesday, same wall time, different bucket
	next := now.AddDate(0, 0, 7)
	assert.Len(t, r.Resolve(next, []*domain.Task{task}), 1)
}

func TestResolver_PrunesOldEntries(t *testing.T) {
	r := NewResolver()
	task := recurringTask("14:30", "[3]")

	now := time.Date(2026, 9, 2, 14, 30, 0, 0, time.UTC)
	require.Len(t, r.Resolve(now, []*domain.Task{task}), 1)
	require.Len(t, r.fired, 1)

	// a resolve well past the retention window drops the stale key
	r.Resolve(now.Add(10*time.Minute), nil)
	assert.Empty(t, r.fired)
}
