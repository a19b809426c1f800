package notification

import (
	"fmt"
	"sync"
	"time"

	"tasknag-backend/internal/task/domain"
)

// dedupeRetention bounds how long fired keys are remembered. Entries are not
// persisted: a restart may re-fire a pending notification, which is the
// accepted tradeoff over ever suppressing one.
const dedupeRetention = 5 * time.Minute

// Resolver decides which events one tick produces. It keeps the in-process
// "already fired this minute" record, shared between the timer loop and any
// manual check-now command, so both sides are mutex-guarded.
type Resolver struct {
	mu    sync.Mutex
	fired map[string]time.Time
}

func NewResolver() *Resolver {
	return &Resolver{fired: make(map[string]time.Time)}
}

// Resolve scans the tasks once and emits at most one event per task per
// minute bucket, regardless of how many times it is invoked in that minute.
func (r *Resolver) Resolve(now time.Time, tasks []*domain.Task) []Event {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.prune(now)

	var events []Event
	for _, task := range tasks {
		if task.IsDone() || !task.HasNotification() {
			continue
		}

		reason := Matches(now, task)
		if reason == nil {
			continue
		}

		key := dedupeKey(task.ID, now)
		if _, already := r.fired[key]; already {
			continue
		}
		r.fired[key] = now

		events = append(events, Event{
			TaskID: task.ID,
			Title:  task.Title,
			Level:  domain.ClampLevel(task.NotificationLevel),
			Reason: *reason,
		})
	}
	return events
}

// prune drops dedupe entries older than the retention window. Caller holds mu.
func (r *Resolver) prune(now time.Time) {
	for key, firedAt := range r.fired {
		if now.Sub(firedAt) > dedupeRetention {
			delete(r.fired, key)
		}
	}
}

func dedupeKey(taskID string, now time.Time) string {
	return fmt.Sprintf("%s@%s", taskID, now.Format("200601021504"))
}
