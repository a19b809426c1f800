package notification

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"tasknag-backend/internal/task/domain"
)

// timeTolerance is the window around the configured time-of-day in which a
// check counts as a hit. The driving tick is coarser (about a minute), so the
// window guarantees at least one hit per scheduled minute without two.
const timeTolerance = 30 * time.Second

// defaultNotificationTime applies when a due-date config has no explicit time.
const defaultNotificationTime = "09:00"

// Matches decides whether now is a firing instant for the task's notification
// configuration. Malformed configs (bad time string, empty day set, due-date
// trigger without a due date) are a silent nil: they come from previously
// valid but now stale UI state, not from bugs.
func Matches(now time.Time, task *domain.Task) *FireReason {
	switch task.NotificationType {
	case domain.NotificationDueDateBased:
		return matchDueDate(now, task)
	case domain.NotificationRecurring:
		return matchRecurring(now, task)
	default:
		return nil
	}
}

func matchDueDate(now time.Time, task *domain.Task) *FireReason {
	if task.DueDate == nil {
		return nil
	}

	daysBefore := 1
	if task.NotificationDaysBefore != nil {
		daysBefore = *task.NotificationDaysBefore
	}

	timeOfDay := defaultNotificationTime
	if task.NotificationTime != nil {
		timeOfDay = *task.NotificationTime
	}
	target, ok := parseTimeOfDay(timeOfDay)
	if !ok {
		return nil
	}

	// Countdown stops once the task is overdue; overdue handling is a
	// separate concern.
	daysUntil := floorDays(task.DueDate.Sub(now))
	if daysUntil < 0 || daysUntil > daysBefore {
		return nil
	}

	if !withinTimeTolerance(now, target) {
		return nil
	}

	return &FireReason{Type: ReasonDueDate, DaysUntilDue: daysUntil}
}

func matchRecurring(now time.Time, task *domain.Task) *FireReason {
	if task.NotificationTime == nil || task.NotificationDaysOfWeek == nil {
		return nil
	}

	target, ok := parseTimeOfDay(*task.NotificationTime)
	if !ok {
		return nil
	}

	var daysOfWeek []int
	if err := json.Unmarshal([]byte(*task.NotificationDaysOfWeek), &daysOfWeek); err != nil {
		return nil
	}
	if len(daysOfWeek) == 0 {
		return nil
	}

	// time.Weekday counts 0=Sunday, same convention as the stored day set.
	weekday := int(now.Weekday())
	found := false
	for _, d := range daysOfWeek {
		if d == weekday {
			found = true
			break
		}
	}
	if !found {
		return nil
	}

	if !withinTimeTolerance(now, target) {
		return nil
	}

	return &FireReason{Type: ReasonRecurring}
}

// secondsOfDay is a clock time expressed as seconds since midnight.
type secondsOfDay int

func parseTimeOfDay(s string) (secondsOfDay, bool) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, false
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, false
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, false
	}
	return secondsOfDay(hour*3600 + minute*60), true
}

func withinTimeTolerance(now time.Time, target secondsOfDay) bool {
	current := now.Hour()*3600 + now.Minute()*60 + now.Second()
	diff := current - int(target)
	if diff < 0 {
		diff = -diff
	}
	return diff <= int(timeTolerance/time.Second)
}

// floorDays converts a duration to whole days, rounding toward negative
// infinity so any overdue amount lands below zero.
func floorDays(d time.Duration) int {
	return int(math.Floor(d.Hours() / 24))
}
