package notification

import (
	"context"
	"fmt"
	"log"
	"time"

	"tasknag-backend/internal/browser"
	"tasknag-backend/internal/task/domain"
)

// TaskSource is the slice of the task repository the engine reads.
type TaskSource interface {
	ListActiveNotifiable(ctx context.Context) ([]*domain.Task, error)
	ListIncomplete(ctx context.Context) ([]*domain.Task, error)
}

// Delivery fans one event out to the OS. Errors are logged and never
// propagated to the scheduler; one failing channel must not suppress the rest.
type Delivery interface {
	Show(title, body string) error
	PlaySound() error
	MaximizeWindow() error
}

// Broadcaster pushes engine events to the connected desktop shell.
type Broadcaster interface {
	Broadcast(event string, payload interface{})
}

// Service runs one resolution pass per scheduler tick: read tasks, resolve
// events, deliver each on its level's channels, then hand browser actions to
// the dispatcher.
type Service struct {
	source      TaskSource
	resolver    *Resolver
	delivery    Delivery
	dispatcher  *browser.Dispatcher
	broadcaster Broadcaster
	staleAge    time.Duration
}

func NewService(source TaskSource, delivery Delivery, dispatcher *browser.Dispatcher, broadcaster Broadcaster, staleAge time.Duration) *Service {
	return &Service{
		source:      source,
		resolver:    NewResolver(),
		delivery:    delivery,
		dispatcher:  dispatcher,
		broadcaster: broadcaster,
		staleAge:    staleAge,
	}
}

// CheckAndNotify performs one tick. A repository failure is returned so the
// scheduler can log and skip the cycle; everything past resolution is
// best-effort and never fails the tick.
func (s *Service) CheckAndNotify(ctx context.Context, now time.Time) error {
	tasks, err := s.source.ListActiveNotifiable(ctx)
	if err != nil {
		return fmt.Errorf("list notifiable tasks: %w", err)
	}

	events := s.resolver.Resolve(now, tasks)
	if len(events) == 0 {
		return nil
	}

	log.Printf("[NotificationEngine] Firing %d notifications", len(events))

	byID := make(map[string]*domain.Task, len(tasks))
	for _, t := range tasks {
		byID[t.ID] = t
	}

	for _, event := range events {
		s.deliver(event)

		if s.broadcaster != nil {
			s.broadcaster.Broadcast("notification", struct {
				Event
				Channels []Channel `json:"channels"`
			}{Event: event, Channels: ChannelsForLevel(event.Level)})
		}

		if task, ok := byID[event.TaskID]; ok {
			s.dispatchActions(ctx, task)
		}
	}

	return nil
}

// deliver attempts every channel of the event's level. Channel failures are
// logged and the remaining channels still run.
func (s *Service) deliver(event Event) {
	body := renderBody(event.Reason)
	for _, channel := range ChannelsForLevel(event.Level) {
		var err error
		switch channel {
		case ChannelToast:
			err = s.delivery.Show(event.Title, body)
		case ChannelSound:
			err = s.delivery.PlaySound()
		case ChannelMaximize:
			err = s.delivery.MaximizeWindow()
		}
		if err != nil {
			log.Printf("[NotificationEngine] %s delivery failed for task %s: %v", channel, event.TaskID, err)
		}
	}
}

func (s *Service) dispatchActions(ctx context.Context, task *domain.Task) {
	settings, err := browser.ParseSettings(task.BrowserActions)
	if err != nil {
		log.Printf("[NotificationEngine] Skipping browser actions for task %s: %v", task.ID, err)
		return
	}

	report := s.dispatcher.Dispatch(ctx, task.ID, settings)
	for _, result := range report.Results {
		if result.Outcome != browser.OutcomeOK {
			log.Printf("[NotificationEngine] Browser action %q for task %s: %s %s",
				result.Label, task.ID, result.Outcome, result.Error)
		}
	}
}

// ProactiveSummary is the lighter half of the 30-minute cycle: a workload
// snapshot logged for diagnostics. The heavy analysis lives elsewhere.
func (s *Service) ProactiveSummary(ctx context.Context, now time.Time) error {
	tasks, err := s.source.ListIncomplete(ctx)
	if err != nil {
		return fmt.Errorf("list incomplete tasks: %w", err)
	}

	var overdue, stale int
	for _, t := range tasks {
		if t.DueDate != nil && t.DueDate.Before(now) {
			overdue++
		}
		if now.Sub(t.UpdatedAt) > s.staleAge {
			stale++
		}
	}

	log.Printf("[NotificationEngine] Proactive summary: %d open, %d overdue, %d stale", len(tasks), overdue, stale)
	return nil
}

func renderBody(reason FireReason) string {
	if reason.Type == ReasonRecurring {
		return "Recurring reminder"
	}
	switch reason.DaysUntilDue {
	case 0:
		return "Due today"
	case 1:
		return "Due tomorrow"
	default:
		return fmt.Sprintf("Due in %d days", reason.DaysUntilDue)
	}
}
