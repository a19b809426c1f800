package browser

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"tasknag-backend/pkg/opener"
)

// Outcome classifies how a single action ended.
type Outcome string

const (
	OutcomeOK       Outcome = "ok"
	OutcomeTimedOut Outcome = "timed_out"
	OutcomeError    Outcome = "error"
)

// ActionResult is the per-action entry of a dispatch report.
type ActionResult struct {
	ActionID string  `json:"actionId"`
	Label    string  `json:"label"`
	Outcome  Outcome `json:"outcome"`
	Error    string  `json:"error,omitempty"`
}

// Report summarizes one dispatch run. Every attempted action appears exactly
// once, in execution order.
type Report struct {
	TaskID  string         `json:"taskId"`
	Results []ActionResult `json:"results"`
}

// Dispatcher opens a task's browser actions sequentially. One bad URL never
// blocks the rest, and a timed-out open only fails that single action.
type Dispatcher struct {
	opener    opener.UrlOpener
	validator *Validator
	timeout   time.Duration
	delay     time.Duration
	sleep     func(time.Duration)
}

func NewDispatcher(urlOpener opener.UrlOpener, timeout, delay time.Duration) *Dispatcher {
	return &Dispatcher{
		opener:    urlOpener,
		validator: NewValidator(),
		timeout:   timeout,
		delay:     delay,
		sleep:     time.Sleep,
	}
}

// Dispatch runs the enabled actions of settings in stored order. Returns a
// report with one entry per attempted action; an empty report when the feature
// is disabled or nothing is enabled.
func (d *Dispatcher) Dispatch(ctx context.Context, taskID string, settings Settings) Report {
	report := Report{TaskID: taskID}

	actions := settings.EnabledActions()
	if len(actions) == 0 {
		return report
	}

	log.Printf("[Dispatcher] Executing %d browser actions for task %s", len(actions), taskID)

	for i, action := range actions {
		result := d.runOne(ctx, action)
		report.Results = append(report.Results, result)

		if result.Outcome == OutcomeOK {
			log.Printf("[Dispatcher] Opened URL %d/%d: %s", i+1, len(actions), action.URL)
		} else {
			log.Printf("[Dispatcher] Action %q failed (%s): %s. Continuing with remaining actions.",
				action.Label, result.Outcome, result.Error)
		}

		// Spacing between opens so we don't spawn a pile of windows at once.
		if i < len(actions)-1 {
			d.sleep(d.delay)
		}
	}

	return report
}

// TestURL validates and immediately opens a single URL, for the settings
// form's "try it" button.
func (d *Dispatcher) TestURL(ctx context.Context, url string) error {
	if validation := d.validator.Validate(url); !validation.IsValid {
		return fmt.Errorf("invalid URL: %s", validation.Error)
	}

	callCtx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()
	return d.opener.Open(callCtx, url)
}

func (d *Dispatcher) runOne(ctx context.Context, action Action) ActionResult {
	result := ActionResult{ActionID: action.ID, Label: action.Label}

	// The URL was validated when stored; re-check so stale or hand-edited
	// rows fail this action alone instead of crashing the dispatch.
	if validation := d.validator.Validate(action.URL); !validation.IsValid {
		result.Outcome = OutcomeError
		result.Error = validation.Error
		return result
	}

	callCtx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	err := d.opener.Open(callCtx, action.URL)
	switch {
	case err == nil:
		result.Outcome = OutcomeOK
	case errors.Is(err, context.DeadlineExceeded):
		result.Outcome = OutcomeTimedOut
		result.Error = "browser action timed out"
	default:
		result.Outcome = OutcomeError
		result.Error = err.Error()
	}
	return result
}
