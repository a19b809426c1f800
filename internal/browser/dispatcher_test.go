package browser

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedOpener returns a canned error per URL and records call order.
type scriptedOpener struct {
	errs   map[string]error
	opened []string
	delays map[string]time.Duration
}

func (o *scriptedOpener) Open(ctx context.Context, url string) error {
	o.opened = append(o.opened, url)
	if d, ok := o.delays[url]; ok {
		select {
		case <-time.After(d):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return o.errs[url]
}

func testSettings(actions ...Action) Settings {
	return Settings{Enabled: true, Actions: actions}
}

func enabledAction(id, url string, order int) Action {
	return Action{ID: id, Label: id, URL: url, Enabled: true, Order: order}
}

func newTestDispatcher(o *scriptedOpener) *Dispatcher {
	d := NewDispatcher(o, 50*time.Millisecond, 500*time.Millisecond)
	d.sleep = func(time.Duration) {} // no real waiting in tests
	return d
}

func TestDispatch_RunsActionsInOrder(t *testing.T) {
	o := &scriptedOpener{}
	d := newTestDispatcher(o)

	settings := testSettings(
		enabledAction("b", "https://example.com/second", 2),
		enabledAction("a", "https://example.com/first", 1),
	)

	report := d.Dispatch(context.Background(), "t1", settings)

	assert.Equal(t, "t1", report.TaskID)
	require.Len(t, report.Results, 2)
	assert.Equal(t, []string{"https://example.com/first", "https://example.com/second"}, o.opened)
	assert.Equal(t, OutcomeOK, report.Results[0].Outcome)
	assert.Equal(t, OutcomeOK, report.Results[1].Outcome)
}

func TestDispatch_ContinuesPastFailure(t *testing.T) {
	o := &scriptedOpener{errs: map[string]error{
		"https://example.com/bad": errors.New("browser exploded"),
	}}
	d := newTestDispatcher(o)

	settings := testSettings(
		enabledAction("a", "https://example.com/bad", 0),
		enabledAction("b", "https://example.com/good", 1),
	)

	report := d.Dispatch(context.Background(), "t1", settings)

	require.Len(t, report.Results, 2)
	assert.Equal(t, OutcomeError, report.Results[0].Outcome)
	assert.Equal(t, "browser exploded", report.Results[0].Error)
	assert.Equal(t, OutcomeOK, report.Results[1].Outcome)
}

func TestDispatch_TimeoutFailsOnlyThatAction(t *testing.T) {
	o := &scriptedOpener{delays: map[string]time.Duration{
		"https://example.com/slow": 5 * time.Second,
	}}
	d := newTestDispatcher(o)

	settings := testSettings(
		enabledAction("slow", "https://example.com/slow", 0),
		enabledAction("fast", "https://example.com/fast", 1),
	)

	report := d.Dispatch(context.Background(), "t1", settings)

	require.Len(t, report.Results, 2)
	assert.Equal(t, OutcomeTimedOut, report.Results[0].Outcome)
	assert.Equal(t, OutcomeOK, report.Results[1].Outcome)
}

func TestDispatch_RejectsUnsafeStoredURL(t *testing.T) {
	o := &scriptedOpener{}
	d := newTestDispatcher(o)

	settings := testSettings(enabledAction("evil", "javascript:alert(1)", 0))
	report := d.Dispatch(context.Background(), "t1", settings)

	require.Len(t, report.Results, 1)
	assert.Equal(t, OutcomeError, report.Results[0].Outcome)
	assert.Empty(t, o.opened, "blocked URL must never reach the opener")
}

func TestDispatch_SkipsDisabled(t *testing.T) {
	o := &scriptedOpener{}
	d := newTestDispatcher(o)

	off := enabledAction("off", "https://example.com/off", 0)
	off.Enabled = false
	settings := testSettings(off, enabledAction("on", "https://example.com/on", 1))

	report := d.Dispatch(context.Background(), "t1", settings)

	require.Len(t, report.Results, 1)
	assert.Equal(t, "on", report.Results[0].ActionID)

	// globally disabled settings dispatch nothing
	settings.Enabled = false
	empty := d.Dispatch(context.Background(), "t1", settings)
	assert.Empty(t, empty.Results)
}

func TestTestURL(t *testing.T) {
	o := &scriptedOpener{}
	d := newTestDispatcher(o)

	require.NoError(t, d.TestURL(context.Background(), "https://example.com"))
	assert.Equal(t, []string{"https://example.com"}, o.opened)

	assert.Error(t, d.TestURL(context.Background(), "javascript:alert(1)"))
}
