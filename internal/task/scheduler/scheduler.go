package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"tasknag-backend/pkg/clock"
)

// Engine is the notification service surface the scheduler drives.
type Engine interface {
	CheckAndNotify(ctx context.Context, now time.Time) error
	ProactiveSummary(ctx context.Context, now time.Time) error
}

// Scheduler owns the timer loops: a minute-granularity tick that resolves and
// fires notifications, and a slower cron-driven proactive cycle. Start/Stop
// are idempotent; the running flag and the engine's dedupe state are the only
// mutable state shared with concurrent command handlers.
type Scheduler struct {
	engine            Engine
	clock             clock.Clock
	tickInterval      time.Duration
	proactiveInterval time.Duration

	mu       sync.Mutex
	running  bool
	stopChan chan struct{}
	cron     *cron.Cron
}

func New(engine Engine, clk clock.Clock, tickInterval, proactiveInterval time.Duration) *Scheduler {
	return &Scheduler{
		engine:            engine,
		clock:             clk,
		tickInterval:      tickInterval,
		proactiveInterval: proactiveInterval,
	}
}

// Start begins both loops. Calling Start on a running scheduler is a no-op.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}
	s.running = true
	s.stopChan = make(chan struct{})

	log.Printf("[Scheduler] Starting notification scheduler (tick: %s, proactive: %s)",
		s.tickInterval, s.proactiveInterval)

	stop := s.stopChan
	go func() {
		// Run immediately on start so a restart never waits a full interval.
		s.tick()

		ticker := time.NewTicker(s.tickInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.tick()
			case <-stop:
				log.Println("[Scheduler] Tick loop stopped")
				return
			}
		}
	}()

	s.cron = cron.New()
	spec := fmt.Sprintf("@every %ds", int(s.proactiveInterval.Seconds()))
	if _, err := s.cron.AddFunc(spec, s.proactive); err != nil {
		log.Printf("[Scheduler] Failed to schedule proactive cycle: %v", err)
	}
	s.cron.Start()
}

// Stop halts both loops. Calling Stop on a stopped scheduler is a no-op.
// In-process dedupe state is simply dropped: a restart may re-fire a pending
// notification but can never permanently suppress one.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}
	s.running = false
	close(s.stopChan)

	cronCtx := s.cron.Stop()
	<-cronCtx.Done()
	log.Println("[Scheduler] Scheduler stopped")
}

// Running reports whether the loops are active.
func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// TriggerNow runs one resolution pass outside the timer, for the manual
// "check notifications now" command. Dedupe state is shared with the tick, so
// a manual check cannot double-fire the same minute.
func (s *Scheduler) TriggerNow(ctx context.Context) error {
	return s.engine.CheckAndNotify(ctx, s.clock.Now())
}

func (s *Scheduler) tick() {
	if err := s.engine.CheckAndNotify(context.Background(), s.clock.Now()); err != nil {
		// A failed tick is logged and skipped; the loop must survive.
		log.Printf("[Scheduler] Tick failed: %v", err)
	}
}

func (s *Scheduler) proactive() {
	if err := s.engine.ProactiveSummary(context.Background(), s.clock.Now()); err != nil {
		log.Printf("[Scheduler] Proactive cycle failed: %v", err)
	}
}
