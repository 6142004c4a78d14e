package scheduler

import (
	"context"
	"log"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/curalink-dev/curalink/internal/services"
)

// Scheduler runs the periodic clinical trial import from the external
// registry. It is disabled unless TRIAL_SYNC_INTERVAL is set.
type Scheduler struct {
	interval   time.Duration
	conditions []string
	ticker     *time.Ticker
	ctx        context.Context
	cancel     context.CancelFunc
	mu         sync.Mutex
	running    bool
}

func NewScheduler() *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())

	return &Scheduler{
		interval:   syncIntervalFromEnv(),
		conditions: syncConditionsFromEnv(),
		ctx:        ctx,
		cancel:     cancel,
	}
}

// Start begins the sync loop with an immediate first run. It is a no-op when
// no interval or no conditions are configured.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return
	}

	if s.interval <= 0 || len(s.conditions) == 0 {
		log.Println("Trial sync disabled (TRIAL_SYNC_INTERVAL or TRIAL_SYNC_CONDITIONS not set)")
		return
	}

	s.ticker = time.NewTicker(s.interval)
	s.running = true

	go func() {
		s.runSync()

		for {
			select {
			case <-s.ctx.Done():
				return
			case <-s.ticker.C:
				s.runSync()
			}
		}
	}()

	log.Printf("Trial sync scheduled every %s for %d conditions", s.interval, len(s.conditions))
}

func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}

	s.ticker.Stop()
	s.cancel()
	s.running = false

	log.Println("Trial sync stopped")
}

func (s *Scheduler) runSync() {
	if err := services.SyncTrials(s.conditions); err != nil {
		log.Printf("Trial sync failed: %v", err)
	}
}

func syncIntervalFromEnv() time.Duration {
	raw := os.Getenv("TRIAL_SYNC_INTERVAL")

	if raw == "" {
		return 0
	}

	seconds, err := strconv.Atoi(raw)

	if err != nil || seconds <= 0 {
		log.Printf("Invalid TRIAL_SYNC_INTERVAL %q, trial sync disabled", raw)
		return 0
	}

	return time.Duration(seconds) * time.Second
}

func syncConditionsFromEnv() []string {
	raw := os.Getenv("TRIAL_SYNC_CONDITIONS")

	if raw == "" {
		return nil
	}

	var conditions []string

	for _, condition := range strings.Split(raw, ",") {
		trimmed := strings.TrimSpace(condition)

		if trimmed != "" {
			conditions = append(conditions, trimmed)
		}
	}

	return conditions
}
