package sweeper

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	sweepCycles = promauto.NewCounter(prometheus.CounterOpts{
		Name: "linkshortener_sweep_cycles_total",
		Help: "Total number of completed expiry sweep cycles",
	})
	sweepErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "linkshortener_sweep_errors_total",
		Help: "Total number of expiry sweep cycles that failed",
	})
	sweptLinks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "linkshortener_swept_links_total",
		Help: "Total number of expired links deleted by the sweeper",
	})
	sweptClicks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "linkshortener_swept_clicks_total",
		Help: "Total number of expired click events deleted by the sweeper",
	})
)

// ExpiredDeleter removes rows whose expiry horizon is before now.
// Satisfied by repository.LinkRepository.
type ExpiredDeleter interface {
	DeleteExpired(ctx context.Context, now time.Time) (links int64, clicks int64, err error)
}

// Sweeper periodically deletes expired links and click events. Cycles run
// strictly sequentially on a single goroutine; a failed cycle is logged and
// the next one proceeds on schedule.
type Sweeper struct {
	store    ExpiredDeleter
	interval time.Duration
	stopChan chan struct{}
	running  bool
	mutex    sync.Mutex
}

// New creates a new sweeper with the given cycle interval
func New(store ExpiredDeleter, interval time.Duration) *Sweeper {
	return &Sweeper{
		store:    store,
		interval: interval,
		stopChan: make(chan struct{}),
	}
}

// Start launches the background sweep loop. The first cycle runs
// immediately; subsequent cycles run every interval.
func (s *Sweeper) Start(ctx context.Context) error {
	s.mutex.Lock()
	if s.running {
		s.mutex.Unlock()
		return nil // Already running
	}
	s.running = true
	s.mutex.Unlock()

	go s.run(ctx)
	return nil
}

// Stop stops the background sweep loop
func (s *Sweeper) Stop() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if !s.running {
		return nil
	}

	s.running = false
	close(s.stopChan)

	// Create new channel for potential restart
	s.stopChan = make(chan struct{})
	return nil
}

// run executes sweep cycles until stopped
func (s *Sweeper) run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	// Get a copy of stopChan to avoid race condition with Stop
	s.mutex.Lock()
	stopChan := s.stopChan
	s.mutex.Unlock()

	s.sweep(ctx)

	for {
		select {
		case <-ticker.C:
			s.sweep(ctx)
		case <-stopChan:
			return
		case <-ctx.Done():
			return
		}
	}
}

// sweep runs one cycle, pruning expired links and click events against the
// current time. Errors never stop the loop.
func (s *Sweeper) sweep(ctx context.Context) {
	links, clicks, err := s.store.DeleteExpired(ctx, time.Now())
	if err != nil {
		sweepErrors.Inc()
		log.Printf("[ERROR] Expiry sweep failed: %v", err)
		return
	}

	sweepCycles.Inc()
	sweptLinks.Add(float64(links))
	sweptClicks.Add(float64(clicks))

	if links > 0 || clicks > 0 {
		log.Printf("Expiry sweep removed %d links and %d click events", links, clicks)
	}
}
