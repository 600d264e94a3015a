// Package worker runs the timer-driven maintenance tasks of the booking
// engine: the completion sweep and the abandoned-payment janitor.
package worker

import (
	"context"
	"log"
	"time"

	"github.com/lorenzodiegoyhellow/blocmark-platform-sub000/internal/booking"
)

// Sweeper periodically asks the engine to complete elapsed bookings and to
// purge abandoned payment_pending rows.  Both operations are conditional at
// the storage level, so running them while user requests are in flight is
// safe.
type Sweeper struct {
	engine   *booking.Engine
	interval time.Duration
	stop     chan struct{}
}

// NewSweeper builds a sweeper around the engine.  A non-positive interval
// falls back to one minute.
func NewSweeper(engine *booking.Engine, interval time.Duration) *Sweeper {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Sweeper{
		engine:   engine,
		interval: interval,
		stop:     make(chan struct{}),
	}
}

// Start launches the sweep loop in its own goroutine.
func (s *Sweeper) Start() {
	go s.run()
	log.Printf("sweeper: started (interval %s)", s.interval)
}

// Stop terminates the sweep loop.  Safe to call once.
func (s *Sweeper) Stop() {
	close(s.stop)
	log.Printf("sweeper: stopped")
}

func (s *Sweeper) run() {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s.sweep()
		case <-s.stop:
			return
		}
	}
}

// sweep runs one pass of both maintenance tasks.  Errors are logged, never
// fatal; the next tick retries.
func (s *Sweeper) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	completed, err := s.engine.SweepCompletions(ctx)
	if err != nil {
		log.Printf("sweeper: completion sweep failed: %v", err)
	} else if completed > 0 {
		log.Printf("sweeper: completed %d elapsed bookings", completed)
	}

	purged, err := s.engine.PurgeAbandoned(ctx)
	if err != nil {
		log.Printf("sweeper: abandoned-payment purge failed: %v", err)
	} else if purged > 0 {
		log.Printf("sweeper: purged %d abandoned payment_pending bookings", purged)
	}
}
