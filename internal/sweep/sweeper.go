// Package sweep runs the periodic scan that advances time-dependent
// entity state, independent of client requests.
package sweep

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/game-economy/internal/config"
)

// AuctionSweeper is the engine-side entry point for one sweep tick
type AuctionSweeper interface {
	SweepExpiredAuctions() int
}

// Sweeper drives the auction sweep on a fixed interval
type Sweeper struct {
	engine  AuctionSweeper
	config  *config.SweepConfig
	logger  *slog.Logger
	stopCh  chan struct{}
	doneCh  chan struct{}
	mu      sync.Mutex
	running bool
}

// NewSweeper creates a new sweeper
func NewSweeper(engine AuctionSweeper, cfg *config.SweepConfig, logger *slog.Logger) *Sweeper {
	return &Sweeper{
		engine: engine,
		config: cfg,
		logger: logger,
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
	}
}

// Start begins the background sweep loop
func (s *Sweeper) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = true
	s.mu.Unlock()

	s.logger.Info("auction sweeper started", "interval", s.config.Interval)

	go s.run(ctx)
	return nil
}

// Stop stops the background sweep loop
func (s *Sweeper) Stop() error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	s.mu.Unlock()

	close(s.stopCh)
	<-s.doneCh

	s.mu.Lock()
	s.running = false
	s.mu.Unlock()

	s.logger.Info("auction sweeper stopped")
	return nil
}

// run is the main sweeper loop. Each tick is serialized against action
// handlers by the engine's own lock, so an expiry can never race a bid.
func (s *Sweeper) run(ctx context.Context) {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stopCh:
			return
		case <-ticker.C:
			s.tick()
		}
	}
}

func (s *Sweeper) tick() {
	start := time.Now()
	ended := s.engine.SweepExpiredAuctions()
	if ended > 0 {
		s.logger.Info("sweep tick completed",
			"duration", time.Since(start),
			"ended", ended,
		)
	}
}

// IsRunning returns whether the sweeper is currently running
func (s *Sweeper) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// RunOnce runs a single sweep tick (useful for manual triggers)
func (s *Sweeper) RunOnce() {
	s.tick()
}
