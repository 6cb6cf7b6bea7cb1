package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// LapsedExpirer marks factories whose trial or paid plan has ended as expired.
// factory.Repository satisfies it.
type LapsedExpirer interface {
	ExpireLapsed(ctx context.Context, now time.Time) (int64, error)
}

// SweepObserver is notified after each sweep, e.g. to record metrics
type SweepObserver func(ctx context.Context, expired int64, err error)

// ExpirySweeperConfig holds configuration for the expiry sweeper
type ExpirySweeperConfig struct {
	// Interval is how often lapsed subscriptions are swept
	Interval time.Duration

	// RunOnStart performs one sweep immediately when started
	RunOnStart bool

	// Timeout bounds a single sweep
	Timeout time.Duration
}

// DefaultExpirySweeperConfig returns default sweeper configuration
func DefaultExpirySweeperConfig() ExpirySweeperConfig {
	return ExpirySweeperConfig{
		Interval:   time.Hour,
		RunOnStart: true,
		Timeout:    30 * time.Second,
	}
}

// Validate checks the configuration
func (c ExpirySweeperConfig) Validate() error {
	if c.Interval <= 0 {
		return fmt.Errorf("%w: interval must be positive", ErrInvalidConfig)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("%w: timeout must not be negative", ErrInvalidConfig)
	}
	return nil
}

// ExpirySweeper periodically persists the expired status of lapsed
// subscriptions. Status reads already derive expiry from the stored dates, so
// the sweep only keeps the stored status column and admin listings current.
type ExpirySweeper struct {
	config   ExpirySweeperConfig
	expirer  LapsedExpirer
	logger   *zap.Logger
	observer SweepObserver
	now      func() time.Time

	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool
	lastRun   time.Time
}

// NewExpirySweeper creates a new expiry sweeper
func NewExpirySweeper(config ExpirySweeperConfig, expirer LapsedExpirer, logger *zap.Logger) (*ExpirySweeper, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExpirySweeper{
		config:  config,
		expirer: expirer,
		logger:  logger.Named("expiry_sweeper"),
		now:     time.Now,
	}, nil
}

// SetObserver registers a callback invoked after every sweep
func (s *ExpirySweeper) SetObserver(observer SweepObserver) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observer = observer
}

// Start starts the sweep loop
func (s *ExpirySweeper) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = true
	s.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.wg.Add(1)
	go s.runLoop(ctx)

	s.logger.Info("Expiry sweeper started", zap.Duration("interval", s.config.Interval))
	return nil
}

// Stop stops the sweep loop, waiting for an in-flight sweep until ctx is done
func (s *ExpirySweeper) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = false
	s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("Expiry sweeper stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// IsRunning reports whether the loop is active
func (s *ExpirySweeper) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isRunning
}

// LastRun returns the time of the last completed sweep
func (s *ExpirySweeper) LastRun() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastRun
}

func (s *ExpirySweeper) runLoop(ctx context.Context) {
	defer s.wg.Done()

	if s.config.RunOnStart {
		_, _ = s.Sweep(ctx)
	}

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_, _ = s.Sweep(ctx)
		}
	}
}

// Sweep runs a single expiry pass and returns the number of factories expired
func (s *ExpirySweeper) Sweep(ctx context.Context) (int64, error) {
	if s.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.Timeout)
		defer cancel()
	}

	now := s.now()
	expired, err := s.expirer.ExpireLapsed(ctx, now)
	if err != nil {
		err = fmt.Errorf("%w: %v", ErrSweepFailed, err)
		s.logger.Error("Expiry sweep failed", zap.Error(err))
	} else {
		s.mu.Lock()
		s.lastRun = now
		s.mu.Unlock()
		if expired > 0 {
			s.logger.Info("Expired lapsed subscriptions", zap.Int64("count", expired))
		} else {
			s.logger.Debug("Expiry sweep found nothing to expire")
		}
	}

	s.mu.Lock()
	observer := s.observer
	s.mu.Unlock()
	if observer != nil {
		observer(ctx, expired, err)
	}
	return expired, err
}
