package sweeper

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"shop-backend/internal/domain/cart"
	"shop-backend/internal/pkg/clock"
	"shop-backend/internal/pkg/errs"
	"shop-backend/internal/pkg/metrics"
	"shop-backend/internal/usecase/commands"
	"shop-backend/internal/usecase/shared"
)

type ExpiredCartLister interface {
	ListExpiredIDs(ctx context.Context, now time.Time, limit int) ([]cart.ID, error)
}

type Config struct {
	Interval    time.Duration
	BatchSize   int
	Concurrency int
}

// Result counts what one sweep did.
type Result struct {
	Released int
	Skipped  int
	Failed   int
}

// Sweeper releases carts past their expiry through the cart engine. It is an
// owned task: Start launches the loop and Stop waits for it to exit.
type Sweeper struct {
	lister  ExpiredCartLister
	carts   commands.CartCommands
	clock   clock.Clock
	cfg     Config
	metrics *metrics.Metrics
	logger  *slog.Logger

	mu      sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
	running bool
}

func New(
	lister ExpiredCartLister,
	carts commands.CartCommands,
	clock clock.Clock,
	cfg Config,
	m *metrics.Metrics,
	logger *slog.Logger,
) *Sweeper {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 100
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 1
	}
	return &Sweeper{
		lister:  lister,
		carts:   carts,
		clock:   clock,
		cfg:     cfg,
		metrics: m,
		logger:  logger,
	}
}

func (s *Sweeper) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.done = make(chan struct{})
	s.running = true

	go s.loop(ctx, s.done)
	s.logger.Info("cart sweeper started", "interval", s.cfg.Interval.String())
}

// Stop cancels the loop and waits for the in-flight sweep, bounded by ctx.
func (s *Sweeper) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	s.cancel()
	done := s.done
	s.running = false
	s.mu.Unlock()

	select {
	case <-done:
		s.logger.Info("cart sweeper stopped")
		return nil
	case <-ctx.Done():
		return errs.Wrap(ctx.Err(), "sweeper did not stop in time")
	}
}

func (s *Sweeper) loop(ctx context.Context, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.SweepOnce(ctx); err != nil && ctx.Err() == nil {
				s.logger.Error("cart sweep failed", "error", err.Error())
			}
		}
	}
}

// SweepOnce releases one batch of expired carts. A cart that vanished or was
// extended since the scan is skipped; one cart failing does not stop the rest.
func (s *Sweeper) SweepOnce(ctx context.Context) (Result, error) {
	start := time.Now()
	defer func() { s.metrics.SweepDuration.Observe(time.Since(start).Seconds()) }()

	ids, err := s.lister.ListExpiredIDs(ctx, s.clock.Now(), s.cfg.BatchSize)
	if err != nil {
		return Result{}, errs.Wrap(err, "list expired carts")
	}
	if len(ids) == 0 {
		return Result{}, nil
	}

	var (
		mu  sync.Mutex
		res Result
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Concurrency)

	for _, id := range ids {
		g.Go(func() error {
			outcome := s.release(gctx, id)
			mu.Lock()
			defer mu.Unlock()
			switch outcome {
			case outcomeReleased:
				res.Released++
			case outcomeSkipped:
				res.Skipped++
			default:
				res.Failed++
			}
			return nil
		})
	}
	_ = g.Wait()

	s.metrics.SweptCarts.Add(float64(res.Released))
	s.metrics.SweepFailures.Add(float64(res.Failed))
	if res.Released > 0 || res.Failed > 0 {
		s.logger.Info("cart sweep finished",
			"released", res.Released,
			"skipped", res.Skipped,
			"failed", res.Failed,
		)
	}
	return res, nil
}

type outcome int

const (
	outcomeReleased outcome = iota
	outcomeSkipped
	outcomeFailed
)

func (s *Sweeper) release(ctx context.Context, id cart.ID) outcome {
	_, err := s.carts.ExpireCart(ctx, id)
	switch {
	case err == nil:
		return outcomeReleased
	case errs.Is(err, shared.ErrCartNotFound), errs.Is(err, commands.ErrCartNotExpired):
		return outcomeSkipped
	default:
		s.logger.Warn("failed to release expired cart", "cart_id", id, "error", err.Error())
		return outcomeFailed
	}
}
