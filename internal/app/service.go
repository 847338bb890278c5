// Package service provides the dashboard controller that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/okian/podium/internal/domain/chart"
	"github.com/okian/podium/internal/domain/medal"
	"github.com/okian/podium/internal/domain/summary"
	"github.com/okian/podium/pkg/logger"
	"github.com/okian/podium/pkg/metrics"
)

// Dashboard is the result of one selector update: all three charts for the
// same selector, computed from the same subset.
type Dashboard struct {
	Selector    string     `json:"selector"`
	Records     int        `json:"records"`
	Trend       chart.Spec `json:"trend"`
	Leaderboard chart.Spec `json:"leaderboard"`
	Gender      chart.Spec `json:"gender"`
}

// Charts returns the three specs in display order.
func (d Dashboard) Charts() []chart.Spec {
	return []chart.Spec{d.Trend, d.Leaderboard, d.Gender}
}

// Chart returns the spec with the given name.
func (d Dashboard) Chart(name chart.Name) (chart.Spec, error) {
	switch name {
	case chart.NameTrend:
		return d.Trend, nil
	case chart.NameLeaderboard:
		return d.Leaderboard, nil
	case chart.NameGender:
		return d.Gender, nil
	default:
		return chart.Spec{}, fmt.Errorf("%w: %q", chart.ErrUnknownChart, name)
	}
}

// Service owns the selected sport and recomputes the dashboard on every
// selector transition.
type Service struct {
	mu sync.RWMutex

	dataset *medal.Dataset

	// State
	selector   string
	current    Dashboard
	updates    int
	lastUpdate time.Time
	started    bool

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithDataset sets the medal dataset the dashboard is computed from.
func WithDataset(d *medal.Dataset) Option {
	return func(s *Service) {
		s.dataset = d
	}
}

// New constructs a new Service. The selector starts at medal.All.
func New(opts ...Option) *Service {
	s := &Service{
		selector: medal.All,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start computes the initial "All" dashboard. It is safe to call more than once.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}
	if s.dataset == nil {
		return ErrNoDataset
	}

	s.logger.Info(ctx, "starting dashboard service...",
		logger.Int("records", s.dataset.Len()),
		logger.Int("sports", len(s.dataset.Sports())),
	)
	metrics.SetDataset(s.dataset.Len(), len(s.dataset.Sports()))

	d, err := s.Build(ctx, medal.All)
	if err != nil {
		return fmt.Errorf("initial dashboard: %w", err)
	}
	s.selector = medal.All
	s.current = d
	s.lastUpdate = time.Now()
	s.started = true

	s.logger.Info(ctx, "dashboard service started", logger.String("selector", s.selector))
	return nil
}

// Stop marks the service as stopped.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.started = false
	if s.logger != nil {
		s.logger.Info(context.Background(), "dashboard service stopped")
	}
}

// Select is the single selector transition: it stores sport and returns
// the three charts computed for it. An unknown sport is not an error; it
// yields empty charts.
func (s *Service) Select(ctx context.Context, sport string) (Dashboard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return Dashboard{}, ErrNotStarted
	}

	kind := s.selectorKind(sport)
	if kind == metrics.SelectorUnknown {
		s.logger.Warn(ctx, "selector matches no sport", logger.String("selector", sport))
	}

	d, err := s.Build(ctx, sport)
	if err != nil {
		return Dashboard{}, err
	}

	s.selector = sport
	s.current = d
	s.updates++
	s.lastUpdate = time.Now()
	metrics.RecordSelectorChange(kind)

	s.logger.Debug(ctx, "selector updated",
		logger.String("selector", sport),
		logger.Int("records", d.Records),
	)
	return d, nil
}

// Current returns the dashboard for the current selector.
func (s *Service) Current(_ context.Context) (Dashboard, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.started {
		return Dashboard{}, ErrNotStarted
	}
	return s.current, nil
}

// Selector returns the current selector.
func (s *Service) Selector() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selector
}

// Options returns the dropdown options: "All" followed by the sorted sports.
func (s *Service) Options() []string {
	return s.dataset.Options()
}

// Build runs filter, aggregate and build for sport without touching the
// selector. The three chart pipelines share only the read-only subset and
// run concurrently.
func (s *Service) Build(ctx context.Context, sport string) (Dashboard, error) {
	start := time.Now()
	subset := medal.Filter(s.dataset, sport)

	d := Dashboard{Selector: sport, Records: len(subset)}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		d.Trend = chart.TrendChart(sport, summary.Trend(subset))
		return nil
	})
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		d.Leaderboard = chart.LeaderboardChart(sport, summary.Leaderboard(subset))
		return nil
	})
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		d.Gender = chart.GenderChart(sport, summary.Gender(subset))
		return nil
	})
	if err := g.Wait(); err != nil {
		return Dashboard{}, fmt.Errorf("build dashboard %q: %w", sport, err)
	}

	metrics.RecordPipeline(float64(time.Since(start).Microseconds())/1000, len(subset) == 0)
	return d, nil
}

func (s *Service) selectorKind(sport string) string {
	switch {
	case sport == medal.All:
		return metrics.SelectorAll
	case s.dataset.HasSport(sport):
		return metrics.SelectorSport
	default:
		return metrics.SelectorUnknown
	}
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":  s.started,
		"records":  s.dataset.Len(),
		"sports":   len(s.dataset.Sports()),
		"selector": s.selector,
		"updates":  s.updates,
	}
	if s.started {
		stats["lastUpdate"] = s.lastUpdate.UTC().Format(time.RFC3339)
		stats["selectedRecords"] = s.current.Records
	}
	return stats
}
