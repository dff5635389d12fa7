package instruments

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Source downloads the raw instrument dump. *kite.Client satisfies it.
type Source interface {
	InstrumentsCSV(ctx context.Context, exchange string) ([]byte, error)
}

// Refresher downloads, parses and persists the instrument master.
type Refresher struct {
	source Source
	store  *Store
	// exchanges restricts the download; empty means the full dump.
	exchanges []string
	logger    *slog.Logger
}

// NewRefresher wires a download source to a store.
func NewRefresher(source Source, store *Store, exchanges []string, logger *slog.Logger) *Refresher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Refresher{
		source:    source,
		store:     store,
		exchanges: exchanges,
		logger:    logger.With("component", "instrument-refresher"),
	}
}

// Refresh downloads the configured dumps and replaces the store contents.
func (r *Refresher) Refresh(ctx context.Context) error {
	start := time.Now()

	exchanges := r.exchanges
	if len(exchanges) == 0 {
		exchanges = []string{""}
	}

	var all []Instrument
	for _, exchange := range exchanges {
		data, err := r.source.InstrumentsCSV(ctx, exchange)
		if err != nil {
			return fmt.Errorf("downloading instrument dump for %q: %w", exchange, err)
		}
		parsed, err := ParseCSV(data)
		if err != nil {
			return fmt.Errorf("parsing instrument dump for %q: %w", exchange, err)
		}
		all = append(all, parsed...)
	}

	if err := r.store.ReplaceAll(ctx, all); err != nil {
		return err
	}

	r.logger.Info("instrument master refreshed",
		"instruments", len(all),
		"exchanges", len(exchanges),
		"duration", time.Since(start),
	)
	return nil
}

// Scheduler runs periodic refreshes on a cron schedule.
type Scheduler struct {
	refresher *Refresher
	schedule  string
	logger    *slog.Logger
	cron      *cron.Cron
}

// NewScheduler creates a scheduler. The schedule is a standard five-field
// cron expression, e.g. "30 8 * * 1-5" for 08:30 on weekdays.
func NewScheduler(refresher *Refresher, schedule string, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		refresher: refresher,
		schedule:  schedule,
		logger:    logger.With("component", "instrument-scheduler"),
	}
}

// Start validates the schedule and begins running refreshes in the
// background. Each run gets its own timeout; one failed run only logs.
func (s *Scheduler) Start() error {
	c := cron.New()
	_, err := c.AddFunc(s.schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()
		if err := s.refresher.Refresh(ctx); err != nil {
			s.logger.Error("scheduled refresh failed", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("invalid refresh schedule %q: %w", s.schedule, err)
	}

	s.cron = c
	c.Start()
	s.logger.Info("refresh schedule active", "schedule", s.schedule)
	return nil
}

// Stop halts the schedule. Safe to call before Start.
func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}
