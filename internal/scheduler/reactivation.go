// Package scheduler hosts the background loop that promotes
// temporarily-suspended accounts back to active once their suspension
// window has elapsed.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"blogapp/internal/logger"
	"blogapp/internal/repository"
)

// Config is the environment-sourced scheduler configuration.
type Config struct {
	// Interval between scan cycles.
	Interval time.Duration `env:"REACTIVATION_INTERVAL" envDefault:"1h"`
	// SuspensionWindow is how long a suspension lasts before the
	// account becomes eligible for automatic reactivation.
	SuspensionWindow time.Duration `env:"SUSPENSION_WINDOW" envDefault:"120h"`
}

// Reactivator periodically scans for suspended users past the window
// and flips them back to active. Each cycle re-evaluates eligibility
// from scratch, so a failed or repeated cycle is harmless.
type Reactivator struct {
	users    repository.UserRepository
	interval time.Duration
	window   time.Duration
	log      *slog.Logger
}

// New constructs a Reactivator.
func New(users repository.UserRepository, cfg Config, log *slog.Logger) *Reactivator {
	return &Reactivator{
		users:    users,
		interval: cfg.Interval,
		window:   cfg.SuspensionWindow,
		log:      log,
	}
}

// Run blocks until ctx is cancelled, scanning once immediately and
// then on every tick. A failed cycle is logged and retried on the next
// tick; this loop must not be killed by transient store errors.
func (r *Reactivator) Run(ctx context.Context) error {
	r.log.Info("reactivation scheduler started",
		logger.Component("scheduler"),
		slog.Duration("interval", r.interval),
		slog.Duration("window", r.window))

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		if err := r.RunOnce(ctx); err != nil {
			r.log.Error("reactivation cycle failed",
				logger.Component("scheduler"),
				logger.Error(err))
		}

		select {
		case <-ctx.Done():
			r.log.Info("reactivation scheduler stopping", logger.Component("scheduler"))
			return nil
		case <-ticker.C:
		}
	}
}

// RunOnce performs a single scan-and-reactivate cycle. The whole
// eligible set is committed in one batch; on failure everything rolls
// back and the next tick re-qualifies the same users.
func (r *Reactivator) RunOnce(ctx context.Context) error {
	cutoff := time.Now().UTC().Add(-r.window)

	users, err := r.users.ListSuspendedBefore(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("scheduler: list suspended users: %w", err)
	}
	if len(users) == 0 {
		return nil
	}

	ids := make([]int, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
		r.log.Info("reactivating suspended user",
			logger.Component("scheduler"),
			logger.UserID(u.ID),
			slog.String("email", u.Email))
	}

	if err := r.users.Reactivate(ctx, ids); err != nil {
		return fmt.Errorf("scheduler: reactivate %d users: %w", len(ids), err)
	}

	r.log.Info("reactivation cycle complete",
		logger.Component("scheduler"),
		slog.Int("reactivated", len(ids)))
	return nil
}
