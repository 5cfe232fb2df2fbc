// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package scheduler

import (
	"context"
	"log/slog"
	"time"

	"aidigest/internal/models"
)

// DefaultInterval is how often the driver re-evaluates the schedule when
// not configured otherwise. Polling is deliberately coarse: exact wake-ups
// buy nothing when generation itself takes tens of seconds.
const DefaultInterval = time.Minute

// ScheduleStore is the persistence the driver needs: read the current
// configuration and stamp the last execution time.
type ScheduleStore interface {
	Get(ctx context.Context) (models.ScheduleConfig, error)
	UpdateLastExecuted(ctx context.Context, t time.Time) error
}

// Generator runs content generation for a set of categories. Implemented
// by generator.Orchestrator.
type Generator interface {
	GenerateForAllCategories(ctx context.Context, categories []string) ([]*models.Blog, error)
}

// RunResult describes one completed scheduled run, delivered to the
// optional notifier. Err is nil on full success; Blogs holds whatever was
// persisted either way (partial successes are kept, see generator).
type RunResult struct {
	When       time.Time
	Categories []string
	Blogs      []*models.Blog
	Err        error
}

// Notifier receives run outcomes. The UI layer decides how to surface them.
type Notifier func(RunResult)

// Driver is the cooperative polling scheduler: evaluate immediately on
// start (covering schedules that became due while the service was down),
// then re-evaluate every interval. Cancellation stops future ticks without
// interrupting a run already in flight.
type Driver struct {
	store    ScheduleStore
	gen      Generator
	interval time.Duration
	now      func() time.Time
	notify   Notifier
}

// DriverOption customises a Driver.
type DriverOption func(*Driver)

// WithInterval overrides the polling interval.
func WithInterval(d time.Duration) DriverOption {
	return func(dr *Driver) {
		if d > 0 {
			dr.interval = d
		}
	}
}

// WithNow overrides the clock. Used by tests.
func WithNow(now func() time.Time) DriverOption {
	return func(dr *Driver) { dr.now = now }
}

// WithNotifier registers a callback for run outcomes.
func WithNotifier(n Notifier) DriverOption {
	return func(dr *Driver) { dr.notify = n }
}

// NewDriver creates a Driver. Call Run to start it.
func NewDriver(store ScheduleStore, gen Generator, opts ...DriverOption) *Driver {
	d := &Driver{
		store:    store,
		gen:      gen,
		interval: DefaultInterval,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Run blocks, evaluating the schedule immediately and then on every tick,
// until ctx is cancelled. A run in progress when ctx is cancelled finishes;
// it is merely not rescheduled.
func (d *Driver) Run(ctx context.Context) {
	slog.Info("scheduler started", "interval", d.interval.String())

	d.tick(ctx)

	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			d.tick(ctx)
		case <-ctx.Done():
			slog.Info("scheduler stopped")
			return
		}
	}
}

// tick evaluates the schedule once and runs generation if due.
func (d *Driver) tick(ctx context.Context) {
	cfg, err := d.store.Get(ctx)
	if err != nil {
		slog.Warn("scheduler: failed to load schedule", "error", err)
		return
	}

	now := d.now()
	if !IsDue(cfg, now) {
		return
	}

	slog.Info("schedule due, generating",
		"frequency", cfg.Frequency,
		"categories", cfg.Categories,
	)

	// Detach from the loop context so cancellation during a run does not
	// abort in-flight generation.
	runCtx := context.WithoutCancel(ctx)

	blogs, genErr := d.gen.GenerateForAllCategories(runCtx, cfg.Categories)

	// Stamp last-executed unconditionally, even on partial failure, so a
	// broken provider cannot put the driver into a tight retry loop.
	if err := d.store.UpdateLastExecuted(runCtx, now); err != nil {
		slog.Error("scheduler: failed to update last-executed time", "error", err)
	}

	if genErr != nil {
		slog.Error("scheduled generation failed", "error", genErr, "generated", len(blogs))
	} else {
		slog.Info("scheduled generation complete", "generated", len(blogs))
	}

	if d.notify != nil {
		d.notify(RunResult{When: now, Categories: cfg.Categories, Blogs: blogs, Err: genErr})
	}
}
