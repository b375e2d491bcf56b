package watcher

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Store is the part of the last-entry store the watcher needs.
type Store interface {
	Read() (time.Time, bool, error)
}

// Watcher periodically checks how long ago the last time entry ended and
// reminds the user when the gap exceeds the threshold.
type Watcher struct {
	store     Store
	notifier  Notifier
	interval  time.Duration
	threshold time.Duration
	logger    *slog.Logger
	now       func() time.Time
}

// New creates a watcher. Interval controls how often the store is checked,
// threshold the logging gap that triggers a reminder.
func New(store Store, notifier Notifier, interval, threshold time.Duration, logger *slog.Logger) *Watcher {
	return &Watcher{
		store:     store,
		notifier:  notifier,
		interval:  interval,
		threshold: threshold,
		logger:    logger,
		now:       time.Now,
	}
}

// Run checks immediately and then on every interval tick until the context
// is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	w.logger.Info("watcher started",
		"interval", w.interval,
		"threshold", w.threshold)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.Check()
	for {
		select {
		case <-ctx.Done():
			w.logger.Info("watcher stopped")
			return ctx.Err()
		case <-ticker.C:
			w.Check()
		}
	}
}

// Check reads the last-entry store once and sends a reminder when the gap
// since the last entry exceeds the threshold.
func (w *Watcher) Check() {
	stamp, ok, err := w.store.Read()
	if err != nil {
		w.logger.Warn("could not read last-entry state", "error", err)
		return
	}
	if !ok {
		w.logger.Debug("no last entry recorded, nothing to remind about")
		return
	}

	gap := w.now().Sub(stamp)
	if gap < 0 {
		// The recorded entry ends in the future; time is still being logged.
		w.logger.Debug("last entry still running", "ends", stamp)
		return
	}
	if gap <= w.threshold {
		w.logger.Debug("within threshold", "gap", gap)
		return
	}

	message := fmt.Sprintf("Last entry ended %s ago. Time to log your work.", roundGap(gap))
	if err := w.notifier.Notify("Synk", message); err != nil {
		w.logger.Warn("could not deliver reminder", "error", err)
		return
	}
	w.logger.Info("reminder sent", "gap", gap)
}

func roundGap(gap time.Duration) time.Duration {
	return gap.Round(time.Minute)
}
