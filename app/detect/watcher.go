package detect

import (
	"context"
	"errors"
	"time"
)

// Signal is a pollable preference source.
type Signal interface {
	PrefersDark() (bool, error)
}

// Watcher polls a signal and pushes changes to subscribers.
type Watcher struct {
	signal   Signal
	interval time.Duration
}

// NewWatcher makes a watcher polling the signal at the interval.
func NewWatcher(signal Signal, interval time.Duration) *Watcher {
	return &Watcher{signal: signal, interval: interval}
}

// PrefersDark returns the current preference of the underlying signal.
func (w *Watcher) PrefersDark() (bool, error) {
	return w.signal.PrefersDark()
}

// Subscribe starts polling and calls fn each time the preference flips. Failed polls are skipped.
// Each subscription runs its own goroutine, stopped by cancel.
func (w *Watcher) Subscribe(fn func(prefersDark bool)) (cancel func(), err error) {
	if w.interval <= 0 {
		return nil, errors.New("watch interval must be positive")
	}
	last, lastErr := w.signal.PrefersDark()
	known := lastErr == nil

	ctx, cancelCtx := context.WithCancel(context.Background())
	go func() {
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
			dark, err := w.signal.PrefersDark()
			if err != nil || (known && dark == last) {
				continue
			}
			last, known = dark, true
			if ctx.Err() != nil {
				return
			}
			fn(dark)
		}
	}()
	return cancelCtx, nil
}
