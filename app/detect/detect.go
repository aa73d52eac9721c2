// Package detect provides operating system color scheme signals: detectors for the environment,
// the desktop settings and the terminal background, a chain picking the first one that answers,
// a polling watcher pushing changes, and the client hint of a browser request.
package detect

import (
	"context"
	"errors"
	"time"

	log "github.com/go-pkgz/lgr"
)

// ErrUndetected is returned when no detector could tell the preference.
var ErrUndetected = errors.New("color scheme preference undetected")

// DefaultTimeout limits a single detection pass of the chain.
const DefaultTimeout = 2 * time.Second

// Detector reports the "prefers dark" preference from a single source.
// ok is false if the source is unavailable or has no opinion.
type Detector interface {
	Name() string
	Detect(ctx context.Context) (prefersDark, ok bool)
}

// Chain asks detectors in order and returns the first answer.
type Chain struct {
	detectors []Detector
	timeout   time.Duration
}

// NewChain makes a chain with the given detection timeout, DefaultTimeout if zero.
func NewChain(timeout time.Duration, detectors ...Detector) *Chain {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Chain{detectors: detectors, timeout: timeout}
}

// Default makes the chain of env variable, desktop settings and terminal background detectors.
func Default(envVar string) *Chain {
	return NewChain(DefaultTimeout, NewEnvDetector(envVar), NewDesktopDetector(), NewTerminalDetector())
}

// PrefersDark runs detectors in order, ErrUndetected if none answered.
func (c *Chain) PrefersDark() (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()
	for _, d := range c.detectors {
		if dark, ok := d.Detect(ctx); ok {
			log.Printf("[DEBUG] color scheme from %s, dark=%v", d.Name(), dark)
			return dark, nil
		}
	}
	return false, ErrUndetected
}
