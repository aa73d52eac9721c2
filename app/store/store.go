// Package store provides key-value storage for console preferences.
package store

import (
	"context"
	"errors"
	"strings"
	"time"
)

// DevicesPrefix is the key prefix of browser device preferences, followed by the device id.
const DevicesPrefix = "devices/"

// ErrNotFound is returned when a key is not found in the store.
var ErrNotFound = errors.New("key not found")

// Entry describes a stored key.
type Entry struct {
	Key       string    `db:"key"`
	Size      int       `db:"size"`
	UpdatedAt time.Time `db:"updated_at"`
}

// KV is a key-value storage.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Scoped exposes part of a KV under a key prefix, e.g. keys of a single browser device.
type Scoped struct {
	kv     KV
	prefix string
}

// NewScoped makes a scoped view. The prefix is normalized to end with a single slash.
func NewScoped(kv KV, prefix string) *Scoped {
	prefix = strings.Trim(strings.TrimSpace(prefix), "/")
	if prefix != "" {
		prefix += "/"
	}
	return &Scoped{kv: kv, prefix: prefix}
}

// Get returns the value of the prefixed key.
func (s *Scoped) Get(ctx context.Context, key string) ([]byte, error) {
	return s.kv.Get(ctx, s.prefix+key) //nolint:wrapcheck // pass through for errors.Is checks
}

// Set stores the value under the prefixed key.
func (s *Scoped) Set(ctx context.Context, key string, value []byte) error {
	return s.kv.Set(ctx, s.prefix+key, value) //nolint:wrapcheck // pass through for errors.Is checks
}

// Key returns the full key for the key in scope.
func (s *Scoped) Key(key string) string {
	return s.prefix + key
}
