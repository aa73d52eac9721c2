// Package theme keeps the user's light/dark preference. Store combines the persisted theme mode with
// the live OS preference and notifies listeners when the effective theme changes, Reflector projects
// the effective theme onto a root element class list.
package theme

import (
	"context"
	"sync"

	log "github.com/go-pkgz/lgr"

	"github.com/umputun/gpt-load-console/app/enum"
)

//go:generate moq -out mocks/storage.go -pkg mocks -skip-ensure -fmt goimports . Storage
//go:generate moq -out mocks/signal.go -pkg mocks -skip-ensure -fmt goimports . SystemSignal

// DefaultKey is the storage key of the theme mode.
const DefaultKey = "gpt-load-theme-mode"

// Storage is a key-value storage for the theme mode. Any error means the storage is unavailable.
type Storage interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Options defines store parameters.
type Options struct {
	Key string // storage key, DefaultKey if empty
}

// Store holds the theme mode and the system theme, and derives the effective theme from them.
// No method returns an error: storage and signal failures fall back to defaults.
type Store struct {
	storage Storage
	signal  SystemSignal
	key     string

	saveMu       sync.Mutex // orders mode changes with their writes, taken before mu
	mu           sync.Mutex
	mode         enum.ThemeMode
	system       enum.ActualTheme
	listeners    []*listener
	lastID       int
	pending      []event
	delivering   bool
	subscribed   bool
	disposed     bool
	cancelSignal func()
}

type listener struct {
	id int
	fn func(enum.ActualTheme)
}

// event is a delivery of the effective theme; target limits it to a single listener.
type event struct {
	theme  enum.ActualTheme
	target *listener
}

// New makes a store with auto mode and light system theme. Call Initialize to load the persisted
// mode and attach to the system signal. Nil storage or signal act as unavailable.
func New(storage Storage, signal SystemSignal, opts Options) *Store {
	res := &Store{
		storage: storage,
		signal:  signal,
		key:     opts.Key,
		mode:    enum.ThemeModeAuto,
		system:  enum.ActualThemeLight,
	}
	if res.key == "" {
		res.key = DefaultKey
	}
	return res
}

// Initialize loads the persisted mode, snapshots the system theme and subscribes to system changes.
// Unknown stored values and storage errors give auto. Repeated calls reload the mode but subscribe once.
func (s *Store) Initialize(ctx context.Context) enum.ThemeMode {
	mode := s.load(ctx)
	system := s.snapshot()

	s.mu.Lock()
	before := s.effectiveLocked()
	s.mode, s.system = mode, system
	s.queueIfChangedLocked(before)
	subscribe := !s.subscribed && !s.disposed
	s.subscribed = true
	s.mu.Unlock()

	if subscribe {
		s.subscribe()
	}
	s.deliver()
	return mode
}

// Mode returns the current theme mode.
func (s *Store) Mode() enum.ThemeMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// SystemTheme returns the last known system theme.
func (s *Store) SystemTheme() enum.ActualTheme {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.system
}

// EffectiveTheme returns the theme to render: the system theme in auto mode, the mode itself otherwise.
func (s *Store) EffectiveTheme() enum.ActualTheme {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.effectiveLocked()
}

// SetMode changes the mode and persists it. A failed write keeps the in-memory change.
// Invalid modes are ignored.
func (s *Store) SetMode(ctx context.Context, mode enum.ThemeMode) {
	if !mode.IsValid() {
		log.Printf("[DEBUG] ignore invalid theme mode %q", mode.String())
		return
	}
	s.setMode(ctx, func(enum.ThemeMode) enum.ThemeMode { return mode })
}

// CycleMode advances the mode by one step of auto -> light -> dark -> auto.
func (s *Store) CycleMode(ctx context.Context) {
	s.setMode(ctx, func(cur enum.ThemeMode) enum.ThemeMode { return cur.Next() })
}

// setMode applies next to the current mode and persists the result. Concurrent calls are serialized
// up to the write, so storage always ends with the last in-memory mode.
func (s *Store) setMode(ctx context.Context, next func(cur enum.ThemeMode) enum.ThemeMode) {
	s.saveMu.Lock()
	s.mu.Lock()
	before := s.effectiveLocked()
	mode := next(s.mode)
	s.mode = mode
	s.queueIfChangedLocked(before)
	s.mu.Unlock()

	s.save(ctx, mode)
	s.saveMu.Unlock()
	s.deliver()
}

// Subscribe registers fn to be called with the new effective theme every time it changes value.
// The returned func removes the registration.
func (s *Store) Subscribe(fn func(enum.ActualTheme)) (unsubscribe func()) {
	s.mu.Lock()
	l := s.addLocked(fn)
	s.mu.Unlock()
	return func() { s.remove(l) }
}

// Watch is Subscribe which also delivers the current effective theme to fn right away.
func (s *Store) Watch(fn func(enum.ActualTheme)) (unsubscribe func()) {
	s.mu.Lock()
	l := s.addLocked(fn)
	s.pending = append(s.pending, event{theme: s.effectiveLocked(), target: l})
	s.mu.Unlock()

	s.deliver()
	return func() { s.remove(l) }
}

// Dispose detaches from the system signal and drops all listeners. Getters and SetMode keep working.
func (s *Store) Dispose() {
	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		return
	}
	s.disposed = true
	s.listeners = nil
	s.pending = nil
	cancel := s.cancelSignal
	s.cancelSignal = nil
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
}

// onSystemChange is the system signal callback.
func (s *Store) onSystemChange(prefersDark bool) {
	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		return
	}
	before := s.effectiveLocked()
	s.system = enum.ActualThemeFromDark(prefersDark)
	s.queueIfChangedLocked(before)
	s.mu.Unlock()

	s.deliver()
}

func (s *Store) load(ctx context.Context) enum.ThemeMode {
	if s.storage == nil {
		return enum.ThemeModeAuto
	}
	raw, err := s.storage.Get(ctx, s.key)
	if err != nil {
		log.Printf("[DEBUG] can't read theme mode %q, use auto: %v", s.key, err)
		return enum.ThemeModeAuto
	}
	if m, ok := enum.ThemeModeExact(string(raw)); ok {
		return m
	}
	log.Printf("[DEBUG] unknown theme mode %q stored under %q, use auto", string(raw), s.key)
	return enum.ThemeModeAuto
}

func (s *Store) save(ctx context.Context, mode enum.ThemeMode) {
	if s.storage == nil {
		return
	}
	if err := s.storage.Set(ctx, s.key, []byte(mode.String())); err != nil {
		log.Printf("[DEBUG] can't persist theme mode %s: %v", mode, err)
	}
}

func (s *Store) snapshot() enum.ActualTheme {
	if s.signal == nil {
		return enum.ActualThemeLight
	}
	dark, err := s.signal.PrefersDark()
	if err != nil {
		log.Printf("[DEBUG] system theme unknown, use light: %v", err)
		return enum.ActualThemeLight
	}
	return enum.ActualThemeFromDark(dark)
}

// subscribe attaches to the system signal: modern api first, legacy api next, static snapshot otherwise.
func (s *Store) subscribe() {
	if s.signal == nil {
		return
	}
	if n, ok := s.signal.(ChangeNotifier); ok {
		cancel, err := n.Subscribe(s.onSystemChange)
		if err == nil {
			s.mu.Lock()
			if s.disposed {
				s.mu.Unlock()
				if cancel != nil {
					cancel()
				}
				return
			}
			s.cancelSignal = cancel
			s.mu.Unlock()
			return
		}
		log.Printf("[DEBUG] system theme subscription failed: %v", err)
	}
	if l, ok := s.signal.(LegacyNotifier); ok {
		l.AddListener(s.onSystemChange)
		return
	}
	log.Printf("[DEBUG] system theme changes not supported, keep snapshot")
}

func (s *Store) effectiveLocked() enum.ActualTheme {
	return s.mode.Resolve(s.system)
}

func (s *Store) queueIfChangedLocked(before enum.ActualTheme) {
	if after := s.effectiveLocked(); after != before {
		s.pending = append(s.pending, event{theme: after})
	}
}

func (s *Store) addLocked(fn func(enum.ActualTheme)) *listener {
	s.lastID++
	l := &listener{id: s.lastID, fn: fn}
	if !s.disposed {
		s.listeners = append(s.listeners, l)
	}
	return l
}

func (s *Store) remove(l *listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, v := range s.listeners {
		if v.id == l.id {
			s.listeners = append(s.listeners[:i:i], s.listeners[i+1:]...)
			return
		}
	}
}

// deliver drains pending events in order. Only one goroutine delivers at a time, changes made by
// listeners or by other goroutines meanwhile are queued and delivered by the active deliverer.
func (s *Store) deliver() {
	s.mu.Lock()
	if s.delivering {
		s.mu.Unlock()
		return
	}
	s.delivering = true
	for len(s.pending) > 0 {
		ev := s.pending[0]
		s.pending = s.pending[1:]
		targets := s.targetsLocked(ev)
		s.mu.Unlock()
		for _, l := range targets {
			l.fn(ev.theme)
		}
		s.mu.Lock()
	}
	s.delivering = false
	s.mu.Unlock()
}

// targetsLocked returns listeners still registered for the event.
func (s *Store) targetsLocked(ev event) []*listener {
	if ev.target == nil {
		return append([]*listener(nil), s.listeners...)
	}
	for _, l := range s.listeners {
		if l.id == ev.target.id {
			return []*listener{l}
		}
	}
	return nil
}
