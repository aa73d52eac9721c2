package theme

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/gpt-load-console/app/enum"
	"github.com/umputun/gpt-load-console/app/theme/mocks"
)

func TestStore_Initialize(t *testing.T) {
	tests := []struct {
		name     string
		stored   string
		missing  bool
		expected enum.ThemeMode
	}{
		{name: "auto", stored: "auto", expected: enum.ThemeModeAuto},
		{name: "light", stored: "light", expected: enum.ThemeModeLight},
		{name: "dark", stored: "dark", expected: enum.ThemeModeDark},
		{name: "invalid value", stored: "purple", expected: enum.ThemeModeAuto},
		{name: "empty value", stored: "", expected: enum.ThemeModeAuto},
		{name: "case variant", stored: "Dark", expected: enum.ThemeModeAuto},
		{name: "alias is not a stored value", stored: "system", expected: enum.ThemeModeAuto},
		{name: "missing key", missing: true, expected: enum.ThemeModeAuto},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			st := newMemStorage()
			if !tc.missing {
				st.data[DefaultKey] = []byte(tc.stored)
			}
			s := New(st, StaticSignal(false), Options{})
			defer s.Dispose()
			assert.Equal(t, tc.expected, s.Initialize(context.Background()))
			assert.Equal(t, tc.expected, s.Mode())
		})
	}
}

func TestStore_InitializeStorageUnavailable(t *testing.T) {
	st := &mocks.StorageMock{
		GetFunc: func(context.Context, string) ([]byte, error) { return nil, errors.New("storage disabled") },
		SetFunc: func(context.Context, string, []byte) error { return errors.New("storage disabled") },
	}
	s := New(st, StaticSignal(true), Options{Key: "custom-key"})
	defer s.Dispose()

	assert.Equal(t, enum.ThemeModeAuto, s.Initialize(context.Background()))
	require.Len(t, st.GetCalls(), 1)
	assert.Equal(t, "custom-key", st.GetCalls()[0].Key)

	s.SetMode(context.Background(), enum.ThemeModeLight)
	assert.Equal(t, enum.ThemeModeLight, s.Mode(), "in-memory change survives failed write")
	assert.Equal(t, enum.ActualThemeLight, s.EffectiveTheme())
	require.Len(t, st.SetCalls(), 1)
	assert.Equal(t, []byte("light"), st.SetCalls()[0].Value)
}

func TestStore_NilCollaborators(t *testing.T) {
	s := New(nil, nil, Options{})
	assert.Equal(t, enum.ThemeModeAuto, s.Initialize(context.Background()))
	assert.Equal(t, enum.ActualThemeLight, s.SystemTheme())
	s.CycleMode(context.Background())
	assert.Equal(t, enum.ThemeModeLight, s.Mode())
	s.Dispose()
}

func TestStore_InvalidStoredValueFollowsDarkSystem(t *testing.T) {
	st := newMemStorage()
	st.data[DefaultKey] = []byte("purple")
	s := New(st, StaticSignal(true), Options{})
	defer s.Dispose()

	assert.Equal(t, enum.ThemeModeAuto, s.Initialize(context.Background()))
	assert.Equal(t, enum.ActualThemeDark, s.EffectiveTheme())
}

func TestStore_SignalError(t *testing.T) {
	sig := &mocks.SystemSignalMock{PrefersDarkFunc: func() (bool, error) { return false, errors.New("no media query") }}
	s := New(newMemStorage(), sig, Options{})
	defer s.Dispose()

	s.Initialize(context.Background())
	assert.Equal(t, enum.ActualThemeLight, s.SystemTheme())
	assert.Len(t, sig.PrefersDarkCalls(), 1)
}

func TestStore_EffectiveTheme(t *testing.T) {
	for _, mode := range enum.ThemeModeValues {
		for _, dark := range []bool{false, true} {
			t.Run(mode.String()+"/"+enum.ActualThemeFromDark(dark).String(), func(t *testing.T) {
				st := newMemStorage()
				st.data[DefaultKey] = []byte(mode.String())
				sig := &mocks.SystemSignalMock{PrefersDarkFunc: func() (bool, error) { return dark, nil }}
				s := New(st, sig, Options{})
				defer s.Dispose()
				s.Initialize(context.Background())

				want := enum.ActualThemeFromDark(dark)
				if mode != enum.ThemeModeAuto {
					want = enum.MustActualTheme(mode.String())
				}
				first, second := s.EffectiveTheme(), s.EffectiveTheme()
				assert.Equal(t, want, first)
				assert.Equal(t, first, second, "repeated reads are stable")
				assert.Len(t, sig.PrefersDarkCalls(), 1, "derivation doesn't query the signal")
			})
		}
	}
}

func TestStore_CycleMode(t *testing.T) {
	st := newMemStorage()
	s := New(st, StaticSignal(false), Options{})
	defer s.Dispose()
	s.Initialize(context.Background())

	expected := []enum.ThemeMode{enum.ThemeModeLight, enum.ThemeModeDark, enum.ThemeModeAuto, enum.ThemeModeLight}
	for _, want := range expected {
		s.CycleMode(context.Background())
		assert.Equal(t, want, s.Mode())
		assert.Equal(t, want.String(), string(st.get(DefaultKey)), "persisted on every change")
	}
}

func TestStore_SetModeSurvivesReload(t *testing.T) {
	st := newMemStorage()
	for _, m := range enum.ThemeModeValues {
		s := New(st, StaticSignal(true), Options{})
		s.Initialize(context.Background())
		s.SetMode(context.Background(), m)
		s.Dispose()

		reloaded := New(st, StaticSignal(true), Options{})
		assert.Equal(t, m, reloaded.Initialize(context.Background()))
		reloaded.Dispose()
	}
}

func TestStore_SetModeInvalidIgnored(t *testing.T) {
	st := newMemStorage()
	s := New(st, StaticSignal(false), Options{})
	defer s.Dispose()
	s.Initialize(context.Background())
	s.SetMode(context.Background(), enum.ThemeModeDark)

	s.SetMode(context.Background(), enum.ThemeMode{})
	assert.Equal(t, enum.ThemeModeDark, s.Mode())
	assert.Equal(t, "dark", string(st.get(DefaultKey)))
}

func TestStore_SystemChanges(t *testing.T) {
	t.Run("auto follows system", func(t *testing.T) {
		sig := &modernSignal{}
		s := New(newMemStorage(), sig, Options{})
		defer s.Dispose()
		s.Initialize(context.Background())

		var got []enum.ActualTheme
		s.Subscribe(func(th enum.ActualTheme) { got = append(got, th) })

		sig.fire(true)
		assert.Equal(t, enum.ActualThemeDark, s.SystemTheme())
		assert.Equal(t, enum.ActualThemeDark, s.EffectiveTheme())
		sig.fire(false)
		assert.Equal(t, []enum.ActualTheme{enum.ActualThemeDark, enum.ActualThemeLight}, got)
	})

	t.Run("explicit mode ignores system", func(t *testing.T) {
		st := newMemStorage()
		st.data[DefaultKey] = []byte("light")
		sig := &modernSignal{}
		s := New(st, sig, Options{})
		defer s.Dispose()
		s.Initialize(context.Background())

		calls := 0
		s.Subscribe(func(enum.ActualTheme) { calls++ })
		sig.fire(true)
		assert.Equal(t, enum.ActualThemeDark, s.SystemTheme())
		assert.Equal(t, enum.ActualThemeLight, s.EffectiveTheme())
		assert.Zero(t, calls, "effective theme didn't change")

		// switching to auto picks up the updated system theme
		s.SetMode(context.Background(), enum.ThemeModeAuto)
		assert.Equal(t, enum.ActualThemeDark, s.EffectiveTheme())
		assert.Equal(t, 1, calls)
	})
}

func TestStore_SubscriptionFallback(t *testing.T) {
	t.Run("modern api", func(t *testing.T) {
		sig := &modernSignal{}
		s := New(newMemStorage(), sig, Options{})
		s.Initialize(context.Background())
		assert.Equal(t, 1, sig.subscribers())
		s.Dispose()
		assert.Equal(t, 1, sig.cancelled)
	})

	t.Run("modern api fails, legacy api used", func(t *testing.T) {
		sig := &dualSignal{modernSignal: &modernSignal{err: errors.New("not supported")}}
		s := New(newMemStorage(), sig, Options{})
		defer s.Dispose()
		s.Initialize(context.Background())
		require.Len(t, sig.legacy, 1)

		sig.legacy[0](true)
		assert.Equal(t, enum.ActualThemeDark, s.EffectiveTheme())
	})

	t.Run("legacy api only", func(t *testing.T) {
		sig := &legacySignal{}
		s := New(newMemStorage(), sig, Options{})
		s.Initialize(context.Background())
		require.Len(t, sig.fns, 1)

		sig.fns[0](true)
		assert.Equal(t, enum.ActualThemeDark, s.EffectiveTheme())

		s.Dispose()
		sig.fns[0](false)
		assert.Equal(t, enum.ActualThemeDark, s.SystemTheme(), "notifications ignored after dispose")
	})

	t.Run("no subscription api keeps snapshot", func(t *testing.T) {
		s := New(newMemStorage(), StaticSignal(true), Options{})
		defer s.Dispose()
		s.Initialize(context.Background())
		assert.Equal(t, enum.ActualThemeDark, s.SystemTheme())
	})

	t.Run("initialize twice subscribes once", func(t *testing.T) {
		sig := &modernSignal{}
		s := New(newMemStorage(), sig, Options{})
		defer s.Dispose()
		s.Initialize(context.Background())
		s.Initialize(context.Background())
		assert.Equal(t, 1, sig.subscribers())
	})
}

func TestStore_Notifications(t *testing.T) {
	t.Run("only on effective change", func(t *testing.T) {
		s := New(newMemStorage(), StaticSignal(false), Options{})
		defer s.Dispose()
		s.Initialize(context.Background())

		var got []enum.ActualTheme
		s.Subscribe(func(th enum.ActualTheme) { got = append(got, th) })

		s.SetMode(context.Background(), enum.ThemeModeLight) // auto with light system is light already
		assert.Empty(t, got)
		s.SetMode(context.Background(), enum.ThemeModeDark)
		s.SetMode(context.Background(), enum.ThemeModeDark)
		assert.Equal(t, []enum.ActualTheme{enum.ActualThemeDark}, got)
	})

	t.Run("unsubscribe", func(t *testing.T) {
		s := New(newMemStorage(), StaticSignal(false), Options{})
		defer s.Dispose()
		s.Initialize(context.Background())

		var first, second int
		unsub := s.Subscribe(func(enum.ActualTheme) { first++ })
		s.Subscribe(func(enum.ActualTheme) { second++ })

		s.SetMode(context.Background(), enum.ThemeModeDark)
		unsub()
		unsub() // no-op
		s.SetMode(context.Background(), enum.ThemeModeLight)
		assert.Equal(t, 1, first)
		assert.Equal(t, 2, second)
	})

	t.Run("watch delivers current value", func(t *testing.T) {
		s := New(newMemStorage(), StaticSignal(true), Options{})
		defer s.Dispose()
		s.Initialize(context.Background())

		var got []enum.ActualTheme
		s.Watch(func(th enum.ActualTheme) { got = append(got, th) })
		assert.Equal(t, []enum.ActualTheme{enum.ActualThemeDark}, got)

		s.SetMode(context.Background(), enum.ThemeModeLight)
		assert.Equal(t, []enum.ActualTheme{enum.ActualThemeDark, enum.ActualThemeLight}, got)
	})

	t.Run("listener changing the mode", func(t *testing.T) {
		s := New(newMemStorage(), StaticSignal(false), Options{})
		defer s.Dispose()
		s.Initialize(context.Background())

		var got []enum.ActualTheme
		s.Subscribe(func(th enum.ActualTheme) {
			got = append(got, th)
			if th == enum.ActualThemeDark {
				s.SetMode(context.Background(), enum.ThemeModeLight)
			}
		})
		s.SetMode(context.Background(), enum.ThemeModeDark)
		assert.Equal(t, []enum.ActualTheme{enum.ActualThemeDark, enum.ActualThemeLight}, got)
		assert.Equal(t, enum.ThemeModeLight, s.Mode())
	})

	t.Run("dispose drops listeners", func(t *testing.T) {
		s := New(newMemStorage(), StaticSignal(false), Options{})
		s.Initialize(context.Background())
		calls := 0
		s.Subscribe(func(enum.ActualTheme) { calls++ })
		s.Dispose()
		s.Dispose()

		s.SetMode(context.Background(), enum.ThemeModeDark)
		assert.Zero(t, calls)
		assert.Equal(t, enum.ActualThemeDark, s.EffectiveTheme())
	})
}

func TestStore_Concurrent(t *testing.T) {
	sig := &modernSignal{}
	s := New(newMemStorage(), sig, Options{})
	defer s.Dispose()
	s.Initialize(context.Background())

	root := NewClassSet("app")
	NewReflector(root, ReflectorOptions{}).Bind(s)

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			s.CycleMode(context.Background())
		}()
		go func() {
			defer wg.Done()
			sig.fire(i%2 == 0)
		}()
	}
	wg.Wait()

	eff := s.EffectiveTheme()
	assert.True(t, root.Has(eff.String()), "root reflects %s, has %q", eff, root.String())
	assert.Len(t, root.Classes(), 2)
}

func TestStore_OverlappingSetModePersistsLast(t *testing.T) {
	st := &blockingStorage{memStorage: newMemStorage(), entered: make(chan struct{}), release: make(chan struct{})}
	s := New(st, StaticSignal(false), Options{})
	defer s.Dispose()
	s.Initialize(context.Background())

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		s.SetMode(context.Background(), enum.ThemeModeLight)
	}()
	<-st.entered // light write in progress

	go func() {
		defer wg.Done()
		s.SetMode(context.Background(), enum.ThemeModeDark)
	}()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, enum.ThemeModeLight, s.Mode(), "dark waits for the pending write")

	close(st.release)
	wg.Wait()

	assert.Equal(t, enum.ThemeModeDark, s.Mode())
	assert.Equal(t, "dark", string(st.get(DefaultKey)))
	reloaded := New(st, StaticSignal(false), Options{})
	defer reloaded.Dispose()
	assert.Equal(t, enum.ThemeModeDark, reloaded.Initialize(context.Background()))
}

func TestStore_ConcurrentCycleModeNoLostSteps(t *testing.T) {
	st := newMemStorage()
	s := New(st, StaticSignal(false), Options{})
	defer s.Dispose()
	s.Initialize(context.Background())

	var wg sync.WaitGroup
	for range 31 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.CycleMode(context.Background())
		}()
	}
	wg.Wait()

	// 31 steps from auto: 30 full rounds and one more
	assert.Equal(t, enum.ThemeModeLight, s.Mode())
	assert.Equal(t, "light", string(st.get(DefaultKey)))
}

type memStorage struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemStorage() *memStorage { return &memStorage{data: map[string][]byte{}} }

func (m *memStorage) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return nil, errors.New("not found")
	}
	return v, nil
}

func (m *memStorage) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *memStorage) get(key string) []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data[key]
}

// blockingStorage holds the first Set until release is closed.
type blockingStorage struct {
	*memStorage
	once    sync.Once
	entered chan struct{}
	release chan struct{}
}

func (b *blockingStorage) Set(ctx context.Context, key string, value []byte) error {
	first := false
	b.once.Do(func() { first = true })
	if first {
		close(b.entered)
		<-b.release
	}
	return b.memStorage.Set(ctx, key, value)
}

// modernSignal implements ChangeNotifier.
type modernSignal struct {
	mu        sync.Mutex
	dark      bool
	err       error
	fns       []func(bool)
	cancelled int
}

func (m *modernSignal) PrefersDark() (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.dark, nil
}

func (m *modernSignal) Subscribe(fn func(bool)) (func(), error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	m.fns = append(m.fns, fn)
	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		m.cancelled++
	}, nil
}

func (m *modernSignal) subscribers() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.fns)
}

func (m *modernSignal) fire(dark bool) {
	m.mu.Lock()
	m.dark = dark
	fns := append(([]func(bool))(nil), m.fns...)
	m.mu.Unlock()
	for _, fn := range fns {
		fn(dark)
	}
}

// legacySignal implements LegacyNotifier only.
type legacySignal struct {
	dark bool
	fns  []func(bool)
}

func (l *legacySignal) PrefersDark() (bool, error) { return l.dark, nil }

func (l *legacySignal) AddListener(fn func(bool)) { l.fns = append(l.fns, fn) }

// dualSignal implements both notifier apis.
type dualSignal struct {
	*modernSignal
	legacy []func(bool)
}

func (d *dualSignal) AddListener(fn func(bool)) { d.legacy = append(d.legacy, fn) }
