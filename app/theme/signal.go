package theme

// SystemSignal reports the operating system "prefers dark" preference.
type SystemSignal interface {
	PrefersDark() (bool, error)
}

// ChangeNotifier is implemented by signals able to push preference changes.
// The returned cancel func detaches fn.
type ChangeNotifier interface {
	Subscribe(fn func(prefersDark bool)) (cancel func(), err error)
}

// LegacyNotifier is implemented by signals with listener registration only, without removal.
type LegacyNotifier interface {
	AddListener(fn func(prefersDark bool))
}

// StaticSignal is a fixed preference.
type StaticSignal bool

// PrefersDark returns the fixed value.
func (s StaticSignal) PrefersDark() (bool, error) { return bool(s), nil }
