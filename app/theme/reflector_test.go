package theme

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/umputun/gpt-load-console/app/enum"
)

func TestReflector_Reflect(t *testing.T) {
	root := NewClassSet("app", "light")
	r := NewReflector(root, ReflectorOptions{})

	r.Reflect(enum.ActualThemeDark)
	assert.True(t, root.Has("dark"))
	assert.False(t, root.Has("light"))
	assert.True(t, root.Has("app"), "unrelated classes kept")

	r.Reflect(enum.ActualThemeDark)
	assert.Equal(t, []string{"app", "dark"}, root.Classes(), "idempotent")

	r.Reflect(enum.ActualThemeLight)
	assert.True(t, root.Has("light"))
	assert.False(t, root.Has("dark"))
	assert.Equal(t, "app light", root.String())
}

func TestReflector_CustomMarkers(t *testing.T) {
	root := NewClassSet()
	r := NewReflector(root, ReflectorOptions{LightClass: "theme-light", DarkClass: "theme-dark"})

	r.Reflect(enum.ActualThemeLight)
	assert.Equal(t, "theme-light", root.String())
	r.Reflect(enum.ActualThemeDark)
	assert.Equal(t, "theme-dark", root.String())
}

func TestReflector_Bind(t *testing.T) {
	sig := &modernSignal{}
	st := newMemStorage()
	st.data[DefaultKey] = []byte("auto")
	s := New(st, sig, Options{})
	defer s.Dispose()
	s.Initialize(context.Background())

	root := NewClassSet()
	unbind := NewReflector(root, ReflectorOptions{}).Bind(s)
	assert.Equal(t, "light", root.String(), "reflected at bind time")

	sig.fire(true)
	assert.Equal(t, "dark", root.String())

	s.SetMode(context.Background(), enum.ThemeModeLight)
	assert.Equal(t, "light", root.String())

	unbind()
	s.SetMode(context.Background(), enum.ThemeModeDark)
	assert.Equal(t, "light", root.String(), "no updates after unbind")
}

func TestClassSet(t *testing.T) {
	c := NewClassSet("a", " ", "b", "a")
	assert.Equal(t, []string{"a", "b"}, c.Classes())

	c.Add("c")
	c.Add("")
	c.Remove("a")
	c.Remove("missing")
	assert.Equal(t, "b c", c.String())
	assert.False(t, c.Has("a"))
	assert.True(t, c.Has("c"))

	classes := c.Classes()
	classes[0] = "changed"
	assert.Equal(t, "b c", c.String(), "copy returned")
}
