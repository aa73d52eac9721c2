package theme

import (
	"strings"
	"sync"

	"github.com/umputun/gpt-load-console/app/enum"
)

// ClassList is a mutable class attribute of a root element.
type ClassList interface {
	Add(class string)
	Remove(class string)
}

// ReflectorOptions defines marker classes. Empty values default to "light" and "dark".
type ReflectorOptions struct {
	LightClass string
	DarkClass  string
}

// Reflector keeps exactly one of the light and dark marker classes on the root element.
type Reflector struct {
	root  ClassList
	light string
	dark  string
}

// NewReflector makes a reflector for the root class list.
func NewReflector(root ClassList, opts ReflectorOptions) *Reflector {
	res := &Reflector{root: root, light: opts.LightClass, dark: opts.DarkClass}
	if res.light == "" {
		res.light = enum.ActualThemeLight.String()
	}
	if res.dark == "" {
		res.dark = enum.ActualThemeDark.String()
	}
	return res
}

// Reflect sets the marker of the theme and removes the other one.
func (r *Reflector) Reflect(t enum.ActualTheme) {
	if t.IsDark() {
		r.root.Add(r.dark)
		r.root.Remove(r.light)
		return
	}
	r.root.Add(r.light)
	r.root.Remove(r.dark)
}

// Bind reflects the current effective theme of the store and every following change.
func (r *Reflector) Bind(st *Store) (unbind func()) {
	return st.Watch(r.Reflect)
}

// ClassSet is an ordered set of classes, safe for concurrent use.
type ClassSet struct {
	mu      sync.RWMutex
	classes []string
}

// NewClassSet makes a set with initial classes, duplicates and blanks skipped.
func NewClassSet(classes ...string) *ClassSet {
	res := &ClassSet{}
	for _, c := range classes {
		res.Add(c)
	}
	return res
}

// Add appends the class if missing.
func (c *ClassSet) Add(class string) {
	class = strings.TrimSpace(class)
	if class == "" {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, v := range c.classes {
		if v == class {
			return
		}
	}
	c.classes = append(c.classes, class)
}

// Remove deletes the class if present.
func (c *ClassSet) Remove(class string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, v := range c.classes {
		if v == class {
			c.classes = append(c.classes[:i], c.classes[i+1:]...)
			return
		}
	}
}

// Has reports whether the class is present.
func (c *ClassSet) Has(class string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, v := range c.classes {
		if v == class {
			return true
		}
	}
	return false
}

// Classes returns a copy of the classes in insertion order.
func (c *ClassSet) Classes() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]string(nil), c.classes...)
}

// String returns the classes joined with spaces, as in a class attribute.
func (c *ClassSet) String() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return strings.Join(c.classes, " ")
}
