// Package internal provides shared utilities for server subpackages.
package internal

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/umputun/gpt-load-console/app/detect"
	"github.com/umputun/gpt-load-console/app/enum"
	"github.com/umputun/gpt-load-console/app/store"
	"github.com/umputun/gpt-load-console/app/theme"
)

// DeviceCookie keeps the browser device id, theme preferences are stored per device.
const DeviceCookie = "gpt-load-device"

const deviceCookieTTL = 365 * 24 * time.Hour

// ThemeConfig defines how request theme sessions are built.
type ThemeConfig struct {
	KV         store.KV
	Key        string // storage key of the mode, theme.DefaultKey if empty
	CookiePath string // device cookie path, "/" if empty
}

// ThemeState is the theme of a request as rendered by pages and api.
type ThemeState struct {
	Mode      enum.ThemeMode   `json:"mode"`
	System    enum.ActualTheme `json:"system"`
	Effective enum.ActualTheme `json:"effective"`
	Class     string           `json:"class"`
}

// ThemeSession is the theme store of a single request, reflected onto the root classes of the page.
type ThemeSession struct {
	Store  *theme.Store
	Root   *theme.ClassSet
	unbind func()
}

// NewThemeSession loads the device theme mode and binds the root classes to the effective theme.
// The system theme comes from the color scheme client hint of the request.
func NewThemeSession(ctx context.Context, w http.ResponseWriter, r *http.Request, cfg ThemeConfig) *ThemeSession {
	var storage theme.Storage
	if cfg.KV != nil {
		storage = store.NewScoped(cfg.KV, store.DevicesPrefix+DeviceID(w, r, cfg.CookiePath))
	}
	st := theme.New(storage, detect.HintSignal(r), theme.Options{Key: cfg.Key})
	st.Initialize(ctx)
	root := theme.NewClassSet()
	return &ThemeSession{Store: st, Root: root, unbind: theme.NewReflector(root, theme.ReflectorOptions{}).Bind(st)}
}

// State returns the current theme state.
func (s *ThemeSession) State() ThemeState {
	return ThemeState{
		Mode:      s.Store.Mode(),
		System:    s.Store.SystemTheme(),
		Effective: s.Store.EffectiveTheme(),
		Class:     s.Root.String(),
	}
}

// Close detaches the reflector and disposes the store.
func (s *ThemeSession) Close() {
	s.unbind()
	s.Store.Dispose()
}

// DeviceID returns the device id from the cookie, a new id is issued if the cookie is missing or invalid.
func DeviceID(w http.ResponseWriter, r *http.Request, path string) string {
	if c, err := r.Cookie(DeviceCookie); err == nil {
		if id, err := uuid.Parse(c.Value); err == nil {
			return id.String()
		}
	}
	if path == "" {
		path = "/"
	}
	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     DeviceCookie,
		Value:    id,
		Path:     path,
		MaxAge:   int(deviceCookieTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

// ColorSchemeHints is a middleware asking browsers to send the color scheme client hint.
func ColorSchemeHints(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Accept-CH", detect.HintHeader)
		w.Header().Set("Critical-CH", detect.HintHeader)
		w.Header().Add("Vary", detect.HintHeader)
		next.ServeHTTP(w, r)
	})
}
