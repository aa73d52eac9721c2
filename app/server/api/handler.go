// Package api provides HTTP handlers for the console JSON api.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	log "github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/routegroup"

	"github.com/umputun/gpt-load-console/app/client"
	"github.com/umputun/gpt-load-console/app/enum"
	"github.com/umputun/gpt-load-console/app/server/internal"
	"github.com/umputun/gpt-load-console/app/store"
)

//go:generate moq -out mocks/settings.go -pkg mocks -skip-ensure -fmt goimports . SettingsClient

// SettingsClient defines the backend settings operations proxied by the api.
type SettingsClient interface {
	GetSettings(ctx context.Context) ([]client.SettingCategory, error)
	UpdateSettings(ctx context.Context, payload client.SettingsUpdatePayload) error
	GetChannelTypes(ctx context.Context) ([]string, error)
}

// Config holds api handler configuration.
type Config struct {
	ThemeKey   string // storage key of the theme mode
	CookiePath string // device cookie path
}

// Handler handles requests for /api/* endpoints.
type Handler struct {
	kv       store.KV
	settings SettingsClient
	metrics  *internal.Metrics
	cfg      Config
}

// New creates a new API handler. Nil metrics disable counting.
func New(kv store.KV, settings SettingsClient, metrics *internal.Metrics, cfg Config) *Handler {
	return &Handler{kv: kv, settings: settings, metrics: metrics, cfg: cfg}
}

// Register registers API routes on the given router.
func (h *Handler) Register(r *routegroup.Bundle) {
	r.HandleFunc("GET /theme", h.handleThemeGet)
	r.HandleFunc("PUT /theme", h.handleThemeSet)
	r.HandleFunc("GET /settings", h.handleSettingsGet)
	r.HandleFunc("PUT /settings", h.handleSettingsUpdate)
	r.HandleFunc("GET /channel-types", h.handleChannelTypes)
}

// handleThemeGet returns the theme state of the device.
// GET /api/theme
func (h *Handler) handleThemeGet(w http.ResponseWriter, r *http.Request) {
	ts := h.themeSession(w, r)
	defer ts.Close()
	rest.RenderJSON(w, ts.State())
}

// handleThemeSet sets the theme mode of the device.
// PUT /api/theme {"mode":"dark"}
func (h *Handler) handleThemeSet(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Mode string `json:"mode"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rest.SendErrorJSON(w, r, log.Default(), http.StatusBadRequest, err, "invalid request body")
		return
	}
	mode, ok := enum.ThemeModeExact(req.Mode)
	if !ok {
		rest.SendErrorJSON(w, r, log.Default(), http.StatusBadRequest,
			fmt.Errorf("invalid theme mode %q", req.Mode), "unknown theme mode")
		return
	}

	ts := h.themeSession(w, r)
	defer ts.Close()
	ts.Store.SetMode(r.Context(), mode)
	h.metrics.ThemeChanged(mode.String())
	log.Printf("[DEBUG] theme mode set to %s", mode)
	rest.RenderJSON(w, ts.State())
}

// handleSettingsGet proxies the backend settings.
// GET /api/settings
func (h *Handler) handleSettingsGet(w http.ResponseWriter, r *http.Request) {
	categories, err := h.settings.GetSettings(r.Context())
	h.metrics.BackendRequest("settings", internal.BackendStatus(err))
	if err != nil {
		rest.SendErrorJSON(w, r, log.Default(), internal.ProxyStatus(err), err, "can't get settings")
		return
	}
	rest.RenderJSON(w, categories)
}

// handleSettingsUpdate proxies a settings update.
// PUT /api/settings {"key": value, ...}
func (h *Handler) handleSettingsUpdate(w http.ResponseWriter, r *http.Request) {
	var payload client.SettingsUpdatePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		rest.SendErrorJSON(w, r, log.Default(), http.StatusBadRequest, err, "invalid request body")
		return
	}
	err := h.settings.UpdateSettings(r.Context(), payload)
	h.metrics.BackendRequest("settings-update", internal.BackendStatus(err))
	if err != nil {
		rest.SendErrorJSON(w, r, log.Default(), internal.ProxyStatus(err), err, "can't update settings")
		return
	}
	log.Printf("[INFO] updated %d settings", len(payload))
	rest.RenderJSON(w, rest.JSON{"updated": len(payload)})
}

// handleChannelTypes proxies the backend channel types.
// GET /api/channel-types
func (h *Handler) handleChannelTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.settings.GetChannelTypes(r.Context())
	h.metrics.BackendRequest("channel-types", internal.BackendStatus(err))
	if err != nil {
		rest.SendErrorJSON(w, r, log.Default(), internal.ProxyStatus(err), err, "can't get channel types")
		return
	}
	rest.RenderJSON(w, types)
}

func (h *Handler) themeSession(w http.ResponseWriter, r *http.Request) *internal.ThemeSession {
	return internal.NewThemeSession(r.Context(), w, r, internal.ThemeConfig{
		KV:         h.kv,
		Key:        h.cfg.ThemeKey,
		CookiePath: h.cfg.CookiePath,
	})
}
