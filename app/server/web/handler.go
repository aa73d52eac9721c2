// Package web provides HTTP handlers for the console web UI.
package web

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"

	"github.com/go-pkgz/routegroup"

	"github.com/umputun/gpt-load-console/app/client"
	"github.com/umputun/gpt-load-console/app/enum"
	"github.com/umputun/gpt-load-console/app/server/internal"
	"github.com/umputun/gpt-load-console/app/store"
)

//go:generate moq -out mocks/settings.go -pkg mocks -skip-ensure -fmt goimports . SettingsClient

//go:embed static
var staticFS embed.FS

//go:embed templates
var templatesFS embed.FS

// StaticFS returns the embedded static filesystem for external use.
func StaticFS() (fs.FS, error) {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		return nil, fmt.Errorf("failed to get static sub-filesystem: %w", err)
	}
	return sub, nil
}

// SettingsClient defines the backend settings operations used by pages.
type SettingsClient interface {
	GetSettings(ctx context.Context) ([]client.SettingCategory, error)
	UpdateSettings(ctx context.Context, payload client.SettingsUpdatePayload) error
	GetChannelTypes(ctx context.Context) ([]string, error)
}

// Config holds web handler configuration.
type Config struct {
	BaseURL  string // base URL path for reverse proxy
	ThemeKey string // storage key of the theme mode
	Version  string
}

// Handler handles web UI requests.
type Handler struct {
	kv       store.KV
	settings SettingsClient
	metrics  *internal.Metrics
	tmpl     *template.Template
	baseURL  string
	themeKey string
	version  string
}

// New creates a new web handler. Nil metrics disable counting.
func New(kv store.KV, settings SettingsClient, metrics *internal.Metrics, cfg Config) (*Handler, error) {
	tmpl, err := parseTemplates()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return &Handler{
		kv:       kv,
		settings: settings,
		metrics:  metrics,
		tmpl:     tmpl,
		baseURL:  cfg.BaseURL,
		themeKey: cfg.ThemeKey,
		version:  cfg.Version,
	}, nil
}

// Register registers web UI routes on the given router.
func (h *Handler) Register(r *routegroup.Bundle) {
	r.HandleFunc("GET /{$}", h.handleIndex)
	r.HandleFunc("POST /web/theme", h.handleThemeCycle)
	r.HandleFunc("PUT /web/theme/{mode}", h.handleThemeSet)
	r.HandleFunc("POST /web/settings", h.handleSettingsUpdate)
}

// templateFuncs returns custom template functions.
func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"modeLabel": modeLabel,
		"join":      strings.Join,
	}
}

// parseTemplates parses all templates from embedded filesystem.
func parseTemplates() (*template.Template, error) {
	tmpl := template.New("").Funcs(templateFuncs())
	for _, name := range []string{"base.html", "index.html", "partials/settings.html"} {
		content, err := templatesFS.ReadFile("templates/" + name)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		if _, err := tmpl.New(strings.TrimPrefix(name, "partials/")).Parse(string(content)); err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
	}
	return tmpl, nil
}

// templateData holds data passed to templates.
type templateData struct {
	Theme        internal.ThemeState
	Categories   []client.SettingCategory
	ChannelTypes []string
	Search       string
	Error        string
	BaseURL      string
	Version      string
}

// modeLabel returns a human-readable label of the theme mode switch.
func modeLabel(mode enum.ThemeMode) string {
	switch mode {
	case enum.ThemeModeLight:
		return "Light"
	case enum.ThemeModeDark:
		return "Dark"
	default:
		return "Auto"
	}
}

// themeSession makes the theme session of the request.
func (h *Handler) themeSession(w http.ResponseWriter, r *http.Request) *internal.ThemeSession {
	return internal.NewThemeSession(r.Context(), w, r, internal.ThemeConfig{
		KV:         h.kv,
		Key:        h.themeKey,
		CookiePath: h.cookiePath(),
	})
}

// filterBySearch keeps settings with the search term in the key or name, empty categories dropped.
func (h *Handler) filterBySearch(categories []client.SettingCategory, search string) []client.SettingCategory {
	search = strings.ToLower(strings.TrimSpace(search))
	if search == "" {
		return categories
	}
	var res []client.SettingCategory
	for _, cat := range categories {
		var matched []client.Setting
		for _, s := range cat.Settings {
			if strings.Contains(strings.ToLower(s.Key), search) || strings.Contains(strings.ToLower(s.Name), search) {
				matched = append(matched, s)
			}
		}
		if len(matched) > 0 {
			res = append(res, client.SettingCategory{CategoryName: cat.CategoryName, Settings: matched})
		}
	}
	return res
}

// url returns a URL path with the base URL prefix.
func (h *Handler) url(path string) string {
	return h.baseURL + path
}

// cookiePath returns the path for cookies (base URL with trailing slash or "/").
func (h *Handler) cookiePath() string {
	if h.baseURL == "" {
		return "/"
	}
	return h.baseURL + "/"
}
