package web

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	log "github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"

	"github.com/umputun/gpt-load-console/app/client"
	"github.com/umputun/gpt-load-console/app/enum"
	"github.com/umputun/gpt-load-console/app/server/internal"
)

var errUnknownSetting = errors.New("unknown setting")

// handleIndex renders the settings page. Backend failures are shown inline, the page itself renders.
func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	ts := h.themeSession(w, r)
	defer ts.Close()

	data := templateData{
		Theme:   ts.State(),
		Search:  r.URL.Query().Get("q"),
		BaseURL: h.baseURL,
		Version: h.version,
	}

	categories, err := h.settings.GetSettings(r.Context())
	h.metrics.BackendRequest("settings", internal.BackendStatus(err))
	if err != nil {
		log.Printf("[WARN] can't load settings: %v", err)
		data.Error = "backend unavailable: " + err.Error()
	}
	data.Categories = h.filterBySearch(categories, data.Search)

	if err == nil {
		types, typesErr := h.settings.GetChannelTypes(r.Context())
		h.metrics.BackendRequest("channel-types", internal.BackendStatus(typesErr))
		if typesErr != nil {
			log.Printf("[WARN] can't load channel types: %v", typesErr)
		}
		data.ChannelTypes = types
	}

	if err := h.tmpl.ExecuteTemplate(w, "base.html", data); err != nil {
		log.Printf("[ERROR] failed to execute template: %v", err)
	}
}

// handleThemeCycle advances the theme mode auto -> light -> dark -> auto.
func (h *Handler) handleThemeCycle(w http.ResponseWriter, r *http.Request) {
	ts := h.themeSession(w, r)
	defer ts.Close()

	ts.Store.CycleMode(r.Context())
	h.metrics.ThemeChanged(ts.Store.Mode().String())
	h.renderTheme(w, ts)
}

// handleThemeSet sets the theme mode from the path, only exact mode names are accepted.
func (h *Handler) handleThemeSet(w http.ResponseWriter, r *http.Request) {
	mode, ok := enum.ThemeModeExact(r.PathValue("mode"))
	if !ok {
		rest.SendErrorJSON(w, r, log.Default(), http.StatusBadRequest,
			fmt.Errorf("invalid theme mode %q", r.PathValue("mode")), "unknown theme mode")
		return
	}

	ts := h.themeSession(w, r)
	defer ts.Close()

	ts.Store.SetMode(r.Context(), mode)
	h.metrics.ThemeChanged(mode.String())
	h.renderTheme(w, ts)
}

// handleSettingsUpdate applies the settings form. Values are converted to the type of the current
// setting, empty fields are left unchanged.
func (h *Handler) handleSettingsUpdate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		rest.SendErrorJSON(w, r, log.Default(), http.StatusBadRequest, err, "invalid form")
		return
	}

	categories, err := h.settings.GetSettings(r.Context())
	h.metrics.BackendRequest("settings", internal.BackendStatus(err))
	if err != nil {
		rest.SendErrorJSON(w, r, log.Default(), internal.ProxyStatus(err), err, "can't load settings")
		return
	}

	payload, err := formPayload(categories, r.PostForm)
	if err != nil {
		rest.SendErrorJSON(w, r, log.Default(), http.StatusBadRequest, err, "invalid setting value")
		return
	}
	if len(payload) == 0 {
		http.Redirect(w, r, h.url("/"), http.StatusSeeOther)
		return
	}

	err = h.settings.UpdateSettings(r.Context(), payload)
	h.metrics.BackendRequest("settings-update", internal.BackendStatus(err))
	if err != nil {
		rest.SendErrorJSON(w, r, log.Default(), internal.ProxyStatus(err), err, "can't update settings")
		return
	}
	log.Printf("[INFO] updated %d settings", len(payload))

	if r.Header.Get("HX-Request") == "" {
		http.Redirect(w, r, h.url("/"), http.StatusSeeOther)
		return
	}
	w.Header().Set("HX-Refresh", "true")
	w.WriteHeader(http.StatusOK)
}

// renderTheme responds with the theme state and asks htmx for a page refresh.
func (h *Handler) renderTheme(w http.ResponseWriter, ts *internal.ThemeSession) {
	w.Header().Set("HX-Refresh", "true")
	rest.RenderJSON(w, ts.State())
}

// formPayload builds the update payload from form fields named after setting keys. An empty field
// clears an optional text setting and keeps the current value of everything else.
func formPayload(categories []client.SettingCategory, form map[string][]string) (client.SettingsUpdatePayload, error) {
	res := client.SettingsUpdatePayload{}
	for key, values := range form {
		setting, ok := client.Find(categories, key)
		if !ok {
			return nil, fmt.Errorf("%w: %s", errUnknownSetting, key)
		}
		raw := ""
		if len(values) > 0 {
			raw = values[0]
		}
		if strings.TrimSpace(raw) == "" {
			if setting.Type == enum.SettingTypeString && !setting.Required {
				res[key] = ""
			}
			continue
		}
		v, err := client.ParseValue(setting.Type, raw)
		if err != nil {
			return nil, fmt.Errorf("setting %s: %w", key, err)
		}
		res[key] = v
	}
	return res, nil
}
