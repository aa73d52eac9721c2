package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/go-pkgz/routegroup"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/gpt-load-console/app/client"
	"github.com/umputun/gpt-load-console/app/detect"
	"github.com/umputun/gpt-load-console/app/enum"
	"github.com/umputun/gpt-load-console/app/server/api/mocks"
	"github.com/umputun/gpt-load-console/app/server/internal"
	"github.com/umputun/gpt-load-console/app/store"
)

func TestHandler_ThemeGet(t *testing.T) {
	kv := newMemKV()
	router := newTestRouter(t, kv, &mocks.SettingsClientMock{}, nil)
	device := uuid.NewString()

	t.Run("default state", func(t *testing.T) {
		rec := serve(router, http.MethodGet, "/theme", "", device, "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, map[string]string{"mode": "auto", "system": "light", "effective": "light", "class": "light"},
			decode[map[string]string](t, rec))
	})

	t.Run("auto follows hint", func(t *testing.T) {
		rec := serve(router, http.MethodGet, "/theme", "", device, "dark")
		assert.Equal(t, map[string]string{"mode": "auto", "system": "dark", "effective": "dark", "class": "dark"},
			decode[map[string]string](t, rec))
	})

	t.Run("stored mode wins over hint", func(t *testing.T) {
		require.NoError(t, kv.Set(context.Background(), "devices/"+device+"/gpt-load-theme-mode", []byte("light")))
		rec := serve(router, http.MethodGet, "/theme", "", device, "dark")
		assert.Equal(t, map[string]string{"mode": "light", "system": "dark", "effective": "light", "class": "light"},
			decode[map[string]string](t, rec))
	})

	t.Run("new device gets cookie", func(t *testing.T) {
		rec := serve(router, http.MethodGet, "/theme", "", "", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		var found bool
		for _, c := range rec.Result().Cookies() {
			if c.Name == internal.DeviceCookie {
				found = true
				_, err := uuid.Parse(c.Value)
				assert.NoError(t, err)
			}
		}
		assert.True(t, found)
	})
}

func TestHandler_ThemeSet(t *testing.T) {
	kv := newMemKV()
	reg := prometheus.NewRegistry()
	metrics := internal.NewMetrics(reg)
	router := newTestRouter(t, kv, &mocks.SettingsClientMock{}, metrics)
	device := uuid.NewString()
	key := "devices/" + device + "/gpt-load-theme-mode"

	rec := serve(router, http.MethodPut, "/theme", `{"mode":"dark"}`, device, "light")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]string{"mode": "dark", "system": "light", "effective": "dark", "class": "dark"},
		decode[map[string]string](t, rec))
	assert.Equal(t, "dark", kv.get(key))

	for _, body := range []string{`{"mode":"purple"}`, `{"mode":"Dark"}`, `{"mode":"system"}`, `{"mode":""}`, `not json`} {
		rec = serve(router, http.MethodPut, "/theme", body, device, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
	}
	assert.Equal(t, "dark", kv.get(key), "invalid modes ignored")

	expected := `
# HELP console_theme_changes_total Theme mode changes by the new mode.
# TYPE console_theme_changes_total counter
console_theme_changes_total{mode="dark"} 1
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "console_theme_changes_total"))
}

func TestHandler_Settings(t *testing.T) {
	categories := []client.SettingCategory{{CategoryName: "General", Settings: []client.Setting{
		{Key: "app_url", Name: "Application URL", Value: "http://localhost:3001", Type: enum.SettingTypeString},
	}}}

	t.Run("get", func(t *testing.T) {
		sc := &mocks.SettingsClientMock{
			GetSettingsFunc: func(context.Context) ([]client.SettingCategory, error) { return categories, nil },
		}
		rec := serve(newTestRouter(t, newMemKV(), sc, nil), http.MethodGet, "/settings", "", "", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, categories, decode[[]client.SettingCategory](t, rec))
	})

	t.Run("get backend error", func(t *testing.T) {
		sc := &mocks.SettingsClientMock{
			GetSettingsFunc: func(context.Context) ([]client.SettingCategory, error) { return nil, assert.AnError },
		}
		rec := serve(newTestRouter(t, newMemKV(), sc, nil), http.MethodGet, "/settings", "", "", "")
		assert.Equal(t, http.StatusBadGateway, rec.Code)
		assert.Contains(t, rec.Body.String(), "can't get settings")
	})

	t.Run("update", func(t *testing.T) {
		sc := &mocks.SettingsClientMock{
			UpdateSettingsFunc: func(context.Context, client.SettingsUpdatePayload) error { return nil },
		}
		rec := serve(newTestRouter(t, newMemKV(), sc, nil), http.MethodPut, "/settings",
			`{"request_timeout":30,"app_url":"http://x"}`, "", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"updated":2}`, rec.Body.String())
		require.Len(t, sc.UpdateSettingsCalls(), 1)
		assert.Equal(t, client.SettingsUpdatePayload{"request_timeout": float64(30), "app_url": "http://x"},
			sc.UpdateSettingsCalls()[0].Payload)
	})

	t.Run("update invalid body", func(t *testing.T) {
		sc := &mocks.SettingsClientMock{}
		rec := serve(newTestRouter(t, newMemKV(), sc, nil), http.MethodPut, "/settings", `[1,2]`, "", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Empty(t, sc.UpdateSettingsCalls())
	})

	t.Run("update rejected by backend", func(t *testing.T) {
		sc := &mocks.SettingsClientMock{
			UpdateSettingsFunc: func(context.Context, client.SettingsUpdatePayload) error {
				return &client.APIError{StatusCode: http.StatusBadRequest, Code: 4001, Message: "value too small"}
			},
		}
		rec := serve(newTestRouter(t, newMemKV(), sc, nil), http.MethodPut, "/settings", `{"request_timeout":0}`, "", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandler_ChannelTypes(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := internal.NewMetrics(reg)

	sc := &mocks.SettingsClientMock{
		GetChannelTypesFunc: func(context.Context) ([]string, error) { return []string{"openai", "gemini"}, nil },
	}
	rec := serve(newTestRouter(t, newMemKV(), sc, metrics), http.MethodGet, "/channel-types", "", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"openai", "gemini"}, decode[[]string](t, rec))

	sc.GetChannelTypesFunc = func(context.Context) ([]string, error) {
		return nil, &client.APIError{StatusCode: http.StatusInternalServerError, Message: "boom"}
	}
	rec = serve(newTestRouter(t, newMemKV(), sc, metrics), http.MethodGet, "/channel-types", "", "", "")
	assert.Equal(t, http.StatusBadGateway, rec.Code)

	sc.GetChannelTypesFunc = func(context.Context) ([]string, error) { return nil, assert.AnError }
	rec = serve(newTestRouter(t, newMemKV(), sc, metrics), http.MethodGet, "/channel-types", "", "", "")
	assert.Equal(t, http.StatusBadGateway, rec.Code)

	expected := `
# HELP console_backend_requests_total Backend settings api requests by endpoint and response status.
# TYPE console_backend_requests_total counter
console_backend_requests_total{endpoint="channel-types",status="200"} 1
console_backend_requests_total{endpoint="channel-types",status="500"} 1
console_backend_requests_total{endpoint="channel-types",status="error"} 1
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "console_backend_requests_total"))
}

func newTestRouter(t *testing.T, kv store.KV, sc SettingsClient, metrics *internal.Metrics) *routegroup.Bundle {
	t.Helper()
	router := routegroup.New(http.NewServeMux())
	New(kv, sc, metrics, Config{}).Register(router)
	return router
}

func serve(h http.Handler, method, path, body, device, hint string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if device != "" {
		req.AddCookie(&http.Cookie{Name: internal.DeviceCookie, Value: device})
	}
	if hint != "" {
		req.Header.Set(detect.HintHeader, hint)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var res T
	require.NoError(t, json.NewDecoder(bytes.NewReader(rec.Body.Bytes())).Decode(&res))
	return res
}

// memKV is an in-memory store.KV.
type memKV struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemKV() *memKV { return &memKV{data: map[string][]byte{}} }

func (m *memKV) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return nil, store.ErrNotFound
	}
	return v, nil
}

func (m *memKV) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *memKV) get(key string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return string(m.data[key])
}
