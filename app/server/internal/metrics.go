package internal

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/umputun/gpt-load-console/app/client"
)

// Metrics are console counters.
type Metrics struct {
	themeChanges    *prometheus.CounterVec
	backendRequests *prometheus.CounterVec
}

// NewMetrics registers console counters in reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		themeChanges: f.NewCounterVec(prometheus.CounterOpts{
			Name: "console_theme_changes_total",
			Help: "Theme mode changes by the new mode.",
		}, []string{"mode"}),
		backendRequests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "console_backend_requests_total",
			Help: "Backend settings api requests by endpoint and response status.",
		}, []string{"endpoint", "status"}),
	}
}

// ThemeChanged counts a mode change. Nil metrics are a no-op.
func (m *Metrics) ThemeChanged(mode string) {
	if m == nil {
		return
	}
	m.themeChanges.WithLabelValues(mode).Inc()
}

// BackendRequest counts a backend call with its http status, 0 status is reported as "error".
func (m *Metrics) BackendRequest(endpoint string, status int) {
	if m == nil {
		return
	}
	label := "error"
	if status > 0 {
		label = strconv.Itoa(status)
	}
	m.backendRequests.WithLabelValues(endpoint, label).Inc()
}

// BackendStatus returns the http status of a backend call result: 200 on success, the api status
// for api errors and 0 for transport failures.
func BackendStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// ProxyStatus is the status returned to console callers for a failed backend call. Backend 4xx
// responses are passed through, everything else is a bad gateway.
func ProxyStatus(err error) int {
	if st := BackendStatus(err); st >= 400 && st < 500 {
		return st
	}
	return http.StatusBadGateway
}
