package client

import (
	"encoding/json"
	"time"

	"github.com/umputun/gpt-load-console/app/enum"
)

// Response is the envelope of every backend response.
type Response struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// APIKey is an upstream key of a group.
type APIKey struct {
	ID           int64          `json:"id"`
	GroupID      int64          `json:"group_id"`
	KeyValue     string         `json:"key_value"`
	Status       enum.KeyStatus `json:"status"`
	RequestCount int64          `json:"request_count"`
	FailureCount int64          `json:"failure_count"`
	LastUsedAt   *time.Time     `json:"last_used_at,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// UpstreamInfo is a weighted upstream url.
type UpstreamInfo struct {
	URL    string `json:"url"`
	Weight int    `json:"weight"`
}

// HeaderRule sets or removes a request header; Action is "set" or "remove".
type HeaderRule struct {
	Key    string `json:"key"`
	Value  string `json:"value"`
	Action string `json:"action"`
}

// Group is a proxied channel with its keys and upstreams.
type Group struct {
	ID                 int64            `json:"id,omitempty"`
	Name               string           `json:"name"`
	DisplayName        string           `json:"display_name"`
	Description        string           `json:"description"`
	Sort               int              `json:"sort"`
	TestModel          string           `json:"test_model"`
	ChannelType        enum.ChannelType `json:"channel_type"`
	Upstreams          []UpstreamInfo   `json:"upstreams"`
	ValidationEndpoint string           `json:"validation_endpoint"`
	Config             map[string]any   `json:"config"`
	APIKeys            []APIKey         `json:"api_keys,omitempty"`
	Endpoint           string           `json:"endpoint,omitempty"`
	ParamOverrides     map[string]any   `json:"param_overrides"`
	HeaderRules        []HeaderRule     `json:"header_rules,omitempty"`
	ProxyKeys          string           `json:"proxy_keys"`
	CreatedAt          *time.Time       `json:"created_at,omitempty"`
	UpdatedAt          *time.Time       `json:"updated_at,omitempty"`
}

// GroupConfigOption describes a per-group config override.
type GroupConfigOption struct {
	Key          string `json:"key"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	DefaultValue any    `json:"default_value"`
}

// GroupStatsResponse defines the complete statistics for a group.
type GroupStatsResponse struct {
	KeyStats    KeyStats     `json:"key_stats"`
	HourlyStats RequestStats `json:"hourly_stats"`
	DailyStats  RequestStats `json:"daily_stats"`
	WeeklyStats RequestStats `json:"weekly_stats"`
}

// KeyStats defines the statistics for API keys in a group.
type KeyStats struct {
	TotalKeys   int64 `json:"total_keys"`
	ActiveKeys  int64 `json:"active_keys"`
	InvalidKeys int64 `json:"invalid_keys"`
}

// RequestStats defines the statistics for requests over a period.
type RequestStats struct {
	TotalRequests  int64   `json:"total_requests"`
	FailedRequests int64   `json:"failed_requests"`
	FailureRate    float64 `json:"failure_rate"`
}

// task types
const (
	TaskKeyValidation = "KEY_VALIDATION"
	TaskKeyImport     = "KEY_IMPORT"
	TaskKeyDelete     = "KEY_DELETE"
)

// KeyValidationResult is the result of a KEY_VALIDATION task.
type KeyValidationResult struct {
	InvalidKeys int64 `json:"invalid_keys"`
	TotalKeys   int64 `json:"total_keys"`
	ValidKeys   int64 `json:"valid_keys"`
}

// KeyImportResult is the result of a KEY_IMPORT task.
type KeyImportResult struct {
	AddedCount   int64 `json:"added_count"`
	IgnoredCount int64 `json:"ignored_count"`
}

// KeyDeleteResult is the result of a KEY_DELETE task.
type KeyDeleteResult struct {
	DeletedCount int64 `json:"deleted_count"`
	IgnoredCount int64 `json:"ignored_count"`
}

// TaskInfo is the state of a background task. Result shape depends on TaskType.
type TaskInfo struct {
	TaskType   string          `json:"task_type"`
	IsRunning  bool            `json:"is_running"`
	GroupName  string          `json:"group_name,omitempty"`
	Processed  int64           `json:"processed,omitempty"`
	Total      int64           `json:"total,omitempty"`
	StartedAt  *time.Time      `json:"started_at,omitempty"`
	FinishedAt *time.Time      `json:"finished_at,omitempty"`
	Result     json.RawMessage `json:"result,omitempty"`
	Error      string          `json:"error,omitempty"`
}

// RequestLog is a proxied request record.
type RequestLog struct {
	ID           string    `json:"id"`
	Timestamp    time.Time `json:"timestamp"`
	GroupID      int64     `json:"group_id"`
	KeyID        int64     `json:"key_id"`
	IsSuccess    bool      `json:"is_success"`
	SourceIP     string    `json:"source_ip"`
	StatusCode   int       `json:"status_code"`
	RequestPath  string    `json:"request_path"`
	DurationMs   int64     `json:"duration_ms"`
	ErrorMessage string    `json:"error_message"`
	UserAgent    string    `json:"user_agent"`
	RequestType  string    `json:"request_type"` // "retry" or "final"
	GroupName    string    `json:"group_name,omitempty"`
	KeyValue     string    `json:"key_value,omitempty"`
	Model        string    `json:"model"`
	UpstreamAddr string    `json:"upstream_addr"`
	IsStream     bool      `json:"is_stream"`
	RequestBody  string    `json:"request_body,omitempty"`
}

// Pagination of list responses.
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalItems int64 `json:"total_items"`
	TotalPages int   `json:"total_pages"`
}

// LogsResponse is a page of request logs.
type LogsResponse struct {
	Items      []RequestLog `json:"items"`
	Pagination Pagination   `json:"pagination"`
}

// LogFilter selects request logs.
type LogFilter struct {
	Page          int        `json:"page,omitempty"`
	PageSize      int        `json:"page_size,omitempty"`
	GroupName     string     `json:"group_name,omitempty"`
	KeyValue      string     `json:"key_value,omitempty"`
	Model         string     `json:"model,omitempty"`
	IsSuccess     *bool      `json:"is_success,omitempty"`
	StatusCode    *int       `json:"status_code,omitempty"`
	SourceIP      string     `json:"source_ip,omitempty"`
	ErrorContains string     `json:"error_contains,omitempty"`
	StartTime     *time.Time `json:"start_time,omitempty"`
	EndTime       *time.Time `json:"end_time,omitempty"`
	RequestType   string     `json:"request_type,omitempty"`
}

// DashboardStats is the request summary.
type DashboardStats struct {
	TotalRequests   int64              `json:"total_requests"`
	SuccessRequests int64              `json:"success_requests"`
	SuccessRate     float64            `json:"success_rate"`
	GroupStats      []GroupRequestStat `json:"group_stats"`
}

// GroupRequestStat is the request count of a group.
type GroupRequestStat struct {
	DisplayName  string `json:"display_name"`
	RequestCount int64  `json:"request_count"`
}

// StatCard is a dashboard card value with trend.
type StatCard struct {
	Value         float64  `json:"value"`
	SubValue      *float64 `json:"sub_value,omitempty"`
	SubValueTip   string   `json:"sub_value_tip,omitempty"`
	Trend         float64  `json:"trend"`
	TrendIsGrowth bool     `json:"trend_is_growth"`
}

// SecurityWarning is a configuration warning, e.g. a weak auth or encryption key.
type SecurityWarning struct {
	Type       string `json:"type"`
	Message    string `json:"message"`
	Severity   string `json:"severity"` // low, medium, high
	Suggestion string `json:"suggestion"`
}

// DashboardStatsResponse is the dashboard summary.
type DashboardStatsResponse struct {
	KeyCount         StatCard          `json:"key_count"`
	RPM              StatCard          `json:"rpm"`
	RequestCount     StatCard          `json:"request_count"`
	ErrorRate        StatCard          `json:"error_rate"`
	SecurityWarnings []SecurityWarning `json:"security_warnings"`
}

// ChartDataset is a chart series.
type ChartDataset struct {
	Label string    `json:"label"`
	Data  []float64 `json:"data"`
	Color string    `json:"color"`
}

// ChartData is a chart with labels and series.
type ChartData struct {
	Labels   []string       `json:"labels"`
	Datasets []ChartDataset `json:"datasets"`
}

// Setting is a system setting. Value holds a string, a number or a bool, as declared by Type.
type Setting struct {
	Key         string           `json:"key"`
	Name        string           `json:"name"`
	Value       any              `json:"value"`
	Type        enum.SettingType `json:"type"`
	MinValue    *int64           `json:"min_value,omitempty"`
	Description string           `json:"description"`
	Required    bool             `json:"required"`
}

// SettingCategory groups settings for display.
type SettingCategory struct {
	CategoryName string    `json:"category_name"`
	Settings     []Setting `json:"settings"`
}

// SettingsUpdatePayload maps setting keys to new values.
type SettingsUpdatePayload map[string]any
