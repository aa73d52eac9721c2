package client

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/umputun/gpt-load-console/app/enum"
)

// GetSettings returns setting categories, empty if the backend sends no data.
func (c *Client) GetSettings(ctx context.Context) ([]SettingCategory, error) {
	var res []SettingCategory
	if err := c.do(ctx, http.MethodGet, "/settings", nil, &res); err != nil {
		return nil, err
	}
	if res == nil {
		res = []SettingCategory{}
	}
	return res, nil
}

// UpdateSettings sends new setting values.
func (c *Client) UpdateSettings(ctx context.Context, payload SettingsUpdatePayload) error {
	if payload == nil {
		payload = SettingsUpdatePayload{}
	}
	return c.do(ctx, http.MethodPut, "/settings", payload, nil)
}

// GetChannelTypes returns supported channel types, empty if the backend sends no data.
func (c *Client) GetChannelTypes(ctx context.Context) ([]string, error) {
	var res []string
	if err := c.do(ctx, http.MethodGet, "/channel-types", nil, &res); err != nil {
		return nil, err
	}
	if res == nil {
		res = []string{}
	}
	return res, nil
}

// Find returns the setting with the key.
func Find(categories []SettingCategory, key string) (Setting, bool) {
	for _, cat := range categories {
		for _, s := range cat.Settings {
			if s.Key == key {
				return s, true
			}
		}
	}
	return Setting{}, false
}

// ParseValue converts a text value to the setting type.
func ParseValue(typ enum.SettingType, raw string) (any, error) {
	raw = strings.TrimSpace(raw)
	switch typ {
	case enum.SettingTypeInt:
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid int %q: %w", raw, err)
		}
		return v, nil
	case enum.SettingTypeBool:
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid bool %q: %w", raw, err)
		}
		return v, nil
	default:
		return raw, nil
	}
}

// ValueString formats the value for display. Whole numbers are printed without a fraction.
func (s Setting) ValueString() string {
	switch v := s.Value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}
