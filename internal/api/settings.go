package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/yamadatarousan/ticket-manager/internal/session"
)

// Settings is the application-wide configuration record.
type Settings struct {
	SiteName             string `json:"site_name"`
	Language             string `json:"language,omitempty"`
	NotificationsEnabled bool   `json:"notifications_enabled"`
}

// GetSettings fetches the application settings.
func (c *Client) GetSettings(ctx context.Context) (Settings, error) {
	raw, err := c.DoRequest(ctx, RequestOptions{
		Method: http.MethodGet,
		Path:   "settings",
	})
	if err != nil {
		return Settings{}, err
	}
	return decodeSettings(raw)
}

// UpdateSettings replaces the application settings.
func (c *Client) UpdateSettings(ctx context.Context, settings Settings) (Settings, error) {
	body, err := wrap("settings", settings)
	if err != nil {
		return Settings{}, err
	}
	raw, err := c.DoRequest(ctx, RequestOptions{
		Method: http.MethodPut,
		Path:   "settings",
		Body:   body,
	})
	if err != nil {
		return Settings{}, err
	}
	return decodeSettings(raw)
}

func decodeSettings(raw []byte) (Settings, error) {
	unwrapped, err := unwrap(raw, "settings")
	if err != nil {
		return Settings{}, err
	}
	var settings Settings
	if err := json.Unmarshal(unwrapped, &settings); err != nil {
		return Settings{}, session.ErrUnhandled.Msg("failed to parse settings: " + err.Error())
	}
	return settings, nil
}
