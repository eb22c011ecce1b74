package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/yamadatarousan/ticket-manager/internal/session"
)

// Page is the uniform envelope every list endpoint returns. Items stays raw
// so the typed entity methods can decode it into their own slice types.
type Page struct {
	Items      json.RawMessage `json:"items"`
	Total      int             `json:"total"`
	Page       int             `json:"page"`
	PerPage    int             `json:"per_page"`
	TotalPages int             `json:"total_pages"`
}

// ListResources fetches a list endpoint and decodes its envelope.
func (c *Client) ListResources(ctx context.Context, resource string, query map[string]string) (Page, error) {
	raw, err := c.DoRequest(ctx, RequestOptions{
		Method: http.MethodGet,
		Path:   resource,
		Query:  query,
	})
	if err != nil {
		return Page{}, err
	}
	var page Page
	if err := json.Unmarshal(raw, &page); err != nil {
		return Page{}, session.ErrUnhandled.Msg("failed to parse list response: " + err.Error())
	}
	return page, nil
}

// GetResource fetches a single resource and unwraps its singular key
// (e.g. {"ticket": {...}}).
func (c *Client) GetResource(ctx context.Context, resource string, id int64, key string) (json.RawMessage, error) {
	raw, err := c.DoRequest(ctx, RequestOptions{
		Method: http.MethodGet,
		Path:   resource + "/" + strconv.FormatInt(id, 10),
	})
	if err != nil {
		return nil, err
	}
	return unwrap(raw, key)
}

// CreateResource posts a payload wrapped in its singular key and unwraps the
// created resource from the response.
func (c *Client) CreateResource(ctx context.Context, resource, key string, payload any) (json.RawMessage, error) {
	body, err := wrap(key, payload)
	if err != nil {
		return nil, err
	}
	raw, err := c.DoRequest(ctx, RequestOptions{
		Method: http.MethodPost,
		Path:   resource,
		Body:   body,
	})
	if err != nil {
		return nil, err
	}
	return unwrap(raw, key)
}

// UpdateResource puts a wrapped payload to a single resource and unwraps the
// updated resource from the response.
func (c *Client) UpdateResource(ctx context.Context, resource string, id int64, key string, payload any) (json.RawMessage, error) {
	body, err := wrap(key, payload)
	if err != nil {
		return nil, err
	}
	raw, err := c.DoRequest(ctx, RequestOptions{
		Method: http.MethodPut,
		Path:   resource + "/" + strconv.FormatInt(id, 10),
		Body:   body,
	})
	if err != nil {
		return nil, err
	}
	return unwrap(raw, key)
}

// DeleteResource deletes a single resource.
func (c *Client) DeleteResource(ctx context.Context, resource string, id int64) error {
	_, err := c.DoRequest(ctx, RequestOptions{
		Method: http.MethodDelete,
		Path:   resource + "/" + strconv.FormatInt(id, 10),
	})
	return err
}

// unwrap extracts the resource under its singular key.
func unwrap(body []byte, key string) (json.RawMessage, error) {
	res := gjson.GetBytes(body, key)
	if !res.Exists() {
		return nil, session.ErrUnhandled.Msg("response missing expected key: " + key)
	}
	return json.RawMessage(res.Raw), nil
}

// wrap encodes a payload under its singular key, the shape mutation
// endpoints accept.
func wrap(key string, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, session.ErrUnhandled.Msg("failed to encode request payload: " + err.Error())
	}
	body, err := sjson.SetRawBytes([]byte(`{}`), key, data)
	if err != nil {
		return nil, session.ErrUnhandled.Msg("failed to wrap request payload: " + err.Error())
	}
	return body, nil
}
