package osuapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

type errorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// v1Request performs a GET against the key authenticated v1 api and decodes the payload into out
func (c *Client) v1Request(ctx context.Context, endpoint string, params url.Values, out interface{}) error {
	if c == nil {
		return ErrNoClient
	}
	if params == nil {
		params = url.Values{}
	}
	params.Set("k", c.config.APIKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/"+endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("couldn't create request. %w", err)
	}
	req.Header.Set("Accept", "application/json")

	body, err := c.do(req, endpoint)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("error parsing %v response. %w", endpoint, err)
	}
	return nil
}

// v2Request performs a GET against the oauth authenticated v2 api
func (c *Client) v2Request(ctx context.Context, path string, token string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/v2/"+path, nil)
	if err != nil {
		return fmt.Errorf("couldn't create request. %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	body, err := c.do(req, path)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("error parsing %v response. %w", path, err)
	}
	return nil
}

func (c *Client) postJSON(ctx context.Context, path string, payload interface{}, out interface{}) error {
	buf, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("error JSONifying object. %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(buf))
	if err != nil {
		return fmt.Errorf("couldn't create request. %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	body, err := c.do(req, path)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("error parsing %v response. %w", path, err)
	}
	return nil
}

func (c *Client) do(req *http.Request, name string) ([]byte, error) {
	if err := c.wait(req.Context()); err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("couldn't execute request with client. %w", err)
	}
	defer resp.Body.Close()

	c.log.Debug("osu api request", "method", req.Method, "endpoint", name, "status", resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading request. %w", err)
	}

	// Check if it's json containing an error
	if trimmed := bytes.TrimSpace(body); len(trimmed) > 0 && trimmed[0] == '{' {
		var rmtErr errorResponse
		if json.Unmarshal(trimmed, &rmtErr) == nil && rmtErr.Error != "" {
			return nil, &APIError{
				StatusCode:  resp.StatusCode,
				Message:     rmtErr.Error,
				Description: rmtErr.ErrorDescription,
			}
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	}

	return body, nil
}
