// Package ctl implements the swapctl command line client for a running
// swapman server.
package ctl

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"swapman/pkg/types"
)

// Client is a thin HTTP wrapper around the management API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient returns a client for the given server base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// do issues a request and decodes the JSON response into out (if non-nil).
// Non-2xx responses are returned as errors carrying the server's message.
func (c *Client) do(method, path string, body, out any) error {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, c.baseURL+path, rd)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var e types.ErrorResponse
		if json.NewDecoder(resp.Body).Decode(&e) == nil && e.Error != "" {
			return fmt.Errorf("%s (HTTP %d)", e.Error, resp.StatusCode)
		}
		return fmt.Errorf("HTTP %d", resp.StatusCode)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// fetchText GETs a path and returns the raw body, for attachment endpoints.
func (c *Client) fetchText(path string) (string, error) {
	resp, err := c.httpClient.Get(c.baseURL + path)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP %d", resp.StatusCode)
	}
	b, err := io.ReadAll(resp.Body)
	return string(b), err
}

func (c *Client) Health() (types.HealthResponse, error) {
	var out types.HealthResponse
	err := c.do(http.MethodGet, "/api/health", nil, &out)
	return out, err
}

func (c *Client) Models() (types.ModelsResponse, error) {
	var out types.ModelsResponse
	err := c.do(http.MethodGet, "/api/models", nil, &out)
	return out, err
}

func (c *Client) AddModel(spec types.ModelSpec) (types.AddModelResponse, error) {
	var out types.AddModelResponse
	err := c.do(http.MethodPost, "/api/config/models", spec, &out)
	return out, err
}

func (c *Client) RemoveModel(name string) (types.MessageResponse, error) {
	var out types.MessageResponse
	err := c.do(http.MethodDelete, "/api/config/models/"+name, nil, &out)
	return out, err
}

func (c *Client) Status() (types.SystemStatus, error) {
	var out types.SystemStatus
	err := c.do(http.MethodGet, "/api/system/status", nil, &out)
	return out, err
}

func (c *Client) Test() (types.TestResponse, error) {
	var out types.TestResponse
	err := c.do(http.MethodPost, "/api/system/test", nil, &out)
	return out, err
}

func (c *Client) Logs() (types.LogsResponse, error) {
	var out types.LogsResponse
	err := c.do(http.MethodGet, "/api/logs", nil, &out)
	return out, err
}

func (c *Client) ClearLogs() (types.MessageResponse, error) {
	var out types.MessageResponse
	err := c.do(http.MethodDelete, "/api/logs", nil, &out)
	return out, err
}

func (c *Client) DownloadLogs() (string, error) {
	return c.fetchText("/api/logs/download")
}

func (c *Client) StartDownload(url, filename string) (types.DownloadAccepted, error) {
	var out types.DownloadAccepted
	err := c.do(http.MethodPost, "/api/models/download", types.DownloadRequest{URL: url, Filename: filename}, &out)
	return out, err
}
