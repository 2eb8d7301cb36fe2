// Package upstream is the thin HTTP client for the external swap service.
// Connectivity is never assumed: listing degrades to an explicit unavailable
// result, and every call is attempted exactly once with no retries.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"swapman/pkg/types"
)

// testPrompt is the fixed short prompt used by the test completion call.
const testPrompt = "Hello! Please respond with just 'Test successful'."

// TestOutcome reports a completed test inference call.
type TestOutcome struct {
	ModelID       string
	Response      string
	ElapsedMillis int
}

// Client talks to a configurable base URL. The base URL is runtime-settable
// via /api/settings, so reads go through the mutex.
type Client struct {
	mu         sync.RWMutex
	baseURL    string
	reqTimeout time.Duration
	httpClient *http.Client
}

// New constructs a client. All requests carry context-based timeouts; the
// http.Client itself has Timeout=0 so the context stays authoritative.
func New(baseURL string, connectTimeout, reqTimeout time.Duration) *Client {
	tr := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   connectTimeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		reqTimeout: reqTimeout,
		httpClient: &http.Client{Transport: tr, Timeout: 0},
	}
}

// BaseURL returns the current swap service base URL.
func (c *Client) BaseURL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.baseURL
}

// SetBaseURL repoints the client. Process-lifetime only.
func (c *Client) SetBaseURL(u string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.baseURL = strings.TrimRight(u, "/")
}

type modelsListing struct {
	Data []types.ActiveModel `json:"data"`
}

// ListActiveModels fetches the swap service's model listing. Any transport
// failure or non-success status yields (nil, false): the caller treats that
// as disconnected rather than an error.
func (c *Client) ListActiveModels(ctx context.Context) ([]types.ActiveModel, bool) {
	if c.reqTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.reqTimeout)
		defer cancel()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL()+"/v1/models", nil)
	if err != nil {
		return nil, false
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, false
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, false
	}
	var listing modelsListing
	if err := json.NewDecoder(resp.Body).Decode(&listing); err != nil {
		return nil, false
	}
	if listing.Data == nil {
		listing.Data = []types.ActiveModel{}
	}
	return listing.Data, true
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// RunTest issues one chat completion against the first active model with a
// fixed prompt and a small token budget, measuring wall-clock elapsed time.
func (c *Client) RunTest(ctx context.Context) (TestOutcome, error) {
	models, available := c.ListActiveModels(ctx)
	if !available {
		return TestOutcome{}, errUnavailable{msg: "swap service unreachable"}
	}
	if len(models) == 0 {
		return TestOutcome{}, errNoActiveModels{}
	}
	modelID := models[0].ID

	if c.reqTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.reqTimeout)
		defer cancel()
	}
	payload := chatRequest{
		Model:       modelID,
		Messages:    []chatMessage{{Role: "user", Content: testPrompt}},
		MaxTokens:   10,
		Temperature: 0.1,
	}
	body, _ := json.Marshal(payload)

	start := time.Now()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL()+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return TestOutcome{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return TestOutcome{}, ctx.Err()
		}
		return TestOutcome{}, errUnavailable{msg: err.Error()}
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return TestOutcome{}, errUnavailable{msg: "swap service http error: " + resp.Status + ": " + string(b)}
	}
	var chat chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chat); err != nil {
		return TestOutcome{}, errors.New("decoding completion: " + err.Error())
	}
	reply := "No response"
	if len(chat.Choices) > 0 && chat.Choices[0].Message.Content != "" {
		reply = chat.Choices[0].Message.Content
	}
	return TestOutcome{
		ModelID:       modelID,
		Response:      reply,
		ElapsedMillis: int(time.Since(start).Milliseconds()),
	}, nil
}
