// Package client talks to the Pocket Planner REST API and maps its cent based
// DTOs onto the decimal domain types.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
)

// APIError is a non-2xx answer from the API. Message is the response body
// text, or "Request failed: {status}" when the body is empty.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

type Client struct {
	baseURL    string
	httpClient *http.Client

	mutex sync.RWMutex
	token string
}

// New returns a client for baseURL, which already ends in /api.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), httpClient: httpClient}
}

// SetToken sets the id_token sent as the session cookie. An empty token sends
// no cookie.
func (c *Client) SetToken(token string) {
	c.mutex.Lock()
	c.token = token
	c.mutex.Unlock()
}

func (c *Client) Token() string {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return c.token
}

// do sends body as JSON and decodes a JSON answer into out. A 204 leaves out
// untouched.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.Token(); token != "" {
		req.AddCookie(&http.Cookie{Name: "id_token", Value: token})
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		text, _ := io.ReadAll(resp.Body)
		message := strings.TrimSpace(string(text))
		if message == "" {
			message = fmt.Sprintf("Request failed: %d", resp.StatusCode)
		}
		return &APIError{Status: resp.StatusCode, Message: message}
	}

	if resp.StatusCode == http.StatusNoContent || out == nil {
		return nil
	}
	if err = json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}
