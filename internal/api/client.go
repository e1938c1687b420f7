// Package api is the generic request layer for the platform's REST API:
// one HTTP call in, a parsed JSON body or a structured error out. It knows
// nothing about individual resources; the command layer supplies method,
// path, query, and body.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
)

// TokenSource supplies the Authorization header value for each request.
type TokenSource interface {
	AuthHeader(ctx context.Context) (string, error)
}

// Client makes authenticated JSON requests against the platform API.
type Client struct {
	baseURL    string
	tokens     TokenSource
	httpClient *http.Client
	logger     *logrus.Logger
}

// NewClient builds a client rooted at baseURL. Bearer tokens come from the
// token source on every call, so token refresh is transparent to callers.
func NewClient(baseURL string, tokens TokenSource, logger *logrus.Logger) *Client {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		tokens:  tokens,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

// Do performs one API request. body, when non-nil, is marshaled to JSON.
// A 204 yields an empty result; any other non-2xx status yields *Error.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body any) (gjson.Result, error) {
	endpoint := c.baseURL + "/" + strings.TrimPrefix(path, "/")
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var payload io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return gjson.Result{}, fmt.Errorf("failed to encode request body: %w", err)
		}
		payload = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, payload)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	authHeader, err := c.tokens.AuthHeader(ctx)
	if err != nil {
		return gjson.Result{}, err
	}
	req.Header.Set("Authorization", authHeader)

	c.logger.WithFields(logrus.Fields{
		"method": method,
		"url":    endpoint,
	}).Debug("API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("failed to read response: %w", err)
	}

	c.logger.WithFields(logrus.Fields{
		"status": resp.StatusCode,
		"bytes":  len(respBody),
	}).Debug("API response")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return gjson.Result{}, newError(resp.StatusCode, respBody)
	}

	if resp.StatusCode == http.StatusNoContent || len(respBody) == 0 {
		return gjson.Parse("{}"), nil
	}

	if !gjson.ValidBytes(respBody) {
		// A handful of endpoints return plain text on success.
		return gjson.Result{Type: gjson.String, Str: string(respBody)}, nil
	}

	return gjson.ParseBytes(respBody), nil
}

// Get issues a GET request.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (gjson.Result, error) {
	return c.Do(ctx, http.MethodGet, path, query, nil)
}

// Post issues a POST request with an optional JSON body.
func (c *Client) Post(ctx context.Context, path string, query url.Values, body any) (gjson.Result, error) {
	return c.Do(ctx, http.MethodPost, path, query, body)
}

// Patch issues a PATCH request with a JSON body.
func (c *Client) Patch(ctx context.Context, path string, body any) (gjson.Result, error) {
	return c.Do(ctx, http.MethodPatch, path, nil, body)
}

// Put issues a PUT request with an optional JSON body.
func (c *Client) Put(ctx context.Context, path string, body any) (gjson.Result, error) {
	return c.Do(ctx, http.MethodPut, path, nil, body)
}

// Delete issues a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) (gjson.Result, error) {
	return c.Do(ctx, http.MethodDelete, path, nil, nil)
}

// Entries extracts the conventional "entries" array from a listing
// response; a response that is itself an array is returned directly.
func Entries(result gjson.Result) []gjson.Result {
	if result.IsArray() {
		return result.Array()
	}
	return result.Get("entries").Array()
}
