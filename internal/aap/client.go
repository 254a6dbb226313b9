// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package aap

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/canonical/aap-sync-service/internal/logging"
	"github.com/canonical/aap-sync-service/internal/monitoring"
	"github.com/canonical/aap-sync-service/internal/tracing"
)

const dependencyName = "aap"

var _ TransportInterface = (*Client)(nil)

type Config struct {
	BaseURL       string
	TLSSkipVerify bool
	Timeout       time.Duration
}

// Client issues requests against the automation platform, normalizing URLs
// and classifying failures. No retries happen at this layer, retry policy
// belongs to callers.
type Client struct {
	baseURL string
	client  *http.Client
	tokens  TokenProviderInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) Get(ctx context.Context, path string) ([]byte, error) {
	return c.GetAbsolute(ctx, JoinURL(c.baseURL, path))
}

func (c *Client) GetAbsolute(ctx context.Context, fullURL string) ([]byte, error) {
	ctx, span := c.tracer.Start(ctx, "aap.Client.Get")
	defer span.End()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, &TransportError{URL: fullURL, Err: err}
	}

	if err := c.authorize(ctx, req); err != nil {
		return nil, err
	}

	return c.do(req)
}

func (c *Client) Post(ctx context.Context, path string, body interface{}) ([]byte, error) {
	ctx, span := c.tracer.Start(ctx, "aap.Client.Post")
	defer span.End()

	fullURL := JoinURL(c.baseURL, path)

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize payload for %s: %w", fullURL, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, fullURL, bytes.NewReader(payload))
	if err != nil {
		return nil, &TransportError{URL: fullURL, Err: err}
	}

	req.Header.Set("Content-Type", "application/json")

	if err := c.authorize(ctx, req); err != nil {
		return nil, err
	}

	return c.do(req)
}

// PostForm sends a URL-encoded form with no Authorization header. Only the
// OAuth token endpoint uses this.
func (c *Client) PostForm(ctx context.Context, path string, form url.Values) ([]byte, error) {
	ctx, span := c.tracer.Start(ctx, "aap.Client.PostForm")
	defer span.End()

	fullURL := JoinURL(c.baseURL, path)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, fullURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, &TransportError{URL: fullURL, Err: err}
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	return c.do(req)
}

func (c *Client) Delete(ctx context.Context, path string) error {
	ctx, span := c.tracer.Start(ctx, "aap.Client.Delete")
	defer span.End()

	fullURL := JoinURL(c.baseURL, path)

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, fullURL, nil)
	if err != nil {
		return &TransportError{URL: fullURL, Err: err}
	}

	if err := c.authorize(ctx, req); err != nil {
		return err
	}

	_, err = c.do(req)

	return err
}

func (c *Client) authorize(ctx context.Context, req *http.Request) error {
	if c.tokens == nil {
		return nil
	}

	token, err := c.tokens.Token(ctx)
	if err != nil {
		c.logger.Errorf("failed to obtain token for %s: %v", req.URL, err)
		return err
	}

	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))

	return nil
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	c.logger.Infof("%s %s", req.Method, req.URL)

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Errorf("%s %s failed: %v", req.Method, req.URL, err)
		c.setAvailability(0)

		return nil, &TransportError{URL: req.URL.String(), Err: err}
	}
	defer resp.Body.Close()

	c.setAvailability(1)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Errorf("failed to read response from %s: %v", req.URL, err)
		return nil, &TransportError{URL: req.URL.String(), Err: err}
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return body, nil
	}

	err = classify(req.URL.String(), resp.StatusCode, body)
	c.logger.Errorf("%s %s failed: %v", req.Method, req.URL, err)

	return nil, err
}

func (c *Client) setAvailability(value float64) {
	if err := c.monitor.SetDependencyAvailability(map[string]string{"component": dependencyName}, value); err != nil {
		c.logger.Errorf("failed to set availability metric: %v", err)
	}
}

// classify maps a non-2xx response to the error taxonomy: 403 first, then a
// structured body with an `__all__` array, then any other JSON object body,
// then the catch-all.
func classify(fullURL string, statusCode int, body []byte) error {
	if statusCode == http.StatusForbidden {
		return &PermissionError{URL: fullURL}
	}

	var parsed map[string]interface{}
	if err := json.Unmarshal(body, &parsed); err == nil && len(parsed) > 0 {
		if message := joinBodyValues(parsed); message != "" {
			return &ValidationError{URL: fullURL, StatusCode: statusCode, Message: message}
		}
	}

	return &RequestFailedError{URL: fullURL, StatusCode: statusCode}
}

func joinBodyValues(body map[string]interface{}) string {
	if all, ok := body["__all__"].([]interface{}); ok {
		return joinValues(all)
	}

	keys := make([]string, 0, len(body))
	for k := range body {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]interface{}, 0, len(body))
	for _, k := range keys {
		parts = append(parts, body[k])
	}

	return joinValues(parts)
}

func joinValues(values []interface{}) string {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		switch value := v.(type) {
		case string:
			parts = append(parts, value)
		case []interface{}:
			if joined := joinValues(value); joined != "" {
				parts = append(parts, joined)
			}
		default:
			parts = append(parts, fmt.Sprint(value))
		}
	}

	return strings.Join(parts, " ")
}

// JoinURL glues path onto base, stripping trailing slashes from base and
// leading slashes from path.
func JoinURL(base, path string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
}

func NewClient(
	config *Config,
	tokens TokenProviderInterface,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Client {
	c := new(Client)

	c.baseURL = strings.TrimRight(config.BaseURL, "/")
	c.tokens = tokens

	timeout := config.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	transport := http.DefaultTransport
	if config.TLSSkipVerify {
		transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		}
	}

	c.client = &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}

	c.tracer = tracer
	c.monitor = monitor
	c.logger = logger

	return c
}
