// Package gateway is the typed HTTP client for the desk-management API.
// Every call carries the caller's bearer token; the portal holds no
// credentials of its own.
package gateway

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

	"go.uber.org/zap"

	"github.com/noah-isme/desk-portal-api/pkg/config"
	appErrors "github.com/noah-isme/desk-portal-api/pkg/errors"
)

const defaultPageSize = 50

// maxPageSize mirrors the upstream pagination cap.
const maxPageSize = 50

// Client talks to the upstream desk-management service.
type Client struct {
	baseURL  *url.URL
	http     *http.Client
	logger   *zap.Logger
	pageSize int
	observe  func(method, path string, status int, duration time.Duration)
}

// SetObserver installs a hook that sees every upstream call. Status 0
// means the request never reached the service.
func (c *Client) SetObserver(fn func(method, path string, status int, duration time.Duration)) {
	c.observe = fn
}

// NewClient constructs a Client from upstream configuration.
func NewClient(cfg config.UpstreamConfig, logger *zap.Logger) (*Client, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	base := strings.TrimRight(cfg.BaseURL, "/")
	u, err := url.Parse(base)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid upstream base URL %q", cfg.BaseURL)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	pageSize := cfg.PageSize
	if pageSize <= 0 || pageSize > maxPageSize {
		pageSize = defaultPageSize
	}

	return &Client{
		baseURL:  u,
		http:     &http.Client{Timeout: timeout},
		logger:   logger,
		pageSize: pageSize,
	}, nil
}

// page is the upstream pagination envelope.
type page[T any] struct {
	Total int `json:"total"`
	Page  int `json:"page"`
	Size  int `json:"size"`
	Data  []T `json:"data"`
}

// upstreamError is the FastAPI error body. Detail may be a plain string
// or a structured validation list; both are flattened to a message.
type upstreamError struct {
	Detail json.RawMessage `json:"detail"`
}

func (e upstreamError) message() string {
	if len(e.Detail) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(e.Detail, &s); err == nil {
		return s
	}
	var items []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(e.Detail, &items); err == nil && len(items) > 0 {
		msgs := make([]string, 0, len(items))
		for _, item := range items {
			if item.Msg != "" {
				msgs = append(msgs, item.Msg)
			}
		}
		return strings.Join(msgs, "; ")
	}
	return string(e.Detail)
}

func (c *Client) do(ctx context.Context, method, path, token string, query url.Values, body, out any) error {
	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + path
	if query != nil {
		u.RawQuery = query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "encode request body")
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "build upstream request")
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		if c.observe != nil {
			c.observe(method, path, 0, time.Since(start))
		}
		c.logger.Warn("upstream unreachable", zap.String("method", method), zap.String("path", path), zap.Error(err))
		return appErrors.Wrap(err, appErrors.ErrUpstreamUnavailable.Code, appErrors.ErrUpstreamUnavailable.Status, appErrors.ErrUpstreamUnavailable.Message)
	}
	defer func() { _ = resp.Body.Close() }()
	if c.observe != nil {
		c.observe(method, path, resp.StatusCode, time.Since(start))
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrUpstreamUnavailable.Code, appErrors.ErrUpstreamUnavailable.Status, appErrors.ErrUpstreamUnavailable.Message)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return c.mapStatus(resp.StatusCode, raw, method, path)
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		c.logger.Warn("upstream response decode failed", zap.String("path", path), zap.Error(err))
		return appErrors.Wrap(err, appErrors.ErrUpstreamDecode.Code, appErrors.ErrUpstreamDecode.Status, appErrors.ErrUpstreamDecode.Message)
	}
	return nil
}

// mapStatus translates an upstream failure into a portal error. A 401
// always means the caller's token no longer works, so the browser must
// re-authenticate.
func (c *Client) mapStatus(status int, body []byte, method, path string) error {
	var ue upstreamError
	_ = json.Unmarshal(body, &ue)
	detail := ue.message()

	c.logger.Info("upstream rejected request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", status),
		zap.String("detail", detail),
	)

	switch status {
	case http.StatusUnauthorized:
		return appErrors.ErrSessionExpired
	case http.StatusForbidden:
		return clone(appErrors.ErrForbidden, detail)
	case http.StatusNotFound:
		return clone(appErrors.ErrNotFound, detail)
	case http.StatusConflict:
		return clone(appErrors.ErrConflict, detail)
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return clone(appErrors.ErrValidation, detail)
	default:
		if status >= http.StatusInternalServerError {
			return clone(appErrors.ErrUpstreamUnavailable, detail)
		}
		return clone(appErrors.ErrUpstreamDecode, detail)
	}
}

func clone(base *appErrors.Error, detail string) *appErrors.Error {
	return appErrors.Clone(base, detail)
}

// PageSize returns the page size used when walking paginated listings.
func (c *Client) PageSize() int {
	return c.pageSize
}
