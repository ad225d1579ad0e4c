// Package bff is the typed client for the admin backend-for-frontend. All
// console traffic flows through one configured HTTP client so the credential
// and session-teardown interceptors apply uniformly; the per-resource APIs
// hanging off Client normalize the BFF's response envelopes.
package bff

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"

	"backoffice/internal/platform/config"
	"backoffice/internal/platform/logger"
	"backoffice/internal/platform/metrics"
	"backoffice/internal/session"
	"backoffice/pkg/apierrors"
)

// Options configures a Client.
type Options struct {
	// BaseURL is the BFF origin. Defaults to config.DefaultBaseURL.
	BaseURL string
	// Timeout bounds each call. Defaults to config.DefaultRequestTimeout.
	Timeout time.Duration
	// Store supplies and receives the bearer session. Required.
	Store session.Store
	// Logger records request failures. Required.
	Logger *logger.Logger
	// Metrics instruments outbound traffic. May be nil.
	Metrics *metrics.Metrics
	// OnSessionExpired is invoked after a 401 has torn the session down, so
	// the hosting application can send the operator back to login. May be nil.
	OnSessionExpired func()
	// Base is the innermost transport, overridable in tests. Defaults to
	// http.DefaultTransport.
	Base http.RoundTripper
}

// Client is the shared BFF transport plus the per-resource API surface.
type Client struct {
	http    *http.Client
	baseURL *url.URL
	store   session.Store
	log     *logger.Logger

	Auth      *AuthAPI
	Users     *UsersAPI
	Products  *ProductsAPI
	Orders    *OrdersAPI
	Reviews   *ReviewsAPI
	Inventory *InventoryAPI
	Dashboard *DashboardAPI
}

// New builds the client and wires the interceptor chain: bearer injection on
// the way out, 401 session teardown on the way back, tracing and metrics
// around the wire call.
func New(opts Options) (*Client, error) {
	if opts.Store == nil {
		return nil, fmt.Errorf("bff: session store is required")
	}
	if opts.Logger == nil {
		return nil, fmt.Errorf("bff: logger is required")
	}
	if opts.BaseURL == "" {
		opts.BaseURL = config.DefaultBaseURL
	}
	if opts.Timeout == 0 {
		opts.Timeout = config.DefaultRequestTimeout
	}

	base, err := url.Parse(opts.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("bff: parse base URL: %w", err)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("bff: cookie jar: %w", err)
	}

	rt := opts.Base
	if rt == nil {
		rt = http.DefaultTransport
	}
	rt = newInstrumentTransport(rt, opts.Metrics)
	rt = newUnauthorizedTransport(rt, opts.Store, opts.Metrics, opts.Logger, opts.OnSessionExpired)
	rt = newBearerTransport(rt, opts.Store)

	c := &Client{
		http: &http.Client{
			Timeout:   opts.Timeout,
			Jar:       jar,
			Transport: rt,
		},
		baseURL: base,
		store:   opts.Store,
		log:     opts.Logger,
	}
	c.Auth = &AuthAPI{c: c}
	c.Users = &UsersAPI{c: c}
	c.Products = &ProductsAPI{c: c}
	c.Orders = &OrdersAPI{c: c}
	c.Reviews = &ReviewsAPI{c: c}
	c.Inventory = &InventoryAPI{c: c}
	c.Dashboard = &DashboardAPI{c: c}
	return c, nil
}

// errorEnvelope is the shape the BFF uses for failures. Either the nested
// error object or the flat message may be present; neither is guaranteed.
type errorEnvelope struct {
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
	Message string `json:"message"`
}

// do performs one call against the BFF. query may be nil; body, when
// non-nil, is sent as JSON; out, when non-nil, receives the decoded 2xx
// body. fallback is the module-specific message used when the server did not
// say anything useful.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any, fallback string) error {
	// JoinPath keeps any path prefix on the base URL, so a base of
	// https://host/bff still routes /users to /bff/users.
	u := c.baseURL.JoinPath(path)
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("bff: encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return fmt.Errorf("bff: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		apiErr := &apierrors.Error{
			Code:     apierrors.CodeNetwork,
			Message:  fallback,
			Endpoint: path,
			Method:   method,
			Err:      err,
		}
		c.log.APIError(path, apiErr, nil)
		return apiErr
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &apierrors.Error{
			Code:       apierrors.CodeDecode,
			Message:    fallback,
			StatusCode: resp.StatusCode,
			Endpoint:   path,
			Method:     method,
			Err:        err,
		}
	}

	if resp.StatusCode >= 400 {
		apiErr := &apierrors.Error{
			Code:       apierrors.FromStatus(resp.StatusCode),
			Message:    normalizeErrorMessage(respBody, fallback),
			StatusCode: resp.StatusCode,
			Endpoint:   path,
			Method:     method,
			Body:       respBody,
		}
		c.log.APIError(path, apiErr, nil)
		return apiErr
	}

	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return &apierrors.Error{
				Code:       apierrors.CodeDecode,
				Message:    fallback,
				StatusCode: resp.StatusCode,
				Endpoint:   path,
				Method:     method,
				Body:       respBody,
				Err:        err,
			}
		}
	}
	return nil
}

// normalizeErrorMessage picks the most specific server-provided message:
// the nested error object first, the flat message second, the module default
// last.
func normalizeErrorMessage(body []byte, fallback string) string {
	var env errorEnvelope
	if err := json.Unmarshal(body, &env); err == nil {
		if env.Error != nil && env.Error.Message != "" {
			return env.Error.Message
		}
		if env.Message != "" {
			return env.Message
		}
	}
	return fallback
}
