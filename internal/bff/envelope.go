package bff

import (
	"context"
	"net/http"
	"net/url"

	"backoffice/pkg/apierrors"
)

// Envelope is the {success, data, message} wrapper every BFF response
// follows. Message is not guaranteed on success.
type Envelope[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Message string `json:"message,omitempty"`
}

// Pagination describes one page of a list response.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// Paginated is the list envelope: a page of records plus its pagination
// block.
type Paginated[T any] struct {
	Data       []T        `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// callEnvelope performs a call whose 2xx body is an Envelope and returns the
// unwrapped data payload. A 2xx carrying {"success":false} is still a
// failure; the server's message wins over the module fallback.
func callEnvelope[T any](ctx context.Context, c *Client, method, path string, query url.Values, body any, fallback string) (T, error) {
	var env Envelope[T]
	if err := c.do(ctx, method, path, query, body, &env, fallback); err != nil {
		var zero T
		return zero, err
	}
	if !env.Success {
		var zero T
		msg := env.Message
		if msg == "" {
			msg = fallback
		}
		return zero, &apierrors.Error{
			Code:     apierrors.CodeServer,
			Message:  msg,
			Endpoint: path,
			Method:   method,
		}
	}
	return env.Data, nil
}

// callPaginated performs a GET whose 2xx body is a Paginated list.
func callPaginated[T any](ctx context.Context, c *Client, path string, query url.Values, fallback string) (*Paginated[T], error) {
	var page Paginated[T]
	if err := c.do(ctx, http.MethodGet, path, query, nil, &page, fallback); err != nil {
		return nil, err
	}
	return &page, nil
}
