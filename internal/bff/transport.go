package bff

import (
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"backoffice/internal/platform/logger"
	"backoffice/internal/platform/metrics"
	"backoffice/internal/session"
)

// bearerTransport injects the stored access token into every outbound
// request. A failed store read is treated as "no token": the request still
// goes out, just unauthenticated, because some endpoints (login) need no
// credential.
type bearerTransport struct {
	next  http.RoundTripper
	store session.Store
}

func newBearerTransport(next http.RoundTripper, store session.Store) http.RoundTripper {
	return &bearerTransport{next: next, store: store}
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	s, err := t.store.Get(req.Context())
	if err != nil || s == nil || s.AccessToken == "" {
		return t.next.RoundTrip(req)
	}

	clone := req.Clone(req.Context())
	clone.Header.Set("Authorization", "Bearer "+s.AccessToken)
	return t.next.RoundTrip(clone)
}

// unauthorizedTransport tears the session down on any 401. The teardown is
// unconditional: it does not distinguish an expired token from one that
// never existed, and it does not attempt a refresh exchange. The response is
// returned unmodified so the caller still observes the failure.
type unauthorizedTransport struct {
	next      http.RoundTripper
	store     session.Store
	metrics   *metrics.Metrics
	log       *logger.Logger
	onExpired func()
}

func newUnauthorizedTransport(next http.RoundTripper, store session.Store, m *metrics.Metrics, log *logger.Logger, onExpired func()) http.RoundTripper {
	return &unauthorizedTransport{next: next, store: store, metrics: m, log: log, onExpired: onExpired}
}

func (t *unauthorizedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.next.RoundTrip(req)
	if err != nil || resp.StatusCode != http.StatusUnauthorized {
		return resp, err
	}

	if t.metrics != nil {
		t.metrics.AuthFailures.Inc()
	}

	if clearErr := t.store.Clear(req.Context()); clearErr != nil {
		t.log.Error("failed to clear session after 401", logger.Context{
			"endpoint":     req.URL.Path,
			"errorMessage": clearErr.Error(),
		})
	} else if t.metrics != nil {
		t.metrics.SessionTeardowns.Inc()
	}

	t.log.Warn("session torn down after 401", logger.Context{"endpoint": req.URL.Path})
	if t.onExpired != nil {
		t.onExpired()
	}
	return resp, nil
}

// instrumentTransport stamps a request ID, opens a span around the wire call
// and records request metrics.
type instrumentTransport struct {
	next    http.RoundTripper
	metrics *metrics.Metrics
	tracer  trace.Tracer
}

func newInstrumentTransport(next http.RoundTripper, m *metrics.Metrics) http.RoundTripper {
	return &instrumentTransport{
		next:    next,
		metrics: m,
		tracer:  otel.Tracer("backoffice/bff"),
	}
}

func (t *instrumentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx, span := t.tracer.Start(req.Context(), "bff.request", trace.WithAttributes(
		attribute.String("http.method", req.Method),
		attribute.String("http.path", req.URL.Path),
	))

	clone := req.Clone(ctx)
	if clone.Header.Get("X-Request-ID") == "" {
		clone.Header.Set("X-Request-ID", uuid.NewString())
	}

	start := time.Now()
	resp, err := t.next.RoundTrip(clone)

	if t.metrics != nil {
		t.metrics.RequestDuration.WithLabelValues(req.Method).Observe(time.Since(start).Seconds())
		t.metrics.RequestsTotal.WithLabelValues(req.Method, statusClass(resp, err)).Inc()
	}

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
		if resp.StatusCode >= 500 {
			span.SetStatus(codes.Error, resp.Status)
		}
	}
	span.End()

	return resp, err
}

func statusClass(resp *http.Response, err error) string {
	if err != nil {
		return "error"
	}
	return fmt.Sprintf("%dxx", resp.StatusCode/100)
}
