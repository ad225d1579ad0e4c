package bff

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backoffice/internal/platform/logger"
	"backoffice/internal/platform/metrics"
	"backoffice/internal/session"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Options{Out: io.Discard})
}

func testMetrics() *metrics.Metrics {
	return metrics.NewWith(prometheus.NewRegistry())
}

func newTestClient(t *testing.T, handler http.Handler, store session.Store, onExpired func()) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := New(Options{
		BaseURL:          srv.URL,
		Store:            store,
		Logger:           testLogger(),
		Metrics:          testMetrics(),
		OnSessionExpired: onExpired,
	})
	require.NoError(t, err)
	return c
}

func TestBearerHeaderPresentWithToken(t *testing.T) {
	var got string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		w.Write([]byte(`{"success":true,"data":null}`)) //nolint:errcheck
	})

	store := session.NewInMemory()
	require.NoError(t, store.Set(context.Background(), &session.Session{AccessToken: "tok-1"}))

	c := newTestClient(t, handler, store, nil)
	_, err := c.Users.Get(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-1", got)
}

func TestNoBearerHeaderWithoutToken(t *testing.T) {
	var header string
	var present bool
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header = r.Header.Get("Authorization")
		_, present = r.Header["Authorization"]
		w.Write([]byte(`{"success":true,"data":null}`)) //nolint:errcheck
	})

	c := newTestClient(t, handler, session.NewInMemory(), nil)
	_, err := c.Users.Get(context.Background(), "u1")
	require.NoError(t, err)
	assert.False(t, present, "unauthenticated request must carry no Authorization header, got %q", header)
}

type failingStore struct {
	session.Store
}

func (f failingStore) Get(context.Context) (*session.Session, error) {
	return nil, errors.New("storage unavailable")
}

func TestStoreReadFailureSendsUnauthenticated(t *testing.T) {
	var present bool
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, present = r.Header["Authorization"]
		w.Write([]byte(`{"success":true,"data":null}`)) //nolint:errcheck
	})

	c := newTestClient(t, handler, failingStore{session.NewInMemory()}, nil)
	_, err := c.Users.Get(context.Background(), "u1")
	require.NoError(t, err, "a broken store must not fail the request")
	assert.False(t, present)
}

func TestUnauthorizedTearsDownSession(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"message":"token expired"}}`)) //nolint:errcheck
	})

	ctx := context.Background()
	store := session.NewInMemory()
	require.NoError(t, store.Set(ctx, &session.Session{
		AccessToken:  "tok-1",
		RefreshToken: "ref-1",
	}))

	expired := 0
	c := newTestClient(t, handler, store, func() { expired++ })

	_, err := c.Orders.Get(ctx, "o1")
	require.Error(t, err, "the caller must still observe the 401")
	assert.Contains(t, err.Error(), "token expired")

	s, getErr := store.Get(ctx)
	require.NoError(t, getErr)
	assert.Nil(t, s, "401 must clear tokens and cached user")
	assert.Equal(t, 1, expired, "session-expired callback fires once per 401 event")

	// A second 401 is a second distinct event.
	_, err = c.Orders.Get(ctx, "o2")
	require.Error(t, err)
	assert.Equal(t, 2, expired)
}

func TestNon401ErrorsLeaveSessionAlone(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"message":"upstream down"}`)) //nolint:errcheck
	})

	ctx := context.Background()
	store := session.NewInMemory()
	require.NoError(t, store.Set(ctx, &session.Session{AccessToken: "tok-1"}))

	expired := 0
	c := newTestClient(t, handler, store, func() { expired++ })

	_, err := c.Products.Get(ctx, "p1")
	require.Error(t, err)

	s, getErr := store.Get(ctx)
	require.NoError(t, getErr)
	assert.NotNil(t, s, "5xx has no global side effect")
	assert.Zero(t, expired)
}

func TestRequestIDStamped(t *testing.T) {
	var requestID string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID = r.Header.Get("X-Request-ID")
		w.Write([]byte(`{"success":true,"data":null}`)) //nolint:errcheck
	})

	c := newTestClient(t, handler, session.NewInMemory(), nil)
	_, err := c.Users.Get(context.Background(), "u1")
	require.NoError(t, err)
	assert.NotEmpty(t, requestID)
}

func TestMetricsCountTeardowns(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	reg := prometheus.NewRegistry()
	m := metrics.NewWith(reg)

	store := session.NewInMemory()
	require.NoError(t, store.Set(context.Background(), &session.Session{AccessToken: "tok"}))

	c, err := New(Options{BaseURL: srv.URL, Store: store, Logger: testLogger(), Metrics: m})
	require.NoError(t, err)

	_, _ = c.Users.Get(context.Background(), "u1") //nolint:errcheck
	assert.Equal(t, float64(1), testutil.ToFloat64(m.AuthFailures))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.SessionTeardowns))
}
