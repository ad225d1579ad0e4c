package bff

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backoffice/internal/session"
	"backoffice/pkg/apierrors"
	"backoffice/pkg/domain"
)

func TestListForwardsFilterParams(t *testing.T) {
	var query map[string][]string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query()
		w.Write([]byte(`{"data":[],"pagination":{"page":2,"limit":10,"total":0,"totalPages":0}}`)) //nolint:errcheck
	})
	c := newTestClient(t, handler, session.NewInMemory(), nil)
	ctx := context.Background()

	_, err := c.Users.List(ctx, UserListParams{Page: 2, Limit: 10, Search: "ada", Role: "admin", Status: "active"})
	require.NoError(t, err)
	assert.Equal(t, []string{"2"}, query["page"])
	assert.Equal(t, []string{"10"}, query["limit"])
	assert.Equal(t, []string{"ada"}, query["search"])
	assert.Equal(t, []string{"admin"}, query["role"])
	assert.Equal(t, []string{"active"}, query["status"])

	_, err = c.Orders.List(ctx, OrderListParams{Status: "Shipped", DateFrom: "2024-01-01", DateTo: "2024-02-01"})
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-01-01"}, query["dateFrom"])
	assert.Equal(t, []string{"2024-02-01"}, query["dateTo"])

	_, err = c.Inventory.List(ctx, InventoryListParams{LowStock: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"true"}, query["lowStock"])

	_, err = c.Reviews.List(ctx, ReviewListParams{Rating: 4})
	require.NoError(t, err)
	assert.Equal(t, []string{"4"}, query["rating"])

	// Zero values stay out of the query entirely.
	_, err = c.Users.List(ctx, UserListParams{})
	require.NoError(t, err)
	assert.Empty(t, query)
}

func TestGetUnwrapsEnvelope(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/products/p1", r.URL.Path)
		w.Write([]byte(`{"success":true,"data":{"id":"p1","name":"Lamp","sku":"L-1","status":"active","price":19.5}}`)) //nolint:errcheck
	})
	c := newTestClient(t, handler, session.NewInMemory(), nil)

	p, err := c.Products.Get(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, "Lamp", p.Name)
	assert.Equal(t, domain.ProductStatusActive, p.Status)
	assert.Equal(t, 19.5, p.Price)
}

func TestWriteOperationsHitExpectedRoutes(t *testing.T) {
	type call struct{ method, path string }
	var last call
	var body map[string]any
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		last = call{r.Method, r.URL.Path}
		body = nil
		_ = json.NewDecoder(r.Body).Decode(&body) //nolint:errcheck
		w.Write([]byte(`{"success":true,"data":{}}`))
	})
	c := newTestClient(t, handler, session.NewInMemory(), nil)
	ctx := context.Background()

	_, err := c.Users.UpdateStatus(ctx, "u1", domain.UserStatusSuspended)
	require.NoError(t, err)
	assert.Equal(t, call{"PATCH", "/users/u1/status"}, last)
	assert.Equal(t, "suspended", body["status"])

	_, err = c.Orders.UpdateTracking(ctx, "o1", "TRK-7")
	require.NoError(t, err)
	assert.Equal(t, call{"PATCH", "/orders/o1/tracking"}, last)
	assert.Equal(t, "TRK-7", body["trackingNumber"])

	_, err = c.Orders.AddNote(ctx, "o1", "call the customer")
	require.NoError(t, err)
	assert.Equal(t, call{"POST", "/orders/o1/notes"}, last)
	assert.Equal(t, "call the customer", body["note"])

	_, err = c.Inventory.UpdateStock(ctx, "i1", -3, "damaged in transit")
	require.NoError(t, err)
	assert.Equal(t, call{"PATCH", "/inventory/i1/stock"}, last)
	assert.Equal(t, float64(-3), body["quantity"])
	assert.Equal(t, "damaged in transit", body["reason"])

	require.NoError(t, c.Reviews.Delete(ctx, "r1"))
	assert.Equal(t, call{"DELETE", "/reviews/r1"}, last)
}

func TestErrorMessagePreference(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"nested error message wins", `{"error":{"message":"nested"},"message":"flat"}`, "nested"},
		{"flat message is second", `{"message":"flat"}`, "flat"},
		{"module default is last", `{}`, "Failed to load users"},
		{"unparseable body falls back", `<html>gateway error</html>`, "Failed to load users"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte(tt.body)) //nolint:errcheck
			})
			c := newTestClient(t, handler, session.NewInMemory(), nil)

			_, err := c.Users.List(context.Background(), UserListParams{})
			require.Error(t, err)
			assert.Equal(t, tt.want, err.Error())
		})
	}
}

func TestSequentialReadsAreIdentical(t *testing.T) {
	// A stable fixture: the handler always serves the same page.
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":[
			{"id":"u1","name":"Ada","email":"ada@example.com","role":"admin","status":"active","createdAt":"2024-01-01T00:00:00Z"},
			{"id":"u2","name":"Brin","email":"brin@example.com","role":"customer","status":"active","createdAt":"2024-01-02T00:00:00Z"}
		],"pagination":{"page":1,"limit":20,"total":2,"totalPages":1}}`)
	})
	c := newTestClient(t, handler, session.NewInMemory(), nil)
	ctx := context.Background()

	first, err := c.Users.List(ctx, UserListParams{Page: 1, Limit: 20})
	require.NoError(t, err)
	second, err := c.Users.List(ctx, UserListParams{Page: 1, Limit: 20})
	require.NoError(t, err)

	assert.Equal(t, first.Data, second.Data)
	assert.Equal(t, first.Pagination, second.Pagination)
}

func TestDashboardOverviewAggregates(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/admin/dashboard/stats":
			w.Write([]byte(`{"success":true,"data":{"users":{"total":10},"orders":{"total":4,"revenue":99.5},"products":{"total":7},"reviews":{"total":2}}}`)) //nolint:errcheck
		case "/api/admin/dashboard/recent-orders":
			w.Write([]byte(`{"success":true,"data":[{"id":"o1","orderNumber":"N-1"}]}`)) //nolint:errcheck
		case "/api/admin/dashboard/recent-users":
			w.Write([]byte(`{"success":true,"data":[{"id":"u1","name":"Ada"}]}`)) //nolint:errcheck
		default:
			http.NotFound(w, r)
		}
	})
	c := newTestClient(t, handler, session.NewInMemory(), nil)

	ov, err := c.Dashboard.Overview(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 10, ov.Stats.Users.Total)
	assert.Equal(t, 99.5, ov.Stats.Orders.Revenue)
	require.Len(t, ov.RecentOrders, 1)
	assert.Equal(t, "N-1", ov.RecentOrders[0].OrderNumber)
	require.Len(t, ov.RecentUsers, 1)
}

func TestAnalyticsPeriodParam(t *testing.T) {
	var period string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		period = r.URL.Query().Get("period")
		w.Write([]byte(`{"success":true,"data":{"period":"30d","series":[]}}`)) //nolint:errcheck
	})
	c := newTestClient(t, handler, session.NewInMemory(), nil)

	a, err := c.Dashboard.Analytics(context.Background(), "30d")
	require.NoError(t, err)
	assert.Equal(t, "30d", period)
	assert.Equal(t, "30d", a.Period)
}

// The dashboard and inventory endpoints answer with nested payloads; every
// field the console renders must survive the decode with its value intact,
// not silently fall back to zero.
func TestDashboardAndInventoryDecodePopulatedPayloads(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/admin/dashboard/stats":
			w.Write([]byte(`{"success":true,"data":{
				"users":{"total":1180,"active":1045,"newThisMonth":62,"growth":2.8},
				"orders":{"total":214,"pending":9,"processing":17,"completed":181,"revenue":12480.75,"growth":-1.1},
				"products":{"total":96,"active":88,"lowStock":6,"outOfStock":2},
				"reviews":{"total":341,"pending":12,"averageRating":4.3,"growth":1.9}}}`)) //nolint:errcheck
		case "/api/admin/dashboard/analytics":
			w.Write([]byte(`{"success":true,"data":{"period":"7d","series":[
				{"date":"2025-08-25","orders":8,"revenue":317.0,"users":4},
				{"date":"2025-08-26","orders":11,"revenue":351.0,"users":7}]}}`)) //nolint:errcheck
		case "/inventory/inv-2":
			w.Write([]byte(`{"success":true,"data":{"id":"inv-2","productId":"prd-2",
				"stock":3,"reservedStock":1,"availableStock":2,"lowStockThreshold":5,
				"lastUpdated":"2025-08-28T00:00:00Z"}}`)) //nolint:errcheck
		case "/inventory/inv-2/movements":
			w.Write([]byte(`{"success":true,"data":[
				{"id":"mov-1","type":"out","quantity":-4,"reason":"order ORD-1001","createdAt":"2025-08-28T16:21:00Z"}]}`)) //nolint:errcheck
		default:
			http.NotFound(w, r)
		}
	})
	c := newTestClient(t, handler, session.NewInMemory(), nil)
	ctx := context.Background()

	stats, err := c.Dashboard.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1180, stats.Users.Total)
	assert.Equal(t, 214, stats.Orders.Total)
	assert.Equal(t, 12480.75, stats.Orders.Revenue)
	assert.Equal(t, 6, stats.Products.LowStock)
	assert.Equal(t, 4.3, stats.Reviews.AverageRating)

	analytics, err := c.Dashboard.Analytics(ctx, "7d")
	require.NoError(t, err)
	require.Len(t, analytics.Series, 2)
	assert.Equal(t, 8, analytics.Series[0].Orders)
	assert.Equal(t, 351.0, analytics.Series[1].Revenue)

	item, err := c.Inventory.Get(ctx, "inv-2")
	require.NoError(t, err)
	assert.Equal(t, 3, item.Stock)
	assert.Equal(t, 2, item.AvailableStock)

	moves, err := c.Inventory.Movements(ctx, "inv-2")
	require.NoError(t, err)
	require.Len(t, moves, 1)
	assert.Equal(t, domain.MovementOut, moves[0].Type)
	assert.Equal(t, -4, moves[0].Quantity)
}

func TestEnvelopeSuccessFalseIsAnError(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":false,"message":"product is archived"}`)) //nolint:errcheck
	})
	c := newTestClient(t, handler, session.NewInMemory(), nil)

	p, err := c.Products.Get(context.Background(), "p9")
	require.Error(t, err)
	assert.Nil(t, p)
	assert.EqualError(t, err, "product is archived")

	var apiErr *apierrors.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, apierrors.CodeServer, apiErr.Code)
}

// A base URL carrying a path prefix must keep it on every request.
func TestBaseURLPathPrefixIsPreserved(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{"success":true,"data":{"id":"u1","name":"Ada"}}`)) //nolint:errcheck
	}))
	t.Cleanup(srv.Close)

	c, err := New(Options{
		BaseURL: srv.URL + "/bff",
		Store:   session.NewInMemory(),
		Logger:  testLogger(),
		Metrics: testMetrics(),
	})
	require.NoError(t, err)

	_, err = c.Users.Get(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "/bff/users/u1", gotPath)

	_, err = c.Dashboard.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "/bff/api/admin/dashboard/stats", gotPath)
}
