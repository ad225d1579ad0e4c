package bff

import (
	"context"
	"net/http"
	"net/url"

	"golang.org/x/sync/errgroup"

	"backoffice/pkg/domain"
)

// DashboardAPI serves the console's landing view aggregates.
type DashboardAPI struct {
	c *Client
}

// Overview bundles everything the landing view renders.
type Overview struct {
	Stats        domain.DashboardStats `json:"stats"`
	RecentOrders []domain.Order        `json:"recentOrders"`
	RecentUsers  []domain.User         `json:"recentUsers"`
}

func (a *DashboardAPI) Stats(ctx context.Context) (*domain.DashboardStats, error) {
	stats, err := callEnvelope[domain.DashboardStats](ctx, a.c, http.MethodGet, "/api/admin/dashboard/stats", nil, nil, "Failed to load dashboard stats")
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

func (a *DashboardAPI) RecentOrders(ctx context.Context) ([]domain.Order, error) {
	return callEnvelope[[]domain.Order](ctx, a.c, http.MethodGet, "/api/admin/dashboard/recent-orders", nil, nil, "Failed to load recent orders")
}

func (a *DashboardAPI) RecentUsers(ctx context.Context) ([]domain.User, error) {
	return callEnvelope[[]domain.User](ctx, a.c, http.MethodGet, "/api/admin/dashboard/recent-users", nil, nil, "Failed to load recent users")
}

func (a *DashboardAPI) Analytics(ctx context.Context, period string) (*domain.Analytics, error) {
	q := url.Values{}
	setNonEmpty(q, "period", period)
	analytics, err := callEnvelope[domain.Analytics](ctx, a.c, http.MethodGet, "/api/admin/dashboard/analytics", q, nil, "Failed to load analytics")
	if err != nil {
		return nil, err
	}
	return &analytics, nil
}

// Overview fetches stats, recent orders and recent users concurrently. The
// three calls are independent; the first failure cancels the rest.
func (a *DashboardAPI) Overview(ctx context.Context) (*Overview, error) {
	var ov Overview
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		stats, err := a.Stats(ctx)
		if err != nil {
			return err
		}
		ov.Stats = *stats
		return nil
	})
	g.Go(func() error {
		orders, err := a.RecentOrders(ctx)
		if err != nil {
			return err
		}
		ov.RecentOrders = orders
		return nil
	})
	g.Go(func() error {
		users, err := a.RecentUsers(ctx)
		if err != nil {
			return err
		}
		ov.RecentUsers = users
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &ov, nil
}
