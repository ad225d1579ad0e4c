package bff

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"backoffice/pkg/domain"
)

// OrdersAPI manages customer orders, including the tracking and note
// operations only orders have.
type OrdersAPI struct {
	c *Client
}

// OrderListParams filter and page the order list.
type OrderListParams struct {
	Page     int
	Limit    int
	Search   string
	Status   string
	DateFrom string
	DateTo   string
}

func (p OrderListParams) values() url.Values {
	q := url.Values{}
	setPage(q, p.Page, p.Limit)
	setNonEmpty(q, "search", p.Search)
	setNonEmpty(q, "status", p.Status)
	setNonEmpty(q, "dateFrom", p.DateFrom)
	setNonEmpty(q, "dateTo", p.DateTo)
	return q
}

// OrderInput is the writable subset of an order, used by the rare paths
// where staff raise or amend an order on a customer's behalf.
type OrderInput struct {
	CustomerID      string             `json:"customerId"`
	CustomerEmail   string             `json:"customerEmail"`
	CustomerName    string             `json:"customerName"`
	Items           []domain.OrderItem `json:"items"`
	Currency        string             `json:"currency,omitempty"`
	ShippingAddress domain.Address     `json:"shippingAddress"`
	BillingAddress  domain.Address     `json:"billingAddress"`
	ShippingMethod  string             `json:"shippingMethod,omitempty"`
	Notes           string             `json:"notes,omitempty"`
}

func (a *OrdersAPI) List(ctx context.Context, p OrderListParams) (*Paginated[domain.Order], error) {
	return callPaginated[domain.Order](ctx, a.c, "/orders", p.values(), "Failed to load orders")
}

func (a *OrdersAPI) Get(ctx context.Context, id string) (*domain.Order, error) {
	o, err := callEnvelope[domain.Order](ctx, a.c, http.MethodGet, "/orders/"+id, nil, nil, "Failed to load order")
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (a *OrdersAPI) Create(ctx context.Context, input OrderInput) (*domain.Order, error) {
	o, err := callEnvelope[domain.Order](ctx, a.c, http.MethodPost, "/orders", nil, input, "Failed to create order")
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (a *OrdersAPI) Update(ctx context.Context, id string, input OrderInput) (*domain.Order, error) {
	o, err := callEnvelope[domain.Order](ctx, a.c, http.MethodPut, "/orders/"+id, nil, input, "Failed to update order")
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (a *OrdersAPI) Delete(ctx context.Context, id string) error {
	_, err := callEnvelope[json.RawMessage](ctx, a.c, http.MethodDelete, "/orders/"+id, nil, nil, "Failed to delete order")
	return err
}

func (a *OrdersAPI) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	body := map[string]string{"status": string(status)}
	o, err := callEnvelope[domain.Order](ctx, a.c, http.MethodPatch, "/orders/"+id+"/status", nil, body, "Failed to update order status")
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// AddNote appends an internal note to the order's history.
func (a *OrdersAPI) AddNote(ctx context.Context, id, note string) (*domain.Order, error) {
	body := map[string]string{"note": note}
	o, err := callEnvelope[domain.Order](ctx, a.c, http.MethodPost, "/orders/"+id+"/notes", nil, body, "Failed to add order note")
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// UpdateTracking sets the carrier tracking number on the order.
func (a *OrdersAPI) UpdateTracking(ctx context.Context, id, trackingNumber string) (*domain.Order, error) {
	body := map[string]string{"trackingNumber": trackingNumber}
	o, err := callEnvelope[domain.Order](ctx, a.c, http.MethodPatch, "/orders/"+id+"/tracking", nil, body, "Failed to update tracking")
	if err != nil {
		return nil, err
	}
	return &o, nil
}
