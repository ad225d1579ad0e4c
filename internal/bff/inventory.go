package bff

import (
	"context"
	"net/http"
	"net/url"

	"backoffice/pkg/domain"
)

// InventoryAPI tracks stock levels and movements.
type InventoryAPI struct {
	c *Client
}

// InventoryListParams filter and page the inventory list.
type InventoryListParams struct {
	Page     int
	Limit    int
	Search   string
	LowStock bool
}

func (p InventoryListParams) values() url.Values {
	q := url.Values{}
	setPage(q, p.Page, p.Limit)
	setNonEmpty(q, "search", p.Search)
	if p.LowStock {
		q.Set("lowStock", "true")
	}
	return q
}

func (a *InventoryAPI) List(ctx context.Context, p InventoryListParams) (*Paginated[domain.InventoryItem], error) {
	return callPaginated[domain.InventoryItem](ctx, a.c, "/inventory", p.values(), "Failed to load inventory")
}

func (a *InventoryAPI) Get(ctx context.Context, id string) (*domain.InventoryItem, error) {
	item, err := callEnvelope[domain.InventoryItem](ctx, a.c, http.MethodGet, "/inventory/"+id, nil, nil, "Failed to load inventory item")
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateStock adjusts the stock level, recording the reason as a movement.
func (a *InventoryAPI) UpdateStock(ctx context.Context, id string, quantity int, reason string) (*domain.InventoryItem, error) {
	body := map[string]any{"quantity": quantity, "reason": reason}
	item, err := callEnvelope[domain.InventoryItem](ctx, a.c, http.MethodPatch, "/inventory/"+id+"/stock", nil, body, "Failed to update stock")
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// Movements lists the audited stock movements of an item.
func (a *InventoryAPI) Movements(ctx context.Context, id string) ([]domain.InventoryMovement, error) {
	return callEnvelope[[]domain.InventoryMovement](ctx, a.c, http.MethodGet, "/inventory/"+id+"/movements", nil, nil, "Failed to load stock movements")
}
