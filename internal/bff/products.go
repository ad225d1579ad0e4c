package bff

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"backoffice/pkg/domain"
)

// ProductsAPI manages the product catalog.
type ProductsAPI struct {
	c *Client
}

// ProductListParams filter and page the product list.
type ProductListParams struct {
	Page     int
	Limit    int
	Search   string
	Category string
	Status   string
}

func (p ProductListParams) values() url.Values {
	q := url.Values{}
	setPage(q, p.Page, p.Limit)
	setNonEmpty(q, "search", p.Search)
	setNonEmpty(q, "category", p.Category)
	setNonEmpty(q, "status", p.Status)
	return q
}

// ProductInput is the writable subset of a product record.
type ProductInput struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Price       float64  `json:"price"`
	Category    string   `json:"category"`
	Subcategory string   `json:"subcategory,omitempty"`
	Brand       string   `json:"brand,omitempty"`
	SKU         string   `json:"sku"`
	Status      string   `json:"status,omitempty"`
	Stock       int      `json:"stock"`
	Images      []string `json:"images,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

func (a *ProductsAPI) List(ctx context.Context, p ProductListParams) (*Paginated[domain.Product], error) {
	return callPaginated[domain.Product](ctx, a.c, "/products", p.values(), "Failed to load products")
}

func (a *ProductsAPI) Get(ctx context.Context, id string) (*domain.Product, error) {
	prod, err := callEnvelope[domain.Product](ctx, a.c, http.MethodGet, "/products/"+id, nil, nil, "Failed to load product")
	if err != nil {
		return nil, err
	}
	return &prod, nil
}

func (a *ProductsAPI) Create(ctx context.Context, input ProductInput) (*domain.Product, error) {
	prod, err := callEnvelope[domain.Product](ctx, a.c, http.MethodPost, "/products", nil, input, "Failed to create product")
	if err != nil {
		return nil, err
	}
	return &prod, nil
}

func (a *ProductsAPI) Update(ctx context.Context, id string, input ProductInput) (*domain.Product, error) {
	prod, err := callEnvelope[domain.Product](ctx, a.c, http.MethodPut, "/products/"+id, nil, input, "Failed to update product")
	if err != nil {
		return nil, err
	}
	return &prod, nil
}

func (a *ProductsAPI) Delete(ctx context.Context, id string) error {
	_, err := callEnvelope[json.RawMessage](ctx, a.c, http.MethodDelete, "/products/"+id, nil, nil, "Failed to delete product")
	return err
}

func (a *ProductsAPI) UpdateStatus(ctx context.Context, id string, status domain.ProductStatus) (*domain.Product, error) {
	body := map[string]string{"status": string(status)}
	prod, err := callEnvelope[domain.Product](ctx, a.c, http.MethodPatch, "/products/"+id+"/status", nil, body, "Failed to update product status")
	if err != nil {
		return nil, err
	}
	return &prod, nil
}
