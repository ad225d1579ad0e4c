package main

import (
	"encoding/json"
	"errors"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"
)

// collection is a mutable in-memory fixture set. Records stay as loose maps
// so the lab server never has to chase the console's type definitions.
type collection struct {
	mu    sync.Mutex
	seq   int
	items []map[string]any
}

func newCollection(prefix string, items []map[string]any) *collection {
	for i, item := range items {
		if _, ok := item["id"]; !ok {
			item["id"] = prefix + "-" + strconv.Itoa(i+1)
		}
	}
	return &collection{seq: len(items), items: items}
}

func (c *collection) list(search string) []map[string]any {
	c.mu.Lock()
	defer c.mu.Unlock()
	if search == "" {
		return append([]map[string]any{}, c.items...)
	}
	needle := strings.ToLower(search)
	var out []map[string]any
	for _, item := range c.items {
		for _, v := range item {
			s, ok := v.(string)
			if ok && strings.Contains(strings.ToLower(s), needle) {
				out = append(out, item)
				break
			}
		}
	}
	return out
}

func (c *collection) get(id string) (map[string]any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, item := range c.items {
		if item["id"] == id {
			return item, true
		}
	}
	return nil, false
}

func (c *collection) create(body io.Reader) (map[string]any, error) {
	var item map[string]any
	if err := json.NewDecoder(body).Decode(&item); err != nil {
		return nil, errors.New("malformed request body")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	item["id"] = "new-" + strconv.Itoa(c.seq)
	item["createdAt"] = time.Now().UTC().Format(time.RFC3339)
	c.items = append(c.items, item)
	return item, nil
}

func (c *collection) update(id string, body io.Reader) (map[string]any, error) {
	var patch map[string]any
	if err := json.NewDecoder(body).Decode(&patch); err != nil {
		return nil, errors.New("malformed request body")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, item := range c.items {
		if item["id"] == id {
			for k, v := range patch {
				item[k] = v
			}
			return item, nil
		}
	}
	return nil, errors.New("not found")
}

func (c *collection) delete(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, item := range c.items {
		if item["id"] == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return true
		}
	}
	return false
}

func (c *collection) setField(id, field string, value any) (map[string]any, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, item := range c.items {
		if item["id"] == id {
			item[field] = value
			return item, nil
		}
	}
	return nil, errors.New("not found")
}

func (c *collection) recent(n int) []map[string]any {
	c.mu.Lock()
	defer c.mu.Unlock()
	if n > len(c.items) {
		n = len(c.items)
	}
	return append([]map[string]any{}, c.items[:n]...)
}

type fixtures struct {
	users     *collection
	products  *collection
	orders    *collection
	reviews   *collection
	inventory *collection

	mu        sync.Mutex
	movements map[string][]map[string]any

	stats map[string]any
}

func newFixtures() *fixtures {
	return &fixtures{
		users: newCollection("usr", []map[string]any{
			{"name": "Ada Admin", "email": "admin@example.com", "role": "admin", "roles": []string{"admin"}, "status": "active", "createdAt": "2024-01-15T09:00:00Z", "lastLogin": "2025-08-30T12:00:00Z"},
			{"name": "Mia Manager", "email": "mia@example.com", "role": "manager", "roles": []string{"manager"}, "status": "active", "createdAt": "2024-03-02T10:30:00Z", "lastLogin": "2025-08-29T08:15:00Z"},
			{"name": "Carl Customer", "email": "carl@example.com", "role": "customer", "roles": []string{"customer"}, "status": "suspended", "createdAt": "2024-06-20T14:00:00Z", "lastLogin": "2025-07-01T19:45:00Z"},
		}),
		products: newCollection("prd", []map[string]any{
			{"name": "Walnut Desk", "sku": "DESK-WAL-01", "category": "furniture", "price": 549.0, "stock": 12, "status": "active", "createdAt": "2024-02-01T00:00:00Z"},
			{"name": "Task Chair", "sku": "CHR-TSK-02", "category": "furniture", "price": 189.5, "stock": 3, "status": "active", "createdAt": "2024-02-10T00:00:00Z"},
			{"name": "Desk Lamp", "sku": "LMP-DSK-03", "category": "lighting", "price": 42.0, "stock": 0, "status": "inactive", "createdAt": "2024-04-05T00:00:00Z"},
		}),
		orders: newCollection("ord", []map[string]any{
			{"orderNumber": "ORD-1001", "customerName": "Carl Customer", "status": "Processing", "paymentStatus": "Captured", "shippingStatus": "Preparing", "totalAmount": 738.5, "createdAt": "2025-08-28T16:20:00Z"},
			{"orderNumber": "ORD-1002", "customerName": "Mia Manager", "status": "Shipped", "paymentStatus": "Captured", "shippingStatus": "InTransit", "totalAmount": 42.0, "trackingNumber": "TRK-555", "createdAt": "2025-08-25T11:05:00Z"},
		}),
		reviews: newCollection("rev", []map[string]any{
			{"productId": "prd-1", "userId": "usr-3", "rating": 5, "title": "Solid", "comment": "Sturdy and well finished.", "status": "pending", "verified": true, "createdAt": "2025-08-27T09:00:00Z"},
			{"productId": "prd-2", "userId": "usr-2", "rating": 2, "title": "Squeaks", "comment": "Armrest came loose after a week.", "status": "approved", "createdAt": "2025-08-20T17:30:00Z"},
		}),
		inventory: newCollection("inv", []map[string]any{
			{"productId": "prd-1", "stock": 12, "reservedStock": 2, "availableStock": 10, "lowStockThreshold": 5, "lastUpdated": "2025-08-28T00:00:00Z"},
			{"productId": "prd-2", "stock": 3, "reservedStock": 1, "availableStock": 2, "lowStockThreshold": 5, "lastUpdated": "2025-08-28T00:00:00Z"},
		}),
		movements: map[string][]map[string]any{
			"inv-2": {
				{"id": "mov-1", "type": "out", "quantity": -4, "reason": "order ORD-1001", "createdAt": "2025-08-28T16:21:00Z"},
			},
		},
		stats: map[string]any{
			"users":    map[string]any{"total": 1180, "active": 1045, "newThisMonth": 62, "growth": 2.8},
			"orders":   map[string]any{"total": 214, "pending": 9, "processing": 17, "completed": 181, "revenue": 12480.75, "growth": -1.1},
			"products": map[string]any{"total": 96, "active": 88, "lowStock": 6, "outOfStock": 2},
			"reviews":  map[string]any{"total": 341, "pending": 12, "averageRating": 4.3, "growth": 1.9},
		},
	}
}

func (f *fixtures) recordMovement(id string, quantity int, reason string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.movements[id] = append(f.movements[id], map[string]any{
		"id":        "mov-" + strconv.Itoa(len(f.movements[id])+1),
		"type":      "adjustment",
		"quantity":  quantity,
		"reason":    reason,
		"createdAt": time.Now().UTC().Format(time.RFC3339),
	})
}

func (f *fixtures) movementsFor(id string) []map[string]any {
	f.mu.Lock()
	defer f.mu.Unlock()
	moves := f.movements[id]
	if moves == nil {
		return []map[string]any{}
	}
	return append([]map[string]any{}, moves...)
}

// analyticsFor fabricates a smooth series for the requested period.
func (f *fixtures) analyticsFor(period string) map[string]any {
	days := 7
	switch period {
	case "30d":
		days = 30
	case "90d":
		days = 90
	}
	series := make([]map[string]any, 0, days)
	for i := days - 1; i >= 0; i-- {
		day := time.Now().AddDate(0, 0, -i).Format("2006-01-02")
		series = append(series, map[string]any{
			"date":    day,
			"revenue": 300.0 + float64((days-i)*17%140),
			"orders":  5 + (days-i)*3%11,
			"users":   2 + (days-i)*5%9,
		})
	}
	return map[string]any{"period": period, "series": series}
}
