package domain

// MovementType classifies a stock movement.
type MovementType string

const (
	MovementIn         MovementType = "in"
	MovementOut        MovementType = "out"
	MovementAdjustment MovementType = "adjustment"
)

// InventoryMovement is one audited change to an inventory record.
type InventoryMovement struct {
	ID        string       `json:"id"`
	Type      MovementType `json:"type"`
	Quantity  int          `json:"quantity"`
	Reason    string       `json:"reason"`
	CreatedAt string       `json:"createdAt"`
	CreatedBy string       `json:"createdBy,omitempty"`
}

// InventoryItem tracks stock for a product.
type InventoryItem struct {
	ID                string              `json:"id"`
	ProductID         string              `json:"productId"`
	Product           *Product            `json:"product,omitempty"`
	Stock             int                 `json:"stock"`
	ReservedStock     int                 `json:"reservedStock"`
	AvailableStock    int                 `json:"availableStock"`
	LowStockThreshold int                 `json:"lowStockThreshold"`
	Location          string              `json:"location,omitempty"`
	LastUpdated       string              `json:"lastUpdated"`
	Movements         []InventoryMovement `json:"movements,omitempty"`
}
