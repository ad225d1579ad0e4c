package domain

// OrderStatus is the fulfilment state of an order. Values are title-cased on
// the wire because the order service behind the BFF emits them that way.
type OrderStatus string

const (
	OrderStatusCreated    OrderStatus = "Created"
	OrderStatusConfirmed  OrderStatus = "Confirmed"
	OrderStatusProcessing OrderStatus = "Processing"
	OrderStatusShipped    OrderStatus = "Shipped"
	OrderStatusDelivered  OrderStatus = "Delivered"
	OrderStatusCancelled  OrderStatus = "Cancelled"
	OrderStatusRefunded   OrderStatus = "Refunded"
)

// IsValid returns true if the status is a known valid value.
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusCreated, OrderStatusConfirmed, OrderStatusProcessing,
		OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled, OrderStatusRefunded:
		return true
	}
	return false
}

// PaymentStatus is the payment lifecycle state attached to an order.
type PaymentStatus string

const (
	PaymentStatusPending    PaymentStatus = "Pending"
	PaymentStatusAuthorized PaymentStatus = "Authorized"
	PaymentStatusCaptured   PaymentStatus = "Captured"
	PaymentStatusFailed     PaymentStatus = "Failed"
	PaymentStatusCancelled  PaymentStatus = "Cancelled"
	PaymentStatusRefunded   PaymentStatus = "Refunded"
)

// ShippingStatus is the carrier-side state attached to an order.
type ShippingStatus string

const (
	ShippingStatusNotShipped ShippingStatus = "NotShipped"
	ShippingStatusPreparing  ShippingStatus = "Preparing"
	ShippingStatusShipped    ShippingStatus = "Shipped"
	ShippingStatusInTransit  ShippingStatus = "InTransit"
	ShippingStatusDelivered  ShippingStatus = "Delivered"
	ShippingStatusReturned   ShippingStatus = "Returned"
)

// Address is a postal address on an order.
type Address struct {
	AddressLine1 string `json:"addressLine1"`
	AddressLine2 string `json:"addressLine2,omitempty"`
	City         string `json:"city"`
	State        string `json:"state"`
	ZipCode      string `json:"zipCode"`
	Country      string `json:"country"`
}

// OrderItem is a single line on an order.
type OrderItem struct {
	ID           string  `json:"id"`
	OrderID      string  `json:"orderId,omitempty"`
	ProductID    string  `json:"productId"`
	ProductName  string  `json:"productName"`
	ProductSKU   string  `json:"productSku,omitempty"`
	ProductImage string  `json:"productImage,omitempty"`
	Quantity     int     `json:"quantity"`
	UnitPrice    float64 `json:"unitPrice"`
	TotalPrice   float64 `json:"totalPrice"`
	Notes        string  `json:"notes,omitempty"`
}

// Order is a customer order as surfaced to the admin console.
type Order struct {
	ID                    string         `json:"id"`
	CustomerID            string         `json:"customerId"`
	CustomerEmail         string         `json:"customerEmail"`
	CustomerName          string         `json:"customerName"`
	CustomerPhone         string         `json:"customerPhone,omitempty"`
	OrderNumber           string         `json:"orderNumber"`
	Status                OrderStatus    `json:"status"`
	PaymentStatus         PaymentStatus  `json:"paymentStatus"`
	ShippingStatus        ShippingStatus `json:"shippingStatus"`
	Items                 []OrderItem    `json:"items"`
	Subtotal              float64        `json:"subtotal"`
	TaxAmount             float64        `json:"taxAmount"`
	ShippingCost          float64        `json:"shippingCost"`
	DiscountAmount        float64        `json:"discountAmount"`
	TotalAmount           float64        `json:"totalAmount"`
	Currency              string         `json:"currency"`
	ShippingAddress       Address        `json:"shippingAddress"`
	BillingAddress        Address        `json:"billingAddress"`
	PaymentProvider       string         `json:"paymentProvider,omitempty"`
	PaymentTransactionID  string         `json:"paymentTransactionId,omitempty"`
	ShippingMethod        string         `json:"shippingMethod,omitempty"`
	CarrierName           string         `json:"carrierName,omitempty"`
	TrackingNumber        string         `json:"trackingNumber,omitempty"`
	TrackingURL           string         `json:"trackingUrl,omitempty"`
	EstimatedDeliveryDate string         `json:"estimatedDeliveryDate,omitempty"`
	ActualDeliveryDate    string         `json:"actualDeliveryDate,omitempty"`
	Notes                 string         `json:"notes,omitempty"`
	InternalNotes         string         `json:"internalNotes,omitempty"`
	CreatedAt             string         `json:"createdAt"`
	UpdatedAt             string         `json:"updatedAt"`
	CreatedBy             string         `json:"createdBy,omitempty"`
}
