package model

// Order statuses progressed by the backend.
const (
	OrderPending   = "pending"
	OrderConfirmed = "confirmed"
	OrderShipped   = "shipped"
	OrderDelivered = "delivered"
	OrderCancelled = "cancelled"
)

type OrderItem struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	SKU       string  `json:"sku,omitempty"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

type Order struct {
	ID              string      `json:"id"`
	Number          string      `json:"number,omitempty"`
	Status          string      `json:"status"`
	Items           []OrderItem `json:"items"`
	Subtotal        float64     `json:"subtotal"`
	ShippingFee     float64     `json:"shipping_fee,omitempty"`
	Total           float64     `json:"total"`
	ShippingAddress string      `json:"shipping_address,omitempty"`
	CreatedAt       string      `json:"created_at,omitempty"`
}

type CreateOrderInput struct {
	ShippingAddress string `json:"shipping_address"`
	Notes           string `json:"notes,omitempty"`
	PaymentMethod   string `json:"payment_method,omitempty"`
}

type OrderList struct {
	Orders []Order `json:"orders"`
	Total  int     `json:"total"`
}

// TrackingEvent is one step of an order's fulfilment history.
type TrackingEvent struct {
	Status    string `json:"status"`
	Note      string `json:"note,omitempty"`
	Timestamp string `json:"timestamp"`
}
