package model

type CartItem struct {
	ID        string  `json:"id"`
	ProductID string  `json:"product_id"`
	Name      string  `json:"name,omitempty"`
	SKU       string  `json:"sku,omitempty"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
	Subtotal  float64 `json:"subtotal,omitempty"`
}

type Cart struct {
	ID       string     `json:"id"`
	Items    []CartItem `json:"items"`
	Subtotal float64    `json:"subtotal"`
	Total    float64    `json:"total"`
}

type AddToCartInput struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type UpdateCartItemInput struct {
	Quantity int `json:"quantity"`
}
