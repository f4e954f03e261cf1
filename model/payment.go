package model

type PaymentMethod struct {
	Code    string `json:"code"`
	Name    string `json:"name"`
	Enabled bool   `json:"enabled"`
}

type Payment struct {
	ID        string  `json:"id"`
	OrderID   string  `json:"order_id"`
	Method    string  `json:"method"`
	Amount    float64 `json:"amount"`
	Status    string  `json:"status"`
	Reference string  `json:"reference,omitempty"`
}

type InitiatePaymentInput struct {
	OrderID string `json:"order_id"`
	Method  string `json:"method"`
}
