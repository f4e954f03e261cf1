package model

type WishlistItem struct {
	ID        string   `json:"id"`
	ProductID string   `json:"product_id"`
	Product   *Product `json:"product,omitempty"`
	AddedAt   string   `json:"added_at,omitempty"`
}
