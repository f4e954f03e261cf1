package model

// Product is the catalog item shape of the customer-facing surface.
type Product struct {
	ID            string   `json:"id"`
	SKU           string   `json:"sku"`
	Name          string   `json:"name"`
	Slug          string   `json:"slug"`
	Description   string   `json:"description,omitempty"`
	Price         float64  `json:"price"`
	SpecialPrice  *float64 `json:"special_price,omitempty"`
	StockQuantity int      `json:"stock_quantity"`
	Unit          string   `json:"unit,omitempty"`
	Brand         string   `json:"brand,omitempty"`
	Images        []string `json:"images,omitempty"`
	CategoryID    string   `json:"category_id,omitempty"`
	CategorySlug  string   `json:"category_slug,omitempty"`
	Featured      bool     `json:"featured,omitempty"`
}

// AdminProduct is the back-office product shape: the catalog fields plus
// activation flag and timestamps.
type AdminProduct struct {
	ID            string   `json:"id"`
	SKU           string   `json:"sku"`
	Name          string   `json:"name"`
	Slug          string   `json:"slug"`
	Description   string   `json:"description,omitempty"`
	Price         float64  `json:"price"`
	SpecialPrice  *float64 `json:"special_price,omitempty"`
	StockQuantity int      `json:"stock_quantity"`
	Unit          string   `json:"unit,omitempty"`
	Brand         string   `json:"brand,omitempty"`
	Images        []string `json:"images,omitempty"`
	CategoryID    string   `json:"category_id,omitempty"`
	Active        bool     `json:"active"`
	CreatedAt     string   `json:"created_at,omitempty"`
	UpdatedAt     string   `json:"updated_at,omitempty"`
}

// ProductList is the paged list shape catalog endpoints return.
type ProductList struct {
	Products []Product `json:"products"`
	Total    int       `json:"total"`
	Page     int       `json:"page,omitempty"`
	Limit    int       `json:"limit,omitempty"`
}
