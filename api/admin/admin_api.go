package admin

import (
	"context"

	"buildmart.GO/client"
	"buildmart.GO/model"
)

// DashboardStats is the back-office landing summary.
type DashboardStats struct {
	TotalOrders   int     `json:"total_orders"`
	TotalRevenue  float64 `json:"total_revenue"`
	TotalProducts int     `json:"total_products"`
	TotalUsers    int     `json:"total_users"`
	PendingOrders int     `json:"pending_orders"`
	LowStockCount int     `json:"low_stock_count"`
}

// ListOptions is the shared filter set for admin listings. Each endpoint
// applies only the subset it recognizes.
type ListOptions struct {
	Page   int
	Limit  int
	Status string
	Search string
	From   string // inclusive date, YYYY-MM-DD
	To     string
}

// API is the fixed-function admin dashboard surface under /admin. It overlaps
// the generic crud.Service for some resources; the two target different
// backend route shapes and are kept separate on purpose.
type API struct {
	c *client.Client
}

func New(c *client.Client) *API {
	return &API{c: c}
}

func (a *API) Dashboard(ctx context.Context) (*DashboardStats, error) {
	resp, err := a.c.Get(ctx, "/admin/dashboard", nil)
	if err != nil {
		return nil, err
	}
	stats, err := client.Decode[DashboardStats](resp)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

func (a *API) Products(ctx context.Context, opts ListOptions) ([]model.AdminProduct, error) {
	q := client.Query{}
	if opts.Page > 0 {
		q["page"] = opts.Page
	}
	if opts.Limit > 0 {
		q["limit"] = opts.Limit
	}
	if opts.Search != "" {
		q["search"] = opts.Search
	}
	resp, err := a.c.Get(ctx, "/admin/products", q)
	if err != nil {
		return nil, err
	}
	return client.Decode[[]model.AdminProduct](resp)
}

func (a *API) Orders(ctx context.Context, opts ListOptions) (*model.OrderList, error) {
	q := client.Query{}
	if opts.Page > 0 {
		q["page"] = opts.Page
	}
	if opts.Limit > 0 {
		q["limit"] = opts.Limit
	}
	if opts.Status != "" {
		q["status"] = opts.Status
	}
	if opts.From != "" {
		q["from"] = opts.From
	}
	if opts.To != "" {
		q["to"] = opts.To
	}
	resp, err := a.c.Get(ctx, "/admin/orders", q)
	if err != nil {
		return nil, err
	}
	list, err := client.Decode[model.OrderList](resp)
	if err != nil {
		return nil, err
	}
	return &list, nil
}

func (a *API) Users(ctx context.Context, opts ListOptions) ([]model.User, error) {
	q := client.Query{}
	if opts.Page > 0 {
		q["page"] = opts.Page
	}
	if opts.Limit > 0 {
		q["limit"] = opts.Limit
	}
	if opts.Search != "" {
		q["search"] = opts.Search
	}
	resp, err := a.c.Get(ctx, "/admin/users", q)
	if err != nil {
		return nil, err
	}
	return client.Decode[[]model.User](resp)
}

func (a *API) UpdateOrderStatus(ctx context.Context, orderID, status string) (*model.Order, error) {
	resp, err := a.c.Put(ctx, "/admin/orders/"+orderID+"/status", map[string]string{"status": status})
	if err != nil {
		return nil, err
	}
	order, err := client.Decode[model.Order](resp)
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (a *API) UpdateStock(ctx context.Context, productID string, quantity int) (*model.AdminProduct, error) {
	resp, err := a.c.Put(ctx, "/admin/products/"+productID+"/stock", map[string]int{"stock_quantity": quantity})
	if err != nil {
		return nil, err
	}
	p, err := client.Decode[model.AdminProduct](resp)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// LowStock lists products at or below threshold (backend default when 0).
func (a *API) LowStock(ctx context.Context, threshold int) ([]model.AdminProduct, error) {
	q := client.Query{}
	if threshold > 0 {
		q["threshold"] = threshold
	}
	resp, err := a.c.Get(ctx, "/admin/reports/low-stock", q)
	if err != nil {
		return nil, err
	}
	return client.Decode[[]model.AdminProduct](resp)
}
