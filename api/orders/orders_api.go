package orders

import (
	"context"

	"buildmart.GO/client"
	"buildmart.GO/model"
)

type ListOptions struct {
	Page   int
	Limit  int
	Status string
}

type API struct {
	c *client.Client
}

func New(c *client.Client) *API {
	return &API{c: c}
}

// Create places an order from the current cart.
func (a *API) Create(ctx context.Context, input model.CreateOrderInput) (*model.Order, error) {
	resp, err := a.c.Post(ctx, "/orders", input)
	if err != nil {
		return nil, err
	}
	return decodeOrder(resp)
}

func (a *API) List(ctx context.Context, opts ListOptions) (*model.OrderList, error) {
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
	resp, err := a.c.Get(ctx, "/orders", q)
	if err != nil {
		return nil, err
	}
	list, err := client.Decode[model.OrderList](resp)
	if err != nil {
		return nil, err
	}
	return &list, nil
}

func (a *API) Get(ctx context.Context, id string) (*model.Order, error) {
	resp, err := a.c.Get(ctx, "/orders/"+id, nil)
	if err != nil {
		return nil, err
	}
	return decodeOrder(resp)
}

func (a *API) Cancel(ctx context.Context, id string) (*model.Order, error) {
	resp, err := a.c.Post(ctx, "/orders/"+id+"/cancel", nil)
	if err != nil {
		return nil, err
	}
	return decodeOrder(resp)
}

// Track returns the order's fulfilment history.
func (a *API) Track(ctx context.Context, id string) ([]model.TrackingEvent, error) {
	resp, err := a.c.Get(ctx, "/orders/"+id+"/tracking", nil)
	if err != nil {
		return nil, err
	}
	return client.Decode[[]model.TrackingEvent](resp)
}

func decodeOrder(resp *client.Response) (*model.Order, error) {
	order, err := client.Decode[model.Order](resp)
	if err != nil {
		return nil, err
	}
	return &order, nil
}
