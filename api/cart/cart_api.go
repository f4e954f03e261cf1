package cart

import (
	"context"

	"buildmart.GO/client"
	"buildmart.GO/model"
)

// API is the cart surface. All mutations happen server-side; this module only
// issues requests and reflects the returned cart.
type API struct {
	c *client.Client
}

func New(c *client.Client) *API {
	return &API{c: c}
}

func (a *API) Get(ctx context.Context) (*model.Cart, error) {
	resp, err := a.c.Get(ctx, "/cart", nil)
	if err != nil {
		return nil, err
	}
	return decodeCart(resp)
}

func (a *API) Add(ctx context.Context, input model.AddToCartInput) (*model.Cart, error) {
	resp, err := a.c.Post(ctx, "/cart/items", input)
	if err != nil {
		return nil, err
	}
	return decodeCart(resp)
}

func (a *API) UpdateItem(ctx context.Context, itemID string, input model.UpdateCartItemInput) (*model.Cart, error) {
	resp, err := a.c.Put(ctx, "/cart/items/"+itemID, input)
	if err != nil {
		return nil, err
	}
	return decodeCart(resp)
}

func (a *API) Remove(ctx context.Context, itemID string) (*model.Cart, error) {
	resp, err := a.c.Delete(ctx, "/cart/items/"+itemID, nil)
	if err != nil {
		return nil, err
	}
	return decodeCart(resp)
}

func (a *API) Clear(ctx context.Context) error {
	_, err := a.c.Delete(ctx, "/cart", nil)
	return err
}

func decodeCart(resp *client.Response) (*model.Cart, error) {
	cart, err := client.Decode[model.Cart](resp)
	if err != nil {
		return nil, err
	}
	return &cart, nil
}
