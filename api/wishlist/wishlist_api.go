package wishlist

import (
	"context"

	"buildmart.GO/client"
	"buildmart.GO/model"
)

type API struct {
	c *client.Client
}

func New(c *client.Client) *API {
	return &API{c: c}
}

func (a *API) List(ctx context.Context) ([]model.WishlistItem, error) {
	resp, err := a.c.Get(ctx, "/wishlist", nil)
	if err != nil {
		return nil, err
	}
	return client.Decode[[]model.WishlistItem](resp)
}

func (a *API) Add(ctx context.Context, productID string) (*model.WishlistItem, error) {
	resp, err := a.c.Post(ctx, "/wishlist", map[string]string{"product_id": productID})
	if err != nil {
		return nil, err
	}
	item, err := client.Decode[model.WishlistItem](resp)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (a *API) Remove(ctx context.Context, itemID string) error {
	_, err := a.c.Delete(ctx, "/wishlist/"+itemID, nil)
	return err
}
