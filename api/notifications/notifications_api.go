package notifications

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

func (a *API) List(ctx context.Context, unreadOnly bool) ([]model.Notification, error) {
	q := client.Query{}
	if unreadOnly {
		q["unread"] = "true"
	}
	resp, err := a.c.Get(ctx, "/notifications", q)
	if err != nil {
		return nil, err
	}
	return client.Decode[[]model.Notification](resp)
}

func (a *API) MarkRead(ctx context.Context, id string) error {
	_, err := a.c.Put(ctx, "/notifications/"+id+"/read", nil)
	return err
}

func (a *API) MarkAllRead(ctx context.Context) error {
	_, err := a.c.Put(ctx, "/notifications/read-all", nil)
	return err
}
