package payments

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

func (a *API) Methods(ctx context.Context) ([]model.PaymentMethod, error) {
	resp, err := a.c.Get(ctx, "/payments/methods", nil)
	if err != nil {
		return nil, err
	}
	return client.Decode[[]model.PaymentMethod](resp)
}

func (a *API) Initiate(ctx context.Context, input model.InitiatePaymentInput) (*model.Payment, error) {
	resp, err := a.c.Post(ctx, "/payments", input)
	if err != nil {
		return nil, err
	}
	p, err := client.Decode[model.Payment](resp)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (a *API) Status(ctx context.Context, paymentID string) (*model.Payment, error) {
	resp, err := a.c.Get(ctx, "/payments/"+paymentID, nil)
	if err != nil {
		return nil, err
	}
	p, err := client.Decode[model.Payment](resp)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
