package services

import (
	"context"

	"buildmart.GO/client"
	"buildmart.GO/model"
)

// API covers installation/transport/cutting service requests. The status enum
// is progressed entirely by the backend.
type API struct {
	c *client.Client
}

func New(c *client.Client) *API {
	return &API{c: c}
}

func (a *API) Create(ctx context.Context, input model.CreateServiceRequestInput) (*model.ServiceRequest, error) {
	resp, err := a.c.Post(ctx, "/services/requests", input)
	if err != nil {
		return nil, err
	}
	sr, err := client.Decode[model.ServiceRequest](resp)
	if err != nil {
		return nil, err
	}
	return &sr, nil
}

func (a *API) List(ctx context.Context) ([]model.ServiceRequest, error) {
	resp, err := a.c.Get(ctx, "/services/requests", nil)
	if err != nil {
		return nil, err
	}
	return client.Decode[[]model.ServiceRequest](resp)
}

func (a *API) Get(ctx context.Context, id string) (*model.ServiceRequest, error) {
	resp, err := a.c.Get(ctx, "/services/requests/"+id, nil)
	if err != nil {
		return nil, err
	}
	sr, err := client.Decode[model.ServiceRequest](resp)
	if err != nil {
		return nil, err
	}
	return &sr, nil
}
