package auth

import (
	"context"

	"buildmart.GO/client"
	"buildmart.GO/model"
)

// API is the authentication surface. Login and Refresh store the returned
// token on the shared client as a side effect, so every module sharing that
// client starts sending it immediately.
type API struct {
	c *client.Client
}

func New(c *client.Client) *API {
	return &API{c: c}
}

func (a *API) Login(ctx context.Context, creds model.Credentials) (*model.AuthResult, error) {
	resp, err := a.c.Post(ctx, "/auth/login", creds)
	if err != nil {
		return nil, err
	}
	result, err := client.Decode[model.AuthResult](resp)
	if err != nil {
		return nil, err
	}
	if result.Token != "" {
		a.c.SetToken(result.Token)
	}
	return &result, nil
}

// Register creates an account. The token, if the backend returns one, is NOT
// stored — the user logs in explicitly after registering.
func (a *API) Register(ctx context.Context, reg model.Registration) (*model.AuthResult, error) {
	resp, err := a.c.Post(ctx, "/auth/register", reg)
	if err != nil {
		return nil, err
	}
	result, err := client.Decode[model.AuthResult](resp)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (a *API) Refresh(ctx context.Context) (*model.AuthResult, error) {
	resp, err := a.c.Post(ctx, "/auth/refresh", nil)
	if err != nil {
		return nil, err
	}
	result, err := client.Decode[model.AuthResult](resp)
	if err != nil {
		return nil, err
	}
	if result.Token != "" {
		a.c.SetToken(result.Token)
	}
	return &result, nil
}

// Logout clears the local session. The backend call is best-effort: the token
// is dropped locally even when the server is unreachable.
func (a *API) Logout(ctx context.Context) error {
	_, err := a.c.Post(ctx, "/auth/logout", nil)
	a.c.ClearToken()
	return err
}

func (a *API) Me(ctx context.Context) (*model.User, error) {
	resp, err := a.c.Get(ctx, "/auth/me", nil)
	if err != nil {
		return nil, err
	}
	user, err := client.Decode[model.User](resp)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (a *API) UpdateProfile(ctx context.Context, update model.ProfileUpdate) (*model.User, error) {
	resp, err := a.c.Put(ctx, "/auth/profile", update)
	if err != nil {
		return nil, err
	}
	user, err := client.Decode[model.User](resp)
	if err != nil {
		return nil, err
	}
	return &user, nil
}
