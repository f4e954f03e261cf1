package catalog

import (
	"context"

	"buildmart.GO/client"
	"buildmart.GO/core/cache"
	"buildmart.GO/model"
)

// ListOptions narrows a product listing. Zero values are omitted from the
// query string.
type ListOptions struct {
	Page   int
	Limit  int
	Sort   string
	Search string
}

// API is the public catalog surface. Reads can optionally be memoized through
// the shared cache — off by default, a fresh call per invocation otherwise.
type API struct {
	c        *client.Client
	cacheTTL int64
}

func New(c *client.Client) *API {
	return &API{c: c}
}

// EnableCache memoizes catalog GETs for ttl seconds. Entries are tagged
// "catalog" so a bulk invalidation can drop them all.
func (a *API) EnableCache(ttlSeconds int64) {
	a.cacheTTL = ttlSeconds
}

func (a *API) Products(ctx context.Context, opts ListOptions) (*model.ProductList, error) {
	return a.productList(ctx, "/catalog/products", opts.query())
}

func (a *API) ProductByID(ctx context.Context, id string) (*model.Product, error) {
	resp, err := a.get(ctx, "/catalog/products/"+id, nil)
	if err != nil {
		return nil, err
	}
	p, err := client.Decode[model.Product](resp)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (a *API) ProductBySlug(ctx context.Context, slug string) (*model.Product, error) {
	resp, err := a.get(ctx, "/catalog/products/slug/"+slug, nil)
	if err != nil {
		return nil, err
	}
	p, err := client.Decode[model.Product](resp)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (a *API) ProductsByCategory(ctx context.Context, categorySlug string, opts ListOptions) (*model.ProductList, error) {
	return a.productList(ctx, "/catalog/categories/"+categorySlug+"/products", opts.query())
}

func (a *API) Featured(ctx context.Context, limit int) (*model.ProductList, error) {
	q := client.Query{}
	if limit > 0 {
		q["limit"] = limit
	}
	return a.productList(ctx, "/catalog/products/featured", q)
}

func (a *API) Search(ctx context.Context, term string, opts ListOptions) (*model.ProductList, error) {
	q := opts.query()
	q["q"] = term
	return a.productList(ctx, "/catalog/search", q)
}

func (a *API) Categories(ctx context.Context) ([]model.Category, error) {
	resp, err := a.get(ctx, "/catalog/categories", nil)
	if err != nil {
		return nil, err
	}
	return client.Decode[[]model.Category](resp)
}

func (a *API) productList(ctx context.Context, endpoint string, q client.Query) (*model.ProductList, error) {
	resp, err := a.get(ctx, endpoint, q)
	if err != nil {
		return nil, err
	}
	list, err := client.Decode[model.ProductList](resp)
	if err != nil {
		return nil, err
	}
	return &list, nil
}

// get goes through the memo cache when enabled, keyed on endpoint + query.
func (a *API) get(ctx context.Context, endpoint string, q client.Query) (*client.Response, error) {
	if a.cacheTTL <= 0 {
		return a.c.Get(ctx, endpoint, q)
	}
	key := endpoint + "?" + client.EncodeQuery(q)
	store := cache.GetInstance()
	if v, ok := store.Get(key); ok {
		if resp, ok := v.(*client.Response); ok {
			return resp, nil
		}
	}
	resp, err := a.c.Get(ctx, endpoint, q)
	if err != nil {
		return nil, err
	}
	store.Set(key, resp, a.cacheTTL, []string{"catalog"})
	return resp, nil
}

func (o ListOptions) query() client.Query {
	q := client.Query{}
	if o.Page > 0 {
		q["page"] = o.Page
	}
	if o.Limit > 0 {
		q["limit"] = o.Limit
	}
	if o.Sort != "" {
		q["sort"] = o.Sort
	}
	if o.Search != "" {
		q["search"] = o.Search
	}
	return q
}
