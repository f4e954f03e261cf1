package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"buildmart.GO/client"
)

func TestProducts_QueryOptions(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data": {"products": [], "total": 0}}`))
	}))
	defer srv.Close()
	c := client.New(client.Options{BaseURL: srv.URL})

	_, err := New(c).Products(context.Background(), ListOptions{Page: 2, Limit: 10, Sort: "price_asc"})
	if err != nil {
		t.Fatalf("Products: %v", err)
	}
	want := "limit=10&page=2&sort=price_asc"
	if gotQuery != want {
		t.Errorf("query = %q, want %q", gotQuery, want)
	}
}

func TestEnableCache_MemoizesReads(t *testing.T) {
	var hits int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&hits, 1)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id": "1", "name": "Power Tools", "slug": "power-tools"}]`))
	}))
	defer srv.Close()
	c := client.New(client.Options{BaseURL: srv.URL})

	api := New(c)
	api.EnableCache(60)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		categories, err := api.Categories(ctx)
		if err != nil {
			t.Fatalf("Categories: %v", err)
		}
		if len(categories) != 1 || categories[0].Slug != "power-tools" {
			t.Fatalf("categories = %+v", categories)
		}
	}
	if got := atomic.LoadInt64(&hits); got != 1 {
		t.Errorf("backend hits = %d, want 1 (memoized)", got)
	}
}

func TestCacheOffByDefault(t *testing.T) {
	var hits int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&hits, 1)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()
	c := client.New(client.Options{BaseURL: srv.URL})

	api := New(c)
	ctx := context.Background()
	api.Categories(ctx)
	api.Categories(ctx)
	if got := atomic.LoadInt64(&hits); got != 2 {
		t.Errorf("backend hits = %d, want 2 (no cache)", got)
	}
}
