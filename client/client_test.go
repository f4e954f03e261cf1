package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(Options{BaseURL: srv.URL}), srv
}

func TestGet_UnwrapsDataKey(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data": {"id": "p1", "name": "Hammer"}, "message": "ok"}`))
	})

	resp, err := c.Get(context.Background(), "/products/p1", nil)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	m, ok := resp.Data.(map[string]interface{})
	if !ok {
		t.Fatalf("Data = %T, want map", resp.Data)
	}
	if m["name"] != "Hammer" {
		t.Errorf("name = %v, want Hammer", m["name"])
	}
	if resp.Message != "ok" {
		t.Errorf("Message = %q, want ok", resp.Message)
	}
}

func TestGet_BareBodyPassesThrough(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id": "p1", "name": "Hammer"}`))
	})

	resp, err := c.Get(context.Background(), "/products/p1", nil)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	m := resp.Data.(map[string]interface{})
	if m["id"] != "p1" {
		t.Errorf("id = %v, want p1", m["id"])
	}
}

func TestGet_NullDataKeyNotUnwrapped(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data": null, "status": "empty"}`))
	})

	resp, err := c.Get(context.Background(), "/whatever", nil)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	m, ok := resp.Data.(map[string]interface{})
	if !ok {
		t.Fatalf("Data = %T, want whole body map", resp.Data)
	}
	if m["status"] != "empty" {
		t.Errorf("status = %v, want empty", m["status"])
	}
}

func TestGet_NonJSONBodyIsText(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte("pong"))
	})

	resp, err := c.Get(context.Background(), "/ping", nil)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if resp.Data != "pong" {
		t.Errorf("Data = %v, want pong", resp.Data)
	}
}

func TestGet_ErrorFieldBecomesAPIError(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error": "product not found", "code": "not_found"}`))
	})

	_, err := c.Get(context.Background(), "/products/nope", nil)
	apiErr, ok := AsAPIError(err)
	if !ok {
		t.Fatalf("err = %v, want *APIError", err)
	}
	if apiErr.Status != 404 {
		t.Errorf("Status = %d, want 404", apiErr.Status)
	}
	if apiErr.Message != "product not found" {
		t.Errorf("Message = %q, want product not found", apiErr.Message)
	}
	if apiErr.Code != "not_found" {
		t.Errorf("Code = %q, want not_found", apiErr.Code)
	}
}

func TestGet_MessageFieldFallback(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message": "quantity must be positive", "field": "quantity"}`))
	})

	_, err := c.Get(context.Background(), "/cart", nil)
	apiErr, ok := AsAPIError(err)
	if !ok {
		t.Fatalf("err = %v, want *APIError", err)
	}
	if apiErr.Message != "quantity must be positive" {
		t.Errorf("Message = %q", apiErr.Message)
	}
	if apiErr.Field != "quantity" {
		t.Errorf("Field = %q, want quantity", apiErr.Field)
	}
}

func TestGet_StatusFallbackMessage(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := c.Get(context.Background(), "/boom", nil)
	apiErr, ok := AsAPIError(err)
	if !ok {
		t.Fatalf("err = %v, want *APIError", err)
	}
	if apiErr.Message != "HTTP 500" {
		t.Errorf("Message = %q, want HTTP 500", apiErr.Message)
	}
	if !IsStatus(err, 500) {
		t.Error("IsStatus(err, 500) = false")
	}
}

func TestTimeout_Becomes408(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	c := New(Options{BaseURL: srv.URL, Timeout: 20 * time.Millisecond})
	_, err := c.Get(context.Background(), "/slow", nil)
	if !IsTimeout(err) {
		t.Fatalf("IsTimeout = false, err = %v", err)
	}
	apiErr, _ := AsAPIError(err)
	if apiErr.Status != 408 {
		t.Errorf("Status = %d, want 408", apiErr.Status)
	}
}

func TestTokenHeader_AttachedAndCleared(t *testing.T) {
	var gotAuth string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{}`))
	})

	ctx := context.Background()
	c.Get(ctx, "/", nil)
	if gotAuth != "" {
		t.Errorf("Authorization = %q before login, want empty", gotAuth)
	}

	c.SetToken("tok-123")
	c.Get(ctx, "/", nil)
	if gotAuth != "Bearer tok-123" {
		t.Errorf("Authorization = %q, want Bearer tok-123", gotAuth)
	}

	c.ClearToken()
	c.Get(ctx, "/", nil)
	if gotAuth != "" {
		t.Errorf("Authorization = %q after logout, want empty", gotAuth)
	}
}

func TestEncodeQuery(t *testing.T) {
	q := Query{
		"page":   2,
		"limit":  20,
		"search": "drill bits",
		"empty":  "",
		"nilval": nil,
	}
	got := EncodeQuery(q)
	want := "limit=20&page=2&search=drill+bits"
	if got != want {
		t.Errorf("EncodeQuery = %q, want %q", got, want)
	}
	if EncodeQuery(nil) != "" {
		t.Error("EncodeQuery(nil) should be empty")
	}
}

func TestBuildURL_AppendsToExistingQuery(t *testing.T) {
	c := New(Options{BaseURL: "http://x/api/"})
	got := c.buildURL("/p?format=csv", Query{"page": 1})
	want := "http://x/api/p?format=csv&page=1"
	if got != want {
		t.Errorf("buildURL = %q, want %q", got, want)
	}
}
