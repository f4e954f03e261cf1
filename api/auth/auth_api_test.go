package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"buildmart.GO/client"
	"buildmart.GO/model"
)

func newStubClient(t *testing.T, handler http.HandlerFunc) *client.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return client.New(client.Options{BaseURL: srv.URL})
}

func TestLogin_StoresToken(t *testing.T) {
	c := newStubClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/login" {
			t.Errorf("path = %s", r.URL.Path)
		}
		var creds model.Credentials
		json.NewDecoder(r.Body).Decode(&creds)
		if creds.Email != "a@b.c" {
			t.Errorf("email = %q", creds.Email)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data": {"token": "tok-1", "user": {"id": "1", "email": "a@b.c", "role": "customer"}}}`))
	})

	result, err := New(c).Login(context.Background(), model.Credentials{Email: "a@b.c", Password: "x"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if result.Token != "tok-1" || result.User == nil || result.User.Email != "a@b.c" {
		t.Errorf("result = %+v", result)
	}
	if c.Token() != "tok-1" {
		t.Errorf("client token = %q, want tok-1 (login stores it)", c.Token())
	}
}

func TestRegister_DoesNotStoreToken(t *testing.T) {
	c := newStubClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		// Even when the backend hands a token back, Register leaves it alone.
		w.Write([]byte(`{"data": {"token": "unwanted", "user": {"id": "2"}}}`))
	})

	result, err := New(c).Register(context.Background(), model.Registration{Email: "n@e.w", Password: "secret1"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if result.Token != "unwanted" {
		t.Errorf("result token = %q", result.Token)
	}
	if c.Token() != "" {
		t.Errorf("client token = %q, want empty after register", c.Token())
	}
}

func TestRefresh_RotatesToken(t *testing.T) {
	c := newStubClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data": {"token": "tok-2"}}`))
	})
	c.SetToken("tok-1")

	if _, err := New(c).Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if c.Token() != "tok-2" {
		t.Errorf("token = %q, want tok-2", c.Token())
	}
}

func TestLogout_ClearsTokenEvenOnServerError(t *testing.T) {
	c := newStubClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	c.SetToken("tok-1")

	err := New(c).Logout(context.Background())
	if err == nil {
		t.Error("Logout should surface the server error")
	}
	if c.Token() != "" {
		t.Errorf("token = %q, want empty regardless of server error", c.Token())
	}
}

func TestMe_AcceptsBareBody(t *testing.T) {
	c := newStubClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id": "7", "email": "me@x.y", "first_name": "Mo", "role": "customer"}`))
	})

	user, err := New(c).Me(context.Background())
	if err != nil {
		t.Fatalf("Me: %v", err)
	}
	if user.ID != "7" || user.FirstName != "Mo" {
		t.Errorf("user = %+v", user)
	}
}
