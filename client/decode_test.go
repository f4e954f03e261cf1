package client

import (
	"testing"
	"time"
)

type decodeProduct struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Stock int     `json:"stock_quantity"`
}

func TestDecode_MapsJSONTags(t *testing.T) {
	resp := &Response{Data: map[string]interface{}{
		"id":             "p1",
		"name":           "Cordless Drill",
		"price":          129.90,
		"stock_quantity": 14,
	}}
	p, err := Decode[decodeProduct](resp)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if p.ID != "p1" || p.Name != "Cordless Drill" || p.Price != 129.90 || p.Stock != 14 {
		t.Errorf("decoded = %+v", p)
	}
}

func TestDecode_WeaklyTypedInput(t *testing.T) {
	// Backends sometimes send numbers as strings and IDs as numbers.
	resp := &Response{Data: map[string]interface{}{
		"id":             float64(42),
		"price":          "19.99",
		"stock_quantity": "7",
	}}
	p, err := Decode[decodeProduct](resp)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if p.ID != "42" {
		t.Errorf("ID = %q, want 42", p.ID)
	}
	if p.Price != 19.99 {
		t.Errorf("Price = %v, want 19.99", p.Price)
	}
	if p.Stock != 7 {
		t.Errorf("Stock = %d, want 7", p.Stock)
	}
}

func TestDecode_TimeHook(t *testing.T) {
	type event struct {
		At time.Time `json:"at"`
	}
	resp := &Response{Data: map[string]interface{}{"at": "2026-08-28T10:30:00Z"}}
	e, err := Decode[event](resp)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	want := time.Date(2026, 8, 28, 10, 30, 0, 0, time.UTC)
	if !e.At.Equal(want) {
		t.Errorf("At = %v, want %v", e.At, want)
	}
}

func TestDecode_Slice(t *testing.T) {
	resp := &Response{Data: []interface{}{
		map[string]interface{}{"id": "a"},
		map[string]interface{}{"id": "b"},
	}}
	items, err := Decode[[]decodeProduct](resp)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(items) != 2 || items[0].ID != "a" || items[1].ID != "b" {
		t.Errorf("items = %+v", items)
	}
}

func TestDecode_NilPayload(t *testing.T) {
	p, err := Decode[decodeProduct](&Response{})
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if p.ID != "" {
		t.Errorf("zero value expected, got %+v", p)
	}
}
