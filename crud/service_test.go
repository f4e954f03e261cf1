package crud

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

type testProduct struct {
	ID   string `json:"id"`
	SKU  string `json:"sku"`
	Name string `json:"name"`
}

func TestCreate_WrappedEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/admin/crud/products" {
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"success": true, "data": {"id": "p9", "sku": "NEW-1", "name": "Chisel"}, "message": "created"}`))
	}))
	defer srv.Close()

	svc := New[testProduct](srv.URL, "products", nil)
	result := svc.Create(context.Background(), testProduct{SKU: "NEW-1", Name: "Chisel"})
	if !result.Success {
		t.Fatalf("Success = false, Error = %q", result.Error)
	}
	if result.Data == nil || result.Data.ID != "p9" {
		t.Errorf("Data = %+v, want id p9", result.Data)
	}
	if result.Message != "created" {
		t.Errorf("Message = %q, want created", result.Message)
	}
}

func TestGetByID_BareEntity(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id": "p1", "sku": "HAM-01", "name": "Claw Hammer"}`))
	}))
	defer srv.Close()

	svc := New[testProduct](srv.URL, "products", nil)
	result := svc.GetByID(context.Background(), "p1")
	if !result.Success {
		t.Fatalf("Success = false, Error = %q", result.Error)
	}
	if result.Data == nil || result.Data.SKU != "HAM-01" {
		t.Errorf("Data = %+v, want sku HAM-01", result.Data)
	}
}

func TestDelete_ServerError_NeverPanicsOrThrows(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	svc := New[testProduct](srv.URL, "products", nil)
	result := svc.Delete(context.Background(), "p1")
	if result.Success {
		t.Fatal("Success = true on 500")
	}
	if result.Error != "HTTP error! status: 500" {
		t.Errorf("Error = %q, want HTTP error! status: 500", result.Error)
	}
}

func TestDelete_ConnectionRefused_FoldsIntoResult(t *testing.T) {
	svc := New[testProduct]("http://127.0.0.1:1", "products", nil)
	result := svc.Delete(context.Background(), "p1")
	if result.Success {
		t.Fatal("Success = true on refused connection")
	}
	if result.Error == "" {
		t.Error("Error should carry the transport failure")
	}
}

func TestGetAll_PagedList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("sortBy"); got != "name" {
			t.Errorf("sortBy = %q, want name", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success": true, "data": [{"id": "a"}, {"id": "b"}], "total": 12, "page": 2, "limit": 2}`))
	}))
	defer srv.Close()

	svc := New[testProduct](srv.URL, "products", nil)
	result := svc.GetAll(context.Background(), ListParams{Page: 2, Limit: 2, Sort: &Sort{Field: "name"}})
	if !result.Success {
		t.Fatalf("Success = false, Error = %q", result.Error)
	}
	if len(result.Data) != 2 || result.Total != 12 {
		t.Errorf("Data len = %d, Total = %d, want 2/12", len(result.Data), result.Total)
	}
}

func TestBulkDelete_SendsIDs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string][]string
		json.NewDecoder(r.Body).Decode(&body)
		if len(body["ids"]) != 3 {
			t.Errorf("ids = %v, want 3", body["ids"])
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success": true, "data": {"affected": 3}}`))
	}))
	defer srv.Close()

	svc := New[testProduct](srv.URL, "products", nil)
	result := svc.BulkDelete(context.Background(), []string{"a", "b", "c"})
	if !result.Success || result.Data == nil || result.Data.Affected != 3 {
		t.Errorf("result = %+v", result)
	}
}

func TestExport_FilenameFromDisposition(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("format"); got != "csv" {
			t.Errorf("format = %q, want csv", got)
		}
		w.Header().Set("Content-Disposition", `attachment; filename="products-2026-08-28.csv"`)
		w.Write([]byte("sku,name\nHAM-01,Claw Hammer\n"))
	}))
	defer srv.Close()

	svc := New[testProduct](srv.URL, "products", nil)
	result := svc.Export(context.Background(), "csv", map[string]string{"category": "hand-tools"})
	if !result.Success {
		t.Fatalf("Export failed: %s", result.Error)
	}
	if result.Filename != "products-2026-08-28.csv" {
		t.Errorf("Filename = %q", result.Filename)
	}
	if !strings.HasPrefix(string(result.Data), "sku,name") {
		t.Errorf("Data = %q", result.Data)
	}
}

func TestExport_FilenameFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("{}"))
	}))
	defer srv.Close()

	svc := New[testProduct](srv.URL, "products", nil)
	result := svc.Export(context.Background(), "json", nil)
	if result.Filename != "products.json" {
		t.Errorf("Filename = %q, want products.json", result.Filename)
	}
}

func TestImport_MultipartFieldsAndSummary(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		if got := r.FormValue("updateExisting"); got != "true" {
			t.Errorf("updateExisting = %q, want true", got)
		}
		if got := r.FormValue("skipErrors"); got != "false" {
			t.Errorf("skipErrors = %q, want false", got)
		}
		f, hdr, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("form file: %v", err)
		}
		defer f.Close()
		if hdr.Filename != "products.csv" {
			t.Errorf("filename = %q", hdr.Filename)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success": true, "data": {"success": 4, "failed": 1, "errors": ["row 3: missing sku"]}}`))
	}))
	defer srv.Close()

	svc := New[testProduct](srv.URL, "products", nil)
	csv := strings.NewReader("sku,name\nA,B\n")
	result := svc.Import(context.Background(), "products.csv", csv, ImportOptions{UpdateExisting: true})
	if !result.Success {
		t.Fatalf("Import failed: %s", result.Error)
	}
	if result.Data == nil || result.Data.Success != 4 || result.Data.Failed != 1 {
		t.Errorf("summary = %+v", result.Data)
	}
}

func TestAuthorize_BearerFromTokenFunc(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"success": true}`))
	}))
	defer srv.Close()

	svc := New[testProduct](srv.URL, "products", func() string { return "admin-tok" })
	svc.GetByID(context.Background(), "p1")
	if gotAuth != "Bearer admin-tok" {
		t.Errorf("Authorization = %q, want Bearer admin-tok", gotAuth)
	}
}

func TestDecodeResult_WrappedFailureRespected(t *testing.T) {
	result := decodeResult[testProduct]([]byte(`{"success": false, "error": "duplicate sku"}`))
	if result.Success {
		t.Fatal("Success = true for wrapped failure")
	}
	if result.Error != "duplicate sku" {
		t.Errorf("Error = %q, want duplicate sku", result.Error)
	}
}
