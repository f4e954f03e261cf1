package upload

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"buildmart.GO/client"
)

func TestUploadFile_MultipartShape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/upload" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		f, hdr, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("file field: %v", err)
		}
		defer f.Close()
		if hdr.Filename != "drill.jpg" {
			t.Errorf("filename = %q", hdr.Filename)
		}
		content, _ := io.ReadAll(f)
		if string(content) != "jpeg-bytes" {
			t.Errorf("content = %q", content)
		}
		if got := r.FormValue("folder"); got != "products" {
			t.Errorf("folder = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"data": {"url": "/media/products/drill.jpg", "filename": "drill.jpg", "size": 10}}`))
	}))
	defer srv.Close()
	c := client.New(client.Options{BaseURL: srv.URL})

	uploaded, err := New(c).UploadFile(context.Background(), File{
		Name:   "drill.jpg",
		Reader: strings.NewReader("jpeg-bytes"),
	}, "products")
	if err != nil {
		t.Fatalf("UploadFile: %v", err)
	}
	if uploaded.URL != "/media/products/drill.jpg" || uploaded.Size != 10 {
		t.Errorf("uploaded = %+v", uploaded)
	}
}

func TestUploadFiles_UsesFilesField(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/upload/multiple" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		files := r.MultipartForm.File["files"]
		if len(files) != 2 {
			t.Fatalf("files = %d, want 2", len(files))
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"data": [{"filename": "a.jpg"}, {"filename": "b.jpg"}]}`))
	}))
	defer srv.Close()
	c := client.New(client.Options{BaseURL: srv.URL})

	uploaded, err := New(c).UploadFiles(context.Background(), []File{
		{Name: "a.jpg", Reader: strings.NewReader("a")},
		{Name: "b.jpg", Reader: strings.NewReader("b")},
	}, "")
	if err != nil {
		t.Fatalf("UploadFiles: %v", err)
	}
	if len(uploaded) != 2 || uploaded[1].Filename != "b.jpg" {
		t.Errorf("uploaded = %+v", uploaded)
	}
}
