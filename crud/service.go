package crud

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
)

// Result is the envelope every single-entity operation resolves to. Unlike
// the client package, nothing here surfaces as a returned Go error: failures
// are captured into Success=false + Error. Callers branch on Success.
type Result[T any] struct {
	Success bool   `json:"success"`
	Data    *T     `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// ListResult is the paged envelope GetAll resolves to.
type ListResult[T any] struct {
	Success bool   `json:"success"`
	Data    []T    `json:"data,omitempty"`
	Total   int    `json:"total"`
	Page    int    `json:"page"`
	Limit   int    `json:"limit"`
	Error   string `json:"error,omitempty"`
}

// BulkSummary reports a batch operation.
type BulkSummary struct {
	Affected int      `json:"affected"`
	Errors   []string `json:"errors,omitempty"`
}

// ImportSummary reports an import run.
type ImportSummary struct {
	Success int      `json:"success"`
	Failed  int      `json:"failed"`
	Errors  []string `json:"errors,omitempty"`
}

// ExportResult carries the raw export blob and the filename suggested by the
// server (falls back to <resource>.<format>).
type ExportResult struct {
	Success  bool
	Data     []byte
	Filename string
	Error    string
}

// ImportOptions mirror the import endpoint's multipart flags.
type ImportOptions struct {
	UpdateExisting bool
	SkipErrors     bool
}

// Service is the generic REST-resource abstraction for the admin CRUD surface
// (/admin/crud/<resource>). It is deliberately a separate layer from the
// client package, with its own HTTP calls and the result-based error
// convention the admin screens were written against.
type Service[T any] struct {
	baseURL  string
	resource string
	http     *http.Client
	token    func() string
}

// New builds a Service for one resource. tokenFn may be nil for unauthenticated
// use; typically it is (*client.Client).Token to share the session.
func New[T any](baseURL, resource string, tokenFn func() string) *Service[T] {
	return &Service[T]{
		baseURL:  strings.TrimSuffix(baseURL, "/"),
		resource: resource,
		http:     &http.Client{},
		token:    tokenFn,
	}
}

func (s *Service[T]) Create(ctx context.Context, data T) Result[T] {
	return s.entityCall(ctx, http.MethodPost, s.path(""), data)
}

func (s *Service[T]) Update(ctx context.Context, id string, data T) Result[T] {
	return s.entityCall(ctx, http.MethodPut, s.path("/"+id), data)
}

func (s *Service[T]) GetByID(ctx context.Context, id string) Result[T] {
	return s.entityCall(ctx, http.MethodGet, s.path("/"+id), nil)
}

func (s *Service[T]) Delete(ctx context.Context, id string) Result[T] {
	return s.entityCall(ctx, http.MethodDelete, s.path("/"+id), nil)
}

func (s *Service[T]) GetAll(ctx context.Context, params ListParams) ListResult[T] {
	endpoint := s.path("")
	if q := params.Encode(); q != "" {
		endpoint += "?" + q
	}
	raw, status, err := s.roundTrip(ctx, http.MethodGet, endpoint, nil, "")
	if err != nil {
		return ListResult[T]{Error: err.Error()}
	}
	if status < 200 || status >= 300 {
		return ListResult[T]{Error: httpError(status)}
	}
	var out ListResult[T]
	if err := json.Unmarshal(raw, &out); err != nil {
		return ListResult[T]{Error: fmt.Sprintf("invalid response: %v", err)}
	}
	out.Success = true
	out.Error = ""
	return out
}

func (s *Service[T]) BulkDelete(ctx context.Context, ids []string) Result[BulkSummary] {
	return call[BulkSummary](s, ctx, http.MethodPost, s.path("/bulk-delete"), map[string]interface{}{"ids": ids})
}

func (s *Service[T]) BulkUpdate(ctx context.Context, ids []string, updates map[string]interface{}) Result[BulkSummary] {
	body := map[string]interface{}{"ids": ids, "updates": updates}
	return call[BulkSummary](s, ctx, http.MethodPost, s.path("/bulk-update"), body)
}

// Export downloads the resource as csv, excel or json. The caller decides
// what to do with the bytes (the CLI writes them to disk).
func (s *Service[T]) Export(ctx context.Context, format string, filters map[string]string) ExportResult {
	params := ListParams{Filters: filters}
	q := params.Encode()
	endpoint := s.path("/export") + "?format=" + format
	if q != "" {
		endpoint += "&" + q
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+endpoint, nil)
	if err != nil {
		return ExportResult{Error: err.Error()}
	}
	s.authorize(req)
	resp, err := s.http.Do(req)
	if err != nil {
		return ExportResult{Error: err.Error()}
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return ExportResult{Error: err.Error()}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return ExportResult{Error: httpError(resp.StatusCode)}
	}
	filename := filenameFrom(resp.Header.Get("Content-Disposition"))
	if filename == "" {
		filename = s.resource + "." + format
	}
	return ExportResult{Success: true, Data: raw, Filename: filename}
}

// Import uploads a data file for the resource. filename and r hold the file;
// flags ride along as form fields.
func (s *Service[T]) Import(ctx context.Context, filename string, r io.Reader, opts ImportOptions) Result[ImportSummary] {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		return failure[ImportSummary](err.Error())
	}
	if _, err := io.Copy(part, r); err != nil {
		return failure[ImportSummary](err.Error())
	}
	_ = w.WriteField("updateExisting", fmt.Sprintf("%t", opts.UpdateExisting))
	_ = w.WriteField("skipErrors", fmt.Sprintf("%t", opts.SkipErrors))
	if err := w.Close(); err != nil {
		return failure[ImportSummary](err.Error())
	}

	raw, status, err := s.roundTrip(ctx, http.MethodPost, s.path("/import"), &buf, w.FormDataContentType())
	if err != nil {
		return failure[ImportSummary](err.Error())
	}
	if status < 200 || status >= 300 {
		return failure[ImportSummary](httpError(status))
	}
	return decodeResult[ImportSummary](raw)
}

// --- internals ---

func (s *Service[T]) path(suffix string) string {
	return "/admin/crud/" + s.resource + suffix
}

func (s *Service[T]) entityCall(ctx context.Context, method, endpoint string, body interface{}) Result[T] {
	return call[T](s, ctx, method, endpoint, body)
}

// call performs one JSON request and folds every failure mode into the result
// envelope. R is the payload type, independent of the service's T.
func call[R any, T any](s *Service[T], ctx context.Context, method, endpoint string, body interface{}) Result[R] {
	var reader io.Reader
	contentType := ""
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return failure[R](err.Error())
		}
		reader = bytes.NewReader(encoded)
		contentType = "application/json"
	}
	raw, status, err := s.roundTrip(ctx, method, endpoint, reader, contentType)
	if err != nil {
		return failure[R](err.Error())
	}
	if status < 200 || status >= 300 {
		return failure[R](httpError(status))
	}
	return decodeResult[R](raw)
}

func (s *Service[T]) roundTrip(ctx context.Context, method, endpoint string, body io.Reader, contentType string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+endpoint, body)
	if err != nil {
		return nil, 0, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	s.authorize(req)
	resp, err := s.http.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, err
	}
	return raw, resp.StatusCode, nil
}

func (s *Service[T]) authorize(req *http.Request) {
	if s.token == nil {
		return
	}
	if t := s.token(); t != "" {
		req.Header.Set("Authorization", "Bearer "+t)
	}
}

// decodeResult accepts both the wrapped {success, data} body and a bare
// entity body, mirroring the backend's inconsistent envelope usage.
func decodeResult[R any](raw []byte) Result[R] {
	var out Result[R]
	if len(raw) == 0 {
		out.Success = true
		return out
	}
	if err := json.Unmarshal(raw, &out); err == nil {
		if isWrapped(raw) {
			return out
		}
		if out.Data != nil || out.Message != "" {
			out.Success = true
			return out
		}
	}
	var bare R
	if err := json.Unmarshal(raw, &bare); err != nil {
		return failure[R](fmt.Sprintf("invalid response: %v", err))
	}
	return Result[R]{Success: true, Data: &bare}
}

// isWrapped reports whether the body uses the {success, data} envelope rather
// than a bare entity.
func isWrapped(raw []byte) bool {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(raw, &probe); err != nil {
		return false
	}
	_, ok := probe["success"]
	return ok
}

func failure[R any](msg string) Result[R] {
	return Result[R]{Success: false, Error: msg}
}

func httpError(status int) string {
	return fmt.Sprintf("HTTP error! status: %d", status)
}

func filenameFrom(header string) string {
	for _, part := range strings.Split(header, ";") {
		part = strings.TrimSpace(part)
		if strings.HasPrefix(part, "filename=") {
			return strings.Trim(strings.TrimPrefix(part, "filename="), `"`)
		}
	}
	return ""
}
