package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"
)

// Query holds optional query parameters. Keys with nil or empty-string values
// are omitted from the request URL.
type Query map[string]interface{}

// Options configures a Client.
type Options struct {
	BaseURL        string
	Timeout        time.Duration
	DefaultHeaders map[string]string
	TokenStore     TokenStore
	HTTPClient     *http.Client
	Debug          bool
}

// Client is the single point of HTTP I/O for every resource module: base URL,
// bearer-token attachment, timeout enforcement, and response/error shaping.
// One attempt per call — retries, if wanted, belong to the caller.
type Client struct {
	baseURL string
	timeout time.Duration
	headers map[string]string
	http    *http.Client
	store   TokenStore
	debug   bool

	mu    sync.RWMutex
	token string
}

// New builds a Client. If a TokenStore is given, the persisted token (if any)
// is loaded immediately so a fresh process resumes the previous session.
func New(opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	c := &Client{
		baseURL: strings.TrimSuffix(opts.BaseURL, "/"),
		timeout: timeout,
		headers: opts.DefaultHeaders,
		http:    httpClient,
		store:   opts.TokenStore,
		debug:   opts.Debug,
	}
	if c.store != nil {
		if token, err := c.store.Load(); err == nil && token != "" {
			c.token = token
		}
	}
	return c
}

// SetToken stores the session token in memory and persists it. Last write
// wins; concurrent logins are not serialized beyond the mutex.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
	if c.store != nil {
		if err := c.store.Save(token); err != nil {
			log.Printf("client: persist token: %v", err)
		}
	}
}

// ClearToken removes the token from memory and from the store.
func (c *Client) ClearToken() {
	c.mu.Lock()
	c.token = ""
	c.mu.Unlock()
	if c.store != nil {
		if err := c.store.Clear(); err != nil {
			log.Printf("client: clear token: %v", err)
		}
	}
}

// Token returns the current in-memory token ("" when logged out).
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// BaseURL returns the configured base URL (trailing slash stripped).
func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) Get(ctx context.Context, endpoint string, query Query) (*Response, error) {
	return c.do(ctx, http.MethodGet, endpoint, query, nil, "")
}

func (c *Client) Post(ctx context.Context, endpoint string, body interface{}) (*Response, error) {
	return c.doJSON(ctx, http.MethodPost, endpoint, body)
}

func (c *Client) Put(ctx context.Context, endpoint string, body interface{}) (*Response, error) {
	return c.doJSON(ctx, http.MethodPut, endpoint, body)
}

func (c *Client) Patch(ctx context.Context, endpoint string, body interface{}) (*Response, error) {
	return c.doJSON(ctx, http.MethodPatch, endpoint, body)
}

func (c *Client) Delete(ctx context.Context, endpoint string, body interface{}) (*Response, error) {
	return c.doJSON(ctx, http.MethodDelete, endpoint, body)
}

// PostMultipart sends a pre-encoded multipart body (file uploads).
func (c *Client) PostMultipart(ctx context.Context, endpoint string, body io.Reader, contentType string) (*Response, error) {
	return c.do(ctx, http.MethodPost, endpoint, nil, body, contentType)
}

// GetRaw fetches the response body as-is (export downloads). The filename is
// taken from Content-Disposition when the server sends one.
func (c *Client) GetRaw(ctx context.Context, endpoint string, query Query) ([]byte, string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.buildURL(endpoint, query), nil)
	if err != nil {
		return nil, "", err
	}
	c.applyHeaders(req, "")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, "", c.transportError(ctx, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, "", shapeError(resp.StatusCode, resp.Header.Get("Content-Type"), raw)
	}
	return raw, dispositionFilename(resp.Header.Get("Content-Disposition")), nil
}

func (c *Client) doJSON(ctx context.Context, method, endpoint string, body interface{}) (*Response, error) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}
	return c.do(ctx, method, endpoint, nil, reader, "application/json")
}

func (c *Client) do(ctx context.Context, method, endpoint string, query Query, body io.Reader, contentType string) (*Response, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	fullURL := c.buildURL(endpoint, query)
	req, err := http.NewRequestWithContext(ctx, method, fullURL, body)
	if err != nil {
		return nil, err
	}
	c.applyHeaders(req, contentType)

	if c.debug {
		log.Printf("client: %s %s", method, fullURL)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, c.transportError(ctx, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return shapeResponse(resp.StatusCode, resp.Header.Get("Content-Type"), raw)
}

// transportError maps a failed round trip to the caller-facing error: deadline
// expiry becomes a 408 APIError, anything else passes through wrapped.
func (c *Client) transportError(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return &APIError{Status: 408, Message: "request timed out"}
	}
	return fmt.Errorf("request failed: %w", err)
}

func (c *Client) applyHeaders(req *http.Request, contentType string) {
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

func (c *Client) buildURL(endpoint string, query Query) string {
	fullURL := c.baseURL + endpoint
	if encoded := EncodeQuery(query); encoded != "" {
		if strings.Contains(fullURL, "?") {
			fullURL += "&" + encoded
		} else {
			fullURL += "?" + encoded
		}
	}
	return fullURL
}

// EncodeQuery serializes query parameters, skipping nil and empty-string
// values. Keys are sorted for stable URLs.
func EncodeQuery(query Query) string {
	if len(query) == 0 {
		return ""
	}
	values := url.Values{}
	keys := make([]string, 0, len(query))
	for k := range query {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		v := query[k]
		if v == nil {
			continue
		}
		s := fmt.Sprintf("%v", v)
		if s == "" {
			continue
		}
		values.Set(k, s)
	}
	return values.Encode()
}

func dispositionFilename(header string) string {
	for _, part := range strings.Split(header, ";") {
		part = strings.TrimSpace(part)
		if strings.HasPrefix(part, "filename=") {
			return strings.Trim(strings.TrimPrefix(part, "filename="), `"`)
		}
	}
	return ""
}
