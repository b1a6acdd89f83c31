// Package apitest issues ad hoc HTTP requests and records a local history.
package apitest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"
)

// Methods supported by the request command.
var Methods = []string{
	http.MethodGet,
	http.MethodPost,
	http.MethodPut,
	http.MethodPatch,
	http.MethodDelete,
}

// Request describes one HTTP request to perform.
type Request struct {
	Method  string
	URL     string
	Headers map[string]string
	Body    string
}

// Response captures what the server sent back.
type Response struct {
	StatusCode int
	Status     string
	Headers    http.Header
	Body       string
	Duration   time.Duration
}

// Client wraps an http.Client for single-shot request testing.
type Client struct {
	HTTPClient *http.Client
}

// NewClient creates a Client with the given timeout.
func NewClient(timeout time.Duration) *Client {
	return &Client{
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

// Validate checks the request before it is sent.
func (r *Request) Validate() error {
	method := strings.ToUpper(r.Method)
	supported := false
	for _, m := range Methods {
		if m == method {
			supported = true
			break
		}
	}
	if !supported {
		return fmt.Errorf("unsupported method %q (use one of %s)", r.Method, strings.Join(Methods, ", "))
	}

	u, err := url.Parse(r.URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid URL %q (must include scheme and host)", r.URL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported URL scheme %q", u.Scheme)
	}
	return nil
}

// Do performs the request and returns the captured response.
func (c *Client) Do(r *Request) (*Response, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	var body io.Reader
	if r.Body != "" {
		body = bytes.NewBufferString(r.Body)
	}

	req, err := http.NewRequest(strings.ToUpper(r.Method), r.URL, body)
	if err != nil {
		return nil, err
	}
	for k, v := range r.Headers {
		req.Header.Set(k, v)
	}
	if r.Body != "" && req.Header.Get("Content-Type") == "" {
		// Bodies are JSON unless the caller says otherwise
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Headers:    resp.Header,
		Body:       string(data),
		Duration:   time.Since(start),
	}, nil
}

// ParseHeader splits a "Name: value" header flag.
func ParseHeader(raw string) (name, value string, err error) {
	idx := strings.Index(raw, ":")
	if idx <= 0 {
		return "", "", fmt.Errorf("invalid header %q (want 'Name: value')", raw)
	}
	return strings.TrimSpace(raw[:idx]), strings.TrimSpace(raw[idx+1:]), nil
}

// ValidateJSONBody ensures a request body is valid JSON.
func ValidateJSONBody(body string) error {
	if strings.TrimSpace(body) == "" {
		return nil
	}
	if !json.Valid([]byte(body)) {
		return fmt.Errorf("request body is not valid JSON")
	}
	return nil
}

// PrettyJSON re-indents a JSON body for display; non-JSON bodies are
// returned unchanged.
func PrettyJSON(body string) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, []byte(body), "", "  "); err != nil {
		return body
	}
	return buf.String()
}

// HeaderLines flattens response headers into sorted "Name: value" lines.
func HeaderLines(h http.Header) []string {
	var lines []string
	for name, values := range h {
		for _, v := range values {
			lines = append(lines, name+": "+v)
		}
	}
	sort.Strings(lines)
	return lines
}
