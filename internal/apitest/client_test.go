package apitest

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestRequest_Validate(t *testing.T) {
	valid := Request{Method: "GET", URL: "https://example.com/path"}
	if err := valid.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	invalid := []Request{
		{Method: "BREW", URL: "https://example.com"},
		{Method: "GET", URL: "not a url"},
		{Method: "GET", URL: "example.com/no-scheme"},
		{Method: "GET", URL: "ftp://example.com"},
	}
	for _, r := range invalid {
		if err := r.Validate(); err == nil {
			t.Errorf("expected error for %+v", r)
		}
	}
}

func TestClient_Do(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s", r.Method)
		}
		if got := r.Header.Get("X-Test"); got != "yes" {
			t.Errorf("X-Test header = %q", got)
		}
		if got := r.Header.Get("Content-Type"); got != "application/json" {
			t.Errorf("Content-Type = %q (default not applied)", got)
		}
		body, _ := io.ReadAll(r.Body)
		if string(body) != `{"a":1}` {
			t.Errorf("body = %s", body)
		}
		w.Header().Set("X-Reply", "ok")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"created":true}`))
	}))
	defer srv.Close()

	client := NewClient(5 * time.Second)
	resp, err := client.Do(&Request{
		Method:  "post",
		URL:     srv.URL,
		Headers: map[string]string{"X-Test": "yes"},
		Body:    `{"a":1}`,
	})
	if err != nil {
		t.Fatal(err)
	}

	if resp.StatusCode != http.StatusCreated {
		t.Errorf("status = %d", resp.StatusCode)
	}
	if resp.Headers.Get("X-Reply") != "ok" {
		t.Error("missing response header")
	}
	if resp.Body != `{"created":true}` {
		t.Errorf("body = %s", resp.Body)
	}
	if resp.Duration <= 0 {
		t.Error("duration not recorded")
	}
}

func TestClient_Do_ConnectionRefused(t *testing.T) {
	client := NewClient(time.Second)
	_, err := client.Do(&Request{Method: "GET", URL: "http://127.0.0.1:1"})
	if err == nil {
		t.Fatal("expected connection error")
	}
}

func TestParseHeader(t *testing.T) {
	name, value, err := ParseHeader("Authorization: Bearer tok")
	if err != nil {
		t.Fatal(err)
	}
	if name != "Authorization" || value != "Bearer tok" {
		t.Errorf("got %q=%q", name, value)
	}

	if _, _, err := ParseHeader("no separator"); err == nil {
		t.Error("expected error for missing colon")
	}
	if _, _, err := ParseHeader(": empty name"); err == nil {
		t.Error("expected error for empty name")
	}
}

func TestValidateJSONBody(t *testing.T) {
	if err := ValidateJSONBody(`{"ok":true}`); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := ValidateJSONBody(""); err != nil {
		t.Errorf("empty body should be fine: %v", err)
	}
	if err := ValidateJSONBody("{nope"); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestPrettyJSON(t *testing.T) {
	got := PrettyJSON(`{"a":1}`)
	if !strings.Contains(got, "\n  \"a\": 1") {
		t.Errorf("PrettyJSON = %q", got)
	}
	if got := PrettyJSON("plain text"); got != "plain text" {
		t.Errorf("non-JSON body altered: %q", got)
	}
}
