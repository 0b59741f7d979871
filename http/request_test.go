package http

import (
	"compress/gzip"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/andybalholm/brotli"
)

const testBody = `cb({"value": 42});`

func TestNewRequestPlain(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("method = %q, want GET", r.Method)
		}
		w.Write([]byte(testBody))
	}))
	defer server.Close()

	res, err := NewRequest(server.URL, nil)
	if err != nil {
		t.Fatalf("NewRequest() error = %v", err)
	}
	if res.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", res.StatusCode)
	}
	if got := res.BodyBuffer.String(); got != testBody {
		t.Errorf("body = %q, want %q", got, testBody)
	}
}

func TestNewRequestGzip(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Encoding", "gzip")
		gz := gzip.NewWriter(w)
		gz.Write([]byte(testBody))
		gz.Close()
	}))
	defer server.Close()

	res, err := NewRequest(server.URL, &Options{Compress: true})
	if err != nil {
		t.Fatalf("NewRequest() error = %v", err)
	}
	if got := res.BodyBuffer.String(); got != testBody {
		t.Errorf("body = %q, want %q", got, testBody)
	}
	if res.Header.Get("Content-Encoding") != "" {
		t.Error("Content-Encoding should be cleared after decoding")
	}
}

func TestNewRequestBrotli(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Encoding", "br")
		br := brotli.NewWriter(w)
		br.Write([]byte(testBody))
		br.Close()
	}))
	defer server.Close()

	res, err := NewRequest(server.URL, &Options{Compress: true})
	if err != nil {
		t.Fatalf("NewRequest() error = %v", err)
	}
	if got := res.BodyBuffer.String(); got != testBody {
		t.Errorf("body = %q, want %q", got, testBody)
	}
}

func TestNewRequestHeaders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("X-Custom"); got != "yes" {
			t.Errorf("X-Custom = %q, want %q", got, "yes")
		}
		if got := r.Header.Get("Accept"); got != "*/*" {
			t.Errorf("Accept = %q, want */*", got)
		}
	}))
	defer server.Close()

	if _, err := NewRequest(server.URL, &Options{
		Headers: map[string]string{"X-Custom": "yes"},
		Timeout: 5 * time.Second,
	}); err != nil {
		t.Fatalf("NewRequest() error = %v", err)
	}
}
