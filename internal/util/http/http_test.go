package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestFetch(t *testing.T) {
	var gotUA, gotAccept, gotCustom string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotAccept = r.Header.Get("Accept")
		gotCustom = r.Header.Get("X-Test")

		switch r.URL.Path {
		case "/image":
			w.Header().Set("Content-Type", "image/png")
			_, _ = w.Write([]byte("pngdata"))
		case "/html":
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte("<html></html>"))
		case "/big":
			w.Header().Set("Content-Type", "image/jpeg")
			_, _ = w.Write([]byte(strings.Repeat("x", 32)))
		case "/slow":
			time.Sleep(200 * time.Millisecond)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	ctx := context.Background()

	data, err := Fetch(ctx, srv.URL+"/image", FetchOptions{Headers: map[string]string{"X-Test": "yes"}})
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if string(data) != "pngdata" {
		t.Errorf("Fetch() = %q, want %q", data, "pngdata")
	}
	if !strings.HasPrefix(gotUA, UserAgentName+"/") {
		t.Errorf("User-Agent = %q, want prefix %q", gotUA, UserAgentName+"/")
	}
	if gotAccept != "image/*" {
		t.Errorf("Accept = %q, want image/*", gotAccept)
	}
	if gotCustom != "yes" {
		t.Errorf("X-Test = %q, want yes", gotCustom)
	}

	if _, err := Fetch(ctx, srv.URL+"/missing", FetchOptions{}); err == nil || !strings.Contains(err.Error(), "HTTP 404") {
		t.Errorf("Fetch(missing) error = %v, want HTTP 404", err)
	}

	if _, err := Fetch(ctx, srv.URL+"/html", FetchOptions{}); err == nil || !strings.Contains(err.Error(), "unexpected content type") {
		t.Errorf("Fetch(html) error = %v, want content type error", err)
	}

	if _, err := Fetch(ctx, srv.URL+"/big", FetchOptions{MaxBytes: 16}); !errors.Is(err, ErrTooLarge) {
		t.Errorf("Fetch(big) error = %v, want ErrTooLarge", err)
	}
	if _, err := Fetch(ctx, srv.URL+"/big", FetchOptions{MaxBytes: 32}); err != nil {
		t.Errorf("Fetch(big) at limit error = %v", err)
	}

	if _, err := Fetch(ctx, srv.URL+"/slow", FetchOptions{Timeout: 20 * time.Millisecond}); err == nil {
		t.Error("Fetch(slow) expected timeout error, got nil")
	}
}

func TestFetchCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := Fetch(ctx, "http://127.0.0.1:1/never", FetchOptions{}); err == nil {
		t.Error("Fetch() with cancelled context expected error, got nil")
	}
}
