package app

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"toggl-sherpa/internal/config"
)

func testApp(t *testing.T, allowHosts string) *App {
	t.Helper()
	var cfg config.Config
	cfg.DB = filepath.Join(t.TempDir(), "test.sqlite3")
	cfg.AllowHosts = allowHosts

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	a, err := New(context.Background(), log, cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { a.Close() })
	return a
}

func postTab(t *testing.T, handler http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/v1/active_tab", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestTabServerHealthz(t *testing.T) {
	a := testApp(t, "")
	srv := a.TabServer("127.0.0.1:0")

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d", rec.Code)
	}
	if rec.Body.String() != "ok" {
		t.Errorf("body = %q", rec.Body.String())
	}
}

func TestTabServerIngestAllowed(t *testing.T) {
	a := testApp(t, "github.com")
	srv := a.TabServer("127.0.0.1:0")

	rec := postTab(t, srv.Handler, `{"url":"https://github.com/acme/widgets","title":"widgets"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp["ok"] != true || resp["allowed"] != true {
		t.Errorf("response = %v", resp)
	}
}

func TestTabServerIngestRedacted(t *testing.T) {
	a := testApp(t, "github.com")
	srv := a.TabServer("127.0.0.1:0")

	rec := postTab(t, srv.Handler, `{"url":"https://secret.example/private","title":"Private"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp["allowed"] != false {
		t.Errorf("allowed = %v", resp["allowed"])
	}
	if url, _ := resp["url_redacted"].(string); url != "https://secret.example/…" {
		t.Errorf("url_redacted = %v", resp["url_redacted"])
	}
	// The raw path must never echo back.
	if strings.Contains(rec.Body.String(), "/private") {
		t.Errorf("raw path leaked: %s", rec.Body.String())
	}
}

func TestTabServerRejectsBadJSON(t *testing.T) {
	a := testApp(t, "")
	srv := a.TabServer("127.0.0.1:0")

	rec := postTab(t, srv.Handler, "{not json")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestTabServerMethodNotAllowed(t *testing.T) {
	a := testApp(t, "")
	srv := a.TabServer("127.0.0.1:0")

	req := httptest.NewRequest(http.MethodGet, "/v1/active_tab", nil)
	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
}

func TestTabServerCORSPreflight(t *testing.T) {
	a := testApp(t, "")
	srv := a.TabServer("127.0.0.1:0")

	req := httptest.NewRequest(http.MethodOptions, "/v1/active_tab", nil)
	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("missing CORS header")
	}
}
