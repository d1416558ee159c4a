package toggl

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"toggl-sherpa/internal/domain"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestCreateTimeEntry(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": 987654}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "tok123", 42, discard())
	projID := int64(7)
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	id, err := client.CreateTimeEntry(context.Background(), domain.ApplyPlanItem{
		Start:       start,
		Stop:        start.Add(time.Hour),
		Description: "code:x [proj:dev]",
		Tags:        []string{"code"},
		ProjectID:   &projID,
	})
	if err != nil {
		t.Fatalf("CreateTimeEntry: %v", err)
	}
	if id == nil || *id != 987654 {
		t.Errorf("id = %v, want 987654", id)
	}

	if gotPath != "/api/v9/workspaces/42/time_entries" {
		t.Errorf("path = %q", gotPath)
	}
	if gotAuth == "" {
		t.Error("missing Authorization header")
	}
	if gotBody["description"] != "code:x [proj:dev]" {
		t.Errorf("description = %v", gotBody["description"])
	}
	if gotBody["start"] != "2025-03-10T09:00:00Z" || gotBody["stop"] != "2025-03-10T10:00:00Z" {
		t.Errorf("start/stop = %v / %v", gotBody["start"], gotBody["stop"])
	}
	if gotBody["workspace_id"] != float64(42) || gotBody["project_id"] != float64(7) {
		t.Errorf("ids = %v / %v", gotBody["workspace_id"], gotBody["project_id"])
	}
	if gotBody["created_with"] != "toggl-sherpa" {
		t.Errorf("created_with = %v", gotBody["created_with"])
	}
}

func TestCreateTimeEntryErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "too many requests", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "tok", 1, discard())
	_, err := client.CreateTimeEntry(context.Background(), domain.ApplyPlanItem{
		Start: time.Now(), Stop: time.Now(), Description: "x",
	})
	if err == nil {
		t.Fatal("expected an error")
	}
}

func TestCreateTimeEntryRequiresToken(t *testing.T) {
	client := NewClient("http://localhost:0", "", 1, discard())
	if _, err := client.CreateTimeEntry(context.Background(), domain.ApplyPlanItem{}); err == nil {
		t.Fatal("expected an error without a token")
	}
}

func TestListProjects(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v9/workspaces/42/projects" {
			t.Errorf("path = %q", r.URL.Path)
		}
		_, _ = w.Write([]byte(`[{"id":1,"name":"dev"},{"id":2,"name":"ops"}]`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "tok", 42, discard())
	projects, err := client.ListProjects(context.Background(), 0)
	if err != nil {
		t.Fatalf("ListProjects: %v", err)
	}
	if len(projects) != 2 || projects[0].Name != "dev" || projects[1].ID != 2 {
		t.Errorf("projects = %+v", projects)
	}
}

func TestListClients(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v9/workspaces/9/clients" {
			t.Errorf("path = %q", r.URL.Path)
		}
		_, _ = w.Write([]byte(`[{"id":3,"name":"acme"}]`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "tok", 42, discard())
	clients, err := client.ListClients(context.Background(), 9)
	if err != nil {
		t.Fatalf("ListClients: %v", err)
	}
	if len(clients) != 1 || clients[0].Name != "acme" {
		t.Errorf("clients = %+v", clients)
	}
}
