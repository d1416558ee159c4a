package toggl

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"toggl-sherpa/internal/domain"
)

// Client implements ports.TogglClient using the Toggl Track API v9.
type Client struct {
	baseURL   string
	apiToken  string
	workspace int64
	http      *http.Client
	log       *slog.Logger
}

func NewClient(baseURL, apiToken string, workspaceID int64, log *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = "https://api.track.toggl.com"
	}
	return &Client{
		baseURL:   baseURL,
		apiToken:  apiToken,
		workspace: workspaceID,
		http: &http.Client{
			Timeout: 30 * time.Second,
		},
		log: log,
	}
}

// CreateTimeEntry posts one time entry to the configured workspace.
// Toggl v9: POST /api/v9/workspaces/{workspace_id}/time_entries
func (c *Client) CreateTimeEntry(ctx context.Context, item domain.ApplyPlanItem) (*int64, error) {
	if c.apiToken == "" {
		return nil, errors.New("missing api token")
	}

	payload := map[string]any{
		"created_with": "toggl-sherpa",
		"description":  item.Description,
		"start":        domain.TSUTC(item.Start),
		"stop":         domain.TSUTC(item.Stop),
		"workspace_id": c.workspace,
	}
	if len(item.Tags) > 0 {
		payload["tags"] = item.Tags
	}
	if item.ProjectID != nil {
		payload["project_id"] = *item.ProjectID
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, err
	}
	u.Path = fmt.Sprintf("/api/v9/workspaces/%d/time_entries", c.workspace)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	c.authorize(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("toggl: unexpected status %d: %s", resp.StatusCode, string(b))
	}

	// The response shape is not guaranteed to include an id.
	var raw struct {
		ID *int64 `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("toggl: decoding create response: %w", err)
	}
	c.log.Debug("created toggl time entry", slog.String("description", item.Description))
	return raw.ID, nil
}

// ListProjects fetches projects for the given workspace (the configured one
// if workspaceID is zero).
func (c *Client) ListProjects(ctx context.Context, workspaceID int64) ([]domain.RemoteProject, error) {
	var raw []struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	}
	if workspaceID == 0 {
		workspaceID = c.workspace
	}
	if err := c.getJSON(ctx, fmt.Sprintf("/api/v9/workspaces/%d/projects", workspaceID), &raw); err != nil {
		return nil, err
	}
	out := make([]domain.RemoteProject, 0, len(raw))
	for _, p := range raw {
		out = append(out, domain.RemoteProject{ID: p.ID, Name: p.Name})
	}
	return out, nil
}

// ListClients fetches clients for the given workspace (the configured one if
// workspaceID is zero).
func (c *Client) ListClients(ctx context.Context, workspaceID int64) ([]domain.RemoteClient, error) {
	var raw []struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	}
	if workspaceID == 0 {
		workspaceID = c.workspace
	}
	if err := c.getJSON(ctx, fmt.Sprintf("/api/v9/workspaces/%d/clients", workspaceID), &raw); err != nil {
		return nil, err
	}
	out := make([]domain.RemoteClient, 0, len(raw))
	for _, cl := range raw {
		out = append(out, domain.RemoteClient{ID: cl.ID, Name: cl.Name})
	}
	return out, nil
}

func (c *Client) getJSON(ctx context.Context, path string, dst any) error {
	if c.apiToken == "" {
		return errors.New("missing api token")
	}
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return err
	}
	u.Path = path

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return err
	}
	c.authorize(req)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("toggl: unexpected status %d: %s", resp.StatusCode, string(b))
	}
	return json.NewDecoder(resp.Body).Decode(dst)
}

// authorize sets Toggl's basic auth: username = token, password = "api_token".
func (c *Client) authorize(req *http.Request) {
	auth := base64.StdEncoding.EncodeToString([]byte(fmt.Sprintf("%s:%s", c.apiToken, "api_token")))
	req.Header.Set("Authorization", "Basic "+auth)
}
