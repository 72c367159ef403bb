// Package buildservice is the HTTP client the runner uses to hand a
// rendered manifest to the external build service and get back the
// compiled JavaScript bundle (and any other output files).
package buildservice

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ErrBuildFailed is returned when the build service responds 2xx but with
// ok=false in its body.
var ErrBuildFailed = errors.New("build service reported build failure")

// RemoteFile is one output artifact returned by a successful build.
type RemoteFile struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}

type projectBuildResponse struct {
	OK      bool         `json:"ok"`
	Message string       `json:"message,omitempty"`
	Files   []RemoteFile `json:"files"`
}

// Client talks to the build service's HTTP API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient builds a Client against baseURL with the given request timeout.
// Trailing slashes on baseURL are trimmed so callers can pass either form.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// BuildProject submits a rendered manifest (as its canonical JSON string) to
// POST {baseURL}/project/build and returns the output files on success.
func (c *Client) BuildProject(ctx context.Context, manifest string) ([]RemoteFile, error) {
	url := c.baseURL + "/project/build"

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader([]byte(manifest)))
	if err != nil {
		return nil, fmt.Errorf("build project_build request to %s: %w", url, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("project_build request to %s: %w", url, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read project_build response from %s: %w", url, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("project_build at %s returned status %d: %s", url, resp.StatusCode, truncate(body, 500))
	}

	var payload projectBuildResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decode project_build response from %s: %w", url, err)
	}

	if !payload.OK {
		msg := payload.Message
		if msg == "" {
			msg = "build-service returned ok=false"
		}
		return nil, fmt.Errorf("%w: %s", ErrBuildFailed, msg)
	}

	return payload.Files, nil
}

func truncate(b []byte, n int) string {
	s := string(b)
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
