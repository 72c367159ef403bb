// Package events emits CloudEvents for FrontendIntegration lifecycle
// transitions to an optional broker, so downstream consumers (dashboards,
// chat notifiers, audit pipelines) can observe builds without polling the
// API server.
package events

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	cloudevents "github.com/cloudevents/sdk-go/v2"
	"github.com/google/uuid"

	frontendforgev1alpha1 "github.com/frontend-forge/frontend-forge/api/v1alpha1"
)

const (
	// EventTypePrefix namespaces every event type this package emits.
	EventTypePrefix = "io.frontend-forge.lifecycle"

	EventTypeBuildStarted   = EventTypePrefix + ".build.started"
	EventTypeBuildSucceeded = EventTypePrefix + ".build.succeeded"
	EventTypeBuildFailed    = EventTypePrefix + ".build.failed"
	EventTypePublished      = EventTypePrefix + ".bundle.published"

	// DefaultSource is used when Config.Source is left empty.
	DefaultSource = "io.frontend-forge/controller"
)

// Config holds event manager configuration, loaded from
// CLOUDEVENTS_BROKER_URL in the controller's environment.
type Config struct {
	BrokerURL string
	Source    string
	Enabled   bool
}

// Manager emits lifecycle CloudEvents over HTTP to a broker. A Manager with
// Enabled=false (or a nil *Manager) is a no-op, so callers can construct one
// unconditionally and skip the emission entirely when no broker is configured.
type Manager struct {
	config     Config
	httpClient *http.Client
}

// NewManager builds a Manager from config. Source defaults to DefaultSource
// when unset.
func NewManager(config Config) *Manager {
	if config.Source == "" {
		config.Source = DefaultSource
	}
	return &Manager{
		config:     config,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// BuildEventData describes the payload carried by build.started/succeeded/failed events.
type BuildEventData struct {
	FIName      string `json:"fiName"`
	JobName     string `json:"jobName,omitempty"`
	SpecHash    string `json:"specHash,omitempty"`
	StartedAt   string `json:"startedAt,omitempty"`
	CompletedAt string `json:"completedAt,omitempty"`
	Message     string `json:"message,omitempty"`
}

// PublishedEventData describes the payload carried by bundle.published events.
type PublishedEventData struct {
	FIName       string `json:"fiName"`
	BundleName   string `json:"bundleName"`
	ManifestHash string `json:"manifestHash,omitempty"`
}

// EmitBuildStarted emits a build.started event for fi.
func (m *Manager) EmitBuildStarted(ctx context.Context, fi *frontendforgev1alpha1.FrontendIntegration, jobName, specHash string) error {
	return m.emit(ctx, EventTypeBuildStarted, fi, &BuildEventData{
		FIName:    fi.Name,
		JobName:   jobName,
		SpecHash:  specHash,
		StartedAt: time.Now().Format(time.RFC3339),
	})
}

// EmitBuildFailed emits a build.failed event for fi.
func (m *Manager) EmitBuildFailed(ctx context.Context, fi *frontendforgev1alpha1.FrontendIntegration, jobName, message string) error {
	return m.emit(ctx, EventTypeBuildFailed, fi, &BuildEventData{
		FIName:      fi.Name,
		JobName:     jobName,
		CompletedAt: time.Now().Format(time.RFC3339),
		Message:     message,
	})
}

// EmitBuildSucceeded emits a build.succeeded event for fi.
func (m *Manager) EmitBuildSucceeded(ctx context.Context, fi *frontendforgev1alpha1.FrontendIntegration, jobName string) error {
	return m.emit(ctx, EventTypeBuildSucceeded, fi, &BuildEventData{
		FIName:      fi.Name,
		JobName:     jobName,
		CompletedAt: time.Now().Format(time.RFC3339),
	})
}

// EmitPublished emits a bundle.published event once the controller observes
// the JSBundle the runner created.
func (m *Manager) EmitPublished(ctx context.Context, fi *frontendforgev1alpha1.FrontendIntegration, bundleName, manifestHash string) error {
	return m.emit(ctx, EventTypePublished, fi, &PublishedEventData{
		FIName:       fi.Name,
		BundleName:   bundleName,
		ManifestHash: manifestHash,
	})
}

func (m *Manager) source(fi *frontendforgev1alpha1.FrontendIntegration) string {
	return fmt.Sprintf("%s/%s", m.config.Source, fi.Name)
}

// emit sends a CloudEvent to the configured broker. A disabled or unconfigured
// Manager returns nil without making a request, so callers on a cluster
// without a broker never pay the cost of a failed dial.
func (m *Manager) emit(ctx context.Context, eventType string, fi *frontendforgev1alpha1.FrontendIntegration, data interface{}) error {
	if m == nil || !m.config.Enabled || m.config.BrokerURL == "" {
		return nil
	}

	event := cloudevents.NewEvent()
	event.SetID(uuid.New().String())
	event.SetType(eventType)
	event.SetSource(m.source(fi))
	event.SetSubject(fi.Name)
	event.SetTime(time.Now())
	event.SetExtension("correlationid", uuid.New().String())

	if err := event.SetData(cloudevents.ApplicationJSON, data); err != nil {
		return fmt.Errorf("set event data: %w", err)
	}

	eventBytes, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.config.BrokerURL, bytes.NewReader(eventBytes))
	if err != nil {
		return fmt.Errorf("build broker request: %w", err)
	}
	req.Header.Set("Content-Type", "application/cloudevents+json")
	req.Header.Set("Ce-Id", event.ID())
	req.Header.Set("Ce-Type", event.Type())
	req.Header.Set("Ce-Source", event.Source())
	req.Header.Set("Ce-Specversion", "1.0")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send event to broker: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("broker returned status %d", resp.StatusCode)
	}
	return nil
}
