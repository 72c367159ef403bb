package events

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	frontendforgev1alpha1 "github.com/frontend-forge/frontend-forge/api/v1alpha1"
)

func demoFI() *frontendforgev1alpha1.FrontendIntegration {
	return &frontendforgev1alpha1.FrontendIntegration{
		ObjectMeta: metav1.ObjectMeta{Name: "demo"},
	}
}

func TestEventTypeConstantsAreNamespaced(t *testing.T) {
	assert.Contains(t, EventTypeBuildStarted, EventTypePrefix)
	assert.Contains(t, EventTypeBuildSucceeded, EventTypePrefix)
	assert.Contains(t, EventTypeBuildFailed, EventTypePrefix)
	assert.Contains(t, EventTypePublished, EventTypePrefix)
}

func TestDisabledManagerDoesNotDialBroker(t *testing.T) {
	m := NewManager(Config{Enabled: false, BrokerURL: "http://127.0.0.1:1"})
	err := m.EmitBuildStarted(context.Background(), demoFI(), "demo-job", "sha256:abc")
	require.NoError(t, err)
}

func TestNilManagerIsANoOp(t *testing.T) {
	var m *Manager
	err := m.EmitBuildFailed(context.Background(), demoFI(), "demo-job", "boom")
	require.NoError(t, err)
}

func TestEmitBuildStartedPostsCloudEvent(t *testing.T) {
	var gotType, gotSource, gotSpecVersion string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotType = r.Header.Get("Ce-Type")
		gotSource = r.Header.Get("Ce-Source")
		gotSpecVersion = r.Header.Get("Ce-Specversion")
		assert.Equal(t, "application/cloudevents+json", r.Header.Get("Content-Type"))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	m := NewManager(Config{Enabled: true, BrokerURL: srv.URL})
	err := m.EmitBuildStarted(context.Background(), demoFI(), "demo-job", "sha256:abc")
	require.NoError(t, err)
	assert.Equal(t, EventTypeBuildStarted, gotType)
	assert.Contains(t, gotSource, "demo")
	assert.Equal(t, "1.0", gotSpecVersion)
}

func TestEmitReturnsErrorOnBrokerFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	m := NewManager(Config{Enabled: true, BrokerURL: srv.URL})
	err := m.EmitPublished(context.Background(), demoFI(), "demo", "sha256:def")
	require.Error(t, err)
}
