package runner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frontend-forge/frontend-forge/internal/buildservice"
)

func testConfig() Config {
	return Config{
		FIName:                     "demo",
		SpecHash:                   "sha256:abc",
		JSBundleName:               "fi-demo",
		JSBundleConfigMapNamespace: "extension-frontend-forge",
		JSBundleConfigKey:          "index.js",
	}
}

func TestSelectBundleArtifactPrefersExactKeyMatch(t *testing.T) {
	files := []buildservice.RemoteFile{
		{Path: "bundle/main.js", Content: "a"},
		{Path: "index.js", Content: "b"},
	}
	key, content, err := selectBundleArtifact(testConfig(), files)
	require.NoError(t, err)
	assert.Equal(t, "index.js", key)
	assert.Equal(t, "b", content)
}

func TestSelectBundleArtifactFallsBackToSingleFile(t *testing.T) {
	files := []buildservice.RemoteFile{{Path: "output.js", Content: "only"}}
	key, content, err := selectBundleArtifact(testConfig(), files)
	require.NoError(t, err)
	assert.Equal(t, "output.js", key)
	assert.Equal(t, "only", content)
}

func TestSelectBundleArtifactFallsBackToJSSuffix(t *testing.T) {
	files := []buildservice.RemoteFile{
		{Path: "style.css", Content: "body{}"},
		{Path: "bundle/main.js", Content: "console.log('js')"},
	}
	key, content, err := selectBundleArtifact(testConfig(), files)
	require.NoError(t, err)
	assert.Equal(t, "index.js", key) // nested path -> desired key, not the raw path
	assert.Equal(t, "console.log('js')", content)
}

func TestSelectBundleArtifactErrorsWhenNothingMatches(t *testing.T) {
	files := []buildservice.RemoteFile{
		{Path: "a.css", Content: "x"},
		{Path: "b.css", Content: "y"},
	}
	_, _, err := selectBundleArtifact(testConfig(), files)
	assert.Error(t, err)
}
