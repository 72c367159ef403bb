package runner

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setEnvs(t *testing.T, kv map[string]string) {
	t.Helper()
	for k, v := range kv {
		t.Setenv(k, v)
	}
}

func baseEnv() map[string]string {
	return map[string]string{
		"FI_NAME":                "demo-dashboard",
		"SPEC_HASH":              "sha256:abc123",
		"JSBUNDLE_NAME":          "demo-dashboard",
		"BUILD_SERVICE_BASE_URL": "https://build.example.com",
	}
}

func TestLoadConfigAppliesDefaults(t *testing.T) {
	setEnvs(t, baseEnv())

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "demo-dashboard", cfg.FIName)
	assert.Equal(t, "sha256:abc123", cfg.SpecHash)
	assert.Equal(t, "extension-frontend-forge", cfg.JSBundleConfigMapNamespace)
	assert.Equal(t, "index.js", cfg.JSBundleConfigKey)
	assert.Equal(t, 600*time.Second, cfg.BuildServiceTimeout)
	assert.Equal(t, 30*time.Second, cfg.StaleCheckGracePeriod)
	assert.Equal(t, 2*time.Second, cfg.StaleCheckPollInterval)
}

func TestLoadConfigFallsBackToLegacyManifestHash(t *testing.T) {
	env := baseEnv()
	delete(env, "SPEC_HASH")
	env["MANIFEST_HASH"] = "sha256:legacy789"
	setEnvs(t, env)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "sha256:legacy789", cfg.SpecHash)
}

func TestLoadConfigPrefersSpecHashOverLegacyAlias(t *testing.T) {
	env := baseEnv()
	env["MANIFEST_HASH"] = "sha256:legacy789"
	setEnvs(t, env)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "sha256:abc123", cfg.SpecHash)
}

func TestLoadConfigFailsWhenRequiredVarMissing(t *testing.T) {
	for _, missing := range []string{"FI_NAME", "JSBUNDLE_NAME", "BUILD_SERVICE_BASE_URL"} {
		env := baseEnv()
		delete(env, missing)
		setEnvs(t, env)
		t.Setenv(missing, "")

		_, err := LoadConfig()
		assert.Error(t, err, "missing %s should fail", missing)
	}
}

func TestLoadConfigFailsWhenNeitherSpecHashNorLegacySet(t *testing.T) {
	env := baseEnv()
	delete(env, "SPEC_HASH")
	setEnvs(t, env)

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestLoadConfigRejectsInvalidTimeoutValue(t *testing.T) {
	env := baseEnv()
	env["BUILD_SERVICE_TIMEOUT_SECONDS"] = "not-a-number"
	setEnvs(t, env)

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestLoadConfigHonorsOverrides(t *testing.T) {
	env := baseEnv()
	env["JSBUNDLE_CONFIGMAP_NAMESPACE"] = "custom-ns"
	env["JSBUNDLE_CONFIG_KEY"] = "bundle.js"
	env["BUILD_SERVICE_TIMEOUT_SECONDS"] = "120"
	env["STALE_CHECK_GRACE_SECONDS"] = "5"
	setEnvs(t, env)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "custom-ns", cfg.JSBundleConfigMapNamespace)
	assert.Equal(t, "bundle.js", cfg.JSBundleConfigKey)
	assert.Equal(t, 120*time.Second, cfg.BuildServiceTimeout)
	assert.Equal(t, 5*time.Second, cfg.StaleCheckGracePeriod)
}
