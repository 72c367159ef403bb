// Package runner drives the one-shot build workflow: fetch a
// FrontendIntegration, render its manifest, submit it to the build service,
// and publish the resulting artifact as a JSBundle. It's the Go equivalent
// of a small standalone binary invoked once per build Job, not a
// long-running controller.
package runner

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config is loaded once from the build Job's environment. FIName/SpecHash
// identify which FrontendIntegration and spec revision this Job was created
// for; the rest configures where to publish and how patient to be.
type Config struct {
	FIName  string
	SpecHash string

	JSBundleName              string
	JSBundleConfigMapNamespace string
	JSBundleConfigKey         string

	BuildServiceBaseURL    string
	BuildServiceTimeout    time.Duration
	StaleCheckGracePeriod  time.Duration
	StaleCheckPollInterval time.Duration
}

// LoadConfig reads Config from the process environment, the shape the
// controller populates on the build Job it creates.
func LoadConfig() (Config, error) {
	fiName, err := requiredEnv("FI_NAME")
	if err != nil {
		return Config{}, err
	}
	specHash, err := requiredEnvAlias("SPEC_HASH", "MANIFEST_HASH")
	if err != nil {
		return Config{}, err
	}
	bundleName, err := requiredEnv("JSBUNDLE_NAME")
	if err != nil {
		return Config{}, err
	}
	baseURL, err := requiredEnv("BUILD_SERVICE_BASE_URL")
	if err != nil {
		return Config{}, err
	}

	timeoutSeconds, err := parseEnvUint("BUILD_SERVICE_TIMEOUT_SECONDS", 600)
	if err != nil {
		return Config{}, err
	}
	graceSeconds, err := parseEnvUint("STALE_CHECK_GRACE_SECONDS", 30)
	if err != nil {
		return Config{}, err
	}

	return Config{
		FIName:   fiName,
		SpecHash: specHash,

		JSBundleName:               bundleName,
		JSBundleConfigMapNamespace: getEnv("JSBUNDLE_CONFIGMAP_NAMESPACE", "extension-frontend-forge"),
		JSBundleConfigKey:          getEnv("JSBUNDLE_CONFIG_KEY", "index.js"),

		BuildServiceBaseURL:    baseURL,
		BuildServiceTimeout:    time.Duration(timeoutSeconds) * time.Second,
		StaleCheckGracePeriod:  time.Duration(graceSeconds) * time.Second,
		StaleCheckPollInterval: 2 * time.Second,
	}, nil
}

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func requiredEnv(key string) (string, error) {
	v := os.Getenv(key)
	if v == "" {
		return "", fmt.Errorf("missing required environment variable %s", key)
	}
	return v, nil
}

// requiredEnvAlias reads primary, falling back to legacy if primary is
// unset. Both SPEC_HASH and the legacy MANIFEST_HASH name carry the same
// observedSpecHash value; the alias exists so Jobs created by an older
// controller build still run correctly against a newer runner image.
func requiredEnvAlias(primary, legacy string) (string, error) {
	if v := os.Getenv(primary); v != "" {
		return v, nil
	}
	return requiredEnv(legacy)
}

func parseEnvUint(key string, defaultValue uint64) (uint64, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue, nil
	}
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid environment variable %s=%q: %w", key, v, err)
	}
	return n, nil
}
