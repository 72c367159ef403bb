package runner

import (
	"fmt"
	"strings"

	"github.com/frontend-forge/frontend-forge/internal/buildservice"
)

// selectBundleArtifact picks which build-service output file becomes the
// published bundle's content. It prefers an exact path match on the
// configured config key; failing that, a build that produced exactly one
// file is assumed to be that file regardless of its name; failing that, the
// first ".js" file is used. The published ConfigMap key is the selected
// file's own path when that path has no directory component (so a build
// service returning a bare "index.js" round-trips unchanged); otherwise the
// file lived under a subdirectory in the build output and the configured
// config key is used as the ConfigMap key instead.
func selectBundleArtifact(cfg Config, files []buildservice.RemoteFile) (key string, content string, err error) {
	desiredKey := cfg.JSBundleConfigKey

	idx := -1
	for i, f := range files {
		if f.Path == desiredKey {
			idx = i
			break
		}
	}
	if idx == -1 && len(files) == 1 {
		idx = 0
	}
	if idx == -1 {
		for i, f := range files {
			if strings.HasSuffix(f.Path, ".js") {
				idx = i
				break
			}
		}
	}
	if idx == -1 {
		return "", "", fmt.Errorf("no suitable JS bundle artifact found (wanted key %q)", desiredKey)
	}

	selected := files[idx]
	key = selected.Path
	if strings.Contains(selected.Path, "/") {
		key = desiredKey
	}
	return key, selected.Content, nil
}
