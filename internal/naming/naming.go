// Package naming derives DNS-1123-safe Kubernetes object names from
// FrontendIntegration names and content hashes.
package naming

import (
	"strconv"
	"strings"
	"time"
)

const maxNameLength = 63

const base36Alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// BoundedName sanitizes s into a DNS-1123 label fragment: lowercase
// alphanumerics and '-' only, no leading/trailing '-', collapsed runs of
// '-', and bounded to maxLen characters. If sanitizing empties the string
// out entirely, "fi" is substituted so callers always get a non-empty,
// valid name.
func BoundedName(s string, maxLen int) string {
	lower := strings.ToLower(s)

	var b strings.Builder
	b.Grow(len(lower))
	lastWasDash := false
	for _, r := range lower {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastWasDash = false
		default:
			if !lastWasDash {
				b.WriteByte('-')
				lastWasDash = true
			}
		}
	}

	trimmed := strings.Trim(b.String(), "-")
	if trimmed == "" {
		trimmed = "fi"
	}

	if len(trimmed) <= maxLen {
		return trimmed
	}

	truncated := strings.TrimRight(trimmed[:maxLen], "-")
	if truncated == "" {
		// Pathological case: the first maxLen bytes are all dashes once
		// re-trimmed (can't happen given the collapse above, but stay safe).
		return trimmed[:maxLen]
	}
	return truncated
}

// DefaultBundleName derives the JSBundle/ConfigMap-facing name for a
// FrontendIntegration when the spec doesn't set spec.bundleName explicitly.
func DefaultBundleName(fiName string) string {
	return BoundedName("fi-"+fiName, maxNameLength)
}

// JobName derives the build Job's name from the FI name, spec hash, and a
// cosmetic time-based nonce so repeated rebuilds of the same FI at the same
// hash (e.g. after a manual delete) don't collide on name while still being
// identifiable by the caller. Correctness never depends on this name being
// unique — callers identify "the" Job for an (fiName, hash) pair via a label
// selector, not by name.
func JobName(fiName, hash string) string {
	return BoundedName("fi-"+fiName+"-build-"+hashFragment(hash)+"-"+TimeNonce(), maxNameLength)
}

// SecretName derives the manifest Secret's name from the FI name, spec hash,
// and a cosmetic time-based nonce, independently of the owning Job's name.
func SecretName(fiName, hash string) string {
	return BoundedName("fi-"+fiName+"-mf-"+hashFragment(hash)+"-"+TimeNonce(), maxNameLength)
}

func hashFragment(hash string) string {
	const prefix = "sha256:"
	h := hash
	if len(h) > len(prefix) && h[:len(prefix)] == prefix {
		h = h[len(prefix):]
	}
	if len(h) > 8 {
		h = h[:8]
	}
	return h
}

// TimeNonce returns a 4-character, zero-padded base36 encoding of
// nanoseconds-since-epoch modulo 36^4. It exists purely for cosmetic
// uniqueness in generated names; nothing relies on it to avoid collisions,
// since names are disambiguated by label selector, not by name alone.
func TimeNonce() string {
	const modulus = 36 * 36 * 36 * 36
	n := time.Now().UnixNano() % modulus
	if n < 0 {
		n += modulus
	}
	return base36Pad4(n)
}

func base36Pad4(n int64) string {
	s := strconv.FormatInt(n, 36)
	for len(s) < 4 {
		s = "0" + s
	}
	return s
}
