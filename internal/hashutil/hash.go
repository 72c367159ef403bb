// Package hashutil canonicalizes and hashes JSON-shaped values so that two
// semantically equal values (different key order, different whitespace)
// always produce the same content hash.
package hashutil

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
)

// Sha256Hex returns the lowercase hex-encoded SHA-256 digest of b.
func Sha256Hex(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

// CanonicalizeJSON walks v (as produced by encoding/json, i.e. map[string]interface{},
// []interface{}, string, float64/json.Number, bool, nil) and returns an
// equivalent value whose object keys are in a stable, sorted form. Arrays
// keep their original order since order is part of their meaning.
func CanonicalizeJSON(v interface{}) interface{} {
	switch val := v.(type) {
	case map[string]interface{}:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		out := make(orderedMap, 0, len(keys))
		for _, k := range keys {
			out = append(out, orderedPair{Key: k, Value: CanonicalizeJSON(val[k])})
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(val))
		for i, item := range val {
			out[i] = CanonicalizeJSON(item)
		}
		return out
	default:
		return val
	}
}

// orderedPair and orderedMap let us marshal a map with keys in a fixed,
// sorted order — encoding/json always re-sorts map[string]interface{} keys
// on its own, which happens to already be lexicographic, but we make the
// ordering explicit here rather than depending on that implementation detail.
type orderedPair struct {
	Key   string
	Value interface{}
}

type orderedMap []orderedPair

func (m orderedMap) MarshalJSON() ([]byte, error) {
	buf := []byte{'{'}
	for i, p := range m {
		if i > 0 {
			buf = append(buf, ',')
		}
		keyBytes, err := json.Marshal(p.Key)
		if err != nil {
			return nil, err
		}
		buf = append(buf, keyBytes...)
		buf = append(buf, ':')
		valBytes, err := json.Marshal(p.Value)
		if err != nil {
			return nil, err
		}
		buf = append(buf, valBytes...)
	}
	buf = append(buf, '}')
	return buf, nil
}

// CanonicalJSONString renders v (any JSON-marshalable value, or the output of
// CanonicalizeJSON) to its canonical JSON string form. Non-canonicalized
// input is first round-tripped through encoding/json to normalize it into
// the plain interface{} shapes CanonicalizeJSON understands.
func CanonicalJSONString(v interface{}) (string, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("marshal value for canonicalization: %w", err)
	}
	var generic interface{}
	if err := json.Unmarshal(raw, &generic); err != nil {
		return "", fmt.Errorf("decode value for canonicalization: %w", err)
	}
	canon := CanonicalizeJSON(generic)
	out, err := json.Marshal(canon)
	if err != nil {
		return "", fmt.Errorf("marshal canonical value: %w", err)
	}
	return string(out), nil
}

// ManifestHashFromContent hashes already-canonicalized manifest content and
// returns it in "sha256:<hex>" form.
func ManifestHashFromContent(content string) string {
	return "sha256:" + Sha256Hex([]byte(content))
}

// ManifestContentAndHash canonicalizes v and returns both the canonical JSON
// string and its "sha256:<hex>" hash in one call, since nearly every caller
// needs both.
func ManifestContentAndHash(v interface{}) (content string, hash string, err error) {
	content, err = CanonicalJSONString(v)
	if err != nil {
		return "", "", err
	}
	return content, ManifestHashFromContent(content), nil
}

// SerializableHash canonicalizes v and returns only its hash, for callers
// that only need the digest (e.g. comparing against an observed status
// field) and want to discard the intermediate string.
func SerializableHash(v interface{}) (string, error) {
	_, hash, err := ManifestContentAndHash(v)
	return hash, err
}

// HashShort strips the "sha256:" prefix from hash (if present) and returns
// the first n hex characters, falling back to the whole remainder if it is
// shorter than n.
func HashShort(hash string, n int) string {
	trimmed := StripPrefix(hash)
	if len(trimmed) <= n {
		return trimmed
	}
	return trimmed[:n]
}

// StripPrefix removes the "sha256:" prefix from hash, if present. Labels and
// Secret names must be DNS-1123-safe, so this is used everywhere a hash is
// embedded in Kubernetes object metadata; the full prefixed hash is kept in
// annotations instead, where it is not name/DNS constrained.
func StripPrefix(hash string) string {
	const prefix = "sha256:"
	if len(hash) >= len(prefix) && hash[:len(prefix)] == prefix {
		return hash[len(prefix):]
	}
	return hash
}
