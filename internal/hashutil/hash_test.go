package hashutil

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalJSONStringStableAcrossKeyOrder(t *testing.T) {
	a := map[string]interface{}{
		"b": 1,
		"a": map[string]interface{}{"z": true, "y": "hi"},
		"c": []interface{}{3, 2, 1},
	}
	b := map[string]interface{}{
		"c": []interface{}{3, 2, 1},
		"a": map[string]interface{}{"y": "hi", "z": true},
		"b": 1,
	}

	sa, err := CanonicalJSONString(a)
	require.NoError(t, err)
	sb, err := CanonicalJSONString(b)
	require.NoError(t, err)

	assert.Equal(t, sa, sb)
	assert.JSONEq(t, `{"a":{"y":"hi","z":true},"b":1,"c":[3,2,1]}`, sa)
}

func TestCanonicalJSONStringPreservesArrayOrder(t *testing.T) {
	s, err := CanonicalJSONString([]interface{}{"z", "a", "m"})
	require.NoError(t, err)
	assert.Equal(t, `["z","a","m"]`, s)
}

func TestCanonicalJSONStringIsIdempotent(t *testing.T) {
	v := map[string]interface{}{"z": 1, "a": 2}
	once, err := CanonicalJSONString(v)
	require.NoError(t, err)

	var decoded interface{}
	require.NoError(t, json.Unmarshal([]byte(once), &decoded))
	twice, err := CanonicalJSONString(decoded)
	require.NoError(t, err)

	assert.Equal(t, once, twice)
}

func TestManifestHashFromContentHasShaPrefix(t *testing.T) {
	h := ManifestHashFromContent(`{"a":1}`)
	assert.Regexp(t, `^sha256:[0-9a-f]{64}$`, h)
}

func TestManifestContentAndHashMatchesManualHash(t *testing.T) {
	content, hash, err := ManifestContentAndHash(map[string]interface{}{"b": 1, "a": 2})
	require.NoError(t, err)
	assert.Equal(t, ManifestHashFromContent(content), hash)
}

func TestHashShortStripsPrefixAndTruncates(t *testing.T) {
	full := "sha256:" + "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcd"
	assert.Equal(t, "01234567", HashShort(full, 8))
	assert.Equal(t, "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcd", StripPrefix(full))
}
