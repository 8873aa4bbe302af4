package fingerprint

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestText(t *testing.T) {
	fp := Text("hello")

	assert.Equal(t, "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824", fp.SHA256)
	assert.Equal(t, int64(5), fp.SizeBytes)
	assert.Equal(t, 1, fp.WordCount)
}

func TestTextEmpty(t *testing.T) {
	fp := Text("")

	assert.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", fp.SHA256)
	assert.Equal(t, int64(0), fp.SizeBytes)
	assert.Equal(t, 0, fp.WordCount)
}

func TestMatches(t *testing.T) {
	fp := Text("hello")

	assert.True(t, fp.Matches("2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824"))
	assert.True(t, fp.Matches("2CF24DBA5FB0A30E26E83B2AC5B9E29E1B161E5C1FA7425E73043362938B9824"))
	assert.False(t, fp.Matches("deadbeef"))
}

func TestFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.txt")
	require.NoError(t, os.WriteFile(path, []byte("two words"), 0o644))

	fp, err := File(path)
	require.NoError(t, err)
	assert.Equal(t, Text("two words"), fp)

	_, err = File(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}

func TestLoadSeal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.txt.griot")
	record := `{
		"protocol": "Griot Protocol v1.0",
		"type": "blockchain_anchor",
		"filename": "doc.txt",
		"sha256": "abc123",
		"size_bytes": 42,
		"sealed_at": "2026-01-02T03:04:05+00:00",
		"anchors": [
			{"chain": "ethereum", "tx_hash": "0xdeadbeef", "status": "submitted"}
		]
	}`
	require.NoError(t, os.WriteFile(path, []byte(record), 0o644))

	seal, err := LoadSeal(path)
	require.NoError(t, err)
	assert.Equal(t, "Griot Protocol v1.0", seal.Protocol)
	assert.Equal(t, "2026-01-02T03:04:05+00:00", seal.SealedAt)
	require.Len(t, seal.Anchors, 1)
	assert.Equal(t, "ethereum", seal.Anchors[0].Chain)
}

func TestLoadSealInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.griot")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := LoadSeal(path)
	assert.Error(t, err)
}

func TestSealFor(t *testing.T) {
	dir := t.TempDir()
	docPath := filepath.Join(dir, "doc.txt")
	require.NoError(t, os.WriteFile(docPath, []byte("content"), 0o644))

	// No seal record next to the document: not an error.
	seal, err := SealFor(docPath)
	require.NoError(t, err)
	assert.Nil(t, seal)

	require.NoError(t, os.WriteFile(docPath+SealExtension, []byte(`{"sealed_at":"2026-01-01T00:00:00+00:00"}`), 0o644))
	seal, err = SealFor(docPath)
	require.NoError(t, err)
	require.NotNil(t, seal)
	assert.Equal(t, "2026-01-01T00:00:00+00:00", seal.SealedAt)
}
