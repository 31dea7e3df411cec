package archive

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JakeFAU/llmstxt-archiver/internal/fetcher"
)

func testProtocol() ProtocolEcho {
	return ProtocolEcho{UserAgent: "test-agent/1.0", TimeoutSeconds: 30, RateLimitMs: 1000}
}

func TestManifestWriteAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.json")
	m := NewManifest(path, testProtocol())

	success := newEntry("S001", "https://x.com/a.md", ConditionMarkdown, "2026-01-01T00:00:00Z")
	success.FetchStatus = fetcher.StatusSuccess
	success.HTTPStatus = 200
	success.MarkdownPath = strPtr("S001/abc.md")
	m.Append(success)

	failure := newEntry("S001", "https://x.com/b", ConditionHTML, "2026-01-01T00:00:01Z")
	failure.FetchStatus = fetcher.StatusTimeout
	failure.FailureReason = strPtr("Request timed out after 30s")
	m.Append(failure)

	require.NoError(t, m.Write("2026-01-01T00:00:02Z"))

	doc, err := LoadDocument(path)
	require.NoError(t, err)
	assert.Equal(t, "2026-01-01T00:00:02Z", doc.FetchedAt)
	assert.Equal(t, testProtocol(), doc.ArchiveProtocol)
	require.Len(t, doc.Entries, 2)
	assert.Equal(t, success, doc.Entries[0])
	assert.Equal(t, failure, doc.Entries[1])

	// No stray temp file after a successful write.
	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestManifestWriteEmptyEntriesArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.json")
	require.NoError(t, NewManifest(path, testProtocol()).Write("2026-01-01T00:00:00Z"))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var generic map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &generic))
	assert.JSONEq(t, "[]", string(generic["entries"]))
}

func TestLoadResumeIndexKeepsOnlySuccess(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.json")
	m := NewManifest(path, testProtocol())

	ok := newEntry("S001", "https://x.com/a", ConditionHTML, "2026-01-01T00:00:00Z")
	ok.FetchStatus = fetcher.StatusSuccess
	m.Append(ok)

	bad := newEntry("S001", "https://x.com/a", ConditionMarkdown, "2026-01-01T00:00:00Z")
	bad.FetchStatus = fetcher.StatusHTTPError
	m.Append(bad)

	require.NoError(t, m.Write("2026-01-01T00:00:00Z"))

	index, err := LoadResumeIndex(path)
	require.NoError(t, err)
	require.Len(t, index, 1)
	assert.Contains(t, index, ResumeKey("https://x.com/a", ConditionHTML))
	assert.NotContains(t, index, ResumeKey("https://x.com/a", ConditionMarkdown))
}

func TestLoadResumeIndexMissingFile(t *testing.T) {
	index, err := LoadResumeIndex(filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, err)
	assert.Empty(t, index)
}

func TestLoadResumeIndexCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := LoadResumeIndex(path)
	assert.Error(t, err)
}
