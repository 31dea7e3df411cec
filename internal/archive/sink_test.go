package archive

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JakeFAU/llmstxt-archiver/internal/hash/urlhash"
)

func TestSinkBootstrapCreatesLayout(t *testing.T) {
	root := filepath.Join(t.TempDir(), "archive")
	sink := NewSink(root)
	require.NoError(t, sink.Bootstrap([]string{"S001", "S002"}))

	for _, dir := range []string{
		"html/S001", "html/S002", "markdown/S001", "markdown/S002",
	} {
		info, err := os.Stat(filepath.Join(root, dir))
		require.NoError(t, err, dir)
		assert.True(t, info.IsDir())
	}
}

func TestSinkSaveHashNamedPaths(t *testing.T) {
	root := t.TempDir()
	sink := NewSink(root)
	require.NoError(t, sink.Bootstrap([]string{"S001"}))

	url := "https://x.com/guides/intro"
	rel, err := sink.Save("S001", ConditionHTML, url, []byte("<html>content</html>"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("S001", urlhash.Hash(url)+".html"), rel)

	body, err := os.ReadFile(filepath.Join(root, "html", rel))
	require.NoError(t, err)
	assert.Equal(t, "<html>content</html>", string(body))

	mdURL := "https://x.com/guides/intro.md"
	rel, err = sink.Save("S001", ConditionMarkdown, mdURL, []byte("# Intro"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("S001", urlhash.Hash(mdURL)+".md"), rel)

	body, err = os.ReadFile(filepath.Join(root, "markdown", rel))
	require.NoError(t, err)
	assert.Equal(t, "# Intro", string(body))
}

func TestSinkSaveIsStableAcrossRuns(t *testing.T) {
	sink := NewSink(t.TempDir())
	relA, err := sink.Save("S001", ConditionHTML, "https://x.com/a", []byte("one"))
	require.NoError(t, err)
	relB, err := sink.Save("S001", ConditionHTML, "https://x.com/a", []byte("two"))
	require.NoError(t, err)
	assert.Equal(t, relA, relB)
}
