package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JakeFAU/llmstxt-archiver/internal/corpus"
	"github.com/JakeFAU/llmstxt-archiver/internal/llmstxt"
)

var testSite = corpus.SiteInfo{
	SiteID:      "S001",
	Domain:      "x.com",
	LlmsTxtURL:  "https://x.com/llms.txt",
	HTMLDocsURL: "https://x.com",
}

func indexWith(urls ...string) *llmstxt.Doc {
	entries := make([]llmstxt.Entry, 0, len(urls))
	for _, u := range urls {
		entries = append(entries, llmstxt.Entry{URL: u, Title: u})
	}
	return &llmstxt.Doc{Sections: []llmstxt.Section{{Name: "Docs", Entries: entries}}}
}

func TestDeriveHTMLURL(t *testing.T) {
	assert.Equal(t, "https://x.com/a/b", DeriveHTMLURL("https://x.com/a/b.md"))
	// Identity fallback for non-markdown URLs.
	assert.Equal(t, "https://x.com/a/b", DeriveHTMLURL("https://x.com/a/b"))
	assert.Equal(t, "https://x.com/a/b.html", DeriveHTMLURL("https://x.com/a/b.html"))
}

func TestDeriveMarkdownURLNilIndex(t *testing.T) {
	_, ok := DeriveMarkdownURL("https://x.com/a", nil, testSite)
	assert.False(t, ok)
}

func TestDeriveMarkdownURLDirectMatch(t *testing.T) {
	doc := indexWith("https://x.com/guides/Intro/")

	got, ok := DeriveMarkdownURL("https://x.com/guides/intro", doc, testSite)
	require.True(t, ok)
	assert.Equal(t, "https://x.com/guides/Intro/", got)
}

func TestDeriveMarkdownURLAppendExtension(t *testing.T) {
	doc := indexWith("https://x.com/guides/intro.md")

	got, ok := DeriveMarkdownURL("https://x.com/guides/intro", doc, testSite)
	require.True(t, ok)
	assert.Equal(t, "https://x.com/guides/intro.md", got)
}

func TestDeriveMarkdownURLFragmentMatch(t *testing.T) {
	doc := indexWith("https://cdn.x.com/md/guides/intro.md")

	got, ok := DeriveMarkdownURL("https://x.com/guides/intro", doc, testSite)
	require.True(t, ok)
	assert.Equal(t, "https://cdn.x.com/md/guides/intro.md", got)
}

// The first match at the smallest suffix depth wins, even when a deeper
// fragment would pick a different (more specific) entry. Fixtures depend on
// this tie-break; do not change it without corpus evidence.
func TestDeriveMarkdownURLFragmentDepthOrder(t *testing.T) {
	doc := indexWith(
		"https://x.com/other/intro.md",
		"https://x.com/md/guides/intro.md",
	)

	got, ok := DeriveMarkdownURL("https://x.com/guides/intro", doc, testSite)
	require.True(t, ok)
	assert.Equal(t, "https://x.com/other/intro.md", got)
}

func TestDeriveMarkdownURLIndexFallback(t *testing.T) {
	// A bare site root has no path segments to fragment-match, so only the
	// /index.md fallback can resolve it.
	doc := indexWith("https://x.com/index.md")

	got, ok := DeriveMarkdownURL("https://x.com/", doc, testSite)
	require.True(t, ok)
	assert.Equal(t, "https://x.com/index.md", got)
}

func TestDeriveMarkdownURLNoMatch(t *testing.T) {
	doc := indexWith("https://x.com/unrelated.md")
	_, ok := DeriveMarkdownURL("https://x.com/guides/intro", doc, testSite)
	assert.False(t, ok)
}

func TestDetermineFetchURLsMarkdownSource(t *testing.T) {
	pair := DetermineFetchURLs("https://x.com/a/b.md", indexWith(), testSite)
	assert.Equal(t, Pair{HTML: "https://x.com/a/b", Markdown: "https://x.com/a/b.md"}, pair)
}

func TestDetermineFetchURLsLinkIndexSource(t *testing.T) {
	pair := DetermineFetchURLs("https://x.com/llms.txt", indexWith(), testSite)
	assert.Equal(t, Pair{HTML: "https://x.com/llms.txt", Markdown: "https://x.com/llms.txt"}, pair)
}

func TestDetermineFetchURLsHTMLSource(t *testing.T) {
	doc := indexWith("https://x.com/guides/intro.md")

	pair := DetermineFetchURLs("https://x.com/guides/intro", doc, testSite)
	assert.Equal(t, "https://x.com/guides/intro", pair.HTML)
	assert.Equal(t, "https://x.com/guides/intro.md", pair.Markdown)
}

func TestDetermineFetchURLsUnresolvedMarkdown(t *testing.T) {
	pair := DetermineFetchURLs("https://x.com/guides/intro", nil, testSite)
	assert.Equal(t, "https://x.com/guides/intro", pair.HTML)
	assert.Empty(t, pair.Markdown)
}
