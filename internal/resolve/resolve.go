// Package resolve derives the companion-URL pair (HTML rendering, Markdown
// rendering) for a source URL, using the site's parsed link index.
package resolve

import (
	"net/url"
	"strings"

	"github.com/JakeFAU/llmstxt-archiver/internal/corpus"
	"github.com/JakeFAU/llmstxt-archiver/internal/llmstxt"
)

// MarkdownExt is the extension that marks a Markdown rendering URL.
const MarkdownExt = ".md"

// LinkIndexSuffix identifies a source URL that is the link index itself.
const LinkIndexSuffix = "/llms.txt"

// Pair is the fetch target for each condition. An empty string means the
// condition could not be resolved; the caller records a plan-level failure
// for that half without a network attempt.
type Pair struct {
	HTML     string
	Markdown string
}

// DeriveHTMLURL strips a trailing .md from a Markdown URL. Most doc sites
// serve the rendered page at the same path without the extension. URLs that
// do not end in .md are returned unchanged.
func DeriveHTMLURL(mdURL string) string {
	if strings.HasSuffix(mdURL, MarkdownExt) {
		return strings.TrimSuffix(mdURL, MarkdownExt)
	}
	return mdURL
}

// DeriveMarkdownURL finds the Markdown rendering URL for an HTML page from
// the site's link index. Strategies are tried in fixed priority order:
//
//  1. the HTML URL itself is listed in the index
//  2. the HTML URL with .md appended is listed
//  3. a trailing path fragment of the HTML URL (1 to 3 segments, shallowest
//     first) appears as a substring of an index entry
//  4. the HTML URL with /index.md appended is listed
//
// Returns false when the index is absent or nothing matches. The shallowest
// fragment match wins, not the most specific; existing corpus fixtures
// depend on that tie-break.
func DeriveMarkdownURL(htmlURL string, doc *llmstxt.Doc, _ corpus.SiteInfo) (string, bool) {
	if doc == nil {
		return "", false
	}

	normalizedHTML := normalize(htmlURL)
	for _, entryURL := range doc.AllURLs() {
		if normalize(entryURL) == normalizedHTML {
			return entryURL, true
		}
	}

	mdCandidate := normalize(strings.TrimRight(htmlURL, "/") + MarkdownExt)
	for _, entryURL := range doc.AllURLs() {
		if normalize(entryURL) == mdCandidate {
			return entryURL, true
		}
	}

	if parsed, err := url.Parse(htmlURL); err == nil {
		path := strings.TrimRight(parsed.Path, "/")
		if path != "" {
			segments := strings.Split(path, "/")
			maxDepth := 3
			if len(segments) < maxDepth {
				maxDepth = len(segments)
			}
			for depth := 1; depth <= maxDepth; depth++ {
				fragment := strings.Join(segments[len(segments)-depth:], "/")
				if match, ok := doc.FindURLByPath(fragment); ok {
					return match, true
				}
			}
		}
	}

	indexCandidate := normalize(strings.TrimRight(htmlURL, "/") + "/index" + MarkdownExt)
	for _, entryURL := range doc.AllURLs() {
		if normalize(entryURL) == indexCandidate {
			return entryURL, true
		}
	}

	return "", false
}

// DetermineFetchURLs maps a source URL onto the pair of URLs to fetch for
// the two conditions, dispatching on the source URL's suffix.
func DetermineFetchURLs(sourceURL string, doc *llmstxt.Doc, site corpus.SiteInfo) Pair {
	// The link index itself stands in for both renderings.
	if strings.HasSuffix(sourceURL, LinkIndexSuffix) {
		return Pair{HTML: sourceURL, Markdown: sourceURL}
	}

	if strings.HasSuffix(sourceURL, MarkdownExt) {
		return Pair{HTML: DeriveHTMLURL(sourceURL), Markdown: sourceURL}
	}

	mdURL, ok := DeriveMarkdownURL(sourceURL, doc, site)
	if !ok {
		return Pair{HTML: sourceURL}
	}
	return Pair{HTML: sourceURL, Markdown: mdURL}
}

func normalize(u string) string {
	return strings.ToLower(strings.TrimRight(u, "/"))
}
