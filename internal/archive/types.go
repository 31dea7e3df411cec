// Package archive implements the archival orchestrator: fetch planning,
// manifest persistence, content storage, and coverage validation.
package archive

import (
	"github.com/JakeFAU/llmstxt-archiver/internal/fetcher"
	"github.com/JakeFAU/llmstxt-archiver/internal/hash/urlhash"
)

// Condition identifies which rendering of a document an entry covers:
// "A" is the HTML rendering, "B" the Markdown rendering.
type Condition string

const (
	ConditionHTML     Condition = "A"
	ConditionMarkdown Condition = "B"
)

// Entry is one manifest record: a single fetch attempt for one
// (URL, condition) pair. Entries are created once and never mutated; on
// resume a prior SUCCESS entry is copied forward verbatim.
type Entry struct {
	SiteID             string         `json:"site_id"`
	URL                string         `json:"url"`
	URLHash            string         `json:"url_hash"`
	Condition          Condition      `json:"condition"`
	FetchTimestamp     string         `json:"fetch_timestamp"`
	HTTPStatus         int            `json:"http_status"`
	ContentType        string         `json:"content_type"`
	ContentLengthBytes int            `json:"content_length_bytes"`
	LastModified       *string        `json:"last_modified"`
	ETag               *string        `json:"etag"`
	FetchStatus        fetcher.Status `json:"fetch_status"`
	FailureReason      *string        `json:"failure_reason"`
	HTMLPath           *string        `json:"html_path"`
	MarkdownPath       *string        `json:"markdown_path"`
	LlmstxtSection     *string        `json:"llmstxt_section"`
}

// newEntry seeds a record for a fetch attempt.
func newEntry(siteID, url string, condition Condition, timestamp string) Entry {
	return Entry{
		SiteID:         siteID,
		URL:            url,
		URLHash:        urlhash.Hash(url),
		Condition:      condition,
		FetchTimestamp: timestamp,
		FetchStatus:    fetcher.StatusPending,
	}
}

func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
