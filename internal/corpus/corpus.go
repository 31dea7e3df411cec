// Package corpus loads the benchmark corpus inputs: the site list and the
// question set. Both are immutable after load.
package corpus

// SiteInfo is one row of site-list.csv.
type SiteInfo struct {
	SiteID      string
	Domain      string
	LlmsTxtURL  string
	HTMLDocsURL string
}

// QuestionInfo is a question and the source URLs it cites.
type QuestionInfo struct {
	QuestionID string   `json:"question_id"`
	SiteID     string   `json:"site_id"`
	SourceURLs []string `json:"source_urls"`
}

// siteBlock is the per-site grouping used by questions.json.
type siteBlock struct {
	SiteID    string         `json:"site_id"`
	Questions []QuestionInfo `json:"questions"`
}
