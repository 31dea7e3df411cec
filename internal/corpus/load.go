package corpus

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
)

// LoadSites reads site-list.csv into a map keyed by site_id. When filter is
// non-empty only that site is retained.
func LoadSites(path string, filter string) (map[string]SiteInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open site list: %w", err)
	}
	defer f.Close() //nolint:errcheck // read-only file

	reader := csv.NewReader(f)
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse site list: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("site list %s is empty", path)
	}

	col := map[string]int{}
	for i, name := range rows[0] {
		col[name] = i
	}
	for _, required := range []string{"site_id", "domain", "llms_txt_url", "html_docs_url"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("site list missing column %q", required)
		}
	}

	sites := make(map[string]SiteInfo)
	for _, row := range rows[1:] {
		site := SiteInfo{
			SiteID:      row[col["site_id"]],
			Domain:      row[col["domain"]],
			LlmsTxtURL:  row[col["llms_txt_url"]],
			HTMLDocsURL: row[col["html_docs_url"]],
		}
		if filter != "" && site.SiteID != filter {
			continue
		}
		sites[site.SiteID] = site
	}
	return sites, nil
}

// LoadQuestions reads questions.json, keeping only questions for loaded
// sites. Question and URL order within a site is preserved.
func LoadQuestions(path string, sites map[string]SiteInfo) (map[string][]QuestionInfo, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open questions: %w", err)
	}

	var blocks []siteBlock
	if err := json.Unmarshal(raw, &blocks); err != nil {
		return nil, fmt.Errorf("parse questions: %w", err)
	}

	questions := make(map[string][]QuestionInfo)
	for _, block := range blocks {
		if _, ok := sites[block.SiteID]; !ok {
			continue
		}
		qs := make([]QuestionInfo, 0, len(block.Questions))
		for _, q := range block.Questions {
			q.SiteID = block.SiteID
			qs = append(qs, q)
		}
		questions[block.SiteID] = qs
	}
	return questions, nil
}
