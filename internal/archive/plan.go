package archive

import (
	"sort"

	"github.com/JakeFAU/llmstxt-archiver/internal/corpus"
)

// PlanItem is one deduplicated (site, source URL) pair to resolve and fetch.
type PlanItem struct {
	SiteID    string
	SourceURL string
}

// BuildPlan flattens the question corpus into the global fetch plan:
// sites in ascending site_id order, then original question and URL order
// within each site, first occurrence wins.
func BuildPlan(questions map[string][]corpus.QuestionInfo) []PlanItem {
	siteIDs := make([]string, 0, len(questions))
	for siteID := range questions {
		siteIDs = append(siteIDs, siteID)
	}
	sort.Strings(siteIDs)

	var plan []PlanItem
	seen := make(map[PlanItem]struct{})
	for _, siteID := range siteIDs {
		for _, q := range questions[siteID] {
			for _, url := range q.SourceURLs {
				item := PlanItem{SiteID: siteID, SourceURL: url}
				if _, ok := seen[item]; ok {
					continue
				}
				seen[item] = struct{}{}
				plan = append(plan, item)
			}
		}
	}
	return plan
}
