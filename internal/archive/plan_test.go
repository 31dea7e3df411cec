package archive

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/JakeFAU/llmstxt-archiver/internal/corpus"
)

func TestBuildPlanOrderAndDedup(t *testing.T) {
	questions := map[string][]corpus.QuestionInfo{
		"S002": {
			{QuestionID: "Q020", SiteID: "S002", SourceURLs: []string{"https://b.com/x"}},
		},
		"S001": {
			{QuestionID: "Q001", SiteID: "S001", SourceURLs: []string{
				"https://a.com/one", "https://a.com/two",
			}},
			{QuestionID: "Q002", SiteID: "S001", SourceURLs: []string{
				"https://a.com/one", // repeated across questions
				"https://a.com/three",
			}},
		},
	}

	plan := BuildPlan(questions)

	assert.Equal(t, []PlanItem{
		{SiteID: "S001", SourceURL: "https://a.com/one"},
		{SiteID: "S001", SourceURL: "https://a.com/two"},
		{SiteID: "S001", SourceURL: "https://a.com/three"},
		{SiteID: "S002", SourceURL: "https://b.com/x"},
	}, plan)
}

func TestBuildPlanSameURLDifferentSites(t *testing.T) {
	questions := map[string][]corpus.QuestionInfo{
		"S001": {{QuestionID: "Q1", SiteID: "S001", SourceURLs: []string{"https://shared.com/doc"}}},
		"S002": {{QuestionID: "Q2", SiteID: "S002", SourceURLs: []string{"https://shared.com/doc"}}},
	}

	plan := BuildPlan(questions)
	assert.Len(t, plan, 2, "dedup key is the (site, url) pair, not the URL alone")
}

func TestBuildPlanEmpty(t *testing.T) {
	assert.Empty(t, BuildPlan(nil))
}
