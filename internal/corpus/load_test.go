package corpus

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const siteListCSV = `site_id,domain,llms_txt_url,html_docs_url
S001,docs.acme.com,https://docs.acme.com/llms.txt,https://docs.acme.com
S002,docs.globex.io,https://docs.globex.io/llms.txt,https://docs.globex.io
`

const questionsJSON = `[
  {
    "site_id": "S001",
    "questions": [
      {"question_id": "Q001", "source_urls": ["https://docs.acme.com/intro", "https://docs.acme.com/setup"]},
      {"question_id": "Q002", "source_urls": ["https://docs.acme.com/intro"]}
    ]
  },
  {
    "site_id": "S002",
    "questions": [
      {"question_id": "Q010", "source_urls": ["https://docs.globex.io/api.md"]}
    ]
  }
]`

func writeCorpus(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	sitesPath := filepath.Join(dir, "site-list.csv")
	questionsPath := filepath.Join(dir, "questions.json")
	require.NoError(t, os.WriteFile(sitesPath, []byte(siteListCSV), 0o600))
	require.NoError(t, os.WriteFile(questionsPath, []byte(questionsJSON), 0o600))
	return sitesPath, questionsPath
}

func TestLoadSites(t *testing.T) {
	sitesPath, _ := writeCorpus(t)

	sites, err := LoadSites(sitesPath, "")
	require.NoError(t, err)
	require.Len(t, sites, 2)
	assert.Equal(t, "docs.acme.com", sites["S001"].Domain)
	assert.Equal(t, "https://docs.globex.io/llms.txt", sites["S002"].LlmsTxtURL)
}

func TestLoadSitesWithFilter(t *testing.T) {
	sitesPath, _ := writeCorpus(t)

	sites, err := LoadSites(sitesPath, "S002")
	require.NoError(t, err)
	require.Len(t, sites, 1)
	assert.Contains(t, sites, "S002")
}

func TestLoadSitesMissingColumn(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.csv")
	require.NoError(t, os.WriteFile(path, []byte("site_id,domain\nS001,x\n"), 0o600))

	_, err := LoadSites(path, "")
	assert.ErrorContains(t, err, "llms_txt_url")
}

func TestLoadQuestions(t *testing.T) {
	sitesPath, questionsPath := writeCorpus(t)
	sites, err := LoadSites(sitesPath, "")
	require.NoError(t, err)

	questions, err := LoadQuestions(questionsPath, sites)
	require.NoError(t, err)
	require.Len(t, questions, 2)
	require.Len(t, questions["S001"], 2)
	assert.Equal(t, "Q001", questions["S001"][0].QuestionID)
	assert.Equal(t, "S001", questions["S001"][0].SiteID)
	assert.Equal(t,
		[]string{"https://docs.acme.com/intro", "https://docs.acme.com/setup"},
		questions["S001"][0].SourceURLs)
}

func TestLoadQuestionsSkipsUnloadedSites(t *testing.T) {
	sitesPath, questionsPath := writeCorpus(t)
	sites, err := LoadSites(sitesPath, "S001")
	require.NoError(t, err)

	questions, err := LoadQuestions(questionsPath, sites)
	require.NoError(t, err)
	assert.Len(t, questions, 1)
	assert.NotContains(t, questions, "S002")
}
