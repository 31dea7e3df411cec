package archive

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/JakeFAU/llmstxt-archiver/internal/hash/urlhash"
)

// Sink writes fetched content into the archive tree:
// {root}/html/{site_id}/{url_hash}.html and
// {root}/markdown/{site_id}/{url_hash}.md.
type Sink struct {
	root string
}

// NewSink returns a sink rooted at dir.
func NewSink(root string) *Sink {
	return &Sink{root: root}
}

// Bootstrap creates the per-site, per-condition directory layout.
func (s *Sink) Bootstrap(siteIDs []string) error {
	for _, sub := range []string{"html", "markdown"} {
		if err := os.MkdirAll(filepath.Join(s.root, sub), 0o750); err != nil {
			return fmt.Errorf("create archive dir %s: %w", sub, err)
		}
		for _, siteID := range siteIDs {
			if err := os.MkdirAll(filepath.Join(s.root, sub, siteID), 0o750); err != nil {
				return fmt.Errorf("create site dir %s/%s: %w", sub, siteID, err)
			}
		}
	}
	return nil
}

// Save stores the payload under the hash-named path for the given condition
// and returns the archive-relative path recorded in the manifest.
func (s *Sink) Save(siteID string, condition Condition, url string, body []byte) (string, error) {
	sub, ext := "html", ".html"
	if condition == ConditionMarkdown {
		sub, ext = "markdown", ".md"
	}
	name := urlhash.Hash(url) + ext
	rel := filepath.Join(siteID, name)
	target := filepath.Join(s.root, sub, rel)

	if err := os.MkdirAll(filepath.Dir(target), 0o750); err != nil {
		return "", fmt.Errorf("create content dir for %s: %w", target, err)
	}
	if err := os.WriteFile(target, body, 0o600); err != nil {
		return "", fmt.Errorf("write content %s: %w", target, err)
	}
	return rel, nil
}

// Root is the archive root directory.
func (s *Sink) Root() string {
	return s.root
}
