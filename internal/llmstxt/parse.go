package llmstxt

import (
	"regexp"
	"strings"
)

var (
	h1Re    = regexp.MustCompile(`^#\s+(.+)$`)
	h2Re    = regexp.MustCompile(`^##\s+(.+)$`)
	bqRe    = regexp.MustCompile(`^>\s*(.+)$`)
	entryRe = regexp.MustCompile(`^-\s*\[([^\]]+)\]\(([^)]+)\)(?::\s*(.*))?$`)
)

// Parse builds a Doc from raw llms.txt content. It is total: malformed input
// yields a partial or empty document, never an error.
//
// Single pass, line oriented: the first H1 sets the title, the first
// blockquote after the title (and before any section) sets the summary, each
// H2 starts a section, and dash-prefixed links inside an open section become
// entries. Entries before the first H2 are dropped.
func Parse(content string) *Doc {
	doc := &Doc{}

	foundTitle := false
	foundSummary := false
	sectionOpen := false
	var sectionName string
	var entries []Entry

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimRight(line, "\r")

		if !foundTitle {
			if m := h1Re.FindStringSubmatch(line); m != nil {
				doc.Title = strings.TrimSpace(m[1])
				foundTitle = true
				continue
			}
		}

		if foundTitle && !foundSummary && !sectionOpen {
			if m := bqRe.FindStringSubmatch(line); m != nil {
				doc.Summary = strings.TrimSpace(m[1])
				foundSummary = true
				continue
			}
		}

		if m := h2Re.FindStringSubmatch(line); m != nil {
			if sectionOpen {
				doc.Sections = append(doc.Sections, Section{Name: sectionName, Entries: entries})
				entries = nil
			}
			sectionOpen = true
			sectionName = strings.TrimSpace(m[1])
			continue
		}

		if sectionOpen {
			if m := entryRe.FindStringSubmatch(line); m != nil {
				entries = append(entries, Entry{
					URL:   strings.TrimSpace(m[2]),
					Title: strings.TrimSpace(m[1]),
				})
			}
		}
	}

	if sectionOpen {
		doc.Sections = append(doc.Sections, Section{Name: sectionName, Entries: entries})
	}

	return doc
}
