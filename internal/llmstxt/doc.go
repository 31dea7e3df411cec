// Package llmstxt parses a site's llms.txt link index into a queryable
// document.
package llmstxt

import "strings"

// Entry is one link within a section.
type Entry struct {
	URL   string
	Title string
}

// Section is a named, ordered group of link entries.
type Section struct {
	Name    string
	Entries []Entry
}

// Doc is the parsed link index. Built once per site and read-only afterward.
type Doc struct {
	Title    string
	Summary  string
	Sections []Section
}

// SectionForURL returns the name of the section containing the given URL.
// Matching is exact after trailing-slash stripping and case folding.
func (d *Doc) SectionForURL(url string) (string, bool) {
	normalized := normalizeURL(url)
	for _, section := range d.Sections {
		for _, entry := range section.Entries {
			if normalizeURL(entry.URL) == normalized {
				return section.Name, true
			}
		}
	}
	return "", false
}

// FindURLByPath returns the first entry URL containing the given path
// fragment as a case-insensitive substring.
func (d *Doc) FindURLByPath(fragment string) (string, bool) {
	normalized := strings.ToLower(strings.TrimRight(fragment, "/"))
	for _, section := range d.Sections {
		for _, entry := range section.Entries {
			if strings.Contains(strings.ToLower(entry.URL), normalized) {
				return entry.URL, true
			}
		}
	}
	return "", false
}

// AllURLs returns every entry URL across all sections in document order.
func (d *Doc) AllURLs() []string {
	var urls []string
	for _, section := range d.Sections {
		for _, entry := range section.Entries {
			urls = append(urls, entry.URL)
		}
	}
	return urls
}

// EntryCount is the total number of entries across all sections.
func (d *Doc) EntryCount() int {
	n := 0
	for _, section := range d.Sections {
		n += len(section.Entries)
	}
	return n
}

func normalizeURL(url string) string {
	return strings.ToLower(strings.TrimRight(url, "/"))
}
