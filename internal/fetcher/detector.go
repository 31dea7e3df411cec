package fetcher

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// ShellDetector spots client-rendered application shells: HTML payloads
// that are large on the wire but carry almost no static visible text.
type ShellDetector struct {
	minHTMLBytes int
	minTextChars int
}

// NewShellDetector constructs a detector with the configured thresholds.
// A zero or negative byte threshold disables detection.
func NewShellDetector(minHTMLBytes, minTextChars int) *ShellDetector {
	return &ShellDetector{
		minHTMLBytes: minHTMLBytes,
		minTextChars: minTextChars,
	}
}

// IsShell reports whether the HTML body looks like a JS-only shell, along
// with the visible-text estimate used for the decision.
func (d *ShellDetector) IsShell(body []byte) (bool, int) {
	visible := d.VisibleTextLen(body)
	if d.minHTMLBytes <= 0 {
		return false, visible
	}
	return len(body) > d.minHTMLBytes && visible < d.minTextChars, visible
}

// VisibleTextLen estimates the number of characters a static render of the
// page would show: markup stripped, script/style contents discarded, and
// whitespace collapsed.
func (d *ShellDetector) VisibleTextLen(body []byte) int {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		// Unparseable bytes are counted as-is; the page will not be
		// misclassified as a shell on a parser fault.
		return len(collapseWhitespace(string(body)))
	}
	doc.Find("script, style, noscript").Remove()
	return len(collapseWhitespace(doc.Text()))
}

func collapseWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}
