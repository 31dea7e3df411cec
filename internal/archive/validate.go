package archive

import (
	"strings"

	"go.uber.org/zap"

	"github.com/JakeFAU/llmstxt-archiver/internal/corpus"
	"github.com/JakeFAU/llmstxt-archiver/internal/fetcher"
	"github.com/JakeFAU/llmstxt-archiver/internal/resolve"
)

// CoverageIssue flags one source URL that lacks a successful entry for a
// condition.
type CoverageIssue struct {
	SiteID    string
	SourceURL string
	Status    fetcher.Status // zero value when the entry is missing entirely
}

// CoverageReport buckets validation findings. Diagnostic only: validation
// never halts the run.
type CoverageReport struct {
	MissingA []CoverageIssue
	MissingB []CoverageIssue
	FailedA  []CoverageIssue
	FailedB  []CoverageIssue
}

// Clean reports whether every source URL has both conditions archived
// successfully.
func (r *CoverageReport) Clean() bool {
	return len(r.MissingA) == 0 && len(r.MissingB) == 0 &&
		len(r.FailedA) == 0 && len(r.FailedB) == 0
}

// ValidateCoverage reconciles the manifest against the question corpus:
// every source URL must have a SUCCESS entry for both conditions, found
// under the original URL or one of its derived equivalents.
func ValidateCoverage(questions map[string][]corpus.QuestionInfo, entries []Entry) *CoverageReport {
	type key struct {
		siteID string
		url    string
	}
	coverage := make(map[key]map[Condition]fetcher.Status)
	for _, entry := range entries {
		k := key{entry.SiteID, entry.URL}
		if coverage[k] == nil {
			coverage[k] = make(map[Condition]fetcher.Status)
		}
		coverage[k][entry.Condition] = entry.FetchStatus
	}

	report := &CoverageReport{}
	for siteID, qs := range questions {
		for _, q := range qs {
			for _, sourceURL := range q.SourceURLs {
				foundA, foundB := false, false

				for k, conditions := range coverage {
					if k.siteID != siteID || !relatesToSource(k.url, sourceURL) {
						continue
					}
					if status, ok := conditions[ConditionHTML]; ok {
						foundA = true
						if status != fetcher.StatusSuccess {
							report.FailedA = append(report.FailedA,
								CoverageIssue{siteID, sourceURL, status})
						}
					}
					if status, ok := conditions[ConditionMarkdown]; ok {
						foundB = true
						if status != fetcher.StatusSuccess {
							report.FailedB = append(report.FailedB,
								CoverageIssue{siteID, sourceURL, status})
						}
					}
				}

				if !foundA {
					report.MissingA = append(report.MissingA, CoverageIssue{SiteID: siteID, SourceURL: sourceURL})
				}
				if !foundB {
					report.MissingB = append(report.MissingB, CoverageIssue{SiteID: siteID, SourceURL: sourceURL})
				}
			}
		}
	}
	return report
}

// relatesToSource matches a manifest URL against a source URL or its
// derived equivalents (extension-stripped forms).
func relatesToSource(manifestURL, sourceURL string) bool {
	if manifestURL == sourceURL {
		return true
	}
	if manifestURL == resolve.DeriveHTMLURL(sourceURL) {
		return true
	}
	return strings.HasSuffix(sourceURL, resolve.MarkdownExt) &&
		manifestURL == strings.TrimSuffix(sourceURL, resolve.MarkdownExt)
}

// Log reports the findings, truncating each bucket at ten URLs.
func (r *CoverageReport) Log(logger *zap.Logger) {
	if r.Clean() {
		logger.Info("Coverage validation passed: all source URLs archived for both conditions")
		return
	}
	logBucket(logger, "Missing Condition A entries", r.MissingA)
	logBucket(logger, "Missing Condition B entries", r.MissingB)
	logBucket(logger, "Failed Condition A fetches", r.FailedA)
	logBucket(logger, "Failed Condition B fetches", r.FailedB)
	logger.Warn("Manual review recommended for flagged entries")
}

func logBucket(logger *zap.Logger, label string, issues []CoverageIssue) {
	if len(issues) == 0 {
		return
	}
	logger.Warn(label, zap.Int("count", len(issues)))
	for i, issue := range issues {
		if i == 10 {
			logger.Warn("... and more", zap.Int("remaining", len(issues)-10))
			break
		}
		fields := []zap.Field{
			zap.String("site_id", issue.SiteID),
			zap.String("url", issue.SourceURL),
		}
		if issue.Status != "" {
			fields = append(fields, zap.String("status", string(issue.Status)))
		}
		logger.Warn("  flagged", fields...)
	}
}
