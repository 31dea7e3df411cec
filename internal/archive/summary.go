package archive

import (
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/JakeFAU/llmstxt-archiver/internal/fetcher"
)

// Summary holds run statistics derived by scanning the manifest. The
// manifest is the single source of truth; nothing here is tracked
// separately during the run.
type Summary struct {
	Total          int
	Success        int
	Failed         int
	SuccessA       int
	SuccessB       int
	FailuresByType map[fetcher.Status]int
}

// Summarize derives statistics from the recorded entries.
func Summarize(entries []Entry) Summary {
	s := Summary{FailuresByType: make(map[fetcher.Status]int)}
	for _, entry := range entries {
		s.Total++
		if entry.FetchStatus == fetcher.StatusSuccess {
			s.Success++
			switch entry.Condition {
			case ConditionHTML:
				s.SuccessA++
			case ConditionMarkdown:
				s.SuccessB++
			}
			continue
		}
		s.Failed++
		s.FailuresByType[entry.FetchStatus]++
	}
	return s
}

func (b *Builder) logSummary() {
	s := Summarize(b.manifest.Entries())

	successPct := 0.0
	if s.Total > 0 {
		successPct = 100.0 * float64(s.Success) / float64(s.Total)
	}
	b.logger.Info("Archive complete",
		zap.Int("total_fetches", s.Total),
		zap.Int("successful", s.Success),
		zap.Float64("success_pct", successPct),
		zap.Int("failed", s.Failed),
		zap.Int("condition_a_success", s.SuccessA),
		zap.Int("condition_b_success", s.SuccessB),
		zap.String("manifest", b.cfg.Paths.ArchiveManifest),
		zap.String("archive", b.sink.Root()))

	if s.Failed == 0 {
		return
	}
	statuses := make([]string, 0, len(s.FailuresByType))
	for status := range s.FailuresByType {
		statuses = append(statuses, string(status))
	}
	sort.Strings(statuses)
	for _, status := range statuses {
		b.logger.Info("Failures by type",
			zap.String("status", status),
			zap.Int("count", s.FailuresByType[fetcher.Status(status)]))
	}
}

// logDryRun reports the plan without any network calls: counts, a rough
// wall-clock estimate at the configured rate limit, and the first entries.
func (b *Builder) logDryRun(plan []PlanItem) {
	totalFetches := len(plan)*2 + len(b.sites)
	estimated := time.Duration(totalFetches) * b.cfg.RateLimitInterval()

	b.logger.Info("Dry run: nothing will be fetched",
		zap.Int("sites", len(b.sites)),
		zap.Int("link_indexes", len(b.sites)),
		zap.Int("unique_source_urls", len(plan)),
		zap.Int("total_fetches", totalFetches),
		zap.Duration("estimated_duration", estimated))

	for i, item := range plan {
		if i == 20 {
			b.logger.Info("... and more", zap.Int("remaining", len(plan)-20))
			break
		}
		b.logger.Info("Would fetch",
			zap.String("site_id", item.SiteID),
			zap.String("source_url", item.SourceURL))
	}
}
