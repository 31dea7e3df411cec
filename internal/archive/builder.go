package archive

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/JakeFAU/llmstxt-archiver/internal/clock"
	"github.com/JakeFAU/llmstxt-archiver/internal/config"
	"github.com/JakeFAU/llmstxt-archiver/internal/corpus"
	"github.com/JakeFAU/llmstxt-archiver/internal/fetcher"
	"github.com/JakeFAU/llmstxt-archiver/internal/llmstxt"
	"github.com/JakeFAU/llmstxt-archiver/internal/resolve"
)

// checkpointInterval is how many plan entries are processed between
// incremental manifest writes.
const checkpointInterval = 50

// ContentFetcher is the single-attempt fetch contract the builder drives.
type ContentFetcher interface {
	Fetch(ctx context.Context, rawURL string) (fetcher.Page, error)
}

// Options are the per-run toggles from the CLI.
type Options struct {
	Resume     bool
	SiteFilter string
	DryRun     bool
}

// Builder drives the whole archival run: corpus load, storage bootstrap,
// resume hydration, the link-index and content phases, coverage validation,
// and the final manifest write. Strictly sequential; the manifest is the
// only accumulated state.
type Builder struct {
	cfg    config.Config
	opts   Options
	logger *zap.Logger
	clk    clock.Clock
	fetch  ContentFetcher

	sink     *Sink
	manifest *Manifest

	sites       map[string]corpus.SiteInfo
	questions   map[string][]corpus.QuestionInfo
	linkDocs    map[string]*llmstxt.Doc
	resumeIndex map[string]Entry
}

// NewBuilder wires a builder from configuration.
func NewBuilder(cfg config.Config, opts Options, fetch ContentFetcher, clk clock.Clock, logger *zap.Logger) *Builder {
	protocol := ProtocolEcho{
		UserAgent:      cfg.Protocol.UserAgent,
		TimeoutSeconds: cfg.Protocol.FetchTimeoutSeconds,
		RateLimitMs:    cfg.Protocol.RateLimitMs,
	}
	return &Builder{
		cfg:         cfg,
		opts:        opts,
		logger:      logger,
		clk:         clk,
		fetch:       fetch,
		sink:        NewSink(cfg.Paths.ArchiveDir),
		manifest:    NewManifest(cfg.Paths.ArchiveManifest, protocol),
		linkDocs:    make(map[string]*llmstxt.Doc),
		resumeIndex: make(map[string]Entry),
	}
}

// Run executes the phases in order. Per-URL failures are recorded in the
// manifest and never abort the run; only load-time and storage faults are
// returned.
func (b *Builder) Run(ctx context.Context) error {
	if err := b.loadCorpus(); err != nil {
		return err
	}

	siteIDs := b.sortedSiteIDs()
	if err := b.sink.Bootstrap(siteIDs); err != nil {
		return err
	}

	if b.opts.Resume {
		b.hydrateResumeIndex()
	}

	plan := BuildPlan(b.questions)
	if b.opts.DryRun {
		b.logDryRun(plan)
		return nil
	}

	if err := b.fetchLinkIndexes(ctx, siteIDs); err != nil {
		return err
	}
	if err := b.fetchContent(ctx, plan); err != nil {
		return err
	}

	ValidateCoverage(b.questions, b.manifest.Entries()).Log(b.logger)

	if err := b.Flush(); err != nil {
		return err
	}
	b.logSummary()
	return nil
}

// Flush writes the manifest with whatever has been recorded so far. Safe to
// call at any point, including from the interrupt path.
func (b *Builder) Flush() error {
	return b.manifest.Write(b.timestamp())
}

// Manifest exposes the accumulating manifest, primarily for the summary and
// for tests.
func (b *Builder) Manifest() *Manifest {
	return b.manifest
}

func (b *Builder) loadCorpus() error {
	sites, err := corpus.LoadSites(b.cfg.Paths.SiteList, b.opts.SiteFilter)
	if err != nil {
		return err
	}
	b.sites = sites

	questions, err := corpus.LoadQuestions(b.cfg.Paths.Questions, sites)
	if err != nil {
		return err
	}
	b.questions = questions

	totalQuestions := 0
	for _, qs := range questions {
		totalQuestions += len(qs)
	}
	b.logger.Info("Corpus loaded",
		zap.Int("sites", len(sites)),
		zap.Int("questions", totalQuestions))
	return nil
}

func (b *Builder) hydrateResumeIndex() {
	index, err := LoadResumeIndex(b.cfg.Paths.ArchiveManifest)
	if err != nil {
		b.logger.Warn("Failed to load prior manifest; starting fresh", zap.Error(err))
		return
	}
	b.resumeIndex = index
	b.logger.Info("Resume mode: prior SUCCESS entries indexed", zap.Int("count", len(index)))
}

// fetchLinkIndexes is the link-index phase: fetch and parse every site's
// llms.txt. A failure is recorded and the site proceeds without an index,
// so its markdown resolution always yields none.
func (b *Builder) fetchLinkIndexes(ctx context.Context, siteIDs []string) error {
	b.logger.Info("Phase 1: fetching link indexes", zap.Int("sites", len(siteIDs)))

	for _, siteID := range siteIDs {
		site := b.sites[siteID]
		b.logger.Info("Fetching llms.txt",
			zap.String("site_id", siteID), zap.String("url", site.LlmsTxtURL))

		page, err := b.fetch.Fetch(ctx, site.LlmsTxtURL)
		if err != nil {
			fe := fetcher.AsFetchError(err)
			b.logger.Warn("llms.txt fetch failed",
				zap.String("site_id", siteID), zap.String("reason", fe.Reason))
			b.recordFailure(siteID, site.LlmsTxtURL, ConditionMarkdown, fe)
			continue
		}

		rel, err := b.sink.Save(siteID, ConditionMarkdown, site.LlmsTxtURL, page.Body)
		if err != nil {
			return err
		}

		doc := llmstxt.Parse(string(page.Body))
		b.linkDocs[siteID] = doc
		b.logger.Info("Parsed llms.txt",
			zap.String("site_id", siteID),
			zap.String("title", doc.Title),
			zap.Int("sections", len(doc.Sections)),
			zap.Int("entries", doc.EntryCount()))

		b.recordSuccess(siteID, ConditionMarkdown, page, rel, "")
	}

	b.logger.Info("Link-index phase complete",
		zap.Int("parsed", len(b.linkDocs)), zap.Int("sites", len(siteIDs)))
	return nil
}

// fetchContent is the content phase: resolve each plan entry into its
// condition pair and fetch each half independently, checkpointing the
// manifest every 50 entries.
func (b *Builder) fetchContent(ctx context.Context, plan []PlanItem) error {
	b.logger.Info("Phase 2: fetching content", zap.Int("plan_entries", len(plan)))

	for idx, item := range plan {
		site := b.sites[item.SiteID]
		doc := b.linkDocs[item.SiteID]
		pair := resolve.DetermineFetchURLs(item.SourceURL, doc, site)

		progress := fmt.Sprintf("%d/%d", idx+1, len(plan))

		if err := b.processCondition(ctx, item, ConditionHTML, pair.HTML, progress,
			"Cannot derive HTML URL from source URL"); err != nil {
			return err
		}
		if err := b.processCondition(ctx, item, ConditionMarkdown, pair.Markdown, progress,
			"No corresponding Markdown URL found in llms.txt"); err != nil {
			return err
		}

		if (idx+1)%checkpointInterval == 0 {
			if err := b.Flush(); err != nil {
				return err
			}
			b.logger.Info("Incremental manifest checkpoint", zap.String("progress", progress))
		}
	}
	return nil
}

// processCondition handles one half of a plan entry: a resolved URL is
// resumed or fetched; an unresolved one becomes a synthetic failed entry
// with no network attempt.
func (b *Builder) processCondition(ctx context.Context, item PlanItem, condition Condition,
	url, progress, missingReason string) error {
	if url == "" {
		b.logger.Warn("No URL resolvable for condition",
			zap.String("progress", progress),
			zap.String("site_id", item.SiteID),
			zap.String("condition", string(condition)),
			zap.String("source_url", item.SourceURL))
		b.recordFailure(item.SiteID, item.SourceURL, condition, &fetcher.FetchError{
			Status: fetcher.StatusHTTPError,
			Reason: missingReason,
		})
		return nil
	}

	if b.opts.Resume {
		if prior, ok := b.resumeIndex[ResumeKey(url, condition)]; ok {
			b.manifest.Append(prior)
			b.logger.Debug("Skipping fetch (resume)",
				zap.String("progress", progress),
				zap.String("condition", string(condition)),
				zap.String("url", url))
			return nil
		}
	}

	b.logger.Info("Fetching",
		zap.String("progress", progress),
		zap.String("site_id", item.SiteID),
		zap.String("condition", string(condition)),
		zap.String("url", url))
	return b.fetchAndStore(ctx, item.SiteID, url, condition)
}

func (b *Builder) fetchAndStore(ctx context.Context, siteID, url string, condition Condition) error {
	page, err := b.fetch.Fetch(ctx, url)
	if err != nil {
		fe := fetcher.AsFetchError(err)
		b.logger.Warn("Fetch failed",
			zap.String("url", url), zap.String("reason", fe.Reason))
		b.recordFailure(siteID, url, condition, fe)
		return nil
	}

	rel, err := b.sink.Save(siteID, condition, url, page.Body)
	if err != nil {
		return err
	}

	section := ""
	if condition == ConditionMarkdown {
		if doc := b.linkDocs[siteID]; doc != nil {
			section, _ = doc.SectionForURL(url)
		}
	}

	b.recordSuccess(siteID, condition, page, rel, section)
	return nil
}

func (b *Builder) recordFailure(siteID, url string, condition Condition, fe *fetcher.FetchError) {
	entry := newEntry(siteID, url, condition, b.timestamp())
	entry.FetchStatus = fe.Status
	entry.FailureReason = strPtr(fe.Reason)
	entry.HTTPStatus = fe.HTTPStatus
	b.manifest.Append(entry)
}

func (b *Builder) recordSuccess(siteID string, condition Condition, page fetcher.Page, relPath, section string) {
	entry := newEntry(siteID, page.URL, condition, b.timestamp())
	entry.FetchStatus = fetcher.StatusSuccess
	entry.HTTPStatus = page.StatusCode
	entry.ContentType = page.ContentType
	entry.ContentLengthBytes = len(page.Body)
	entry.LastModified = strPtr(page.LastModified)
	entry.ETag = strPtr(page.ETag)
	if condition == ConditionHTML {
		entry.HTMLPath = strPtr(relPath)
	} else {
		entry.MarkdownPath = strPtr(relPath)
	}
	entry.LlmstxtSection = strPtr(section)
	b.manifest.Append(entry)
}

func (b *Builder) sortedSiteIDs() []string {
	ids := make([]string, 0, len(b.sites))
	for id := range b.sites {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (b *Builder) timestamp() string {
	return b.clk.Now().UTC().Format(time.RFC3339)
}
