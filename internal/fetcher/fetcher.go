package fetcher

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gocolly/colly/v2"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Page is the successful result of one fetch: the raw payload plus the
// response metadata recorded in the manifest.
type Page struct {
	URL          string
	StatusCode   int
	ContentType  string
	Body         []byte
	LastModified string
	ETag         string
}

// Config carries the fetch-protocol settings.
type Config struct {
	UserAgent         string
	TimeoutSeconds    int
	RateLimitInterval time.Duration
	RespectRobots     bool
	JSMinHTMLBytes    int
	JSMinTextChars    int
}

// Fetcher performs exactly one network attempt per Fetch call, sequencing
// robots policy, the global rate limit, transport, and classification.
// Retry policy, if any, belongs to the caller.
type Fetcher struct {
	base     *colly.Collector
	robots   RobotsPolicy
	limiter  *rate.Limiter
	detector *ShellDetector
	cfg      Config
	logger   *zap.Logger
}

// New constructs a configured Fetcher.
func New(cfg Config, logger *zap.Logger) (*Fetcher, error) {
	if cfg.TimeoutSeconds <= 0 {
		return nil, fmt.Errorf("fetch timeout must be > 0")
	}
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second

	base := colly.NewCollector(colly.UserAgent(cfg.UserAgent))
	// The same URL is fetched for both conditions when the source is the
	// link index itself, and the robots policy is enforced here with its
	// own classification semantics, not by the collector.
	base.AllowURLRevisit = true
	base.IgnoreRobotsTxt = true
	base.WithTransport(&http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		MaxIdleConns:          16,
		MaxIdleConnsPerHost:   4,
		IdleConnTimeout:       30 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: timeout,
		ForceAttemptHTTP2:     true,
	})
	base.SetRequestTimeout(timeout)

	limit := rate.Inf
	if cfg.RateLimitInterval > 0 {
		limit = rate.Every(cfg.RateLimitInterval)
	}

	return &Fetcher{
		base:     base,
		robots:   NewRobotsPolicy(cfg.RespectRobots, cfg.UserAgent, logger),
		limiter:  rate.NewLimiter(limit, 1),
		detector: NewShellDetector(cfg.JSMinHTMLBytes, cfg.JSMinTextChars),
		cfg:      cfg,
		logger:   logger,
	}, nil
}

// Fetch retrieves a URL. On failure the returned error is a *FetchError
// carrying the manifest classification.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (Page, error) {
	if !f.robots.Allowed(ctx, rawURL) {
		f.logger.Info("Blocked by robots.txt", zap.String("url", rawURL))
		return Page{}, &FetchError{
			Status: StatusWAFBlocked,
			Reason: "Disallowed by robots.txt",
		}
	}

	if err := f.limiter.Wait(ctx); err != nil {
		return Page{}, fmt.Errorf("rate limit wait: %w", err)
	}

	page, err := f.doRequest(rawURL)
	if err != nil {
		return Page{}, err
	}

	if page.StatusCode != http.StatusOK {
		return Page{}, &FetchError{
			Status:     StatusHTTPError,
			Reason:     fmt.Sprintf("HTTP %d", page.StatusCode),
			HTTPStatus: page.StatusCode,
		}
	}

	if strings.Contains(strings.ToLower(page.ContentType), "text/html") {
		if shell, visible := f.detector.IsShell(page.Body); shell {
			f.logger.Warn("JS-only shell detected",
				zap.String("url", rawURL),
				zap.Int("html_bytes", len(page.Body)),
				zap.Int("text_chars", visible))
			return Page{}, &FetchError{
				Status: StatusJSOnly,
				Reason: fmt.Sprintf(
					"Page appears to require JavaScript rendering (HTML=%d bytes, extracted text=%d chars)",
					len(page.Body), visible),
				HTTPStatus: page.StatusCode,
			}
		}
	}

	return page, nil
}

// doRequest runs one GET through a collector clone, following redirects and
// enforcing the transport timeout.
func (f *Fetcher) doRequest(rawURL string) (Page, error) {
	collector := f.base.Clone()
	resultCh := make(chan fetchResult, 1)
	var once sync.Once
	send := func(res fetchResult) {
		once.Do(func() {
			resultCh <- res
		})
	}

	collector.OnRequest(func(r *colly.Request) {
		r.Headers.Set("Accept", "text/html,text/markdown,text/plain,*/*")
		r.Headers.Set("Accept-Language", "en-US,en;q=0.9")
	})

	collector.OnResponse(func(r *colly.Response) {
		page := Page{
			URL:        rawURL,
			StatusCode: r.StatusCode,
			Body:       append([]byte{}, r.Body...),
		}
		if r.Headers != nil {
			page.ContentType = r.Headers.Get("Content-Type")
			page.LastModified = r.Headers.Get("Last-Modified")
			page.ETag = r.Headers.Get("ETag")
		}
		send(fetchResult{page: page})
	})

	collector.OnError(func(r *colly.Response, err error) {
		if r != nil && r.StatusCode != 0 {
			send(fetchResult{err: &FetchError{
				Status:     StatusHTTPError,
				Reason:     fmt.Sprintf("HTTP %d", r.StatusCode),
				HTTPStatus: r.StatusCode,
			}})
			return
		}
		if err == nil {
			err = errors.New("unknown transport error")
		}
		send(fetchResult{err: classifyTransportError(err, f.cfg.TimeoutSeconds)})
	})

	if err := collector.Visit(rawURL); err != nil {
		return Page{}, classifyTransportError(err, f.cfg.TimeoutSeconds)
	}
	collector.Wait()

	select {
	case res := <-resultCh:
		return res.page, res.err
	default:
		return Page{}, &FetchError{
			Status: StatusHTTPError,
			Reason: "fetch produced no result",
		}
	}
}

type fetchResult struct {
	page Page
	err  error
}
