// Package web scrapes exam questions from blog and archive pages.
package web

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html/charset"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/gichul/internal/core/domain"
	"github.com/custodia-labs/gichul/internal/core/ports/driven"
	"github.com/custodia-labs/gichul/internal/logger"
	"github.com/custodia-labs/gichul/internal/normalisers/exam"
)

var _ driven.QuestionSource = (*Source)(nil)

// contentSelectors are tried in order; the first match is the content area.
var contentSelectors = []string{
	"div.entry-content",
	"div.post-content",
	"div.article-content",
	"div.tt_article_useless_p_margin",
	"article",
	"div#content",
	"body",
}

// Config controls fetching.
type Config struct {
	// Delay is the minimum interval between requests (default: 1s).
	Delay time.Duration

	// Timeout bounds one page fetch (default: 15s).
	Timeout time.Duration

	// UserAgent is sent with each request.
	UserAgent string
}

// Source fetches each URL in turn and parses its content area.
type Source struct {
	urls      []string
	client    *http.Client
	limiter   *rate.Limiter
	userAgent string
}

// New creates a web source for urls.
func New(urls []string, cfg Config) *Source {
	if cfg.Delay <= 0 {
		cfg.Delay = domain.DefaultScrapeDelay
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = domain.DefaultScrapeTimeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = domain.DefaultUserAgent
	}
	return &Source{
		urls:      urls,
		client:    &http.Client{Timeout: cfg.Timeout},
		limiter:   rate.NewLimiter(rate.Every(cfg.Delay), 1),
		userAgent: cfg.UserAgent,
	}
}

// Name identifies the source.
func (s *Source) Name() string {
	return "web"
}

// Fetch scrapes every URL. A failing URL is logged and contributes nothing.
func (s *Source) Fetch(ctx context.Context) ([]domain.RawQuestion, error) {
	var all []domain.RawQuestion
	for _, url := range s.urls {
		if err := s.limiter.Wait(ctx); err != nil {
			return all, err
		}
		logger.Info("Scraping %s", url)
		questions, err := s.scrape(ctx, url)
		if err != nil {
			logger.Warn("scrape %s: %v", url, err)
			continue
		}
		logger.Info("  %d questions from %s", len(questions), url)
		all = append(all, questions...)
	}
	return all, nil
}

func (s *Source) scrape(ctx context.Context, url string) ([]domain.RawQuestion, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch: status %d", resp.StatusCode)
	}

	body, err := charset.NewReader(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, fmt.Errorf("detect charset: %w", err)
	}
	return Extract(body, url)
}

// Extract parses an HTML page into questions attributed to source.
func Extract(r io.Reader, source string) ([]domain.RawQuestion, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	area := contentArea(doc)
	if area.Length() == 0 {
		return nil, nil
	}
	return exam.Parse(Text(area), source), nil
}

func contentArea(doc *goquery.Document) *goquery.Selection {
	for _, sel := range contentSelectors {
		if found := doc.Find(sel).First(); found.Length() > 0 {
			return found
		}
	}
	return doc.Find("body")
}

// Text joins the text nodes under sel with newlines, skipping scripts and styles.
func Text(sel *goquery.Selection) string {
	var parts []string
	var walk func(*goquery.Selection)
	walk = func(s *goquery.Selection) {
		s.Contents().Each(func(_ int, node *goquery.Selection) {
			switch goquery.NodeName(node) {
			case "#text":
				parts = append(parts, node.Text())
			case "script", "style", "noscript", "#comment":
			default:
				walk(node)
			}
		})
	}
	walk(sel)
	return strings.Join(parts, "\n")
}
