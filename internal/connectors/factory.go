package connectors

import (
	"github.com/custodia-labs/gichul/internal/connectors/file"
	"github.com/custodia-labs/gichul/internal/connectors/pdf"
	"github.com/custodia-labs/gichul/internal/connectors/sample"
	"github.com/custodia-labs/gichul/internal/connectors/web"
	"github.com/custodia-labs/gichul/internal/core/domain"
	"github.com/custodia-labs/gichul/internal/core/ports/driven"
)

var _ driven.SourceFactory = (*Factory)(nil)

// Factory creates question sources configured from scraper settings.
type Factory struct {
	scraper domain.ScraperSettings
}

// NewFactory creates a source factory.
func NewFactory(scraper domain.ScraperSettings) *Factory {
	return &Factory{scraper: scraper}
}

// Web returns a scraper for urls.
func (f *Factory) Web(urls []string) driven.QuestionSource {
	return web.New(urls, web.Config{
		Delay:     f.scraper.Delay,
		Timeout:   f.scraper.Timeout,
		UserAgent: f.scraper.UserAgent,
	})
}

// PDF returns a source for local PDF files.
func (f *Factory) PDF(paths []string) driven.QuestionSource {
	return pdf.New(paths)
}

// File returns a source for a raw-question JSON file.
func (f *Factory) File(path string) driven.QuestionSource {
	return file.New(path)
}

// Sample returns the embedded sample set.
func (f *Factory) Sample() driven.QuestionSource {
	return sample.New()
}
