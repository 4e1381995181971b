// Package pdf extracts exam questions from local PDF files.
package pdf

import (
	"bytes"
	"context"
	"fmt"
	"io"

	pdfreader "github.com/ledongthuc/pdf"

	"github.com/custodia-labs/gichul/internal/core/domain"
	"github.com/custodia-labs/gichul/internal/core/ports/driven"
	"github.com/custodia-labs/gichul/internal/logger"
	"github.com/custodia-labs/gichul/internal/normalisers/exam"
)

var _ driven.QuestionSource = (*Source)(nil)

// Source reads each PDF's plain text and parses it with the exam parser.
// The file path is recorded as the question's source.
type Source struct {
	paths []string
}

// New creates a PDF source for paths.
func New(paths []string) *Source {
	return &Source{paths: paths}
}

// Name identifies the source.
func (s *Source) Name() string {
	return "pdf"
}

// Fetch parses every file. An unreadable file is logged and skipped.
func (s *Source) Fetch(ctx context.Context) ([]domain.RawQuestion, error) {
	var all []domain.RawQuestion
	for _, path := range s.paths {
		if err := ctx.Err(); err != nil {
			return all, err
		}
		text, err := PlainText(path)
		if err != nil {
			logger.Warn("read pdf %s: %v", path, err)
			continue
		}
		questions := exam.Parse(text, path)
		logger.Info("%d questions from %s", len(questions), path)
		all = append(all, questions...)
	}
	return all, nil
}

// PlainText returns the text content of every page of the PDF at path.
func PlainText(path string) (text string, err error) {
	f, r, err := pdfreader.Open(path)
	if err != nil {
		return "", fmt.Errorf("open: %w", err)
	}
	defer f.Close()

	// The reader panics on some malformed content streams.
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("extract text: %v", p)
		}
	}()

	plain, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extract text: %w", err)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", fmt.Errorf("read text: %w", err)
	}
	return buf.String(), nil
}
