package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/gichul/internal/core/domain"
)

type setupFixture struct {
	sources   *mockSourceFactory
	questions *mockQuestionStore
	chunks    *mockChunkStore
	index     *failingIndex
	svc       *SetupService
}

func newSetupFixture() *setupFixture {
	f := &setupFixture{
		sources:   newMockSourceFactory(),
		questions: &mockQuestionStore{},
		chunks:    &mockChunkStore{},
		index:     &failingIndex{VectorIndex: newTestIndex()},
	}
	f.svc = NewSetupService(f.sources, f.questions, f.chunks, f.index)
	return f
}

func TestSetupService_Run(t *testing.T) {
	f := newSetupFixture()
	f.sources.sample.questions = sampleQuestions()

	report, err := f.svc.Run(context.Background(), domain.SetupRequest{})

	require.NoError(t, err)
	assert.Equal(t, &domain.SetupReport{Source: "sample", Questions: 3, Chunks: 3, Indexed: 3}, report)
	assert.Equal(t, sampleQuestions(), f.questions.saved)
	assert.Equal(t, BuildChunks(sampleQuestions()), f.chunks.saved)
	assert.Zero(t, f.sources.web.fetched)
}

func TestSetupService_SourceTiers(t *testing.T) {
	one := sampleQuestions()[:1]

	tests := []struct {
		name       string
		req        domain.SetupRequest
		configure  func(f *mockSourceFactory)
		wantSource string
		wantCount  int
	}{
		{
			name: "web and pdf combine",
			req:  domain.SetupRequest{URLs: []string{"u"}, PDFs: []string{"p"}},
			configure: func(f *mockSourceFactory) {
				f.web.questions = one
				f.pdf.questions = sampleQuestions()
				f.sample.questions = sampleQuestions()
			},
			wantSource: "web+pdf",
			wantCount:  4,
		},
		{
			name: "empty web falls to file",
			req:  domain.SetupRequest{URLs: []string{"u"}, QuestionFile: "q.json"},
			configure: func(f *mockSourceFactory) {
				f.file.questions = one
				f.sample.questions = sampleQuestions()
			},
			wantSource: "file",
			wantCount:  1,
		},
		{
			name: "failing web falls to sample",
			req:  domain.SetupRequest{URLs: []string{"u"}},
			configure: func(f *mockSourceFactory) {
				f.web.err = errBoom
				f.sample.questions = sampleQuestions()
			},
			wantSource: "sample",
			wantCount:  3,
		},
		{
			name: "empty file falls to sample",
			req:  domain.SetupRequest{QuestionFile: "q.json"},
			configure: func(f *mockSourceFactory) {
				f.sample.questions = one
			},
			wantSource: "sample",
			wantCount:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newSetupFixture()
			tt.configure(f.sources)

			report, err := f.svc.Run(context.Background(), tt.req)

			require.NoError(t, err)
			assert.Equal(t, tt.wantSource, report.Source)
			assert.Equal(t, tt.wantCount, report.Questions)
			assert.Equal(t, tt.wantCount, report.Indexed)
		})
	}
}

func TestSetupService_PassesInputs(t *testing.T) {
	f := newSetupFixture()
	f.sources.sample.questions = sampleQuestions()

	_, err := f.svc.Run(context.Background(), domain.SetupRequest{
		URLs:         []string{"https://a", "https://b"},
		PDFs:         []string{"x.pdf"},
		QuestionFile: "q.json",
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"https://a", "https://b"}, f.sources.webURLs)
	assert.Equal(t, []string{"x.pdf"}, f.sources.pdfPaths)
	assert.Equal(t, "q.json", f.sources.filePath)
}

func TestSetupService_Errors(t *testing.T) {
	t.Run("no data anywhere", func(t *testing.T) {
		f := newSetupFixture()

		_, err := f.svc.Run(context.Background(), domain.SetupRequest{})

		assert.ErrorIs(t, err, domain.ErrNoSourceData)
		assert.Nil(t, f.questions.saved)
	})

	t.Run("cancelled fetch stops the run", func(t *testing.T) {
		f := newSetupFixture()
		f.sources.web.err = context.Canceled
		f.sources.sample.questions = sampleQuestions()

		_, err := f.svc.Run(context.Background(), domain.SetupRequest{URLs: []string{"u"}})

		assert.ErrorIs(t, err, context.Canceled)
		assert.Zero(t, f.sources.sample.fetched)
	})

	t.Run("question store failure", func(t *testing.T) {
		f := newSetupFixture()
		f.sources.sample.questions = sampleQuestions()
		f.questions.saveErr = errBoom

		_, err := f.svc.Run(context.Background(), domain.SetupRequest{})

		assert.ErrorIs(t, err, errBoom)
	})

	t.Run("chunk store failure", func(t *testing.T) {
		f := newSetupFixture()
		f.sources.sample.questions = sampleQuestions()
		f.chunks.saveErr = errBoom

		_, err := f.svc.Run(context.Background(), domain.SetupRequest{})

		assert.ErrorIs(t, err, errBoom)
	})

	t.Run("reindex failure", func(t *testing.T) {
		f := newSetupFixture()
		f.sources.sample.questions = sampleQuestions()
		f.index.reindexErr = errBoom

		_, err := f.svc.Run(context.Background(), domain.SetupRequest{})

		assert.ErrorIs(t, err, errBoom)
		assert.Contains(t, err.Error(), "reindex")
	})

	t.Run("nil index", func(t *testing.T) {
		svc := NewSetupService(newMockSourceFactory(), &mockQuestionStore{}, &mockChunkStore{}, nil)

		_, err := svc.Run(context.Background(), domain.SetupRequest{})

		assert.ErrorIs(t, err, domain.ErrVectorIndexUnavailable)
	})
}

func TestSetupService_RerunReplacesCollection(t *testing.T) {
	f := newSetupFixture()
	f.sources.sample.questions = sampleQuestions()
	_, err := f.svc.Run(context.Background(), domain.SetupRequest{})
	require.NoError(t, err)

	f.sources.sample.questions = sampleQuestions()[:1]
	report, err := f.svc.Run(context.Background(), domain.SetupRequest{})

	require.NoError(t, err)
	assert.Equal(t, 1, report.Indexed)
}
