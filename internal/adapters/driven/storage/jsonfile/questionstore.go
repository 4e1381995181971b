package jsonfile

import (
	"path/filepath"

	"github.com/custodia-labs/gichul/internal/core/domain"
	"github.com/custodia-labs/gichul/internal/core/ports/driven"
	"github.com/custodia-labs/gichul/internal/normalisers/exam"
)

// Ensure QuestionStore implements the interface.
var _ driven.QuestionStore = (*QuestionStore)(nil)

// QuestionStore saves raw questions as a JSON array of exam records.
type QuestionStore struct {
	path string
}

// NewQuestionStore creates a question store under dataDir.
func NewQuestionStore(dataDir string) *QuestionStore {
	return &QuestionStore{path: filepath.Join(dataDir, QuestionsFile)}
}

// Save replaces the stored questions.
func (s *QuestionStore) Save(questions []domain.RawQuestion) error {
	return writeJSON(s.path, exam.FromDomainSlice(questions))
}

// Load returns the stored questions. A missing file loads as empty and
// invalid records are skipped.
func (s *QuestionStore) Load() ([]domain.RawQuestion, error) {
	data, err := readFile(s.path)
	if err != nil || data == nil {
		return []domain.RawQuestion{}, err
	}
	return exam.Decode(data, s.path)
}

// Path returns the question file location.
func (s *QuestionStore) Path() string {
	return s.path
}
