package exam

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/custodia-labs/gichul/internal/core/domain"
	"github.com/custodia-labs/gichul/internal/logger"
)

// Record is the JSON form of a raw question.
// All fields are validated using go-playground/validator tags.
type Record struct {
	Number      int      `json:"number" validate:"gte=1"`
	Year        string   `json:"year,omitempty"`
	Session     string   `json:"session,omitempty"`
	Category    string   `json:"category,omitempty"`
	Subcategory string   `json:"subcategory,omitempty"`
	Question    string   `json:"question" validate:"required"`
	Answer      string   `json:"answer,omitempty"`
	Keywords    []string `json:"keywords,omitempty" validate:"omitempty,dive,required"`
	SourceURL   string   `json:"source_url,omitempty"`
}

var validate = validator.New()

// Validate checks the record. The question must be non-blank.
func (r *Record) Validate() error {
	trimmed := *r
	trimmed.Question = strings.TrimSpace(r.Question)
	return validate.Struct(&trimmed)
}

// ToDomain converts the record to a RawQuestion.
func (r *Record) ToDomain() domain.RawQuestion {
	return domain.RawQuestion{
		Number:      r.Number,
		Year:        r.Year,
		Session:     r.Session,
		Category:    r.Category,
		Subcategory: r.Subcategory,
		Question:    r.Question,
		Answer:      r.Answer,
		Keywords:    append([]string(nil), r.Keywords...),
		SourceURL:   r.SourceURL,
	}
}

// FromDomain converts a RawQuestion to its JSON record.
func FromDomain(q domain.RawQuestion) Record {
	return Record{
		Number:      q.Number,
		Year:        q.Year,
		Session:     q.Session,
		Category:    q.Category,
		Subcategory: q.Subcategory,
		Question:    q.Question,
		Answer:      q.Answer,
		Keywords:    append([]string(nil), q.Keywords...),
		SourceURL:   q.SourceURL,
	}
}

// FromDomainSlice converts questions to records in order.
func FromDomainSlice(questions []domain.RawQuestion) []Record {
	records := make([]Record, len(questions))
	for i, q := range questions {
		records[i] = FromDomain(q)
	}
	return records
}

// Decode parses a JSON array of records. Invalid records are skipped with
// a warning; malformed JSON is an error.
func Decode(data []byte, origin string) ([]domain.RawQuestion, error) {
	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode %s: %w", origin, err)
	}

	questions := make([]domain.RawQuestion, 0, len(records))
	for i := range records {
		if err := records[i].Validate(); err != nil {
			logger.Warn("Skipping record %d in %s: %v", i, origin, err)
			continue
		}
		questions = append(questions, records[i].ToDomain())
	}
	return questions, nil
}
