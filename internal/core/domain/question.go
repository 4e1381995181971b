package domain

// RawQuestion is one past exam question as produced by a question source.
// Only Number and Question are required; an empty string means the field
// is absent.
type RawQuestion struct {
	// Number is the question number within its exam session.
	Number int

	// Year is the exam year (e.g. "2023").
	Year string

	// Session is the exam round within the year (e.g. "1회").
	Session string

	// Category is the subject area (e.g. "데이터베이스").
	Category string

	// Subcategory narrows Category (e.g. "SQL").
	Subcategory string

	// Question is the question body.
	Question string

	// Answer is the model answer, if known.
	Answer string

	// Keywords are the key concepts the question tests.
	Keywords []string

	// SourceURL is where the question was collected from.
	SourceURL string
}

// HasExamDate reports whether both year and session are known.
func (q RawQuestion) HasExamDate() bool {
	return q.Year != "" && q.Session != ""
}
