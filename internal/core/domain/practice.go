package domain

// SetupRequest selects the question sources for a setup run.
// With no URLs and no PDFs, the file source and then the embedded
// sample set are used.
type SetupRequest struct {
	// URLs are web pages to scrape.
	URLs []string

	// PDFs are local PDF files to parse.
	PDFs []string

	// QuestionFile is a raw-question JSON file to import.
	QuestionFile string
}

// SetupReport summarises a completed setup run.
type SetupReport struct {
	// Source names the question source that supplied the corpus.
	Source string

	// Questions is the number of raw questions collected.
	Questions int

	// Chunks is the number of chunks built.
	Chunks int

	// Indexed is the collection row count after reindexing.
	Indexed int
}

// PracticeRequest asks for new practice questions about a keyword.
type PracticeRequest struct {
	// Keyword is the topic to search for.
	Keyword string

	// Category restricts references to one category when non-empty.
	Category string

	// Num is the number of questions to generate (0 = configured default).
	Num int

	// TopK bounds the number of references (0 = configured default).
	TopK int
}

// PracticeResult holds the references used and the generated output.
type PracticeResult struct {
	References []SearchResult
	Generation Generation
}

// DefaultCategories returns the subject areas of the practical exam.
func DefaultCategories() []string {
	return []string{
		"소프트웨어 설계",
		"소프트웨어 공학",
		"데이터베이스",
		"프로그래밍",
		"네트워크",
		"정보보안",
	}
}
