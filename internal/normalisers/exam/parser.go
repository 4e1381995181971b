package exam

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/custodia-labs/gichul/internal/core/domain"
)

// MinBodyLength is the shortest question body, in characters, kept by Parse.
const MinBodyLength = 10

var (
	// markerPattern matches a question marker: optional "문제", a 1-2 digit
	// number, then "." or ")".
	markerPattern = regexp.MustCompile(`(?:문제\s*)?(\d{1,2})\s*[.)]\s*`)

	// answerPattern matches the first answer line inside a question body.
	answerPattern = regexp.MustCompile(`(?i)(?:정답|답|answer|해설)\s*[:：]\s*(.+)`)
)

// Parse splits text into questions. Each body runs from its marker to the
// next marker or the end of text. Bodies shorter than MinBodyLength are
// dropped. source is recorded as SourceURL on every question.
func Parse(text, source string) []domain.RawQuestion {
	markers := markerPattern.FindAllStringSubmatchIndex(text, -1)

	var questions []domain.RawQuestion
	for i, m := range markers {
		end := len(text)
		if i+1 < len(markers) {
			end = markers[i+1][0]
		}
		number, err := strconv.Atoi(text[m[2]:m[3]])
		if err != nil || number < 1 {
			continue
		}

		body := strings.TrimSpace(text[m[1]:end])
		if len([]rune(body)) < MinBodyLength {
			continue
		}

		question, answer := splitAnswer(body)
		questions = append(questions, domain.RawQuestion{
			Number:    number,
			Question:  question,
			Answer:    answer,
			SourceURL: source,
		})
	}
	return questions
}

// splitAnswer lifts the first answer line out of body and cuts the body
// where the answer label starts.
func splitAnswer(body string) (question, answer string) {
	loc := answerPattern.FindStringSubmatchIndex(body)
	if loc == nil {
		return body, ""
	}
	return strings.TrimSpace(body[:loc[0]]), strings.TrimSpace(body[loc[2]:loc[3]])
}
