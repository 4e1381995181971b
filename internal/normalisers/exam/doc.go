// Package exam parses past exam question text into RawQuestion records.
//
// Free text is split on question markers ("문제 3.", "3.", "3)") and an
// answer is lifted from the first "정답:", "답:", "answer:" or "해설:" line
// of each question body. JSON records are checked with validator tags
// before they become domain values.
package exam
