// Package normalisers turns source-specific content into domain records.
//
// The exam subpackage parses free text (scraped pages, PDF text) into
// RawQuestion values and validates RawQuestion records read from JSON.
package normalisers
