// Package jsonfile persists the setup pipeline's intermediate artefacts as
// UTF-8 JSON arrays:
//
//   - <data>/raw/scraped_questions.json: the collected raw questions
//   - <data>/processed/chunks.json: the built chunks
//
// Files are written with two-space indentation and without HTML escaping so
// that Korean text and code snippets stay readable.
package jsonfile
