// Package connectors builds the question sources used by the setup pipeline.
// Each subpackage knows one origin: web pages, local PDFs, a raw-question
// JSON file, or the embedded sample set.
package connectors
