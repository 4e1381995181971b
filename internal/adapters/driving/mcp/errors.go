// Package mcp provides an MCP (Model Context Protocol) server adapter for gichul.
// It lets AI assistants search past exam questions and generate practice questions.
package mcp

import "errors"

// ErrMissingPracticeService is returned when the practice service is not provided.
var ErrMissingPracticeService = errors.New("mcp: practice service is required")
