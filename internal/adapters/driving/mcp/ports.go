package mcp

import (
	"github.com/custodia-labs/gichul/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces required by the MCP server.
type Ports struct {
	// Practice searches the collection and generates questions.
	Practice driving.PracticeService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Practice == nil {
		return ErrMissingPracticeService
	}
	return nil
}
