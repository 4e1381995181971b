// Package services implements the core business logic for gichul.
//
// It holds the retrieval-and-generation pipeline: the chunk builder,
// the context assembler, the generation orchestrator with its offline
// template path, the setup pipeline and the practice service.
// Services depend only on domain types and driven ports.
package services
