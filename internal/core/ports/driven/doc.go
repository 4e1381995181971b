// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - VectorIndex: Persistent collection of embedded chunks (SQLite)
//   - EmbeddingService: Generates vector embeddings for the index
//   - ChunkStore: Chunk file persistence
//   - QuestionStore: Raw-question file persistence
//   - QuestionSource: Produces raw questions (web, PDF, file, sample)
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - LLMService: Without it, generation always uses the template path.
//   - PromptStore: Without it, embedded default prompts are used.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, connector, or normaliser package
package driven
