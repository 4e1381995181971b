// Package sqlite provides the persistent vector index on SQLite.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation. One database file holds any number of
// named collections:
//
//   - collections: one row per collection, with its generation id, embedding
//     model, dimensions and distance metric
//   - entries: the indexed chunks, their embeddings and metadata
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
//
// # Search
//
// Search is exact: every candidate row is scored with cosine distance. The
// corpus is a few thousand chunks at most, so no ANN structure is kept.
//
// # Data Location
//
// By default, the database is stored at ~/.gichul/data/gichul.db
//
// # Concurrency
//
// The store assumes a single writer. Reindex deletes then inserts in
// separate transactions, so a concurrent reader may briefly see an empty
// collection.
package sqlite
